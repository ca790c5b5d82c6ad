package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/qmexai/storefront-client/internal/service"
)

func newCheckoutCommand(app *App) *cobra.Command {
	var (
		address      string
		acceptPrices bool
	)

	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Submit the cart as an order",
		Long: `Submit the cart as an order.

Checkout accepts a dummy card and performs no payment. If a cart line's
price changed on the server since it was added, checkout stops and reports
the difference; pass --accept-price-changes to take the current prices.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Guard.RequireUser(); err != nil {
				return err
			}

			if acceptPrices {
				if err := app.Checkout.RefreshPrices(cmd.Context()); err != nil {
					return err
				}
			}

			order, err := app.Checkout.Submit(cmd.Context(), address)
			if err != nil {
				var drift *service.PriceDriftError
				if errors.As(err, &drift) {
					out := cmd.OutOrStdout()
					fmt.Fprintln(out, "Prices changed since these items were added:")
					for _, d := range drift.Drifts {
						fmt.Fprintf(out, "  %s: %.2f -> %.2f\n", d.Name, d.CartPrice, d.CurrentPrice)
					}
					fmt.Fprintln(out, "Re-run with --accept-price-changes to checkout at current prices.")
				}
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Order #%d placed. Status: %s. Total: %.2f\n",
				order.ID, order.Status, order.TotalAmount)
			return nil
		},
	}

	cmd.Flags().StringVarP(&address, "address", "a", "", "shipping address")
	cmd.Flags().BoolVar(&acceptPrices, "accept-price-changes", false, "accept current server prices on drift")
	cmd.MarkFlagRequired("address")
	return cmd
}
