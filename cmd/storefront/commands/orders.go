package commands

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/qmexai/storefront-client/internal/entity"
)

func newOrdersCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "View your orders",
	}
	cmd.AddCommand(newOrdersListCommand(app), newOrdersShowCommand(app))
	return cmd
}

func newOrdersListCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your orders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Guard.RequireUser(); err != nil {
				return err
			}

			orders, err := app.Client.MyOrders(cmd.Context())
			if err != nil {
				return err
			}
			if len(orders) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No orders yet")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tDATE\tSTATUS\tPROGRESS\tTOTAL")
			for _, o := range orders {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%.2f\n",
					o.ID, o.CreatedAt.Format("2006-01-02"), o.Status, progressBar(o.Status), o.TotalAmount)
			}
			return w.Flush()
		},
	}
}

func newOrdersShowCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one of your orders",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Guard.RequireUser(); err != nil {
				return err
			}

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid order id %q", args[0])
			}

			order, err := app.Client.GetOrder(cmd.Context(), id)
			if err != nil {
				return err
			}

			printOrder(cmd, order)
			return nil
		},
	}
}

// progressBar renders the cumulative fulfillment progress: step k is filled
// whenever the status ordinal has reached it.
func progressBar(status entity.OrderStatus) string {
	var b strings.Builder
	for k := 1; k <= entity.StatusCount; k++ {
		if status.StepReached(k) {
			b.WriteString("[x]")
		} else {
			b.WriteString("[ ]")
		}
	}
	fmt.Fprintf(&b, " step %d of %d", status.Ordinal(), entity.StatusCount)
	return b.String()
}

func printOrder(cmd *cobra.Command, order *entity.Order) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Order #%d  %s\n", order.ID, order.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(out, "Status: %s  %s\n", order.Status, progressBar(order.Status))
	if order.ShippingAddress != "" {
		fmt.Fprintf(out, "Ship to: %s\n", order.ShippingAddress)
	}
	for _, item := range order.Items {
		fmt.Fprintf(out, "  %dx %s @ %.2f = %.2f\n",
			item.Quantity, item.Product.Name, item.Price, float64(item.Quantity)*item.Price)
	}
	fmt.Fprintf(out, "Total: %.2f\n", order.TotalAmount)
}
