package commands

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newCartCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Manage the cart",
	}
	cmd.AddCommand(
		newCartShowCommand(app),
		newCartAddCommand(app),
		newCartRemoveCommand(app),
		newCartSetCommand(app),
	)
	return cmd
}

func newCartShowCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the cart contents and total",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lines := app.Ledger.Lines()
			if len(lines) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Cart is empty")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "PRODUCT\tNAME\tQTY\tUNIT\tSUBTOTAL")
			for _, line := range lines {
				fmt.Fprintf(w, "%d\t%s\t%d\t%.2f\t%.2f\n",
					line.ProductID, line.Name, line.Quantity, line.UnitPrice,
					float64(line.Quantity)*line.UnitPrice)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Total: %.2f\n", app.Ledger.Total())
			return nil
		},
	}
}

func newCartAddCommand(app *App) *cobra.Command {
	var qty int

	cmd := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add a product to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid product id %q", args[0])
			}

			product, err := app.Catalog.GetProduct(cmd.Context(), id)
			if err != nil {
				return err
			}

			app.Ledger.AddItem(*product, qty)
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s. Cart total: %.2f\n", product.Name, app.Ledger.Total())
			return nil
		},
	}

	cmd.Flags().IntVarP(&qty, "qty", "q", 1, "quantity to add")
	return cmd
}

func newCartRemoveCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <product-id>",
		Short: "Remove a product from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid product id %q", args[0])
			}

			app.Ledger.RemoveItem(id)
			fmt.Fprintf(cmd.OutOrStdout(), "Removed. Cart total: %.2f\n", app.Ledger.Total())
			return nil
		},
	}
}

func newCartSetCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set <product-id> <qty>",
		Short: "Set a line's quantity (0 removes it)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid product id %q", args[0])
			}
			qty, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid quantity %q", args[1])
			}

			app.Ledger.SetQuantity(id, qty)
			fmt.Fprintf(cmd.OutOrStdout(), "Updated. Cart total: %.2f\n", app.Ledger.Total())
			return nil
		},
	}
}
