package commands

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/qmexai/storefront-client/internal/entity"
)

func newProductsCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Browse the catalog",
	}
	cmd.AddCommand(newProductsListCommand(app), newProductsShowCommand(app))
	return cmd
}

func newProductsListCommand(app *App) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products, optionally by category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			products, err := app.Catalog.ListProducts(cmd.Context(), entity.Category(category))
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tMRP\tPRICE\tSTOCK\tRATING")
			for _, p := range products {
				fmt.Fprintf(w, "%d\t%s\t%s\t%.2f\t%.2f\t%d\t%.1f\n",
					p.ID, p.Name, p.Category, p.MRP, p.DiscountPrice, p.Stock, p.Rating)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "filter by category (Men, Women, Kids)")
	return cmd
}

func newProductsShowCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid product id %q", args[0])
			}

			p, err := app.Catalog.GetProduct(cmd.Context(), id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (#%d)\n", p.Name, p.ID)
			fmt.Fprintf(out, "  %s\n", p.Description)
			fmt.Fprintf(out, "  Category: %s", p.Category)
			if p.Tags != "" {
				fmt.Fprintf(out, "  Tags: %s", p.Tags)
			}
			fmt.Fprintln(out)
			if p.Color != "" || p.Fabric != "" {
				fmt.Fprintf(out, "  Color: %s  Fabric: %s\n", p.Color, p.Fabric)
			}
			if p.DiscountPercentage > 0 {
				fmt.Fprintf(out, "  Price: %.2f (MRP %.2f, %.0f%% off)\n", p.DiscountPrice, p.MRP, p.DiscountPercentage)
			} else {
				fmt.Fprintf(out, "  Price: %.2f\n", p.DiscountPrice)
			}
			fmt.Fprintf(out, "  Stock: %d  Rating: %.1f/5.0\n", p.Stock, p.Rating)
			return nil
		},
	}
}
