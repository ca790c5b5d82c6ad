package commands

import (
	"fmt"
	"sort"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/qmexai/storefront-client/internal/entity"
)

func newAdminCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Admin console: products, orders, stats",
	}
	cmd.AddCommand(
		newAdminProductsCommand(app),
		newAdminOrdersCommand(app),
		newAdminStatsCommand(app),
	)
	return cmd
}

func newAdminProductsCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Manage the catalog",
	}
	cmd.AddCommand(
		newAdminProductCreateCommand(app),
		newAdminProductEditCommand(app),
		newAdminBulkDiscountCommand(app),
		newAdminSeedCommand(app),
	)
	return cmd
}

// productFlags binds the editable product fields to a command's flag set.
func productFlags(cmd *cobra.Command, p *entity.Product) {
	var category string
	cmd.Flags().StringVar(&p.Name, "name", "", "product name")
	cmd.Flags().StringVar(&p.Description, "description", "", "product description")
	cmd.Flags().StringVar(&category, "category", "", "category (Men, Women, Kids)")
	cmd.Flags().StringVar(&p.Tags, "tags", "", "free-text tags")
	cmd.Flags().Float64Var(&p.MRP, "mrp", 0, "maximum retail price")
	cmd.Flags().Float64Var(&p.DiscountPercentage, "discount-pct", 0, "discount percentage (0-100)")
	cmd.Flags().Float64Var(&p.DiscountPrice, "price", 0, "manual sale price (overrides the percentage)")
	cmd.Flags().StringSliceVar(&p.Photos, "photo", nil, "photo URL (exactly 4 required)")
	cmd.Flags().IntVar(&p.Stock, "stock", 0, "units in stock")
	cmd.Flags().StringVar(&p.Color, "color", "", "color")
	cmd.Flags().StringVar(&p.Fabric, "fabric", "", "fabric")
	cmd.Flags().Float64Var(&p.Rating, "rating", 0, "rating (0.0-5.0)")

	prev := cmd.PreRunE
	cmd.PreRunE = func(c *cobra.Command, args []string) error {
		if prev != nil {
			if err := prev(c, args); err != nil {
				return err
			}
		}
		p.Category = entity.Category(category)
		return nil
	}
}

func newAdminProductCreateCommand(app *App) *cobra.Command {
	var p entity.Product

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Guard.RequireAdmin(); err != nil {
				return err
			}

			created, err := app.Catalog.CreateProduct(cmd.Context(), &p)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s (#%d) at price %.2f\n",
				created.Name, created.ID, created.DiscountPrice)
			return nil
		},
	}

	productFlags(cmd, &p)
	return cmd
}

func newAdminProductEditCommand(app *App) *cobra.Command {
	var p entity.Product

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Replace a product's editable fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Guard.RequireAdmin(); err != nil {
				return err
			}

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid product id %q", args[0])
			}

			updated, err := app.Catalog.UpdateProduct(cmd.Context(), id, &p)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s (#%d) at price %.2f\n",
				updated.Name, updated.ID, updated.DiscountPrice)
			return nil
		},
	}

	productFlags(cmd, &p)
	return cmd
}

func newAdminBulkDiscountCommand(app *App) *cobra.Command {
	var (
		category string
		pct      float64
	)

	cmd := &cobra.Command{
		Use:   "bulk-discount",
		Short: "Apply a discount percentage to every product in a category",
		Long: `Apply a discount percentage to every product in a category.

The sale price of each affected product is recomputed from its MRP and the
given percentage, replacing any manually set price. Other categories are
untouched. The operation succeeds or fails as a whole.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Guard.RequireAdmin(); err != nil {
				return err
			}

			if err := app.Catalog.ApplyBulkDiscount(cmd.Context(), entity.Category(category), pct); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Applied %.1f%% discount to category %s\n", pct, category)
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "category (Men, Women, Kids)")
	cmd.Flags().Float64Var(&pct, "pct", 0, "discount percentage (0-100)")
	cmd.MarkFlagRequired("category")
	cmd.MarkFlagRequired("pct")
	return cmd
}

func newAdminSeedCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed demo products on an empty server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Guard.RequireAdmin(); err != nil {
				return err
			}

			if err := app.Catalog.SeedProducts(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Seeded demo products")
			return nil
		},
	}
}

func newAdminOrdersCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Fulfillment dashboard",
	}
	cmd.AddCommand(
		newAdminOrdersListCommand(app),
		newAdminOrderViewCommand(app),
		newAdminOrderAdvanceCommand(app),
	)
	return cmd
}

func newAdminOrdersListCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all orders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Guard.RequireAdmin(); err != nil {
				return err
			}

			orders, err := app.Fulfillment.ListOrders(cmd.Context())
			if err != nil {
				return err
			}
			sort.Slice(orders, func(i, j int) bool { return orders[i].ID < orders[j].ID })

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

func newAdminOrderViewCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "view <id>",
		Short: "View an order's detail (moves a Pending order to Processing)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Guard.RequireAdmin(); err != nil {
				return err
			}

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid order id %q", args[0])
			}

			order, err := app.Fulfillment.ViewOrder(cmd.Context(), id)
			if err != nil {
				return err
			}
			printOrder(cmd, order)
			return nil
		},
	}
}

func newAdminOrderAdvanceCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "advance <id>",
		Short: "Move a Pending order into Processing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Guard.RequireAdmin(); err != nil {
				return err
			}

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid order id %q", args[0])
			}

			status, err := app.Fulfillment.AdvanceToProcessing(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Order #%d is now %s\n", id, status)
			return nil
		},
	}
}

func newAdminStatsCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show revenue aggregates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Guard.RequireAdmin(); err != nil {
				return err
			}

			stats, err := app.Fulfillment.Stats(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Total sales: %.2f\n", stats.TotalSales)
			fmt.Fprintf(out, "Orders:      %d\n", stats.OrderCount)

			statuses := make([]string, 0, len(stats.StatusCounts))
			for s := range stats.StatusCounts {
				statuses = append(statuses, s)
			}
			sort.Strings(statuses)
			for _, s := range statuses {
				fmt.Fprintf(out, "  %-12s %d\n", s, stats.StatusCounts[s])
			}
			return nil
		},
	}
}
