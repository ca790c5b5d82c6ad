// Package commands implements the storefront CLI commands.
package commands

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/qmexai/storefront-client/internal/api"
	"github.com/qmexai/storefront-client/internal/cart"
	"github.com/qmexai/storefront-client/internal/config"
	"github.com/qmexai/storefront-client/internal/service"
	"github.com/qmexai/storefront-client/internal/session"
)

// App wires the domain stores and services together for the command tree.
// Stores are hydrated once at startup; commands receive the app by pointer.
type App struct {
	Config      *config.Config
	Session     *session.Manager
	Guard       *session.Guard
	Ledger      *cart.Ledger
	Client      *api.Client
	Catalog     *service.CatalogService
	Checkout    *service.CheckoutService
	Fulfillment *service.FulfillmentService
}

func (a *App) init(cfgPath, apiURL string, verbose bool) error {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if apiURL != "" {
		cfg.API.BaseURL = apiURL
	}

	a.Config = cfg
	a.Session = session.NewManager(session.NewFileStore(cfg.State.Dir))
	a.Session.Hydrate()
	a.Guard = session.NewGuard(a.Session.Token)

	a.Ledger = cart.NewLedger(cart.NewFileStore(cfg.State.Dir))
	a.Ledger.Hydrate()

	a.Client = api.NewClient(cfg.API.BaseURL, a.Session.Token)
	a.Catalog = service.NewCatalogService(a.Client)
	a.Checkout = service.NewCheckoutService(a.Client, a.Ledger)
	a.Fulfillment = service.NewFulfillmentService(a.Client)
	return nil
}

// NewRootCommand builds the storefront command tree.
func NewRootCommand() *cobra.Command {
	app := &App{}

	var (
		cfgPath string
		apiURL  string
		verbose bool
	)

	cmd := &cobra.Command{
		Use:           "storefront",
		Short:         "Retail storefront and admin console client",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.init(cfgPath, apiURL, verbose)
		},
	}

	cmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to a config file")
	cmd.PersistentFlags().StringVar(&apiURL, "api", "", "override the API base URL")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(
		newLoginCommand(app),
		newLogoutCommand(app),
		newRegisterCommand(app),
		newProfileCommand(app),
		newProductsCommand(app),
		newCartCommand(app),
		newCheckoutCommand(app),
		newOrdersCommand(app),
		newAdminCommand(app),
	)
	return cmd
}

// Execute runs the CLI.
func Execute() int {
	if err := NewRootCommand().Execute(); err != nil {
		slog.Error("Command failed", "err", err)
		os.Stderr.WriteString("Error: " + err.Error() + "\n")
		return 1
	}
	return 0
}
