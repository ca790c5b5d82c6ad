package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/qmexai/storefront-client/internal/api"
)

func newRegisterCommand(app *App) *cobra.Command {
	var (
		password string
		name     string
		phone    string
	)

	cmd := &cobra.Command{
		Use:   "register <email>",
		Short: "Create a new account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := app.Client.Register(cmd.Context(), api.RegisterRequest{
				Email:    args[0],
				Name:     name,
				Phone:    phone,
				Password: password,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Registered %s (id %d)\n", user.Email, user.ID)
			if user.IsAdmin {
				fmt.Fprintln(cmd.OutOrStdout(), "This account has admin privileges")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Log in with: storefront login "+user.Email+" -p <password>")
			return nil
		},
	}

	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&phone, "phone", "", "phone number")
	cmd.MarkFlagRequired("password")
	return cmd
}
