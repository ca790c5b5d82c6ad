package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/qmexai/storefront-client/internal/api"
)

func newProfileCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show the logged-in user's profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Guard.RequireUser(); err != nil {
				return err
			}

			user, err := app.Session.CurrentUser(cmd.Context(), app.Client)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Email:  %s\n", user.Email)
			if user.Name != "" {
				fmt.Fprintf(out, "Name:   %s\n", user.Name)
			}
			if user.Phone != "" {
				fmt.Fprintf(out, "Phone:  %s\n", user.Phone)
			}
			fmt.Fprintf(out, "Admin:  %v\n", user.IsAdmin)
			return nil
		},
	}

	cmd.AddCommand(newProfileUpdateCommand(app))
	return cmd
}

func newProfileUpdateCommand(app *App) *cobra.Command {
	var (
		name  string
		email string
		phone string
	)

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update profile fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Guard.RequireUser(); err != nil {
				return err
			}

			var update api.ProfileUpdate
			if cmd.Flags().Changed("name") {
				update.Name = &name
			}
			if cmd.Flags().Changed("email") {
				update.Email = &email
			}
			if cmd.Flags().Changed("phone") {
				update.Phone = &phone
			}

			user, err := app.Client.UpdateMe(cmd.Context(), update)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Profile updated for %s\n", user.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&phone, "phone", "", "phone number")
	return cmd
}
