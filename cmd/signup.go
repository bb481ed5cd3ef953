package cmd

import (
	"context"
	"fmt"

	"github.com/bnema/bank-session-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newSignupCmd(a *app) *cobra.Command {
	var email, password, name string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			profile := domain.NewUserProfile{Email: email, Password: password, Name: name}

			err := runWithSpinner(cmd.Context(), cmd.OutOrStdout(), "Creating account...", func(ctx context.Context) error {
				return a.session.AddUser(ctx, profile)
			})
			if err != nil {
				return err
			}

			if err := flushToast(cmd, a); err != nil {
				return err
			}

			if state := a.session.State(); state.SignedIn() && state.CurrentUser != nil {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Signed up as %s (%s)\n", state.CurrentUser.Email, state.CurrentUserID)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	cmd.Flags().StringVar(&name, "name", "", "Display name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}
