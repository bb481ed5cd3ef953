package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newLoginCmd(a *app) *cobra.Command {
	var email, password, token string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := runWithSpinner(cmd.Context(), cmd.OutOrStdout(), "Signing in...", func(ctx context.Context) error {
				return a.session.SignIn(ctx, email, password, token)
			})
			if err != nil {
				return err
			}

			if err := flushToast(cmd, a); err != nil {
				return err
			}

			return printIdentity(cmd, a)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	cmd.Flags().StringVar(&token, "token", "", "Optional second-factor token")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	cmd.AddCommand(newLoginBrowserCmd(a))

	return cmd
}

func newLoginBrowserCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "browser",
		Short: "Sign in through the identity provider's hosted page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.session.SignInWithProvider(cmd.Context()); err != nil {
				return err
			}

			return printIdentity(cmd, a)
		},
	}
}

func printIdentity(cmd *cobra.Command, a *app) error {
	state := a.session.State()
	if !state.SignedIn() || state.CurrentUser == nil {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), "Not signed in")
		return err
	}

	user := state.CurrentUser
	_, err := fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s (%s), balance %.2f\n", user.Email, user.ID, user.Balance)
	return err
}
