package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/bank-session-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Fetch and print the current session user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Read the remembered id before fetching: a rejected fetch is a
			// sign-out, and sign-out erases the durable store.
			stored, err := a.store.Get(cmd.Context())
			if err != nil && !errors.Is(err, domain.ErrCredentialNotFound) {
				return err
			}

			err = runWithSpinner(cmd.Context(), cmd.OutOrStdout(), "Fetching session...", func(ctx context.Context) error {
				return a.session.FetchCurrentUser(ctx)
			})
			if err != nil {
				return err
			}

			if a.session.State().SignedIn() {
				return printIdentity(cmd, a)
			}

			if stored != "" {
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "Not signed in (last signed in as %s)\n", stored)
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), "Not signed in")
			return err
		},
	}
}
