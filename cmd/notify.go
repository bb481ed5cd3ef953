package cmd

import (
	"github.com/bnema/bank-session-cli/internal/adapters/render/toast"
	"github.com/spf13/cobra"
)

// flushToast renders the pending notification, if any, and clears the slot
// once its display duration elapses.
func flushToast(cmd *cobra.Command, a *app) error {
	state := a.session.State()
	if state.Toast == "" {
		return nil
	}

	return toast.Show(cmd.Context(), cmd.OutOrStdout(), state.Toast, a.toastDuration, a.session.HideNotification)
}
