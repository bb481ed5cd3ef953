package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newWithdrawCmd(a *app) *cobra.Command {
	return newLedgerCmd(a, "withdraw", "Withdraw from the account", "Withdrawing...",
		func(ctx context.Context, user string, sum float64) error {
			return a.session.Withdraw(ctx, user, sum)
		})
}

func newDepositCmd(a *app) *cobra.Command {
	return newLedgerCmd(a, "deposit", "Deposit to the account", "Depositing...",
		func(ctx context.Context, user string, sum float64) error {
			return a.session.Deposit(ctx, user, sum)
		})
}

func newLedgerCmd(a *app, use, short, label string, action func(context.Context, string, float64) error) *cobra.Command {
	var user string
	var sum float64

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := runWithSpinner(cmd.Context(), cmd.OutOrStdout(), label, func(ctx context.Context) error {
				return action(ctx, user, sum)
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

	cmd.Flags().StringVar(&user, "user", "", "Account email (default: signed-in user)")
	cmd.Flags().Float64Var(&sum, "sum", 0, "Amount")
	_ = cmd.MarkFlagRequired("sum")

	return cmd
}

func newHistoryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Print the ledger actions attempted this session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			state := a.session.State()
			if len(state.Submissions) == 0 {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "No submissions this session")
				return err
			}

			for _, submission := range state.Submissions {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%.2f\n", submission.Action, submission.User, submission.Sum)
			}
			return nil
		},
	}
}
