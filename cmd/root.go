package cmd

import "github.com/spf13/cobra"

func Execute() error {
	rootCmd, app := newRootCmd()
	if app != nil {
		defer app.close()
	}

	return rootCmd.Execute()
}

func newRootCmd() (*cobra.Command, *app) {
	rootCmd := &cobra.Command{
		Use:           "bankctl",
		Short:         "bankctl: account sessions, sign-in, and ledger actions from the terminal",
		Long:          "bankctl manages a client session against the remote account service: create accounts, sign in with credentials or the identity provider, move money, and inspect the session state.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd, nil
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newSignupCmd(app),
		newLoginCmd(app),
		newWhoamiCmd(app),
		newWithdrawCmd(app),
		newDepositCmd(app),
		newHistoryCmd(app),
		newLogoutCmd(app),
	)

	return rootCmd, app
}
