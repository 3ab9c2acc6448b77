package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "ww",
		Short:         "WalletWise CLI (ww): plan entitlements, frozen wallets and balances",
		Long:          "ww (WalletWise CLI) stores profile credentials, evaluates the effective plan of each profile, shows which wallets are frozen after a lapsed trial, and totals balances in one display currency.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newProfileCmd(app),
		newAuthCmd(app),
		newStatusCmd(app),
		newWalletsCmd(app),
		newSummaryCmd(app),
		newAnalyticsCmd(app),
		newCategoriesCmd(app),
		newRatesCmd(app),
		newExportCmd(app),
		newWatchCmd(app),
		newServeCmd(app),
	)

	return rootCmd
}
