package cmd

import (
	"context"
	"fmt"

	"github.com/bnema/walletwise-cli/internal/adapters/render/overview"
	"github.com/bnema/walletwise-cli/internal/application"
	"github.com/spf13/cobra"
)

func newAnalyticsCmd(app *app) *cobra.Command {
	var profileID string
	var asJSON bool
	var offline bool

	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Show spending by category and the monthly breakdown (Pro+)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := resolveProfileID(app, profileID)
			if err != nil {
				return err
			}

			var report application.AnalyticsReport
			fetch := func(ctx context.Context) error {
				var err error
				report, err = app.service.GetAnalytics(ctx, application.OverviewQuery{ID: id, Offline: offline})
				return err
			}
			if err := withSpinner(cmd, asJSON || offline, "Refreshing WalletWise data...", fetch); err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, overview.NewAnalyticsJSON(report))
			}

			rendered, err := app.renderAnalytics(report, overview.RenderOptions{Now: app.now()})
			if err != nil {
				return fmt.Errorf("render analytics: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().StringVar(&profileID, "profile", "", "Profile ID (default: profiles.default)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")
	cmd.Flags().BoolVar(&offline, "offline", false, "Use the cached snapshot without calling the API")

	return cmd
}
