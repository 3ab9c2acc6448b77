package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/bnema/walletwise-cli/internal/adapters/render/overview"
	"github.com/bnema/walletwise-cli/internal/application"
	"github.com/bnema/walletwise-cli/internal/config"
	"github.com/bnema/walletwise-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newSummaryCmd(app *app) *cobra.Command {
	var profileID string
	var rangeName string
	var weekStart string
	var asJSON bool
	var offline bool

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show income and expense per day, week or month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := resolveProfileID(app, profileID)
			if err != nil {
				return err
			}

			timeRange := domain.TimeRange(strings.ToLower(strings.TrimSpace(rangeName)))
			if !timeRange.Valid() {
				return fmt.Errorf("unsupported range %q (daily|weekly|monthly)", rangeName)
			}

			q := application.SummaryQuery{ID: id, Range: timeRange, Offline: offline}
			if cmd.Flags().Changed("week-start") {
				day, err := config.ParseWeekday(weekStart)
				if err != nil {
					return err
				}
				q.WeekStart = &day
			}

			var report application.SummaryReport
			fetch := func(ctx context.Context) error {
				var err error
				report, err = app.service.GetSummary(ctx, q)
				return err
			}
			if err := withSpinner(cmd, asJSON || offline, "Refreshing WalletWise data...", fetch); err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, overview.NewSummaryJSON(report))
			}

			rendered, err := app.renderSummary(report, overview.RenderOptions{Now: app.now()})
			if err != nil {
				return fmt.Errorf("render summary: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().StringVar(&profileID, "profile", "", "Profile ID (default: profiles.default)")
	cmd.Flags().StringVar(&rangeName, "range", string(domain.TimeRangeWeekly), "Bucket range (daily|weekly|monthly)")
	cmd.Flags().StringVar(&weekStart, "week-start", "", "First day of the week for the daily range (default: display.week_start)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")
	cmd.Flags().BoolVar(&offline, "offline", false, "Use the cached snapshot without calling the API")

	return cmd
}
