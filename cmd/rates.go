package cmd

import (
	"fmt"

	"github.com/bnema/walletwise-cli/internal/adapters/render/overview"
	"github.com/spf13/cobra"
)

func newRatesCmd(app *app) *cobra.Command {
	var profileID string
	var refresh bool
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "rates",
		Short: "Show the exchange rates used for display totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := resolveProfileID(app, profileID)
			if err != nil {
				return err
			}

			report, err := app.service.GetRates(cmd.Context(), id, refresh)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, overview.NewRatesJSON(report))
			}

			rendered, err := app.renderRates(report, overview.RenderOptions{Now: app.now()})
			if err != nil {
				return fmt.Errorf("render rates: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().StringVar(&profileID, "profile", "", "Profile ID (default: profiles.default)")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "Ask the API to recompute the rate table first")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}
