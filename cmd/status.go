package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bnema/walletwise-cli/internal/adapters/render/overview"
	"github.com/bnema/walletwise-cli/internal/application"
	"github.com/bnema/walletwise-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *app) *cobra.Command {
	var profileID string
	var asJSON bool
	var offline bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Refresh and display the effective plan, limits and wallets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var overviews []application.Overview

			fetch := func(ctx context.Context) error {
				var err error
				overviews, err = loadOverviews(ctx, app.service, profileID, offline)
				return err
			}

			if err := withSpinner(cmd, asJSON || offline, "Refreshing WalletWise data...", fetch); err != nil {
				return err
			}

			return writeOverviewsOutput(cmd, app, overviews, asJSON)
		},
	}

	cmd.Flags().StringVar(&profileID, "profile", "", "Profile ID (default: all profiles)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")
	cmd.Flags().BoolVar(&offline, "offline", false, "Evaluate the cached snapshot without calling the API")

	return cmd
}

func writeOverviewsOutput(cmd *cobra.Command, app *app, overviews []application.Overview, asJSON bool) error {
	if asJSON {
		return writeJSON(cmd, overview.NewOverviewsJSON(overviews))
	}

	rendered, err := app.renderOverview(overviews, overview.RenderOptions{Now: app.now()})
	if err != nil {
		return fmt.Errorf("render status: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}

func writeJSON(cmd *cobra.Command, payload any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func loadOverviews(ctx context.Context, svc *application.Service, profileID string, offline bool) ([]application.Overview, error) {
	if profileID == "" {
		return svc.GetOverviewAll(ctx, offline)
	}

	o, err := svc.GetOverview(ctx, application.OverviewQuery{ID: domain.ProfileID(profileID), Offline: offline})
	if err != nil {
		return nil, err
	}

	return []application.Overview{o}, nil
}
