package cmd

import (
	"errors"
	"fmt"

	"github.com/bnema/walletwise-cli/internal/adapters/render/overview"
	"github.com/bnema/walletwise-cli/internal/application"
	"github.com/bnema/walletwise-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newWalletsCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wallets",
		Short: "Inspect wallet limits",
	}

	cmd.AddCommand(newWalletsCanCreateCmd(app))

	return cmd
}

func newWalletsCanCreateCmd(app *app) *cobra.Command {
	var profileID string
	var asJSON bool
	var offline bool

	cmd := &cobra.Command{
		Use:   "can-create",
		Short: "Check whether one more wallet may be created; exits non-zero when not",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := resolveProfileID(app, profileID)
			if err != nil {
				return err
			}

			limit, err := app.service.CheckWalletCreation(cmd.Context(), application.OverviewQuery{ID: id, Offline: offline})
			if err != nil && !errors.Is(err, domain.ErrWalletLimitReached) {
				return err
			}

			if asJSON {
				if jsonErr := writeJSON(cmd, overview.WalletLimitJSON{
					Current:   limit.Current,
					Max:       limit.Max,
					CanCreate: limit.CanCreate,
				}); jsonErr != nil {
					return jsonErr
				}
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), describeWalletLimit(limit))
			return err
		},
	}

	cmd.Flags().StringVar(&profileID, "profile", "", "Profile ID (default: profiles.default)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")
	cmd.Flags().BoolVar(&offline, "offline", false, "Evaluate the cached snapshot without calling the API")

	return cmd
}

func describeWalletLimit(limit domain.WalletLimit) string {
	if limit.Max == nil {
		return fmt.Sprintf("yes: %d wallets, no limit", limit.Current)
	}
	if limit.CanCreate {
		return fmt.Sprintf("yes: %d of %d wallets used", limit.Current, *limit.Max)
	}

	return fmt.Sprintf("no: %d of %d wallets used", limit.Current, *limit.Max)
}
