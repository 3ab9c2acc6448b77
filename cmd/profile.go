package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/walletwise-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newProfileCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage profiles",
	}

	cmd.AddCommand(
		newProfileListCmd(app),
		newProfileSetCmd(app),
	)

	return cmd
}

func newProfileListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured profiles",
		RunE: func(cmd *cobra.Command, _ []string) error {
			profiles, err := app.service.ListProfiles(cmd.Context())
			if err != nil {
				return err
			}

			for _, profile := range profiles {
				tier := "-"
				if profile.Snapshot != nil {
					tier = string(profile.Snapshot.User.Subscription.Tier)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", profile.ID, profile.Name, tier)
			}

			return nil
		},
	}
}

func newProfileSetCmd(app *app) *cobra.Command {
	var profileID string
	var baseURL string
	var currency string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set the API base URL or display currency of a profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("base-url") && !cmd.Flags().Changed("currency") {
				return errors.New("nothing to set: pass --base-url or --currency")
			}

			id, err := resolveProfileID(app, profileID)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("base-url") {
				if err := app.service.SetBaseURL(cmd.Context(), id, baseURL); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("currency") {
				if err := app.service.SetDisplayCurrency(cmd.Context(), id, currency); err != nil {
					return err
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&profileID, "profile", "", "Profile ID (default: profiles.default)")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "WalletWise API base URL, empty to use api.base_url")
	cmd.Flags().StringVar(&currency, "currency", "", "Display currency override, empty to follow user settings")

	return cmd
}

// resolveProfileID falls back to the configured default profile.
func resolveProfileID(app *app, raw string) (domain.ProfileID, error) {
	requested := strings.TrimSpace(raw)
	if requested == "" {
		requested = strings.TrimSpace(app.cfg.Profiles.Default)
	}
	if requested == "" {
		return "", errors.New("no profile given and profiles.default is empty")
	}

	return domain.ProfileID(requested), nil
}
