package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/bnema/walletwise-cli/internal/adapters/render/overview"
	"github.com/bnema/walletwise-cli/internal/application"
	"github.com/spf13/cobra"
)

func newWatchCmd(app *app) *cobra.Command {
	var profileID string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Follow subscription changes and re-render the profile status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := resolveProfileID(app, profileID)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return app.service.Watch(ctx, id, app.events, func(o application.Overview) error {
				if asJSON {
					return writeJSON(cmd, overview.NewOverviewJSON(o))
				}
				return writeOverviewsOutput(cmd, app, []application.Overview{o}, false)
			})
		},
	}

	cmd.Flags().StringVar(&profileID, "profile", "", "Profile ID (default: profiles.default)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print one JSON document per change")

	return cmd
}
