package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/bnema/walletwise-cli/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd(app *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve evaluated entitlements over HTTP for local tools",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(app.service, server.Config{
				Addr:      addr,
				RateLimit: app.cfg.Server.RateLimit,
				Burst:     app.cfg.Server.Burst,
			}, app.log)

			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", app.cfg.Server.Addr, "Listen address")

	return cmd
}
