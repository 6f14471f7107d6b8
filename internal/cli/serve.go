package cli

import (
	"groweasy/internal/app"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd() *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API and websocket server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg := configFrom(ctx)
			log := loggerFrom(ctx)

			if port != "" {
				cfg.App.HTTPPort = port
			}
			addr, err := app.ListenAddr(cfg.App.HTTPPort)
			if err != nil {
				return err
			}

			a, cleanup, err := app.Bootstrap(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer func() {
				if err := cleanup(); err != nil {
					log.Warn("cleanup failed", zap.Error(err))
				}
			}()

			return a.Run(ctx, addr)
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "", "port to listen on (overrides HTTP_PORT)")
	return cmd
}
