package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"bcf-backend/internal/bootstrap"
	"bcf-backend/internal/shared/server"
	"bcf-backend/internal/shared/telemetry"
)

func newServeCmd(g *globalFlags) *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.load(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}
			// The server logs like cmd/api does, not like the CLI diagnostics.
			telemetry.Init(telemetry.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

			app, err := bootstrap.Build(cfg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.Serve(ctx, server.Addr(cfg.Port), app.Router)
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "Listen port (default: $PORT or 3000)")
	return cmd
}
