package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"bcf-backend/internal/bootstrap"
	"bcf-backend/internal/shared/config"
	"bcf-backend/internal/shared/server"
	"bcf-backend/internal/shared/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	telemetry.Init(telemetry.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

	if err := run(cfg); err != nil {
		telemetry.Error("server.failed", map[string]any{"error": err})
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	app, err := bootstrap.Build(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.Serve(ctx, server.Addr(cfg.Port), app.Router)
}
