package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"bcf-backend/internal/shared/telemetry"
)

// ShutdownTimeout bounds how long in-flight requests may finish after ctx ends.
const ShutdownTimeout = 35 * time.Second

// Serve listens on addr until ctx is canceled, then shuts down gracefully.
func Serve(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		telemetry.Info("server.start", map[string]any{"addr": addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		telemetry.Info("server.shutdown", map[string]any{"addr": addr})
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
