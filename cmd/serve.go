package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/desertthunder/castaway/internal/server"
	"github.com/urfave/cli/v3"
)

// Serve runs the conversion HTTP server until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd)

	if host := cmd.String("host"); host != "" {
		r.config.Server.Host = host
	}
	if port := cmd.Int("port"); port != 0 {
		r.config.Server.Port = port
	}

	// Storage credentials are a startup requirement, not a per-request error.
	if err := r.config.Storage.Validate(); err != nil {
		return fmt.Errorf("cannot start server: %w", err)
	}

	orchestrator, db, err := r.buildOrchestrator()
	if err != nil {
		return fmt.Errorf("cannot start server: %w", err)
	}
	if db != nil {
		defer db.Close()
	}

	router := server.NewBasicRouter()
	router.Use(
		server.RequestLogger(r.logger),
		server.RateLimit(r.config.Server.RateLimit, r.config.Server.RateBurst),
	)
	router.Handler(server.NewConversionHandler(orchestrator, r.ytdlp, r.logger))

	srv := server.New(r.config.Server, router)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		r.logger.Info("server listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	r.logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}
