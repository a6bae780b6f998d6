package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/thurmanmarka/horizon"
	"github.com/thurmanmarka/horizon/internal/api"
	"github.com/thurmanmarka/horizon/internal/config"
	"github.com/thurmanmarka/horizon/internal/logging"
	"github.com/thurmanmarka/horizon/internal/metrics"
	"github.com/thurmanmarka/horizon/internal/tracing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// No logger config yet; report with the defaults.
		logging.New(logging.Config{}).Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, tracing.Config{
		Enabled:     cfg.TracingEnabled,
		ServiceName: "horizon-server",
		Exporter:    cfg.TracingExporter,
		Endpoint:    cfg.TracingEndpoint,
		SampleRatio: cfg.TracingSampleRatio,
	}, logger)
	if err != nil {
		logger.Error("tracing init failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer tracing.ShutdownWithTimeout(context.Background(), shutdownTracing, logger)

	rec, err := metrics.New(nil)
	if err != nil {
		logger.Error("metrics init failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	finder, err := horizon.New(
		horizon.WithModel(cfg.Model),
		horizon.WithLogger(logger),
		horizon.WithObserver(rec),
		horizon.WithDefaults(horizon.Defaults{
			RiseSetStep:  cfg.RiseSetStep,
			CrossingStep: cfg.CrossingStep,
			Tolerance:    cfg.Tolerance,
		}),
	)
	if err != nil {
		logger.Error("finder init failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	srv := api.NewServer(finder, api.Options{
		MaxWindow:  cfg.MaxWindow,
		MaxFrames:  cfg.MaxFrames,
		Refraction: cfg.Refraction,
	}, logger, rec)

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Handler(),
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server",
			slog.String("addr", cfg.Addr),
			slog.String("model", finder.Model()),
			slog.Bool("tracing", cfg.TracingEnabled),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		logger.Error("server listen error", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.String("error", err.Error()))
		return
	}
	logger.Info("server stopped")
}
