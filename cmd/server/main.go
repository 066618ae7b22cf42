package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/tair/bekawave/docs"
	"github.com/tair/bekawave/internal/app"
	"github.com/tair/bekawave/internal/config"
	"github.com/tair/bekawave/pkg/logger"
	"github.com/tair/bekawave/pkg/tracing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger.Init(logger.Options{
		Service:     cfg.Service,
		Environment: cfg.Environment,
		Level:       cfg.LogLevel,
	})

	logger.Logger.Info().
		Str("service", cfg.Service).
		Str("environment", cfg.Environment).
		Str("log_level", cfg.LogLevel).
		Msg("Starting sales service")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tp, err := tracing.InitTracer(ctx, cfg.TracingConfig())
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize tracer")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracing.Shutdown(shutdownCtx, tp); err != nil {
			logger.Logger.Warn().Err(err).Msg("Failed to flush traces")
		}
	}()

	application, cleanup, err := app.InitializeApp(ctx, cfg)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to initialize application")
		os.Exit(1)
	}
	defer cleanup()

	if err := application.Run(ctx); err != nil {
		logger.Logger.Error().Err(err).Msg("Server stopped with error")
	}
}
