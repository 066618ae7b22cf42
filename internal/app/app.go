package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/tair/bekawave/internal/config"
	grpcDelivery "github.com/tair/bekawave/internal/delivery/grpc"
	"github.com/tair/bekawave/internal/events"
	"github.com/tair/bekawave/pkg/logger"
)

// App owns the HTTP and gRPC listeners of the service
type App struct {
	cfg      config.Config
	server   *http.Server
	health   *grpcDelivery.HealthServer
	consumer *events.Consumer
}

// NewApp creates the application. health and consumer may be nil.
func NewApp(cfg config.Config, handler http.Handler, health *grpcDelivery.HealthServer, consumer *events.Consumer) *App {
	return &App{
		cfg: cfg,
		server: &http.Server{
			Addr:              ":" + cfg.HTTP.Port,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		health:   health,
		consumer: consumer,
	}
}

// Handler exposes the HTTP handler tree
func (a *App) Handler() http.Handler {
	return a.server.Handler
}

// Run serves until ctx is cancelled or a listener fails, then shuts down
// gracefully.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 2)

	go func() {
		logger.Logger.Info().
			Str("port", a.cfg.HTTP.Port).
			Str("metrics_endpoint", "/metrics").
			Str("swagger", "/swagger/index.html").
			Msg("HTTP server started")
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	probeCtx, stopProbe := context.WithCancel(ctx)
	defer stopProbe()

	if a.consumer != nil {
		a.consumer.Start(probeCtx)
	}

	if a.health != nil {
		lis, err := net.Listen("tcp", ":"+a.cfg.GRPC.Port)
		if err != nil {
			a.shutdown()
			return fmt.Errorf("failed to listen on gRPC port %s: %w", a.cfg.GRPC.Port, err)
		}
		go a.health.Run(probeCtx)
		go func() {
			if err := a.health.Serve(lis); err != nil {
				errCh <- fmt.Errorf("grpc server: %w", err)
			}
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
		logger.Logger.Info().Msg("Shutting down servers...")
	case runErr = <-errCh:
		logger.Logger.Error().Err(runErr).Msg("Server failed")
	}

	a.shutdown()
	return runErr
}

func (a *App) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		logger.Logger.Warn().Err(err).Msg("HTTP server shutdown incomplete")
	}
	if a.health != nil {
		a.health.Stop()
	}
}
