//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"github.com/google/wire"

	"github.com/tair/bekawave/internal/config"
	httpDelivery "github.com/tair/bekawave/internal/delivery/http"
	"github.com/tair/bekawave/internal/service"
)

// InfrastructureSet provides the shared pool, cache and event publisher
var InfrastructureSet = wire.NewSet(
	ProvideDatabase,
	ProvideRedisClient,
	ProvideReportCache,
	ProvidePublisher,
	ProvideCacheConsumer,
)

// DeliverySet provides the HTTP router and the gRPC health server
var DeliverySet = wire.NewSet(
	ProvideRegisterer,
	ProvideGatherer,
	httpDelivery.NewMetrics,
	ProvideRouter,
	ProvideHealthServer,
)

// InitializeApp wires the whole service from its configuration
func InitializeApp(ctx context.Context, cfg config.Config) (*App, func(), error) {
	wire.Build(
		InfrastructureSet,
		service.NewRegistry,
		ProvideExporter,
		DeliverySet,
		NewApp,
	)
	return nil, nil, nil
}
