package app

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/tair/bekawave/internal/config"
	grpcDelivery "github.com/tair/bekawave/internal/delivery/grpc"
	httpDelivery "github.com/tair/bekawave/internal/delivery/http"
	"github.com/tair/bekawave/internal/domain"
	"github.com/tair/bekawave/internal/events"
	"github.com/tair/bekawave/internal/report"
	"github.com/tair/bekawave/internal/service"
	"github.com/tair/bekawave/pkg/database"
	"github.com/tair/bekawave/pkg/logger"
)

// ProvideDatabase opens the shared pool and bootstraps the schema when
// enabled. The cleanup closes the pool.
func ProvideDatabase(ctx context.Context, cfg config.Config) (*sql.DB, func(), error) {
	db, err := database.NewPostgresConnection(ctx, cfg.DatabaseConfig())
	if err != nil {
		return nil, nil, err
	}

	if cfg.Database.AutoMigrate {
		if err := database.AutoMigrate(db, domain.Models()...); err != nil {
			db.Close()
			return nil, nil, err
		}
	}

	return db, func() {
		if err := db.Close(); err != nil {
			logger.Logger.Warn().Err(err).Msg("Failed to close database")
		}
	}, nil
}

// ProvideRedisClient returns nil when no Redis address is configured
func ProvideRedisClient(cfg config.Config) (*redis.Client, func()) {
	if cfg.Redis.Addr == "" {
		logger.Logger.Info().Msg("Redis not configured, report cache disabled")
		return nil, func() {}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	logger.Logger.Info().Str("addr", cfg.Redis.Addr).Msg("Redis report cache enabled")
	return client, func() { client.Close() }
}

// ProvideReportCache returns a nil Cache when Redis is disabled
func ProvideReportCache(client *redis.Client, cfg config.Config) report.Cache {
	if client == nil {
		return nil
	}
	return report.NewRedisCache(client, "", cfg.Redis.ReportCacheTTL)
}

// ProvidePublisher sends entity changes to Kafka when brokers are
// configured. The report cache of the writing replica is always invalidated
// inline; ProvideCacheConsumer covers writes made by other replicas.
func ProvidePublisher(cfg config.Config, cache report.Cache) (events.Publisher, func(), error) {
	if len(cfg.Kafka.Brokers) == 0 {
		logger.Logger.Info().Msg("Kafka not configured, entity change events disabled")
		if cache != nil {
			return report.NewInvalidator(cache), func() {}, nil
		}
		return events.Nop{}, func() {}, nil
	}

	kafka, err := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	if err != nil {
		return nil, nil, err
	}
	return withInvalidation(kafka, cache), func() {
		if err := kafka.Close(); err != nil {
			logger.Logger.Warn().Err(err).Msg("Failed to close Kafka publisher")
		}
	}, nil
}

// withInvalidation adds the inline report cache invalidator next to p.
func withInvalidation(p events.Publisher, cache report.Cache) events.Publisher {
	if cache == nil {
		return p
	}
	return events.Multi(p, report.NewInvalidator(cache))
}

// ProvideCacheConsumer subscribes the report cache invalidator to the entity
// change topic. It returns nil unless both Kafka and the cache are enabled.
func ProvideCacheConsumer(cfg config.Config, cache report.Cache) (*events.Consumer, func(), error) {
	if len(cfg.Kafka.Brokers) == 0 || cache == nil {
		return nil, func() {}, nil
	}

	consumer, err := events.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.ConsumerGroup, cfg.Kafka.Topic, report.NewInvalidator(cache))
	if err != nil {
		return nil, nil, err
	}
	return consumer, func() {
		if err := consumer.Close(); err != nil {
			logger.Logger.Warn().Err(err).Msg("Failed to close Kafka consumer")
		}
	}, nil
}

// ProvideExporter builds the sales report exporter over the entity services
func ProvideExporter(reg *service.Registry, cache report.Cache) *report.Exporter {
	return report.NewExporter(reg.Sales, reg.Customers, reg.Products, cache)
}

func ProvideRegisterer() prometheus.Registerer {
	return prometheus.DefaultRegisterer
}

func ProvideGatherer() prometheus.Gatherer {
	return prometheus.DefaultGatherer
}

// ProvideRouter assembles the HTTP handler tree
func ProvideRouter(
	cfg config.Config,
	reg *service.Registry,
	exporter *report.Exporter,
	db *sql.DB,
	metrics *httpDelivery.Metrics,
	gatherer prometheus.Gatherer,
) http.Handler {
	middleware := httpDelivery.DefaultMiddlewareConfig()
	middleware.TimeoutDuration = cfg.HTTP.RequestTimeout
	middleware.EnableTracing = cfg.Tracing.Enabled
	middleware.CORSOptions = cors.Options{
		AllowedOrigins:   cfg.HTTP.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}

	return httpDelivery.NewRouter(httpDelivery.RouterDeps{
		Services:   reg,
		Exporter:   exporter,
		DB:         db,
		Metrics:    metrics,
		Gatherer:   gatherer,
		Swagger:    httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")),
		Middleware: middleware,
	})
}

// ProvideHealthServer returns nil when gRPC is disabled
func ProvideHealthServer(cfg config.Config, db *sql.DB) *grpcDelivery.HealthServer {
	if !cfg.GRPC.Enabled {
		return nil
	}
	return grpcDelivery.NewHealthServer(db, cfg.GRPC.ProbeInterval)
}
