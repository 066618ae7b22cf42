package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/bekawave/internal/config"
	httpDelivery "github.com/tair/bekawave/internal/delivery/http"
	"github.com/tair/bekawave/internal/events"
	"github.com/tair/bekawave/internal/report"
	"github.com/tair/bekawave/internal/service"
)

func TestProvidePublisherWithoutBrokersOrCache(t *testing.T) {
	publisher, cleanup, err := ProvidePublisher(config.Default(), nil)
	require.NoError(t, err)
	defer cleanup()

	assert.IsType(t, events.Nop{}, publisher)
}

func TestProvidePublisherInvalidatesInlineWithoutKafka(t *testing.T) {
	cache := report.NewRedisCache(nil, "", 0)

	publisher, cleanup, err := ProvidePublisher(config.Default(), cache)
	require.NoError(t, err)
	defer cleanup()
	assert.IsType(t, &report.Invalidator{}, publisher)

	consumer, cleanup2, err := ProvideCacheConsumer(config.Default(), cache)
	require.NoError(t, err)
	defer cleanup2()
	assert.Nil(t, consumer)
}

type recordingPublisher struct {
	sent []string
}

func (p *recordingPublisher) Publish(_ context.Context, e events.EntityChanged) error {
	p.sent = append(p.sent, e.EventType)
	return nil
}

func TestWithInvalidationKeepsBrokerPublisher(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := report.NewRedisCache(client, "", time.Minute)
	mock.ExpectIncr("bekawave:report:generation").SetVal(1)

	broker := &recordingPublisher{}

	publisher := withInvalidation(broker, cache)
	require.NoError(t, publisher.Publish(context.Background(), events.NewEntityChanged("sales record", events.ActionCreated, 1)))

	assert.Equal(t, []string{"sales_record.created"}, broker.sent)
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.IsType(t, events.Nop{}, withInvalidation(events.Nop{}, nil))
}

func TestProvideReportCacheDisabled(t *testing.T) {
	client, cleanup := ProvideRedisClient(config.Default())
	defer cleanup()

	assert.Nil(t, client)
	assert.Nil(t, ProvideReportCache(client, config.Default()))
}

func TestProvideHealthServerDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.GRPC.Enabled = false

	assert.Nil(t, ProvideHealthServer(cfg, nil))
}

func TestRouterServesHealthOverPool(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()
	mock.ExpectPing()

	cfg := config.Default()
	reg := prometheus.NewRegistry()
	metrics, err := httpDelivery.NewMetrics(reg)
	require.NoError(t, err)

	registry := service.NewRegistry(db, events.Nop{})
	handler := ProvideRouter(cfg, registry, ProvideExporter(registry, nil), db, metrics, reg)
	app := NewApp(cfg, handler, nil, nil)

	rec := httptest.NewRecorder()
	app.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunStopsOnCancel(t *testing.T) {
	cfg := config.Default()
	cfg.HTTP.Port = "0"

	app := NewApp(cfg, http.NotFoundHandler(), nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NoError(t, app.Run(ctx))
}
