package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/bekawave/internal/domain"
	"github.com/tair/bekawave/internal/report"
	"github.com/tair/bekawave/internal/service"
)

// memoryRepo is an in-memory service.Repository with a single uniqueness key.
type memoryRepo[T domain.Entity] struct {
	mu     sync.Mutex
	entity string
	setID  func(*T, int64)
	key    func(T) string
	next   int64
	rows   map[int64]T
}

func newMemoryRepo[T domain.Entity](entity string, setID func(*T, int64), key func(T) string) *memoryRepo[T] {
	return &memoryRepo[T]{entity: entity, setID: setID, key: key, rows: map[int64]T{}}
}

func (m *memoryRepo[T]) Entity() string { return m.entity }

func (m *memoryRepo[T]) Create(_ context.Context, rec T) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.rows {
		if m.key != nil && m.key(row) == m.key(rec) {
			var zero T
			return zero, fmt.Errorf("%s: %w", m.entity, domain.ErrDuplicateEntity)
		}
	}
	m.next++
	m.setID(&rec, m.next)
	m.rows[m.next] = rec
	return rec, nil
}

func (m *memoryRepo[T]) Get(_ context.Context, id int64) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.rows[id]
	if !ok {
		return rec, fmt.Errorf("%s %d: %w", m.entity, id, domain.ErrNotFound)
	}
	return rec, nil
}

func (m *memoryRepo[T]) GetAll(context.Context) ([]T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := []T{}
	for id := int64(1); id <= m.next; id++ {
		if rec, ok := m.rows[id]; ok {
			all = append(all, rec)
		}
	}
	return all, nil
}

func (m *memoryRepo[T]) Update(_ context.Context, rec T) (mo.Option[T], error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[rec.PrimaryKey()]; !ok {
		return mo.None[T](), nil
	}
	m.rows[rec.PrimaryKey()] = rec
	return mo.Some(rec), nil
}

func (m *memoryRepo[T]) Delete(_ context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.rows[id]
	delete(m.rows, id)
	return ok, nil
}

func (m *memoryRepo[T]) Exists(_ context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.rows[id]
	return ok, nil
}

type exporterFunc func(ctx context.Context, format string) (report.File, error)

func (f exporterFunc) Export(ctx context.Context, format string) (report.File, error) {
	return f(ctx, format)
}

type pinger struct{ err error }

func (p pinger) PingContext(context.Context) error { return p.err }

func newTestRegistry() *service.Registry {
	stores := newMemoryRepo("store",
		func(s *domain.Store, id int64) { s.StoreID = id },
		func(s domain.Store) string { return s.Name + "|" + s.Location })
	customers := newMemoryRepo("customer",
		func(c *domain.Customer, id int64) { c.CustomerID = id },
		func(c domain.Customer) string { return c.PhoneNo })
	debts := newMemoryRepo[domain.Debt]("debt",
		func(d *domain.Debt, id int64) { d.DebtID = id }, nil)

	return &service.Registry{
		Stores:    service.NewCRUD[domain.Store](stores, service.Policy{DeleteChecksExistence: true}, nil),
		Customers: service.NewCRUD[domain.Customer](customers, service.StrictPolicy, nil),
		Debts:     service.NewCRUD[domain.Debt](debts, service.LenientPolicy, nil),
	}
}

type testServer struct {
	handler  http.Handler
	gatherer *prometheus.Registry
}

func newTestServer(t *testing.T, exporter Exporter, db Pinger) *testServer {
	t.Helper()

	reg := prometheus.NewRegistry()
	metrics, err := NewMetrics(reg)
	require.NoError(t, err)

	config := DefaultMiddlewareConfig()
	config.EnableTracing = false

	return &testServer{
		handler: NewRouter(RouterDeps{
			Services:   newTestRegistry(),
			Exporter:   exporter,
			DB:         db,
			Metrics:    metrics,
			Gatherer:   reg,
			Middleware: config,
		}),
		gatherer: reg,
	}
}

func (s *testServer) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func message(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Message
}

func TestGetAllEmptyIsNotFound(t *testing.T) {
	srv := newTestServer(t, nil, nil)

	rec := srv.do(http.MethodGet, "/stores/all", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "No stores found", message(t, rec))
}

func TestCreateStoreTwiceConflicts(t *testing.T) {
	srv := newTestServer(t, nil, nil)
	body := `{"name":"Central","location":"Almaty"}`

	first := srv.do(http.MethodPost, "/stores/create", body)
	require.Equal(t, http.StatusCreated, first.Code)
	assert.Equal(t, "/stores/all", first.Header().Get("Location"))

	var created domain.Store
	require.NoError(t, json.Unmarshal(first.Body.Bytes(), &created))
	assert.Equal(t, int64(1), created.StoreID)

	second := srv.do(http.MethodPost, "/stores/create", body)
	assert.Equal(t, http.StatusConflict, second.Code)
	assert.Equal(t, "There exist such a store in that location", message(t, second))

	list := srv.do(http.MethodGet, "/stores/get-all", "")
	require.Equal(t, http.StatusOK, list.Code)
	var stores []domain.Store
	require.NoError(t, json.Unmarshal(list.Body.Bytes(), &stores))
	assert.Len(t, stores, 1)
}

func TestGetByIDAndAlias(t *testing.T) {
	srv := newTestServer(t, nil, nil)
	require.Equal(t, http.StatusCreated, srv.do(http.MethodPost, "/stores/create", `{"name":"Central","location":"Almaty"}`).Code)

	for _, path := range []string{"/stores/by-id/1", "/stores/get_store_by_id/1"} {
		rec := srv.do(http.MethodGet, path, "")
		require.Equal(t, http.StatusOK, rec.Code, path)

		var got domain.Store
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "Central", got.Name)
	}

	missing := srv.do(http.MethodGet, "/stores/by-id/7", "")
	assert.Equal(t, http.StatusNotFound, missing.Code)
	assert.Equal(t, "Store not found", message(t, missing))

	bad := srv.do(http.MethodGet, "/stores/by-id/abc", "")
	assert.Equal(t, http.StatusBadRequest, bad.Code)
}

func TestCreateRejectsBadInput(t *testing.T) {
	srv := newTestServer(t, nil, nil)

	malformed := srv.do(http.MethodPost, "/customers/create", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, malformed.Code)
	assert.Equal(t, "Invalid request body", message(t, malformed))

	invalid := srv.do(http.MethodPost, "/customers/create", `{"name":"Aigerim","phone_no":"","location":"Almaty"}`)
	assert.Equal(t, http.StatusBadRequest, invalid.Code)
	assert.Equal(t, "phone_no is required", message(t, invalid))

	undated := srv.do(http.MethodPost, "/debts/create", `{"customer_id":1,"amount":10,"is_paid":false}`)
	assert.Equal(t, http.StatusBadRequest, undated.Code)
	assert.Equal(t, "date is required", message(t, undated))

	dated := srv.do(http.MethodPost, "/debts/create", `{"customer_id":1,"amount":10,"date":"2024-03-05","is_paid":false}`)
	assert.Equal(t, http.StatusCreated, dated.Code)
}

func TestUpdate(t *testing.T) {
	srv := newTestServer(t, nil, nil)
	require.Equal(t, http.StatusCreated, srv.do(http.MethodPost, "/stores/create", `{"name":"Central","location":"Almaty"}`).Code)

	ok := srv.do(http.MethodPut, "/stores/update", `{"store_id":1,"name":"Central","location":"Astana"}`)
	require.Equal(t, http.StatusOK, ok.Code)
	var updated domain.Store
	require.NoError(t, json.Unmarshal(ok.Body.Bytes(), &updated))
	assert.Equal(t, "Astana", updated.Location)

	absent := srv.do(http.MethodPut, "/stores/update", `{"store_id":42,"name":"North","location":"Astana"}`)
	assert.Equal(t, http.StatusNotFound, absent.Code)
	assert.Equal(t, "Store not found", message(t, absent))

	strict := srv.do(http.MethodPut, "/customers/update", `{"customer_id":42,"name":"A","phone_no":"+7700","location":"B"}`)
	assert.Equal(t, http.StatusNotFound, strict.Code)
	assert.Equal(t, "Customer not found", message(t, strict))
}

func TestDelete(t *testing.T) {
	srv := newTestServer(t, nil, nil)
	require.Equal(t, http.StatusCreated, srv.do(http.MethodPost, "/stores/create", `{"name":"Central","location":"Almaty"}`).Code)

	ok := srv.do(http.MethodDelete, "/stores/delete/1", "")
	assert.Equal(t, http.StatusOK, ok.Code)
	assert.Equal(t, "true", strings.TrimSpace(ok.Body.String()))

	missing := srv.do(http.MethodDelete, "/stores/delete/999", "")
	assert.Equal(t, http.StatusNotFound, missing.Code)
	assert.JSONEq(t, `{"message":"No such store found"}`, missing.Body.String())

	debt := srv.do(http.MethodDelete, "/debts/delete/5", "")
	assert.Equal(t, http.StatusNotFound, debt.Code)
	assert.Equal(t, "No such debt found", message(t, debt))
}

func TestDownload(t *testing.T) {
	exporter := exporterFunc(func(_ context.Context, format string) (report.File, error) {
		switch format {
		case "csv":
			return report.File{Name: "2024-03-06.csv", ContentType: "text/csv", Body: []byte("a,b\n")}, nil
		case "xlsx":
			return report.File{}, domain.NewStorageError("sales record", "get all", errors.New("connection reset"))
		}
		return report.File{}, fmt.Errorf("%q: %w", format, domain.ErrUnsupportedFormat)
	})
	srv := newTestServer(t, exporter, nil)

	ok := srv.do(http.MethodGet, "/download?format=csv", "")
	require.Equal(t, http.StatusOK, ok.Code)
	assert.Equal(t, "text/csv", ok.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=2024-03-06.csv", ok.Header().Get("Content-Disposition"))
	assert.Equal(t, "a,b\n", ok.Body.String())

	bad := srv.do(http.MethodGet, "/download?format=pdf", "")
	assert.Equal(t, http.StatusBadRequest, bad.Code)

	failed := srv.do(http.MethodGet, "/download?format=xlsx", "")
	assert.Equal(t, http.StatusInternalServerError, failed.Code)
	assert.NotContains(t, failed.Body.String(), "connection reset")
}

func TestDownloadDanglingReferenceIsInternal(t *testing.T) {
	sales := newMemoryRepo[domain.Sales]("sales record",
		func(s *domain.Sales, id int64) { s.SalesID = id }, nil)
	customers := newMemoryRepo[domain.Customer]("customer",
		func(c *domain.Customer, id int64) { c.CustomerID = id }, nil)
	products := newMemoryRepo[domain.Product]("product",
		func(p *domain.Product, id int64) { p.ProductID = id }, nil)

	_, err := products.Create(context.Background(), domain.Product{Name: "Tea", Price: 100})
	require.NoError(t, err)
	_, err = sales.Create(context.Background(), domain.Sales{
		CustomerID: 9, ProductID: 1, TotalPrice: 100, ProductQuantity: 1,
		SalesTime: domain.NewTimestamp(time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC)),
	})
	require.NoError(t, err)

	srv := newTestServer(t, report.NewExporter(sales, customers, products, nil), nil)

	rec := srv.do(http.MethodGet, "/download?format=csv", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error", message(t, rec))
}

func TestHealth(t *testing.T) {
	healthy := newTestServer(t, nil, pinger{}).do(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, healthy.Code)

	down := newTestServer(t, nil, pinger{err: errors.New("dial tcp: refused")}).do(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, down.Code)
}

func TestMetricsAndRequestID(t *testing.T) {
	srv := newTestServer(t, nil, nil)

	rec := srv.do(http.MethodGet, "/stores/all", "")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))

	metrics := srv.do(http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, metrics.Code)
	assert.Contains(t, metrics.Body.String(), `bekawave_http_requests_total{endpoint="/stores/all",method="GET",status="404"} 1`)
	assert.Contains(t, metrics.Body.String(), `bekawave_entity_records{entity="store"} 0`)
}

func TestNewMetricsRejectsDoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewMetrics(reg)
	require.NoError(t, err)

	_, err = NewMetrics(reg)
	assert.Error(t, err)
}
