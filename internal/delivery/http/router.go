package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tair/bekawave/internal/domain"
	"github.com/tair/bekawave/internal/service"
)

// RouterDeps are the collaborators mounted by NewRouter
type RouterDeps struct {
	Services   *service.Registry
	Exporter   Exporter
	DB         Pinger
	Metrics    *Metrics
	Gatherer   prometheus.Gatherer
	Swagger    http.Handler
	Middleware *MiddlewareConfig
}

// NewRouter mounts every entity, the report download and the operational
// endpoints, wrapped in the configured middleware and CORS.
func NewRouter(deps RouterDeps) http.Handler {
	router := mux.NewRouter()

	s := deps.Services
	NewResourceHandler[domain.Store](StoreResource, s.Stores, deps.Metrics).RegisterRoutes(router)
	NewResourceHandler[domain.Customer](CustomerResource, s.Customers, deps.Metrics).RegisterRoutes(router)
	NewResourceHandler[domain.Product](ProductResource, s.Products, deps.Metrics).RegisterRoutes(router)
	NewResourceHandler[domain.Debt](DebtResource, s.Debts, deps.Metrics).RegisterRoutes(router)
	NewResourceHandler[domain.Sales](SalesResource, s.Sales, deps.Metrics).RegisterRoutes(router)
	NewResourceHandler[domain.SalesRep](SalesRepResource, s.SalesReps, deps.Metrics).RegisterRoutes(router)
	NewResourceHandler[domain.SalesPair](SalesPairResource, s.SalesPairs, deps.Metrics).RegisterRoutes(router)
	NewResourceHandler[domain.Stock](StockResource, s.Stocks, deps.Metrics).RegisterRoutes(router)

	if deps.Exporter != nil {
		NewDownloadHandler(deps.Exporter, deps.Metrics).RegisterRoutes(router)
	}
	if deps.DB != nil {
		RegisterHealthCheck(router, deps.DB)
	}
	if deps.Gatherer != nil {
		router.Handle("/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}
	if deps.Swagger != nil {
		RegisterSwaggerDocs(router, deps.Swagger)
	}

	config := deps.Middleware
	if config == nil {
		config = DefaultMiddlewareConfig()
	}
	RegisterMiddlewares(router, config)

	return SetupCORS(config)(router)
}
