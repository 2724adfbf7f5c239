// Package httpapi assembles the process-wide HTTP router: shared middleware,
// operational endpoints and the versioned numerology API.
package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"numerus/internal/platform/metrics"
	"numerus/pkg/platform/middleware/request"
	"numerus/pkg/platform/middleware/requesttime"
)

// Registrar mounts a group of routes onto the router.
type Registrar interface {
	Register(r chi.Router)
}

// Deps collects what the router needs. Gatherer defaults to the Prometheus
// default registry.
type Deps struct {
	Logger   *slog.Logger
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	Health   *Health
	APIs     []Registrar
}

// NewRouter builds the chi router.
func NewRouter(deps Deps) http.Handler {
	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	health := deps.Health
	if health == nil {
		health = NewHealth()
	}

	r := chi.NewRouter()
	r.Use(request.RequestID)
	r.Use(requesttime.Middleware)
	r.Use(request.Logger(deps.Logger, deps.Metrics))
	r.Use(request.Recovery(deps.Logger))

	r.Get("/health", health.ServeHTTP)
	r.Get("/v1/health", health.ServeHTTP)
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	for _, api := range deps.APIs {
		api.Register(r)
	}
	return r
}
