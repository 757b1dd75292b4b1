package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/alchemorsel/nutriguide/internal/ports/outbound"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// MetricsCollector handles Prometheus metrics collection
type MetricsCollector struct {
	logger   *zap.Logger
	registry *prometheus.Registry

	// HTTP metrics
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Pipeline metrics
	stageFallbacksTotal   *prometheus.CounterVec
	upstreamRequestsTotal *prometheus.CounterVec
}

var (
	_ outbound.FallbackRecorder = (*MetricsCollector)(nil)
	_ outbound.UpstreamRecorder = (*MetricsCollector)(nil)
)

// NewMetricsCollector creates a collector backed by its own registry
func NewMetricsCollector(logger *zap.Logger) *MetricsCollector {
	m := &MetricsCollector{
		logger:   logger,
		registry: prometheus.NewRegistry(),

		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"method", "path", "status_code"},
		),
		stageFallbacksTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nutriguide_stage_fallbacks_total",
				Help: "Number of times a pipeline stage substituted its fallback",
			},
			[]string{"stage", "reason"},
		),
		upstreamRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nutriguide_upstream_requests_total",
				Help: "Outbound requests to completion and places providers",
			},
			[]string{"service", "outcome"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.stageFallbacksTotal,
		m.upstreamRequestsTotal,
	)
	return m
}

// HTTPMiddleware records request counts and latency per route pattern
func (m *MetricsCollector) HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		path := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				path = pattern
			}
		}
		code := strconv.Itoa(status)

		m.httpRequestsTotal.WithLabelValues(r.Method, path, code).Inc()
		m.httpRequestDuration.WithLabelValues(r.Method, path, code).Observe(time.Since(start).Seconds())
	})
}

// RecordFallback counts a stage fallback
func (m *MetricsCollector) RecordFallback(stage, reason string) {
	m.stageFallbacksTotal.WithLabelValues(stage, reason).Inc()
}

// RecordUpstream counts an outbound request outcome
func (m *MetricsCollector) RecordUpstream(service, outcome string) {
	m.upstreamRequestsTotal.WithLabelValues(service, outcome).Inc()
}

// Handler returns the Prometheus metrics HTTP handler
func (m *MetricsCollector) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		ErrorLog: zap.NewStdLog(m.logger),
	})
}
