// Package server provides the HTTP server for the recommendation API
package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/alchemorsel/nutriguide/internal/infrastructure/config"
	"github.com/alchemorsel/nutriguide/internal/infrastructure/http/handlers"
	"github.com/alchemorsel/nutriguide/internal/infrastructure/http/middleware"
	"github.com/alchemorsel/nutriguide/internal/infrastructure/monitoring"
	apperrors "github.com/alchemorsel/nutriguide/pkg/errors"
	"github.com/alchemorsel/nutriguide/pkg/healthcheck"
	"github.com/andybalholm/brotli"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"golang.org/x/net/http2"
)

// compressibleTypes are the content types the compressor encodes
var compressibleTypes = []string{
	"application/json",
	"text/html",
	"text/css",
	"text/plain",
	"text/javascript",
	"application/javascript",
}

// Server represents the HTTP server
type Server struct {
	config    *config.Config
	logger    *zap.Logger
	router    *chi.Mux
	server    *http.Server
	recommend *handlers.RecommendHandler
	health    *healthcheck.HealthCheck
	metrics   *monitoring.MetricsCollector
}

// NewServer creates a new HTTP server instance
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	recommend *handlers.RecommendHandler,
	health *healthcheck.HealthCheck,
	metrics *monitoring.MetricsCollector,
) *Server {
	s := &Server{
		config:    cfg,
		logger:    logger.Named("http-server"),
		recommend: recommend,
		health:    health,
		metrics:   metrics,
	}

	s.router = s.setupRouter()

	s.server = &http.Server{
		Addr:              cfg.Address(),
		Handler:           s.router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    cfg.Server.MaxHeaderBytes,
		ErrorLog:          zap.NewStdLog(s.logger),
	}

	return s
}

// setupRouter configures all routes and middleware
func (s *Server) setupRouter() *chi.Mux {
	r := chi.NewRouter()
	mw := middleware.New(s.config, s.logger)

	r.Use(chimiddleware.RealIP)
	r.Use(mw.RequestID)
	r.Use(mw.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(mw.Security)
	r.Use(mw.CORS)
	if s.config.Monitoring.EnableMetrics && s.metrics != nil {
		r.Use(s.metrics.HTTPMiddleware)
	}
	if s.config.Server.EnableCompression {
		r.Use(newCompressor().Handler)
	}

	r.Get("/health", s.health.LivenessHandler())
	r.Get("/ready", s.health.ReadinessHandler())
	if s.config.Monitoring.EnableMetrics && s.metrics != nil {
		r.Handle("/metrics", s.metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		if s.config.Server.RequestTimeout > 0 {
			r.Use(chimiddleware.Timeout(s.config.Server.RequestTimeout))
		}
		r.Use(mw.RateLimit)
		r.Post("/recommend", s.recommend.Recommend)
		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			middleware.WriteError(w, r, apperrors.NewNotFoundError("API endpoint not found").
				WithMetadata("path", r.URL.Path))
		})
	})

	s.setupStaticRoutes(r)

	return r
}

// setupStaticRoutes serves the browser form from the static directory, if present
func (s *Server) setupStaticRoutes(r chi.Router) {
	dir := s.config.Server.StaticDir
	if dir == "" {
		return
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		s.logger.Info("Static directory not found, skipping static routes", zap.String("dir", dir))
		return
	}
	r.Handle("/*", http.FileServer(http.Dir(dir)))
}

// newCompressor returns chi's compressor with brotli preferred over gzip
func newCompressor() *chimiddleware.Compressor {
	c := chimiddleware.NewCompressor(5, compressibleTypes...)
	c.SetEncoder("br", func(w io.Writer, level int) io.Writer {
		return brotli.NewWriterLevel(w, level)
	})
	return c
}

// Handler exposes the router
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server", zap.String("addr", s.server.Addr))

	if err := http2.ConfigureServer(s.server, nil); err != nil {
		return fmt.Errorf("failed to configure HTTP/2: %w", err)
	}

	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}
