// Package container provides dependency injection using Uber FX
// This implements the Dependency Inversion Principle from SOLID
package container

import (
	"context"
	"errors"
	"net/http"
	"os"

	appdiet "github.com/alchemorsel/nutriguide/internal/application/diet"
	"github.com/alchemorsel/nutriguide/internal/application/recommendation"
	apprestaurant "github.com/alchemorsel/nutriguide/internal/application/restaurant"
	"github.com/alchemorsel/nutriguide/internal/infrastructure/ai/openai"
	"github.com/alchemorsel/nutriguide/internal/infrastructure/config"
	"github.com/alchemorsel/nutriguide/internal/infrastructure/http/handlers"
	"github.com/alchemorsel/nutriguide/internal/infrastructure/http/server"
	"github.com/alchemorsel/nutriguide/internal/infrastructure/monitoring"
	"github.com/alchemorsel/nutriguide/internal/infrastructure/places/google"
	"github.com/alchemorsel/nutriguide/internal/ports/inbound"
	"github.com/alchemorsel/nutriguide/internal/ports/outbound"
	"github.com/alchemorsel/nutriguide/pkg/healthcheck"
	"github.com/alchemorsel/nutriguide/pkg/logger"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// ConfigPath is the optional configuration file path; empty searches the defaults
type ConfigPath string

// WithConfigPath supplies the configuration file path
func WithConfigPath(path string) fx.Option {
	return fx.Supply(ConfigPath(path))
}

// CoreModule provides everything needed to build recommendations
var CoreModule = fx.Options(
	ConfigModule,
	LoggerModule,
	MonitoringModule,
	AdapterModule,
	ServiceModule,
)

// Module provides all dependency injection modules for the API server
var Module = fx.Options(
	CoreModule,

	// HTTP modules
	HTTPModule,

	// Lifecycle hooks
	LifecycleModule,
)

// ConfigModule provides configuration
var ConfigModule = fx.Provide(
	func(path ConfigPath) (*config.Config, error) {
		return config.Load(string(path))
	},
)

// LoggerModule provides logging
var LoggerModule = fx.Provide(
	func(cfg *config.Config) (*zap.Logger, error) {
		return logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.App.Debug,
			OutputPaths: cfg.App.LogOutput,
			Service:     "nutriguide",
		})
	},
)

// MonitoringModule provides metrics, tracing and the recorder ports
var MonitoringModule = fx.Provide(
	monitoring.NewMetricsCollector,
	func(cfg *config.Config, log *zap.Logger) (*monitoring.TracingProvider, error) {
		return monitoring.NewTracingProvider(monitoring.TracingConfig{
			ServiceName:    "nutriguide",
			ServiceVersion: cfg.App.Version,
			Environment:    cfg.App.Environment,
			OTLPEndpoint:   cfg.Monitoring.OTLPEndpoint,
			SamplingRate:   cfg.Monitoring.SamplingRate,
			Enabled:        cfg.Monitoring.EnableTracing,
		}, log)
	},
	func(cfg *config.Config, m *monitoring.MetricsCollector) outbound.FallbackRecorder {
		if !cfg.Monitoring.EnableMetrics {
			return outbound.NopFallbackRecorder{}
		}
		return m
	},
	func(cfg *config.Config, m *monitoring.MetricsCollector) outbound.UpstreamRecorder {
		if !cfg.Monitoring.EnableMetrics {
			return outbound.NopUpstreamRecorder{}
		}
		return m
	},
)

// AdapterModule provides the outbound adapters. An adapter is nil when its
// credential is absent, which puts its stage in fallback mode.
var AdapterModule = fx.Provide(
	NewCompletionService,
	NewPlacesService,
)

// NewCompletionService builds the OpenAI adapter, or nil without a key
func NewCompletionService(cfg *config.Config, recorder outbound.UpstreamRecorder, log *zap.Logger) outbound.CompletionService {
	if cfg.AI.OpenAIKey == "" {
		log.Info("OpenAI API key not configured, diet suggestions use fixed fallback")
		return nil
	}
	return openai.NewClient(openai.Config{
		APIKey:      cfg.AI.OpenAIKey,
		BaseURL:     cfg.AI.BaseURL,
		Model:       cfg.AI.OpenAIModel,
		Temperature: cfg.AI.Temperature,
		MaxTokens:   cfg.AI.MaxTokens,
		Timeout:     cfg.AI.Timeout,
	}, recorder, log.Named("openai"))
}

// NewPlacesService builds the Google Places adapter, or nil without a key
func NewPlacesService(cfg *config.Config, recorder outbound.UpstreamRecorder, log *zap.Logger) outbound.PlacesService {
	if cfg.Places.APIKey == "" {
		log.Info("Google Places API key not configured, restaurants come from the curated catalog")
		return nil
	}
	return google.NewClient(google.Config{
		APIKey:  cfg.Places.APIKey,
		BaseURL: cfg.Places.BaseURL,
		Timeout: cfg.Places.Timeout,
	}, recorder, log.Named("google-places"))
}

// ServiceModule provides application services
var ServiceModule = fx.Provide(
	func(completion outbound.CompletionService, fallbacks outbound.FallbackRecorder, log *zap.Logger) *appdiet.Service {
		return appdiet.NewService(completion, fallbacks, log)
	},
	func(cfg *config.Config, places outbound.PlacesService, fallbacks outbound.FallbackRecorder, log *zap.Logger) *apprestaurant.Service {
		return apprestaurant.NewService(places, apprestaurant.Config{
			Radius:     cfg.Places.SearchRadius,
			MaxResults: cfg.Places.MaxResults,
		}, fallbacks, log)
	},
	func(d *appdiet.Service, r *apprestaurant.Service, fallbacks outbound.FallbackRecorder, log *zap.Logger) inbound.RecommendationService {
		return recommendation.NewService(d, r, fallbacks, log)
	},
)

// HTTPModule provides HTTP server
var HTTPModule = fx.Provide(
	handlers.NewRecommendHandler,
	NewHealthCheck,
	server.NewServer,
)

// NewHealthCheck registers readiness checks for upstream credentials and static assets
func NewHealthCheck(cfg *config.Config, log *zap.Logger) *healthcheck.HealthCheck {
	h := healthcheck.New(cfg.App.Version, log.Named("healthcheck"))
	h.Register("openai", healthcheck.NewCredentialChecker("openai", cfg.AI.OpenAIKey))
	h.Register("google_places", healthcheck.NewCredentialChecker("google_places", cfg.Places.APIKey))
	h.Register("static_assets", healthcheck.NewCustomChecker("static_assets", staticAssetsCheck(cfg.Server.StaticDir)))
	return h
}

// staticAssetsCheck degrades when the configured front-end directory is missing
func staticAssetsCheck(dir string) func(context.Context) (healthcheck.Status, string, interface{}) {
	return func(context.Context) (healthcheck.Status, string, interface{}) {
		if dir == "" {
			return healthcheck.StatusHealthy, "static assets disabled", nil
		}
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			return healthcheck.StatusDegraded, "static directory not found", map[string]string{"dir": dir}
		}
		return healthcheck.StatusHealthy, "static directory available", map[string]string{"dir": dir}
	}
}

// LifecycleModule provides lifecycle hooks
var LifecycleModule = fx.Invoke(
	RegisterLifecycleHooks,
)

// RegisterLifecycleHooks registers application lifecycle hooks
func RegisterLifecycleHooks(
	lc fx.Lifecycle,
	shutdowner fx.Shutdowner,
	cfg *config.Config,
	log *zap.Logger,
	srv *server.Server,
	tracing *monitoring.TracingProvider,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting NutriGuide application",
				zap.String("version", cfg.App.Version),
				zap.String("environment", cfg.App.Environment),
				zap.Bool("completion_configured", cfg.AI.OpenAIKey != ""),
				zap.Bool("places_configured", cfg.Places.APIKey != ""),
			)

			go func() {
				if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("HTTP server stopped", zap.Error(err))
					_ = shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down NutriGuide application", zap.Duration("grace", cfg.ShutdownGrace()))

			ctx, cancel := context.WithTimeout(ctx, cfg.ShutdownGrace())
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				log.Error("Failed to shutdown HTTP server", zap.Error(err))
			}

			if err := tracing.Shutdown(ctx); err != nil {
				log.Error("Failed to shutdown tracing", zap.Error(err))
			}

			// Flush logs
			_ = log.Sync()

			return nil
		},
	})
}
