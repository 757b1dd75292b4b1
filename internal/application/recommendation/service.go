// Package recommendation provides the application layer that sequences the
// health, diet and restaurant stages into one recommendation
// This implements the use case defined in the inbound ports
package recommendation

import (
	"context"
	"fmt"
	"strings"

	"github.com/alchemorsel/nutriguide/internal/domain/diet"
	"github.com/alchemorsel/nutriguide/internal/domain/health"
	"github.com/alchemorsel/nutriguide/internal/domain/restaurant"
	"github.com/alchemorsel/nutriguide/internal/ports/inbound"
	"github.com/alchemorsel/nutriguide/internal/ports/outbound"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DietAcquirer produces diet suggestions for advisory text
type DietAcquirer interface {
	Acquire(ctx context.Context, advisory string) []diet.Suggestion
}

// RestaurantSelector produces restaurants for a location and advisory text
type RestaurantSelector interface {
	Select(ctx context.Context, location, advisory string) []restaurant.Restaurant
}

// Service implements inbound.RecommendationService
type Service struct {
	diet        DietAcquirer
	restaurants RestaurantSelector
	fallbacks   outbound.FallbackRecorder
	logger      *zap.Logger
}

var _ inbound.RecommendationService = (*Service)(nil)

// NewService creates the orchestrator
func NewService(d DietAcquirer, r RestaurantSelector, fallbacks outbound.FallbackRecorder, logger *zap.Logger) *Service {
	if fallbacks == nil {
		fallbacks = outbound.NopFallbackRecorder{}
	}
	return &Service{
		diet:        d,
		restaurants: r,
		fallbacks:   fallbacks,
		logger:      logger.Named("recommendation-service"),
	}
}

// BuildRecommendation runs the three stages. A failing stage is replaced
// by its fixed result; the returned value is always fully populated.
// The diet and restaurant stages run concurrently.
func (s *Service) BuildRecommendation(ctx context.Context, cmd inbound.RecommendCommand) *inbound.RecommendationDTO {
	ctx, span := otel.Tracer("nutriguide/recommendation").Start(ctx, "recommendation.Build")
	defer span.End()

	advice := health.FallbackAdvisory
	s.isolate("health", func() {
		advice = health.Advise(cmd.Metrics)
	})

	suggestions := diet.StageFallback()
	restaurants := []restaurant.Restaurant{}
	location := strings.TrimSpace(cmd.Location)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.isolate("diet", func() {
			if got := s.diet.Acquire(gctx, advice); len(got) > 0 {
				suggestions = got
			}
		})
		return nil
	})
	if location != "" {
		g.Go(func() error {
			s.isolate("restaurants", func() {
				if got := s.restaurants.Select(gctx, location, advice); got != nil {
					restaurants = got
				}
			})
			return nil
		})
	}
	_ = g.Wait()

	span.SetAttributes(
		attribute.Int("recommendation.diet_suggestions", len(suggestions)),
		attribute.Int("recommendation.restaurants", len(restaurants)),
		attribute.Bool("recommendation.location", location != ""),
	)
	s.logger.Info("Recommendation built",
		zap.Int("diet_suggestions", len(suggestions)),
		zap.Int("restaurants", len(restaurants)),
		zap.Bool("location_supplied", location != ""))

	return &inbound.RecommendationDTO{
		HealthAdvice:    advice,
		DietSuggestions: suggestions,
		Restaurants:     restaurants,
	}
}

// isolate runs fn, converting a panic into a logged fallback for stage.
func (s *Service) isolate(stage string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Stage aborted, using fallback",
				zap.String("stage", stage),
				zap.String("panic", fmt.Sprint(r)),
				zap.Stack("stack"))
			s.fallbacks.RecordFallback(stage, "panic")
		}
	}()
	fn()
}
