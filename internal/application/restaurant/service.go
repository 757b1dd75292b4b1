// Package restaurant provides the application layer for restaurant selection
package restaurant

import (
	"context"
	"errors"
	"strings"

	"github.com/alchemorsel/nutriguide/internal/domain/restaurant"
	"github.com/alchemorsel/nutriguide/internal/ports/outbound"
	apperrors "github.com/alchemorsel/nutriguide/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

const (
	stage = "restaurants"

	// DefaultRadius is the nearby-search radius in meters
	DefaultRadius = 1500

	photoMaxWidth = 400
	placeType     = "restaurant"
	mapsPlaceURL  = "https://www.google.com/maps/place/?q=place_id:"
)

// Fallback reasons reported to the FallbackRecorder
const (
	ReasonNoCredential  = "no_credential"
	ReasonGeocodeFailed = "geocode_failed"
	ReasonSearchFailed  = "search_failed"
	ReasonTimeout       = "timeout"
)

// Config holds the selection limits
type Config struct {
	Radius     int
	MaxResults int
}

// Service selects restaurants either by live place search or from the catalog
type Service struct {
	places    outbound.PlacesService
	config    Config
	fallbacks outbound.FallbackRecorder
	logger    *zap.Logger
}

// NewService creates the selection service. A nil places service selects
// catalog mode for every request.
func NewService(places outbound.PlacesService, cfg Config, fallbacks outbound.FallbackRecorder, logger *zap.Logger) *Service {
	if cfg.Radius <= 0 {
		cfg.Radius = DefaultRadius
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = restaurant.DefaultLimit
	}
	if fallbacks == nil {
		fallbacks = outbound.NopFallbackRecorder{}
	}
	return &Service{
		places:    places,
		config:    cfg,
		fallbacks: fallbacks,
		logger:    logger.Named("restaurant-service"),
	}
}

// Select returns restaurants near location matching the needs inferred
// from the advisory text. It never fails; the result may be empty only
// when a live search matched nothing.
func (s *Service) Select(ctx context.Context, location, advisory string) []restaurant.Restaurant {
	ctx, span := otel.Tracer("nutriguide/restaurant").Start(ctx, "restaurant.Select")
	defer span.End()

	categories := restaurant.InferCategories(advisory)
	span.SetAttributes(attribute.Int("restaurant.categories", len(categories)))

	if s.places == nil {
		s.fallbacks.RecordFallback(stage, ReasonNoCredential)
		span.SetAttributes(attribute.String("restaurant.mode", "catalog"))
		return restaurant.Catalog(categories, s.config.MaxResults)
	}

	span.SetAttributes(attribute.String("restaurant.mode", "live"))
	results, err := s.search(ctx, location, advisory, categories)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "live search failed")
		return restaurant.Catalog(categories, s.config.MaxResults)
	}
	return results
}

func (s *Service) search(ctx context.Context, location, advisory string, categories []restaurant.Category) ([]restaurant.Restaurant, error) {
	coords, err := s.places.Geocode(ctx, location)
	if err != nil {
		s.fail(ReasonGeocodeFailed, "Geocoding failed, using catalog", err, zap.String("location", location))
		return nil, err
	}

	keyword := strings.Join(restaurant.SearchKeywords(advisory), " ")
	places, err := s.places.NearbySearch(ctx, outbound.NearbySearchRequest{
		Location: coords,
		Radius:   s.config.Radius,
		Keyword:  keyword,
		Type:     placeType,
	})
	if errors.Is(err, outbound.ErrZeroResults) {
		s.logger.Info("Nearby search matched nothing", zap.String("keyword", keyword))
		return []restaurant.Restaurant{}, nil
	}
	if err != nil {
		s.fail(ReasonSearchFailed, "Nearby search failed, using catalog", err, zap.String("keyword", keyword))
		return nil, err
	}

	out := make([]restaurant.Restaurant, 0, len(places))
	for _, p := range places {
		out = append(out, s.toRestaurant(p, categories))
	}
	out = restaurant.Truncate(out, s.config.MaxResults)

	s.logger.Info("Nearby restaurants found",
		zap.Int("count", len(out)),
		zap.String("keyword", keyword))
	return out, nil
}

// fail records a live-search fallback. Errors that did not come from the
// places adapter are logged at error level.
func (s *Service) fail(reason, msg string, err error, fields ...zap.Field) {
	if errors.Is(err, context.DeadlineExceeded) {
		reason = ReasonTimeout
	}
	fields = append(fields,
		zap.String("reason", reason),
		zap.String("error_code", string(apperrors.GetCode(err))),
		zap.Error(err))
	if apperrors.Is(err, apperrors.CodeExternalServiceError) {
		s.logger.Warn(msg, fields...)
	} else {
		s.logger.Error(msg, fields...)
	}
	s.fallbacks.RecordFallback(stage, reason)
}

func (s *Service) toRestaurant(p outbound.Place, categories []restaurant.Category) restaurant.Restaurant {
	r := restaurant.Restaurant{
		Name:          p.Name,
		Address:       p.Vicinity,
		Rating:        p.Rating,
		PriceLevel:    p.PriceLevel,
		HealthOptions: restaurant.SuggestHealthOptions(p.Name, p.Types, categories),
	}
	if p.PhotoReference != "" {
		r.PhotoURL = s.places.PhotoURL(p.PhotoReference, photoMaxWidth)
	}
	if p.PlaceID != "" {
		r.URL = mapsPlaceURL + p.PlaceID
	}
	return r
}
