// Package inbound defines the interfaces for inbound ports (primary/driving adapters)
// These are the interfaces that the application exposes to the outside world
package inbound

import (
	"context"

	"github.com/alchemorsel/nutriguide/internal/domain/diet"
	"github.com/alchemorsel/nutriguide/internal/domain/health"
	"github.com/alchemorsel/nutriguide/internal/domain/restaurant"
)

// RecommendationService builds the full recommendation for one submission
// This is the primary port that HTTP handlers and the CLI use
type RecommendationService interface {
	BuildRecommendation(ctx context.Context, cmd RecommendCommand) *RecommendationDTO
}

// RecommendCommand contains the caller's submission
type RecommendCommand struct {
	Metrics  health.Metrics
	Location string
}

// RecommendationDTO is returned to the caller. Every field is always present.
type RecommendationDTO struct {
	HealthAdvice    string                  `json:"healthAdvice"`
	DietSuggestions []diet.Suggestion       `json:"dietSuggestions"`
	Restaurants     []restaurant.Restaurant `json:"restaurants"`
}
