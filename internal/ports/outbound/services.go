// Package outbound defines the interfaces for outbound ports (secondary/driven adapters)
// These are the interfaces that the application uses to interact with external systems
package outbound

import (
	"context"
	"errors"
)

// ErrZeroResults signals a successful place search that matched nothing.
var ErrZeroResults = errors.New("places: zero results")

// CompletionService defines the interface for generative-text completion
type CompletionService interface {
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
}

// CompletionRequest is a single system+user exchange
type CompletionRequest struct {
	SystemPrompt string
	UserPrompt   string
	// JSONOnly asks the service to constrain output to a JSON object
	JSONOnly bool
}

// CompletionResponse carries the model's text and token usage
type CompletionResponse struct {
	Content          string
	Model            string
	PromptTokens     int
	CompletionTokens int
}

// PlacesService defines the interface for geocoding and nearby place search
type PlacesService interface {
	Geocode(ctx context.Context, address string) (Coordinates, error)
	// NearbySearch returns ErrZeroResults when the search matched nothing
	NearbySearch(ctx context.Context, req NearbySearchRequest) ([]Place, error)
	PhotoURL(reference string, maxWidth int) string
}

// Coordinates is a latitude/longitude pair
type Coordinates struct {
	Lat float64
	Lng float64
}

// NearbySearchRequest scopes a nearby search
type NearbySearchRequest struct {
	Location Coordinates
	Radius   int
	Keyword  string
	Type     string
}

// Place is a single nearby-search result
type Place struct {
	PlaceID        string
	Name           string
	Vicinity       string
	Types          []string
	Rating         *float64
	PriceLevel     *int
	PhotoReference string
}

// FallbackRecorder records a stage substituting its fixed result
type FallbackRecorder interface {
	RecordFallback(stage, reason string)
}

// NopFallbackRecorder discards fallback events
type NopFallbackRecorder struct{}

// RecordFallback implements FallbackRecorder
func (NopFallbackRecorder) RecordFallback(string, string) {}

// UpstreamRecorder records the outcome of a call to an external service
type UpstreamRecorder interface {
	RecordUpstream(service, outcome string)
}

// NopUpstreamRecorder discards upstream outcomes
type NopUpstreamRecorder struct{}

// RecordUpstream implements UpstreamRecorder
func (NopUpstreamRecorder) RecordUpstream(string, string) {}
