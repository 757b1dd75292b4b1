// Package google provides a Google Geocoding and Places adapter
package google

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/alchemorsel/nutriguide/internal/ports/outbound"
	apperrors "github.com/alchemorsel/nutriguide/pkg/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is the Google Maps web service root
	DefaultBaseURL = "https://maps.googleapis.com/maps/api"

	service = "google_places"

	statusOK          = "OK"
	statusZeroResults = "ZERO_RESULTS"
)

// Config holds the client settings
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// Client implements the PlacesService interface
type Client struct {
	config   Config
	client   *http.Client
	recorder outbound.UpstreamRecorder
	logger   *zap.Logger
}

var _ outbound.PlacesService = (*Client)(nil)

// NewClient creates a new places client
func NewClient(cfg Config, recorder outbound.UpstreamRecorder, logger *zap.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if recorder == nil {
		recorder = outbound.NopUpstreamRecorder{}
	}
	return &Client{
		config: cfg,
		client: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		recorder: recorder,
		logger:   logger,
	}
}

type geocodeResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

type nearbySearchResponse struct {
	Status       string        `json:"status"`
	ErrorMessage string        `json:"error_message"`
	Results      []placeResult `json:"results"`
}

type placeResult struct {
	PlaceID    string   `json:"place_id"`
	Name       string   `json:"name"`
	Vicinity   string   `json:"vicinity"`
	Types      []string `json:"types"`
	Rating     *float64 `json:"rating"`
	PriceLevel *int     `json:"price_level"`
	Photos     []struct {
		PhotoReference string `json:"photo_reference"`
	} `json:"photos"`
}

// Geocode resolves an address to coordinates using the first result
func (c *Client) Geocode(ctx context.Context, address string) (outbound.Coordinates, error) {
	params := url.Values{}
	params.Set("address", address)
	params.Set("key", c.config.APIKey)

	var resp geocodeResponse
	if err := c.get(ctx, "/geocode/json", params, &resp); err != nil {
		return outbound.Coordinates{}, apperrors.NewExternalServiceError(service, fmt.Errorf("geocoding request failed: %w", err))
	}
	if resp.Status != statusOK {
		c.recorder.RecordUpstream(service, "error")
		return outbound.Coordinates{}, apperrors.NewExternalServiceError(service, fmt.Errorf("geocoding failed: %s %s", resp.Status, resp.ErrorMessage))
	}
	c.recorder.RecordUpstream(service, "ok")
	if len(resp.Results) == 0 {
		return outbound.Coordinates{}, apperrors.NewExternalServiceError(service, fmt.Errorf("geocoding returned no results"))
	}

	loc := resp.Results[0].Geometry.Location
	c.logger.Debug("Location geocoded",
		zap.String("address", address),
		zap.Float64("lat", loc.Lat),
		zap.Float64("lng", loc.Lng))
	return outbound.Coordinates{Lat: loc.Lat, Lng: loc.Lng}, nil
}

// NearbySearch finds places around a location
func (c *Client) NearbySearch(ctx context.Context, req outbound.NearbySearchRequest) ([]outbound.Place, error) {
	params := url.Values{}
	params.Set("location", formatCoordinate(req.Location.Lat)+","+formatCoordinate(req.Location.Lng))
	params.Set("radius", strconv.Itoa(req.Radius))
	if req.Type != "" {
		params.Set("type", req.Type)
	}
	if req.Keyword != "" {
		params.Set("keyword", req.Keyword)
	}
	params.Set("key", c.config.APIKey)

	var resp nearbySearchResponse
	if err := c.get(ctx, "/place/nearbysearch/json", params, &resp); err != nil {
		return nil, apperrors.NewExternalServiceError(service, fmt.Errorf("place search request failed: %w", err))
	}
	switch resp.Status {
	case statusOK:
		c.recorder.RecordUpstream(service, "ok")
	case statusZeroResults:
		c.recorder.RecordUpstream(service, "ok")
		return nil, outbound.ErrZeroResults
	default:
		c.recorder.RecordUpstream(service, "error")
		return nil, apperrors.NewExternalServiceError(service, fmt.Errorf("place search failed: %s %s", resp.Status, resp.ErrorMessage))
	}

	places := make([]outbound.Place, 0, len(resp.Results))
	for _, r := range resp.Results {
		p := outbound.Place{
			PlaceID:    r.PlaceID,
			Name:       r.Name,
			Vicinity:   r.Vicinity,
			Types:      r.Types,
			Rating:     r.Rating,
			PriceLevel: r.PriceLevel,
		}
		if len(r.Photos) > 0 {
			p.PhotoReference = r.Photos[0].PhotoReference
		}
		places = append(places, p)
	}
	return places, nil
}

// PhotoURL builds the photo endpoint URL for a photo reference
func (c *Client) PhotoURL(reference string, maxWidth int) string {
	return c.config.BaseURL + "/place/photo?maxwidth=" + strconv.Itoa(maxWidth) +
		"&photoreference=" + url.QueryEscape(reference) +
		"&key=" + url.QueryEscape(c.config.APIKey)
}

// get decodes a 200 response into out. The caller records the outcome once
// it has checked the body status.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		c.recorder.RecordUpstream(service, "error")
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.recorder.RecordUpstream(service, "error")
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.recorder.RecordUpstream(service, "error")
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		c.recorder.RecordUpstream(service, "error")
		return fmt.Errorf("API error %d", resp.StatusCode)
	}
	if err := json.Unmarshal(body, out); err != nil {
		c.recorder.RecordUpstream(service, "error")
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}

func formatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
