package google

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/alchemorsel/nutriguide/internal/ports/outbound"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestClient(t *testing.T, mux *http.ServeMux) *Client {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return NewClient(Config{APIKey: "places-key", BaseURL: srv.URL}, nil, zaptest.NewLogger(t))
}

func TestGeocode(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/geocode/json", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "東京都", r.URL.Query().Get("address"))
		assert.Equal(t, "places-key", r.URL.Query().Get("key"))
		_, _ = w.Write([]byte(`{"status":"OK","results":[{"geometry":{"location":{"lat":35.6895,"lng":139.6917}}},{"geometry":{"location":{"lat":1,"lng":2}}}]}`))
	})
	c := newTestClient(t, mux)

	got, err := c.Geocode(context.Background(), "東京都")

	require.NoError(t, err)
	assert.Equal(t, outbound.Coordinates{Lat: 35.6895, Lng: 139.6917}, got)
}

func TestGeocode_NonOKStatus(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/geocode/json", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"REQUEST_DENIED","error_message":"The provided API key is invalid.","results":[]}`))
	})
	c := newTestClient(t, mux)

	_, err := c.Geocode(context.Background(), "東京都")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "REQUEST_DENIED")
}

type outcomeRecorder struct {
	mu       sync.Mutex
	outcomes []string
}

func (r *outcomeRecorder) RecordUpstream(service, outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, service+":"+outcome)
}

func TestUpstreamOutcome_FollowsBodyStatus(t *testing.T) {
	tests := []struct {
		name string
		path string
		body string
		call func(*Client) error
		want string
	}{
		{
			name: "geocode ok",
			path: "/geocode/json",
			body: `{"status":"OK","results":[{"geometry":{"location":{"lat":1,"lng":2}}}]}`,
			call: func(c *Client) error { _, err := c.Geocode(context.Background(), "東京都"); return err },
			want: "google_places:ok",
		},
		{
			name: "geocode denied",
			path: "/geocode/json",
			body: `{"status":"REQUEST_DENIED","results":[]}`,
			call: func(c *Client) error { _, err := c.Geocode(context.Background(), "東京都"); return err },
			want: "google_places:error",
		},
		{
			name: "search over quota",
			path: "/place/nearbysearch/json",
			body: `{"status":"OVER_QUERY_LIMIT","results":[]}`,
			call: func(c *Client) error {
				_, err := c.NearbySearch(context.Background(), outbound.NearbySearchRequest{Radius: 1500})
				return err
			},
			want: "google_places:error",
		},
		{
			name: "search zero results",
			path: "/place/nearbysearch/json",
			body: `{"status":"ZERO_RESULTS","results":[]}`,
			call: func(c *Client) error {
				_, err := c.NearbySearch(context.Background(), outbound.NearbySearchRequest{Radius: 1500})
				return err
			},
			want: "google_places:ok",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := http.NewServeMux()
			mux.HandleFunc(tt.path, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			})
			srv := httptest.NewServer(mux)
			t.Cleanup(srv.Close)
			recorder := &outcomeRecorder{}
			c := NewClient(Config{APIKey: "places-key", BaseURL: srv.URL}, recorder, zaptest.NewLogger(t))

			_ = tt.call(c)

			assert.Equal(t, []string{tt.want}, recorder.outcomes)
		})
	}
}

func TestNearbySearch(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/place/nearbysearch/json", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "35.6895,139.6917", q.Get("location"))
		assert.Equal(t, "1500", q.Get("radius"))
		assert.Equal(t, "restaurant", q.Get("type"))
		assert.Equal(t, "低糖質 健康", q.Get("keyword"))
		_, _ = w.Write([]byte(`{"status":"OK","results":[
			{"place_id":"abc","name":"ヘルシーダイナー","vicinity":"新宿区1-2","types":["restaurant","food"],"rating":4.3,"price_level":2,"photos":[{"photo_reference":"ph1"}]},
			{"place_id":"def","name":"定食屋","vicinity":"新宿区3-4"}
		]}`))
	})
	c := newTestClient(t, mux)

	got, err := c.NearbySearch(context.Background(), outbound.NearbySearchRequest{
		Location: outbound.Coordinates{Lat: 35.6895, Lng: 139.6917},
		Radius:   1500,
		Keyword:  "低糖質 健康",
		Type:     "restaurant",
	})

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "ヘルシーダイナー", got[0].Name)
	assert.Equal(t, "新宿区1-2", got[0].Vicinity)
	assert.Equal(t, "ph1", got[0].PhotoReference)
	require.NotNil(t, got[0].Rating)
	assert.Equal(t, 4.3, *got[0].Rating)
	require.NotNil(t, got[0].PriceLevel)
	assert.Equal(t, 2, *got[0].PriceLevel)
	assert.Nil(t, got[1].Rating)
	assert.Nil(t, got[1].PriceLevel)
	assert.Empty(t, got[1].PhotoReference)
}

func TestNearbySearch_ZeroResults(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/place/nearbysearch/json", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ZERO_RESULTS","results":[]}`))
	})
	c := newTestClient(t, mux)

	_, err := c.NearbySearch(context.Background(), outbound.NearbySearchRequest{Radius: 1500})

	assert.ErrorIs(t, err, outbound.ErrZeroResults)
}

func TestNearbySearch_Failures(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/place/nearbysearch/json", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("keyword") == "quota" {
			_, _ = w.Write([]byte(`{"status":"OVER_QUERY_LIMIT","results":[]}`))
			return
		}
		w.WriteHeader(http.StatusBadGateway)
	})
	c := newTestClient(t, mux)

	_, err := c.NearbySearch(context.Background(), outbound.NearbySearchRequest{Keyword: "quota"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, outbound.ErrZeroResults)
	assert.Contains(t, err.Error(), "OVER_QUERY_LIMIT")

	_, err = c.NearbySearch(context.Background(), outbound.NearbySearchRequest{Keyword: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API error 502")
}

func TestPhotoURL(t *testing.T) {
	c := NewClient(Config{APIKey: "k"}, nil, zaptest.NewLogger(t))

	assert.Equal(t,
		"https://maps.googleapis.com/maps/api/place/photo?maxwidth=400&photoreference=ref%2F1&key=k",
		c.PhotoURL("ref/1", 400))
}
