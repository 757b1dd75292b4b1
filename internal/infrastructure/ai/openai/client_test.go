package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alchemorsel/nutriguide/internal/ports/outbound"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type recordedOutcomes []string

func (r *recordedOutcomes) RecordUpstream(service, outcome string) {
	*r = append(*r, service+":"+outcome)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *recordedOutcomes) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	outcomes := &recordedOutcomes{}
	c := NewClient(Config{
		APIKey:      "sk-test",
		BaseURL:     srv.URL,
		Temperature: 0.7,
		Timeout:     2 * time.Second,
	}, outcomes, zaptest.NewLogger(t))
	return c, outcomes
}

func TestComplete_Success(t *testing.T) {
	var got ChatCompletionRequest
	c, outcomes := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(ChatCompletionResponse{
			Model:   "gpt-4o-2024-08-06",
			Choices: []Choice{{Message: Message{Role: "assistant", Content: `[{"name":"A"}]`}, FinishReason: "stop"}},
			Usage:   Usage{PromptTokens: 120, CompletionTokens: 40, TotalTokens: 160},
		})
	})

	resp, err := c.Complete(context.Background(), outbound.CompletionRequest{
		SystemPrompt: "system",
		UserPrompt:   "user",
		JSONOnly:     true,
	})

	require.NoError(t, err)
	assert.Equal(t, `[{"name":"A"}]`, resp.Content)
	assert.Equal(t, 120, resp.PromptTokens)
	assert.Equal(t, DefaultModel, got.Model)
	assert.Equal(t, 0.7, got.Temperature)
	require.NotNil(t, got.ResponseFormat)
	assert.Equal(t, "json_object", got.ResponseFormat.Type)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, Message{Role: "system", Content: "system"}, got.Messages[0])
	assert.Equal(t, Message{Role: "user", Content: "user"}, got.Messages[1])
	assert.Equal(t, recordedOutcomes{"openai:ok"}, *outcomes)
}

func TestComplete_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantErr string
	}{
		{
			name: "non-success status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, `{"error":{"message":"invalid api key"}}`, http.StatusUnauthorized)
			},
			wantErr: "API error 401",
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("<html>"))
			},
			wantErr: "failed to unmarshal response",
		},
		{
			name: "no choices",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"choices": []}`))
			},
			wantErr: "no response choices returned",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, outcomes := newTestClient(t, tt.handler)

			resp, err := c.Complete(context.Background(), outbound.CompletionRequest{UserPrompt: "x"})

			assert.Nil(t, resp)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Equal(t, recordedOutcomes{"openai:error"}, *outcomes)
		})
	}
}

func TestComplete_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer srv.Close()
	c := NewClient(Config{APIKey: "k", BaseURL: srv.URL, Timeout: 50 * time.Millisecond}, nil, zaptest.NewLogger(t))

	_, err := c.Complete(context.Background(), outbound.CompletionRequest{})

	assert.Error(t, err)
}
