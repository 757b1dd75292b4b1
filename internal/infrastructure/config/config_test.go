package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearCredentialEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "OPENAI_API_KEY", "GOOGLE_PLACES_API_KEY",
		"NUTRIGUIDE_SERVER_PORT", "NUTRIGUIDE_AI_OPENAI_KEY", "NUTRIGUIDE_PLACES_API_KEY",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearCredentialEnv(t)

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, "NutriGuide", cfg.App.Name)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "public", cfg.Server.StaticDir)
	assert.Equal(t, "gpt-4o", cfg.AI.OpenAIModel)
	assert.Equal(t, 0.7, cfg.AI.Temperature)
	assert.Equal(t, 30*time.Second, cfg.AI.Timeout)
	assert.Equal(t, 1500, cfg.Places.SearchRadius)
	assert.Equal(t, 5, cfg.Places.MaxResults)
	assert.Equal(t, 10*time.Second, cfg.Places.Timeout)
	assert.Empty(t, cfg.AI.OpenAIKey)
	assert.Empty(t, cfg.Places.APIKey)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoad_ConventionalEnvironmentVariables(t *testing.T) {
	clearCredentialEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("GOOGLE_PLACES_API_KEY", "places-test")
	t.Setenv("PORT", "8081")

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, "sk-test", cfg.AI.OpenAIKey)
	assert.Equal(t, "places-test", cfg.Places.APIKey)
	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:8081", cfg.Address())
}

func TestLoad_PrefixedEnvironmentWins(t *testing.T) {
	clearCredentialEnv(t)
	t.Setenv("PORT", "8081")
	t.Setenv("NUTRIGUIDE_SERVER_PORT", "9090")
	t.Setenv("NUTRIGUIDE_PLACES_SEARCH_RADIUS", "800")

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 800, cfg.Places.SearchRadius)
}

func TestLoad_File(t *testing.T) {
	clearCredentialEnv(t)
	path := filepath.Join(t.TempDir(), "nutriguide.yaml")
	content := `
app:
  environment: production
  log_format: console
places:
  max_results: 3
ai:
  openai_model: gpt-4o-mini
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "console", cfg.App.LogFormat)
	assert.Equal(t, 3, cfg.Places.MaxResults)
	assert.Equal(t, "gpt-4o-mini", cfg.AI.OpenAIModel)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))

	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			App:        AppConfig{Name: "NutriGuide"},
			Server:     ServerConfig{Port: 3000},
			Places:     PlacesConfig{SearchRadius: 1500, MaxResults: 5},
			RateLimit:  RateLimitConfig{Enabled: true, RequestsPerMin: 60},
			Monitoring: MonitoringConfig{SamplingRate: 0.1},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"missing name", func(c *Config) { c.App.Name = "" }, "app.name"},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
		{"zero radius", func(c *Config) { c.Places.SearchRadius = 0 }, "places.search_radius"},
		{"zero max results", func(c *Config) { c.Places.MaxResults = 0 }, "places.max_results"},
		{"rate limit without budget", func(c *Config) { c.RateLimit.RequestsPerMin = 0 }, "rate_limit"},
		{"rate limit disabled", func(c *Config) { c.RateLimit = RateLimitConfig{} }, ""},
		{"sampling rate", func(c *Config) { c.Monitoring.SamplingRate = 2 }, "sampling_rate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestShutdownGrace(t *testing.T) {
	cfg := &Config{}
	assert.Equal(t, 30*time.Second, cfg.ShutdownGrace())

	cfg.Server.ShutdownTimeout = 5 * time.Second
	assert.Equal(t, 5*time.Second, cfg.ShutdownGrace())
}
