package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "/api", cfg.BasePath)
	assert.Empty(t, cfg.BackendURL)
	assert.False(t, cfg.AuthRequired)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	assert.Equal(t, Delays{
		List:   500 * time.Millisecond,
		Get:    300 * time.Millisecond,
		Create: 600 * time.Millisecond,
		Update: 500 * time.Millisecond,
		Delete: 400 * time.Millisecond,
	}, cfg.Delays)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("BOUTIQUE_PORT", "9090")
	t.Setenv("BACKEND_URL", "http://localhost:8000")
	t.Setenv("BOUTIQUE_BASE_PATH", "v1/")
	t.Setenv("BOUTIQUE_CORS_ORIGINS", "http://a.test,http://b.test")
	t.Setenv("BOUTIQUE_DELAYS_LIST", "0s")
	t.Setenv("BOUTIQUE_FALLBACK_ON_5XX", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, "http://localhost:8000", cfg.BackendURL)
	assert.Equal(t, "/v1", cfg.BasePath)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	assert.Zero(t, cfg.Delays.List)
	assert.True(t, cfg.FallbackOn5xx)
}

func TestValidate_CollectsEveryProblem(t *testing.T) {
	cfg := Config{
		Port:          "8080",
		BackendURL:    "localhost:8000/api",
		AuthRequired:  true,
		AdminPassword: "short",
		ProxyTimeout:  time.Second,
		Delays:        Delays{Get: -time.Second},
	}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 5)
	assert.Contains(t, err.Error(), "BACKEND_URL")
	assert.Contains(t, err.Error(), "DELAYS_GET")
}

func TestValidate_AuthConfigured(t *testing.T) {
	cfg := Config{
		Port:          "8080",
		AuthRequired:  true,
		JWTSecret:     "s3cret",
		AdminEmail:    "owner@boutique.test",
		AdminPassword: "long-enough",
		ProxyTimeout:  time.Second,
	}
	assert.NoError(t, cfg.Validate())
}
