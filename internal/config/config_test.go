package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestConfigInitializeWithDefaults(t *testing.T) {
	var cfg Config
	cfg.InitializeWithDefaults()

	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultCountriesAPI, cfg.CountriesAPI)
	assert.Equal(t, 2, cfg.MaxRetries)
	assert.Equal(t, time.Second, cfg.BackoffBase)
	assert.Equal(t, 24*time.Hour, cfg.CacheTTL)
	assert.Equal(t, DriverSQLite, cfg.CacheDriver)
}

func TestConfigInitialize_File(t *testing.T) {
	path := writeConfig(t, `
server:
  port: "9000"
  debug: true
countries-api:
  base-url: http://localhost:8888/v3.1
  timeout-seconds: 3
  max-retries: 0
  backoff-base-ms: 10
cache:
  driver: memory
  ttl-hours: 1
auth:
  issuer: tests
  token-ttl-minutes: 5
`)
	var cfg Config
	require.NoError(t, cfg.Initialize(path))

	assert.Equal(t, "9000", cfg.Port)
	assert.True(t, cfg.DebugMode)
	assert.Equal(t, "http://localhost:8888/v3.1", cfg.CountriesAPI)
	assert.Equal(t, 3*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 0, cfg.MaxRetries)
	assert.Equal(t, 10*time.Millisecond, cfg.BackoffBase)
	assert.Equal(t, DriverMemory, cfg.CacheDriver)
	assert.Equal(t, time.Hour, cfg.CacheTTL)
	assert.Equal(t, "tests", cfg.JWTIssuer)
	assert.Equal(t, DefaultJWTAudience, cfg.JWTAudience)
	assert.Equal(t, 5*time.Minute, cfg.TokenTTL)
}

func TestConfigInitialize_InvalidPath(t *testing.T) {
	var cfg Config
	assert.Error(t, cfg.Initialize("/invalid_path/config.yaml"))
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultCacheTTL, cfg.CacheTTL)
}

func TestConfigInitialize_UnknownDriverKeepsDefault(t *testing.T) {
	path := writeConfig(t, "cache:\n  driver: redis\n")
	var cfg Config
	require.NoError(t, cfg.Initialize(path))
	assert.Equal(t, DriverSQLite, cfg.CacheDriver)
}

func TestConfigInitialize_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "7070")
	t.Setenv("COUNTRIES_API_URL", "http://stub/v3.1")
	t.Setenv("CACHE_DRIVER", DriverMemory)

	var cfg Config
	_ = cfg.Initialize("/invalid_path/config.yaml")
	assert.Equal(t, "7070", cfg.Port)
	assert.Equal(t, "http://stub/v3.1", cfg.CountriesAPI)
	assert.Equal(t, DriverMemory, cfg.CacheDriver)
}
