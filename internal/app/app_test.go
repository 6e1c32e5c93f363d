package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"country-explorer/internal/cache"
	"country-explorer/internal/config"
	"country-explorer/internal/testutil"

	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T, driver string) *config.Config {
	t.Helper()
	api := testutil.NewFakeCountriesAPI(t)
	cfg := &config.Config{}
	cfg.InitializeWithDefaults()
	cfg.CountriesAPI = api.URL()
	cfg.CacheDriver = driver
	cfg.CachePath = filepath.Join(t.TempDir(), "cache.db")
	cfg.BackoffBase = time.Millisecond
	return cfg
}

func TestNew_SQLiteStorePersistsLookups(t *testing.T) {
	cfg := testConfig(t, config.DriverSQLite)

	a, err := New(cfg)
	require.NoError(t, err)
	country, err := a.Repository.ResolveByName(context.Background(), "Belgium")
	require.NoError(t, err)
	require.Equal(t, "Belgium", country.CommonName)
	require.NoError(t, a.Close())

	// a second app over the same file is served from the cache
	cfg.CountriesAPI = "http://127.0.0.1:0"
	b, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })
	country, err = b.Repository.ResolveByName(context.Background(), "belgium")
	require.NoError(t, err)
	require.Equal(t, "Belgium", country.CommonName)

	b.PurgeExpired()
	n, err := b.Cache.Len()
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestNew_MemoryStore(t *testing.T) {
	cfg := testConfig(t, config.DriverMemory)

	a, err := New(cfg)
	require.NoError(t, err)
	require.NoError(t, a.Close())
	require.Equal(t, cache.DefaultTTL, a.Cache.TTL())
}

func TestNew_UnknownDriver(t *testing.T) {
	cfg := testConfig(t, "redis")

	_, err := New(cfg)
	require.Error(t, err)
}
