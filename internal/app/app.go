// Package app wires the lookup core from a Config.
package app

import (
	"fmt"
	"log"
	"net/http"

	"country-explorer/internal/auth"
	"country-explorer/internal/cache"
	"country-explorer/internal/config"
	"country-explorer/internal/countries"
	"country-explorer/internal/database"
	"country-explorer/internal/fetch"
)

// App holds the wired collaborators.
type App struct {
	Config     *config.Config
	Cache      *cache.ExpiringCache
	Repository *countries.Repository

	closeStore func() error
}

// New opens the cache store selected by cfg and builds the repository on top
// of it. Close must be called to release the store.
func New(cfg *config.Config) (*App, error) {
	store, closeStore, err := openStore(cfg)
	if err != nil {
		return nil, err
	}

	auth.Configure(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience, cfg.TokenTTL)

	expiring := cache.NewExpiringCache(store, cfg.CacheTTL)
	fetcher := fetch.NewFetcher(
		&http.Client{Timeout: cfg.HTTPTimeout},
		fetch.WithMaxRetries(cfg.MaxRetries),
		fetch.WithBackoffBase(cfg.BackoffBase),
	)
	cfg.LogOnDebug("countries api:", cfg.CountriesAPI, "retries:", cfg.MaxRetries, "backoff:", cfg.BackoffBase)

	return &App{
		Config:     cfg,
		Cache:      expiring,
		Repository: countries.NewRepository(cfg.CountriesAPI, fetcher, expiring),
		closeStore: closeStore,
	}, nil
}

// PurgeExpired removes expired cache entries and logs the outcome.
func (a *App) PurgeExpired() {
	removed, err := a.Cache.PurgeExpired()
	if err != nil {
		log.Printf("app: purge expired cache entries: %v", err)
		return
	}
	log.Printf("app: removed %d expired cache entries", removed)
}

// Close releases the cache store.
func (a *App) Close() error {
	if a.closeStore == nil {
		return nil
	}
	return a.closeStore()
}

func openStore(cfg *config.Config) (cache.Store, func() error, error) {
	switch cfg.CacheDriver {
	case config.DriverMemory:
		return cache.NewMemoryStore(cache.Options{ConcurrencySafe: true}), nil, nil
	case config.DriverSQLite, "":
		db, err := database.InitDB(cfg.CachePath, cfg.DebugMode)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, err
		}
		return cache.NewGormStore(db), sqlDB.Close, nil
	default:
		return nil, nil, fmt.Errorf("app: unknown cache driver %q", cfg.CacheDriver)
	}
}
