package config

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultPort           = "8008"
	DefaultAllowedOrigin  = "*"
	DefaultCountriesAPI   = "https://restcountries.com/v3.1"
	DefaultHTTPTimeout    = 12 * time.Second
	DefaultMaxRetries     = 2
	DefaultBackoffBase    = 1000 * time.Millisecond
	DefaultCacheDriver    = DriverSQLite
	DefaultCachePath      = "country-cache.db"
	DefaultCacheTTL       = 24 * time.Hour
	DefaultJWTIssuer      = "country-explorer"
	DefaultJWTAudience    = "country-explorer-clients"
	DefaultTokenTTL       = 24 * time.Hour
	developmentJWTSecret  = "development-insecure-secret-change-me"
	minimumHTTPTimeoutSec = 1
)

// Cache drivers.
const (
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// Config contains project config.
type Config struct {
	Port          string
	AllowedOrigin string
	CountriesAPI  string        // base url of the RESTCountries v3.1 API
	HTTPTimeout   time.Duration // timeout for a single outgoing request
	MaxRetries    int           // retries on top of the first attempt
	BackoffBase   time.Duration // first backoff delay after a 429, doubled per attempt
	CacheDriver   string        // sqlite or memory
	CachePath     string        // sqlite database file
	CacheTTL      time.Duration // entries older than CacheTTL are treated as absent
	JWTSecret     string
	JWTIssuer     string
	JWTAudience   string
	TokenTTL      time.Duration
	DebugMode     bool // toggles extra logging, including gorm SQL output
}

// configYAML is used to decode the settings from the project config.yaml file.
type configYAML struct {
	Server struct {
		Port          string `yaml:"port"`
		AllowedOrigin string `yaml:"allowed-origin"`
		Debug         bool   `yaml:"debug"`
	} `yaml:"server"`

	CountriesAPI struct {
		BaseURL        string `yaml:"base-url"`
		TimeoutSeconds int    `yaml:"timeout-seconds"`
		MaxRetries     *int   `yaml:"max-retries"`
		BackoffBaseMs  int    `yaml:"backoff-base-ms"`
	} `yaml:"countries-api"`

	Cache struct {
		Driver   string `yaml:"driver"`
		Path     string `yaml:"path"`
		TTLHours int    `yaml:"ttl-hours"`
	} `yaml:"cache"`

	Auth struct {
		JWTSecret       string `yaml:"jwt-secret"`
		Issuer          string `yaml:"issuer"`
		Audience        string `yaml:"audience"`
		TokenTTLMinutes int    `yaml:"token-ttl-minutes"`
	} `yaml:"auth"`
}

// InitializeWithDefaults sets config settings to their defaults.
func (c *Config) InitializeWithDefaults() {
	c.Port = DefaultPort
	c.AllowedOrigin = DefaultAllowedOrigin
	c.CountriesAPI = DefaultCountriesAPI
	c.HTTPTimeout = DefaultHTTPTimeout
	c.MaxRetries = DefaultMaxRetries
	c.BackoffBase = DefaultBackoffBase
	c.CacheDriver = DefaultCacheDriver
	c.CachePath = DefaultCachePath
	c.CacheTTL = DefaultCacheTTL
	c.JWTSecret = developmentJWTSecret
	c.JWTIssuer = DefaultJWTIssuer
	c.JWTAudience = DefaultJWTAudience
	c.TokenTTL = DefaultTokenTTL
	c.DebugMode = false
}

// Initialize resets config settings to their defaults by calling InitializeWithDefaults
// before attempting to parse settings from the config file at path. Environment
// variables are applied last. A missing or malformed file leaves the defaults in place
// and is reported through the returned error.
func (c *Config) Initialize(path string) error {
	c.InitializeWithDefaults()
	defer c.applyEnv()

	configData, err := os.ReadFile(path)
	if err != nil {
		log.Println("config: failed to load configuration, running with default settings.", err)
		return err
	}

	temp := configYAML{}
	if err := yaml.NewDecoder(bytes.NewReader(configData)).Decode(&temp); err != nil {
		log.Println("config: failed to decode configuration, running with default settings.", err)
		return fmt.Errorf("config: decode %s: %w", path, err)
	}

	if temp.Server.Port != "" {
		c.Port = temp.Server.Port
	}
	if temp.Server.AllowedOrigin != "" {
		c.AllowedOrigin = temp.Server.AllowedOrigin
	}
	c.DebugMode = temp.Server.Debug

	if temp.CountriesAPI.BaseURL != "" {
		c.CountriesAPI = temp.CountriesAPI.BaseURL
	}
	if temp.CountriesAPI.TimeoutSeconds >= minimumHTTPTimeoutSec {
		c.HTTPTimeout = time.Duration(temp.CountriesAPI.TimeoutSeconds) * time.Second
	}
	if temp.CountriesAPI.MaxRetries != nil && *temp.CountriesAPI.MaxRetries >= 0 {
		c.MaxRetries = *temp.CountriesAPI.MaxRetries
	}
	if temp.CountriesAPI.BackoffBaseMs > 0 {
		c.BackoffBase = time.Duration(temp.CountriesAPI.BackoffBaseMs) * time.Millisecond
	}

	switch temp.Cache.Driver {
	case DriverSQLite, DriverMemory:
		c.CacheDriver = temp.Cache.Driver
	case "":
	default:
		log.Printf("config: unknown cache driver %q, using %s", temp.Cache.Driver, c.CacheDriver)
	}
	if temp.Cache.Path != "" {
		c.CachePath = temp.Cache.Path
	}
	if temp.Cache.TTLHours > 0 {
		c.CacheTTL = time.Duration(temp.Cache.TTLHours) * time.Hour
	}

	if temp.Auth.JWTSecret != "" {
		c.JWTSecret = temp.Auth.JWTSecret
	}
	if temp.Auth.Issuer != "" {
		c.JWTIssuer = temp.Auth.Issuer
	}
	if temp.Auth.Audience != "" {
		c.JWTAudience = temp.Auth.Audience
	}
	if temp.Auth.TokenTTLMinutes > 0 {
		c.TokenTTL = time.Duration(temp.Auth.TokenTTLMinutes) * time.Minute
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Port = getEnv("PORT", c.Port)
	c.CountriesAPI = getEnv("COUNTRIES_API_URL", c.CountriesAPI)
	c.CacheDriver = getEnv("CACHE_DRIVER", c.CacheDriver)
	c.CachePath = getEnv("CACHE_PATH", c.CachePath)
	c.JWTSecret = getEnv("JWT_SECRET", c.JWTSecret)
	c.JWTIssuer = getEnv("JWT_ISSUER", c.JWTIssuer)
	c.JWTAudience = getEnv("JWT_AUDIENCE", c.JWTAudience)
	if v := os.Getenv("DEBUG"); v != "" {
		if debug, err := strconv.ParseBool(v); err == nil {
			c.DebugMode = debug
		}
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// LogOnDebug logs all argument items if DebugMode is set.
func (c *Config) LogOnDebug(msg ...any) {
	if c.DebugMode {
		log.Println(append([]any{"dbg:"}, msg...)...)
	}
}
