package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/crewflow/console/pkg/util"
)

type (
	// Config holds configuration settings for the flow console
	Config struct {
		// API Server
		APIHost  string
		APIPort  int
		LogLevel string

		// Crew/Task catalog
		CatalogBaseURL string
		CatalogTimeout time.Duration

		// Flow store
		Store StoreConfig

		// Export
		ExportBucketURL string

		ShutdownTimeout time.Duration
	}

	// StoreConfig selects and configures the flow store backend
	StoreConfig struct {
		Backend       string
		SQLitePath    string
		RedisAddr     string
		RedisPassword string
		RedisDB       int
		RedisPrefix   string
		RemoteBaseURL string
		RemoteTimeout time.Duration
	}
)

const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendHTTP   = "http"

	DefaultAPIPort = 8080
	DefaultAPIHost = "0.0.0.0"
	MaxTCPPort     = 65535

	DefaultCatalogTimeout  = 30 * time.Second
	DefaultStoreTimeout    = 30 * time.Second
	DefaultShutdownTimeout = 10 * time.Second

	DefaultSQLitePath      = "flows.db"
	DefaultRedisEndpoint   = "localhost:6379"
	DefaultRedisDB         = 0
	DefaultRedisPrefix     = "crewflow"
	DefaultExportBucketURL = "mem://"

	MaxRedisDB = 15
)

var (
	ErrInvalidAPIPort      = errors.New("invalid API port")
	ErrInvalidStoreBackend = errors.New("invalid store backend")
	ErrSQLitePathEmpty     = errors.New("sqlite path empty")
	ErrRedisAddrEmpty      = errors.New("redis address empty")
	ErrRemoteURLEmpty      = errors.New("remote store base URL empty")
	ErrCatalogURLEmpty     = errors.New("catalog base URL empty")
)

var validBackends = util.SetOf(BackendSQLite, BackendRedis, BackendHTTP)

// NewDefaultConfig creates a configuration with sensible defaults for
// the API server, catalog, store backends, and export target
func NewDefaultConfig() *Config {
	return &Config{
		APIHost:        DefaultAPIHost,
		APIPort:        DefaultAPIPort,
		LogLevel:       "info",
		CatalogBaseURL: "http://localhost:9090",
		CatalogTimeout: DefaultCatalogTimeout,
		Store: StoreConfig{
			Backend:       BackendSQLite,
			SQLitePath:    DefaultSQLitePath,
			RedisAddr:     DefaultRedisEndpoint,
			RedisDB:       DefaultRedisDB,
			RedisPrefix:   DefaultRedisPrefix,
			RemoteTimeout: DefaultStoreTimeout,
		},
		ExportBucketURL: DefaultExportBucketURL,
		ShutdownTimeout: DefaultShutdownTimeout,
	}
}

// LoadFromEnv populates configuration values from environment variables.
// Returns an error if any env var cannot be parsed
func (c *Config) LoadFromEnv() error {
	if apiHost := os.Getenv("API_HOST"); apiHost != "" {
		c.APIHost = apiHost
	}
	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		c.LogLevel = logLevel
	}
	if catalogURL := os.Getenv("CATALOG_BASE_URL"); catalogURL != "" {
		c.CatalogBaseURL = catalogURL
	}
	if backend := os.Getenv("STORE_BACKEND"); backend != "" {
		c.Store.Backend = backend
	}
	if path := os.Getenv("SQLITE_PATH"); path != "" {
		c.Store.SQLitePath = path
	}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		c.Store.RedisAddr = addr
	}
	if password := os.Getenv("REDIS_PASSWORD"); password != "" {
		c.Store.RedisPassword = password
	}
	if prefix := os.Getenv("REDIS_PREFIX"); prefix != "" {
		c.Store.RedisPrefix = prefix
	}
	if remoteURL := os.Getenv("STORE_BASE_URL"); remoteURL != "" {
		c.Store.RemoteBaseURL = remoteURL
	}
	if bucketURL := os.Getenv("EXPORT_BUCKET_URL"); bucketURL != "" {
		c.ExportBucketURL = bucketURL
	}

	if err := loadEnvInt("API_PORT", &c.APIPort, 0, MaxTCPPort); err != nil {
		return err
	}
	return loadEnvInt("REDIS_DB", &c.Store.RedisDB, -1, MaxRedisDB)
}

// Validate checks that all configuration values are valid
func (c *Config) Validate() error {
	if c.APIPort <= 0 || c.APIPort > MaxTCPPort {
		return fmt.Errorf("%w: %d", ErrInvalidAPIPort, c.APIPort)
	}

	if c.CatalogBaseURL == "" {
		return ErrCatalogURLEmpty
	}

	if !validBackends.Contains(c.Store.Backend) {
		return fmt.Errorf("%w: %s", ErrInvalidStoreBackend, c.Store.Backend)
	}

	switch c.Store.Backend {
	case BackendSQLite:
		if c.Store.SQLitePath == "" {
			return ErrSQLitePathEmpty
		}
	case BackendRedis:
		if c.Store.RedisAddr == "" {
			return ErrRedisAddrEmpty
		}
	case BackendHTTP:
		if c.Store.RemoteBaseURL == "" {
			return ErrRemoteURLEmpty
		}
	}
	return nil
}

// loadEnvInt reads key from the environment, parses it as an integer,
// and sets *dst if the value is in the range (min, max). Returns an
// error if the value cannot be parsed or falls outside the valid range
func loadEnvInt[T ~int | ~int64](key string, dst *T, min, max T) error {
	s := os.Getenv(key)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid %s: %q", key, s)
	}
	tv := T(v)
	if tv <= min || tv > max {
		return fmt.Errorf("invalid %s: %d out of range [%d, %d]",
			key, tv, min+1, max)
	}
	*dst = tv
	return nil
}
