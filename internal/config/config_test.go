package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crewflow/console/internal/config"
)

func TestDefaultConfigValues(t *testing.T) {
	cfg := config.NewDefaultConfig()

	assert.Equal(t, config.DefaultAPIHost, cfg.APIHost)
	assert.Equal(t, config.DefaultAPIPort, cfg.APIPort)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, config.DefaultCatalogTimeout, cfg.CatalogTimeout)
	assert.Equal(t, config.BackendSQLite, cfg.Store.Backend)
	assert.Equal(t, config.DefaultSQLitePath, cfg.Store.SQLitePath)
	assert.Equal(t, config.DefaultRedisEndpoint, cfg.Store.RedisAddr)
	assert.Equal(t, config.DefaultRedisPrefix, cfg.Store.RedisPrefix)
	assert.Equal(t, config.DefaultExportBucketURL, cfg.ExportBucketURL)
	assert.Equal(t, config.DefaultShutdownTimeout, cfg.ShutdownTimeout)
}

func TestDefaultConfigIsValid(t *testing.T) {
	assert.NoError(t, config.NewDefaultConfig().Validate())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("API_HOST", "127.0.0.1")
	t.Setenv("API_PORT", "9999")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CATALOG_BASE_URL", "http://catalog:9090")
	t.Setenv("STORE_BACKEND", "redis")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("REDIS_PASSWORD", "secret")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("REDIS_PREFIX", "myprefix")
	t.Setenv("EXPORT_BUCKET_URL", "file:///tmp/exports")

	cfg := config.NewDefaultConfig()
	require.NoError(t, cfg.LoadFromEnv())

	assert.Equal(t, "127.0.0.1", cfg.APIHost)
	assert.Equal(t, 9999, cfg.APIPort)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "http://catalog:9090", cfg.CatalogBaseURL)
	assert.Equal(t, config.BackendRedis, cfg.Store.Backend)
	assert.Equal(t, "redis:6379", cfg.Store.RedisAddr)
	assert.Equal(t, "secret", cfg.Store.RedisPassword)
	assert.Equal(t, 3, cfg.Store.RedisDB)
	assert.Equal(t, "myprefix", cfg.Store.RedisPrefix)
	assert.Equal(t, "file:///tmp/exports", cfg.ExportBucketURL)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromEnvInvalidInts(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unparsable_port", "API_PORT", "not-a-number"},
		{"port_out_of_range", "API_PORT", "70000"},
		{"port_zero", "API_PORT", "0"},
		{"redis_db_out_of_range", "REDIS_DB", "99"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			cfg := config.NewDefaultConfig()
			assert.Error(t, cfg.LoadFromEnv())
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		configMod func(*config.Config)
		expected  error
	}{
		{
			name: "invalid_port",
			configMod: func(c *config.Config) {
				c.APIPort = 0
			},
			expected: config.ErrInvalidAPIPort,
		},
		{
			name: "empty_catalog_url",
			configMod: func(c *config.Config) {
				c.CatalogBaseURL = ""
			},
			expected: config.ErrCatalogURLEmpty,
		},
		{
			name: "unknown_backend",
			configMod: func(c *config.Config) {
				c.Store.Backend = "dynamo"
			},
			expected: config.ErrInvalidStoreBackend,
		},
		{
			name: "sqlite_path_empty",
			configMod: func(c *config.Config) {
				c.Store.SQLitePath = ""
			},
			expected: config.ErrSQLitePathEmpty,
		},
		{
			name: "redis_addr_empty",
			configMod: func(c *config.Config) {
				c.Store.Backend = config.BackendRedis
				c.Store.RedisAddr = ""
			},
			expected: config.ErrRedisAddrEmpty,
		},
		{
			name: "remote_url_empty",
			configMod: func(c *config.Config) {
				c.Store.Backend = config.BackendHTTP
				c.Store.RemoteBaseURL = ""
			},
			expected: config.ErrRemoteURLEmpty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.NewDefaultConfig()
			tt.configMod(cfg)
			assert.ErrorIs(t, cfg.Validate(), tt.expected)
		})
	}
}

func TestValidateHTTPBackend(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.Store.Backend = config.BackendHTTP
	cfg.Store.RemoteBaseURL = "http://flows:8081"
	assert.NoError(t, cfg.Validate())
}
