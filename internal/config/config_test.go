package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"HTTP_PORT", "LOG_MODE", "STORE_DRIVER", "DYNAMODB_ENDPOINT", "DYNAMODB_CREATE_TABLES",
		"DATABASE_DSN", "SESSION_CACHE", "REDIS_ADDR", "SESSION_TTL", "PROVIDER_TIMEOUT",
		"PROVIDER_RETRIES", "PROVIDER_RETRY_DELAY", "NOTIFY_WEBHOOK_URL", "PROVIDERS_FILE",
		"AGGREGATIONS_TABLE", "ATTEMPTS_TABLE", "QUOTES_TABLE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 8080, cfg.HTTPPort)
	require.Equal(t, StoreDynamoDB, cfg.StoreDriver)
	require.Equal(t, SessionCacheMemory, cfg.SessionCache)
	require.Equal(t, 12*time.Hour, cfg.SessionTTL)
	require.Equal(t, 60*time.Second, cfg.Runner.Timeout)
	require.Equal(t, 2, cfg.Runner.Retries)
	require.Equal(t, 3*time.Second, cfg.Runner.RetryDelay)
	require.Equal(t, "aggregation_requests", cfg.DynamoDB.AggregationsTable)
	require.False(t, cfg.DynamoDB.CreateTables)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("STORE_DRIVER", "Postgres")
	t.Setenv("DATABASE_DSN", "postgres://quotes@localhost/quotes")
	t.Setenv("SESSION_CACHE", "redis")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("PROVIDER_TIMEOUT", "5s")
	t.Setenv("PROVIDER_RETRIES", "4")
	t.Setenv("PROVIDER_RETRY_DELAY", "250ms")
	t.Setenv("DYNAMODB_ENDPOINT", "http://localhost:8000")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 9090, cfg.HTTPPort)
	require.Equal(t, StorePostgres, cfg.StoreDriver)
	require.Equal(t, SessionCacheRedis, cfg.SessionCache)
	require.Equal(t, 5*time.Second, cfg.Runner.Timeout)
	require.Equal(t, 4, cfg.Runner.Retries)
	require.Equal(t, 250*time.Millisecond, cfg.Runner.RetryDelay)
	require.True(t, cfg.DynamoDB.CreateTables, "a local endpoint enables table bootstrap by default")
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{name: "bad duration", env: map[string]string{"PROVIDER_TIMEOUT": "soon"}, want: "PROVIDER_TIMEOUT"},
		{name: "bad port", env: map[string]string{"HTTP_PORT": "eighty"}, want: "HTTP_PORT"},
		{name: "unknown store", env: map[string]string{"STORE_DRIVER": "mongo"}, want: "unsupported STORE_DRIVER"},
		{name: "postgres without dsn", env: map[string]string{"STORE_DRIVER": "postgres"}, want: "DATABASE_DSN"},
		{name: "redis without addr", env: map[string]string{"SESSION_CACHE": "redis"}, want: "REDIS_ADDR"},
		{name: "negative retries", env: map[string]string{"PROVIDER_RETRIES": "-1"}, want: "PROVIDER_RETRIES"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.ErrorContains(t, err, tt.want)
		})
	}
}
