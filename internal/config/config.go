// Package config reads service settings from the environment and the
// provider roster from YAML.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"insurance_quotes/internal/provider"
)

const (
	StoreDynamoDB = "dynamodb"
	StorePostgres = "postgres"
	StoreMemory   = "memory"

	SessionCacheMemory = "memory"
	SessionCacheRedis  = "redis"
)

// Config holds everything cmd/api needs to wire the service.
type Config struct {
	HTTPPort      int
	LogMode       string
	StoreDriver   string
	DynamoDB      DynamoDBConfig
	DatabaseDSN   string
	SessionCache  string
	RedisAddr     string
	SessionTTL    time.Duration
	Runner        provider.RunnerConfig
	Notify        NotifyConfig
	ProvidersFile string
}

type DynamoDBConfig struct {
	Region            string
	Endpoint          string
	AccessKeyID       string
	SecretAccessKey   string
	AggregationsTable string
	AttemptsTable     string
	QuotesTable       string
	// CreateTables bootstraps missing tables; meant for DynamoDB Local.
	CreateTables bool
}

type NotifyConfig struct {
	WebhookURL    string
	WebhookSecret string
	Timeout       time.Duration
}

// Load reads the environment. Unset keys fall back to defaults; malformed
// values are errors.
func Load() (Config, error) {
	cfg := Config{
		LogMode:     getenvDefault("LOG_MODE", "prod"),
		StoreDriver: strings.ToLower(getenvDefault("STORE_DRIVER", StoreDynamoDB)),
		DynamoDB: DynamoDBConfig{
			Region:            getenvDefault("AWS_REGION", "us-east-1"),
			Endpoint:          os.Getenv("DYNAMODB_ENDPOINT"),
			AccessKeyID:       getenvDefault("AWS_ACCESS_KEY_ID", "local"),
			SecretAccessKey:   getenvDefault("AWS_SECRET_ACCESS_KEY", "local"),
			AggregationsTable: getenvDefault("AGGREGATIONS_TABLE", "aggregation_requests"),
			AttemptsTable:     getenvDefault("ATTEMPTS_TABLE", "provider_attempts"),
			QuotesTable:       getenvDefault("QUOTES_TABLE", "quote_responses"),
		},
		DatabaseDSN:   os.Getenv("DATABASE_DSN"),
		SessionCache:  strings.ToLower(getenvDefault("SESSION_CACHE", SessionCacheMemory)),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		ProvidersFile: os.Getenv("PROVIDERS_FILE"),
		Notify: NotifyConfig{
			WebhookURL:    os.Getenv("NOTIFY_WEBHOOK_URL"),
			WebhookSecret: os.Getenv("NOTIFY_WEBHOOK_SECRET"),
		},
	}

	var err error
	if cfg.HTTPPort, err = getenvInt("HTTP_PORT", 8080); err != nil {
		return Config{}, err
	}
	if cfg.DynamoDB.CreateTables, err = getenvBool("DYNAMODB_CREATE_TABLES", cfg.DynamoDB.Endpoint != ""); err != nil {
		return Config{}, err
	}
	if cfg.SessionTTL, err = getenvDuration("SESSION_TTL", 12*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.Notify.Timeout, err = getenvDuration("NOTIFY_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}

	runner := provider.DefaultRunnerConfig()
	if runner.Timeout, err = getenvDuration("PROVIDER_TIMEOUT", runner.Timeout); err != nil {
		return Config{}, err
	}
	if runner.Retries, err = getenvInt("PROVIDER_RETRIES", runner.Retries); err != nil {
		return Config{}, err
	}
	if runner.RetryDelay, err = getenvDuration("PROVIDER_RETRY_DELAY", runner.RetryDelay); err != nil {
		return Config{}, err
	}
	cfg.Runner = runner

	return cfg, cfg.validate()
}

func (c Config) validate() error {
	switch c.StoreDriver {
	case StoreDynamoDB, StoreMemory:
	case StorePostgres:
		if c.DatabaseDSN == "" {
			return fmt.Errorf("STORE_DRIVER=postgres requires DATABASE_DSN")
		}
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q", c.StoreDriver)
	}
	switch c.SessionCache {
	case SessionCacheMemory:
	case SessionCacheRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("SESSION_CACHE=redis requires REDIS_ADDR")
		}
	default:
		return fmt.Errorf("unsupported SESSION_CACHE %q", c.SessionCache)
	}
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("HTTP_PORT out of range: %d", c.HTTPPort)
	}
	if c.Runner.Retries < 0 {
		return fmt.Errorf("PROVIDER_RETRIES must not be negative")
	}
	return nil
}

func getenvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func getenvBool(key string, def bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}
