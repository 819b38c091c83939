package routes

import (
	"context"
	"fmt"
	"time"

	"insurance_quotes/internal/adapter/persistence/repository"
	"insurance_quotes/internal/config"
	"insurance_quotes/internal/infrastructure/cache"
	"insurance_quotes/internal/infrastructure/database"
	"insurance_quotes/internal/infrastructure/metrics"
	"insurance_quotes/internal/infrastructure/notification"
	"insurance_quotes/internal/infrastructure/providers"
	"insurance_quotes/internal/platform/logger"
	"insurance_quotes/internal/provider"
	"insurance_quotes/internal/usecase"
	"insurance_quotes/internal/usecase/interfaces"

	"go.opentelemetry.io/otel"
)

// Application is the wired service: the use case plus whatever must be
// released on shutdown.
type Application struct {
	UseCase *usecase.AggregationUseCase
	Metrics *metrics.Metrics

	closers []func() error
}

// Close releases store and cache connections in reverse order of creation.
func (a *Application) Close() error {
	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	return first
}

type stores struct {
	requests interfaces.IAggregationRequestRepository
	attempts interfaces.IProviderAttemptRepository
	quotes   interfaces.IQuoteResponseRepository
}

// NewApplication builds every dependency selected by cfg.
func NewApplication(ctx context.Context, cfg config.Config, log *logger.Logger) (*Application, error) {
	app := &Application{Metrics: metrics.NewMetrics()}

	st, err := app.openStores(ctx, cfg, log)
	if err != nil {
		_ = app.Close()
		return nil, err
	}

	sessions, err := app.openSessionCache(ctx, cfg)
	if err != nil {
		_ = app.Close()
		return nil, err
	}

	entries, err := config.LoadRoster(cfg.ProvidersFile)
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	registry := providers.NewRegistry(providers.Deps{Sessions: sessions, Logger: log})
	catalog, err := config.BuildCatalog(registry, entries, log)
	if err != nil {
		_ = app.Close()
		return nil, err
	}

	notifier, err := newNotifier(cfg.Notify, log)
	if err != nil {
		_ = app.Close()
		return nil, err
	}

	runner := provider.NewRunner(cfg.Runner, log,
		provider.WithRecorder(app.Metrics),
		provider.WithTracer(otel.Tracer("insurance_quotes/provider")),
	)

	app.UseCase = usecase.NewAggregationUseCase(usecase.Dependencies{
		Requests: st.requests,
		Attempts: st.attempts,
		Quotes:   st.quotes,
		Roster:   config.NewRoster(entries),
		Catalog:  catalog,
		Runner:   runner,
		Notifier: notifier,
		Metrics:  app.Metrics,
		Logger:   log,
	})

	log.Info("application wired",
		"store", cfg.StoreDriver,
		"session_cache", cfg.SessionCache,
		"providers", len(catalog.Codes()),
	)
	return app, nil
}

func (a *Application) openStores(ctx context.Context, cfg config.Config, log *logger.Logger) (stores, error) {
	switch cfg.StoreDriver {
	case config.StoreMemory:
		mem := repository.NewMemoryStore()
		return stores{requests: mem.Requests(), attempts: mem.Attempts(), quotes: mem.Quotes()}, nil

	case config.StorePostgres:
		db, err := database.ConnectPostgres(ctx, cfg.DatabaseDSN)
		if err != nil {
			return stores{}, err
		}
		a.closers = append(a.closers, db.Close)
		pg := repository.NewPostgresStore(db)
		if err := pg.EnsureSchema(ctx); err != nil {
			return stores{}, fmt.Errorf("apply postgres schema: %w", err)
		}
		return stores{requests: pg.Requests(), attempts: pg.Attempts(), quotes: pg.Quotes()}, nil

	default:
		d := cfg.DynamoDB
		ddb, err := database.ConnectDynamoDB(ctx, database.DynamoDBOptions{
			Region:          d.Region,
			Endpoint:        d.Endpoint,
			AccessKeyID:     d.AccessKeyID,
			SecretAccessKey: d.SecretAccessKey,
		})
		if err != nil {
			return stores{}, err
		}
		if d.CreateTables {
			created, err := database.EnsureTables(ctx, ddb, 30*time.Second,
				database.TableSpec{Name: d.AggregationsTable, PartitionKey: "id"},
				database.TableSpec{Name: d.AttemptsTable, PartitionKey: "aggregation_request_id", SortKey: "provider_code"},
				database.TableSpec{Name: d.QuotesTable, PartitionKey: "aggregation_request_id", SortKey: "provider_code"},
			)
			if err != nil {
				return stores{}, err
			}
			if len(created) > 0 {
				log.Info("created dynamodb tables", "tables", created)
			}
		}
		return stores{
			requests: repository.NewAggregationRequestDynamoRepository(ddb, d.AggregationsTable),
			attempts: repository.NewProviderAttemptDynamoRepository(ddb, d.AttemptsTable),
			quotes:   repository.NewQuoteResponseDynamoRepository(ddb, d.QuotesTable),
		}, nil
	}
}

func (a *Application) openSessionCache(ctx context.Context, cfg config.Config) (cache.SessionCache, error) {
	if cfg.SessionCache != config.SessionCacheRedis {
		return cache.NewMemoryCache(cfg.SessionTTL), nil
	}
	rdb, err := cache.NewRedisClient(ctx, cfg.RedisAddr)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, rdb.Close)
	return cache.NewRedisCache(rdb, cfg.SessionTTL), nil
}

func newNotifier(cfg config.NotifyConfig, log *logger.Logger) (interfaces.INotifier, error) {
	if cfg.WebhookURL == "" {
		return notification.NewLogNotifier(log), nil
	}
	n, err := notification.NewWebhookNotifier(log, notification.WebhookConfig{
		URL:     cfg.WebhookURL,
		Secret:  cfg.WebhookSecret,
		Timeout: cfg.Timeout,
	})
	if err != nil {
		return nil, err
	}
	return n, nil
}
