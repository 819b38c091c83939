// Package providers holds the concrete insurer integrations, built by
// variant name from per-provider settings.
package providers

import (
	"context"
	"net/http"
	"time"

	"insurance_quotes/internal/infrastructure/cache"
	"insurance_quotes/internal/platform/logger"
	"insurance_quotes/internal/provider"
)

const (
	VariantAPI  = "api"
	VariantWeb  = "web"
	VariantMock = "mock"
)

// Deps are shared by every integration built from the registry.
type Deps struct {
	Sessions  cache.SessionCache
	Transport http.RoundTripper
	Logger    *logger.Logger
}

// NewRegistry registers the api, web and mock variants.
func NewRegistry(deps Deps) *provider.Registry {
	if deps.Sessions == nil {
		deps.Sessions = cache.NewMemoryCache(cache.DefaultSessionTTL)
	}
	if deps.Transport == nil {
		deps.Transport = http.DefaultTransport
	}
	if deps.Logger == nil {
		deps.Logger = logger.NewNop()
	}

	reg := provider.NewRegistry()
	reg.Register(VariantAPI, func(code string, settings map[string]string) (provider.Factory, error) {
		cfg, err := parseAPIConfig(settings)
		if err != nil {
			return nil, err
		}
		log := deps.Logger.With("component", "provider.api", "provider", code)
		return func() provider.Provider {
			return &APIProvider{
				code:     code,
				cfg:      cfg,
				sessions: deps.Sessions,
				client:   &http.Client{Transport: deps.Transport, Timeout: cfg.RequestTimeout},
				log:      log,
			}
		}, nil
	})
	reg.Register(VariantWeb, func(code string, settings map[string]string) (provider.Factory, error) {
		cfg, err := parseWebConfig(settings)
		if err != nil {
			return nil, err
		}
		log := deps.Logger.With("component", "provider.web", "provider", code)
		return func() provider.Provider {
			return &WebProvider{code: code, cfg: cfg, transport: deps.Transport, log: log}
		}, nil
	})
	reg.Register(VariantMock, func(code string, settings map[string]string) (provider.Factory, error) {
		cfg, err := parseMockConfig(settings)
		if err != nil {
			return nil, err
		}
		return func() provider.Provider {
			return &MockProvider{code: code, cfg: cfg, sleep: sleepCtx}
		}, nil
	})
	return reg
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
