package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"insurance_quotes/internal/provider"
)

type mockConfig struct {
	BasePrice    float64
	Currency     string
	Latency      time.Duration
	FailureRatio float64
}

func parseMockConfig(settings map[string]string) (mockConfig, error) {
	cfg := mockConfig{Currency: strings.ToUpper(settingString(settings, "currency", "TRY"))}
	var err error
	if cfg.BasePrice, err = settingFloat(settings, "base_price", 1000); err != nil {
		return mockConfig{}, err
	}
	if cfg.BasePrice <= 0 {
		return mockConfig{}, fmt.Errorf("setting base_price must be positive")
	}
	if cfg.Latency, err = settingDuration(settings, "latency", 0); err != nil {
		return mockConfig{}, err
	}
	if cfg.FailureRatio, err = settingFloat(settings, "failure_ratio", 0); err != nil {
		return mockConfig{}, err
	}
	if cfg.FailureRatio < 0 || cfg.FailureRatio > 1 {
		return mockConfig{}, fmt.Errorf("setting failure_ratio must be within [0,1]")
	}
	return cfg, nil
}

// MockProvider stands in for an insurer in local runs and demo rosters.
// The price depends only on (code, category, payload).
type MockProvider struct {
	code  string
	cfg   mockConfig
	sleep func(context.Context, time.Duration) error
	roll  func() float64
}

var _ provider.Provider = (*MockProvider)(nil)

func (p *MockProvider) Code() string { return p.code }

func (p *MockProvider) Initialize(context.Context) error { return nil }

func (p *MockProvider) FetchQuote(ctx context.Context, category string, payload map[string]any) (provider.RawQuote, error) {
	if err := p.sleep(ctx, p.cfg.Latency); err != nil {
		return provider.RawQuote{}, provider.Transient("mock latency", err)
	}
	roll := rand.Float64
	if p.roll != nil {
		roll = p.roll
	}
	if p.cfg.FailureRatio > 0 && roll() < p.cfg.FailureRatio {
		return provider.RawQuote{}, provider.Transient("mock quote", fmt.Errorf("simulated outage"))
	}

	price, err := mockPrice(p.code, category, payload, p.cfg.BasePrice)
	if err != nil {
		return provider.RawQuote{}, provider.Validation("payload is not encodable: %v", err)
	}
	coverage := map[string]any{
		"limit":               math.Round(price * 400),
		"roadside_assistance": price > p.cfg.BasePrice,
	}
	raw, err := json.Marshal(map[string]any{
		"price":    price,
		"currency": p.cfg.Currency,
		"coverage": coverage,
	})
	if err != nil {
		return provider.RawQuote{}, provider.Transient("encode mock payload", err)
	}
	return provider.RawQuote{
		Price:           price,
		Currency:        p.cfg.Currency,
		CoverageDetails: coverage,
		RawPayload:      raw,
	}, nil
}

func (p *MockProvider) Cleanup(context.Context) error { return nil }

// mockPrice spreads prices over [0.8, 1.2) x base, rounded to cents.
func mockPrice(code, category string, payload map[string]any, base float64) (float64, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return 0, err
	}
	h := fnv.New64a()
	_, _ = h.Write([]byte(code))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(category))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write(encoded)
	frac := float64(h.Sum64()%10000) / 10000
	return round2(base * (0.8 + 0.4*frac)), nil
}

func jsonString(s string) (json.RawMessage, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return b, nil
}
