package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"insurance_quotes/internal/domain/entities"
	"insurance_quotes/internal/infrastructure/cache"
	"insurance_quotes/internal/platform/logger"
	"insurance_quotes/internal/provider"
)

const maxResponseBytes = 1 << 20

var errUnauthorized = errors.New("insurer rejected the session")

type apiConfig struct {
	BaseURL        *url.URL
	Username       string
	Password       string
	APIKey         string
	RequestTimeout time.Duration
	TaxRate        float64
	CommissionRate float64
}

func parseAPIConfig(settings map[string]string) (apiConfig, error) {
	base, err := settingBaseURL(settings)
	if err != nil {
		return apiConfig{}, err
	}
	cfg := apiConfig{
		BaseURL:  base,
		Username: settingString(settings, "username", ""),
		Password: settingString(settings, "password", ""),
		APIKey:   settingString(settings, "api_key", ""),
	}
	if cfg.RequestTimeout, err = settingDuration(settings, "request_timeout", 30*time.Second); err != nil {
		return apiConfig{}, err
	}
	if cfg.TaxRate, err = settingFloat(settings, "tax_rate", 0.18); err != nil {
		return apiConfig{}, err
	}
	if cfg.CommissionRate, err = settingFloat(settings, "commission_rate", 0.10); err != nil {
		return apiConfig{}, err
	}
	return cfg, nil
}

type apiQuoteRequest struct {
	Category string         `json:"category"`
	Payload  map[string]any `json:"payload"`
}

type apiQuoteResponse struct {
	Price          float64        `json:"price"`
	Currency       string         `json:"currency"`
	Coverage       map[string]any `json:"coverage"`
	TaxRate        *float64       `json:"tax_rate"`
	CommissionRate *float64       `json:"commission_rate"`
	RiskScore      *float64       `json:"risk_score"`
}

type apiErrorResponse struct {
	Error string `json:"error"`
}

// APIProvider talks to an insurer's JSON quoting API. Sessions come from the
// shared cache, so a login is only performed on a miss or after a 401.
type APIProvider struct {
	code     string
	cfg      apiConfig
	sessions cache.SessionCache
	client   *http.Client
	log      *logger.Logger

	token string
}

var (
	_ provider.Provider = (*APIProvider)(nil)
	_ provider.Enricher = (*APIProvider)(nil)
)

func (p *APIProvider) Code() string { return p.code }

func (p *APIProvider) Initialize(ctx context.Context) error {
	if p.cfg.APIKey != "" {
		p.token = p.cfg.APIKey
		return nil
	}
	token, err := p.sessions.Acquire(ctx, p.sessionKey(), p.login)
	if err != nil {
		return provider.Transient("acquire session", err)
	}
	p.token = token
	return nil
}

func (p *APIProvider) FetchQuote(ctx context.Context, category string, payload map[string]any) (provider.RawQuote, error) {
	body, err := json.Marshal(apiQuoteRequest{Category: category, Payload: payload})
	if err != nil {
		return provider.RawQuote{}, provider.Validation("encode payload: %v", err)
	}

	status, raw, err := p.post(ctx, "quotes", body, p.token)
	if err != nil {
		return provider.RawQuote{}, provider.Transient("request quote", err)
	}

	switch {
	case status == http.StatusUnauthorized:
		if p.cfg.APIKey == "" {
			if err := p.sessions.Invalidate(ctx, p.sessionKey()); err != nil {
				p.log.Warn("session invalidation failed", "err", err)
			}
		}
		return provider.RawQuote{}, provider.Transient("request quote", errUnauthorized)
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return provider.RawQuote{}, provider.Validation("%s", errorMessage(raw, status))
	case status != http.StatusOK:
		return provider.RawQuote{}, provider.Transient("request quote", fmt.Errorf("insurer returned %d: %s", status, errorMessage(raw, status)))
	}

	var resp apiQuoteResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return provider.RawQuote{}, provider.Transient("decode quote", err)
	}
	return provider.RawQuote{
		Price:           resp.Price,
		Currency:        strings.ToUpper(strings.TrimSpace(resp.Currency)),
		CoverageDetails: resp.Coverage,
		RawPayload:      json.RawMessage(raw),
	}, nil
}

// Cleanup has nothing to release: the session stays cached for the next run
// and the transport is shared.
func (p *APIProvider) Cleanup(context.Context) error {
	return nil
}

// Enrich derives the premium breakdown from the insurer payload. Rates the
// insurer omits fall back to the configured defaults.
func (p *APIProvider) Enrich(_ context.Context, quote provider.RawQuote) (entities.PriceBreakdown, error) {
	var resp apiQuoteResponse
	if err := json.Unmarshal(quote.RawPayload, &resp); err != nil {
		return entities.PriceBreakdown{}, fmt.Errorf("decode raw payload: %w", err)
	}
	if resp.RiskScore == nil {
		return entities.PriceBreakdown{}, errors.New("raw payload has no risk_score")
	}

	taxRate := valueOrDefault(resp.TaxRate, p.cfg.TaxRate)
	commissionRate := valueOrDefault(resp.CommissionRate, p.cfg.CommissionRate)
	if taxRate < 0 || commissionRate < 0 {
		return entities.PriceBreakdown{}, fmt.Errorf("negative rate in payload: tax=%v commission=%v", taxRate, commissionRate)
	}

	net := quote.Price / (1 + taxRate)
	risk := math.Max(0, math.Min(1, *resp.RiskScore))
	return entities.PriceBreakdown{
		NetPremium:     round2(net),
		Taxes:          round2(quote.Price - net),
		Commission:     round2(net * commissionRate),
		CommissionRate: commissionRate,
		RiskScore:      risk,
		RiskBand:       riskBand(risk),
	}, nil
}

func (p *APIProvider) sessionKey() string {
	return p.code + ":" + p.cfg.Username
}

func (p *APIProvider) login(ctx context.Context) (string, error) {
	body, err := json.Marshal(map[string]string{"username": p.cfg.Username, "password": p.cfg.Password})
	if err != nil {
		return "", err
	}
	status, raw, err := p.post(ctx, "auth/login", body, "")
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("login returned %d: %s", status, errorMessage(raw, status))
	}
	var out struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("decode login response: %w", err)
	}
	p.log.Info("insurer session established")
	return out.Token, nil
}

func (p *APIProvider) post(ctx context.Context, path string, body []byte, token string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, resolve(p.cfg.BaseURL, path), bytes.NewReader(body))
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read response: %w", err)
	}
	return resp.StatusCode, raw, nil
}

func errorMessage(raw []byte, status int) string {
	var e apiErrorResponse
	if json.Unmarshal(raw, &e) == nil && e.Error != "" {
		return e.Error
	}
	return http.StatusText(status)
}

func riskBand(score float64) string {
	switch {
	case score < 0.33:
		return "LOW"
	case score < 0.66:
		return "MEDIUM"
	default:
		return "HIGH"
	}
}

func valueOrDefault(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
