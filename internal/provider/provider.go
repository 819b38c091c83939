// Package provider defines the contract every insurer integration satisfies
// and the runner that drives one integration with a per-attempt deadline,
// bounded retries and guaranteed resource release.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"insurance_quotes/internal/domain/entities"
)

// RawQuote is what a provider returns before scoring.
type RawQuote struct {
	Price           float64
	Currency        string
	CoverageDetails map[string]any
	RawPayload      json.RawMessage
}

// Validate enforces the success contract: a positive price and a currency code.
func (q RawQuote) Validate() error {
	if q.Price <= 0 {
		return fmt.Errorf("%w: price must be positive, got %v", ErrRejectedQuote, q.Price)
	}
	if strings.TrimSpace(q.Currency) == "" {
		return fmt.Errorf("%w: missing currency", ErrRejectedQuote)
	}
	return nil
}

// Provider is one insurer integration.
//
// An instance is used for a single attempt: Initialize acquires whatever
// session or browser-like resource the integration needs, FetchQuote talks to
// the insurer and Cleanup releases the resource. Cleanup is always called,
// including after a failed Initialize, and must tolerate being called while
// an abandoned FetchQuote is still unwinding after its context expired.
type Provider interface {
	Code() string
	Initialize(ctx context.Context) error
	FetchQuote(ctx context.Context, category string, payload map[string]any) (RawQuote, error)
	Cleanup(ctx context.Context) error
}

// Enricher is the optional post-success hook for integrations whose raw
// payload carries enough detail to derive a price breakdown. Enrich works on
// the payload alone and must not depend on an initialized session.
type Enricher interface {
	Enrich(ctx context.Context, quote RawQuote) (entities.PriceBreakdown, error)
}

// Factory creates a fresh, uninitialized Provider instance.
type Factory func() Provider
