package usecase

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"insurance_quotes/internal/domain/entities"
	"insurance_quotes/internal/platform/logger"
	"insurance_quotes/internal/scoring"
	"insurance_quotes/internal/usecase/interfaces"
)

var (
	ErrAggregationNotFound = errors.New("aggregation request not found")
	ErrInvalidCategory     = errors.New("invalid category")
	ErrInvalidRequestID    = errors.New("invalid aggregation request id")
	ErrInvalidProviderCode = errors.New("invalid provider code")
	ErrInvalidAccessToken  = errors.New("invalid access token")
)

// IAggregationUseCase exposes the quote aggregation operations.
//
//   - POST /v1/aggregations => Submit()
//   - POST /v1/aggregations/:id/providers/:code/dispatch => DispatchProvider()
//   - GET /v1/aggregations/:id/progress => GetProgress()
//   - GET /v1/aggregations/:id/quotes => GetRankedQuotes()
//   - GET /v1/providers => ListProviders()

type IAggregationUseCase interface {
	Submit(ctx context.Context, category string, payload map[string]any) (entities.AggregationRequest, error)
	DispatchProvider(ctx context.Context, id, providerCode, accessToken string) (DispatchResult, error)
	GetProgress(ctx context.Context, id, accessToken string) (entities.Progress, error)
	GetRankedQuotes(ctx context.Context, id, accessToken string) ([]entities.ScoredQuote, error)
	ListProviders(ctx context.Context, category string) ([]entities.ProviderProfile, error)
}

// DispatchResult is the outcome of a single provider run.
type DispatchResult struct {
	Success         bool
	Price           float64
	Currency        string
	CoverageDetails map[string]any
	RawPayload      []byte
	DurationMs      int64
	Error           string
}

type AggregationUseCase struct {
	requests     interfaces.IAggregationRequestRepository
	attempts     interfaces.IProviderAttemptRepository
	quotes       interfaces.IQuoteResponseRepository
	roster       interfaces.IProviderRoster
	orchestrator *Orchestrator
	log          *logger.Logger

	// fan-outs started by Submit
	inflight sync.WaitGroup
}

var _ IAggregationUseCase = (*AggregationUseCase)(nil)

func NewAggregationUseCase(d Dependencies) *AggregationUseCase {
	log := d.Logger
	if log == nil {
		log = logger.NewNop()
	}
	return &AggregationUseCase{
		requests:     d.Requests,
		attempts:     d.Attempts,
		quotes:       d.Quotes,
		roster:       d.Roster,
		orchestrator: NewOrchestrator(d),
		log:          log.With("component", "usecase.aggregation"),
	}
}

// Submit creates the request, snapshots the enabled providers and starts the
// fan-out in the background. The fan-out is detached from ctx: an HTTP client
// going away does not cancel running providers.
func (u *AggregationUseCase) Submit(ctx context.Context, category string, payload map[string]any) (entities.AggregationRequest, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return entities.AggregationRequest{}, ErrInvalidCategory
	}
	if payload == nil {
		payload = map[string]any{}
	}

	now := time.Now().UTC()
	req := entities.AggregationRequest{
		ID:          uuid.NewString(),
		Category:    category,
		Payload:     payload,
		Status:      entities.AggregationStatusPending,
		AccessToken: uuid.NewString(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	created, err := u.requests.Create(ctx, req)
	if err != nil {
		return entities.AggregationRequest{}, fmt.Errorf("create aggregation request: %w", err)
	}

	dispatched, err := u.orchestrator.Dispatch(ctx, created)
	if err != nil {
		if errors.Is(err, ErrNoProvidersEnabled) {
			return dispatched, err
		}
		return entities.AggregationRequest{}, err
	}

	u.inflight.Add(1)
	go func() {
		defer u.inflight.Done()
		u.orchestrator.RunAll(context.WithoutCancel(ctx), dispatched)
	}()
	return dispatched, nil
}

// Wait blocks until every fan-out started by Submit has settled or ctx is
// done. It is used for graceful shutdown.
func (u *AggregationUseCase) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		u.inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// DispatchProvider runs one dispatched provider synchronously. It is the
// entry point for an external worker that executes providers one call at a
// time instead of the in-process fan-out. The run is detached from the
// caller's cancellation so a dropped connection cannot abandon a provider
// between its retries; the runner's attempt deadline still bounds it.
func (u *AggregationUseCase) DispatchProvider(ctx context.Context, id, providerCode, accessToken string) (DispatchResult, error) {
	providerCode = strings.TrimSpace(providerCode)
	if providerCode == "" {
		return DispatchResult{}, ErrInvalidProviderCode
	}
	req, err := u.authorize(ctx, id, accessToken)
	if err != nil {
		return DispatchResult{}, err
	}
	if !req.HasDispatched(providerCode) {
		return DispatchResult{}, ErrProviderNotDispatched
	}

	out, err := u.orchestrator.RunOne(context.WithoutCancel(ctx), req, providerCode)
	if err != nil {
		return DispatchResult{}, err
	}
	res := DispatchResult{Success: out.Succeeded(), DurationMs: out.Duration.Milliseconds()}
	if out.Succeeded() {
		res.Price = out.Quote.Price
		res.Currency = out.Quote.Currency
		res.CoverageDetails = out.Quote.CoverageDetails
		res.RawPayload = out.Quote.RawPayload
	} else if out.Err != nil {
		res.Error = out.Err.Error()
	}
	return res, nil
}

func (u *AggregationUseCase) GetProgress(ctx context.Context, id, accessToken string) (entities.Progress, error) {
	req, err := u.authorize(ctx, id, accessToken)
	if err != nil {
		return entities.Progress{}, err
	}
	attempts, err := u.attempts.ListByRequestID(ctx, req.ID)
	if err != nil {
		return entities.Progress{}, fmt.Errorf("list attempts: %w", err)
	}

	p := entities.Progress{
		AggregationRequestID: req.ID,
		Dispatched:           len(req.DispatchedProviders),
		Status:               req.Status,
	}
	for _, a := range attempts {
		if !req.HasDispatched(a.ProviderCode) {
			continue
		}
		p.Settled++
		if a.Succeeded() {
			p.Succeeded++
		}
	}
	return p, nil
}

// GetRankedQuotes scores the quotes stored so far against the current
// provider profiles. Partial results are returned while the request is still
// processing; a request whose providers all failed yields an empty slice.
func (u *AggregationUseCase) GetRankedQuotes(ctx context.Context, id, accessToken string) ([]entities.ScoredQuote, error) {
	req, err := u.authorize(ctx, id, accessToken)
	if err != nil {
		return nil, err
	}
	quotes, err := u.quotes.ListByRequestID(ctx, req.ID)
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}

	profiles, err := u.roster.List(ctx)
	if err != nil {
		// Scoring falls back to neutral defaults without profiles.
		u.log.Warn("list provider profiles failed", "aggregation_request_id", req.ID, "error", err)
		profiles = nil
	}
	byCode := make(map[string]entities.ProviderProfile, len(profiles))
	for _, p := range profiles {
		byCode[p.Code] = p
	}
	return scoring.ScoreAndRank(quotes, byCode), nil
}

func (u *AggregationUseCase) ListProviders(ctx context.Context, category string) ([]entities.ProviderProfile, error) {
	profiles, err := u.roster.List(ctx)
	if err != nil {
		return nil, err
	}
	category = strings.TrimSpace(category)
	out := make([]entities.ProviderProfile, 0, len(profiles))
	for _, p := range profiles {
		if category != "" && !p.Supports(category) {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (u *AggregationUseCase) authorize(ctx context.Context, id, accessToken string) (entities.AggregationRequest, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.AggregationRequest{}, ErrInvalidRequestID
	}
	req, err := u.requests.GetByID(ctx, id)
	if err != nil {
		return entities.AggregationRequest{}, err
	}
	if req.ID == "" {
		return entities.AggregationRequest{}, ErrAggregationNotFound
	}
	if subtle.ConstantTimeCompare([]byte(req.AccessToken), []byte(accessToken)) != 1 {
		return entities.AggregationRequest{}, ErrInvalidAccessToken
	}
	return req, nil
}
