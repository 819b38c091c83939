package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"insurance_quotes/internal/adapter/persistence/repository"
	"insurance_quotes/internal/domain/entities"
	"insurance_quotes/internal/provider"
	"insurance_quotes/internal/usecase/interfaces"
	mock_interfaces "insurance_quotes/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

// fixedProvider answers with a fixed quote, or fails the first failures calls
// counted across instances of the same factory.
type fixedProvider struct {
	code      string
	price     float64
	err       error
	failures  *int32
	enrichErr error
}

func (p *fixedProvider) Code() string                     { return p.code }
func (p *fixedProvider) Initialize(context.Context) error { return nil }
func (p *fixedProvider) Cleanup(context.Context) error    { return nil }

func (p *fixedProvider) FetchQuote(context.Context, string, map[string]any) (provider.RawQuote, error) {
	if p.failures != nil && atomic.AddInt32(p.failures, -1) >= 0 {
		return provider.RawQuote{}, errors.New("upstream 503")
	}
	if p.err != nil {
		return provider.RawQuote{}, p.err
	}
	return provider.RawQuote{Price: p.price, Currency: "TRY", CoverageDetails: map[string]any{}}, nil
}

type enrichingProvider struct{ fixedProvider }

func (p *enrichingProvider) Enrich(_ context.Context, q provider.RawQuote) (entities.PriceBreakdown, error) {
	if p.enrichErr != nil {
		return entities.PriceBreakdown{}, p.enrichErr
	}
	return entities.PriceBreakdown{NetPremium: q.Price * 0.8, Taxes: q.Price * 0.2, RiskBand: "LOW"}, nil
}

type harness struct {
	uc       *AggregationUseCase
	store    *repository.MemoryStore
	catalog  *provider.Catalog
	roster   *mock_interfaces.MockIProviderRoster
	notifier *mock_interfaces.MockINotifier
	metrics  *mock_interfaces.MockIAggregationMetrics
}

type harnessOption func(*Dependencies)

func withRunner(cfg provider.RunnerConfig) harnessOption {
	return func(d *Dependencies) { d.Runner = provider.NewRunner(cfg, nil) }
}

func withQuotes(wrap func(interfaces.IQuoteResponseRepository) interfaces.IQuoteResponseRepository) harnessOption {
	return func(d *Dependencies) { d.Quotes = wrap(d.Quotes) }
}

func newHarness(t *testing.T, profiles []entities.ProviderProfile, opts ...harnessOption) *harness {
	t.Helper()
	ctrl := gomock.NewController(t)
	h := &harness{
		store:    repository.NewMemoryStore(),
		catalog:  provider.NewCatalog(),
		roster:   mock_interfaces.NewMockIProviderRoster(ctrl),
		notifier: mock_interfaces.NewMockINotifier(ctrl),
		metrics:  mock_interfaces.NewMockIAggregationMetrics(ctrl),
	}
	h.roster.EXPECT().ListEnabled(gomock.Any(), gomock.Any()).Return(profiles, nil).AnyTimes()
	h.roster.EXPECT().List(gomock.Any()).Return(profiles, nil).AnyTimes()

	runner := provider.NewRunner(provider.RunnerConfig{Timeout: time.Second, Retries: 2, RetryDelay: time.Millisecond}, nil)
	deps := Dependencies{
		Requests: h.store.Requests(),
		Attempts: h.store.Attempts(),
		Quotes:   h.store.Quotes(),
		Roster:   h.roster,
		Catalog:  h.catalog,
		Runner:   runner,
		Notifier: h.notifier,
		Metrics:  h.metrics,
	}
	for _, opt := range opts {
		opt(&deps)
	}
	h.uc = NewAggregationUseCase(deps)
	h.uc.orchestrator.quoteWriteDelay = time.Millisecond
	return h
}

func (h *harness) wait(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := h.uc.Wait(ctx); err != nil {
		t.Fatalf("fan-out did not settle: %v", err)
	}
}

// seedProcessing stores a request that has already been dispatched to codes.
func (h *harness) seedProcessing(t *testing.T, id string, payload map[string]any, codes ...string) {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC()
	if _, err := h.store.Requests().Create(ctx, entities.AggregationRequest{
		ID: id, Category: "traffic", Status: entities.AggregationStatusPending, AccessToken: "tok",
		Payload: payload, CreatedAt: now, UpdatedAt: now,
	}); err != nil {
		t.Fatalf("seed request: %v", err)
	}
	if _, err := h.store.Requests().MarkProcessing(ctx, id, codes); err != nil {
		t.Fatalf("mark processing: %v", err)
	}
}

// gatedQuotes holds the quote write of one provider until release is closed.
type gatedQuotes struct {
	interfaces.IQuoteResponseRepository
	code    string
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (g *gatedQuotes) Create(ctx context.Context, q entities.QuoteResponse) error {
	if q.ProviderCode == g.code {
		g.once.Do(func() { close(g.entered) })
		<-g.release
	}
	return g.IQuoteResponseRepository.Create(ctx, q)
}

// failingQuotes fails the first failures writes, or every write when
// failures is negative.
type failingQuotes struct {
	interfaces.IQuoteResponseRepository
	failures int32
	calls    atomic.Int32
}

func (f *failingQuotes) Create(ctx context.Context, q entities.QuoteResponse) error {
	n := f.calls.Add(1)
	if f.failures < 0 || n <= f.failures {
		return errors.New("dynamodb throttled")
	}
	return f.IQuoteResponseRepository.Create(ctx, q)
}

func profilesFor(codes ...string) []entities.ProviderProfile {
	out := make([]entities.ProviderProfile, 0, len(codes))
	for _, c := range codes {
		out = append(out, entities.ProviderProfile{Code: c, Name: c, Variant: "mock", Enabled: true})
	}
	return out
}

func TestAggregationUseCase_Submit(t *testing.T) {
	t.Run("invalid category", func(t *testing.T) {
		h := newHarness(t, nil)
		_, err := h.uc.Submit(context.Background(), "  ", nil)
		if !errors.Is(err, ErrInvalidCategory) {
			t.Fatalf("expected ErrInvalidCategory, got %v", err)
		}
	})

	t.Run("no providers enabled marks request failed", func(t *testing.T) {
		h := newHarness(t, nil)
		h.metrics.EXPECT().AggregationFinished(entities.AggregationStatusFailed).Times(1)

		req, err := h.uc.Submit(context.Background(), "traffic", nil)
		if !errors.Is(err, ErrNoProvidersEnabled) {
			t.Fatalf("expected ErrNoProvidersEnabled, got %v", err)
		}
		stored, _ := h.store.Requests().GetByID(context.Background(), req.ID)
		if stored.Status != entities.AggregationStatusFailed {
			t.Fatalf("expected FAILED, got %s", stored.Status)
		}
	})

	t.Run("create error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		requests := mock_interfaces.NewMockIAggregationRequestRepository(ctrl)
		requests.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(entities.AggregationRequest{})).Return(entities.AggregationRequest{}, errors.New("db"))
		uc := NewAggregationUseCase(Dependencies{Requests: requests})

		_, err := uc.Submit(context.Background(), "traffic", nil)
		if err == nil || err.Error() != "create aggregation request: db" {
			t.Fatalf("expected wrapped db error, got %v", err)
		}
	})
}

func TestAggregationUseCase_OneOfFourFails(t *testing.T) {
	h := newHarness(t, profilesFor("p1", "p2", "p3", "p4"))
	for code, price := range map[string]float64{"p1": 1000, "p2": 1500, "p3": 2000} {
		h.catalog.Add(code, func() provider.Provider { return &fixedProvider{code: code, price: price} })
	}
	h.catalog.Add("p4", func() provider.Provider { return &fixedProvider{code: "p4", err: errors.New("site down")} })

	h.metrics.EXPECT().AggregationFinished(entities.AggregationStatusCompleted).Times(1)
	h.notifier.EXPECT().NotifyCompleted(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, n entities.CompletionNotice) error {
			if n.Recipient != "guest@example.com" || n.BestPrice != 1000 || n.RespondentCount != 3 {
				t.Fatalf("unexpected notice: %+v", n)
			}
			return errors.New("smtp unavailable")
		},
	).Times(1)

	req, err := h.uc.Submit(context.Background(), "traffic", map[string]any{"email": "guest@example.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Status != entities.AggregationStatusProcessing || len(req.DispatchedProviders) != 4 {
		t.Fatalf("unexpected dispatched request: %+v", req)
	}
	h.wait(t)

	progress, err := h.uc.GetProgress(context.Background(), req.ID, req.AccessToken)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if progress.Dispatched != 4 || progress.Settled != 4 || progress.Succeeded != 3 || progress.Status != entities.AggregationStatusCompleted {
		t.Fatalf("unexpected progress: %+v", progress)
	}

	ranked, err := h.uc.GetRankedQuotes(context.Background(), req.ID, req.AccessToken)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ranked) != 3 {
		t.Fatalf("expected 3 quotes, got %d", len(ranked))
	}
	for i, code := range []string{"p1", "p2", "p3"} {
		if ranked[i].ProviderCode != code || ranked[i].Rank != i+1 {
			t.Fatalf("position %d: expected %s, got %+v", i, code, ranked[i])
		}
	}

	failed, _ := h.store.Attempts().Get(context.Background(), req.ID, "p4")
	if failed.Outcome != entities.AttemptOutcomeFailed || failed.Attempts != 3 || failed.ErrorMessage == "" {
		t.Fatalf("unexpected failed attempt: %+v", failed)
	}
}

func TestAggregationUseCase_FailThenSucceedLeavesNoResidue(t *testing.T) {
	h := newHarness(t, profilesFor("flaky"))
	failures := int32(1)
	h.catalog.Add("flaky", func() provider.Provider {
		return &fixedProvider{code: "flaky", price: 990, failures: &failures}
	})
	h.metrics.EXPECT().AggregationFinished(entities.AggregationStatusCompleted).Times(1)

	req, err := h.uc.Submit(context.Background(), "traffic", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h.wait(t)

	attempts, _ := h.store.Attempts().ListByRequestID(context.Background(), req.ID)
	quotes, _ := h.store.Quotes().ListByRequestID(context.Background(), req.ID)
	if len(attempts) != 1 || !attempts[0].Succeeded() || attempts[0].Attempts != 2 {
		t.Fatalf("unexpected attempts: %+v", attempts)
	}
	if len(quotes) != 1 || quotes[0].Price != 990 {
		t.Fatalf("unexpected quotes: %+v", quotes)
	}
}

func TestAggregationUseCase_AllFailedYieldsEmptyRanking(t *testing.T) {
	h := newHarness(t, profilesFor("a", "b"))
	h.catalog.Add("a", func() provider.Provider { return &fixedProvider{code: "a", err: provider.Validation("unsupported vehicle")} })
	h.catalog.Add("b", func() provider.Provider { return &fixedProvider{code: "b", price: -5} })
	h.metrics.EXPECT().AggregationFinished(entities.AggregationStatusCompleted).Times(1)

	req, err := h.uc.Submit(context.Background(), "traffic", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h.wait(t)

	ranked, err := h.uc.GetRankedQuotes(context.Background(), req.ID, req.AccessToken)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ranked == nil || len(ranked) != 0 {
		t.Fatalf("expected empty non-nil ranking, got %#v", ranked)
	}
	validation, _ := h.store.Attempts().Get(context.Background(), req.ID, "a")
	if validation.Attempts != 1 {
		t.Fatalf("validation failures must not be retried, got %d attempts", validation.Attempts)
	}
}

func TestAggregationUseCase_Enrichment(t *testing.T) {
	h := newHarness(t, profilesFor("rich", "poor"))
	h.catalog.Add("rich", func() provider.Provider {
		return &enrichingProvider{fixedProvider{code: "rich", price: 1000}}
	})
	h.catalog.Add("poor", func() provider.Provider {
		return &enrichingProvider{fixedProvider{code: "poor", price: 1200, enrichErr: errors.New("payload missing tariff")}}
	})
	h.metrics.EXPECT().EnrichmentFailed("poor").Times(1)
	h.metrics.EXPECT().AggregationFinished(entities.AggregationStatusCompleted).Times(1)

	req, err := h.uc.Submit(context.Background(), "traffic", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h.wait(t)

	quotes, _ := h.store.Quotes().ListByRequestID(context.Background(), req.ID)
	if len(quotes) != 2 {
		t.Fatalf("expected both quotes kept, got %d", len(quotes))
	}
	for _, q := range quotes {
		switch q.ProviderCode {
		case "rich":
			if q.Breakdown == nil || q.Breakdown.RiskBand != "LOW" {
				t.Fatalf("expected breakdown, got %+v", q.Breakdown)
			}
		case "poor":
			if q.Breakdown != nil {
				t.Fatalf("expected no breakdown after enrichment failure")
			}
		}
	}
}

func TestAggregationUseCase_DispatchProvider(t *testing.T) {
	h := newHarness(t, profilesFor("a", "b"))
	h.catalog.Add("a", func() provider.Provider { return &fixedProvider{code: "a", price: 700} })
	h.catalog.Add("b", func() provider.Provider { return &fixedProvider{code: "b", err: errors.New("timeout")} })

	ctx := context.Background()
	now := time.Now().UTC()
	_, _ = h.store.Requests().Create(ctx, entities.AggregationRequest{
		ID: "req-1", Category: "traffic", Status: entities.AggregationStatusPending, AccessToken: "tok", CreatedAt: now, UpdatedAt: now,
	})
	_, _ = h.store.Requests().MarkProcessing(ctx, "req-1", []string{"a", "b"})

	t.Run("wrong token", func(t *testing.T) {
		_, err := h.uc.DispatchProvider(ctx, "req-1", "a", "nope")
		if !errors.Is(err, ErrInvalidAccessToken) {
			t.Fatalf("expected ErrInvalidAccessToken, got %v", err)
		}
	})

	t.Run("not dispatched", func(t *testing.T) {
		_, err := h.uc.DispatchProvider(ctx, "req-1", "c", "tok")
		if !errors.Is(err, ErrProviderNotDispatched) {
			t.Fatalf("expected ErrProviderNotDispatched, got %v", err)
		}
	})

	t.Run("success then duplicate", func(t *testing.T) {
		res, err := h.uc.DispatchProvider(ctx, "req-1", "a", "tok")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !res.Success || res.Price != 700 || res.Currency != "TRY" {
			t.Fatalf("unexpected result: %+v", res)
		}
		_, err = h.uc.DispatchProvider(ctx, "req-1", "a", "tok")
		if !errors.Is(err, ErrAlreadyDispatched) {
			t.Fatalf("expected ErrAlreadyDispatched, got %v", err)
		}
	})

	t.Run("last provider completes the request", func(t *testing.T) {
		h.metrics.EXPECT().AggregationFinished(entities.AggregationStatusCompleted).Times(1)

		res, err := h.uc.DispatchProvider(ctx, "req-1", "b", "tok")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Success || res.Error == "" {
			t.Fatalf("expected failure result, got %+v", res)
		}
		stored, _ := h.store.Requests().GetByID(ctx, "req-1")
		if stored.Status != entities.AggregationStatusCompleted {
			t.Fatalf("expected COMPLETED, got %s", stored.Status)
		}
	})
}

func TestAggregationUseCase_Authorization(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()
	_, _ = h.store.Requests().Create(ctx, entities.AggregationRequest{ID: "req-1", AccessToken: "secret", Status: entities.AggregationStatusPending})

	if _, err := h.uc.GetProgress(ctx, "missing", "secret"); !errors.Is(err, ErrAggregationNotFound) {
		t.Fatalf("expected ErrAggregationNotFound, got %v", err)
	}
	if _, err := h.uc.GetProgress(ctx, " ", "secret"); !errors.Is(err, ErrInvalidRequestID) {
		t.Fatalf("expected ErrInvalidRequestID, got %v", err)
	}
	if _, err := h.uc.GetRankedQuotes(ctx, "req-1", "guess"); !errors.Is(err, ErrInvalidAccessToken) {
		t.Fatalf("expected ErrInvalidAccessToken, got %v", err)
	}
	p, err := h.uc.GetProgress(ctx, "req-1", "secret")
	if err != nil || p.Status != entities.AggregationStatusPending || p.Dispatched != 0 {
		t.Fatalf("unexpected progress %+v err=%v", p, err)
	}
}

func TestAggregationUseCase_ListProviders(t *testing.T) {
	profiles := []entities.ProviderProfile{
		{Code: "zeta", Categories: []string{"health"}},
		{Code: "alpha", Categories: []string{"traffic", "casco"}},
		{Code: "any"},
	}
	h := newHarness(t, profiles)

	got, err := h.uc.ListProviders(context.Background(), "traffic")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].Code != "alpha" || got[1].Code != "any" {
		t.Fatalf("unexpected providers: %+v", got)
	}
	all, _ := h.uc.ListProviders(context.Background(), "")
	if len(all) != 3 {
		t.Fatalf("expected all providers, got %d", len(all))
	}
}

func TestAggregationUseCase_CompletionWaitsForPendingQuoteWrite(t *testing.T) {
	gate := &gatedQuotes{code: "a", entered: make(chan struct{}), release: make(chan struct{})}
	h := newHarness(t, profilesFor("a", "b"), withQuotes(func(q interfaces.IQuoteResponseRepository) interfaces.IQuoteResponseRepository {
		gate.IQuoteResponseRepository = q
		return gate
	}))
	h.catalog.Add("a", func() provider.Provider { return &fixedProvider{code: "a", price: 800} })
	h.catalog.Add("b", func() provider.Provider { return &fixedProvider{code: "b", price: 950} })
	h.seedProcessing(t, "req-1", map[string]any{"email": "guest@example.com"}, "a", "b")
	ctx := context.Background()

	type result struct {
		res DispatchResult
		err error
	}
	slow := make(chan result, 1)
	go func() {
		res, err := h.uc.DispatchProvider(ctx, "req-1", "a", "tok")
		slow <- result{res, err}
	}()
	select {
	case <-gate.entered:
	case <-time.After(2 * time.Second):
		t.Fatalf("quote write for a never started")
	}

	if _, err := h.uc.DispatchProvider(ctx, "req-1", "b", "tok"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stored, _ := h.store.Requests().GetByID(ctx, "req-1")
	if stored.Status != entities.AggregationStatusProcessing {
		t.Fatalf("request completed with a quote still being written: %s", stored.Status)
	}

	h.metrics.EXPECT().AggregationFinished(entities.AggregationStatusCompleted).Times(1)
	h.notifier.EXPECT().NotifyCompleted(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, n entities.CompletionNotice) error {
			if n.RespondentCount != 2 || n.BestPrice != 800 {
				t.Errorf("unexpected notice: %+v", n)
			}
			return nil
		},
	).Times(1)
	close(gate.release)

	select {
	case r := <-slow:
		if r.err != nil || !r.res.Success {
			t.Fatalf("unexpected result %+v err=%v", r.res, r.err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("dispatch of a did not return")
	}

	stored, _ = h.store.Requests().GetByID(ctx, "req-1")
	if stored.Status != entities.AggregationStatusCompleted {
		t.Fatalf("expected COMPLETED, got %s", stored.Status)
	}
	ranked, err := h.uc.GetRankedQuotes(ctx, "req-1", "tok")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ranked) != 2 || ranked[0].ProviderCode != "a" {
		t.Fatalf("unexpected ranking: %+v", ranked)
	}
}

func TestAggregationUseCase_QuoteWriteRetries(t *testing.T) {
	t.Run("transient failures are retried", func(t *testing.T) {
		quotes := &failingQuotes{failures: 2}
		h := newHarness(t, profilesFor("a"), withQuotes(func(q interfaces.IQuoteResponseRepository) interfaces.IQuoteResponseRepository {
			quotes.IQuoteResponseRepository = q
			return quotes
		}))
		h.catalog.Add("a", func() provider.Provider { return &fixedProvider{code: "a", price: 640} })
		h.seedProcessing(t, "req-1", nil, "a")
		h.metrics.EXPECT().AggregationFinished(entities.AggregationStatusCompleted).Times(1)

		res, err := h.uc.DispatchProvider(context.Background(), "req-1", "a", "tok")
		if err != nil || !res.Success {
			t.Fatalf("unexpected result %+v err=%v", res, err)
		}
		if got := quotes.calls.Load(); got != 3 {
			t.Fatalf("expected 3 write calls, got %d", got)
		}
		stored, _ := h.store.Requests().GetByID(context.Background(), "req-1")
		if stored.Status != entities.AggregationStatusCompleted {
			t.Fatalf("expected COMPLETED, got %s", stored.Status)
		}
	})

	t.Run("persistent failure is reported and blocks completion", func(t *testing.T) {
		quotes := &failingQuotes{failures: -1}
		h := newHarness(t, profilesFor("a"), withQuotes(func(q interfaces.IQuoteResponseRepository) interfaces.IQuoteResponseRepository {
			quotes.IQuoteResponseRepository = q
			return quotes
		}))
		h.catalog.Add("a", func() provider.Provider { return &fixedProvider{code: "a", price: 640} })
		h.seedProcessing(t, "req-1", nil, "a")

		_, err := h.uc.DispatchProvider(context.Background(), "req-1", "a", "tok")
		if err == nil || !strings.Contains(err.Error(), "store quote") {
			t.Fatalf("expected store quote error, got %v", err)
		}
		stored, _ := h.store.Requests().GetByID(context.Background(), "req-1")
		if stored.Status != entities.AggregationStatusProcessing {
			t.Fatalf("expected PROCESSING, got %s", stored.Status)
		}
		attempt, _ := h.store.Attempts().Get(context.Background(), "req-1", "a")
		if !attempt.Succeeded() {
			t.Fatalf("expected SUCCESS attempt, got %+v", attempt)
		}
	})
}

func TestAggregationUseCase_DispatchProviderSurvivesCallerCancel(t *testing.T) {
	h := newHarness(t, profilesFor("a"), withRunner(provider.RunnerConfig{
		Timeout: time.Second, Retries: 2, RetryDelay: 200 * time.Millisecond,
	}))
	failures := int32(1)
	h.catalog.Add("a", func() provider.Provider { return &fixedProvider{code: "a", price: 520, failures: &failures} })
	h.seedProcessing(t, "req-1", nil, "a")
	h.metrics.EXPECT().AggregationFinished(entities.AggregationStatusCompleted).Times(1)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	res, err := h.uc.DispatchProvider(ctx, "req-1", "a", "tok")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ctx.Err() == nil {
		t.Fatalf("caller context should have expired during the retry delay")
	}
	if !res.Success || res.Price != 520 {
		t.Fatalf("expected success after retry, got %+v", res)
	}
	attempt, _ := h.store.Attempts().Get(context.Background(), "req-1", "a")
	if attempt.Attempts != 2 || !attempt.Succeeded() {
		t.Fatalf("unexpected attempt: %+v", attempt)
	}
	quotes, _ := h.store.Quotes().ListByRequestID(context.Background(), "req-1")
	if len(quotes) != 1 {
		t.Fatalf("expected stored quote, got %d", len(quotes))
	}
}
