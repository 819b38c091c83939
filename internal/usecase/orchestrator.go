package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"insurance_quotes/internal/domain/entities"
	"insurance_quotes/internal/platform/logger"
	"insurance_quotes/internal/provider"
	"insurance_quotes/internal/usecase/interfaces"
)

var (
	ErrNoProvidersEnabled    = errors.New("no providers enabled for category")
	ErrAlreadyDispatched     = errors.New("provider already has a terminal attempt for this request")
	ErrProviderNotDispatched = errors.New("provider was not dispatched for this request")
	ErrRequestNotPending     = errors.New("aggregation request is not pending")
)

// Dependencies groups the collaborators of the orchestrator. Notifier and
// Metrics are optional.
type Dependencies struct {
	Requests interfaces.IAggregationRequestRepository
	Attempts interfaces.IProviderAttemptRepository
	Quotes   interfaces.IQuoteResponseRepository
	Roster   interfaces.IProviderRoster
	Catalog  interfaces.IProviderCatalog
	Runner   *provider.Runner
	Notifier interfaces.INotifier
	Metrics  interfaces.IAggregationMetrics
	Logger   *logger.Logger
}

// Orchestrator fans an aggregation request out to every enabled provider and
// owns every status transition of the request.
type Orchestrator struct {
	requests interfaces.IAggregationRequestRepository
	attempts interfaces.IProviderAttemptRepository
	quotes   interfaces.IQuoteResponseRepository
	roster   interfaces.IProviderRoster
	catalog  interfaces.IProviderCatalog
	runner   *provider.Runner
	notifier interfaces.INotifier
	metrics  interfaces.IAggregationMetrics
	log      *logger.Logger
	now      func() time.Time

	quoteWriteAttempts int
	quoteWriteDelay    time.Duration
}

func NewOrchestrator(d Dependencies) *Orchestrator {
	log := d.Logger
	if log == nil {
		log = logger.NewNop()
	}
	runner := d.Runner
	if runner == nil {
		runner = provider.NewRunner(provider.DefaultRunnerConfig(), log)
	}
	return &Orchestrator{
		requests: d.Requests,
		attempts: d.Attempts,
		quotes:   d.Quotes,
		roster:   d.Roster,
		catalog:  d.Catalog,
		runner:   runner,
		notifier: d.Notifier,
		metrics:  d.Metrics,
		log:      log.With("component", "usecase.orchestrator"),
		now:      func() time.Time { return time.Now().UTC() },

		quoteWriteAttempts: 3,
		quoteWriteDelay:    200 * time.Millisecond,
	}
}

// Dispatch snapshots the enabled roster for the request's category and moves
// the request to PROCESSING. With no enabled provider the request is marked
// FAILED and ErrNoProvidersEnabled is returned. Providers are not run here;
// see RunAll.
func (o *Orchestrator) Dispatch(ctx context.Context, req entities.AggregationRequest) (entities.AggregationRequest, error) {
	profiles, err := o.roster.ListEnabled(ctx, req.Category)
	if err != nil {
		return entities.AggregationRequest{}, fmt.Errorf("list enabled providers: %w", err)
	}

	codes := make([]string, 0, len(profiles))
	for _, p := range profiles {
		if _, ok := o.catalog.Lookup(p.Code); !ok {
			o.log.Warn("enabled provider has no integration, skipping", "provider", p.Code)
			continue
		}
		codes = append(codes, p.Code)
	}

	if len(codes) == 0 {
		if err := o.requests.MarkFailed(ctx, req.ID, ErrNoProvidersEnabled.Error()); err != nil {
			return entities.AggregationRequest{}, fmt.Errorf("mark request failed: %w", err)
		}
		o.finished(entities.AggregationStatusFailed)
		req.Status = entities.AggregationStatusFailed
		req.FailureReason = ErrNoProvidersEnabled.Error()
		o.log.Warn("aggregation failed", "aggregation_request_id", req.ID, "category", req.Category, "error", ErrNoProvidersEnabled)
		return req, ErrNoProvidersEnabled
	}

	updated, err := o.requests.MarkProcessing(ctx, req.ID, codes)
	if err != nil {
		return entities.AggregationRequest{}, fmt.Errorf("mark request processing: %w", err)
	}
	if updated.ID == "" {
		return entities.AggregationRequest{}, ErrRequestNotPending
	}
	o.log.Info("aggregation dispatched", "aggregation_request_id", req.ID, "category", req.Category, "providers", codes)
	return updated, nil
}

// RunAll runs every dispatched provider concurrently and blocks until all of
// them have settled. A provider's failure never cancels its siblings.
func (o *Orchestrator) RunAll(ctx context.Context, req entities.AggregationRequest) {
	g, gctx := errgroup.WithContext(ctx)
	for _, code := range req.DispatchedProviders {
		g.Go(func() error {
			if _, err := o.RunOne(gctx, req, code); err != nil && !errors.Is(err, ErrAlreadyDispatched) {
				o.log.Error("provider pipeline failed", "aggregation_request_id", req.ID, "provider", code, "error", err)
			}
			return nil
		})
	}
	_ = g.Wait()
}

// RunOne runs the full pipeline for one provider: run with retries, enrich,
// record the terminal attempt, store the quote and try to complete the
// request. It is shared by the in-process fan-out and the external
// per-provider dispatch.
//
// The terminal attempt is written before the quote. Its conditional create is
// the claim on (request, provider): a losing concurrent run stops there, so a
// quote is only ever stored next to its own SUCCESS attempt. Completion waits
// for that quote (see completeIfSettled). A quote that still cannot be stored
// after retries is returned as an error and leaves the request PROCESSING.
func (o *Orchestrator) RunOne(ctx context.Context, req entities.AggregationRequest, code string) (provider.Outcome, error) {
	existing, err := o.attempts.Get(ctx, req.ID, code)
	if err != nil {
		return provider.Outcome{}, fmt.Errorf("get attempt: %w", err)
	}
	if existing.ProviderCode != "" {
		return provider.Outcome{}, ErrAlreadyDispatched
	}

	var out provider.Outcome
	factory, ok := o.catalog.Lookup(code)
	if !ok {
		out = provider.Outcome{ProviderCode: code, Err: fmt.Errorf("no integration registered for provider %q", code)}
	} else {
		out = o.runner.Run(ctx, code, factory, req.Category, req.Payload)
	}

	attempt := entities.ProviderAttempt{
		AggregationRequestID: req.ID,
		ProviderCode:         code,
		Outcome:              entities.AttemptOutcomeFailed,
		Attempts:             out.Attempts,
		DurationMs:           out.Duration.Milliseconds(),
		CreatedAt:            o.now(),
	}
	if out.Succeeded() {
		attempt.Outcome = entities.AttemptOutcomeSuccess
	} else if out.Err != nil {
		attempt.ErrorMessage = out.Err.Error()
	}

	var quote entities.QuoteResponse
	if out.Succeeded() {
		quote = entities.QuoteResponse{
			AggregationRequestID: req.ID,
			ProviderCode:         code,
			Price:                out.Quote.Price,
			Currency:             out.Quote.Currency,
			CoverageDetails:      out.Quote.CoverageDetails,
			RawPayload:           out.Quote.RawPayload,
			ReceivedAt:           o.now(),
		}
		quote.Breakdown = o.enrich(ctx, code, factory, out.Quote)
	}

	if err := o.attempts.Create(ctx, attempt); err != nil {
		if errors.Is(err, interfaces.ErrAlreadyExists) {
			return out, ErrAlreadyDispatched
		}
		return out, fmt.Errorf("record attempt: %w", err)
	}

	if out.Succeeded() {
		if err := o.storeQuote(ctx, quote); err != nil {
			o.log.Error("store quote failed, request cannot complete",
				"aggregation_request_id", req.ID,
				"provider", code,
				"error", err,
			)
			return out, fmt.Errorf("store quote: %w", err)
		}
	}

	o.log.Info("provider settled",
		"aggregation_request_id", req.ID,
		"provider", code,
		"outcome", attempt.Outcome,
		"attempts", attempt.Attempts,
		"duration_ms", attempt.DurationMs,
	)

	if err := o.completeIfSettled(ctx, req.ID); err != nil {
		o.log.Error("completion check failed", "aggregation_request_id", req.ID, "error", err)
	}
	return out, nil
}

// storeQuote retries transient store failures a few times. A quote that is
// already stored counts as stored.
func (o *Orchestrator) storeQuote(ctx context.Context, quote entities.QuoteResponse) error {
	attempts := max(o.quoteWriteAttempts, 1)
	var err error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return fmt.Errorf("%w (last error: %v)", ctx.Err(), err)
			case <-time.After(o.quoteWriteDelay):
			}
		}
		err = o.quotes.Create(ctx, quote)
		if err == nil || errors.Is(err, interfaces.ErrAlreadyExists) {
			return nil
		}
		o.log.Warn("store quote attempt failed",
			"aggregation_request_id", quote.AggregationRequestID,
			"provider", quote.ProviderCode,
			"attempt", i+1,
			"error", err,
		)
	}
	return err
}

// enrich runs the optional enrichment hook on a fresh instance. Failures are
// logged and the quote is kept without a breakdown.
func (o *Orchestrator) enrich(ctx context.Context, code string, factory provider.Factory, quote provider.RawQuote) *entities.PriceBreakdown {
	if factory == nil {
		return nil
	}
	enricher, ok := factory().(provider.Enricher)
	if !ok {
		return nil
	}
	breakdown, err := enricher.Enrich(ctx, quote)
	if err != nil {
		o.log.Warn("enrichment failed", "provider", code, "error", err)
		if o.metrics != nil {
			o.metrics.EnrichmentFailed(code)
		}
		return nil
	}
	return &breakdown
}

// completeIfSettled flips PROCESSING to COMPLETED once every dispatched
// provider has a terminal attempt and every SUCCESS attempt has its quote
// stored. The provider that writes the last missing quote is the one that
// sees the request complete. Concurrent callers may all observe the settled
// state; the conditional update lets exactly one of them win and send the
// notification.
func (o *Orchestrator) completeIfSettled(ctx context.Context, id string) error {
	req, err := o.requests.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get request: %w", err)
	}
	if req.ID == "" || req.Status != entities.AggregationStatusProcessing {
		return nil
	}

	attempts, err := o.attempts.ListByRequestID(ctx, id)
	if err != nil {
		return fmt.Errorf("list attempts: %w", err)
	}
	if settledCount(req, attempts) < len(req.DispatchedProviders) {
		return nil
	}

	quotes, err := o.quotes.ListByRequestID(ctx, id)
	if err != nil {
		return fmt.Errorf("list quotes: %w", err)
	}
	if missing := missingQuotes(req, attempts, quotes); len(missing) > 0 {
		o.log.Debug("settled but quotes pending", "aggregation_request_id", id, "providers", missing)
		return nil
	}

	won, err := o.requests.MarkCompleted(ctx, id)
	if err != nil {
		return fmt.Errorf("mark request completed: %w", err)
	}
	if !won {
		return nil
	}
	o.finished(entities.AggregationStatusCompleted)
	o.log.Info("aggregation completed", "aggregation_request_id", id, "providers", len(req.DispatchedProviders))

	o.notify(ctx, req, quotes)
	return nil
}

func (o *Orchestrator) notify(ctx context.Context, req entities.AggregationRequest, quotes []entities.QuoteResponse) {
	if o.notifier == nil {
		return
	}
	recipient := req.Recipient()
	if recipient == "" {
		o.log.Debug("no recipient on request, skipping notification", "aggregation_request_id", req.ID)
		return
	}

	notice := entities.CompletionNotice{
		AggregationRequestID: req.ID,
		Recipient:            recipient,
		RespondentCount:      len(quotes),
	}
	for _, q := range quotes {
		if notice.BestPrice == 0 || q.Price < notice.BestPrice {
			notice.BestPrice = q.Price
			notice.Currency = q.Currency
		}
	}

	if err := o.notifier.NotifyCompleted(ctx, notice); err != nil {
		o.log.Warn("completion notification failed", "aggregation_request_id", req.ID, "error", err)
	}
}

func (o *Orchestrator) finished(status entities.AggregationStatus) {
	if o.metrics != nil {
		o.metrics.AggregationFinished(status)
	}
}

func settledCount(req entities.AggregationRequest, attempts []entities.ProviderAttempt) int {
	n := 0
	for _, a := range attempts {
		if req.HasDispatched(a.ProviderCode) {
			n++
		}
	}
	return n
}

// missingQuotes lists dispatched providers with a SUCCESS attempt but no
// stored quote yet.
func missingQuotes(req entities.AggregationRequest, attempts []entities.ProviderAttempt, quotes []entities.QuoteResponse) []string {
	stored := make(map[string]struct{}, len(quotes))
	for _, q := range quotes {
		stored[q.ProviderCode] = struct{}{}
	}
	var missing []string
	for _, a := range attempts {
		if !a.Succeeded() || !req.HasDispatched(a.ProviderCode) {
			continue
		}
		if _, ok := stored[a.ProviderCode]; !ok {
			missing = append(missing, a.ProviderCode)
		}
	}
	return missing
}
