package provider

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"insurance_quotes/internal/platform/logger"
)

const (
	DefaultTimeout    = 60 * time.Second
	DefaultRetries    = 2
	DefaultRetryDelay = 3 * time.Second
)

// RunnerConfig bounds a single provider run.
//
// Retries counts extra attempts: Retries=2 means at most 3 attempts.
type RunnerConfig struct {
	Timeout    time.Duration
	Retries    int
	RetryDelay time.Duration
}

func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{Timeout: DefaultTimeout, Retries: DefaultRetries, RetryDelay: DefaultRetryDelay}
}

func (c RunnerConfig) normalized() RunnerConfig {
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.Retries < 0 {
		c.Retries = 0
	}
	if c.RetryDelay < 0 {
		c.RetryDelay = 0
	}
	return c
}

// Recorder receives one callback per finished attempt. The metrics adapter
// implements it.
type Recorder interface {
	AttemptFinished(providerCode string, attempt int, err error, elapsed time.Duration)
}

// Outcome is the terminal result of a provider run. It doubles as the retry
// accumulator: every attempt folds into a new Outcome value.
type Outcome struct {
	ProviderCode string
	Quote        RawQuote
	Err          error
	Attempts     int
	Duration     time.Duration
}

func (o Outcome) Succeeded() bool {
	return o.Err == nil && o.Attempts > 0
}

func (o Outcome) fold(quote RawQuote, err error) Outcome {
	o.Attempts++
	o.Err = err
	if err == nil {
		o.Quote = quote
	}
	return o
}

// Runner drives one provider through initialize/fetch/cleanup with a
// per-attempt deadline and a fixed delay between attempts. It holds no
// per-run state and is safe for concurrent use.
type Runner struct {
	cfg      RunnerConfig
	clock    Clock
	log      *logger.Logger
	recorder Recorder
	tracer   trace.Tracer
}

type RunnerOption func(*Runner)

func WithClock(c Clock) RunnerOption {
	return func(r *Runner) { r.clock = c }
}

func WithRecorder(rec Recorder) RunnerOption {
	return func(r *Runner) { r.recorder = rec }
}

func WithTracer(t trace.Tracer) RunnerOption {
	return func(r *Runner) { r.tracer = t }
}

func NewRunner(cfg RunnerConfig, log *logger.Logger, opts ...RunnerOption) *Runner {
	if log == nil {
		log = logger.NewNop()
	}
	r := &Runner{
		cfg:    cfg.normalized(),
		clock:  SystemClock(),
		log:    log.With("component", "provider.runner"),
		tracer: otel.Tracer("insurance_quotes/provider"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Runner) Config() RunnerConfig { return r.cfg }

// Run executes up to Retries+1 sequential attempts. Each attempt uses a fresh
// provider instance from factory. Duration is measured from the start of the
// first attempt and includes retry delays.
func (r *Runner) Run(ctx context.Context, code string, factory Factory, category string, payload map[string]any) Outcome {
	ctx, span := r.tracer.Start(ctx, "provider.run", trace.WithAttributes(
		attribute.String("provider.code", code),
		attribute.String("quote.category", category),
	))
	defer span.End()

	start := r.clock.Now()
	out := Outcome{ProviderCode: code}

	for attempt := 0; attempt <= r.cfg.Retries; attempt++ {
		if attempt > 0 {
			r.log.Debug("retrying provider", "provider", code, "attempt", attempt+1, "delay", r.cfg.RetryDelay)
			if err := r.clock.Sleep(ctx, r.cfg.RetryDelay); err != nil {
				out.Err = fmt.Errorf("retry aborted: %w (last error: %v)", err, out.Err)
				break
			}
		}

		quote, err := r.attempt(ctx, code, factory, attempt, category, payload)
		out = out.fold(quote, err)
		if err == nil {
			break
		}
		r.log.Warn("provider attempt failed", "provider", code, "attempt", attempt+1, "error", err)
		if !IsRetryable(err) {
			break
		}
	}

	out.Duration = r.clock.Now().Sub(start)
	span.SetAttributes(attribute.Int("provider.attempts", out.Attempts))
	if out.Err != nil {
		span.RecordError(out.Err)
		span.SetStatus(codes.Error, "provider failed")
	}
	return out
}

type fetchResult struct {
	quote RawQuote
	err   error
}

// attempt runs one initialize/fetch/cleanup cycle. Cleanup runs on every exit
// path and its error never replaces the attempt's result.
func (r *Runner) attempt(ctx context.Context, code string, factory Factory, n int, category string, payload map[string]any) (quote RawQuote, err error) {
	attemptStart := r.clock.Now()
	ctx, span := r.tracer.Start(ctx, "provider.attempt", trace.WithAttributes(
		attribute.String("provider.code", code),
		attribute.Int("provider.attempt", n+1),
	))
	defer span.End()

	attemptCtx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
	defer cancel()

	p := factory()
	defer func() {
		if cErr := r.cleanup(ctx, p); cErr != nil {
			r.log.Warn("provider cleanup failed", "provider", code, "attempt", n+1, "error", cErr)
		}
		if r.recorder != nil {
			r.recorder.AttemptFinished(code, n+1, err, r.clock.Now().Sub(attemptStart))
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "attempt failed")
		}
	}()

	if _, err := r.await(ctx, attemptCtx, "initialize", func() (RawQuote, error) {
		return RawQuote{}, p.Initialize(attemptCtx)
	}); err != nil {
		return RawQuote{}, err
	}

	quote, err = r.await(ctx, attemptCtx, "fetch quote", func() (RawQuote, error) {
		return p.FetchQuote(attemptCtx, category, payload)
	})
	if err != nil {
		return RawQuote{}, err
	}
	if vErr := quote.Validate(); vErr != nil {
		return RawQuote{}, vErr
	}
	return quote, nil
}

// await runs one provider call in its own goroutine and selects on its result
// against the attempt deadline, so a provider that ignores ctx in Initialize
// or FetchQuote still cannot overrun Timeout.
func (r *Runner) await(ctx, attemptCtx context.Context, op string, call func() (RawQuote, error)) (RawQuote, error) {
	resultCh := make(chan fetchResult, 1)
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				resultCh <- fetchResult{err: Transient(op, fmt.Errorf("provider panicked: %v", rec))}
			}
		}()
		q, err := call()
		resultCh <- fetchResult{quote: q, err: err}
	}()

	select {
	case res := <-resultCh:
		if res.err != nil {
			if errors.Is(res.err, context.DeadlineExceeded) {
				return RawQuote{}, timeoutError(op, r.cfg.Timeout)
			}
			return RawQuote{}, classify(op, res.err)
		}
		return res.quote, nil
	case <-attemptCtx.Done():
		if ctx.Err() != nil {
			return RawQuote{}, Transient(op, ctx.Err())
		}
		return RawQuote{}, timeoutError(op, r.cfg.Timeout)
	}
}

// cleanup gets its own short budget detached from the attempt deadline, which
// may already be spent.
func (r *Runner) cleanup(ctx context.Context, p Provider) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("cleanup panicked: %v", rec)
		}
	}()
	cctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	return p.Cleanup(cctx)
}

func classify(op string, err error) error {
	var v *ValidationError
	var t *TransientError
	switch {
	case errors.As(err, &v), errors.As(err, &t), errors.Is(err, ErrRejectedQuote):
		return err
	default:
		return Transient(op, err)
	}
}
