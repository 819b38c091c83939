package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"
)

type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	sleeps []time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
	return ctx.Err()
}

// eventLog records lifecycle calls across provider instances in order.
type eventLog struct {
	mu     sync.Mutex
	events []string
}

func (l *eventLog) add(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, fmt.Sprintf(format, args...))
}

func (l *eventLog) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.events...)
}

type scriptedProvider struct {
	attempt int
	log     *eventLog
	initErr error
	fetch   func(ctx context.Context, attempt int) (RawQuote, error)
}

func (p *scriptedProvider) Code() string { return "scripted" }

func (p *scriptedProvider) Initialize(context.Context) error {
	p.log.add("init#%d", p.attempt)
	return p.initErr
}

func (p *scriptedProvider) FetchQuote(ctx context.Context, _ string, _ map[string]any) (RawQuote, error) {
	p.log.add("fetch#%d", p.attempt)
	return p.fetch(ctx, p.attempt)
}

func (p *scriptedProvider) Cleanup(context.Context) error {
	p.log.add("cleanup#%d", p.attempt)
	return errors.New("cleanup errors are swallowed")
}

func scriptedFactory(log *eventLog, initErr error, fetch func(ctx context.Context, attempt int) (RawQuote, error)) Factory {
	var mu sync.Mutex
	n := 0
	return func() Provider {
		mu.Lock()
		defer mu.Unlock()
		n++
		return &scriptedProvider{attempt: n, log: log, initErr: initErr, fetch: fetch}
	}
}

type countingRecorder struct {
	mu    sync.Mutex
	calls []int
}

func (r *countingRecorder) AttemptFinished(_ string, attempt int, _ error, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, attempt)
}

var okQuote = RawQuote{Price: 1250, Currency: "TRY", CoverageDetails: map[string]any{"limit": 500000}}

func TestRunner_SuccessOnFirstAttempt(t *testing.T) {
	log := &eventLog{}
	rec := &countingRecorder{}
	r := NewRunner(DefaultRunnerConfig(), nil, WithClock(newFakeClock()), WithRecorder(rec))

	out := r.Run(context.Background(), "p1", scriptedFactory(log, nil, func(context.Context, int) (RawQuote, error) {
		return okQuote, nil
	}), "traffic", nil)

	if !out.Succeeded() {
		t.Fatalf("expected success, got %v", out.Err)
	}
	if out.Attempts != 1 || out.Quote.Price != 1250 {
		t.Fatalf("unexpected outcome: %+v", out)
	}
	want := []string{"init#1", "fetch#1", "cleanup#1"}
	if got := log.all(); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("unexpected lifecycle: %v", got)
	}
	if len(rec.calls) != 1 {
		t.Fatalf("expected 1 recorded attempt, got %v", rec.calls)
	}
}

func TestRunner_AlwaysTimingOutAccumulatesTotalDuration(t *testing.T) {
	clock := newFakeClock()
	log := &eventLog{}
	cfg := RunnerConfig{Timeout: 60 * time.Second, Retries: 2, RetryDelay: 3 * time.Second}
	r := NewRunner(cfg, nil, WithClock(clock))

	out := r.Run(context.Background(), "slow", scriptedFactory(log, nil, func(context.Context, int) (RawQuote, error) {
		clock.Advance(60 * time.Second)
		return RawQuote{}, context.DeadlineExceeded
	}), "traffic", nil)

	if out.Succeeded() {
		t.Fatalf("expected failure")
	}
	if out.Attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", out.Attempts)
	}
	minDuration := 3*60*time.Second + 2*3*time.Second
	if out.Duration < minDuration {
		t.Fatalf("expected duration >= %s, got %s", minDuration, out.Duration)
	}
	if !errors.Is(out.Err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", out.Err)
	}
	if len(clock.sleeps) != 2 || clock.sleeps[0] != 3*time.Second {
		t.Fatalf("unexpected retry sleeps: %v", clock.sleeps)
	}
}

func TestRunner_FailThenSucceed(t *testing.T) {
	log := &eventLog{}
	r := NewRunner(DefaultRunnerConfig(), nil, WithClock(newFakeClock()))

	out := r.Run(context.Background(), "flaky", scriptedFactory(log, nil, func(_ context.Context, attempt int) (RawQuote, error) {
		if attempt == 1 {
			return RawQuote{}, errors.New("connection reset")
		}
		return okQuote, nil
	}), "traffic", nil)

	if !out.Succeeded() || out.Attempts != 2 {
		t.Fatalf("expected success on attempt 2, got %+v", out)
	}
	if out.Err != nil {
		t.Fatalf("last error must not leak into a successful outcome: %v", out.Err)
	}
}

func TestRunner_AttemptsAreStrictlySequential(t *testing.T) {
	log := &eventLog{}
	r := NewRunner(RunnerConfig{Timeout: time.Second, Retries: 2, RetryDelay: 0}, nil, WithClock(newFakeClock()))

	r.Run(context.Background(), "seq", scriptedFactory(log, nil, func(context.Context, int) (RawQuote, error) {
		return RawQuote{}, errors.New("nope")
	}), "traffic", nil)

	want := []string{
		"init#1", "fetch#1", "cleanup#1",
		"init#2", "fetch#2", "cleanup#2",
		"init#3", "fetch#3", "cleanup#3",
	}
	if got := log.all(); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("unexpected lifecycle order: %v", got)
	}
}

func TestRunner_ValidationErrorFailsFast(t *testing.T) {
	log := &eventLog{}
	r := NewRunner(DefaultRunnerConfig(), nil, WithClock(newFakeClock()))

	out := r.Run(context.Background(), "strict", scriptedFactory(log, nil, func(context.Context, int) (RawQuote, error) {
		return RawQuote{}, Validation("plate number %q is malformed", "XX")
	}), "traffic", nil)

	if out.Attempts != 1 {
		t.Fatalf("expected no retry, got %d attempts", out.Attempts)
	}
	var v *ValidationError
	if !errors.As(out.Err, &v) {
		t.Fatalf("expected ValidationError, got %v", out.Err)
	}
}

func TestRunner_BusinessRejectionIsRetried(t *testing.T) {
	log := &eventLog{}
	r := NewRunner(DefaultRunnerConfig(), nil, WithClock(newFakeClock()))

	out := r.Run(context.Background(), "zero", scriptedFactory(log, nil, func(context.Context, int) (RawQuote, error) {
		return RawQuote{Price: 0, Currency: "TRY"}, nil
	}), "traffic", nil)

	if out.Attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", out.Attempts)
	}
	if !errors.Is(out.Err, ErrRejectedQuote) {
		t.Fatalf("expected ErrRejectedQuote, got %v", out.Err)
	}
}

func TestRunner_InitializeFailureStillCleansUp(t *testing.T) {
	log := &eventLog{}
	r := NewRunner(RunnerConfig{Timeout: time.Second, Retries: 0}, nil, WithClock(newFakeClock()))

	out := r.Run(context.Background(), "noinit", scriptedFactory(log, errors.New("browser launch failed"), func(context.Context, int) (RawQuote, error) {
		t.Fatal("fetch must not run after a failed initialize")
		return RawQuote{}, nil
	}), "traffic", nil)

	if out.Succeeded() {
		t.Fatal("expected failure")
	}
	want := []string{"init#1", "cleanup#1"}
	if got := log.all(); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("unexpected lifecycle: %v", got)
	}
	var te *TransientError
	if !errors.As(out.Err, &te) || te.Op != "initialize" {
		t.Fatalf("expected transient initialize error, got %v", out.Err)
	}
}

func TestRunner_DeadlineEnforcedWhenProviderIgnoresContext(t *testing.T) {
	log := &eventLog{}
	release := make(chan struct{})
	defer close(release)

	r := NewRunner(RunnerConfig{Timeout: 20 * time.Millisecond, Retries: 0}, nil)
	start := time.Now()
	out := r.Run(context.Background(), "stuck", scriptedFactory(log, nil, func(context.Context, int) (RawQuote, error) {
		<-release
		return okQuote, nil
	}), "traffic", nil)

	if out.Succeeded() {
		t.Fatal("expected timeout failure")
	}
	if !errors.Is(out.Err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", out.Err)
	}
	if time.Since(start) > 2*time.Second {
		t.Fatalf("runner did not honor its deadline")
	}
}

// stuckInitProvider blocks in Initialize without looking at its context.
type stuckInitProvider struct {
	release <-chan struct{}
	log     *eventLog
}

func (p *stuckInitProvider) Code() string { return "stuck-init" }

func (p *stuckInitProvider) Initialize(context.Context) error {
	p.log.add("init")
	<-p.release
	return nil
}

func (p *stuckInitProvider) FetchQuote(context.Context, string, map[string]any) (RawQuote, error) {
	p.log.add("fetch")
	return okQuote, nil
}

func (p *stuckInitProvider) Cleanup(context.Context) error {
	p.log.add("cleanup")
	return nil
}

func TestRunner_DeadlineEnforcedWhenInitializeIgnoresContext(t *testing.T) {
	log := &eventLog{}
	release := make(chan struct{})
	defer close(release)

	r := NewRunner(RunnerConfig{Timeout: 20 * time.Millisecond, Retries: 0}, nil)
	start := time.Now()
	out := r.Run(context.Background(), "stuck-init", func() Provider {
		return &stuckInitProvider{release: release, log: log}
	}, "traffic", nil)

	if time.Since(start) > 2*time.Second {
		t.Fatalf("runner did not honor its deadline during initialize")
	}
	if out.Succeeded() || out.Attempts != 1 {
		t.Fatalf("expected a single timed out attempt, got %+v", out)
	}
	var te *TransientError
	if !errors.As(out.Err, &te) || te.Op != "initialize" || !errors.Is(out.Err, context.DeadlineExceeded) {
		t.Fatalf("expected initialize timeout, got %v", out.Err)
	}
	want := []string{"init", "cleanup"}
	if got := log.all(); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("unexpected lifecycle: %v", got)
	}
}

func TestRunner_PanicIsTransient(t *testing.T) {
	log := &eventLog{}
	r := NewRunner(RunnerConfig{Timeout: time.Second, Retries: 1}, nil, WithClock(newFakeClock()))

	out := r.Run(context.Background(), "panicky", scriptedFactory(log, nil, func(_ context.Context, attempt int) (RawQuote, error) {
		if attempt == 1 {
			panic("selector not found")
		}
		return okQuote, nil
	}), "traffic", nil)

	if !out.Succeeded() || out.Attempts != 2 {
		t.Fatalf("expected recovery on attempt 2, got %+v", out)
	}
}

func TestRunner_ParentCancellationStopsRetries(t *testing.T) {
	log := &eventLog{}
	ctx, cancel := context.WithCancel(context.Background())
	r := NewRunner(RunnerConfig{Timeout: time.Second, Retries: 5, RetryDelay: time.Hour}, nil)

	out := r.Run(ctx, "cancelled", scriptedFactory(log, nil, func(context.Context, int) (RawQuote, error) {
		cancel()
		return RawQuote{}, errors.New("down")
	}), "traffic", nil)

	if out.Attempts != 1 {
		t.Fatalf("expected a single attempt, got %d", out.Attempts)
	}
	if !errors.Is(out.Err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", out.Err)
	}
}

func TestRunnerConfig_Normalized(t *testing.T) {
	cfg := RunnerConfig{Timeout: 0, Retries: -1, RetryDelay: -time.Second}.normalized()
	if cfg.Timeout != DefaultTimeout || cfg.Retries != 0 || cfg.RetryDelay != 0 {
		t.Fatalf("unexpected normalized config: %+v", cfg)
	}
}
