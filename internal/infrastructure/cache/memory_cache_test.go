package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryCache_ReusesUntilExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewMemoryCache(time.Hour)
	c.now = func() time.Time { return now }

	var logins int
	loader := func(context.Context) (string, error) {
		logins++
		return "tok-" + string(rune('0'+logins)), nil
	}

	tok, err := c.Acquire(ctx, "acme", loader)
	require.NoError(t, err)
	require.Equal(t, "tok-1", tok)

	now = now.Add(59 * time.Minute)
	tok, err = c.Acquire(ctx, "acme", loader)
	require.NoError(t, err)
	require.Equal(t, "tok-1", tok)

	now = now.Add(time.Minute)
	tok, err = c.Acquire(ctx, "acme", loader)
	require.NoError(t, err)
	require.Equal(t, "tok-2", tok)
	require.Equal(t, 2, logins)
}

func TestMemoryCache_InvalidateForcesLogin(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(0)
	require.Equal(t, DefaultSessionTTL, c.ttl)

	var logins int
	loader := func(context.Context) (string, error) { logins++; return "tok", nil }

	_, _ = c.Acquire(ctx, "acme", loader)
	require.NoError(t, c.Invalidate(ctx, "acme"))
	_, _ = c.Acquire(ctx, "acme", loader)
	require.Equal(t, 2, logins)
}

func TestMemoryCache_LoaderErrorsAreNotCached(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(time.Hour)

	_, err := c.Acquire(ctx, "acme", func(context.Context) (string, error) { return "", errors.New("bad credentials") })
	require.EqualError(t, err, "bad credentials")

	_, err = c.Acquire(ctx, "acme", func(context.Context) (string, error) { return "", nil })
	require.ErrorIs(t, err, ErrEmptySession)

	tok, err := c.Acquire(ctx, "acme", func(context.Context) (string, error) { return "ok", nil })
	require.NoError(t, err)
	require.Equal(t, "ok", tok)
}

func TestMemoryCache_ConcurrentAcquireSharesOneLogin(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(time.Hour)

	var logins atomic.Int32
	release := make(chan struct{})
	loader := func(context.Context) (string, error) {
		logins.Add(1)
		<-release
		return "tok", nil
	}

	var wg sync.WaitGroup
	results := make([]string, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = c.Acquire(ctx, "acme", loader)
		}(i)
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	require.Equal(t, int32(1), logins.Load())
	for _, r := range results {
		require.Equal(t, "tok", r)
	}
}

func TestMemoryCache_CallerCancelDoesNotAbortSharedLogin(t *testing.T) {
	c := NewMemoryCache(time.Hour)

	var logins atomic.Int32
	entered := make(chan struct{})
	release := make(chan struct{})
	loadErr := make(chan error, 1)
	loader := func(ctx context.Context) (string, error) {
		if logins.Add(1) == 1 {
			close(entered)
		}
		<-release
		loadErr <- ctx.Err()
		return "tok", nil
	}

	first, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := c.Acquire(first, "acme", loader)
		firstErr <- err
	}()
	<-entered
	cancel()
	select {
	case err := <-firstErr:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatalf("cancelled caller kept waiting on the shared login")
	}

	type result struct {
		tok string
		err error
	}
	second := make(chan result, 1)
	go func() {
		tok, err := c.Acquire(context.Background(), "acme", loader)
		second <- result{tok, err}
	}()
	time.Sleep(20 * time.Millisecond)
	close(release)

	require.NoError(t, <-loadErr)
	r := <-second
	require.NoError(t, r.err)
	require.Equal(t, "tok", r.tok)
	require.Equal(t, int32(1), logins.Load())
}

func TestMemoryCache_LoadTimeoutBoundsLogin(t *testing.T) {
	c := NewMemoryCache(time.Hour)
	c.loadTimeout = 20 * time.Millisecond

	_, err := c.Acquire(context.Background(), "acme", func(ctx context.Context) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	})
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
