// Package cache holds provider session tokens so that integrations which log
// in before quoting do not log in again on every attempt.
package cache

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/singleflight"
)

const (
	// DefaultSessionTTL bounds how long a provider session is reused.
	DefaultSessionTTL = 12 * time.Hour
	// DefaultLoadTimeout bounds one shared login.
	DefaultLoadTimeout = 30 * time.Second
)

// ErrEmptySession is returned when a loader yields an empty token.
var ErrEmptySession = errors.New("session loader returned an empty token")

// Loader performs the provider login and returns a fresh session token.
type Loader func(ctx context.Context) (string, error)

// SessionCache returns a cached session for key or loads, stores and returns
// a new one. Concurrent Acquire calls for the same key share one load.
type SessionCache interface {
	Acquire(ctx context.Context, key string, loader Loader) (string, error)
	Invalidate(ctx context.Context, key string) error
}

func ttlOrDefault(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return DefaultSessionTTL
	}
	return ttl
}

// sharedLoad runs load once per key across concurrent callers. The load is
// detached from the caller that happened to start it and bounded by timeout
// instead, so one caller giving up does not fail the others. Each caller
// still returns as soon as its own ctx is done.
func sharedLoad(ctx context.Context, group *singleflight.Group, key string, timeout time.Duration, load func(context.Context) (string, error)) (string, error) {
	ch := group.DoChan(key, func() (any, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
		defer cancel()
		return load(loadCtx)
	})
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return "", r.Err
		}
		return r.Val.(string), nil
	}
}
