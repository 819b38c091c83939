package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type memoryEntry struct {
	token     string
	expiresAt time.Time
}

// MemoryCache is a process-local SessionCache.
type MemoryCache struct {
	ttl         time.Duration
	loadTimeout time.Duration
	now         func() time.Time
	group       singleflight.Group

	mu      sync.Mutex
	entries map[string]memoryEntry
}

var _ SessionCache = (*MemoryCache)(nil)

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		ttl:         ttlOrDefault(ttl),
		loadTimeout: DefaultLoadTimeout,
		now:         time.Now,
		entries:     map[string]memoryEntry{},
	}
}

func (c *MemoryCache) Acquire(ctx context.Context, key string, loader Loader) (string, error) {
	if token, ok := c.get(key); ok {
		return token, nil
	}
	return sharedLoad(ctx, &c.group, key, c.loadTimeout, func(ctx context.Context) (string, error) {
		if token, ok := c.get(key); ok {
			return token, nil
		}
		token, err := loader(ctx)
		if err != nil {
			return "", err
		}
		if token == "" {
			return "", ErrEmptySession
		}
		c.mu.Lock()
		c.entries[key] = memoryEntry{token: token, expiresAt: c.now().Add(c.ttl)}
		c.mu.Unlock()
		return token, nil
	})
}

func (c *MemoryCache) Invalidate(_ context.Context, key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	return nil
}

func (c *MemoryCache) get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return "", false
	}
	if !c.now().Before(e.expiresAt) {
		delete(c.entries, key)
		return "", false
	}
	return e.token, true
}
