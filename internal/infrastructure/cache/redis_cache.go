package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

const defaultKeyPrefix = "quotes:session:"

// redisStore is the slice of goredis.Cmdable the cache needs.
type redisStore interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *goredis.StatusCmd
	Del(ctx context.Context, keys ...string) *goredis.IntCmd
}

// RedisCache shares provider sessions across service instances. Loads are
// de-duplicated per process only; two instances may both log in once.
type RedisCache struct {
	rdb         redisStore
	ttl         time.Duration
	loadTimeout time.Duration
	prefix      string
	group       singleflight.Group
}

var _ SessionCache = (*RedisCache)(nil)

// NewRedisClient connects to addr and pings it before returning.
func NewRedisClient(ctx context.Context, addr string) (*goredis.Client, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

func NewRedisCache(rdb redisStore, ttl time.Duration) *RedisCache {
	return &RedisCache{rdb: rdb, ttl: ttlOrDefault(ttl), loadTimeout: DefaultLoadTimeout, prefix: defaultKeyPrefix}
}

func (c *RedisCache) Acquire(ctx context.Context, key string, loader Loader) (string, error) {
	if token, ok, err := c.get(ctx, key); err != nil || ok {
		return token, err
	}
	return sharedLoad(ctx, &c.group, key, c.loadTimeout, func(ctx context.Context) (string, error) {
		if token, ok, err := c.get(ctx, key); err != nil || ok {
			return token, err
		}
		token, err := loader(ctx)
		if err != nil {
			return "", err
		}
		if token == "" {
			return "", ErrEmptySession
		}
		if err := c.rdb.Set(ctx, c.prefix+key, token, c.ttl).Err(); err != nil {
			return "", fmt.Errorf("store session %s: %w", key, err)
		}
		return token, nil
	})
}

func (c *RedisCache) Invalidate(ctx context.Context, key string) error {
	if err := c.rdb.Del(ctx, c.prefix+key).Err(); err != nil {
		return fmt.Errorf("invalidate session %s: %w", key, err)
	}
	return nil
}

func (c *RedisCache) get(ctx context.Context, key string) (string, bool, error) {
	token, err := c.rdb.Get(ctx, c.prefix+key).Result()
	switch {
	case errors.Is(err, goredis.Nil):
		return "", false, nil
	case err != nil:
		return "", false, fmt.Errorf("read session %s: %w", key, err)
	}
	return token, token != "", nil
}
