package settings

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nicksukie/livesub/internal/core"
)

const defaultCacheTTL = 10 * time.Minute

// RedisCache wraps a core.SettingsStore with a read-through/write-through
// Redis cache, for deployments that run the overlay process alongside a
// shared settings service rather than a single local YAML file — grounded
// on JohnPitter-concord's redis.Client wrapper shape (ping-on-construct,
// logged operations).
type RedisCache struct {
	backing core.SettingsStore
	rdb     *redis.Client
	log     core.Logger
	ttl     time.Duration
}

func NewRedisCache(backing core.SettingsStore, addr, password string, db int, logger core.Logger) (*RedisCache, error) {
	if logger == nil {
		logger = &core.NoOpLogger{}
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisCache{backing: backing, rdb: rdb, log: logger, ttl: defaultCacheTTL}, nil
}

// Get checks Redis first; on a miss it falls through to the backing store
// and populates the cache for next time.
func (c *RedisCache) Get(key string) (string, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if v, err := c.rdb.Get(ctx, key).Result(); err == nil {
		return v, true
	} else if err != redis.Nil {
		c.log.Warn("settings: redis get failed, falling through", "key", key, "error", err)
	}

	v, ok := c.backing.Get(key)
	if ok {
		if err := c.rdb.Set(ctx, key, v, c.ttl).Err(); err != nil {
			c.log.Warn("settings: redis populate failed", "key", key, "error", err)
		}
	}
	return v, ok
}

// Set writes through to the backing store first; the cache is only updated
// on a successful durable write.
func (c *RedisCache) Set(key, value string) error {
	if err := c.backing.Set(key, value); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := c.rdb.Set(ctx, key, value, c.ttl).Err(); err != nil {
		c.log.Warn("settings: redis write-through failed", "key", key, "error", err)
	}
	return nil
}

func (c *RedisCache) Close() error {
	return c.rdb.Close()
}

var _ core.SettingsStore = (*RedisCache)(nil)
