package redisstore

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/emprendevoz/emprende-api/pkg/helpers"
)

// Cache stores JSON values under a key prefix. A nil Cache is a no-op, so
// callers can run without Redis.
type Cache struct {
	rdb    redis.Cmdable
	prefix string
}

func NewCache(rdb redis.Cmdable, prefix string) *Cache {
	if rdb == nil {
		return nil
	}
	return &Cache{rdb: rdb, prefix: prefix}
}

// GetJSON decodes the cached value into dest and reports whether it was present.
func (c *Cache) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if c == nil {
		return false, nil
	}
	ok, err := helpers.RedisGetJSON(ctx, c.rdb, c.prefix+key, &dest)
	return ok, errors.Wrap(err, "cache get")
}

func (c *Cache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	if c == nil {
		return nil
	}
	return errors.Wrap(helpers.RedisSetJSON(ctx, c.rdb, c.prefix+key, value, ttl), "cache set")
}

func (c *Cache) Del(ctx context.Context, keys ...string) error {
	if c == nil || len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.prefix + k
	}
	return errors.Wrap(helpers.RedisDel(ctx, c.rdb, full...), "cache del")
}
