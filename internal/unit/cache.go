// AngelaMos | 2026
// cache.go

package unit

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/amontalvo1020/rentalspro/internal/core"
)

// Cache is a best-effort store of unit rows keyed by id. Failures are
// logged and treated as misses; the database stays authoritative.
type Cache interface {
	Get(ctx context.Context, id int64) (*Unit, bool)
	Set(ctx context.Context, u *Unit)
	Invalidate(ctx context.Context, ids ...int64)
}

type RedisCache struct {
	redis  *core.Redis
	ttl    time.Duration
	logger *slog.Logger
}

func NewRedisCache(rdb *core.Redis, ttl time.Duration, logger *slog.Logger) *RedisCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisCache{redis: rdb, ttl: ttl, logger: logger}
}

func (c *RedisCache) key(id int64) string {
	return c.redis.Key("unit", strconv.FormatInt(id, 10))
}

func (c *RedisCache) Get(ctx context.Context, id int64) (*Unit, bool) {
	raw, err := c.redis.Client.Get(ctx, c.key(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.WarnContext(ctx, "unit cache read failed", "unit_id", id, "error", err)
		}
		return nil, false
	}

	var u Unit
	if err := json.Unmarshal(raw, &u); err != nil {
		c.logger.WarnContext(ctx, "unit cache entry corrupt", "unit_id", id, "error", err)
		return nil, false
	}

	return &u, true
}

func (c *RedisCache) Set(ctx context.Context, u *Unit) {
	if c.ttl <= 0 {
		return
	}

	raw, err := json.Marshal(u)
	if err != nil {
		return
	}

	if err := c.redis.Client.Set(ctx, c.key(u.ID), raw, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "unit cache write failed", "unit_id", u.ID, "error", err)
	}
}

func (c *RedisCache) Invalidate(ctx context.Context, ids ...int64) {
	if len(ids) == 0 {
		return
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, c.key(id))
	}

	if err := c.redis.Client.Del(ctx, keys...).Err(); err != nil {
		c.logger.WarnContext(ctx, "unit cache invalidate failed", "unit_ids", ids, "error", err)
	}
}

// NopCache never stores anything.
type NopCache struct{}

func (NopCache) Get(context.Context, int64) (*Unit, bool) { return nil, false }
func (NopCache) Set(context.Context, *Unit)               {}
func (NopCache) Invalidate(context.Context, ...int64)     {}
