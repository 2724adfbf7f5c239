package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"numerus/internal/numerology/models"
	"numerus/internal/numerology/registry"
)

const redisKeyPrefix = "numerus:ruleset:"

// RedisCache is a read-through cache of raw definitions shared between
// instances. Redis is never authoritative: any Redis failure falls through to
// the wrapped source.
type RedisCache struct {
	client redis.Cmdable
	next   registry.Source
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedisCache wraps next with a Redis cache whose entries expire after ttl.
func NewRedisCache(client redis.Cmdable, next registry.Source, ttl time.Duration, logger *slog.Logger) *RedisCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisCache{client: client, next: next, ttl: ttl, logger: logger}
}

func redisKey(id string) string {
	return redisKeyPrefix + id
}

func (c *RedisCache) Load(ctx context.Context, id string) (*models.Definition, error) {
	key := redisKey(id)
	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var def models.Definition
		if jsonErr := json.Unmarshal(raw, &def); jsonErr == nil {
			return &def, nil
		}
		c.logger.WarnContext(ctx, "discarding undecodable cached rule-set", "system", id)
	case errors.Is(err, redis.Nil):
	default:
		c.logger.WarnContext(ctx, "rule-set cache read failed",
			"system", id,
			"error", err.Error(),
		)
		return c.next.Load(ctx, id)
	}

	def, err := c.next.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := c.store(ctx, key, def); err != nil {
		c.logger.WarnContext(ctx, "rule-set cache write failed",
			"system", id,
			"error", err.Error(),
		)
	}
	return def, nil
}

func (c *RedisCache) store(ctx context.Context, key string, def *models.Definition) error {
	raw, err := json.Marshal(def)
	if err != nil {
		return fmt.Errorf("encode definition: %w", err)
	}
	return c.client.Set(ctx, key, raw, c.ttl).Err()
}

// List is not cached; listings are cheap and must reflect new systems at once.
func (c *RedisCache) List(ctx context.Context) ([]models.SystemInfo, error) {
	return c.next.List(ctx)
}

// Invalidate removes the cached definition of id.
func (c *RedisCache) Invalidate(ctx context.Context, id string) error {
	if err := c.client.Del(ctx, redisKey(id)).Err(); err != nil {
		return fmt.Errorf("invalidate rule-set %q: %w", id, err)
	}
	return nil
}
