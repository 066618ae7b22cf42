package report

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tair/bekawave/internal/events"
	"github.com/tair/bekawave/pkg/logger"
)

// Cache stores encoded reports per format. Entries are keyed by a
// generation that Invalidate advances, so a body built before an
// invalidation is never served after it.
type Cache interface {
	Generation(ctx context.Context) (int64, error)
	Get(ctx context.Context, f Format, gen int64) ([]byte, bool, error)
	Set(ctx context.Context, f Format, gen int64, body []byte) error
	Invalidate(ctx context.Context) error
}

// RedisCache keeps encoded reports in Redis with a TTL
type RedisCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisCache creates a cache over client. Bodies live under
// "<prefix><generation>:<format>", the counter under "<prefix>generation".
func NewRedisCache(client *redis.Client, prefix string, ttl time.Duration) *RedisCache {
	if prefix == "" {
		prefix = "bekawave:report:"
	}
	return &RedisCache{client: client, prefix: prefix, ttl: ttl}
}

func (c *RedisCache) generationKey() string {
	return c.prefix + "generation"
}

func (c *RedisCache) key(f Format, gen int64) string {
	return c.prefix + strconv.FormatInt(gen, 10) + ":" + string(f)
}

// Generation returns the current generation; an absent counter is 0.
func (c *RedisCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, c.generationKey()).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (c *RedisCache) Get(ctx context.Context, f Format, gen int64) ([]byte, bool, error) {
	body, err := c.client.Get(ctx, c.key(f, gen)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return body, true, nil
}

// Set stores body only while gen is still current. The counter is watched
// so an Invalidate racing the write aborts the transaction.
func (c *RedisCache) Set(ctx context.Context, f Format, gen int64, body []byte) error {
	err := c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, c.generationKey()).Int64()
		if errors.Is(err, redis.Nil) {
			current, err = 0, nil
		}
		if err != nil {
			return err
		}
		if current != gen {
			return errStaleGeneration
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, c.key(f, gen), body, c.ttl)
			return nil
		})
		return err
	}, c.generationKey())
	if errors.Is(err, errStaleGeneration) || errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	return err
}

// Invalidate advances the generation; bodies of older generations expire
// with their TTL.
func (c *RedisCache) Invalidate(ctx context.Context) error {
	return c.client.Incr(ctx, c.generationKey()).Err()
}

var errStaleGeneration = errors.New("report generation changed")

// reportEntities are the entities whose rows appear in a report
var reportEntities = map[string]bool{
	"sales record": true,
	"customer":     true,
	"product":      true,
}

// Invalidator clears the cache when an entity feeding the report changes.
// It is an events.Publisher so it can sit next to the Kafka publisher.
type Invalidator struct {
	cache Cache
}

// NewInvalidator creates an invalidator for cache
func NewInvalidator(cache Cache) *Invalidator {
	return &Invalidator{cache: cache}
}

func (i *Invalidator) Publish(ctx context.Context, event events.EntityChanged) error {
	if i.cache == nil || !reportEntities[event.Entity] {
		return nil
	}
	if err := i.cache.Invalidate(ctx); err != nil {
		return err
	}
	logger.Debug(ctx).Str("event_type", event.EventType).Msg("Report cache invalidated")
	return nil
}
