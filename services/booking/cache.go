package booking

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// Cache keys for the occupancy views.
const (
	PrelimAvailabilityKey = "availability:prelim"
	MentorAvailabilityKey = "availability:mentor"
	RobotAvailabilityKey  = "availability:robot"
)

// AvailabilityCache caches serialized occupancy views. Every successful
// mutation invalidates its view before returning, so a read immediately
// following a successful write observes the write.
type AvailabilityCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, payload []byte)
	Invalidate(ctx context.Context, keys ...string)
}

// RedisAvailabilityCache backs AvailabilityCache with Redis. Entries carry a
// short TTL as a safety net; correctness comes from the invalidation hooks.
type RedisAvailabilityCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisAvailabilityCache(client *redis.Client) *RedisAvailabilityCache {
	return &RedisAvailabilityCache{Client: client, TTL: 15 * time.Second}
}

func (c *RedisAvailabilityCache) Get(ctx context.Context, key string) ([]byte, bool) {
	payload, err := c.Client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return payload, true
}

func (c *RedisAvailabilityCache) Set(ctx context.Context, key string, payload []byte) {
	c.Client.Set(ctx, key, payload, c.TTL)
}

func (c *RedisAvailabilityCache) Invalidate(ctx context.Context, keys ...string) {
	if len(keys) > 0 {
		c.Client.Del(ctx, keys...)
	}
}

// NoopCache disables caching; every read goes through to the store.
type NoopCache struct{}

func (NoopCache) Get(context.Context, string) ([]byte, bool) { return nil, false }
func (NoopCache) Set(context.Context, string, []byte)        {}
func (NoopCache) Invalidate(context.Context, ...string)      {}
