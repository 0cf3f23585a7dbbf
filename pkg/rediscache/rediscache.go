package rediscache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/templekit/templekit/pkg/temple"
)

// keyPrefix namespaces temple descriptors in the shared Redis keyspace.
const keyPrefix = "temple:"

// Cache is a temple.Cache backed by Redis, for deployments running several
// processes that should share one descriptor cache and see invalidations
// from each other. Descriptors are stored as JSON with a server-side TTL,
// so an entry can never be served past its freshness window.
type Cache struct {
	client *redis.Client
	log    *slog.Logger
}

// Option configures a Cache.
type Option func(*Cache)

// WithLogger sets a custom logger.
func WithLogger(log *slog.Logger) Option {
	return func(c *Cache) {
		if log != nil {
			c.log = log
		}
	}
}

// New creates a Redis-backed temple cache over an existing client.
// The client's lifecycle remains owned by the caller.
func New(client *redis.Client, opts ...Option) *Cache {
	c := &Cache{
		client: client,
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get retrieves a temple descriptor from Redis.
// Transport or decoding failures degrade to a cache miss.
func (c *Cache) Get(ctx context.Context, key string) (*temple.Temple, bool) {
	raw, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.DebugContext(ctx, "redis cache get failed",
				slog.String("key", key), slog.String("error", err.Error()))
		}
		return nil, false
	}

	var t temple.Temple
	if err := json.Unmarshal(raw, &t); err != nil {
		c.log.DebugContext(ctx, "redis cache entry undecodable",
			slog.String("key", key), slog.String("error", err.Error()))
		return nil, false
	}

	return &t, true
}

// Set stores a temple descriptor in Redis with the given TTL.
func (c *Cache) Set(ctx context.Context, key string, t *temple.Temple, ttl time.Duration) {
	raw, err := json.Marshal(t)
	if err != nil {
		return
	}

	if err := c.client.Set(ctx, keyPrefix+key, raw, ttl).Err(); err != nil {
		c.log.DebugContext(ctx, "redis cache set failed",
			slog.String("key", key), slog.String("error", err.Error()))
	}
}

// Delete removes a temple descriptor from Redis.
func (c *Cache) Delete(ctx context.Context, key string) {
	if err := c.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		c.log.DebugContext(ctx, "redis cache delete failed",
			slog.String("key", key), slog.String("error", err.Error()))
	}
}

// Close is a no-op: the Redis client is owned by the caller.
func (c *Cache) Close() error {
	return nil
}
