package temple

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultDirectoryTTL is the default descriptor freshness window.
// Descriptor data changes rarely, so an hours-scale TTL is appropriate.
const DefaultDirectoryTTL = 6 * time.Hour

// Directory is a read-mostly cached view of a Registry. Concurrent lookups
// for the same identifier are collapsed into a single registry load, and
// entries can be invalidated externally when tenant configuration changes.
//
// Directory implements Registry, so it can be dropped in wherever a plain
// registry is expected.
type Directory struct {
	registry Registry
	cache    Cache
	ttl      time.Duration
	group    singleflight.Group
	log      *slog.Logger
	observe  func(hit bool)
}

// DirectoryOption configures a Directory.
type DirectoryOption func(*Directory)

// WithDirectoryCache sets a custom cache implementation.
func WithDirectoryCache(cache Cache) DirectoryOption {
	return func(d *Directory) {
		if cache != nil {
			d.cache = cache
		}
	}
}

// WithDirectoryTTL sets the descriptor freshness window.
func WithDirectoryTTL(ttl time.Duration) DirectoryOption {
	return func(d *Directory) {
		if ttl > 0 {
			d.ttl = ttl
		}
	}
}

// WithDirectoryObserver registers a callback invoked once per lookup with
// the cache outcome. Intended for instrumentation.
func WithDirectoryObserver(observe func(hit bool)) DirectoryOption {
	return func(d *Directory) {
		if observe != nil {
			d.observe = observe
		}
	}
}

// WithDirectoryLogger sets a custom logger.
func WithDirectoryLogger(log *slog.Logger) DirectoryOption {
	return func(d *Directory) {
		if log != nil {
			d.log = log
		}
	}
}

// NewDirectory creates a cached directory over the given registry.
func NewDirectory(registry Registry, opts ...DirectoryOption) *Directory {
	d := &Directory{
		registry: registry,
		cache:    NewMemoryCache(),
		ttl:      DefaultDirectoryTTL,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Lookup resolves an identifier through the cache, falling back to the
// underlying registry on miss. At most one registry load is in flight per
// key: concurrent misses for the same identifier share a single load.
func (d *Directory) Lookup(ctx context.Context, identifier string) (*Temple, error) {
	key := NormalizeID(identifier)
	if key == "" {
		return nil, ErrTempleNotFound
	}

	if cached, ok := d.cache.Get(ctx, key); ok {
		if d.observe != nil {
			d.observe(true)
		}
		return cached, nil
	}
	if d.observe != nil {
		d.observe(false)
	}

	v, err, _ := d.group.Do(key, func() (any, error) {
		// Re-check under the flight: a concurrent load may have completed.
		if cached, ok := d.cache.Get(ctx, key); ok {
			return cached, nil
		}

		t, err := d.registry.Lookup(ctx, key)
		if err != nil {
			return nil, err
		}

		// Cache under both id and code so either identifier form hits.
		d.cache.Set(ctx, NormalizeID(t.ID), t, d.ttl)
		if t.Code != "" {
			d.cache.Set(ctx, NormalizeID(t.Code), t, d.ttl)
		}

		return t, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*Temple), nil
}

// Invalidate drops cached entries for the given identifier. It is intended
// to be called by the external registry-management collaborator whenever
// tenant configuration changes.
func (d *Directory) Invalidate(ctx context.Context, identifier string) {
	key := NormalizeID(identifier)
	if key == "" {
		return
	}

	// Drop both id and code entries when the descriptor is still cached.
	if t, ok := d.cache.Get(ctx, key); ok {
		d.cache.Delete(ctx, NormalizeID(t.ID))
		d.cache.Delete(ctx, NormalizeID(t.Code))
	}
	d.cache.Delete(ctx, key)

	d.log.DebugContext(ctx, "temple directory entry invalidated", slog.String("identifier", key))
}

// Close releases the underlying cache resources.
func (d *Directory) Close() error {
	return d.cache.Close()
}
