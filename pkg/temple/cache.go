package temple

import (
	"container/list"
	"context"
	"sync"
	"time"
)

// Cache is the interface for temple descriptor caching implementations.
// Entries are read-mostly: a stale entry may be served up to its TTL,
// never past it.
type Cache interface {
	// Get retrieves a temple from cache by key.
	Get(ctx context.Context, key string) (*Temple, bool)

	// Set stores a temple in cache with the given TTL.
	Set(ctx context.Context, key string, t *Temple, ttl time.Duration)

	// Delete removes a temple from cache.
	Delete(ctx context.Context, key string)

	// Close releases any resources held by the cache.
	Close() error
}

// DefaultCacheSize is the default maximum number of cached descriptors.
const DefaultCacheSize = 1000

// janitorInterval is how often expired entries are swept out.
const janitorInterval = time.Minute

// memoryCache is the default in-memory cache implementation. Recency is
// tracked with an intrusive list: the front holds the next eviction
// candidate, the back the most recently used entry, so both touch and
// evict are O(1).
type memoryCache struct {
	mu      sync.Mutex
	entries map[string]*list.Element
	order   *list.List
	maxSize int
	stop    chan struct{}
	done    chan struct{}
	closed  bool
}

type cacheEntry struct {
	key       string
	temple    *Temple
	expiresAt time.Time
}

// NewMemoryCache creates an in-memory cache with periodic cleanup.
func NewMemoryCache() Cache {
	return NewMemoryCacheWithSize(DefaultCacheSize)
}

// NewMemoryCacheWithSize creates an in-memory cache with a size limit.
func NewMemoryCacheWithSize(maxSize int) Cache {
	if maxSize <= 0 {
		maxSize = DefaultCacheSize
	}

	c := &memoryCache{
		entries: make(map[string]*list.Element),
		order:   list.New(),
		maxSize: maxSize,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}

	go c.janitor()

	return c
}

// Get retrieves a temple from cache, expiring it if past its TTL.
func (c *memoryCache) Get(ctx context.Context, key string) (*Temple, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		return nil, false
	}

	entry := elem.Value.(*cacheEntry)
	if time.Now().After(entry.expiresAt) {
		c.drop(elem)
		return nil, false
	}

	c.order.MoveToBack(elem)

	return entry.temple, true
}

// Set stores a temple in cache, evicting the least recently used entry
// when the cache is full.
func (c *memoryCache) Set(ctx context.Context, key string, t *Temple, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		entry := elem.Value.(*cacheEntry)
		entry.temple = t
		entry.expiresAt = time.Now().Add(ttl)
		c.order.MoveToBack(elem)
		return
	}

	if len(c.entries) >= c.maxSize {
		if oldest := c.order.Front(); oldest != nil {
			c.drop(oldest)
		}
	}

	c.entries[key] = c.order.PushBack(&cacheEntry{
		key:       key,
		temple:    t,
		expiresAt: time.Now().Add(ttl),
	})
}

// Delete removes a temple from cache.
func (c *memoryCache) Delete(ctx context.Context, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		c.drop(elem)
	}
}

// drop removes an element from both the map and the recency list.
// Callers must hold the mutex.
func (c *memoryCache) drop(elem *list.Element) {
	delete(c.entries, elem.Value.(*cacheEntry).key)
	c.order.Remove(elem)
}

// janitor periodically sweeps expired entries so that keys that are never
// read again do not pin memory until eviction.
func (c *memoryCache) janitor() {
	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()
	defer close(c.done)

	for {
		select {
		case <-ticker.C:
			c.sweep()
		case <-c.stop:
			return
		}
	}
}

func (c *memoryCache) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for elem := c.order.Front(); elem != nil; {
		next := elem.Next()
		if now.After(elem.Value.(*cacheEntry).expiresAt) {
			c.drop(elem)
		}
		elem = next
	}
}

// Close stops the janitor goroutine and waits for it to finish.
func (c *memoryCache) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	close(c.stop)
	<-c.done
	return nil
}

// noOpCache disables caching. Useful for tests and for deployments where
// every lookup must hit the registry.
type noOpCache struct{}

// NewNoOpCache creates a cache that doesn't cache.
func NewNoOpCache() Cache {
	return &noOpCache{}
}

func (noOpCache) Get(ctx context.Context, key string) (*Temple, bool) { return nil, false }

func (noOpCache) Set(ctx context.Context, key string, t *Temple, ttl time.Duration) {}

func (noOpCache) Delete(ctx context.Context, key string) {}

func (noOpCache) Close() error { return nil }
