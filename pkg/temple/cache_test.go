package temple_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templekit/templekit/pkg/temple"
)

func TestMemoryCache(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("set and get", func(t *testing.T) {
		t.Parallel()

		cache := temple.NewMemoryCache()
		defer cache.Close()

		want := activeTemple("temple1", "first")
		cache.Set(ctx, "temple1", want, time.Minute)

		got, ok := cache.Get(ctx, "temple1")
		require.True(t, ok)
		assert.Equal(t, want, got)
	})

	t.Run("miss on unknown key", func(t *testing.T) {
		t.Parallel()

		cache := temple.NewMemoryCache()
		defer cache.Close()

		_, ok := cache.Get(ctx, "absent")
		assert.False(t, ok)
	})

	t.Run("entry is never served past its TTL", func(t *testing.T) {
		t.Parallel()

		cache := temple.NewMemoryCache()
		defer cache.Close()

		cache.Set(ctx, "temple1", activeTemple("temple1", ""), 10*time.Millisecond)

		time.Sleep(30 * time.Millisecond)

		_, ok := cache.Get(ctx, "temple1")
		assert.False(t, ok)
	})

	t.Run("delete removes entry", func(t *testing.T) {
		t.Parallel()

		cache := temple.NewMemoryCache()
		defer cache.Close()

		cache.Set(ctx, "temple1", activeTemple("temple1", ""), time.Minute)
		cache.Delete(ctx, "temple1")

		_, ok := cache.Get(ctx, "temple1")
		assert.False(t, ok)
	})

	t.Run("evicts least recently used at capacity", func(t *testing.T) {
		t.Parallel()

		cache := temple.NewMemoryCacheWithSize(2)
		defer cache.Close()

		cache.Set(ctx, "a", activeTemple("a", ""), time.Minute)
		cache.Set(ctx, "b", activeTemple("b", ""), time.Minute)

		// Touch "a" so "b" becomes the eviction candidate.
		_, ok := cache.Get(ctx, "a")
		require.True(t, ok)

		cache.Set(ctx, "c", activeTemple("c", ""), time.Minute)

		_, ok = cache.Get(ctx, "b")
		assert.False(t, ok)
		_, ok = cache.Get(ctx, "a")
		assert.True(t, ok)
		_, ok = cache.Get(ctx, "c")
		assert.True(t, ok)
	})

	t.Run("set on an existing key refreshes value and recency", func(t *testing.T) {
		t.Parallel()

		cache := temple.NewMemoryCacheWithSize(2)
		defer cache.Close()

		cache.Set(ctx, "a", activeTemple("a", ""), time.Minute)
		cache.Set(ctx, "b", activeTemple("b", ""), time.Minute)

		// Re-setting "a" must update in place, not evict, and must make
		// "b" the eviction candidate.
		updated := activeTemple("a", "a-code")
		cache.Set(ctx, "a", updated, time.Minute)

		got, ok := cache.Get(ctx, "a")
		require.True(t, ok)
		assert.Equal(t, updated, got)

		cache.Set(ctx, "c", activeTemple("c", ""), time.Minute)

		_, ok = cache.Get(ctx, "b")
		assert.False(t, ok)
		_, ok = cache.Get(ctx, "a")
		assert.True(t, ok)
	})

	t.Run("close is idempotent", func(t *testing.T) {
		t.Parallel()

		cache := temple.NewMemoryCache()
		require.NoError(t, cache.Close())
		require.NoError(t, cache.Close())
	})

	t.Run("concurrent access is safe", func(t *testing.T) {
		t.Parallel()

		cache := temple.NewMemoryCacheWithSize(100)
		defer cache.Close()

		done := make(chan struct{})
		for i := 0; i < 8; i++ {
			go func(n int) {
				defer func() { done <- struct{}{} }()
				for j := 0; j < 100; j++ {
					key := fmt.Sprintf("temple-%d-%d", n, j%10)
					cache.Set(ctx, key, activeTemple(key, ""), time.Minute)
					cache.Get(ctx, key)
				}
			}(i)
		}
		for i := 0; i < 8; i++ {
			<-done
		}
	})
}
