package cache_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/discordkit/pkg/cache"
)

func TestMemory_Get(t *testing.T) {
	t.Parallel()

	t.Run("miss is a boolean, not an error", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string]()
		defer c.Close()

		_, ok := c.Get(context.Background(), "missing")
		require.False(t, ok)
	})

	t.Run("returns stored value", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[int]()
		defer c.Close()

		ctx := context.Background()
		c.Set(ctx, "key", 42, time.Minute)

		val, ok := c.Get(ctx, "key")
		require.True(t, ok)
		require.Equal(t, 42, val)
	})

	t.Run("expired entry is a miss", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string](cache.WithCleanupInterval(0))
		defer c.Close()

		ctx := context.Background()
		c.Set(ctx, "key", "value", time.Millisecond)

		time.Sleep(5 * time.Millisecond)

		_, ok := c.Get(ctx, "key")
		require.False(t, ok)
	})

	t.Run("access refreshes LRU position", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[int](cache.WithMaxEntries(2))
		defer c.Close()

		ctx := context.Background()
		c.Set(ctx, "a", 1, -1)
		c.Set(ctx, "b", 2, -1)

		// Touch "a" so "b" becomes the eviction candidate.
		_, ok := c.Get(ctx, "a")
		require.True(t, ok)

		c.Set(ctx, "c", 3, -1)

		_, ok = c.Get(ctx, "a")
		require.True(t, ok)
		_, ok = c.Get(ctx, "b")
		require.False(t, ok)
	})
}

func TestMemory_Set(t *testing.T) {
	t.Parallel()

	t.Run("evicts least recently used at capacity", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[int](cache.WithMaxEntries(2))
		defer c.Close()

		ctx := context.Background()
		c.Set(ctx, "a", 1, -1)
		c.Set(ctx, "b", 2, -1)
		c.Set(ctx, "c", 3, -1)

		require.Equal(t, 2, c.Len())
		_, ok := c.Get(ctx, "a")
		require.False(t, ok)
	})

	t.Run("updates existing entry in place", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[int](cache.WithMaxEntries(2))
		defer c.Close()

		ctx := context.Background()
		c.Set(ctx, "a", 1, -1)
		c.Set(ctx, "a", 2, -1)

		require.Equal(t, 1, c.Len())
		val, ok := c.Get(ctx, "a")
		require.True(t, ok)
		require.Equal(t, 2, val)
	})

	t.Run("zero TTL uses default", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string](
			cache.WithDefaultTTL(time.Millisecond),
			cache.WithCleanupInterval(0),
		)
		defer c.Close()

		ctx := context.Background()
		c.Set(ctx, "key", "value", 0)

		time.Sleep(5 * time.Millisecond)

		_, ok := c.Get(ctx, "key")
		require.False(t, ok)
	})

	t.Run("no-op after close", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string]()
		require.NoError(t, c.Close())

		ctx := context.Background()
		c.Set(ctx, "key", "value", -1)

		_, ok := c.Get(ctx, "key")
		require.False(t, ok)
	})
}

func TestMemory_Delete(t *testing.T) {
	t.Parallel()

	c := cache.NewMemory[int]()
	defer c.Close()

	ctx := context.Background()
	c.Set(ctx, "key", 1, -1)
	c.Delete(ctx, "key")

	_, ok := c.Get(ctx, "key")
	require.False(t, ok)

	// Deleting an absent key is a no-op.
	c.Delete(ctx, "key")
}

func TestMemory_Close(t *testing.T) {
	t.Parallel()

	c := cache.NewMemory[int]()
	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
}

func TestMemory_Concurrency(t *testing.T) {
	t.Parallel()

	c := cache.NewMemory[int](cache.WithMaxEntries(16))
	defer c.Close()

	ctx := context.Background()
	keys := []string{"a", "b", "c", "d"}

	var wg sync.WaitGroup
	for i := range 32 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := keys[n%len(keys)]
			c.Set(ctx, key, n, -1)
			c.Get(ctx, key)
		}(i)
	}
	wg.Wait()
}

func TestGetOrSet(t *testing.T) {
	t.Parallel()

	t.Run("computes on miss and caches", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string]()
		defer c.Close()

		ctx := context.Background()
		var calls atomic.Int64

		fn := func(context.Context) (string, time.Duration, error) {
			calls.Add(1)
			return "computed", -1, nil
		}

		val, err := cache.GetOrSet(ctx, c, "key", fn)
		require.NoError(t, err)
		require.Equal(t, "computed", val)

		val, err = cache.GetOrSet(ctx, c, "key", fn)
		require.NoError(t, err)
		require.Equal(t, "computed", val)
		require.Equal(t, int64(1), calls.Load())
	})

	t.Run("error is not cached", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string]()
		defer c.Close()

		ctx := context.Background()
		wantErr := errors.New("compute failed")

		_, err := cache.GetOrSet(ctx, c, "err-key", func(context.Context) (string, time.Duration, error) {
			return "", 0, wantErr
		})
		require.ErrorIs(t, err, wantErr)

		_, ok := c.Get(ctx, "err-key")
		require.False(t, ok)
	})

	t.Run("concurrent misses deduplicated", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[int]()
		defer c.Close()

		ctx := context.Background()
		var calls atomic.Int64
		start := make(chan struct{})

		fn := func(context.Context) (int, time.Duration, error) {
			calls.Add(1)
			time.Sleep(10 * time.Millisecond)
			return 7, -1, nil
		}

		var wg sync.WaitGroup
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start
				val, err := cache.GetOrSet(ctx, c, "sf-key", fn)
				require.NoError(t, err)
				require.Equal(t, 7, val)
			}()
		}
		close(start)
		wg.Wait()

		require.Equal(t, int64(1), calls.Load())
	})
}
