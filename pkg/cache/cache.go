package cache

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"
)

// Cache is a bounded key-value store for provider snapshots. A miss is a
// normal, fast outcome reported via the boolean, never an error, and no
// operation blocks indefinitely.
//
// TTL semantics for Set:
//   - Positive duration: entry expires after this duration
//   - Zero: use the cache's configured default TTL
//   - Negative: entry never expires
type Cache[V any] interface {
	// Get retrieves a value by key. The boolean is false when the key is
	// absent or expired.
	Get(ctx context.Context, key string) (V, bool)

	// Set stores a value with the given TTL, evicting per policy if needed.
	Set(ctx context.Context, key string, value V, ttl time.Duration)

	// Delete removes a key from the cache.
	Delete(ctx context.Context, key string)

	// Close releases resources (stops background goroutines, etc.).
	Close() error
}

var sfGroup singleflight.Group

type getOrSetResult[V any] struct {
	val V
	ttl time.Duration
}

// GetOrSet retrieves a value from the cache, or calls fn to compute it on a
// miss. Concurrent misses for the same key are deduplicated with
// singleflight, so fn runs at most once per key at a time.
//
// The callback returns the value, a TTL for caching, and an error.
// If fn returns an error, nothing is cached and the error is returned.
func GetOrSet[V any](ctx context.Context, c Cache[V], key string, fn func(ctx context.Context) (V, time.Duration, error)) (V, error) {
	if v, ok := c.Get(ctx, key); ok {
		return v, nil
	}

	v, err, _ := sfGroup.Do(key, func() (any, error) {
		val, ttl, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		return getOrSetResult[V]{val: val, ttl: ttl}, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}

	r := v.(getOrSetResult[V])
	c.Set(ctx, key, r.val, r.ttl)

	return r.val, nil
}
