// Package cache provides a bounded, process-local key-value cache with a
// pluggable policy surface: size-bounded LRU eviction, optional TTL
// expiration, or both.
//
// The Cache interface treats a miss as a normal boolean outcome rather than
// an error, which keeps hot read paths free of error plumbing. The Memory
// implementation is safe for concurrent use and never blocks beyond a
// mutex-guarded map/list operation.
//
// GetOrSet layers singleflight on top of any Cache so concurrent misses for
// the same key compute the value once.
package cache
