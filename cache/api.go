package cache

import "context"

// Cache is a sharded, in-memory memoization cache interface.
// All methods are safe for concurrent use by multiple goroutines.
//
// Typical complexity for operations is amortized O(1):
// a map lookup plus constant-time recency index adjustments.
type Cache[K comparable, V any] interface {
	// GetOrCompute returns the value for k, invoking compute on miss and
	// storing the result. compute runs outside all internal locks; it may
	// therefore run more than once for concurrent misses on the same key
	// (last successful write wins) unless Options.Coalesce is set.
	// A compute error propagates unchanged and inserts nothing.
	GetOrCompute(ctx context.Context, k K, compute func(context.Context) (V, error)) (V, error)

	// Get returns the value for k and a presence flag, counting a hit or a
	// miss. On hit the entry's recency and sliding-TTL deadline refresh.
	Get(k K) (V, bool)

	// Set inserts or overwrites k→v under the cache policy (TTL copied from
	// the policy, capacity enforced after insertion).
	Set(k K, v V)

	// Remove deletes k if present and returns true on success. Explicit
	// removal is an invalidation, not an eviction: only the entry count
	// changes in the statistics.
	Remove(k K) bool

	// Len returns the total number of resident entries across all shards.
	Len() int

	// Clear removes every entry. Hit/miss/eviction history is preserved;
	// clearing is a data operation, not a statistics reset.
	Clear()

	// Stats returns a snapshot of the cache counters. Never blocks cache
	// operations.
	Stats() Stats

	// Policy returns the eviction policy the cache was created with.
	Policy() Policy

	// Close marks the cache as closed. Future operations are ignored.
	Close() error
}
