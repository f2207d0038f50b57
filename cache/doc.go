// Package cache provides a fast, generic, sharded in-memory memoization
// cache with a closed set of eviction policies (none, capacity-bounded,
// time-bounded with fixed or sliding TTL, or both combined), lock-free
// statistics counters, optional compute coalescing, and lightweight metrics
// hooks.
//
// # Design
//
//   - Concurrency: the entry store is split into shards, each protected by an
//     RWMutex. The default shard count is chosen by a heuristic
//     (ReasonableShardCount) and is a power of two. Operations on keys routed
//     to different shards never contend; operations on the same key are
//     linearized by the shard lock.
//
//   - Recency index: capacity-bearing policies keep one cache-wide intrusive
//     MRU↔LRU list under its own small mutex. The index tracks position only,
//     never values, so its critical sections stay tiny; keeping it cache-wide
//     (rather than per shard) makes the capacity bound and the
//     least-recently-used eviction order exact.
//
//   - Policies: a Policy is a closed variant set, not an interface. All four
//     variants share one decision path (lookup, expiry check, hit, miss,
//     capacity enforcement) and differ only in which steps are active.
//
//   - TTL: fixed TTL entries expire a fixed duration after creation no matter
//     how often they are read; sliding TTL entries push their deadline
//     forward on every hit. Expiration is lazy on access.
//
//   - GetOrCompute: the compute callback always runs outside the shard and
//     index locks, so it may re-enter the cache. By default concurrent misses
//     for one key may each run compute (last successful write wins); set
//     Options.Coalesce to deduplicate flights via singleflight.
//
//   - Statistics: hits, misses, evictions and the resident entry count are
//     cache-line-padded atomics updated by every operation. Stats() snapshots
//     them without taking any entry lock.
//
//   - Callbacks: Options.OnEvict(k, v, reason) is called for every policy
//     eviction (reason is EvictCapacity or EvictTTL), outside the locks.
//     Explicit Remove and Clear are invalidations, not evictions.
//
// # Basic usage
//
//	// Keep at most 10k entries, least-recently-used evicted first.
//	c := cache.New[string, []byte](cache.Options[string, []byte]{
//	    Policy: cache.CapacityBounded(10_000),
//	})
//	v, err := c.GetOrCompute(ctx, "user:42", func(ctx context.Context) ([]byte, error) {
//	    return loadUser(ctx, 42)
//	})
//
// # With TTL
//
//	c := cache.New[string, string](cache.Options[string, string]{
//	    Policy: cache.TimeBounded(200*time.Millisecond, cache.TTLSliding),
//	})
//
// # Combined
//
//	c := cache.New[string, string](cache.Options[string, string]{
//	    Policy: cache.CapacityAndTime(1024, time.Minute, cache.TTLFixed),
//	})
//
// For process-wide named cache instances see the registry package.
package cache
