package cache

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/nscache/nscache/internal/singleflight"
	"github.com/nscache/nscache/internal/util"
)

// cache is a sharded in-memory memoization store driven by a closed policy
// variant set. All methods are safe for concurrent use by multiple goroutines.
type cache[K comparable, V any] struct {
	shards []*shard[K, V]
	hash   func(K) uint64
	closed atomic.Bool

	// ix is non-nil only for capacity-bearing policies. It is cache-wide
	// (not per-shard) so the capacity bound and LRU order are exact.
	ix *lruIndex[K, V]

	pol Policy
	ctr counters
	opt Options[K, V]

	// singleflight group for coalescing concurrent computes (Options.Coalesce).
	sf singleflight.Group[K, V]
}

// New constructs a cache with the provided Options.
// Defaults:
//   - zero Policy  -> NoEviction
//   - nil Metrics  -> NoopMetrics
//   - Shards <= 0  -> auto, rounded up to the next power of two
func New[K comparable, V any](opt Options[K, V]) Cache[K, V] {
	if opt.Metrics == nil {
		opt.Metrics = NoopMetrics{}
	}

	sh := opt.Shards
	if sh <= 0 {
		sh = util.ReasonableShardCount()
	} else {
		sh = int(util.NextPow2(uint64(sh)))
	}

	cs := make([]*shard[K, V], sh)
	for i := range cs {
		cs[i] = newShard[K, V]()
	}

	c := &cache[K, V]{
		shards: cs,
		hash:   util.Fnv64a[K], // fast non-crypto hash for sharding
		pol:    opt.Policy,
		opt:    opt,
	}
	if opt.Policy.HasCapacity() {
		c.ix = &lruIndex[K, V]{}
	}
	// return pointer-to-impl as the interface (avoids unexported-return lint)
	return c
}

// ---- Cache[K,V] implementation ----

// Get returns the value for k and a presence flag, counting a hit or a miss.
// An entry found expired is evicted here (lazy expiry) and reported as a miss.
func (c *cache[K, V]) Get(k K) (V, bool) {
	var zero V
	if c.closed.Load() {
		return zero, false
	}
	now := c.now()
	s := c.getShard(k)

	v, hit, expired := s.lookup(k, now)
	if expired != nil {
		c.finishEviction(expired, expired.val, EvictTTL)
	}
	if hit == nil {
		c.ctr.misses.Add(1)
		c.opt.Metrics.Miss()
		return zero, false
	}
	if c.ix != nil {
		c.ix.promote(hit)
	}
	c.ctr.hits.Add(1)
	c.opt.Metrics.Hit()
	return v, true
}

// Set inserts or overwrites k→v, then enforces the capacity bound.
func (c *cache[K, V]) Set(k K, v V) {
	if c.closed.Load() {
		return
	}
	now := c.now()
	s := c.getShard(k)

	e, inserted := s.store(k, v, c.pol, now)
	if inserted {
		c.ctr.entries.Add(1)
	}
	if c.ix != nil {
		if inserted {
			c.ix.pushFront(e)
		} else {
			c.ix.promote(e)
		}
		c.enforceCapacity()
	}
	c.opt.Metrics.Size(c.ctr.entries.Load())
}

// GetOrCompute returns the value for k, invoking compute on miss.
// compute always runs outside the shard and index locks, so it may itself
// use the cache without deadlocking. A failing compute inserts nothing and
// leaves any pre-existing entry untouched.
func (c *cache[K, V]) GetOrCompute(ctx context.Context, k K, compute func(context.Context) (V, error)) (V, error) {
	// fast path
	if v, ok := c.Get(k); ok {
		return v, nil
	}

	if c.opt.Coalesce {
		// singleflight: at most one compute per flight for the key
		return c.sf.Do(ctx, k, func() (V, error) {
			// double-check after flight join, without disturbing stats
			if v, ok := c.getShard(k).peek(k, c.now()); ok {
				return v, nil
			}
			v, err := compute(ctx)
			if err == nil {
				c.Set(k, v)
			}
			return v, err
		})
	}

	v, err := compute(ctx)
	if err != nil {
		var zero V
		return zero, err
	}
	c.Set(k, v)
	return v, nil
}

// Remove deletes k if present and returns true on success.
func (c *cache[K, V]) Remove(k K) bool {
	if c.closed.Load() {
		return false
	}
	e, ok := c.getShard(k).removeKey(k)
	if !ok {
		return false
	}
	if c.ix != nil {
		c.ix.remove(e)
	}
	// Explicit removal is not an eviction; only the entry count moves.
	c.ctr.entries.Add(-1)
	c.opt.Metrics.Size(c.ctr.entries.Load())
	return true
}

// Len returns the total number of resident entries across all shards.
func (c *cache[K, V]) Len() int {
	total := 0
	for _, s := range c.shards {
		total += s.len()
	}
	return total
}

// Clear removes every entry while preserving hit/miss/eviction history.
func (c *cache[K, V]) Clear() {
	if c.closed.Load() {
		return
	}
	for _, s := range c.shards {
		es := s.drain()
		for _, e := range es {
			if c.ix != nil {
				c.ix.remove(e)
			}
		}
		c.ctr.entries.Add(-int64(len(es)))
	}
	c.opt.Metrics.Size(c.ctr.entries.Load())
}

// Stats returns a lock-free snapshot of the cache counters.
func (c *cache[K, V]) Stats() Stats { return c.ctr.snapshot() }

// Policy returns the eviction policy the cache was created with.
func (c *cache[K, V]) Policy() Policy { return c.pol }

// Close marks the cache as closed. Future operations are ignored.
func (c *cache[K, V]) Close() error {
	c.closed.Store(true)
	return nil
}

// ---- internals ----

// getShard picks a shard by hashing the key and masking with len-1.
// len(c.shards) is guaranteed to be a power of two.
func (c *cache[K, V]) getShard(k K) *shard[K, V] {
	h := c.hash(k)
	return c.shards[int(h)&(len(c.shards)-1)]
}

func (c *cache[K, V]) now() int64 {
	if c.opt.Clock != nil {
		return c.opt.Clock.NowUnixNano()
	}
	return time.Now().UnixNano()
}

// enforceCapacity evicts from the LRU end of the recency index until the
// entry count is at or below the limit. Victims are detached from the index
// first, then deleted from their shards; a victim whose key was concurrently
// replaced is left alone.
func (c *cache[K, V]) enforceCapacity() {
	for _, e := range c.ix.evictOverflow(c.pol.Limit()) {
		if v, ok := c.getShard(e.key).removeEntry(e.key, e); ok {
			c.finishEviction(e, v, EvictCapacity)
		}
	}
}

// finishEviction accounts an eviction after the entry has already been
// removed from its shard map. Runs outside all locks, so the OnEvict callback
// may re-enter the cache.
func (c *cache[K, V]) finishEviction(e *entry[K, V], v V, reason EvictReason) {
	if c.ix != nil {
		c.ix.remove(e)
	}
	c.ctr.entries.Add(-1)
	c.ctr.evicts.Add(1)
	c.opt.Metrics.Evict(reason)
	c.opt.Metrics.Size(c.ctr.entries.Load())
	if cb := c.opt.OnEvict; cb != nil {
		cb(e.key, v, reason)
	}
}

var _ Cache[string, any] = (*cache[string, any])(nil)
