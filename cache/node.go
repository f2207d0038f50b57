package cache

import (
	"sync/atomic"
	"time"
)

// entry is one cached value together with its access and expiry bookkeeping.
// It doubles as an intrusive doubly linked list element for the recency index.
//
// Field ownership is split between two locks:
//   - prev/next/linked are guarded by the recency index mutex;
//   - val, createdAt and lastAccessed are guarded by the owning shard mutex.
//
// key, ttl and mode are immutable after construction and need no lock.
type entry[K comparable, V any] struct {
	key K
	val V

	// Recency index links: head is MRU, tail is LRU.
	// linked is false for entries detached for eviction (or belonging
	// to a cache with no capacity component).
	prev, next *entry[K, V]
	linked     bool

	// UnixNano timestamps. lastAccessed >= createdAt always holds:
	// both start at the same now() on insert and only lastAccessed
	// moves forward afterwards.
	createdAt    int64
	lastAccessed int64

	// dead is set (while the shard lock is held) the moment the entry is
	// deleted from its shard map. It is atomic because the recency index
	// reads it under its own mutex: a dead entry must never be linked,
	// even when the deletion raced with an in-flight insert that already
	// released the shard lock but has not reached the index yet.
	dead atomic.Bool

	// Expiry configuration copied from the cache policy at insert time.
	// ttl == 0 means the entry never expires.
	ttl  time.Duration
	mode TTLMode
}

// expiredAt reports whether the entry is past its deadline at time now.
// Fixed TTL measures from creation, sliding TTL from the last access.
// Call with the owning shard lock held.
func (e *entry[K, V]) expiredAt(now int64) bool {
	if e.ttl == 0 {
		return false
	}
	since := e.createdAt
	if e.mode == TTLSliding {
		since = e.lastAccessed
	}
	return now >= since+int64(e.ttl)
}

// touch refreshes the last-access timestamp. Under sliding TTL this pushes
// the expiry deadline forward. Call with the shard lock held.
func (e *entry[K, V]) touch(now int64) {
	if now > e.lastAccessed {
		e.lastAccessed = now
	}
}
