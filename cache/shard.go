package cache

import "sync"

// shard is an independent partition of the entry store with its own lock and
// map. Operations on keys routed to different shards never contend; per-key
// linearizability comes from the shard mutex. Recency ordering lives outside
// the shard, in the cache-wide lruIndex.
type shard[K comparable, V any] struct {
	mu sync.RWMutex
	m  map[K]*entry[K, V]
}

func newShard[K comparable, V any]() *shard[K, V] {
	return &shard[K, V]{m: make(map[K]*entry[K, V])}
}

// lookup runs the hit/expiry part of the eviction decision for key k.
//
// On a live hit it refreshes the entry's last-access timestamp and returns
// the value with hit == true. An expired entry is deleted from the map and
// returned via expired so the caller can detach it from the recency index
// and account the eviction; the lookup itself then counts as a miss.
func (s *shard[K, V]) lookup(k K, now int64) (v V, hit *entry[K, V], expired *entry[K, V]) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.m[k]
	if !ok {
		return v, nil, nil
	}
	if e.expiredAt(now) {
		delete(s.m, k)
		e.dead.Store(true)
		return v, nil, e
	}
	e.touch(now)
	return e.val, e, nil
}

// peek reports the live value for k without touching timestamps, counters or
// recency state. Used for the double-check inside a coalesced compute.
func (s *shard[K, V]) peek(k K, now int64) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if e, ok := s.m[k]; ok && !e.expiredAt(now) {
		return e.val, true
	}
	var zero V
	return zero, false
}

// store inserts a freshly computed value for k, or overwrites the value in
// place when a concurrent compute got there first (last write wins). Both
// timestamps are reset to now on overwrite: the value is new, so a fixed TTL
// deadline restarts. Returns the entry and whether it is a new insertion.
func (s *shard[K, V]) store(k K, v V, pol Policy, now int64) (*entry[K, V], bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.m[k]; ok {
		e.val = v
		e.createdAt = now
		e.lastAccessed = now
		return e, false
	}
	e := &entry[K, V]{
		key:          k,
		val:          v,
		createdAt:    now,
		lastAccessed: now,
	}
	if pol.HasTTL() {
		e.ttl = pol.TTL()
		e.mode = pol.Mode()
	}
	s.m[k] = e
	return e, true
}

// removeKey deletes k if present (explicit invalidation path).
func (s *shard[K, V]) removeKey(k K) (*entry[K, V], bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.m[k]
	if !ok {
		return nil, false
	}
	delete(s.m, k)
	e.dead.Store(true)
	return e, true
}

// removeEntry deletes k only if it still maps to e, and returns the final
// value. Used to complete a capacity eviction: if another entry took over the
// key in the meantime, the eviction is abandoned.
func (s *shard[K, V]) removeEntry(k K, e *entry[K, V]) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.m[k]
	if !ok || cur != e {
		var zero V
		return zero, false
	}
	delete(s.m, k)
	e.dead.Store(true)
	return e.val, true
}

// drain removes every entry and returns them for index cleanup.
func (s *shard[K, V]) drain() []*entry[K, V] {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.m) == 0 {
		return nil
	}
	es := make([]*entry[K, V], 0, len(s.m))
	for _, e := range s.m {
		e.dead.Store(true)
		es = append(es, e)
	}
	s.m = make(map[K]*entry[K, V])
	return es
}

// len returns the number of resident entries in this shard.
func (s *shard[K, V]) len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.m)
}
