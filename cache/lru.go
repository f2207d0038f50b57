package cache

import "sync"

// lruIndex is the recency ordering used by capacity-bearing policies to pick
// eviction victims. It is a single intrusive doubly linked list (head = MRU,
// tail = LRU) guarded by its own mutex, separate from the shard locks: it
// tracks position only, never values, so the critical sections stay tiny.
//
// The list order itself encodes the eviction tie-break: a new entry is pushed
// to the front, so among entries with equal access timestamps the earlier
// insertion sits nearer the tail and is evicted first.
//
// Lock ordering: the index mutex is never held while a shard lock is taken
// and vice versa. An entry can therefore be observed in the store but already
// detached here (it is mid-eviction); promote and remove tolerate that via
// the linked flag. The opposite race, an insert reaching the index after a
// removal already deleted the entry from its shard, is fenced by the entry's
// dead flag: pushFront and promote never link a dead entry.
type lruIndex[K comparable, V any] struct {
	mu   sync.Mutex
	head *entry[K, V] // MRU
	tail *entry[K, V] // LRU
	size int
}

// pushFront links a new entry at MRU. Dead entries are refused: the store
// insert that produced e may have raced with a removal that already deleted
// it from the shard map, and linking it here would leave a phantom the store
// no longer knows about.
func (ix *lruIndex[K, V]) pushFront(e *entry[K, V]) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if e.dead.Load() {
		return
	}
	if e.linked {
		ix.detach(e)
	}
	e.prev = nil
	e.next = ix.head
	if ix.head != nil {
		ix.head.prev = e
	}
	ix.head = e
	if ix.tail == nil {
		ix.tail = e
	}
	e.linked = true
	ix.size++
}

// promote moves the entry to MRU. A no-op for entries already detached by a
// concurrent eviction.
func (ix *lruIndex[K, V]) promote(e *entry[K, V]) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if !e.linked || e.dead.Load() || e == ix.head {
		return
	}
	ix.detach(e)
	e.prev = nil
	e.next = ix.head
	if ix.head != nil {
		ix.head.prev = e
	}
	ix.head = e
	if ix.tail == nil {
		ix.tail = e
	}
	e.linked = true
	ix.size++
}

// remove unlinks the entry if it is still linked.
func (ix *lruIndex[K, V]) remove(e *entry[K, V]) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if e.linked {
		ix.detach(e)
	}
}

// evictOverflow detaches and returns LRU-end entries until the list length is
// at or below limit. The caller completes the eviction by deleting the
// returned entries from their shards.
func (ix *lruIndex[K, V]) evictOverflow(limit int) []*entry[K, V] {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	var victims []*entry[K, V]
	for ix.size > limit {
		v := ix.tail
		if v == nil {
			break
		}
		ix.detach(v)
		victims = append(victims, v)
	}
	return victims
}

// len returns the number of linked entries.
func (ix *lruIndex[K, V]) len() int {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	return ix.size
}

// detach unlinks e in O(1). Call with ix.mu held and e.linked true.
func (ix *lruIndex[K, V]) detach(e *entry[K, V]) {
	if e.prev != nil {
		e.prev.next = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	}
	if ix.head == e {
		ix.head = e.next
	}
	if ix.tail == e {
		ix.tail = e.prev
	}
	e.prev, e.next = nil, nil
	e.linked = false
	ix.size--
}
