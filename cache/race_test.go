package cache

import (
	"context"
	"math/rand"
	"runtime"
	"strconv"
	"sync"
	"testing"
	"time"
)

// A mixed workload of concurrent GetOrCompute/Set/Get/Remove on random keys
// under the combined policy. Should pass under `-race` without reports.
func TestRace_Mixed(t *testing.T) {
	c := New[string, []byte](Options[string, []byte]{
		Policy: CapacityAndTime(8_192, 25*time.Millisecond, TTLSliding),
		Shards: 32,
	})
	t.Cleanup(func() { _ = c.Close() })

	ctx := context.Background()
	workers := 4 * runtime.GOMAXPROCS(0)
	keyspace := 50_000
	deadline := time.Now().Add(2 * time.Second)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			r := rand.New(rand.NewSource(time.Now().UnixNano() + int64(id)*9973))
			for time.Now().Before(deadline) {
				k := "k:" + strconv.Itoa(r.Intn(keyspace))
				switch r.Intn(100) {
				case 0, 1, 2, 3, 4: // ~5% — Remove
					c.Remove(k)
				case 5, 6, 7, 8, 9: // ~5% — Set
					c.Set(k, []byte("x"))
				case 10, 11, 12, 13, 14: // ~5% — Get
					c.Get(k)
				default: // ~85% — GetOrCompute
					_, _ = c.GetOrCompute(ctx, k, func(context.Context) ([]byte, error) {
						return []byte("x"), nil
					})
				}
			}
		}(w)
	}
	wg.Wait()

	// Counters must never go negative under any interleaving.
	if s := c.Stats(); s.Entries < 0 {
		t.Fatalf("negative entry count: %d", s.Entries)
	}
}

// Concurrent writers against a tiny capacity. The capacity bound must hold
// once the dust settles, and the store/index must agree on the entry count.
func TestRace_CapacityConvergence(t *testing.T) {
	const limit = 64
	c := New[int, int](Options[int, int]{
		Policy: CapacityBounded(limit),
		Shards: 8,
	})
	t.Cleanup(func() { _ = c.Close() })

	workers := 2 * runtime.GOMAXPROCS(0)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			for i := 0; i < 5_000; i++ {
				c.Set(id*1_000_000+i, i)
			}
		}(w)
	}
	wg.Wait()

	if n := c.Len(); n > limit {
		t.Fatalf("capacity bound violated: len=%d limit=%d", n, limit)
	}
	if s := c.Stats(); int(s.Entries) != c.Len() {
		t.Fatalf("entry counter (%d) and store (%d) disagree", s.Entries, c.Len())
	}
}

// Writers and removers hammering the same small keyspace. A removal landing
// inside another goroutine's insert window (stored in the shard, not yet
// linked in the index) must not leave the removed entry linked: once the
// workload drains, the recency index and the store must describe the same
// set of entries.
func TestRace_SetRemoveAgreement(t *testing.T) {
	const limit = 32
	c := New[int, int](Options[int, int]{
		Policy: CapacityBounded(limit),
		Shards: 4,
	}).(*cache[int, int])
	t.Cleanup(func() { _ = c.Close() })

	const keyspace = 16 // small on purpose: force Set/Remove collisions
	workers := 2 * runtime.GOMAXPROCS(0)
	deadline := time.Now().Add(2 * time.Second)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			r := rand.New(rand.NewSource(int64(id)*7919 + 1))
			for time.Now().Before(deadline) {
				k := r.Intn(keyspace)
				if r.Intn(2) == 0 {
					c.Set(k, k)
				} else {
					c.Remove(k)
				}
			}
		}(w)
	}
	wg.Wait()

	n := c.Len()
	if n > limit {
		t.Fatalf("capacity bound violated: len=%d limit=%d", n, limit)
	}
	if ixn := c.ix.len(); ixn != n {
		t.Fatalf("index holds %d entries, store holds %d", ixn, n)
	}
	if s := c.Stats(); int(s.Entries) != n {
		t.Fatalf("entry counter (%d) and store (%d) disagree", s.Entries, n)
	}
}

// The insert/remove interleaving spelled out deterministically: the shard
// insert lands, the removal completes, and only then does the interrupted
// insert reach the recency index. The index must refuse the entry.
func TestCache_RemoveDuringInsertWindow(t *testing.T) {
	c := New[string, int](Options[string, int]{
		Policy: CapacityBounded(8),
		Shards: 1,
	}).(*cache[string, int])
	t.Cleanup(func() { _ = c.Close() })

	// First half of Set: the entry is in the shard map, index link pending.
	e, inserted := c.getShard("a").store("a", 1, c.pol, c.now())
	if !inserted {
		t.Fatal("expected a fresh insert")
	}
	c.ctr.entries.Add(1)

	// A full Remove completes inside that window.
	if !c.Remove("a") {
		t.Fatal("Remove should find the stored entry")
	}

	// The interrupted Set resumes and tries to link the entry.
	c.ix.pushFront(e)

	if n := c.ix.len(); n != 0 {
		t.Fatalf("index retained a removed entry: len=%d", n)
	}
	if n := c.Len(); n != 0 {
		t.Fatalf("store should be empty, got len=%d", n)
	}
	if s := c.Stats(); s.Entries != 0 {
		t.Fatalf("entry counter should be 0, got %d", s.Entries)
	}

	// The key stays fully usable afterwards.
	c.Set("a", 2)
	if v, ok := c.Get("a"); !ok || v != 2 {
		t.Fatalf("Get after reinsert = (%d, %v), want (2, true)", v, ok)
	}
	if n := c.ix.len(); n != 1 {
		t.Fatalf("index should hold the reinserted entry, len=%d", n)
	}
}
