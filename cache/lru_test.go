package cache

import "testing"

func newTestEntry(k string) *entry[string, int] {
	return &entry[string, int]{key: k}
}

func keysOf(es []*entry[string, int]) []string {
	ks := make([]string, len(es))
	for i, e := range es {
		ks[i] = e.key
	}
	return ks
}

// Victims come strictly from the LRU end, in insertion order when nothing
// was promoted.
func TestLRUIndex_EvictionOrder(t *testing.T) {
	t.Parallel()

	ix := &lruIndex[string, int]{}
	a, b, c := newTestEntry("a"), newTestEntry("b"), newTestEntry("c")
	ix.pushFront(a)
	ix.pushFront(b)
	ix.pushFront(c)

	got := keysOf(ix.evictOverflow(1))
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("want [a b], got %v", got)
	}
	if ix.len() != 1 {
		t.Fatalf("len: want 1, got %d", ix.len())
	}
	if a.linked || b.linked || !c.linked {
		t.Fatal("linked flags out of sync after eviction")
	}
}

// Promotion moves an entry off the LRU end.
func TestLRUIndex_Promote(t *testing.T) {
	t.Parallel()

	ix := &lruIndex[string, int]{}
	a, b, c := newTestEntry("a"), newTestEntry("b"), newTestEntry("c")
	ix.pushFront(a)
	ix.pushFront(b)
	ix.pushFront(c)

	ix.promote(a) // a -> MRU; LRU is now b

	got := keysOf(ix.evictOverflow(2))
	if len(got) != 1 || got[0] != "b" {
		t.Fatalf("want [b], got %v", got)
	}
}

// promote and remove are no-ops for entries already detached; a second
// remove must not corrupt the size.
func TestLRUIndex_DetachedNoops(t *testing.T) {
	t.Parallel()

	ix := &lruIndex[string, int]{}
	a, b := newTestEntry("a"), newTestEntry("b")
	ix.pushFront(a)
	ix.pushFront(b)

	ix.remove(a)
	ix.remove(a) // already gone
	ix.promote(a)

	if ix.len() != 1 {
		t.Fatalf("len: want 1, got %d", ix.len())
	}
	got := keysOf(ix.evictOverflow(0))
	if len(got) != 1 || got[0] != "b" {
		t.Fatalf("want [b], got %v", got)
	}
	if ix.len() != 0 {
		t.Fatalf("len: want 0, got %d", ix.len())
	}
}
