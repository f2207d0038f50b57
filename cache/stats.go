package cache

import "github.com/nscache/nscache/internal/util"

// Stats is a point-in-time snapshot of a cache's counters. The JSON tags give
// the structured export shape consumed by presentation layers.
type Stats struct {
	Hits      uint64  `json:"hits"`
	Misses    uint64  `json:"misses"`
	Evictions uint64  `json:"evictions"`
	Entries   int64   `json:"entries"`
	HitRate   float64 `json:"hit_rate"`
}

// Requests returns the total number of counted lookups (hits plus misses).
func (s Stats) Requests() uint64 { return s.Hits + s.Misses }

// Add returns the element-wise sum of two snapshots with the hit rate
// recomputed from the summed counters. Used for cross-namespace aggregation.
func (s Stats) Add(o Stats) Stats {
	out := Stats{
		Hits:      s.Hits + o.Hits,
		Misses:    s.Misses + o.Misses,
		Evictions: s.Evictions + o.Evictions,
		Entries:   s.Entries + o.Entries,
	}
	out.HitRate = hitRate(out.Hits, out.Misses)
	return out
}

func hitRate(hits, misses uint64) float64 {
	total := hits + misses
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}

// counters is the statistics accumulator: lock-free atomic counters updated
// by every cache operation, independent of entry-level locking, so that
// statistics reads never block cache operations. Each counter sits on its own
// cache line to avoid false sharing between hot writers.
type counters struct {
	_       util.CacheLinePad
	hits    util.PaddedAtomicUint64
	misses  util.PaddedAtomicUint64
	evicts  util.PaddedAtomicUint64
	entries util.PaddedAtomicInt64
}

func (c *counters) snapshot() Stats {
	s := Stats{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evicts.Load(),
		Entries:   c.entries.Load(),
	}
	s.HitRate = hitRate(s.Hits, s.Misses)
	return s
}
