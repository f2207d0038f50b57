package cache

// Clock provides time in UnixNano; useful for deterministic tests.
type Clock interface{ NowUnixNano() int64 }

// Options configures the cache behavior. Zero values are safe;
// sane defaults are applied in New():
//   - zero Policy  => NoEviction
//   - Shards <= 0  => auto (rounded up to power of two)
//   - nil Metrics  => NoopMetrics
type Options[K comparable, V any] struct {
	// Policy selects the eviction behavior. Fixed for the cache lifetime.
	Policy Policy

	// Shards defines the number of shards. If 0, an automatic value is chosen
	// (≈ 2*GOMAXPROCS) and rounded to the next power of two.
	Shards int

	// Coalesce deduplicates concurrent GetOrCompute calls for the same key
	// so the compute function runs at most once per flight. Off by default:
	// the base contract allows duplicate compute work with last-write-wins.
	Coalesce bool

	// Observability
	// OnEvict is called for every policy eviction, outside the entry locks.
	OnEvict func(k K, v V, reason EvictReason)
	Metrics Metrics

	// Clock allows overriding time source (tests). Nil => time.Now().
	Clock Clock
}
