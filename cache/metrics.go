package cache

// EvictReason explains why an entry was removed by the eviction engine.
// Explicit Remove/Clear calls are invalidations, not evictions, and carry
// no reason.
type EvictReason int

const (
	// EvictCapacity — removed to satisfy the entry count limit.
	EvictCapacity EvictReason = iota
	// EvictTTL — expired by TTL (lazy eviction on access).
	EvictTTL
)

// Metrics exposes cache-level observability hooks.
// A NoopMetrics implementation is provided and used by default.
type Metrics interface {
	Hit()
	Miss()
	Evict(reason EvictReason)
	Size(entries int64)
}

// NoopMetrics is a drop-in Metrics implementation that does nothing.
// It is safe for concurrent use and intended as the default when
// no observability backend is configured.
type NoopMetrics struct{}

func (NoopMetrics) Hit()              {}
func (NoopMetrics) Miss()             {}
func (NoopMetrics) Evict(EvictReason) {}
func (NoopMetrics) Size(int64)        {}

// Ensure NoopMetrics implements the Metrics interface at compile time.
var _ Metrics = NoopMetrics{}
