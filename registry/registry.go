// Package registry maintains process-wide named cache instances. Each
// namespace is an isolated cache with its own eviction policy and statistics,
// created lazily on first reference and torn down only by ClearAll.
package registry

import (
	"context"
	"sort"
	"sync"

	logging "github.com/ipfs/go-log/v2"

	"github.com/nscache/nscache/cache"
)

var log = logging.Logger("nscache/registry")

// Default is the process-wide registry used by the package-level functions
// and the Memoize helpers.
var Default = New()

// Option configures a Registry.
type Option func(*Registry)

// WithMetrics installs a per-namespace metrics factory; every namespace cache
// created afterwards reports to the Metrics returned for its name.
func WithMetrics(f func(namespace string) cache.Metrics) Option {
	return func(r *Registry) { r.metricsFor = f }
}

// WithCoalesce makes every namespace cache deduplicate concurrent computes
// for the same key (singleflight).
func WithCoalesce() Option {
	return func(r *Registry) { r.coalesce = true }
}

// WithShards fixes the shard count of namespace caches (0 = auto).
func WithShards(n int) Option {
	return func(r *Registry) { r.shards = n }
}

// WithClock overrides the time source of namespace caches (tests).
func WithClock(c cache.Clock) Option {
	return func(r *Registry) { r.clock = c }
}

// Registry maps namespace names to independently configured cache instances.
// All methods are safe for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	namespaces map[string]*namespace

	metricsFor func(string) cache.Metrics
	coalesce   bool
	shards     int
	clock      cache.Clock
}

type namespace struct {
	name string
	pol  cache.Policy
	c    cache.Cache[string, any]
}

// New constructs an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{namespaces: make(map[string]*namespace)}
	for _, o := range opts {
		o(r)
	}
	return r
}

// GetOrCompute resolves the namespace (creating it under pol on first
// reference) and memoizes compute under key. The policy of an existing
// namespace is fixed at creation; a different pol on a later call is
// silently ignored — read it back with Policy if in doubt.
func (r *Registry) GetOrCompute(ctx context.Context, ns, key string, pol cache.Policy, compute func(context.Context) (any, error)) (any, error) {
	n := r.lookup(ns)
	if n == nil {
		n = r.create(ns, pol)
	}
	return n.c.GetOrCompute(ctx, key, compute)
}

// Invalidate removes one key from the namespace. Returns false if the
// namespace or the key does not exist. Not counted as an eviction.
func (r *Registry) Invalidate(ns, key string) bool {
	if n := r.lookup(ns); n != nil {
		return n.c.Remove(key)
	}
	return false
}

// Clear removes all entries from one namespace. Its hit/miss/eviction history
// is preserved; clearing is a data operation, not a statistics reset.
func (r *Registry) Clear(ns string) {
	if n := r.lookup(ns); n != nil {
		n.c.Clear()
		log.Debugw("cleared namespace", "namespace", ns)
	}
}

// ClearAll tears down every namespace, statistics included.
func (r *Registry) ClearAll() {
	r.mu.Lock()
	old := r.namespaces
	r.namespaces = make(map[string]*namespace)
	r.mu.Unlock()

	for _, n := range old {
		_ = n.c.Close()
	}
	log.Debugw("cleared all namespaces", "count", len(old))
}

// Stats returns the statistics snapshot for one namespace; ok is false if the
// namespace has never been referenced.
func (r *Registry) Stats(ns string) (s cache.Stats, ok bool) {
	if n := r.lookup(ns); n != nil {
		return n.c.Stats(), true
	}
	return cache.Stats{}, false
}

// GlobalStats sums the statistics of every live namespace at query time, with
// the hit rate recomputed from the summed counters.
func (r *Registry) GlobalStats() cache.Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var total cache.Stats
	for _, n := range r.namespaces {
		total = total.Add(n.c.Stats())
	}
	return total
}

// Policy returns the policy a namespace was created with; ok is false if the
// namespace does not exist.
func (r *Registry) Policy(ns string) (p cache.Policy, ok bool) {
	if n := r.lookup(ns); n != nil {
		return n.pol, true
	}
	return cache.Policy{}, false
}

// Namespaces returns the names of all live namespaces, sorted.
func (r *Registry) Namespaces() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.namespaces))
	for name := range r.namespaces {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// lookup is the read-locked fast path for resolving a namespace.
func (r *Registry) lookup(ns string) *namespace {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.namespaces[ns]
}

// create is the slow path: create-if-absent under the write lock, so
// concurrent first-time creators converge on a single instance.
func (r *Registry) create(ns string, pol cache.Policy) *namespace {
	r.mu.Lock()
	defer r.mu.Unlock()

	if n, ok := r.namespaces[ns]; ok {
		return n
	}
	opt := cache.Options[string, any]{
		Policy:   pol,
		Shards:   r.shards,
		Coalesce: r.coalesce,
		Clock:    r.clock,
	}
	if r.metricsFor != nil {
		opt.Metrics = r.metricsFor(ns)
	}
	n := &namespace{name: ns, pol: pol, c: cache.New(opt)}
	r.namespaces[ns] = n
	log.Debugw("created namespace", "namespace", ns, "policy", pol.String())
	return n
}

// ---- package-level convenience over Default ----

// GetOrCompute memoizes compute under key in the named namespace of Default.
func GetOrCompute(ctx context.Context, ns, key string, pol cache.Policy, compute func(context.Context) (any, error)) (any, error) {
	return Default.GetOrCompute(ctx, ns, key, pol, compute)
}

// Invalidate removes one key from a namespace of Default.
func Invalidate(ns, key string) bool { return Default.Invalidate(ns, key) }

// Clear removes all entries from one namespace of Default.
func Clear(ns string) { Default.Clear(ns) }

// ClearAll tears down every namespace of Default.
func ClearAll() { Default.ClearAll() }

// Stats returns the statistics snapshot for one namespace of Default.
func Stats(ns string) (cache.Stats, bool) { return Default.Stats(ns) }

// GlobalStats aggregates statistics across all namespaces of Default.
func GlobalStats() cache.Stats { return Default.GlobalStats() }
