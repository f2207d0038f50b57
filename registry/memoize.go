package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/nscache/nscache/cache"
	"github.com/nscache/nscache/duration"
)

// ErrValueType is returned when a cached value does not have the type the
// call site expects. A namespace's value type is fixed per call site; mixing
// types under one key is a programming error surfaced as this error.
var ErrValueType = errors.New("cached value has unexpected type")

// Memoize caches compute's result under namespace/key in the Default
// registry with no eviction.
func Memoize[V any](ctx context.Context, ns, key string, compute func(context.Context) (V, error)) (V, error) {
	return MemoizeWith(ctx, Default, ns, key, cache.NoEviction(), compute)
}

// MemoizeTTL is Memoize with time-bounded eviction. ttl is a duration string
// such as "500ms" or "1.5h" (see the duration package for the grammar).
func MemoizeTTL[V any](ctx context.Context, ns, key, ttl string, mode cache.TTLMode, compute func(context.Context) (V, error)) (V, error) {
	d, err := duration.Parse(ttl)
	if err != nil {
		var zero V
		return zero, err
	}
	return MemoizeWith(ctx, Default, ns, key, cache.TimeBounded(d, mode), compute)
}

// MemoizeLimit is Memoize with capacity-bounded (LRU) eviction.
func MemoizeLimit[V any](ctx context.Context, ns, key string, limit int, compute func(context.Context) (V, error)) (V, error) {
	return MemoizeWith(ctx, Default, ns, key, cache.CapacityBounded(limit), compute)
}

// MemoizeTTLLimit is Memoize with combined capacity and TTL eviction.
func MemoizeTTLLimit[V any](ctx context.Context, ns, key, ttl string, limit int, mode cache.TTLMode, compute func(context.Context) (V, error)) (V, error) {
	d, err := duration.Parse(ttl)
	if err != nil {
		var zero V
		return zero, err
	}
	return MemoizeWith(ctx, Default, ns, key, cache.CapacityAndTime(limit, d, mode), compute)
}

// MemoizeWith is the generic type-safe wrapper over Registry.GetOrCompute.
// The registry stores values as any; MemoizeWith asserts the result back to V
// and fails with ErrValueType on a mismatch.
func MemoizeWith[V any](ctx context.Context, r *Registry, ns, key string, pol cache.Policy, compute func(context.Context) (V, error)) (V, error) {
	out, err := r.GetOrCompute(ctx, ns, key, pol, func(ctx context.Context) (any, error) {
		return compute(ctx)
	})
	if err != nil {
		var zero V
		return zero, err
	}
	v, ok := out.(V)
	if !ok {
		var zero V
		return zero, fmt.Errorf("%w: namespace %q key %q holds %T", ErrValueType, ns, key, out)
	}
	return v, nil
}
