// Package singleflight coalesces concurrent function calls per key.
package singleflight

import (
	"context"
	"sync"
)

// Group runs at most one fn per key at a time: the first caller for a key
// becomes the leader and executes fn, every concurrent caller for the same
// key blocks until the leader publishes its result and then shares it.
//
// Publishing (val, err) happens-before close(c.done), so followers reading
// after <-done see the final values. A follower whose ctx is cancelled gives
// up waiting and returns ctx.Err(); the leader keeps running regardless, so
// cancellation of the work itself must go through the ctx handed to fn.
type Group[K comparable, V any] struct {
	mu sync.Mutex
	m  map[K]*call[V]
}

type call[V any] struct {
	done chan struct{} // closed when val/err are published
	val  V
	err  error
}

// Do returns the result of fn for key, executing it only if no flight for
// key is already in progress.
func (g *Group[K, V]) Do(ctx context.Context, key K, fn func() (V, error)) (V, error) {
	g.mu.Lock()
	if g.m == nil {
		g.m = make(map[K]*call[V])
	}
	if c, ok := g.m[key]; ok {
		// join the in-flight call
		done := c.done
		g.mu.Unlock()

		select {
		case <-done:
			return c.val, c.err
		case <-ctx.Done():
			var zero V
			return zero, ctx.Err()
		}
	}

	c := &call[V]{done: make(chan struct{})}
	g.m[key] = c
	g.mu.Unlock()

	// Leader path: run fn outside the lock, publish, retire the flight.
	c.val, c.err = fn()
	close(c.done)

	g.mu.Lock()
	delete(g.m, key)
	g.mu.Unlock()

	return c.val, c.err
}
