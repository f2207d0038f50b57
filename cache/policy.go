package cache

import (
	"fmt"
	"time"
)

// TTLMode selects how an entry's expiry deadline is computed.
type TTLMode int

const (
	// TTLFixed fixes the deadline at creation time; later reads do not move it.
	TTLFixed TTLMode = iota
	// TTLSliding pushes the deadline forward on every successful read.
	TTLSliding
)

func (m TTLMode) String() string {
	if m == TTLSliding {
		return "sliding"
	}
	return "fixed"
}

type policyKind uint8

const (
	policyNone policyKind = iota
	policyCapacity
	policyTime
	policyCapacityTime
)

// Policy is the closed set of eviction configurations a cache can run under.
// The zero value is NoEviction. Policy values are comparable and immutable;
// use the constructors below, which validate their arguments.
type Policy struct {
	kind  policyKind
	limit int
	ttl   time.Duration
	mode  TTLMode
}

// NoEviction keeps every entry until it is explicitly removed or cleared.
func NoEviction() Policy { return Policy{kind: policyNone} }

// CapacityBounded evicts least-recently-used entries once the entry count
// exceeds limit. Panics if limit <= 0.
func CapacityBounded(limit int) Policy {
	if limit <= 0 {
		panic("cache: capacity limit must be > 0")
	}
	return Policy{kind: policyCapacity, limit: limit}
}

// TimeBounded expires entries d after creation (TTLFixed) or after the last
// access (TTLSliding). Panics if d <= 0.
func TimeBounded(d time.Duration, mode TTLMode) Policy {
	if d <= 0 {
		panic("cache: ttl duration must be > 0")
	}
	return Policy{kind: policyTime, ttl: d, mode: mode}
}

// CapacityAndTime combines the capacity bound with TTL expiry.
// Panics if limit <= 0 or d <= 0.
func CapacityAndTime(limit int, d time.Duration, mode TTLMode) Policy {
	if limit <= 0 {
		panic("cache: capacity limit must be > 0")
	}
	if d <= 0 {
		panic("cache: ttl duration must be > 0")
	}
	return Policy{kind: policyCapacityTime, limit: limit, ttl: d, mode: mode}
}

// HasCapacity reports whether the policy enforces an entry count limit.
func (p Policy) HasCapacity() bool {
	return p.kind == policyCapacity || p.kind == policyCapacityTime
}

// HasTTL reports whether the policy expires entries by time.
func (p Policy) HasTTL() bool {
	return p.kind == policyTime || p.kind == policyCapacityTime
}

// Limit returns the entry count limit, or 0 when the policy has none.
func (p Policy) Limit() int { return p.limit }

// TTL returns the expiry duration, or 0 when the policy has none.
func (p Policy) TTL() time.Duration { return p.ttl }

// Mode returns the TTL mode; meaningful only when HasTTL is true.
func (p Policy) Mode() TTLMode { return p.mode }

func (p Policy) String() string {
	switch p.kind {
	case policyCapacity:
		return fmt.Sprintf("capacity(%d)", p.limit)
	case policyTime:
		return fmt.Sprintf("ttl(%s,%s)", p.ttl, p.mode)
	case policyCapacityTime:
		return fmt.Sprintf("capacity+ttl(%d,%s,%s)", p.limit, p.ttl, p.mode)
	default:
		return "none"
	}
}
