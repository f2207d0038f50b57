package cache

import (
	"testing"
	"time"
)

func TestPolicy_Accessors(t *testing.T) {
	t.Parallel()

	var zero Policy // zero value is NoEviction
	if zero != NoEviction() {
		t.Fatal("zero Policy must equal NoEviction()")
	}
	if zero.HasCapacity() || zero.HasTTL() {
		t.Fatal("NoEviction has no components")
	}

	p := CapacityBounded(10)
	if !p.HasCapacity() || p.HasTTL() || p.Limit() != 10 {
		t.Fatalf("CapacityBounded: %+v", p)
	}

	p = TimeBounded(time.Second, TTLSliding)
	if p.HasCapacity() || !p.HasTTL() || p.TTL() != time.Second || p.Mode() != TTLSliding {
		t.Fatalf("TimeBounded: %+v", p)
	}

	p = CapacityAndTime(5, time.Minute, TTLFixed)
	if !p.HasCapacity() || !p.HasTTL() || p.Limit() != 5 || p.TTL() != time.Minute || p.Mode() != TTLFixed {
		t.Fatalf("CapacityAndTime: %+v", p)
	}
}

func TestPolicy_Validation(t *testing.T) {
	t.Parallel()

	mustPanic := func(name string, fn func()) {
		t.Helper()
		defer func() {
			if recover() == nil {
				t.Fatalf("%s must panic", name)
			}
		}()
		fn()
	}

	mustPanic("CapacityBounded(0)", func() { CapacityBounded(0) })
	mustPanic("CapacityBounded(-1)", func() { CapacityBounded(-1) })
	mustPanic("TimeBounded(0)", func() { TimeBounded(0, TTLFixed) })
	mustPanic("TimeBounded(-1)", func() { TimeBounded(-time.Second, TTLSliding) })
	mustPanic("CapacityAndTime(0,1s)", func() { CapacityAndTime(0, time.Second, TTLFixed) })
	mustPanic("CapacityAndTime(1,0)", func() { CapacityAndTime(1, 0, TTLFixed) })
}

func TestPolicy_String(t *testing.T) {
	t.Parallel()

	cases := []struct {
		pol  Policy
		want string
	}{
		{NoEviction(), "none"},
		{CapacityBounded(3), "capacity(3)"},
		{TimeBounded(time.Second, TTLFixed), "ttl(1s,fixed)"},
		{CapacityAndTime(2, 500*time.Millisecond, TTLSliding), "capacity+ttl(2,500ms,sliding)"},
	}
	for _, tc := range cases {
		if got := tc.pol.String(); got != tc.want {
			t.Fatalf("String: want %q, got %q", tc.want, got)
		}
	}
}
