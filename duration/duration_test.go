package duration_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nscache/nscache/duration"
)

func TestParse_Units(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want time.Duration
	}{
		{"100ns", 100 * time.Nanosecond},
		{"500us", 500 * time.Microsecond},
		{"500ms", 500 * time.Millisecond},
		{"30s", 30 * time.Second},
		{"5m", 5 * time.Minute},
		{"2h", 2 * time.Hour},
		{"1d", 24 * time.Hour},
	}
	for _, tc := range cases {
		got, err := duration.Parse(tc.in)
		require.NoError(t, err, tc.in)
		require.Equal(t, tc.want, got, tc.in)
	}
}

func TestParse_Fractional(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want time.Duration
	}{
		{"1.5h", 5_400_000 * time.Millisecond},
		{"1.5s", 1500 * time.Millisecond},
		{"0.5m", 30 * time.Second},
		{"1.25h", 4500 * time.Second},
		{"2.5d", 60 * time.Hour},
		{".5s", 500 * time.Millisecond},
	}
	for _, tc := range cases {
		got, err := duration.Parse(tc.in)
		require.NoError(t, err, tc.in)
		require.Equal(t, tc.want, got, tc.in)
	}
}

func TestParse_Sign(t *testing.T) {
	t.Parallel()

	got, err := duration.Parse("+10s")
	require.NoError(t, err)
	require.Equal(t, 10*time.Second, got)

	got, err = duration.Parse("-10s")
	require.NoError(t, err)
	require.Equal(t, -10*time.Second, got)
}

func TestParse_Invalid(t *testing.T) {
	t.Parallel()

	bad := []string{
		"",        // empty
		"xs",      // no number
		"100",     // missing unit
		"100xy",   // unknown unit
		"1.2.3s",  // malformed number
		"1h30m",   // multiple components not supported
		"10 s",    // internal whitespace
		" 10s",    // leading whitespace
		"10s ",    // trailing whitespace
		"10S",     // units are case-sensitive
		"1.5H",    // ditto
		"1e3ms",   // exponent is not decimal notation
		"--10s",   // double sign
		"µs",      // only ASCII "us" is accepted
		"1second", // long unit names are not accepted
	}
	for _, in := range bad {
		_, err := duration.Parse(in)
		require.ErrorIs(t, err, duration.ErrInvalidFormat, "input %q", in)
	}
}

func TestMustParse(t *testing.T) {
	t.Parallel()

	require.Equal(t, 90*time.Minute, duration.MustParse("1.5h"))
	require.Panics(t, func() { duration.MustParse("nope") })
}
