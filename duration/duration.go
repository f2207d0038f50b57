// Package duration parses human-readable duration strings such as "500ms",
// "30s" or "1.5h" into time.Duration values.
//
// The accepted grammar is deliberately narrower than time.ParseDuration's: an
// optional sign, a decimal number (integer or fractional), immediately
// followed by exactly one unit token from ns, us, ms, s, m, h, d.
// Units are case-sensitive and no whitespace is allowed anywhere. Multiple
// components ("1h30m") are rejected.
package duration

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"
)

// ErrInvalidFormat is the sentinel wrapped by every parse failure.
// Test with errors.Is.
var ErrInvalidFormat = errors.New("invalid duration format")

// Day is the scale of the "d" unit.
const Day = 24 * time.Hour

var unitScale = map[string]time.Duration{
	"ns": time.Nanosecond,
	"us": time.Microsecond,
	"ms": time.Millisecond,
	"s":  time.Second,
	"m":  time.Minute,
	"h":  time.Hour,
	"d":  Day,
}

// Parse converts a single magnitude+unit pair into a time.Duration.
// Fractional magnitudes are scaled to the unit's base and rounded to the
// nearest nanosecond, so Parse("1.5h") == 90*time.Minute.
func Parse(s string) (time.Duration, error) {
	if s == "" {
		return 0, fmt.Errorf("%w: empty string", ErrInvalidFormat)
	}

	i := 0
	neg := false
	if s[0] == '+' || s[0] == '-' {
		neg = s[0] == '-'
		i = 1
	}

	// The number is a run of digits with at most one decimal point.
	j := i
	for j < len(s) && (s[j] >= '0' && s[j] <= '9' || s[j] == '.') {
		j++
	}
	num, unit := s[i:j], s[j:]

	if num == "" {
		return 0, fmt.Errorf("%w: missing number in %q", ErrInvalidFormat, s)
	}
	mag, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid number %q", ErrInvalidFormat, num)
	}

	if unit == "" {
		return 0, fmt.Errorf("%w: missing unit in %q", ErrInvalidFormat, s)
	}
	scale, ok := unitScale[unit]
	if !ok {
		return 0, fmt.Errorf("%w: unknown unit %q", ErrInvalidFormat, unit)
	}

	d := time.Duration(math.Round(mag * float64(scale)))
	if neg {
		d = -d
	}
	return d, nil
}

// MustParse is Parse for static configuration strings; it panics on error.
func MustParse(s string) time.Duration {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}
