package domain

import (
	"math"
	"time"
)

// MaxExpiry is the latest expiry a punishment can carry. It is the last instant that still
// encodes as RFC3339, so saturated expiries survive JSON and timestamptz round trips.
var MaxExpiry = time.Date(9999, time.December, 31, 23, 59, 59, 999_000_000, time.UTC)

// maxDurationMs is the largest millisecond count a time.Duration can hold
const maxDurationMs = math.MaxInt64 / int64(time.Millisecond)

// ExpiryAfter returns base plus ms milliseconds, saturating at MaxExpiry.
// Negative ms is treated as zero.
func ExpiryAfter(base time.Time, ms int64) time.Time {
	if ms < 0 {
		ms = 0
	}
	if ms <= maxDurationMs {
		e := base.Add(time.Duration(ms) * time.Millisecond)
		if e.After(MaxExpiry) {
			return MaxExpiry
		}
		return e
	}

	// beyond time.Duration range: add in milliseconds
	baseMs := base.UnixMilli()
	if ms >= MaxExpiry.UnixMilli()-baseMs {
		return MaxExpiry
	}
	return time.UnixMilli(baseMs + ms).In(base.Location())
}

// MillisToDuration converts milliseconds to a time.Duration, saturating instead of wrapping
func MillisToDuration(ms int64) time.Duration {
	switch {
	case ms > maxDurationMs:
		return time.Duration(math.MaxInt64)
	case ms < -maxDurationMs:
		return time.Duration(math.MinInt64)
	}
	return time.Duration(ms) * time.Millisecond
}
