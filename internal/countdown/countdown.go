// Package countdown computes remaining-time breakdowns, urgency tiers, and
// the coarse buckets used for approximate deadlines. It also owns the
// registry of per-card one-second tickers (registry.go).
package countdown

import (
	"fmt"
	"math"
	"time"
)

// Tier classifies how close a deadline is. It drives display emphasis only.
type Tier int

const (
	TierNeutral  Tier = iota
	TierSoon          // less than 7 days
	TierCritical      // less than 1 day
)

// Breakdown is a remaining duration decomposed for display.
// Hours, Minutes and Seconds are the remainders after the larger unit, so
// Hours is 0-23 and Minutes/Seconds are 0-59. Only Days grows unbounded.
type Breakdown struct {
	Days    int
	Hours   int
	Minutes int
	Seconds int
}

// Decompose splits a positive remaining duration via floor division on the
// millisecond remainder chain. No rounding, no rollover.
func Decompose(remaining time.Duration) Breakdown {
	ms := remaining.Milliseconds()
	if ms < 0 {
		ms = 0
	}
	const (
		msPerSecond = int64(1000)
		msPerMinute = 60 * msPerSecond
		msPerHour   = 60 * msPerMinute
		msPerDay    = 24 * msPerHour
	)
	b := Breakdown{Days: int(ms / msPerDay)}
	ms %= msPerDay
	b.Hours = int(ms / msPerHour)
	ms %= msPerHour
	b.Minutes = int(ms / msPerMinute)
	ms %= msPerMinute
	b.Seconds = int(ms / msPerSecond)
	return b
}

// TierFor classifies a positive remaining duration by whole days.
func TierFor(remaining time.Duration) Tier {
	days := int(remaining / (24 * time.Hour))
	switch {
	case days < 1:
		return TierCritical
	case days < 7:
		return TierSoon
	default:
		return TierNeutral
	}
}

// Passed reports whether the target instant has been reached.
func Passed(remaining time.Duration) bool {
	return remaining <= 0
}

// ApproxLabel buckets a remaining duration for an approximate deadline:
// day counts round to the nearest multiple of ten, anything under ten days
// collapses to a single sentinel.
func ApproxLabel(remaining time.Duration) string {
	if remaining <= 0 {
		return "Passed"
	}
	days := int(remaining / (24 * time.Hour))
	if days < 10 {
		return "<10 days"
	}
	return fmt.Sprintf("~%d days", int(math.Round(float64(days)/10))*10)
}
