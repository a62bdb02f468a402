package query

import (
	"fmt"
	"strings"
	"time"

	"github.com/mmynk/paisasplit/internal/timefmt"
)

// DateRange is a named lookback bucket relative to "now".
type DateRange int

const (
	RangeAll DateRange = iota
	RangeToday
	RangeWeek
	RangeMonth
	RangeQuarter
)

var rangeKeys = [...]string{
	RangeAll:     "all",
	RangeToday:   "today",
	RangeWeek:    "week",
	RangeMonth:   "month",
	RangeQuarter: "quarter",
}

func (r DateRange) valid() bool {
	return r >= RangeAll && int(r) < len(rangeKeys)
}

// String returns the key of r as accepted by ParseDateRange.
func (r DateRange) String() string {
	if !r.valid() {
		return fmt.Sprintf("DateRange(%d)", int(r))
	}
	return rangeKeys[r]
}

// Label returns the filter menu text for r.
func (r DateRange) Label() string {
	switch r {
	case RangeAll:
		return "All Time"
	case RangeToday:
		return "Today"
	case RangeWeek:
		return "This Week"
	case RangeMonth:
		return "This Month"
	case RangeQuarter:
		return "This Quarter"
	}
	panic(fmt.Sprintf("query: invalid date range %d", int(r)))
}

// ParseDateRange maps a key such as "week" to its DateRange. The empty string
// means RangeAll.
func ParseDateRange(s string) (DateRange, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "" {
		return RangeAll, nil
	}
	for r, k := range rangeKeys {
		if k == key {
			return DateRange(r), nil
		}
	}
	return RangeAll, fmt.Errorf("%w: date range %q", ErrUnknownKey, s)
}

// Cutoff returns the earliest timestamp retained by r. The second result is
// false for RangeAll, which retains everything.
func (r DateRange) Cutoff(now time.Time) (time.Time, bool) {
	switch r {
	case RangeAll:
		return time.Time{}, false
	case RangeToday:
		return timefmt.StartOfDay(now), true
	case RangeWeek:
		return now.Add(-7 * 24 * time.Hour), true
	case RangeMonth:
		return now.AddDate(0, -1, 0), true
	case RangeQuarter:
		return timefmt.StartOfQuarter(now), true
	}
	panic(fmt.Sprintf("query: invalid date range %d", int(r)))
}

// Contains reports whether a record timestamped t falls inside r. A record
// without a timestamp (ok == false) only matches RangeAll.
func (r DateRange) Contains(t time.Time, ok bool, now time.Time) bool {
	cutoff, bounded := r.Cutoff(now)
	if !bounded {
		return true
	}
	return ok && !t.Before(cutoff)
}
