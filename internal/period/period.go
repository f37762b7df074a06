// Package period resolves named reporting periods into concrete date intervals.
package period

import (
	"errors"
	"fmt"
	"time"

	"github.com/joseph-ayodele/bizledger/internal/entity"
)

// Token names a reporting period.
type Token string

const (
	CurrentMonth   Token = "current-month"
	LastMonth      Token = "last-month"
	CurrentQuarter Token = "current-quarter"
	CurrentYear    Token = "current-year"
	LastYear       Token = "last-year"
	Custom         Token = "custom"
)

var (
	ErrUnknownToken = errors.New("unknown period token")
	ErrCustomRange  = errors.New("custom period requires start and end dates")
)

// Tokens lists the supported period tokens in display order.
func Tokens() []Token {
	return []Token{CurrentMonth, LastMonth, CurrentQuarter, CurrentYear, LastYear, Custom}
}

// Interval is a closed date interval. Both bounds are inclusive.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls within [Start, End].
func (iv Interval) Contains(t time.Time) bool {
	return !t.Before(iv.Start) && !t.After(iv.End)
}

// Duration returns End - Start.
func (iv Interval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

// Reversed reports whether the interval ends before it starts.
func (iv Interval) Reversed() bool {
	return iv.End.Before(iv.Start)
}

// Resolve maps token to an interval relative to now. Open-ended periods end
// at now itself rather than at the end of the month, quarter or year.
// customStart and customEnd are only consulted for Custom and are taken
// verbatim, reversed bounds included.
func Resolve(token Token, now time.Time, customStart, customEnd *time.Time) (Interval, error) {
	now = utcWall(now)
	year, month := now.Year(), now.Month()

	switch token {
	case CurrentMonth:
		return Interval{Start: date(year, month, 1), End: now}, nil
	case LastMonth:
		start := date(year, month-1, 1)
		return Interval{Start: start, End: date(year, month, 0)}, nil
	case CurrentQuarter:
		first := time.Month((int(month)-1)/3*3 + 1)
		return Interval{Start: date(year, first, 1), End: now}, nil
	case CurrentYear:
		return Interval{Start: date(year, time.January, 1), End: now}, nil
	case LastYear:
		return Interval{Start: date(year-1, time.January, 1), End: date(year-1, time.December, 31)}, nil
	case Custom:
		if customStart == nil || customEnd == nil {
			return Interval{}, ErrCustomRange
		}
		return Interval{Start: entity.Day(*customStart), End: entity.Day(*customEnd)}, nil
	default:
		return Interval{}, fmt.Errorf("%w: %q", ErrUnknownToken, token)
	}
}

// Previous returns the interval that ends one nanosecond before iv starts
// and spans the same number of calendar days. Its start is truncated to
// midnight so date-only records on its first day are included. The bool is
// false when iv is reversed, in which case no comparison period exists.
func Previous(iv Interval) (Interval, bool) {
	if iv.Reversed() {
		return Interval{}, false
	}
	end := iv.Start.Add(-time.Nanosecond)
	return Interval{Start: entity.Day(end.Add(-iv.Duration())), End: end}, true
}

// Label returns the human readable name of a resolved period.
func Label(token Token, iv Interval) string {
	switch token {
	case CurrentMonth:
		return "Current Month"
	case LastMonth:
		return "Last Month"
	case CurrentQuarter:
		return "Current Quarter"
	case CurrentYear:
		return "Current Year"
	case LastYear:
		return "Last Year"
	case Custom:
		return fmt.Sprintf("%s to %s", iv.Start.Format(entity.DateLayout), iv.End.Format(entity.DateLayout))
	default:
		return "Current Month"
	}
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// utcWall keeps the wall clock reading of t but moves it into UTC so it
// compares directly with stored calendar dates.
func utcWall(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}
