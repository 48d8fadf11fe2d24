// Package period implements the time-window filter applied to every
// timestamped record before aggregation.
package period

import (
	"fmt"
	"time"
)

// Kind enumerates the supported window variants.
type Kind int

const (
	AllTime Kind = iota
	Month
	YearToDate
	// Range is an explicit half-open interval. It is not part of the external
	// filter surface; trend computation uses it to compare halves of the
	// available date range under an all-time selection.
	Range
)

// Window is one time-window specification.
type Window struct {
	Kind  Kind
	Month time.Month // Month windows
	Year  int        // Month and YearToDate windows
	From  time.Time  // Range windows, inclusive
	To    time.Time  // Range windows, exclusive
}

// AllTimeWindow matches every valid timestamp.
func AllTimeWindow() Window {
	return Window{Kind: AllTime}
}

// MonthWindow matches timestamps in exactly the given month and year.
func MonthWindow(m time.Month, year int) Window {
	return Window{Kind: Month, Month: m, Year: year}
}

// YTDWindow matches timestamps whose year equals the reference year.
func YTDWindow(year int) Window {
	return Window{Kind: YearToDate, Year: year}
}

// RangeWindow matches timestamps in [from, to).
func RangeWindow(from, to time.Time) Window {
	return Window{Kind: Range, From: from, To: to}
}

// CurrentYTD derives the lagged "current year" window. The feed runs roughly
// lagMonths behind real time, so early in a new year the reference still
// points at the previous one: with the default one-month lag, January reports
// against last year.
func CurrentYTD(now time.Time, lagMonths int) Window {
	if lagMonths < 0 {
		lagMonths = 0
	}
	ref := now.AddDate(0, -lagMonths, 0)
	return YTDWindow(ref.Year())
}

// Contains reports whether the timestamp falls inside the window. A zero
// timestamp never matches; a malformed record is excluded, never an error.
func (w Window) Contains(t time.Time) bool {
	if t.IsZero() {
		return false
	}
	switch w.Kind {
	case AllTime:
		return true
	case Month:
		return t.Month() == w.Month && t.Year() == w.Year
	case YearToDate:
		return t.Year() == w.Year
	case Range:
		return !t.Before(w.From) && t.Before(w.To)
	default:
		return false
	}
}

// Previous returns the immediately preceding comparable window: the prior
// month for a month window, the prior year for YTD. All-time and range
// windows have no single predecessor; ok is false for those.
func (w Window) Previous() (Window, bool) {
	switch w.Kind {
	case Month:
		if w.Month == time.January {
			return MonthWindow(time.December, w.Year-1), true
		}
		return MonthWindow(w.Month-1, w.Year), true
	case YearToDate:
		return YTDWindow(w.Year - 1), true
	default:
		return Window{}, false
	}
}

// Halves splits [min, max] into two equal range windows, used for all-time
// trend comparison. ok is false when the span is empty.
func Halves(min, max time.Time) (first, second Window, ok bool) {
	if min.IsZero() || max.IsZero() || !max.After(min) {
		return Window{}, Window{}, false
	}
	mid := min.Add(max.Sub(min) / 2)
	// Extend the second half past max so the boundary record is included.
	return RangeWindow(min, mid), RangeWindow(mid, max.Add(time.Second)), true
}

// String renders the window for snapshots and logs.
func (w Window) String() string {
	switch w.Kind {
	case AllTime:
		return "all-time"
	case Month:
		return fmt.Sprintf("%s %d", w.Month, w.Year)
	case YearToDate:
		return fmt.Sprintf("YTD %d", w.Year)
	case Range:
		return fmt.Sprintf("%s..%s", w.From.Format("2006-01-02"), w.To.Format("2006-01-02"))
	default:
		return "unknown"
	}
}
