package report

import (
	"fmt"
	"sort"

	"github.com/pfrederiksen/stadium-alerts/internal/event"
)

// Range is an inclusive date range. A single day has Start == End.
type Range struct {
	Start event.Date `json:"start"`
	End   event.Date `json:"end"`
}

// Day returns the range covering only d.
func Day(d event.Date) Range {
	return Range{Start: d, End: d}
}

// Window returns the range of n days starting at start. n < 1 is treated as 1.
func Window(start event.Date, n int) Range {
	if n < 1 {
		n = 1
	}
	return Range{Start: start, End: start.AddDays(n - 1)}
}

// Single reports whether r covers exactly one day.
func (r Range) Single() bool {
	return r.Start == r.End
}

// Contains reports whether d is within r.
func (r Range) Contains(d event.Date) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}

// Days returns every date of r in increasing order.
func (r Range) Days() []event.Date {
	days := make([]event.Date, 0)
	for d := r.Start; !d.After(r.End); d = d.AddDays(1) {
		days = append(days, d)
	}
	return days
}

// Months returns the source months r touches, in increasing order.
func (r Range) Months() []event.Month {
	months := make([]event.Month, 0)
	for m := r.Start.MonthKey(); !r.End.MonthKey().Before(m); m = m.Next() {
		months = append(months, m)
	}
	return months
}

func (r Range) String() string {
	if r.Single() {
		return r.Start.String()
	}
	return fmt.Sprintf("%s..%s", r.Start, r.End)
}

// Gap is the part of a range that falls in a month with no source data.
type Gap struct {
	Month event.Month `json:"month"`
	From  event.Date  `json:"from"`
	To    event.Date  `json:"to"`
}

// GapsFor returns the gaps of r caused by the missing months, ordered by date.
// Months outside r are ignored.
func GapsFor(r Range, missing []event.Month) []Gap {
	gaps := make([]Gap, 0)
	for _, m := range missing {
		var from, to event.Date
		found := false
		for _, d := range r.Days() {
			if !m.Contains(d) {
				continue
			}
			if !found {
				from = d
				found = true
			}
			to = d
		}
		if found {
			gaps = append(gaps, Gap{Month: m, From: from, To: to})
		}
	}
	sort.Slice(gaps, func(i, j int) bool {
		return gaps[i].From.Before(gaps[j].From)
	})
	return gaps
}
