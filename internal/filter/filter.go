// Package filter narrows the events of an export.
//
// Criteria combine with AND; list criteria match when any entry matches:
//   - Date range (inclusive)
//   - Venues (substring matching, case-insensitive)
//   - Event names (substring matching, case-insensitive)
//   - Weekends only (Saturday/Sunday)
//   - Minimum attendance
//   - Disruptive only (the event or its day carries a disruption tag)
//
// Example usage:
//
//	// Large weekend events at the Linc
//	f := filter.NewFilter()
//	f.WeekendsOnly = true
//	f.Venues = []string{"linc"}
//	f.MinAttendance = 40000
//
//	if f.Matches(evt, tags) { ... }
package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/pfrederiksen/stadium-alerts/internal/disruption"
	"github.com/pfrederiksen/stadium-alerts/internal/event"
)

// Filter represents event filtering criteria
type Filter struct {
	// Date range filtering
	DateFrom *event.Date `json:"date_from,omitempty"`
	DateTo   *event.Date `json:"date_to,omitempty"`

	// Venue filtering (case-insensitive substring match on the venue name)
	Venues []string `json:"venues,omitempty"`

	// Event name filtering (case-insensitive substring match)
	Names []string `json:"names,omitempty"`

	// Weekend-only filtering (Saturday/Sunday)
	WeekendsOnly bool `json:"weekends_only,omitempty"`

	MinAttendance int `json:"min_attendance,omitempty"`

	DisruptiveOnly bool `json:"disruptive_only,omitempty"`
}

// NewFilter creates a new empty filter with no active criteria.
// The filter will match all events until criteria are added.
func NewFilter() *Filter {
	return &Filter{
		Venues: []string{},
		Names:  []string{},
	}
}

// IsEmpty checks if the filter has any active criteria.
// Returns true if the filter would match all events.
func (f *Filter) IsEmpty() bool {
	return f == nil ||
		f.DateFrom == nil &&
			f.DateTo == nil &&
			len(f.Venues) == 0 &&
			len(f.Names) == 0 &&
			!f.WeekendsOnly &&
			f.MinAttendance <= 0 &&
			!f.DisruptiveOnly
}

// Matches checks if an event matches all active filter criteria. tags are the
// disruption tags that apply to the event, its day's tags included.
// A nil or empty filter matches all events.
func (f *Filter) Matches(evt *event.CalendarEvent, tags disruption.Tags) bool {
	if f.IsEmpty() {
		return true
	}

	// Check date range
	if f.DateFrom != nil && evt.Date.Before(*f.DateFrom) {
		return false
	}
	if f.DateTo != nil && evt.Date.After(*f.DateTo) {
		return false
	}

	// Check weekends only
	if f.WeekendsOnly {
		weekday := evt.Date.Weekday()
		if weekday != time.Saturday && weekday != time.Sunday {
			return false
		}
	}

	if !containsAny(evt.Venue, f.Venues) || !containsAny(evt.Name, f.Names) {
		return false
	}

	if f.MinAttendance > 0 && evt.Attendance < f.MinAttendance {
		return false
	}

	if f.DisruptiveOnly && tags.Empty() {
		return false
	}

	return true
}

// containsAny reports whether s contains one of subs, ignoring case.
// An empty subs list matches everything.
func containsAny(s string, subs []string) bool {
	if len(subs) == 0 {
		return true
	}
	lower := strings.ToLower(s)
	for _, sub := range subs {
		if strings.Contains(lower, strings.ToLower(sub)) {
			return true
		}
	}
	return false
}

// String returns a human-readable description of the active filter criteria.
// Returns "No active filters" if the filter is empty.
// Format: "From: Jun 1, 2025 | To: Jun 15, 2025 | Venues: linc | Weekends only"
func (f *Filter) String() string {
	if f.IsEmpty() {
		return "No active filters"
	}

	var parts []string

	if f.DateFrom != nil {
		parts = append(parts, fmt.Sprintf("From: %s", f.DateFrom.Time(time.UTC).Format("Jan 2, 2006")))
	}

	if f.DateTo != nil {
		parts = append(parts, fmt.Sprintf("To: %s", f.DateTo.Time(time.UTC).Format("Jan 2, 2006")))
	}

	if len(f.Venues) > 0 {
		parts = append(parts, fmt.Sprintf("Venues: %s", strings.Join(f.Venues, ", ")))
	}

	if len(f.Names) > 0 {
		parts = append(parts, fmt.Sprintf("Names: %s", strings.Join(f.Names, ", ")))
	}

	if f.WeekendsOnly {
		parts = append(parts, "Weekends only")
	}

	if f.MinAttendance > 0 {
		parts = append(parts, fmt.Sprintf("Min attendance: %d", f.MinAttendance))
	}

	if f.DisruptiveOnly {
		parts = append(parts, "Disruptive only")
	}

	return strings.Join(parts, " | ")
}

// Clone creates a deep copy of the filter.
func (f *Filter) Clone() *Filter {
	clone := &Filter{
		WeekendsOnly:   f.WeekendsOnly,
		MinAttendance:  f.MinAttendance,
		DisruptiveOnly: f.DisruptiveOnly,
	}

	if f.DateFrom != nil {
		df := *f.DateFrom
		clone.DateFrom = &df
	}

	if f.DateTo != nil {
		dt := *f.DateTo
		clone.DateTo = &dt
	}

	clone.Venues = append([]string{}, f.Venues...)
	clone.Names = append([]string{}, f.Names...)

	return clone
}
