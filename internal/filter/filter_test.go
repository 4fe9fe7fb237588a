package filter

import (
	"strings"
	"testing"
	"time"

	"github.com/pfrederiksen/stadium-alerts/internal/disruption"
	"github.com/pfrederiksen/stadium-alerts/internal/event"
)

func date(t *testing.T, year int, month time.Month, day int) event.Date {
	t.Helper()
	d, ok := event.NewDate(year, month, day)
	if !ok {
		t.Fatalf("invalid date %d-%d-%d", year, month, day)
	}
	return d
}

func datePtr(d event.Date) *event.Date {
	return &d
}

func TestFilter_IsEmpty(t *testing.T) {
	tests := []struct {
		name   string
		filter *Filter
		want   bool
	}{
		{
			name:   "nil filter",
			filter: nil,
			want:   true,
		},
		{
			name:   "empty filter",
			filter: NewFilter(),
			want:   true,
		},
		{
			name: "filter with date from",
			filter: &Filter{
				DateFrom: datePtr(event.Date{Year: 2025, Month: time.June, Day: 1}),
			},
			want: false,
		},
		{
			name: "filter with weekends only",
			filter: &Filter{
				WeekendsOnly: true,
			},
			want: false,
		},
		{
			name: "filter with venue",
			filter: &Filter{
				Venues: []string{"linc"},
			},
			want: false,
		},
		{
			name: "filter with disruptive only",
			filter: &Filter{
				DisruptiveOnly: true,
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.IsEmpty(); got != tt.want {
				t.Errorf("Filter.IsEmpty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilter_Matches(t *testing.T) {
	// Saturday June 7, 2025 and Tuesday June 3, 2025
	saturday := event.NewCalendarEvent(date(t, 2025, time.June, 7), "7pm", "7pm", nil, "Eagles Fan Fest", "the Linc", 65000)
	tuesday := event.NewCalendarEvent(date(t, 2025, time.June, 3), "1:05pm", "1:05pm", nil, "Phillies vs Mets", "the Bank", 40000)
	early := disruption.Tags(0).With(disruption.Early)

	tests := []struct {
		name   string
		filter *Filter
		evt    *event.CalendarEvent
		tags   disruption.Tags
		want   bool
	}{
		{"empty filter matches", NewFilter(), tuesday, 0, true},
		{"within date range", &Filter{DateFrom: datePtr(date(t, 2025, time.June, 1)), DateTo: datePtr(date(t, 2025, time.June, 3))}, tuesday, 0, true},
		{"range end is inclusive", &Filter{DateTo: datePtr(date(t, 2025, time.June, 7))}, saturday, 0, true},
		{"before date from", &Filter{DateFrom: datePtr(date(t, 2025, time.June, 4))}, tuesday, 0, false},
		{"after date to", &Filter{DateTo: datePtr(date(t, 2025, time.June, 6))}, saturday, 0, false},
		{"weekend event", &Filter{WeekendsOnly: true}, saturday, 0, true},
		{"weekday event", &Filter{WeekendsOnly: true}, tuesday, 0, false},
		{"venue substring ignores case", &Filter{Venues: []string{"LINC"}}, saturday, 0, true},
		{"venue mismatch", &Filter{Venues: []string{"linc"}}, tuesday, 0, false},
		{"any venue matches", &Filter{Venues: []string{"wells fargo", "bank"}}, tuesday, 0, true},
		{"name substring", &Filter{Names: []string{"phillies"}}, tuesday, 0, true},
		{"name mismatch", &Filter{Names: []string{"flyers"}}, tuesday, 0, false},
		{"attendance at minimum", &Filter{MinAttendance: 40000}, tuesday, 0, true},
		{"attendance below minimum", &Filter{MinAttendance: 50000}, tuesday, 0, false},
		{"disruptive with tags", &Filter{DisruptiveOnly: true}, tuesday, early, true},
		{"disruptive without tags", &Filter{DisruptiveOnly: true}, saturday, 0, false},
		{"all criteria", &Filter{Venues: []string{"linc"}, WeekendsOnly: true, MinAttendance: 60000}, saturday, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Matches(tt.evt, tt.tags); got != tt.want {
				t.Errorf("Filter.Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilter_String(t *testing.T) {
	if got := NewFilter().String(); got != "No active filters" {
		t.Errorf("empty String() = %q", got)
	}

	f := &Filter{
		DateFrom:       datePtr(date(t, 2025, time.June, 1)),
		Venues:         []string{"linc", "bank"},
		WeekendsOnly:   true,
		MinAttendance:  40000,
		DisruptiveOnly: true,
	}
	got := f.String()
	for _, want := range []string{"From: Jun 1, 2025", "Venues: linc, bank", "Weekends only", "Min attendance: 40000", "Disruptive only"} {
		if !strings.Contains(got, want) {
			t.Errorf("String() = %q, missing %q", got, want)
		}
	}
}

func TestFilter_Clone(t *testing.T) {
	original := &Filter{
		DateFrom: datePtr(date(t, 2025, time.June, 1)),
		Venues:   []string{"linc"},
		Names:    []string{"eagles"},
	}

	clone := original.Clone()
	clone.Venues[0] = "bank"
	clone.DateFrom.Day = 20

	if original.Venues[0] != "linc" {
		t.Error("modifying clone venues changed the original")
	}
	if original.DateFrom.Day != 1 {
		t.Error("modifying clone date changed the original")
	}
}
