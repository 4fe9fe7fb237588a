package filter

import (
	"testing"
	"time"

	"github.com/pfrederiksen/stadium-alerts/internal/event"
)

func TestParseDateRange(t *testing.T) {
	today := event.Date{Year: 2025, Month: time.June, Day: 10}

	tests := []struct {
		name     string
		input    string
		wantFrom string
		wantTo   string
		wantErr  bool
	}{
		{"same month", "Jun 1-15", "2025-06-01", "2025-06-15", false},
		{"full month name", "July 4-6", "2025-07-04", "2025-07-06", false},
		{"past month rolls to next year", "Mar 1-15", "2026-03-01", "2026-03-15", false},
		{"cross month", "June 28 - July 3", "2025-06-28", "2025-07-03", false},
		{"cross year", "Dec 30 - Jan 2", "2025-12-30", "2026-01-02", false},
		{"whole month", "September", "2025-09-01", "2025-09-30", false},
		{"whole february", "feb", "2026-02-01", "2026-02-28", false},
		{"abbreviation with t", "Sept 1-2", "2025-09-01", "2025-09-02", false},
		{"reversed days", "Jun 15-1", "", "", true},
		{"invalid day", "Jun 31-31", "", "", true},
		{"empty", "  ", "", "", true},
		{"unknown format", "next week", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to, err := ParseDateRange(tt.input, today)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDateRange(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if from.String() != tt.wantFrom || to.String() != tt.wantTo {
				t.Errorf("ParseDateRange(%q) = %s..%s, want %s..%s", tt.input, from, to, tt.wantFrom, tt.wantTo)
			}
		})
	}
}
