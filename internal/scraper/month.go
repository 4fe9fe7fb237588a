package scraper

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pfrederiksen/stadium-alerts/internal/event"
)

var monthAbbrev = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// ParseMonth parses a calendar label in "MM/YYYY" ("08/2003") or "monYYYY" ("jan2024")
// form. Backslashes left over from JSON escaping are ignored.
func ParseMonth(label string) (event.Month, error) {
	s := strings.TrimSpace(strings.ReplaceAll(label, `\`, ""))

	if mm, yyyy, ok := strings.Cut(s, "/"); ok {
		month, err := strconv.Atoi(strings.TrimSpace(mm))
		if err != nil || month < 1 || month > 12 {
			return event.Month{}, fmt.Errorf("invalid month in %q", label)
		}
		year, err := strconv.Atoi(strings.TrimSpace(yyyy))
		if err != nil {
			return event.Month{}, fmt.Errorf("invalid year in %q", label)
		}
		return event.Month{Year: year, Month: time.Month(month)}, nil
	}

	if len(s) < 4 {
		return event.Month{}, fmt.Errorf("unrecognized month label %q", label)
	}
	month, ok := monthAbbrev[strings.ToLower(s[:3])]
	if !ok {
		return event.Month{}, fmt.Errorf("unrecognized month label %q", label)
	}
	year, err := strconv.Atoi(s[3:])
	if err != nil {
		return event.Month{}, fmt.Errorf("invalid year in %q", label)
	}
	return event.Month{Year: year, Month: month}, nil
}

// LookaheadDays is how close the next month must be for its calendar to be kept.
const LookaheadDays = 6

// FilterCurrent keeps the links for the month of now and, when it starts within
// LookaheadDays, the following month.
func FilterCurrent(links []Link, now time.Time) []Link {
	current := event.DateOf(now).MonthKey()
	last := event.DateOf(now).AddDays(LookaheadDays).MonthKey()

	kept := make([]Link, 0)
	for _, l := range links {
		if l.Month.Before(current) || last.Before(l.Month) {
			continue
		}
		kept = append(kept, l)
	}
	return kept
}
