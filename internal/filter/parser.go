package filter

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pfrederiksen/stadium-alerts/internal/event"
)

const monthNames = `(jan|january|feb|february|mar|march|apr|april|may|jun|june|jul|july|aug|august|sep|sept|september|oct|october|nov|november|dec|december)`

var (
	// "Mar 1-15" or "March 1-15"
	sameMonthRange = regexp.MustCompile(`(?i)^` + monthNames + `\s+(\d{1,2})\s*-\s*(\d{1,2})$`)
	// "Mar 1 - Apr 15" or "March 1 - April 15"
	crossMonthRange = regexp.MustCompile(`(?i)^` + monthNames + `\s+(\d{1,2})\s*-\s*` + monthNames + `\s+(\d{1,2})$`)
	// "March" (entire month)
	wholeMonth = regexp.MustCompile(`(?i)^` + monthNames + `$`)
)

// ParseDateRange parses a date range string into its first and last day.
//
// Supported formats:
//   - "Mar 1-15" or "March 1-15" - Same month, different days
//   - "March 1 - April 15" - Different months
//   - "March" - Entire month
//
// The year is inferred from today:
//   - If the month is before today's month, assumes next year
//   - Otherwise, uses today's year
//   - For cross-month ranges, if end month < start month, end is in next year
func ParseDateRange(input string, today event.Date) (from, to event.Date, err error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return from, to, fmt.Errorf("date range cannot be empty")
	}

	if m := sameMonthRange.FindStringSubmatch(input); m != nil {
		month := parseMonth(m[1])
		year := yearForMonth(month, today)
		if from, err = day(year, month, m[2]); err != nil {
			return from, to, err
		}
		if to, err = day(year, month, m[3]); err != nil {
			return from, to, err
		}
		return ordered(from, to)
	}

	if m := crossMonthRange.FindStringSubmatch(input); m != nil {
		month1, month2 := parseMonth(m[1]), parseMonth(m[3])
		year1 := yearForMonth(month1, today)
		year2 := year1
		if month2 < month1 {
			year2++
		}
		if from, err = day(year1, month1, m[2]); err != nil {
			return from, to, err
		}
		if to, err = day(year2, month2, m[4]); err != nil {
			return from, to, err
		}
		return ordered(from, to)
	}

	if m := wholeMonth.FindStringSubmatch(input); m != nil {
		month := parseMonth(m[1])
		first := event.Month{Year: yearForMonth(month, today), Month: month}.First()
		return first, first.AddDays(first.MonthKey().Days() - 1), nil
	}

	return from, to, fmt.Errorf("invalid date range format. Use 'Mar 1-15', 'March 1 - April 15', or 'March'")
}

func day(year int, month time.Month, text string) (event.Date, error) {
	n, err := strconv.Atoi(text)
	if err != nil {
		return event.Date{}, fmt.Errorf("invalid day: %s", text)
	}
	d, ok := event.NewDate(year, month, n)
	if !ok {
		return event.Date{}, fmt.Errorf("invalid day: %s %s", month, text)
	}
	return d, nil
}

func ordered(from, to event.Date) (event.Date, event.Date, error) {
	if from.After(to) {
		return from, to, fmt.Errorf("start date must be before end date")
	}
	return from, to, nil
}

// parseMonth converts a month name to time.Month
func parseMonth(name string) time.Month {
	name = strings.ToLower(strings.TrimSpace(name))
	if len(name) > 3 {
		name = name[:3]
	}

	months := map[string]time.Month{
		"jan": time.January,
		"feb": time.February,
		"mar": time.March,
		"apr": time.April,
		"may": time.May,
		"jun": time.June,
		"jul": time.July,
		"aug": time.August,
		"sep": time.September,
		"oct": time.October,
		"nov": time.November,
		"dec": time.December,
	}

	return months[name]
}

// yearForMonth returns the year of the next occurrence of month, counting today's
// month as current.
func yearForMonth(month time.Month, today event.Date) int {
	if month < today.Month {
		return today.Year + 1
	}
	return today.Year
}
