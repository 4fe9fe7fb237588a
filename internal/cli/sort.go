package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pfrederiksen/stadium-alerts/internal/parser"
)

// SortOrder represents the available sorting options for parsed entries
type SortOrder string

const (
	SortBySource     SortOrder = "source"
	SortByDate       SortOrder = "date"
	SortByAttendance SortOrder = "attendance"
)

func parseSortOrder(s string) (SortOrder, error) {
	order := SortOrder(strings.ToLower(strings.TrimSpace(s)))
	switch order {
	case SortBySource, SortByDate, SortByAttendance:
		return order, nil
	}
	return "", fmt.Errorf("invalid sort order: %s (must be 'source', 'date' or 'attendance')", s)
}

// sortResults sorts parsed entries in place. Source order keeps the calendar's own
// order; the other orders are stable so ties keep it too.
func sortResults(results []parser.Result, order SortOrder) {
	switch order {
	case SortByDate:
		sort.SliceStable(results, func(i, j int) bool {
			return compareByDate(results[i], results[j])
		})
	case SortByAttendance:
		sort.SliceStable(results, func(i, j int) bool {
			ai, aj := number(results[i].Attendance), number(results[j].Attendance)
			if ai != aj {
				return ai > aj
			}
			return compareByDate(results[i], results[j])
		})
	}
}

// compareByDate compares two entries by day of month.
// Entries without a usable day go last.
func compareByDate(i, j parser.Result) bool {
	di, dj := number(i.Date), number(j.Date)

	if di > 0 && dj > 0 {
		return di < dj
	}
	return di > 0
}

// number returns the integer value of s, or -1 when s is not a number.
func number(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return -1
	}
	return n
}
