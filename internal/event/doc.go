// Package event provides the typed records of the stadium event calendar.
//
// The event package holds the civil-date and month keys used to group events, the
// parsed time-of-day value, the raw source row contract and the immutable
// CalendarEvent record. Events of one run are grouped into day buckets that keep
// source order; nothing in this package is shared between runs.
package event
