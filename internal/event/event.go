package event

import (
	"crypto/sha1"
	"fmt"
)

// Row is one materialized row of a monthly source table.
// All columns are kept as strings; conversion happens when the event is built.
type Row struct {
	Date       string `json:"date"`
	Location   string `json:"location"`
	EventName  string `json:"event_name"`
	Time       string `json:"time"`
	Attendance string `json:"attendance"`
}

// CalendarEvent represents a single stadium event.
// It must not be modified after NewCalendarEvent returns it.
type CalendarEvent struct {
	Date        Date   `json:"date"`
	TimeRaw     string `json:"time_raw"`     // token as found in the source
	TimeDisplay string `json:"time_display"` // lower-cased, spaces removed
	Clock       Clock  `json:"clock"`
	HasClock    bool   `json:"has_clock"` // false when the time token was unparseable
	Name        string `json:"name"`
	Venue       string `json:"venue"`
	Attendance  int    `json:"attendance"`
}

// NewCalendarEvent creates a new CalendarEvent. A nil clock marks an absent time of day.
func NewCalendarEvent(date Date, timeRaw, timeDisplay string, clock *Clock, name, venue string, attendance int) *CalendarEvent {
	evt := &CalendarEvent{
		Date:        date,
		TimeRaw:     timeRaw,
		TimeDisplay: timeDisplay,
		Name:        name,
		Venue:       venue,
		Attendance:  attendance,
	}
	if clock != nil {
		evt.Clock = *clock
		evt.HasClock = true
	}
	return evt
}

// GenerateID creates a deterministic ID for an event based on its identifying fields
func GenerateID(evt *CalendarEvent) string {
	h := sha1.New()
	h.Write([]byte(evt.Date.String() + "|" + evt.TimeDisplay + "|" + evt.Name + "|" + evt.Venue))
	return fmt.Sprintf("%x", h.Sum(nil))
}

// Key identifies an event within one run: its date and its insertion index on that date.
type Key struct {
	Date  Date
	Index int
}

func (k Key) String() string {
	return fmt.Sprintf("%s#%d", k.Date, k.Index)
}
