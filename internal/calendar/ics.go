// Package calendar exports classified stadium events as an iCalendar feed.
package calendar

import (
	"fmt"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/pfrederiksen/stadium-alerts/internal/disruption"
	"github.com/pfrederiksen/stadium-alerts/internal/event"
)

const (
	ProductID = "-//Stadium Alerts//stadium-alerts//EN"
	Name      = "Stadium District Events"

	// EventDuration is the block reserved for an event with a start time.
	EventDuration = 3 * time.Hour

	disruptivePrefix = "[DISRUPTIVE] "
)

var tagNames = map[disruption.Tag]string{
	disruption.Early:         "Early event",
	disruption.Large:         "Large event",
	disruption.CombinedLarge: "Large combined events",
}

// Matcher selects the events to export. tags include the tags of the event's day.
type Matcher interface {
	Matches(evt *event.CalendarEvent, tags disruption.Tags) bool
}

// GenerateICS renders the events of b accepted by m as VEVENTs; a nil m accepts every
// event. Times are interpreted in loc. Events without a start time become all-day
// entries. Disruptive events carry a "[DISRUPTIVE]" summary prefix and list their
// tags in the description.
func GenerateICS(b *event.Buckets, cls *disruption.Classification, loc *time.Location, now time.Time, m Matcher) string {
	if loc == nil {
		loc = time.UTC
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(ProductID)
	cal.SetXWRCalName(Name)
	cal.SetXWRTimezone(loc.String())

	for _, date := range b.Dates() {
		dayTags := cls.DayTags(date)
		for i, evt := range b.Events(date) {
			tags := cls.EventTags(event.Key{Date: date, Index: i})
			for _, t := range dayTags.List() {
				tags = tags.With(t)
			}
			if m != nil && !m.Matches(evt, tags) {
				continue
			}
			addEvent(cal, evt, tags, loc, now)
		}
	}

	return cal.Serialize()
}

func addEvent(cal *ical.Calendar, evt *event.CalendarEvent, tags disruption.Tags, loc *time.Location, now time.Time) {
	ve := cal.AddEvent(event.GenerateID(evt) + "@stadium-alerts")
	ve.SetDtStampTime(now)
	ve.SetStatus(ical.ObjectStatusConfirmed)

	if evt.HasClock {
		start := time.Date(evt.Date.Year, evt.Date.Month, evt.Date.Day, evt.Clock.Hour, evt.Clock.Minute, 0, 0, loc)
		ve.SetStartAt(start)
		ve.SetEndAt(start.Add(EventDuration))
	} else {
		ve.SetAllDayStartAt(evt.Date.Time(loc))
		ve.SetAllDayEndAt(evt.Date.AddDays(1).Time(loc))
	}

	summary := evt.Name
	if !tags.Empty() {
		summary = disruptivePrefix + summary
	}
	ve.SetSummary(summary)

	if evt.Venue != "" {
		ve.SetLocation(evt.Venue)
	}
	ve.SetDescription(description(evt, tags))
}

func description(evt *event.CalendarEvent, tags disruption.Tags) string {
	lines := []string{fmt.Sprintf("Expected attendance: %d", evt.Attendance)}
	if evt.TimeDisplay != "" {
		lines = append(lines, "Listed time: "+evt.TimeDisplay)
	}
	if !tags.Empty() {
		names := make([]string, 0)
		for _, t := range tags.List() {
			names = append(names, tagNames[t])
		}
		lines = append(lines, "Traffic warning: "+strings.Join(names, " / "))
	}
	return strings.Join(lines, "\n")
}
