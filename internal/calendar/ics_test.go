package calendar

import (
	"strings"
	"testing"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/pfrederiksen/stadium-alerts/internal/disruption"
	"github.com/pfrederiksen/stadium-alerts/internal/event"
)

var june4 = event.Date{Year: 2025, Month: time.June, Day: 4}

func classify(events ...*event.CalendarEvent) (*event.Buckets, *disruption.Classification) {
	b := event.GroupByDate(events)
	return b, disruption.New(disruption.DefaultThresholds()).Classify(b)
}

func TestGenerateICS(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}

	b, cls := classify(
		event.NewCalendarEvent(june4, "11am", "11am", &event.Clock{Hour: 11}, "Youth Clinic", "the Linc", 20000),
		event.NewCalendarEvent(june4, "7:05pm", "7:05pm", &event.Clock{Hour: 19, Minute: 5}, "Phillies vs Mets", "the Bank", 30000),
	)
	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

	ics := GenerateICS(b, cls, loc, now, nil)

	requiredFields := []string{
		"BEGIN:VCALENDAR",
		"PRODID:" + ProductID,
		"METHOD:PUBLISH",
		"BEGIN:VEVENT",
		"DTSTART:20250604T150000Z",
		"DTEND:20250604T180000Z",
		"SUMMARY:[DISRUPTIVE] Youth Clinic",
		"SUMMARY:Phillies vs Mets",
		"LOCATION:the Bank",
		"END:VCALENDAR",
	}
	for _, field := range requiredFields {
		if !strings.Contains(ics, field) {
			t.Errorf("ICS missing field %q:\n%s", field, ics)
		}
	}
	if !strings.Contains(ics, "\r\n") {
		t.Error("ICS should use \\r\\n line endings")
	}

	cal, err := ical.ParseCalendar(strings.NewReader(ics))
	if err != nil {
		t.Fatalf("ParseCalendar() error = %v", err)
	}
	events := cal.Events()
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	uid := events[0].GetProperty(ical.ComponentPropertyUniqueId)
	if uid == nil || !strings.HasSuffix(uid.Value, "@stadium-alerts") {
		t.Errorf("UID = %v", uid)
	}
	if events[0].GetProperty(ical.ComponentPropertyUniqueId).Value == events[1].GetProperty(ical.ComponentPropertyUniqueId).Value {
		t.Error("events share a UID")
	}
}

func TestGenerateICS_AllDay(t *testing.T) {
	b, cls := classify(event.NewCalendarEvent(june4, "TBD", "tbd", nil, "Fan Fest", "", 60000))

	ics := GenerateICS(b, cls, nil, time.Now(), nil)

	for _, field := range []string{"DTSTART;VALUE=DATE:20250604", "DTEND;VALUE=DATE:20250605", "SUMMARY:[DISRUPTIVE] Fan Fest"} {
		if !strings.Contains(ics, field) {
			t.Errorf("ICS missing field %q:\n%s", field, ics)
		}
	}
	if strings.Contains(ics, "LOCATION:") {
		t.Error("event without venue should have no LOCATION")
	}
}

func TestGenerateICS_CombinedDayMarksEveryEvent(t *testing.T) {
	b, cls := classify(
		event.NewCalendarEvent(june4, "6pm", "6pm", &event.Clock{Hour: 18}, "Concert", "the Wells Fargo Center", 30000),
		event.NewCalendarEvent(june4, "7:30pm", "7:30pm", &event.Clock{Hour: 19, Minute: 30}, "Phillies vs Mets", "the Bank", 25000),
	)

	ics := GenerateICS(b, cls, time.UTC, time.Now(), nil)
	if got := strings.Count(ics, "SUMMARY:[DISRUPTIVE]"); got != 2 {
		t.Errorf("got %d disruptive summaries, want 2", got)
	}
}

func TestDescription(t *testing.T) {
	evt := event.NewCalendarEvent(june4, "1pm", "1pm", &event.Clock{Hour: 13}, "Eagles vs Giants", "the Linc", 69000)
	tags := disruption.Tags(0).With(disruption.Early).With(disruption.Large)

	got := description(evt, tags)
	want := "Expected attendance: 69000\nListed time: 1pm\nTraffic warning: Early event / Large event"
	if got != want {
		t.Errorf("description() = %q, want %q", got, want)
	}
}

type venueMatcher string

func (v venueMatcher) Matches(evt *event.CalendarEvent, tags disruption.Tags) bool {
	return evt.Venue == string(v)
}

func TestGenerateICS_Matcher(t *testing.T) {
	b, cls := classify(
		event.NewCalendarEvent(june4, "11am", "11am", &event.Clock{Hour: 11}, "Youth Clinic", "the Linc", 20000),
		event.NewCalendarEvent(june4, "7:05pm", "7:05pm", &event.Clock{Hour: 19, Minute: 5}, "Phillies vs Mets", "the Bank", 30000),
	)

	ics := GenerateICS(b, cls, time.UTC, time.Now(), venueMatcher("the Bank"))
	if got := strings.Count(ics, "BEGIN:VEVENT"); got != 1 {
		t.Fatalf("got %d events, want 1", got)
	}
	if !strings.Contains(ics, "SUMMARY:Phillies vs Mets") {
		t.Errorf("wrong event exported:\n%s", ics)
	}
}
