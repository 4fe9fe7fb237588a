package event

import (
	"testing"
	"time"
)

func TestNewCalendarEvent(t *testing.T) {
	date := Date{2025, time.June, 2}

	timed := NewCalendarEvent(date, "7:05 PM", "7:05pm", &Clock{Hour: 19, Minute: 5}, "Phillies vs Mets", "the Bank", 45000)
	if !timed.HasClock {
		t.Error("expected clock to be present")
	}
	if timed.Clock.Hour != 19 || timed.Clock.Minute != 5 {
		t.Errorf("Clock = %v, want 19:05", timed.Clock)
	}

	untimed := NewCalendarEvent(date, "TBD", "tbd", nil, "Concert", "the Linc", 0)
	if untimed.HasClock {
		t.Error("expected clock to be absent")
	}
	if untimed.Attendance != 0 {
		t.Errorf("Attendance = %d, want 0", untimed.Attendance)
	}
}

func TestGenerateID(t *testing.T) {
	date := Date{2025, time.June, 2}
	a := NewCalendarEvent(date, "7pm", "7pm", &Clock{Hour: 19}, "Phillies vs Mets", "the Bank", 45000)
	b := NewCalendarEvent(date, "7pm", "7pm", &Clock{Hour: 19}, "Phillies vs Mets", "the Bank", 30000)
	c := NewCalendarEvent(date, "7pm", "7pm", &Clock{Hour: 19}, "Phillies vs Braves", "the Bank", 45000)

	if GenerateID(a) != GenerateID(b) {
		t.Error("attendance should not change the ID")
	}
	if GenerateID(a) == GenerateID(c) {
		t.Error("different names should produce different IDs")
	}
	if len(GenerateID(a)) != 40 {
		t.Errorf("expected SHA1 hex length 40, got %d", len(GenerateID(a)))
	}
}

func TestBuckets(t *testing.T) {
	d1 := Date{2025, time.June, 3}
	d2 := Date{2025, time.June, 1}

	late := NewCalendarEvent(d1, "10pm", "10pm", &Clock{Hour: 22}, "Late show", "the Linc", 100)
	early := NewCalendarEvent(d1, "1pm", "1pm", &Clock{Hour: 13}, "Matinee", "the Bank", 100)
	other := NewCalendarEvent(d2, "7pm", "7pm", &Clock{Hour: 19}, "Game", "the Bank", 100)

	b := GroupByDate([]*CalendarEvent{late, early, other})

	dates := b.Dates()
	if len(dates) != 2 || dates[0] != d2 || dates[1] != d1 {
		t.Fatalf("Dates() = %v, want [%v %v]", dates, d2, d1)
	}

	evts := b.Events(d1)
	if len(evts) != 2 || evts[0] != late || evts[1] != early {
		t.Error("Events() should keep insertion order, not time order")
	}
	if b.Len() != 3 {
		t.Errorf("Len() = %d, want 3", b.Len())
	}

	key := b.Add(NewCalendarEvent(d1, "", "", nil, "Extra", "", 1))
	if key.Index != 2 || key.Date != d1 {
		t.Errorf("Add() key = %v, want index 2 on %v", key, d1)
	}
	if len(b.Events(Date{2025, time.June, 2})) != 0 {
		t.Error("expected no events on an empty date")
	}
}
