package main

import (
	"fmt"
	"os"
	"time"

	"github.com/pfrederiksen/stadium-alerts/internal/calendar"
	"github.com/pfrederiksen/stadium-alerts/internal/disruption"
	"github.com/pfrederiksen/stadium-alerts/internal/event"
)

func main() {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading timezone: %v\n", err)
		os.Exit(1)
	}

	// A sample Saturday: a day game at the Bank and an evening concert at the Linc
	today := event.DateOf(time.Now().In(loc))
	saturday := today.AddDays((int(time.Saturday) - int(today.Weekday()) + 7) % 7)
	buckets := event.GroupByDate([]*event.CalendarEvent{
		event.NewCalendarEvent(saturday, "1:05pm", "1:05pm", &event.Clock{Hour: 13, Minute: 5}, "Phillies vs Mets", "the Bank", 44000),
		event.NewCalendarEvent(saturday, "7:30pm", "7:30pm", &event.Clock{Hour: 19, Minute: 30}, "Stadium Concert", "the Linc", 60000),
		event.NewCalendarEvent(saturday.AddDays(1), "TBD", "tbd", nil, "Fan Fest", "Xfinity Live", 5000),
	})
	cls := disruption.New(disruption.DefaultThresholds()).Classify(buckets)

	// Generate .ics file
	icsContent := calendar.GenerateICS(buckets, cls, loc, time.Now(), nil)

	// Write to file (owner read/write only for security)
	filename := "test-stadium-events.ics"
	if err := os.WriteFile(filename, []byte(icsContent), 0600); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Generated calendar file: %s\n\n", filename)
	fmt.Println("Test it by:")
	fmt.Println("1. Open the .ics file with your calendar app (double-click)")
	fmt.Println("2. Or import it into Google Calendar, Apple Calendar, or Outlook")
	fmt.Println("\nFile contents preview:")
	fmt.Println("---")
	fmt.Println(icsContent)
}
