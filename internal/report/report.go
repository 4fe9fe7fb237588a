package report

import (
	"fmt"
	"time"

	"github.com/pfrederiksen/stadium-alerts/internal/disruption"
	"github.com/pfrederiksen/stadium-alerts/internal/event"
)

// Mode selects which events a report lists.
type Mode int

const (
	// ModeAlert lists only events that are disruptive on their own.
	ModeAlert Mode = iota
	// ModeSummary lists every event of every day that has events.
	ModeSummary
)

func (m Mode) String() string {
	switch m {
	case ModeAlert:
		return "alert"
	case ModeSummary:
		return "summary"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// MarshalText encodes the mode by name.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

const (
	AlertHeader = "## Reminder! There are potentially disruptive events today."

	NoDisruptionsBaseball = "## There are no disruptive events at the stadiums this week. Go Phils!"
	NoDisruptionsFootball = "## There are no disruptive events at the stadiums this week. Go Birds!"

	summaryHeaderFormat = "## Welcome to your weekly Navy Yard traffic disruptions summary for %s-%s"
	missingDataFormat   = "Warning: events for dates %s-%s have not yet been uploaded."
)

var tagLabels = map[disruption.Tag]string{
	disruption.Early:         "*☀️ Early event warning ☀️*",
	disruption.Large:         "*🚨 Large event 🚨*",
	disruption.CombinedLarge: "*📣📣 Large combined events 📣📣*",
}

// Report is the rendered output of one run.
type Report struct {
	Range      Range    `json:"range"`
	Mode       Mode     `json:"mode"`
	Lines      []string `json:"lines"`
	Disruptive bool     `json:"disruptive"`
	Gaps       []Gap    `json:"gaps,omitempty"`
}

// NoDisruptionsMessage returns the line sent when a summary finds nothing disruptive.
// Baseball months (March-August) cheer for the Phillies, the rest for the Eagles.
func NoDisruptionsMessage(month time.Month) string {
	if month >= time.March && month <= time.August {
		return NoDisruptionsBaseball
	}
	return NoDisruptionsFootball
}

// MissingDataWarning returns the warning line for gaps, or "" when there are none.
func MissingDataWarning(gaps []Gap) string {
	if len(gaps) == 0 {
		return ""
	}
	from, to := gaps[0].From, gaps[0].To
	for _, g := range gaps[1:] {
		if g.From.Before(from) {
			from = g.From
		}
		if g.To.After(to) {
			to = g.To
		}
	}
	return fmt.Sprintf(missingDataFormat, from.Short(), to.Short())
}

// FormatEventLine renders an event on its own line: "* **Mon, 6/2 at 7:05pm:** name at venue".
func FormatEventLine(evt *event.CalendarEvent, tags disruption.Tags) string {
	line := fmt.Sprintf("* **%s, %s at %s:** %s", weekday(evt.Date), evt.Date.Short(), evt.TimeDisplay, subject(evt))
	return line + tagSuffix(tags)
}

// FormatNestedEventLine renders an event below a day header: "   * **at 6:00pm:** name at venue".
func FormatNestedEventLine(evt *event.CalendarEvent, tags disruption.Tags) string {
	line := fmt.Sprintf("   * **at %s:** %s", evt.TimeDisplay, subject(evt))
	return line + tagSuffix(tags)
}

// FormatDayHeader renders the header of a day with several events.
func FormatDayHeader(date event.Date, count int, tags disruption.Tags) string {
	line := fmt.Sprintf("* **%s, %s**, there are %d events:", weekday(date), date.Short(), count)
	return line + tagSuffix(tags)
}

func subject(evt *event.CalendarEvent) string {
	if evt.Venue == "" {
		return evt.Name
	}
	return evt.Name + " at " + evt.Venue
}

func weekday(d event.Date) string {
	return d.Weekday().String()[:3]
}

func tagSuffix(tags disruption.Tags) string {
	suffix := ""
	for _, t := range tags.List() {
		suffix += "\t" + tagLabels[t]
	}
	return suffix
}

// Renderer renders classified buckets.
type Renderer struct {
	noDisruptions func(time.Month) string
}

// NewRenderer creates a Renderer using NoDisruptionsMessage.
func NewRenderer() *Renderer {
	return &Renderer{noDisruptions: NoDisruptionsMessage}
}

// Render renders the events of b that fall within rng.
func (r *Renderer) Render(rng Range, mode Mode, b *event.Buckets, cls *disruption.Classification, gaps []Gap) *Report {
	dates := make([]event.Date, 0)
	for _, d := range b.Dates() {
		if rng.Contains(d) {
			dates = append(dates, d)
		}
	}

	rep := &Report{
		Range: rng,
		Mode:  mode,
		Gaps:  gaps,
	}
	if rep.Gaps == nil {
		rep.Gaps = make([]Gap, 0)
	}

	switch mode {
	case ModeSummary:
		r.renderSummary(rep, dates, b, cls)
	default:
		r.renderAlert(rep, dates, b, cls)
	}

	return rep
}

func (r *Renderer) renderAlert(rep *Report, dates []event.Date, b *event.Buckets, cls *disruption.Classification) {
	lines := make([]string, 0)
	for _, d := range dates {
		for i, evt := range b.Events(d) {
			tags := cls.EventTags(event.Key{Date: d, Index: i})
			if tags.Empty() {
				continue
			}
			lines = append(lines, FormatEventLine(evt, tags))
		}
	}

	if len(lines) == 0 {
		rep.Lines = lines
		return
	}

	rep.Disruptive = true
	rep.Lines = append([]string{AlertHeader, ""}, lines...)
}

func (r *Renderer) renderSummary(rep *Report, dates []event.Date, b *event.Buckets, cls *disruption.Classification) {
	lines := []string{
		fmt.Sprintf(summaryHeaderFormat, rep.Range.Start.Short(), rep.Range.End.Short()),
		"",
	}

	for _, d := range dates {
		events := b.Events(d)
		if len(events) == 1 {
			lines = append(lines, FormatEventLine(events[0], cls.EventTags(event.Key{Date: d})))
			continue
		}

		lines = append(lines, FormatDayHeader(d, len(events), cls.DayTags(d)))
		for i, evt := range events {
			lines = append(lines, FormatNestedEventLine(evt, cls.EventTags(event.Key{Date: d, Index: i})))
		}
	}
	lines = append(lines, "", "")

	rep.Disruptive = cls.AnyDisruptive(dates)
	if !rep.Disruptive {
		lines = []string{r.noDisruptions(rep.Range.Start.Month)}
	}

	if warning := MissingDataWarning(rep.Gaps); warning != "" {
		lines = append(lines, warning)
	}
	rep.Lines = lines
}
