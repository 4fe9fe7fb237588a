package alert

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/pfrederiksen/stadium-alerts/internal/event"
	"github.com/pfrederiksen/stadium-alerts/internal/logger"
	"github.com/pfrederiksen/stadium-alerts/internal/normalize"
	"github.com/pfrederiksen/stadium-alerts/internal/parser"
)

var (
	// ErrBadDate marks a row whose day-of-month is missing, sentinel or outside its month.
	ErrBadDate = errors.New("unparseable date")
	// ErrBadAttendance marks a row without a usable attendance figure.
	ErrBadAttendance = errors.New("missing or unparseable attendance")
)

// MonthData is the source material of one month: materialized rows, or a free-text
// dump of the calendar when only the scanned PDF text is available.
type MonthData struct {
	Month  event.Month
	Rows   []event.Row
	Text   string
	Source string
}

// Degraded reports whether the month comes from free text.
func (m MonthData) Degraded() bool {
	return m.Rows == nil && m.Text != ""
}

// Builder converts source rows into calendar events.
type Builder struct {
	normalizer *normalize.Normalizer
	parser     *parser.Parser
	metrics    *logger.Metrics
}

// NewBuilder creates a Builder. A nil metrics uses the process-wide metrics.
func NewBuilder(n *normalize.Normalizer, metrics *logger.Metrics) *Builder {
	if metrics == nil {
		metrics = logger.DefaultMetrics()
	}
	return &Builder{
		normalizer: n,
		parser:     parser.New(),
		metrics:    metrics,
	}
}

// Rows returns the rows of m. Free-text months are segmented and parsed; a leading
// venue code in the event text becomes the row's location.
func (b *Builder) Rows(m MonthData) []event.Row {
	if !m.Degraded() {
		return m.Rows
	}

	results := b.parser.ParseText(m.Text)
	rows := make([]event.Row, 0, len(results))
	for _, res := range results {
		if res.Kind == parser.Degraded {
			b.metrics.IncrCounter("entries.degraded")
			logger.Debug("entry did not match the calendar grammar", logger.Fields{
				"month": m.Month.String(),
				"entry": res.Event,
			})
		} else {
			b.metrics.IncrCounter("entries.parsed")
		}

		code, name := b.normalizer.SplitVenue(res.Event)
		rows = append(rows, event.Row{
			Date:       res.Date,
			Location:   code,
			EventName:  name,
			Time:       res.Time,
			Attendance: res.Attendance,
		})
	}
	return rows
}

// Event converts one row of month into an event. Rows with an unusable date or
// attendance are rejected; an unparseable time is kept as an event without a clock.
func (b *Builder) Event(month event.Month, row event.Row) (*event.CalendarEvent, error) {
	day, err := strconv.Atoi(strings.TrimSpace(row.Date))
	if err != nil || strings.TrimSpace(row.Date) == parser.SentinelDate {
		return nil, fmt.Errorf("%w: %q", ErrBadDate, row.Date)
	}
	date, ok := event.NewDate(month.Year, month.Month, day)
	if !ok {
		return nil, fmt.Errorf("%w: day %d of %s", ErrBadDate, day, month)
	}

	attendance, err := parseAttendance(row.Attendance)
	if err != nil {
		return nil, err
	}

	display, clock, ok := b.normalizer.Time(row.Time)
	var clockPtr *event.Clock
	if ok {
		clockPtr = &clock
	}

	return event.NewCalendarEvent(
		date,
		row.Time,
		display,
		clockPtr,
		b.normalizer.Name(row.EventName),
		b.normalizer.Venue(strings.TrimSpace(row.Location)),
		attendance,
	), nil
}

func parseAttendance(s string) (int, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, ErrBadAttendance
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %q", ErrBadAttendance, s)
	}
	return n, nil
}

// Events converts every usable row of m. Rejected rows are counted and logged.
func (b *Builder) Events(m MonthData) []*event.CalendarEvent {
	rows := b.Rows(m)
	events := make([]*event.CalendarEvent, 0, len(rows))
	for i, row := range rows {
		evt, err := b.Event(m.Month, row)
		if err != nil {
			b.metrics.IncrCounter("entries.dropped")
			logger.Debug("dropping calendar row", logger.Fields{
				"month":  m.Month.String(),
				"row":    i,
				"source": m.Source,
				"reason": err.Error(),
			})
			continue
		}
		if !evt.HasClock {
			b.metrics.IncrCounter("entries.untimed")
		}
		events = append(events, evt)
	}
	return events
}
