package disruption

import (
	"sort"
	"strings"
	"time"

	"github.com/pfrederiksen/stadium-alerts/internal/event"
)

const (
	// DefaultLargeAttendance is the attendance above which an event, or a day's
	// clustered events, are considered large.
	DefaultLargeAttendance = 50000
	// DefaultEarlyCutoffHour is the hour (24h) before which an event starts early.
	DefaultEarlyCutoffHour = 18
	// DefaultClusterWindow is the largest gap between two start times that still
	// counts as clustered.
	DefaultClusterWindow = 2 * time.Hour
)

// Thresholds configures the classification rules.
type Thresholds struct {
	LargeAttendance int           `mapstructure:"large_attendance" yaml:"large_attendance"`
	EarlyCutoffHour int           `mapstructure:"early_cutoff_hour" yaml:"early_cutoff_hour"`
	ClusterWindow   time.Duration `mapstructure:"cluster_window" yaml:"cluster_window"`
}

// DefaultThresholds returns the thresholds used by the alerts.
func DefaultThresholds() Thresholds {
	return Thresholds{
		LargeAttendance: DefaultLargeAttendance,
		EarlyCutoffHour: DefaultEarlyCutoffHour,
		ClusterWindow:   DefaultClusterWindow,
	}
}

// MarshalYAML writes the cluster window in duration notation ("2h0m0s").
func (t Thresholds) MarshalYAML() (interface{}, error) {
	return struct {
		LargeAttendance int    `yaml:"large_attendance"`
		EarlyCutoffHour int    `yaml:"early_cutoff_hour"`
		ClusterWindow   string `yaml:"cluster_window"`
	}{t.LargeAttendance, t.EarlyCutoffHour, t.ClusterWindow.String()}, nil
}

// Tag is a disruption annotation.
type Tag string

const (
	Early         Tag = "EARLY"
	Large         Tag = "LARGE"
	CombinedLarge Tag = "COMBINED_LARGE"
)

var tagOrder = []Tag{Early, Large, CombinedLarge}

// Tags is a set of annotations.
type Tags uint8

func bit(t Tag) Tags {
	switch t {
	case Early:
		return 1
	case Large:
		return 2
	case CombinedLarge:
		return 4
	}
	return 0
}

// With returns the set with t added.
func (s Tags) With(t Tag) Tags {
	return s | bit(t)
}

// Has reports whether t is in the set.
func (s Tags) Has(t Tag) bool {
	b := bit(t)
	return b != 0 && s&b == b
}

// Empty reports whether the set has no tags.
func (s Tags) Empty() bool {
	return s == 0
}

// List returns the tags in a fixed order: EARLY, LARGE, COMBINED_LARGE.
func (s Tags) List() []Tag {
	tags := make([]Tag, 0, len(tagOrder))
	for _, t := range tagOrder {
		if s.Has(t) {
			tags = append(tags, t)
		}
	}
	return tags
}

func (s Tags) String() string {
	parts := make([]string, 0, len(tagOrder))
	for _, t := range s.List() {
		parts = append(parts, string(t))
	}
	return strings.Join(parts, ",")
}

// Classification holds the tags computed for one set of buckets.
type Classification struct {
	events  map[event.Key]Tags
	days    map[event.Date]Tags
	flagged map[event.Date]bool
}

// EventTags returns the tags of one event.
func (c *Classification) EventTags(key event.Key) Tags {
	return c.events[key]
}

// DayTags returns the day-level tags of date (COMBINED_LARGE only).
func (c *Classification) DayTags(date event.Date) Tags {
	return c.days[date]
}

// EventDisruptive reports whether the event itself carries any tag.
func (c *Classification) EventDisruptive(key event.Key) bool {
	return !c.events[key].Empty()
}

// DayDisruptive reports whether the day or any of its events carries a tag.
func (c *Classification) DayDisruptive(date event.Date) bool {
	return c.flagged[date]
}

// AnyDisruptive reports whether any of dates is disruptive.
func (c *Classification) AnyDisruptive(dates []event.Date) bool {
	for _, d := range dates {
		if c.flagged[d] {
			return true
		}
	}
	return false
}

// Classifier applies Thresholds to day buckets.
type Classifier struct {
	thresholds Thresholds
}

// New creates a Classifier.
func New(thresholds Thresholds) *Classifier {
	return &Classifier{thresholds: thresholds}
}

// Thresholds returns the thresholds of c.
func (c *Classifier) Thresholds() Thresholds {
	return c.thresholds
}

// EventTags evaluates the per-event rules.
func (c *Classifier) EventTags(evt *event.CalendarEvent) Tags {
	var tags Tags
	if evt.HasClock && evt.Clock.Hour < c.thresholds.EarlyCutoffHour {
		tags = tags.With(Early)
	}
	if evt.Attendance > c.thresholds.LargeAttendance {
		tags = tags.With(Large)
	}
	return tags
}

// DayTags evaluates the per-day rule on the events of one day.
func (c *Classifier) DayTags(events []*event.CalendarEvent) Tags {
	var tags Tags
	if len(events) < 2 {
		return tags
	}

	total := 0
	for _, evt := range events {
		total += evt.Attendance
	}
	if total <= c.thresholds.LargeAttendance {
		return tags
	}

	if c.clustered(events) {
		tags = tags.With(CombinedLarge)
	}
	return tags
}

// clustered reports whether two timed events start within the cluster window.
// Works on a sorted copy of the start times; the day's order is left untouched.
func (c *Classifier) clustered(events []*event.CalendarEvent) bool {
	starts := make([]int, 0, len(events))
	for _, evt := range events {
		if evt.HasClock {
			starts = append(starts, evt.Clock.Minutes())
		}
	}
	if len(starts) < 2 {
		return false
	}
	sort.Ints(starts)

	window := int(c.thresholds.ClusterWindow / time.Minute)
	for i := 0; i+1 < len(starts); i++ {
		if starts[i+1]-starts[i] <= window {
			return true
		}
	}
	return false
}

// Classify tags every event and every day of b.
func (c *Classifier) Classify(b *event.Buckets) *Classification {
	result := &Classification{
		events:  make(map[event.Key]Tags),
		days:    make(map[event.Date]Tags),
		flagged: make(map[event.Date]bool),
	}

	for _, date := range b.Dates() {
		events := b.Events(date)
		for i, evt := range events {
			if tags := c.EventTags(evt); !tags.Empty() {
				result.events[event.Key{Date: date, Index: i}] = tags
				result.flagged[date] = true
			}
		}
		if tags := c.DayTags(events); !tags.Empty() {
			result.days[date] = tags
			result.flagged[date] = true
		}
	}

	return result
}
