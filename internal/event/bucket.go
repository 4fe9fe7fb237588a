package event

import "sort"

// Buckets groups events by calendar date. Events of one date keep insertion order;
// nothing is sorted by time here.
type Buckets struct {
	byDate map[Date][]*CalendarEvent
}

// NewBuckets creates empty buckets.
func NewBuckets() *Buckets {
	return &Buckets{byDate: make(map[Date][]*CalendarEvent)}
}

// GroupByDate builds buckets from events in the given order.
func GroupByDate(events []*CalendarEvent) *Buckets {
	b := NewBuckets()
	for _, evt := range events {
		b.Add(evt)
	}
	return b
}

// Add appends evt to its date's bucket and returns its key.
func (b *Buckets) Add(evt *CalendarEvent) Key {
	idx := len(b.byDate[evt.Date])
	b.byDate[evt.Date] = append(b.byDate[evt.Date], evt)
	return Key{Date: evt.Date, Index: idx}
}

// Events returns the events of date in insertion order.
func (b *Buckets) Events(date Date) []*CalendarEvent {
	return b.byDate[date]
}

// Dates returns every date with at least one event, ascending.
func (b *Buckets) Dates() []Date {
	dates := make([]Date, 0, len(b.byDate))
	for d := range b.byDate {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool {
		return dates[i].Before(dates[j])
	})
	return dates
}

// Len returns the total number of events.
func (b *Buckets) Len() int {
	n := 0
	for _, evts := range b.byDate {
		n += len(evts)
	}
	return n
}
