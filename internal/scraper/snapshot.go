package scraper

import "time"

// Snapshot records the calendar links already announced, keyed by URL. A republished
// calendar gets a new file name, so a new URL marks a new version.
type Snapshot struct {
	Links     map[string]Link `json:"links"`
	UpdatedAt string          `json:"updated_at"`
}

// NewSnapshot creates an empty snapshot
func NewSnapshot() *Snapshot {
	return &Snapshot{Links: make(map[string]Link)}
}

// CreateSnapshot creates a snapshot from links.
func CreateSnapshot(links []Link, now time.Time) *Snapshot {
	s := NewSnapshot()
	s.Merge(links)
	s.UpdatedAt = now.UTC().Format(time.RFC3339)
	return s
}

// Merge adds links to the snapshot.
func (s *Snapshot) Merge(links []Link) {
	if s.Links == nil {
		s.Links = make(map[string]Link)
	}
	for _, l := range links {
		s.Links[l.URL] = l
	}
}

// Diff returns the links of current that previous has not seen, ordered by month.
func Diff(previous *Snapshot, current []Link) []Link {
	if previous == nil {
		previous = NewSnapshot()
	}

	fresh := make([]Link, 0)
	for _, l := range current {
		if _, seen := previous.Links[l.URL]; !seen {
			fresh = append(fresh, l)
		}
	}
	Sort(fresh)
	return fresh
}
