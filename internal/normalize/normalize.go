package normalize

import (
	"strings"
	"time"

	"github.com/pfrederiksen/stadium-alerts/internal/event"
)

// DefaultNoteMarker starts an internal note appended to an event name.
const DefaultNoteMarker = ">>>"

// Venue maps a source location code to its display name.
type Venue struct {
	Code string `mapstructure:"code" yaml:"code" json:"code"`
	Name string `mapstructure:"name" yaml:"name" json:"name"`
}

// Replacement is a literal substring rewrite applied to event names.
type Replacement struct {
	From string `mapstructure:"from" yaml:"from" json:"from"`
	To   string `mapstructure:"to" yaml:"to" json:"to"`
}

// Config holds the lookup tables of a Normalizer.
type Config struct {
	Venues       []Venue       `mapstructure:"venues" yaml:"venues"`
	Replacements []Replacement `mapstructure:"replacements" yaml:"replacements"`
	NoteMarker   string        `mapstructure:"note_marker" yaml:"note_marker"`
}

// DefaultConfig returns the venue codes of the South Philadelphia sports complex and
// the team name rewrites used by the source calendar.
func DefaultConfig() Config {
	return Config{
		Venues: []Venue{
			{Code: "CBP", Name: "the Bank"},
			{Code: "LFF", Name: "the Linc"},
			{Code: "WFC", Name: "the Wells Fargo Center"},
			{Code: "XF!", Name: "Xfinity Live"},
			{Code: "XMA", Name: "Xfinity Mobile Arena (fka the Wells Fargo Center)"},
			{Code: "SL!", Name: "Stateside Live! (fka Xfinity Live!)"},
		},
		Replacements: []Replacement{
			{From: "PHILLIES", To: "Phillies"},
			{From: "FLYERS", To: "Flyers"},
			{From: "EAGLES", To: "Eagles"},
			{From: "SIXERS", To: "Sixers"},
		},
		NoteMarker: DefaultNoteMarker,
	}
}

// Normalizer canonicalizes names, venues and time tokens. It is safe for concurrent use.
type Normalizer struct {
	venues       map[string]string
	replacements []Replacement
	marker       string
}

// New creates a Normalizer from cfg. The tables are copied; later changes to cfg
// have no effect.
func New(cfg Config) *Normalizer {
	venues := make(map[string]string, len(cfg.Venues))
	for _, v := range cfg.Venues {
		venues[v.Code] = v.Name
	}

	replacements := make([]Replacement, len(cfg.Replacements))
	copy(replacements, cfg.Replacements)

	marker := cfg.NoteMarker
	if marker == "" {
		marker = DefaultNoteMarker
	}

	return &Normalizer{
		venues:       venues,
		replacements: replacements,
		marker:       marker,
	}
}

// Name applies the replacements in order, cuts the name at the note marker and trims it.
func (n *Normalizer) Name(name string) string {
	for _, r := range n.replacements {
		if r.From == "" {
			continue
		}
		name = strings.ReplaceAll(name, r.From, r.To)
	}
	if idx := strings.Index(name, n.marker); idx != -1 {
		name = name[:idx]
	}
	return strings.TrimSpace(name)
}

// Venue resolves a location code. Unknown codes are returned unchanged.
func (n *Normalizer) Venue(code string) string {
	if name, ok := n.venues[code]; ok {
		return name
	}
	return code
}

// IsVenueCode reports whether code is in the venue table.
func (n *Normalizer) IsVenueCode(code string) bool {
	_, ok := n.venues[code]
	return ok
}

// SplitVenue splits a leading venue code off free text, e.g. "LFF EAGLES vs Giants".
// code is empty when the text does not start with a known code.
func (n *Normalizer) SplitVenue(text string) (code, rest string) {
	text = strings.TrimSpace(text)
	first, remainder, _ := strings.Cut(text, " ")
	if n.IsVenueCode(first) {
		return first, strings.TrimSpace(remainder)
	}
	return "", text
}

// TimeDisplay lower-cases a time token and removes its spaces: "7:05 PM" -> "7:05pm".
func TimeDisplay(raw string) string {
	return strings.ReplaceAll(strings.ToLower(raw), " ", "")
}

// ParseClock parses a display time token in "3:04pm" or "3pm" form.
// Returns false for anything else.
func ParseClock(display string) (event.Clock, bool) {
	for _, layout := range []string{"3:04pm", "3pm"} {
		t, err := time.Parse(layout, display)
		if err == nil {
			return event.Clock{Hour: t.Hour(), Minute: t.Minute()}, true
		}
	}
	return event.Clock{}, false
}

// Time normalizes a raw time token and parses it.
func (n *Normalizer) Time(raw string) (display string, clock event.Clock, ok bool) {
	display = TimeDisplay(raw)
	clock, ok = ParseClock(display)
	return display, clock, ok
}
