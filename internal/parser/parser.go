package parser

import (
	"regexp"
	"strings"
)

// SentinelDate marks an entry whose date could not be extracted.
// Callers must drop entries carrying it.
const SentinelDate = "0"

// Entry is the best-effort split of one calendar entry into its raw fields.
type Entry struct {
	Date       string `json:"date"`
	Time       string `json:"time"`
	Event      string `json:"event"`
	Attendance string `json:"attendance"` // digits only, thousands separators removed
}

// Kind tells whether an entry was parsed confidently or through the fallback.
type Kind int

const (
	Parsed Kind = iota
	Degraded
)

func (k Kind) String() string {
	if k == Parsed {
		return "parsed"
	}
	return "degraded"
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Result is a parsed entry tagged with how it was obtained.
type Result struct {
	Entry
	Kind Kind `json:"kind"`
}

// Strategy extracts an Entry from one entry string.
// ok is false when the strategy does not apply to the input.
type Strategy interface {
	Parse(entry string) (e Entry, ok bool)
}

// Pattern for a full entry, anchored at the end of the string:
// "[leftover)] <date> <time>[ - <time>] <event> (<attendance>)"
var strictPattern = regexp.MustCompile(
	`(?i)^(?:(?P<prefix>.*\))\s*)?` +
		`(?P<date>.*?)\b` +
		`(?P<time>\d{1,2}(?::\d{2})?\s*(?:AM|PM))\b` +
		`(?:\s*(?:-|–|—)\s*(?:\d{1,2}(?::\d{2})?\s*(?:AM|PM))\b)?` +
		`\s*(?P<event>.*?)\s*` +
		`\((?P<attendance>[\d,]+)\)\s*$`)

var letters = regexp.MustCompile(`[A-Za-z]`)

// Strict matches the full entry grammar. Only the first time of a range is kept and
// every letter is stripped from the text before the time to obtain the date.
type Strict struct{}

// Parse implements Strategy.
func (Strict) Parse(entry string) (Entry, bool) {
	m := strictPattern.FindStringSubmatch(entry)
	if m == nil {
		return Entry{}, false
	}
	group := func(name string) string {
		return m[strictPattern.SubexpIndex(name)]
	}

	date := strings.TrimSpace(letters.ReplaceAllString(strings.TrimSpace(group("date")), ""))
	if date == "" {
		date = SentinelDate
	}

	return Entry{
		Date:       date,
		Time:       strings.TrimSpace(group("time")),
		Event:      strings.TrimSpace(group("event")),
		Attendance: strings.TrimSpace(strings.ReplaceAll(group("attendance"), ",", "")),
	}, true
}

// Lenient always applies: a leading all-digit token is the date, the whole entry is
// the event text, and time and attendance are left empty.
type Lenient struct{}

// Parse implements Strategy.
func (Lenient) Parse(entry string) (Entry, bool) {
	date := SentinelDate
	if parts := strings.Fields(entry); len(parts) > 0 && isDigits(parts[0]) {
		date = parts[0]
	}
	return Entry{
		Date:  date,
		Event: entry,
	}, true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Parser applies a strict strategy and falls back to a lenient one.
type Parser struct {
	strict  Strategy
	lenient Strategy
}

// New creates a Parser using the Strict and Lenient strategies.
func New() *Parser {
	return &Parser{strict: Strict{}, lenient: Lenient{}}
}

// Parse parses a single entry. It never fails: when neither strategy applies the
// result is fully degraded (sentinel date, entry as event text).
func (p *Parser) Parse(entry string) Result {
	if e, ok := p.strict.Parse(entry); ok {
		return Result{Entry: e, Kind: Parsed}
	}
	if e, ok := p.lenient.Parse(entry); ok {
		return Result{Entry: e, Kind: Degraded}
	}
	return Result{Entry: Entry{Date: SentinelDate, Event: entry}, Kind: Degraded}
}

// ParseText strips the header banner, segments the text and parses every entry.
func (p *Parser) ParseText(text string) []Result {
	segments := Segment(StripHeader(text))
	results := make([]Result, 0, len(segments))
	for _, s := range segments {
		results = append(results, p.Parse(s))
	}
	return results
}
