package parser

import "strings"

// HeaderBanner is the weekday row printed above the calendar grid.
const HeaderBanner = "SUN MON TUES WED THURS FRI SAT"

// StripHeader returns the text following the header banner.
// The whole text is returned when the banner is absent.
func StripHeader(text string) string {
	idx := strings.Index(text, HeaderBanner)
	if idx == -1 {
		return text
	}
	return text[idx+len(HeaderBanner):]
}

// Segment splits text into entries. Each entry is the shortest run of text ending in
// a closing parenthesis, with every whitespace run collapsed to a single space.
// Text after the last closing parenthesis is not an entry and is dropped.
func Segment(text string) []string {
	entries := make([]string, 0)

	for {
		end := strings.IndexByte(text, ')')
		if end == -1 {
			break
		}

		entry := strings.Join(strings.Fields(text[:end+1]), " ")
		if entry != "" {
			entries = append(entries, entry)
		}
		text = text[end+1:]
	}

	return entries
}
