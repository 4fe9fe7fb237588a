// Package parser turns the free-text dump of a scanned stadium calendar into entries.
//
// The text is a header banner followed by loosely delimited entries, each ending with
// the expected attendance in parentheses, e.g. "5 7:05PM PHILLIES vs Mets (45,000)".
// Segment splits the text into entry strings and Parser extracts the date, time,
// event text and attendance of each one. Parsing is two-staged: a strict pattern is
// tried first and a lenient whitespace split is used when it does not match, so a
// result is always produced and callers can tell confident results from degraded ones.
package parser
