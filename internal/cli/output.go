package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/pfrederiksen/stadium-alerts/internal/parser"
	"github.com/pfrederiksen/stadium-alerts/internal/report"
	"github.com/pfrederiksen/stadium-alerts/internal/scraper"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

func parseFormat(s string) (OutputFormat, error) {
	format := OutputFormat(strings.ToLower(strings.TrimSpace(s)))
	if format != FormatText && format != FormatJSON {
		return "", fmt.Errorf("invalid format: %s (must be 'text' or 'json')", s)
	}
	return format, nil
}

// LinksResult is the outcome of a calendar link check.
type LinksResult struct {
	CheckedAt time.Time      `json:"checked_at"`
	NewLinks  []scraper.Link `json:"new_links"`
	Count     int            `json:"count"`
}

// writeJSON outputs v as indented JSON
func writeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// WriteReport writes a short status line for rep, or the whole report as JSON.
// The report text itself goes out through the notifier.
func WriteReport(w io.Writer, rep *report.Report, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, rep)
	case FormatText:
		status := "nothing disruptive"
		if rep.Disruptive {
			status = "disruptive events found"
		}
		_, err := fmt.Fprintf(w, "%s %s: %s (%d lines)\n", rep.Mode, rep.Range, status, len(rep.Lines))
		return err
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteLinks writes the newly found calendar links.
func WriteLinks(w io.Writer, result *LinksResult, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		if result.Count == 0 {
			fmt.Fprintln(w, "No new calendars found.")
			return nil
		}
		for _, l := range result.NewLinks {
			fmt.Fprintf(w, "NEW: %s %s\n", l.Month, l.URL)
		}
		fmt.Fprintf(w, "\nTotal: %d new\n", result.Count)
		return nil
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteParseResults writes parsed entries as a table or JSON array.
func WriteParseResults(w io.Writer, results []parser.Result, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, results)
	case FormatText:
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "DATE\tTIME\tEVENT\tATTENDANCE\tKIND")
		for _, r := range results {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.Date, r.Time, r.Event, r.Attendance, r.Kind)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(w, "\nTotal: %d entries\n", len(results))
		return nil
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
