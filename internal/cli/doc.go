// Package cli implements the command-line interface for stadium-alerts.
//
// The cli package provides the Cobra-based CLI: the daily alert and weekly summary runs,
// calendar link checks, iCalendar export, the scheduled serve loop, parsing of free-text
// calendars and config file generation. App wires the config, storage, scraper, alert
// pipeline and notifier packages together; the commands are thin wrappers around it.
package cli
