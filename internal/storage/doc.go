// Package storage reads the monthly calendar tables and keeps the local state of
// stadium-alerts.
//
// Calendar months live in a source directory (normally a git mirror of the published
// calendar repository) as YYYY-MM.csv tables, or as YYYY-MM.txt text dumps of the
// scanned PDF when no table exists yet. The data directory (default
// ~/.local/share/stadium-alerts/) holds links.json, the calendar links already
// announced.
package storage
