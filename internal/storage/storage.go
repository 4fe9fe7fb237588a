package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/pfrederiksen/stadium-alerts/internal/alert"
	"github.com/pfrederiksen/stadium-alerts/internal/event"
	"github.com/pfrederiksen/stadium-alerts/internal/report"
	"github.com/pfrederiksen/stadium-alerts/internal/scraper"
)

// ErrMonthNotFound is returned when neither a table nor a text dump exists for a month.
var ErrMonthNotFound = errors.New("month not found")

// Column names of the calendar tables.
const (
	ColumnDate       = "Date"
	ColumnLocation   = "Location"
	ColumnEventName  = "Event Name"
	ColumnTime       = "Time"
	ColumnAttendance = "Attendance"
)

var monthFilePattern = regexp.MustCompile(`^(\d{4}-\d{2})\.(csv|txt)$`)

// Storage handles the calendar source directory and the local data directory
type Storage struct {
	sourceDir string
	dataDir   string
}

// New creates a new Storage instance. Both paths may start with "~". The data
// directory is created when missing; the source directory is left to the mirror.
func New(sourceDir, dataDir string) (*Storage, error) {
	src, err := homedir.Expand(sourceDir)
	if err != nil {
		return nil, fmt.Errorf("expanding source directory: %w", err)
	}
	data, err := homedir.Expand(dataDir)
	if err != nil {
		return nil, fmt.Errorf("expanding data directory: %w", err)
	}

	if err := os.MkdirAll(data, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Storage{
		sourceDir: src,
		dataDir:   data,
	}, nil
}

// SourceDir returns the expanded source directory.
func (s *Storage) SourceDir() string {
	return s.sourceDir
}

// DataDir returns the expanded data directory.
func (s *Storage) DataDir() string {
	return s.dataDir
}

func (s *Storage) monthPath(m event.Month, ext string) string {
	return filepath.Join(s.sourceDir, m.String()+"."+ext)
}

// LoadMonth loads the table of m, or its text dump when no table exists.
func (s *Storage) LoadMonth(m event.Month) (alert.MonthData, error) {
	path := s.monthPath(m, "csv")
	f, err := os.Open(path)
	if err == nil {
		defer f.Close() // nolint:errcheck
		rows, err := readRows(f)
		if err != nil {
			return alert.MonthData{}, fmt.Errorf("reading %s: %w", path, err)
		}
		return alert.MonthData{Month: m, Rows: rows, Source: path}, nil
	}
	if !os.IsNotExist(err) {
		return alert.MonthData{}, fmt.Errorf("opening %s: %w", path, err)
	}

	path = s.monthPath(m, "txt")
	text, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return alert.MonthData{}, fmt.Errorf("%w: %s", ErrMonthNotFound, m)
		}
		return alert.MonthData{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return alert.MonthData{Month: m, Text: string(text), Source: path}, nil
}

// LoadRange loads every month rng touches. Months without data are returned in missing
// rather than as an error.
func (s *Storage) LoadRange(rng report.Range) (months []alert.MonthData, missing []event.Month, err error) {
	months = make([]alert.MonthData, 0)
	missing = make([]event.Month, 0)

	for _, m := range rng.Months() {
		data, err := s.LoadMonth(m)
		if errors.Is(err, ErrMonthNotFound) {
			missing = append(missing, m)
			continue
		}
		if err != nil {
			return nil, nil, err
		}
		months = append(months, data)
	}
	return months, missing, nil
}

// Months lists the months that have a table or a text dump, in increasing order.
func (s *Storage) Months() ([]event.Month, error) {
	entries, err := os.ReadDir(s.sourceDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []event.Month{}, nil
		}
		return nil, fmt.Errorf("listing source directory: %w", err)
	}

	seen := make(map[event.Month]bool)
	months := make([]event.Month, 0)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		match := monthFilePattern.FindStringSubmatch(e.Name())
		if match == nil {
			continue
		}
		m, err := event.ParseMonth(match[1])
		if err != nil || seen[m] {
			continue
		}
		seen[m] = true
		months = append(months, m)
	}

	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })
	return months, nil
}

// readRows maps each record onto the named columns. Short records leave the missing
// columns empty.
func readRows(r io.Reader) ([]event.Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return []event.Row{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	for _, col := range []string{ColumnDate, ColumnLocation, ColumnEventName, ColumnTime, ColumnAttendance} {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("missing column %q", col)
		}
	}

	rows := make([]event.Row, 0)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading record: %w", err)
		}

		field := func(col string) string {
			if i := index[col]; i < len(record) {
				return record[i]
			}
			return ""
		}
		rows = append(rows, event.Row{
			Date:       field(ColumnDate),
			Location:   field(ColumnLocation),
			EventName:  field(ColumnEventName),
			Time:       field(ColumnTime),
			Attendance: field(ColumnAttendance),
		})
	}
	return rows, nil
}

func (s *Storage) linkSnapshotPath() string {
	return filepath.Join(s.dataDir, "links.json")
}

// LoadLinkSnapshot loads the announced calendar links. A missing file yields an empty
// snapshot.
func (s *Storage) LoadLinkSnapshot() (*scraper.Snapshot, error) {
	data, err := os.ReadFile(s.linkSnapshotPath())
	if err != nil {
		if os.IsNotExist(err) {
			return scraper.NewSnapshot(), nil
		}
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	var snapshot scraper.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("parsing snapshot: %w", err)
	}
	if snapshot.Links == nil {
		snapshot.Links = make(map[string]scraper.Link)
	}
	return &snapshot, nil
}

// SaveLinkSnapshot saves the announced calendar links.
func (s *Storage) SaveLinkSnapshot(snapshot *scraper.Snapshot) error {
	snapshot.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	if err := os.WriteFile(s.linkSnapshotPath(), data, 0644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return nil
}
