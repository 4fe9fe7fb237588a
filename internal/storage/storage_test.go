package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pfrederiksen/stadium-alerts/internal/event"
	"github.com/pfrederiksen/stadium-alerts/internal/report"
	"github.com/pfrederiksen/stadium-alerts/internal/scraper"
)

const juneCSV = "\ufeffDate,Location,Event Name,Time,Attendance\n" +
	"2,CBP,PHILLIES vs Mets >>> fireworks,7:05pm,45000\n" +
	"4,LFF,\"Youth Clinic, Day 1\",11am,20000\n" +
	"5,WFC,Short Row\n"

func newStorage(t *testing.T) *Storage {
	t.Helper()
	root := t.TempDir()
	s, err := New(filepath.Join(root, "calendars"), filepath.Join(root, "data"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := os.MkdirAll(s.SourceDir(), 0755); err != nil {
		t.Fatal(err)
	}
	return s
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadMonth_CSV(t *testing.T) {
	s := newStorage(t)
	writeFile(t, filepath.Join(s.SourceDir(), "2025-06.csv"), juneCSV)

	m := event.Month{Year: 2025, Month: time.June}
	data, err := s.LoadMonth(m)
	if err != nil {
		t.Fatalf("LoadMonth() error = %v", err)
	}

	if data.Degraded() {
		t.Error("table month reported as degraded")
	}
	if len(data.Rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(data.Rows))
	}

	first := data.Rows[0]
	if first.Date != "2" || first.Location != "CBP" || first.EventName != "PHILLIES vs Mets >>> fireworks" || first.Time != "7:05pm" || first.Attendance != "45000" {
		t.Errorf("first row = %+v", first)
	}
	if data.Rows[1].EventName != "Youth Clinic, Day 1" {
		t.Errorf("quoted field = %q", data.Rows[1].EventName)
	}
	if short := data.Rows[2]; short.EventName != "Short Row" || short.Time != "" || short.Attendance != "" {
		t.Errorf("short row = %+v", short)
	}
}

func TestLoadMonth_TextFallback(t *testing.T) {
	s := newStorage(t)
	writeFile(t, filepath.Join(s.SourceDir(), "2025-07.txt"), "SUN MON TUES WED THURS FRI SAT 1 7PM CBP PHILLIES vs Cubs (40,000)")

	data, err := s.LoadMonth(event.Month{Year: 2025, Month: time.July})
	if err != nil {
		t.Fatalf("LoadMonth() error = %v", err)
	}
	if !data.Degraded() || data.Text == "" {
		t.Errorf("expected text month, got %+v", data)
	}
}

func TestLoadMonth_Errors(t *testing.T) {
	s := newStorage(t)

	_, err := s.LoadMonth(event.Month{Year: 2025, Month: time.August})
	if !errors.Is(err, ErrMonthNotFound) {
		t.Errorf("LoadMonth() error = %v, want ErrMonthNotFound", err)
	}

	writeFile(t, filepath.Join(s.SourceDir(), "2025-09.csv"), "Date,Location,Time\n1,CBP,7pm\n")
	_, err = s.LoadMonth(event.Month{Year: 2025, Month: time.September})
	if err == nil || errors.Is(err, ErrMonthNotFound) {
		t.Errorf("LoadMonth() error = %v, want missing column error", err)
	}
}

func TestLoadRange(t *testing.T) {
	s := newStorage(t)
	writeFile(t, filepath.Join(s.SourceDir(), "2025-06.csv"), juneCSV)

	rng := report.Window(event.Date{Year: 2025, Month: time.June, Day: 29}, 5)
	months, missing, err := s.LoadRange(rng)
	if err != nil {
		t.Fatalf("LoadRange() error = %v", err)
	}

	if len(months) != 1 || months[0].Month.Month != time.June {
		t.Errorf("months = %+v", months)
	}
	if len(missing) != 1 || missing[0] != (event.Month{Year: 2025, Month: time.July}) {
		t.Errorf("missing = %v", missing)
	}
}

func TestMonths(t *testing.T) {
	s := newStorage(t)
	for _, name := range []string{"2025-07.csv", "2025-06.txt", "2025-06.csv", "README.md", "2025-6.csv", "2025-13.csv"} {
		writeFile(t, filepath.Join(s.SourceDir(), name), "")
	}
	if err := os.Mkdir(filepath.Join(s.SourceDir(), "2025-08.csv"), 0755); err != nil {
		t.Fatal(err)
	}

	months, err := s.Months()
	if err != nil {
		t.Fatalf("Months() error = %v", err)
	}
	want := []event.Month{{Year: 2025, Month: time.June}, {Year: 2025, Month: time.July}}
	if len(months) != len(want) {
		t.Fatalf("Months() = %v, want %v", months, want)
	}
	for i := range want {
		if months[i] != want[i] {
			t.Errorf("Months()[%d] = %v, want %v", i, months[i], want[i])
		}
	}
}

func TestMonths_MissingSourceDir(t *testing.T) {
	root := t.TempDir()
	s, err := New(filepath.Join(root, "not-cloned"), filepath.Join(root, "data"))
	if err != nil {
		t.Fatal(err)
	}
	months, err := s.Months()
	if err != nil || len(months) != 0 {
		t.Errorf("Months() = %v, %v", months, err)
	}
}

func TestLinkSnapshot(t *testing.T) {
	s := newStorage(t)

	empty, err := s.LoadLinkSnapshot()
	if err != nil {
		t.Fatalf("LoadLinkSnapshot() error = %v", err)
	}
	if len(empty.Links) != 0 {
		t.Errorf("expected empty snapshot, got %+v", empty)
	}

	link := scraper.Link{Month: event.Month{Year: 2025, Month: time.June}, Label: "06/2025", URL: "https://example.com/June2025.pdf"}
	snap := scraper.CreateSnapshot([]scraper.Link{link}, time.Now())
	if err := s.SaveLinkSnapshot(snap); err != nil {
		t.Fatalf("SaveLinkSnapshot() error = %v", err)
	}

	loaded, err := s.LoadLinkSnapshot()
	if err != nil {
		t.Fatalf("LoadLinkSnapshot() error = %v", err)
	}
	if got, ok := loaded.Links[link.URL]; !ok || got != link {
		t.Errorf("loaded link = %+v, want %+v", got, link)
	}
	if loaded.UpdatedAt == "" {
		t.Error("UpdatedAt not set")
	}

	writeFile(t, filepath.Join(s.DataDir(), "links.json"), "{not json")
	if _, err := s.LoadLinkSnapshot(); err == nil {
		t.Error("expected error for corrupt snapshot")
	}
}
