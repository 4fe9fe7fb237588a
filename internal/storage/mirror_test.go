package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type recordingRunner struct {
	calls []string
	fail  string
}

func (r *recordingRunner) Run(ctx context.Context, name string, args ...string) error {
	call := name + " " + strings.Join(args, " ")
	r.calls = append(r.calls, call)
	if r.fail != "" && strings.Contains(call, r.fail) {
		return errors.New("exit status 128")
	}
	return nil
}

func TestMirror_SyncClones(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "calendars-git")
	runner := &recordingRunner{}

	m := &Mirror{RepoURL: "https://example.com/cal.git", Dir: dir, Runner: runner}
	if err := m.Sync(context.Background()); err != nil {
		t.Fatalf("Sync() error = %v", err)
	}

	want := "git clone --branch main https://example.com/cal.git " + dir
	if len(runner.calls) != 1 || runner.calls[0] != want {
		t.Errorf("calls = %q, want %q", runner.calls, want)
	}
}

func TestMirror_SyncUpdates(t *testing.T) {
	dir := t.TempDir()
	runner := &recordingRunner{}

	m := &Mirror{Dir: dir, Branch: "trunk", Runner: runner}
	if err := m.Sync(context.Background()); err != nil {
		t.Fatalf("Sync() error = %v", err)
	}

	want := []string{
		"git -C " + dir + " fetch origin",
		"git -C " + dir + " reset --hard origin/trunk",
	}
	if strings.Join(runner.calls, "\n") != strings.Join(want, "\n") {
		t.Errorf("calls = %q, want %q", runner.calls, want)
	}
}

func TestMirror_SyncErrors(t *testing.T) {
	dir := t.TempDir()

	runner := &recordingRunner{fail: "fetch"}
	err := (&Mirror{Dir: dir, Runner: runner}).Sync(context.Background())
	if err == nil || !strings.Contains(err.Error(), "fetching repository") {
		t.Errorf("Sync() error = %v", err)
	}
	if len(runner.calls) != 1 {
		t.Errorf("reset ran after failed fetch: %q", runner.calls)
	}

	file := filepath.Join(dir, "plain-file")
	if err := os.WriteFile(file, nil, 0644); err != nil {
		t.Fatal(err)
	}
	if err := (&Mirror{Dir: file, Runner: &recordingRunner{}}).Sync(context.Background()); err == nil {
		t.Error("expected error when mirror path is a file")
	}
}
