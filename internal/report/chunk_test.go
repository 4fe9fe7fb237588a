package report

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestChunk(t *testing.T) {
	tests := []struct {
		name   string
		lines  []string
		budget int
		want   []string
	}{
		{name: "empty", lines: nil, budget: 10, want: []string{}},
		{name: "fits", lines: []string{"a", "b"}, budget: 10, want: []string{"a\nb\n"}},
		{name: "exact budget", lines: []string{"abcd", "efgh"}, budget: 10, want: []string{"abcd\nefgh\n"}},
		{name: "one over", lines: []string{"abcd", "efghi"}, budget: 10, want: []string{"abcd\n", "efghi\n"}},
		{name: "oversized line", lines: []string{"a", "0123456789abc", "b"}, budget: 10, want: []string{"a\n", "0123456789abc\n", "b\n"}},
		{name: "blank lines count", lines: []string{"abcdefgh", "", ""}, budget: 10, want: []string{"abcdefgh\n\n", "\n"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Chunk(tt.lines, tt.budget)
			if len(got) != len(tt.want) {
				t.Fatalf("Chunk() = %q, want %q", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("chunk %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestChunk_Properties(t *testing.T) {
	lines := make([]string, 0)
	for i := 0; i < 300; i++ {
		lines = append(lines, "* **Wed, 6/4 at 7:05pm:** Phillies vs. Mets at Citizens Bank Park\t*🚨 Large event 🚨*")
		if i%7 == 0 {
			lines = append(lines, "")
		}
	}

	chunks := Chunk(lines, DefaultChunkBudget)
	if len(chunks) < 2 {
		t.Fatalf("expected several chunks, got %d", len(chunks))
	}

	var joined strings.Builder
	for i, c := range chunks {
		if c == "" {
			t.Errorf("chunk %d is empty", i)
		}
		if n := utf8.RuneCountInString(c); n > DefaultChunkBudget {
			t.Errorf("chunk %d has %d characters", i, n)
		}
		joined.WriteString(c)
	}

	if joined.String() != strings.Join(lines, "\n")+"\n" {
		t.Error("concatenated chunks do not reproduce the input lines")
	}
}

func TestChunk_DefaultBudget(t *testing.T) {
	long := strings.Repeat("x", 1000)
	got := Chunk([]string{long, long}, 0)
	if len(got) != 2 {
		t.Errorf("expected default budget to split, got %d chunks", len(got))
	}
}
