package report

import (
	"strings"
	"unicode/utf8"
)

// DefaultChunkBudget is the largest message, in characters, sent to the chat channel.
const DefaultChunkBudget = 1900

// Chunk groups lines into messages of at most budget characters. Every line keeps its
// trailing newline and is never split; a single line longer than the budget becomes a
// message of its own. budget <= 0 selects DefaultChunkBudget.
func Chunk(lines []string, budget int) []string {
	if budget <= 0 {
		budget = DefaultChunkBudget
	}

	chunks := make([]string, 0)
	var current strings.Builder
	size := 0

	for _, line := range lines {
		n := utf8.RuneCountInString(line) + 1
		if size > 0 && size+n > budget {
			chunks = append(chunks, current.String())
			current.Reset()
			size = 0
		}
		current.WriteString(line)
		current.WriteByte('\n')
		size += n
	}
	if size > 0 {
		chunks = append(chunks, current.String())
	}

	return chunks
}
