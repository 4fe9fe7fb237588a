package notifier

import (
	"context"
	"fmt"
	"io"
	"os"
	"unicode/utf8"
)

// DryRunNotifier prints what would be sent without contacting any channel
type DryRunNotifier struct {
	out io.Writer
}

// NewDryRunNotifier creates a dry-run notifier writing to out, or stdout when nil.
func NewDryRunNotifier(out io.Writer) *DryRunNotifier {
	if out == nil {
		out = os.Stdout
	}
	return &DryRunNotifier{out: out}
}

// Name implements Notifier.
func (n *DryRunNotifier) Name() string {
	return "dry-run"
}

// Send prints the messages that would be posted
func (n *DryRunNotifier) Send(ctx context.Context, messages []string) error {
	for i, msg := range messages {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprintf(n.out, "--- Message %d/%d ---\n", i+1, len(messages))
		fmt.Fprint(n.out, msg)
		fmt.Fprintf(n.out, "\n(Length: %d characters)\n\n", utf8.RuneCountInString(msg))
	}
	return nil
}
