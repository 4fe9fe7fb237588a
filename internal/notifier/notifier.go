package notifier

import (
	"context"
	"fmt"
	"time"

	"github.com/pfrederiksen/stadium-alerts/internal/logger"
	"github.com/pfrederiksen/stadium-alerts/internal/report"
	"golang.org/x/time/rate"
)

// Notifier defines the interface for delivering chat messages
type Notifier interface {
	// Send posts messages in order, stopping at the first failure
	Send(ctx context.Context, messages []string) error
	// Name identifies the channel in logs
	Name() string
}

// newLimiter allows one message every interval; interval <= 0 disables pacing.
func newLimiter(interval time.Duration) *rate.Limiter {
	if interval <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(interval), 1)
}

// Deliver chunks lines to the budget and sends them through n. Nothing is sent for
// an empty report.
func Deliver(ctx context.Context, n Notifier, lines []string, budget int) error {
	chunks := report.Chunk(lines, budget)
	if len(chunks) == 0 {
		logger.Debug("nothing to deliver", logger.Fields{"channel": n.Name()})
		return nil
	}

	start := time.Now()
	if err := n.Send(ctx, chunks); err != nil {
		logger.IncrCounter("delivery.failed")
		return fmt.Errorf("delivering to %s: %w", n.Name(), err)
	}

	logger.AddCounter("delivery.messages", int64(len(chunks)))
	logger.RecordTiming("delivery."+n.Name(), time.Since(start))
	logger.Info("report delivered", logger.Fields{
		"channel":  n.Name(),
		"messages": len(chunks),
	})
	return nil
}
