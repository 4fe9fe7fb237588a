package notifier

import (
	"context"
	"fmt"
	"time"

	"github.com/pfrederiksen/stadium-alerts/internal/telegram"
	"golang.org/x/time/rate"
)

// TelegramInterval paces messages to one chat.
const TelegramInterval = time.Second

// messageSender is the part of telegram.Client the notifier needs.
type messageSender interface {
	SendMessage(ctx context.Context, text string) error
}

// TelegramNotifier posts messages to a Telegram chat
type TelegramNotifier struct {
	client  messageSender
	limiter *rate.Limiter
}

// NewTelegramNotifier creates a notifier for the bot token and chat ID.
func NewTelegramNotifier(botToken, chatID string, interval time.Duration) (*TelegramNotifier, error) {
	client, err := telegram.NewClient(botToken, chatID)
	if err != nil {
		return nil, err
	}
	return &TelegramNotifier{client: client, limiter: newLimiter(interval)}, nil
}

// Name implements Notifier.
func (n *TelegramNotifier) Name() string {
	return "telegram"
}

// Send posts each message to the chat.
func (n *TelegramNotifier) Send(ctx context.Context, messages []string) error {
	for i, msg := range messages {
		if err := n.limiter.Wait(ctx); err != nil {
			return err
		}
		if err := n.client.SendMessage(ctx, msg); err != nil {
			return fmt.Errorf("message %d/%d: %w", i+1, len(messages), err)
		}
	}
	return nil
}
