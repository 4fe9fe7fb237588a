package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/pfrederiksen/stadium-alerts/internal/httpclient"
	"golang.org/x/time/rate"
)

// DiscordInterval paces webhook posts; Discord allows about five per two seconds.
const DiscordInterval = 500 * time.Millisecond

// DiscordNotifier posts messages to a Discord channel webhook
type DiscordNotifier struct {
	webhookURL string
	client     *retryablehttp.Client
	limiter    *rate.Limiter
}

// NewDiscordNotifier creates a notifier for webhookURL. A nil client uses the default
// retrying client.
func NewDiscordNotifier(webhookURL string, client *retryablehttp.Client, interval time.Duration) (*DiscordNotifier, error) {
	if webhookURL == "" {
		return nil, fmt.Errorf("discord webhook URL is required")
	}
	if client == nil {
		client = httpclient.New(httpclient.Options{})
	}
	return &DiscordNotifier{
		webhookURL: webhookURL,
		client:     client,
		limiter:    newLimiter(interval),
	}, nil
}

// Name implements Notifier.
func (n *DiscordNotifier) Name() string {
	return "discord"
}

// Send posts each message as the content of one webhook call.
func (n *DiscordNotifier) Send(ctx context.Context, messages []string) error {
	for i, msg := range messages {
		if err := n.limiter.Wait(ctx); err != nil {
			return err
		}
		if err := n.post(ctx, msg); err != nil {
			return fmt.Errorf("message %d/%d: %w", i+1, len(messages), err)
		}
	}
	return nil
}

func (n *DiscordNotifier) post(ctx context.Context, content string) error {
	body, err := json.Marshal(map[string]string{"content": content})
	if err != nil {
		return fmt.Errorf("marshaling payload: %w", err)
	}

	req, err := httpclient.NewRequest(http.MethodPost, n.webhookURL, body)
	if err != nil {
		return err
	}
	req = req.WithContext(ctx)
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("posting to webhook: %w", err)
	}
	defer resp.Body.Close() // nolint:errcheck

	return httpclient.CheckStatus(resp)
}
