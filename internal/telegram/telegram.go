package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/pfrederiksen/stadium-alerts/internal/httpclient"
	"github.com/tidwall/gjson"
)

// MaxMessageLength is the Bot API limit for one message.
const MaxMessageLength = 4096

const timeout = 10 * time.Second

var apiBaseURL = "https://api.telegram.org/bot"

// Client represents a Telegram Bot API client
type Client struct {
	botToken   string
	chatID     string
	httpClient *retryablehttp.Client
}

// NewClient creates a new Telegram client
func NewClient(botToken, chatID string) (*Client, error) {
	if botToken == "" {
		return nil, fmt.Errorf("bot token is required")
	}
	if chatID == "" {
		return nil, fmt.Errorf("chat ID is required")
	}

	return &Client{
		botToken:   botToken,
		chatID:     chatID,
		httpClient: httpclient.New(httpclient.Options{Timeout: timeout}),
	}, nil
}

// SendMessage sends text to the configured chat without link previews.
func (c *Client) SendMessage(ctx context.Context, text string) error {
	if text == "" {
		return fmt.Errorf("message text is required")
	}
	if n := len([]rune(text)); n > MaxMessageLength {
		return fmt.Errorf("message too long: %d characters", n)
	}

	payload := map[string]interface{}{
		"chat_id":                  c.chatID,
		"text":                     text,
		"disable_web_page_preview": true,
	}
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling payload: %w", err)
	}

	url := fmt.Sprintf("%s%s/sendMessage", apiBaseURL, c.botToken)
	req, err := httpclient.NewRequest(http.MethodPost, url, jsonData)
	if err != nil {
		return err
	}
	req = req.WithContext(ctx)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close() // nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram API error (status %d): %s", resp.StatusCode, describe(body))
	}

	if !gjson.ValidBytes(body) {
		return fmt.Errorf("parsing response: invalid JSON")
	}
	if !gjson.GetBytes(body, "ok").Bool() {
		return fmt.Errorf("telegram API error: %s", describe(body))
	}

	return nil
}

func describe(body []byte) string {
	if d := gjson.GetBytes(body, "description"); d.Exists() {
		return d.String()
	}
	return string(body)
}
