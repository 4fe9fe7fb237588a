package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pfrederiksen/stadium-alerts/internal/httpclient"
)

func TestNewClient_Validation(t *testing.T) {
	tests := []struct {
		name      string
		botToken  string
		chatID    string
		wantError bool
	}{
		{name: "valid parameters", botToken: "test-token", chatID: "12345"},
		{name: "empty bot token", chatID: "12345", wantError: true},
		{name: "empty chat ID", botToken: "test-token", wantError: true},
		{name: "both empty", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.botToken, tt.chatID)
			if tt.wantError {
				if err == nil {
					t.Error("NewClient() expected error, got nil")
				}
				if client != nil {
					t.Error("NewClient() should return nil client on error")
				}
				return
			}
			if err != nil || client == nil {
				t.Errorf("NewClient() = %v, %v", client, err)
			}
		})
	}
}

// testClient points the package at server for the duration of the test.
func testClient(t *testing.T, server *httptest.Server) *Client {
	t.Helper()
	originalURL := apiBaseURL
	apiBaseURL = server.URL + "/bot"
	t.Cleanup(func() { apiBaseURL = originalURL })

	return &Client{
		botToken:   "test-token",
		chatID:     "12345",
		httpClient: httpclient.New(httpclient.Options{RetryMax: 1, RetryWaitMin: time.Millisecond, RetryWaitMax: time.Millisecond}),
	}
}

func TestSendMessage_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST request, got %s", r.Method)
		}
		if r.URL.Path != "/bottest-token/sendMessage" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("Expected Content-Type application/json, got %s", r.Header.Get("Content-Type"))
		}

		var payload map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decoding payload: %v", err)
		}
		if payload["chat_id"] != "12345" || payload["text"] != "## Reminder!" {
			t.Errorf("payload = %v", payload)
		}
		if _, ok := payload["parse_mode"]; ok {
			t.Error("plain text messages must not set parse_mode")
		}
		if payload["disable_web_page_preview"] != true {
			t.Error("link previews not disabled")
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true,"result":{"message_id":123}}`)) // nolint:errcheck
	}))
	defer server.Close()

	if err := testClient(t, server).SendMessage(context.Background(), "## Reminder!"); err != nil {
		t.Errorf("SendMessage() unexpected error: %v", err)
	}
}

func TestSendMessage_Errors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		text     string
		wantText string
	}{
		{
			name:     "api error",
			status:   http.StatusOK,
			body:     `{"ok":false,"description":"Bad Request: chat not found"}`,
			text:     "hello",
			wantText: "chat not found",
		},
		{
			name:     "http error",
			status:   http.StatusUnauthorized,
			body:     `{"ok":false,"description":"Unauthorized"}`,
			text:     "hello",
			wantText: "status 401",
		},
		{
			name:     "invalid json",
			status:   http.StatusOK,
			body:     `not json`,
			text:     "hello",
			wantText: "parsing response",
		},
		{
			name:     "empty text",
			status:   http.StatusOK,
			text:     "",
			wantText: "required",
		},
		{
			name:     "too long",
			status:   http.StatusOK,
			text:     strings.Repeat("x", MaxMessageLength+1),
			wantText: "too long",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body)) // nolint:errcheck
			}))
			defer server.Close()

			err := testClient(t, server).SendMessage(context.Background(), tt.text)
			if err == nil {
				t.Fatal("SendMessage() expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantText) {
				t.Errorf("SendMessage() error = %v, want it to contain %q", err, tt.wantText)
			}
		})
	}
}

func TestSendMessage_Canceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":true}`)) // nolint:errcheck
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := testClient(t, server).SendMessage(ctx, "hello"); err == nil {
		t.Error("SendMessage() expected error for canceled context")
	}
}
