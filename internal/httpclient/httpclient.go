// Package httpclient builds the retrying HTTP client shared by the scraper and the
// chat notifiers.
package httpclient

import (
	"fmt"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/pfrederiksen/stadium-alerts/internal/logger"
)

const (
	UserAgent      = "stadium-alerts/1.0 (github.com/pfrederiksen/stadium-alerts)"
	DefaultTimeout = 30 * time.Second
	DefaultRetries = 3
)

// Options configures New. Zero values select the defaults.
type Options struct {
	Timeout      time.Duration
	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
}

// New returns a retryablehttp client logging through the package logger.
func New(opts Options) *retryablehttp.Client {
	c := retryablehttp.NewClient()
	c.Logger = leveledLogger{}

	c.HTTPClient.Timeout = DefaultTimeout
	if opts.Timeout > 0 {
		c.HTTPClient.Timeout = opts.Timeout
	}
	c.RetryMax = DefaultRetries
	if opts.RetryMax > 0 {
		c.RetryMax = opts.RetryMax
	}
	if opts.RetryWaitMin > 0 {
		c.RetryWaitMin = opts.RetryWaitMin
	}
	if opts.RetryWaitMax > 0 {
		c.RetryWaitMax = opts.RetryWaitMax
	}
	return c
}

// NewRequest creates a request carrying the stadium-alerts User-Agent.
func NewRequest(method, url string, body interface{}) (*retryablehttp.Request, error) {
	req, err := retryablehttp.NewRequest(method, url, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)
	return req, nil
}

// CheckStatus returns an error for any non-2xx response.
func CheckStatus(resp *http.Response) error {
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	return nil
}

// leveledLogger adapts retryablehttp's key/value logging to logger.Fields.
type leveledLogger struct{}

func fields(keysAndValues []interface{}) logger.Fields {
	f := logger.Fields{"component": "http"}
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		f[fmt.Sprint(keysAndValues[i])] = fmt.Sprint(keysAndValues[i+1])
	}
	return f
}

func (leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	logger.Error(msg, fields(keysAndValues), nil)
}

func (leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	logger.Debug(msg, fields(keysAndValues))
}

func (leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	logger.Debug(msg, fields(keysAndValues))
}

func (leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	logger.Warn(msg, fields(keysAndValues))
}
