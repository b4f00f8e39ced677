// Package feedback forwards user suggestions to an external collection
// endpoint. Submission is fire-and-forget: failures are logged and never
// surfaced to the caller.
package feedback

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"painel/internal/datasource/httpds"
)

// Client posts plain-text suggestions to a fixed endpoint.
type Client struct {
	http     *httpds.Client
	endpoint string
	timeout  time.Duration
}

// NewClient returns a Client for endpoint. An empty endpoint disables
// submission (Send becomes a no-op); a nil http client gets defaults with a
// single retry.
func NewClient(http *httpds.Client, endpoint string) *Client {
	if http == nil {
		http = httpds.NewClient(httpds.Config{MaxRetries: 1, Timeout: 10 * time.Second})
	}
	return &Client{http: http, endpoint: endpoint, timeout: 15 * time.Second}
}

// Enabled reports whether an endpoint is configured.
func (c *Client) Enabled() bool { return c.endpoint != "" }

// Send posts the message as a form field. Empty messages and disabled
// clients are ignored.
func (c *Client) Send(ctx context.Context, message string) error {
	message = strings.TrimSpace(message)
	if message == "" || !c.Enabled() {
		return nil
	}

	form := url.Values{"message": {message}}
	headers := http.Header{"Content-Type": {"application/x-www-form-urlencoded"}}

	resp, err := c.http.Post(ctx, c.endpoint, []byte(form.Encode()), headers)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return nil
}

// SendAsync submits on a background goroutine with its own timeout, logging
// any failure. The caller's request finishes without waiting.
func (c *Client) SendAsync(message string) {
	if strings.TrimSpace(message) == "" || !c.Enabled() {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
		defer cancel()
		if err := c.Send(ctx, message); err != nil {
			log.Printf("feedback: submit failed: %v", err)
		}
	}()
}
