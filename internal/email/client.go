// Package email implements the outbound email collaborator: a
// Postmark-style HTTP client for production and a logging client for
// local runs and tests. Neither ever logs message content, which
// carries the 2FA code.
package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/mlukasik/auth-service/internal/domain"
)

// DefaultTimeout bounds a single send when no timeout is configured.
const DefaultTimeout = 10 * time.Second

// LogClient logs that a message would have been sent. The recipient
// value type redacts itself, the content is never printed.
type LogClient struct{}

var _ domain.EmailClient = (*LogClient)(nil)

// Send logs the dispatch and succeeds.
func (c *LogClient) Send(ctx context.Context, recipient domain.Email, subject, content string) error {
	log.Printf("email: would send %q to %v", subject, recipient)
	return nil
}

// HTTPClient sends messages through a Postmark-compatible REST API.
type HTTPClient struct {
	baseURL    string
	sender     string
	authToken  string
	httpClient *http.Client
}

var _ domain.EmailClient = (*HTTPClient)(nil)

// NewHTTPClient creates a client for the given API endpoint. A zero
// timeout falls back to DefaultTimeout.
func NewHTTPClient(baseURL, sender, authToken string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPClient{
		baseURL:   baseURL,
		sender:    sender,
		authToken: authToken,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type sendRequest struct {
	From     string `json:"From"`
	To       string `json:"To"`
	Subject  string `json:"Subject"`
	TextBody string `json:"TextBody"`
}

// Send posts the message to the API. Any non-2xx response is an error.
func (c *HTTPClient) Send(ctx context.Context, recipient domain.Email, subject, content string) error {
	payload, err := json.Marshal(sendRequest{
		From:     c.sender,
		To:       recipient.Expose(),
		Subject:  subject,
		TextBody: content,
	})
	if err != nil {
		return fmt.Errorf("failed to serialize email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/email", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build email request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Postmark-Server-Token", c.authToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// drain so the connection can be reused; the body is not
		// reported to avoid echoing provider payloads into errors
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("email API returned status %d", resp.StatusCode)
	}
	return nil
}
