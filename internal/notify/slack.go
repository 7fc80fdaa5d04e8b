package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// webhookTimeout bounds a single webhook POST. The hosting environment
// enforces an overall invocation deadline; this keeps one slow endpoint from
// eating all of it.
const webhookTimeout = 5 * time.Second

// WebhookPoster posts a structured message to a chat webhook.
type WebhookPoster interface {
	Post(ctx context.Context, msg BlockMessage) error
}

// SlackWebhook implements WebhookPoster against a Slack incoming webhook.
type SlackWebhook struct {
	client   *http.Client
	endpoint string
}

// NewSlackWebhook creates a new SlackWebhook
func NewSlackWebhook(endpoint string) *SlackWebhook {
	return &SlackWebhook{
		client:   &http.Client{Timeout: webhookTimeout},
		endpoint: endpoint,
	}
}

// Post sends the block message as JSON. Any non-2xx response is a failure.
func (w *SlackWebhook) Post(ctx context.Context, msg BlockMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal block message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Slack returns a short diagnostic body on rejection
		diag, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return fmt.Errorf("webhook returned status %d: %s", resp.StatusCode, diag)
	}

	return nil
}
