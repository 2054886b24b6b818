package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/donaldgifford/sorare-listing-bot/internal/metrics"
)

const (
	defaultTimeout = 5 * time.Second

	// Discord rejects message content longer than 2000 characters.
	maxContentLen = 2000
)

// DiscordNotifier implements Notifier via Discord webhook.
type DiscordNotifier struct {
	webhookURL string
	client     *http.Client
}

// NewDiscordNotifier creates a new DiscordNotifier. Requests time out after
// five seconds unless another client is supplied.
func NewDiscordNotifier(webhookURL string, opts ...DiscordOption) *DiscordNotifier {
	d := &DiscordNotifier{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DiscordOption configures a DiscordNotifier.
type DiscordOption func(*DiscordNotifier)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) DiscordOption {
	return func(d *DiscordNotifier) {
		d.client = c
	}
}

// WithTimeout sets the request timeout of the notifier's HTTP client.
func WithTimeout(timeout time.Duration) DiscordOption {
	return func(d *DiscordNotifier) {
		c := *d.client
		c.Timeout = timeout
		d.client = &c
	}
}

// discordWebhookPayload is the Discord webhook JSON structure.
type discordWebhookPayload struct {
	Content string `json:"content"`
}

// Send posts message as the webhook's content. It is not retried.
func (d *DiscordNotifier) Send(ctx context.Context, message string) error {
	start := time.Now()
	defer func() {
		metrics.NotificationDuration.Observe(time.Since(start).Seconds())
	}()

	return d.post(ctx, discordWebhookPayload{Content: truncate(message, maxContentLen)})
}

func (d *DiscordNotifier) post(ctx context.Context, payload discordWebhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return &NotifyError{Err: fmt.Errorf("marshaling discord payload: %w", err)}
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		d.webhookURL,
		bytes.NewReader(body),
	)
	if err != nil {
		return &NotifyError{Err: fmt.Errorf("creating discord request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return &NotifyError{Err: fmt.Errorf("sending discord webhook: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return &NotifyError{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("discord rate limited (429)"),
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return &NotifyError{
				StatusCode: resp.StatusCode,
				Err:        fmt.Errorf("discord returned %d (body unreadable)", resp.StatusCode),
			}
		}
		return &NotifyError{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("discord returned %d: %s", resp.StatusCode, respBody),
		}
	}

	return nil
}

// truncate shortens s to at most limit runes, marking the cut with an ellipsis.
func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit-1]) + "…"
}
