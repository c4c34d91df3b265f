package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// SaleEvent is the structured summary posted to the tenant's chat webhook
// after a sale settles.
type SaleEvent struct {
	InvoiceNo string  `json:"invoice_no"`
	SaleID    string  `json:"sale_id"`
	Amount    float64 `json:"amount"`
	SoldBy    string  `json:"sold_by"`
}

// Notifier delivers sale notifications. Delivery is best-effort: callers log
// failures and never let them affect the sale result.
type Notifier interface {
	NotifySale(ctx context.Context, webhookURL string, event SaleEvent) error
}

// WebhookNotifier posts sale events as JSON to a per-tenant webhook URL.
type WebhookNotifier struct {
	client *http.Client
}

// NewWebhookNotifier creates a webhook notifier with a bounded request timeout.
func NewWebhookNotifier(timeout time.Duration) *WebhookNotifier {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &WebhookNotifier{
		client: &http.Client{Timeout: timeout},
	}
}

// NotifySale posts the event to the webhook URL. A non-2xx response counts
// as a delivery failure.
func (n *WebhookNotifier) NotifySale(ctx context.Context, webhookURL string, event SaleEvent) error {
	if webhookURL == "" {
		return nil
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode sale event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook delivery failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook responded with status %d", resp.StatusCode)
	}
	return nil
}

// NullNotifier discards all events. Used when no webhook is configured and in
// tests.
type NullNotifier struct{}

// NewNullNotifier creates a notifier that does nothing.
func NewNullNotifier() *NullNotifier {
	return &NullNotifier{}
}

// NotifySale discards the event.
func (n *NullNotifier) NotifySale(ctx context.Context, webhookURL string, event SaleEvent) error {
	return nil
}
