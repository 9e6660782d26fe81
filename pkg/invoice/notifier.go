package invoice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Config holds the invoice gateway configuration
type Config struct {
	Endpoint string
	MediaURL string
	Timeout  time.Duration
}

// Notifier sends invoice messages to customers through an external
// messaging gateway. Sending is best effort: a failed notification is
// reported as a warning by callers and never rolls back the sale it
// belongs to.
type Notifier struct {
	config Config
	client *http.Client
}

// NewNotifier creates a new invoice notifier
func NewNotifier(config Config) *Notifier {
	timeout := config.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Notifier{
		config: config,
		client: &http.Client{Timeout: timeout},
	}
}

// request is the payload shape the gateway expects
type request struct {
	Number   string `json:"number"`
	Message  string `json:"message"`
	Type     string `json:"type"`
	MediaURL string `json:"media_url"`
}

// response is the result shape the gateway returns
type response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Send delivers an invoice message to the given phone number. Transport
// errors, gateway rejections and malformed responses are all collapsed
// into a single error shape for the caller to report as a warning.
func (n *Notifier) Send(ctx context.Context, number, message string) error {
	payload, err := json.Marshal(request{
		Number:   number,
		Message:  message,
		Type:     "media",
		MediaURL: n.config.MediaURL,
	})
	if err != nil {
		return fmt.Errorf("failed to encode invoice payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.config.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build invoice request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach invoice gateway: %w", err)
	}
	defer resp.Body.Close()

	var result response
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to decode invoice gateway response: %w", err)
	}

	if !result.Success {
		return fmt.Errorf("invoice gateway rejected message: %s", result.Message)
	}

	return nil
}
