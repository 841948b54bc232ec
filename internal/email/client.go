package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"talenthub-api/internal/config"
	"talenthub-api/internal/logging"
)

// Message is a single outbound email.
type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

type sendRequest struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

type sendResponse struct {
	MessageID string `json:"message_id"`
	Error     string `json:"error,omitempty"`
}

// Client delivers mail through the provider's HTTP API. Calls are rate
// limited client-side and retried on transient failures.
type Client struct {
	baseURL    string
	apiKey     string
	from       string
	httpClient *http.Client
	limiter    *rate.Limiter
	maxRetries int
	logger     logging.Logger
}

// NewClient creates an email client from the service configuration.
func NewClient(cfg *config.Config) *Client {
	perSecond := rate.Limit(float64(cfg.Email.RateLimit) / 60.0)
	if perSecond <= 0 {
		perSecond = rate.Inf
	}
	return &Client{
		baseURL: cfg.Email.BaseURL,
		apiKey:  cfg.Email.APIKey,
		from:    cfg.Email.From,
		httpClient: &http.Client{
			Timeout: cfg.Email.Timeout,
		},
		limiter:    rate.NewLimiter(perSecond, 5),
		maxRetries: cfg.Email.MaxRetries,
		logger:     logging.GetGlobalLogger(),
	}
}

// Send delivers one message, blocking on the rate limiter first. Provider
// 5xx responses and transport errors are retried with linear backoff;
// 4xx responses fail immediately.
func (c *Client) Send(ctx context.Context, msg Message) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter wait cancelled: %w", err)
	}

	payload, err := json.Marshal(sendRequest{
		From:    c.from,
		To:      msg.To,
		Subject: msg.Subject,
		HTML:    msg.HTML,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal send request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(time.Duration(attempt) * time.Second):
			}
		}

		id, retryable, err := c.post(ctx, payload)
		if err == nil {
			return id, nil
		}
		lastErr = err
		if !retryable {
			return "", err
		}
		c.logger.Warn("Email send attempt failed, retrying", map[string]interface{}{
			"attempt": attempt + 1,
			"error":   err.Error(),
		})
	}

	return "", fmt.Errorf("email send exhausted %d retries: %w", c.maxRetries, lastErr)
}

func (c *Client) post(ctx context.Context, payload []byte) (id string, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/send", bytes.NewReader(payload))
	if err != nil {
		return "", false, fmt.Errorf("failed to build send request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", true, fmt.Errorf("email provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	var body sendResponse
	if decodeErr := json.NewDecoder(resp.Body).Decode(&body); decodeErr != nil && resp.StatusCode < 300 {
		return "", false, fmt.Errorf("failed to decode provider response: %w", decodeErr)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return body.MessageID, false, nil
	case resp.StatusCode >= 500:
		return "", true, fmt.Errorf("provider returned %d: %s", resp.StatusCode, body.Error)
	default:
		return "", false, fmt.Errorf("provider rejected message with %d: %s", resp.StatusCode, body.Error)
	}
}
