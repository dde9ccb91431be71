// Package sms holds the outbound SMS gateway client. The dispatch cycle
// only sees the Sender contract: any transport-level problem (network
// error, non-2xx response, open breaker) surfaces as a returned error and
// the message is recorded as failed.
package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sony/gobreaker"
)

const defaultBaseURL = "https://rest.textmagic.com/api/v2"

type Config struct {
	BaseURL  string
	Username string
	APIKey   string
	Timeout  time.Duration
}

type Client struct {
	baseURL  string
	username string
	apiKey   string
	client   *http.Client
	breaker  *gobreaker.CircuitBreaker
	requests *prometheus.CounterVec
}

func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "textmagic",
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	return &Client{
		baseURL:  baseURL,
		username: cfg.Username,
		apiKey:   cfg.APIKey,
		client:   &http.Client{Timeout: timeout},
		breaker:  breaker,
	}
}

type sendRequest struct {
	Text   string `json:"text"`
	Phones string `json:"phones"`
}

type sendResponse struct {
	ID int64 `json:"id"`
}

// WithMetrics attaches a per-result request counter. Rejected and
// breaker-shorted attempts both count as errors.
func (c *Client) WithMetrics(requests *prometheus.CounterVec) *Client {
	c.requests = requests
	return c
}

// Send submits one message to the gateway. phone is digits only, already
// normalized by the caller.
func (c *Client) Send(ctx context.Context, phone, body string) error {
	_, err := c.breaker.Execute(func() (interface{}, error) {
		return nil, c.send(ctx, phone, body)
	})
	if c.requests != nil {
		result := "ok"
		if err != nil {
			result = "error"
		}
		c.requests.WithLabelValues(result).Inc()
	}
	return err
}

func (c *Client) send(ctx context.Context, phone, body string) error {
	payload, err := json.Marshal(sendRequest{Text: body, Phones: phone})
	if err != nil {
		return fmt.Errorf("failed to marshal send request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/messages", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build send request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-TM-Username", c.username)
	req.Header.Set("X-TM-Key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("gateway returned %d: %s", resp.StatusCode, snippet)
	}

	var out sendResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		// Gateway accepted the message; an unparseable body is not a
		// delivery failure.
		return nil
	}
	return nil
}
