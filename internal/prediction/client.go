package prediction

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"stockprofit/internal/logging"

	"github.com/google/uuid"
)

// ClientConfig configures a Client.
type ClientConfig struct {
	Endpoint string
	// Timeout of zero leaves the request bounded only by its context.
	Timeout time.Duration
	// ContentType adds "Content-Type: application/json" alongside Accept.
	ContentType bool
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// Client posts prediction requests. It never retries.
type Client struct {
	endpoint    string
	contentType bool
	httpClient  *http.Client
}

// NewClient creates a client for the endpoint in cfg.
func NewClient(cfg ClientConfig, opts ...Option) *Client {
	c := &Client{
		endpoint:    cfg.Endpoint,
		contentType: cfg.ContentType,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the URL requests are posted to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Predict posts req and returns the response text.
//
// A non-2xx reply yields a *StatusError carrying the unmodified body.
// A 2xx reply without a "response" field yields the empty string.
func (c *Client) Predict(ctx context.Context, req Request) (string, error) {
	reqID := uuid.NewString()
	log := logging.Get(logging.CategoryAPI).With("request_id", reqID)

	jsonData, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if c.contentType {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	log.Info("POST %s ticker=%s purchase_date=%s shares=%d", c.endpoint, req.Ticker, req.PurchaseDate, req.Shares)
	start := time.Now()

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		log.Warn("request failed after %v: %v", time.Since(start), err)
		var uerr *url.Error
		if errors.As(err, &uerr) {
			return "", &TransportError{Err: uerr.Err}
		}
		return "", &TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	log.Info("status %d in %v (%d bytes)", resp.StatusCode, time.Since(start), len(body))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &StatusError{Code: resp.StatusCode, Body: string(body)}
	}

	var out Response
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if out.Text == nil {
		log.Warn("response body has no \"response\" field")
		return "", nil
	}
	return *out.Text, nil
}
