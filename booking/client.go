// Package booking integrates with the Booking.com RapidAPI endpoints for
// live hotel, flight and rental car data.
package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Doer abstracts the HTTP round trip for tests.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientConfig configures the RapidAPI client.
type ClientConfig struct {
	// BaseURL is the endpoint root, e.g. "https://booking-com15.p.rapidapi.com/api/v1".
	BaseURL string
	// Host and Key are the RapidAPI credentials sent on every request.
	Host string
	Key  string
	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient Doer
	// Timeout bounds each request when HTTPClient is not supplied.
	Timeout time.Duration
}

// Client is a thin JSON GET client for the RapidAPI travel endpoints.
type Client struct {
	baseURL string
	host    string
	key     string
	client  Doer
}

// NewClient creates a client from config.
func NewClient(cfg ClientConfig) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("booking: client base URL is required")
	}
	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		host:    cfg.Host,
		key:     cfg.Key,
		client:  cfg.HTTPClient,
	}
	if c.client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		c.client = &http.Client{Timeout: timeout}
	}
	return c, nil
}

// GetJSON issues a GET against path with query params and decodes the JSON
// response into out. Non-2xx statuses are errors carrying the status code
// and a truncated body.
func (c *Client) GetJSON(ctx context.Context, path string, params url.Values, out any) error {
	if c == nil {
		return fmt.Errorf("booking: client is nil")
	}

	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("booking: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.host != "" {
		req.Header.Set("X-RapidAPI-Host", c.host)
	}
	if c.key != "" {
		req.Header.Set("X-RapidAPI-Key", c.key)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("booking: request %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("booking: read response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &StatusError{Code: resp.StatusCode, Body: truncate(string(body), 500)}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("booking: decode response: %w", err)
	}
	return nil
}

// StatusError reports a non-2xx upstream response.
type StatusError struct {
	Code int
	Body string
}

// Error implements error.
func (e *StatusError) Error() string {
	return fmt.Sprintf("booking: API request failed with status %d", e.Code)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// Price is the units+nanos money object the RapidAPI endpoints return.
// Nanos are billionths of the currency unit.
type Price struct {
	CurrencyCode string  `json:"currencyCode"`
	Units        float64 `json:"units"`
	Nanos        float64 `json:"nanos"`
}

// FormatPrice renders a price object as "USD 123.45", or "N/A" when absent.
func FormatPrice(p *Price) string {
	if p == nil {
		return "N/A"
	}
	currency := p.CurrencyCode
	if currency == "" {
		currency = "USD"
	}
	total := p.Units + p.Nanos/1_000_000_000
	return fmt.Sprintf("%s %.2f", currency, total)
}

// FormatDuration renders seconds as "4h 30m", or "N/A" for zero.
func FormatDuration(totalSeconds int) string {
	if totalSeconds <= 0 {
		return "N/A"
	}
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	return fmt.Sprintf("%dh %dm", hours, minutes)
}
