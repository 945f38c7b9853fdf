// Package fetch provides the outbound HTTP adapter used by the provider
// extractors. It sends a realistic browser header set with a bounded timeout
// and surfaces any non-2xx status or transport failure as an error value.
// It never retries: fallback policy (alternate URLs, next strategy) belongs
// to the caller.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultTimeout bounds a single outbound request when no timeout is
// configured.
const DefaultTimeout = 20 * time.Second

// Chrome-like header set; several of the ticketing providers serve a captcha
// page to unadorned clients.
var browserHeaders = map[string]string{
	"User-Agent":                "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
	"Accept-Language":           "pt-BR,pt;q=0.9,en-US;q=0.8,en;q=0.7",
	"Connection":                "keep-alive",
	"Upgrade-Insecure-Requests": "1",
	"Sec-Fetch-Dest":            "document",
	"Sec-Fetch-Mode":            "navigate",
	"Sec-Fetch-Site":            "none",
	"Cache-Control":             "max-age=0",
}

// Response is the raw result of a successful fetch.
type Response struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// StatusError reports a non-2xx response. Extractors treat it the same as a
// transport error: move to the next fallback URL or strategy.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.StatusCode, e.URL)
}

// Getter is the request-issuing contract the extractors depend on.
// *Client is the production implementation; tests substitute fakes.
type Getter interface {
	Get(ctx context.Context, url string, extra map[string]string) (*Response, error)
}

// Client issues browser-like GET requests with a bounded timeout.
type Client struct {
	http *http.Client

	// UserAgent, when set, replaces the default User-Agent header.
	UserAgent string
}

// New creates a Client. A non-positive timeout falls back to DefaultTimeout.
func New(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		http: &http.Client{Timeout: timeout},
	}
}

// Get fetches url with the browser header set plus any extra headers.
// Timeouts and network errors come back as transport errors; non-2xx
// statuses come back as *StatusError. The body is fully read either way the
// call succeeds.
func (c *Client) Get(ctx context.Context, url string, extra map[string]string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	for k, v := range browserHeaders {
		req.Header.Set(k, v)
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	for k, v := range extra {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading body from %s: %w", url, err)
	}

	return &Response{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}
