package order

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultEndpoint is the form-response URL of the shop's order form.
const DefaultEndpoint = "https://docs.google.com/forms/d/e/1FAIpQLScOy0P6NRXcB6q8Ud-FlJVmTqcwbDidilgq282BEVxA4WAyXQ/formResponse"

const DefaultTimeout = 10 * time.Second

// ClientConfig configures a Client.
type ClientConfig struct {
	Endpoint string
	Fields   FieldMap
	Timeout  time.Duration
}

// Client posts submissions to the form endpoint.
type Client struct {
	endpoint string
	fields   FieldMap
	timeout  time.Duration
	http     *http.Client
}

// NewClient creates a Client. Zero config values fall back to the shop's
// form. A nil httpClient means http.DefaultClient.
func NewClient(cfg ClientConfig, httpClient *http.Client) *Client {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Fields == (FieldMap{}) {
		cfg.Fields = DefaultFieldMap
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		endpoint: cfg.Endpoint,
		fields:   cfg.Fields,
		timeout:  cfg.Timeout,
		http:     httpClient,
	}
}

// Endpoint returns the form-response URL.
func (c *Client) Endpoint() string { return c.endpoint }

// Fields returns the field map.
func (c *Client) Fields() FieldMap { return c.fields }

// Submit sends s as a single URL-encoded POST. Any 2xx or 3xx status is
// success, since the form answers with a confirmation page or a redirect to
// one. Other statuses give ErrRejected and network failures ErrTransport.
// There is no retry.
func (c *Client) Submit(ctx context.Context, s Submission) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body := c.fields.Encode(s).Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.noRedirect().Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode > 399 {
		return fmt.Errorf("%w: status %d", ErrRejected, resp.StatusCode)
	}
	return nil
}

// noRedirect returns a shallow copy of the http client that hands 3xx
// responses back instead of following them.
func (c *Client) noRedirect() *http.Client {
	hc := *c.http
	hc.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}
	return &hc
}
