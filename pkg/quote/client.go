package quote

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"runtime"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the local development backend.
	DefaultBaseURL = "http://localhost:8000"

	randomEndpoint      = "/api/quotes/random"
	userAgentProduct    = "quotecard"
	userAgentVersion    = "1.0"
	defaultHTTPTimeout  = 10 * time.Second
	maxResponseBodySize = 1 << 20
)

// Client fetches quotes from the backend.
type Client struct {
	baseURL   *url.URL
	rawBase   string
	http      *http.Client
	timeout   time.Duration
	userAgent string
	contract  *Contract
}

// Option mutates the client during construction.
type Option func(*Client)

// WithBaseURL overrides the backend origin.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.rawBase = baseURL
	}
}

// WithHTTPClient installs a custom http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout bounds each request. Zero disables the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithUserAgent sets a custom User-Agent string.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithContract replaces the embedded response contract.
func WithContract(contract *Contract) Option {
	return func(c *Client) {
		if contract != nil {
			c.contract = contract
		}
	}
}

// NewClient builds a client for the backend at DefaultBaseURL unless
// WithBaseURL says otherwise.
func NewClient(opts ...Option) (*Client, error) {
	c := &Client{
		rawBase:   DefaultBaseURL,
		http:      &http.Client{},
		timeout:   defaultHTTPTimeout,
		userAgent: buildDefaultUserAgent(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	base, err := parseBaseURL(c.rawBase)
	if err != nil {
		return nil, err
	}
	c.baseURL = base

	if c.contract == nil {
		contract, err := DefaultContract()
		if err != nil {
			return nil, err
		}
		c.contract = contract
	}
	return c, nil
}

// BaseURL returns the backend origin in use.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Random fetches one quote. A tag that is blank after trimming is omitted
// from the request.
func (c *Client) Random(ctx context.Context, tag string) (Quote, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	endpoint := c.RandomURL(tag)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Quote{}, fmt.Errorf("quote: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if ua := strings.TrimSpace(c.userAgent); ua != "" {
		req.Header.Set("User-Agent", ua)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Quote{}, fmt.Errorf("quote: execute request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if err != nil {
		return Quote{}, fmt.Errorf("quote: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Quote{}, buildAPIError(resp.StatusCode, raw)
	}
	return c.contract.Decode(raw)
}

// RandomURL builds the request URL for tag. The endpoint path is absolute,
// so any path on the base URL is replaced.
func (c *Client) RandomURL(tag string) string {
	u := c.baseURL.ResolveReference(&url.URL{Path: randomEndpoint})
	if tag = strings.TrimSpace(tag); tag != "" {
		q := url.Values{}
		q.Set("tag", tag)
		u.RawQuery = q.Encode()
	}
	return u.String()
}

func parseBaseURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = DefaultBaseURL
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("quote: parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, raw)
	}
	return u, nil
}

func buildDefaultUserAgent() string {
	return fmt.Sprintf("%s/%s (Go%s; %s/%s)",
		userAgentProduct, userAgentVersion, strings.TrimPrefix(runtime.Version(), "go"), runtime.GOOS, runtime.GOARCH)
}
