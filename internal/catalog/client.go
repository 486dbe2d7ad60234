package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"
)

// Catalog defines the catalogue operations the UI and CLI depend on.
// This interface is implemented by *Client and can be replaced in tests.
type Catalog interface {
	List(ctx context.Context, token, category string) ([]Item, error)
	Search(ctx context.Context, token string, query SearchQuery) ([]Item, error)
	Details(ctx context.Context, token string, item Item) Item
}

// Ensure Client implements Catalog at compile time.
var _ Catalog = (*Client)(nil)

// Client talks to the catalogue HTTP API.
type Client struct {
	baseURL   string
	http      *http.Client
	userAgent string
	logger    *slog.Logger
}

const defaultUserAgent = "cinemaflow/0.1"

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client. The default is a client with no
// timeout of its own.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua = strings.TrimSpace(ua); ua != "" {
			c.userAgent = ua
		}
	}
}

// WithLogger sets the logger used for request tracing and degraded detail fetches.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient builds a Client for the given base endpoint.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	normalized, ok := SafeURL(baseURL)
	if !ok {
		return nil, fmt.Errorf("api base %q is not an absolute http(s) url", baseURL)
	}
	c := &Client{
		baseURL:   normalized,
		http:      &http.Client{},
		userAgent: defaultUserAgent,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalized catalogue endpoint.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Fetch issues one GET request and returns the payload's data field verbatim.
// It fails with *TransportError, *DecodeError or *ApplicationError; transport
// failures below HTTP are wrapped as-is. There are no retries.
func (c *Client) Fetch(ctx context.Context, token string, params Params) (json.RawMessage, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	endpoint, err := BuildURL(c.baseURL, token, params)
	if err != nil {
		return nil, fmt.Errorf("build url: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	c.logger.Debug("catalogue request", "params", describeParams(params))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", redactToken(err))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if !json.Valid(body) {
		var raw json.RawMessage
		return nil, &DecodeError{Err: json.Unmarshal(body, &raw)}
	}
	// A payload that is valid JSON but not an envelope carries no success status.
	if kindOf(body) != "object" {
		return nil, &ApplicationError{}
	}

	var payload struct {
		Status    any             `json:"status"`
		Data      json.RawMessage `json:"data"`
		ErrorInfo any             `json:"error_info"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &DecodeError{Err: err}
	}
	if status, _ := payload.Status.(string); status != "success" {
		message, _ := payload.ErrorInfo.(string)
		return nil, &ApplicationError{Message: strings.TrimSpace(message)}
	}
	return payload.Data, nil
}

// List returns the showcase for a category.
func (c *Client) List(ctx context.Context, token, category string) ([]Item, error) {
	data, err := c.Fetch(ctx, token, Params{ParamList: category})
	if err != nil {
		return nil, err
	}
	return c.normalize(data)
}

// Search looks titles up by name, optional year and optional category.
func (c *Client) Search(ctx context.Context, token string, query SearchQuery) ([]Item, error) {
	data, err := c.Fetch(ctx, token, query.Params())
	if err != nil {
		return nil, err
	}
	return c.normalize(data)
}

func (c *Client) normalize(data json.RawMessage) ([]Item, error) {
	items, err := Normalize(data)
	if err != nil {
		// Partially decodable payloads still render; the bad entries are only logged.
		c.logger.Warn("skipped malformed catalogue entries", "error", err)
	}
	return items, nil
}

// describeParams renders params for logs with keys sorted and blank values dropped.
func describeParams(params Params) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		if k == ParamToken {
			continue
		}
		if _, ok := paramValue(params[k]); ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		v, _ := paramValue(params[k])
		parts = append(parts, k+"="+v)
	}
	return strings.Join(parts, " ")
}

// redactToken masks the token in the URL that net/http embeds in its errors.
func redactToken(err error) error {
	var uerr *url.Error
	if !errors.As(err, &uerr) {
		return err
	}
	u, perr := url.Parse(uerr.URL)
	if perr != nil {
		return uerr.Err
	}
	q := u.Query()
	if q.Has(ParamToken) {
		q.Set(ParamToken, "redacted")
		u.RawQuery = q.Encode()
	}
	return &url.Error{Op: uerr.Op, URL: u.String(), Err: uerr.Err}
}
