// Package client is a Go client for the aggregation API, used by cmd/quotectl.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	request "insurance_quotes/internal/adapter/http/dto/request"
	response "insurance_quotes/internal/adapter/http/dto/response"
	"insurance_quotes/internal/adapter/http/handlers"
	"insurance_quotes/pkg"
)

const (
	DefaultPollInterval = 2 * time.Second
	DefaultWaitTimeout  = 60 * time.Second
)

// APIError is a non-2xx answer decoded from the server's error body.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("api returned %d", e.StatusCode)
	}
	return fmt.Sprintf("api returned %d: %s: %s", e.StatusCode, e.Code, e.Message)
}

type Client struct {
	baseURL      *url.URL
	http         *http.Client
	pollInterval time.Duration
	waitTimeout  time.Duration
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithPollInterval(d time.Duration) Option {
	return func(c *Client) { c.pollInterval = d }
}

func WithWaitTimeout(d time.Duration) Option {
	return func(c *Client) { c.waitTimeout = d }
}

// New expects the API base including the version prefix, e.g.
// http://localhost:8080/v1.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url must be http or https, got %q", baseURL)
	}
	c := &Client{
		baseURL:      u,
		http:         &http.Client{Timeout: 15 * time.Second},
		pollInterval: DefaultPollInterval,
		waitTimeout:  DefaultWaitTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) Submit(ctx context.Context, category string, payload map[string]any) (response.SubmitAggregationResponse, error) {
	var out response.SubmitAggregationResponse
	body := request.SubmitAggregationRequest{Category: category, Payload: payload}
	err := c.do(ctx, http.MethodPost, "", nil, body, &out, "aggregations")
	return out, err
}

func (c *Client) Progress(ctx context.Context, id, token string) (response.ProgressResponse, error) {
	var out response.ProgressResponse
	err := c.do(ctx, http.MethodGet, token, nil, nil, &out, "aggregations", id, "progress")
	return out, err
}

func (c *Client) Quotes(ctx context.Context, id, token string) ([]response.ScoredQuoteResponse, error) {
	var out []response.ScoredQuoteResponse
	err := c.do(ctx, http.MethodGet, token, nil, nil, &out, "aggregations", id, "quotes")
	return out, err
}

func (c *Client) Providers(ctx context.Context, category string) ([]response.ProviderResponse, error) {
	var out []response.ProviderResponse
	var query url.Values
	if category != "" {
		query = url.Values{"category": {category}}
	}
	err := c.do(ctx, http.MethodGet, "", query, nil, &out, "providers")
	return out, err
}

func (c *Client) do(ctx context.Context, method, token string, query url.Values, in, out any, path ...string) error {
	target := c.baseURL.JoinPath(path...)
	target.RawQuery = query.Encode()

	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(handlers.AccessTokenHeader, token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var httpErr pkg.HTTPError
		if json.Unmarshal(raw, &httpErr) == nil {
			apiErr.Code = httpErr.Code
			apiErr.Message = httpErr.Message
		}
		return apiErr
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s response: %w", target.Path, err)
	}
	return nil
}
