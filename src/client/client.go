package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"subtrack/src/models"
)

// StatusError is returned by the load methods for non-2xx responses.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Code, e.Body)
}

// Client talks to the subscription API.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithToken sends tok as a bearer token on every request.
func WithToken(tok string) Option {
	return func(c *Client) { c.token = tok }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Metrics(ctx context.Context) (*models.MetricsSummary, error) {
	var out models.MetricsSummary
	if err := c.getJSON(ctx, "/api/metrics", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Subscriptions(ctx context.Context) ([]models.Subscription, error) {
	var out []models.Subscription
	if err := c.getJSON(ctx, "/api/subscriptions", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Renewals(ctx context.Context) ([]models.RenewalEntry, error) {
	var out []models.RenewalEntry
	if err := c.getJSON(ctx, "/api/renewals", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateSubscription posts req and succeeds on any JSON response, whatever
// its status. An error body surfaces as APIResponse.Error when it is a string.
func (c *Client) CreateSubscription(ctx context.Context, req models.CreateSubscriptionRequest) (*models.APIResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode subscription: %w", err)
	}
	resp, err := c.do(ctx, http.MethodPost, "/api/subscriptions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode create response (status %d): %w", resp.StatusCode, err)
	}
	// Any JSON value is accepted; fields are read only when they fit.
	var out models.APIResponse
	_ = json.Unmarshal(raw, &out)
	return &out, nil
}

// DeleteSubscription succeeds once any response arrives, whatever its status.
func (c *Client) DeleteSubscription(ctx context.Context, id int64) error {
	resp, err := c.do(ctx, http.MethodDelete, "/api/subscriptions/"+strconv.FormatInt(id, 10), nil)
	if err != nil {
		return err
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{Method: http.MethodGet, Path: path, Code: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	return resp, nil
}
