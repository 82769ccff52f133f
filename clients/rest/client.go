// Package rest provides the HTTP client for the SchemeNav conversation API.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/schemenav/schemenav/internal/api"
)

const defaultTimeout = 60 * time.Second

// TransportError is the single failure kind of the conversation protocol.
// It covers network-level failures and non-2xx HTTP statuses alike.
type TransportError struct {
	Op         string // "start", "continue", "status"
	StatusCode int    // 0 when the request never completed
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: unexpected status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Client talks to a SchemeNav server. It is stateless: session identity
// is owned by the caller.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the given base URL.
// A zero timeout falls back to 60s.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// Start opens a new conversation session with the first query.
// The response carries the server-assigned user id.
func (c *Client) Start(ctx context.Context, query string) (api.ExchangeResponse, error) {
	return c.exchange(ctx, "start", "/start", api.StartRequest{UserQuery: query})
}

// Continue adds a follow-up turn to an existing session.
func (c *Client) Continue(ctx context.Context, query, userID string) (api.ExchangeResponse, error) {
	return c.exchange(ctx, "continue", "/continue", api.ContinueRequest{UserQuery: query, UserID: userID})
}

// Status checks server liveness.
func (c *Client) Status(ctx context.Context) (api.StatusResponse, error) {
	var out api.StatusResponse

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/status", nil)
	if err != nil {
		return out, &TransportError{Op: "status", Err: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return out, &TransportError{Op: "status", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return out, &TransportError{Op: "status", StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return out, &TransportError{Op: "status", Err: err}
	}
	return out, nil
}

func (c *Client) exchange(ctx context.Context, op, path string, body any) (api.ExchangeResponse, error) {
	var out api.ExchangeResponse

	data, err := json.Marshal(body)
	if err != nil {
		return out, &TransportError{Op: op, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return out, &TransportError{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return out, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	// Any non-success status is a transport failure, regardless of body.
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return out, &TransportError{Op: op, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return out, &TransportError{Op: op, Err: err}
	}
	return out, nil
}
