// Package api is the HTTP client of the game backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"LegacyGuardians/internal/model"
)

// Backend endpoints. Every one of them answers with a full GameState.
const (
	EndpointGameState     = "/api/game_state"
	EndpointPerformAction = "/api/perform_action"
	EndpointAdvanceLevel  = "/api/advance_level"
	EndpointReset         = "/api/reset"
)

// DefaultBaseURL is where the backend listens when run locally.
const DefaultBaseURL = "http://127.0.0.1:5002"

// RequestIDHeader carries the id that ties a request to its trace entry.
const RequestIDHeader = "X-Request-ID"

// Client talks to one backend. BaseURL is fixed for the client's lifetime.
type Client struct {
	BaseURL string
	Client  *http.Client
}

// NewClient creates a client for the backend at baseURL. Proxies come from
// the environment, so a loopback backend is always reached directly. A zero
// timeout waits for the backend indefinitely.
func NewClient(baseURL string, timeout time.Duration) *Client {
	transport := &http.Transport{Proxy: http.ProxyFromEnvironment}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

type requestIDKey struct{}

// WithRequestID attaches the id Call sends in the X-Request-ID header.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the id attached by WithRequestID.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// Call sends one request and decodes the GameState the backend answers
// with. A non-2xx answer is an *AppError; everything else that keeps a
// GameState from arriving is a *TransportError.
func (c *Client) Call(ctx context.Context, method, endpoint string, body any) (*model.GameState, error) {
	op := method + " " + endpoint

	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%s: encode body: %w", op, err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+endpoint, payload)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	id := RequestID(ctx)
	if id == "" {
		id = uuid.NewString()
	}
	req.Header.Set(RequestIDHeader, id)

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: op, Err: fmt.Errorf("read body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &AppError{Status: resp.StatusCode, Message: errorMessage(data)}
	}

	var state model.GameState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, &TransportError{Op: op, Err: fmt.Errorf("decode game state: %w", err)}
	}
	return &state, nil
}

// GameState fetches the current state without changing it.
func (c *Client) GameState(ctx context.Context) (*model.GameState, error) {
	return c.Call(ctx, http.MethodGet, EndpointGameState, nil)
}

// PerformAction applies one in-level action.
func (c *Client) PerformAction(ctx context.Context, action model.ActionRequest) (*model.GameState, error) {
	return c.Call(ctx, http.MethodPost, EndpointPerformAction, action)
}

// AdvanceLevel moves to the next level once the goal is met.
func (c *Client) AdvanceLevel(ctx context.Context) (*model.GameState, error) {
	return c.Call(ctx, http.MethodPost, EndpointAdvanceLevel, nil)
}

// Reset restarts the game from level 1.
func (c *Client) Reset(ctx context.Context) (*model.GameState, error) {
	return c.Call(ctx, http.MethodPost, EndpointReset, nil)
}

func errorMessage(body []byte) string {
	var result struct {
		Error any `json:"error"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return UnknownError
	}
	if msg, ok := result.Error.(string); ok && msg != "" {
		return msg
	}
	return UnknownError
}
