// Package client is a typed Go client for the todos HTTP API.
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
	"sync"

	"github.com/mesh-intelligence/todos/pkg/types"
)

// DefaultBaseURL is the address `todos serve` listens on by default.
const DefaultBaseURL = "http://localhost:3001"

// APIError is returned when the server answers with a non-2xx status or a
// success:false envelope.
type APIError struct {
	StatusCode int
	Message    string
	Detail     string // raw "error" field, if any
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Detail
	}
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("HTTP error! status: %d: %s", e.StatusCode, msg)
}

// Client talks to one todos server. The bearer token is guarded so commands
// running in other goroutines can read it while the owner replaces it.
type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithToken sets the initial bearer token.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// New returns a Client for baseURL. An empty baseURL means DefaultBaseURL.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the server address the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// Token returns the current bearer token.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// SetToken replaces the bearer token. An empty token sends no
// Authorization header.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// Login posts the credentials and, on success, stores and returns the token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var env types.Envelope
	req := types.LoginRequest{Username: username, Password: password}
	if err := c.do(ctx, http.MethodPost, "/login", req, &env); err != nil {
		return "", err
	}
	c.SetToken(env.Token)
	return env.Token, nil
}

// ListItems fetches every item.
func (c *Client) ListItems(ctx context.Context) ([]types.Item, error) {
	var env types.ListEnvelope
	if err := c.do(ctx, http.MethodGet, "/items", nil, &env); err != nil {
		return nil, err
	}
	if env.Data == nil {
		env.Data = []types.Item{}
	}
	return env.Data, nil
}

// CreateItem creates an item and returns its id.
func (c *Client) CreateItem(ctx context.Context, title string) (int64, error) {
	var env types.Envelope
	if err := c.do(ctx, http.MethodPost, "/items", types.CreateItemRequest{Title: title}, &env); err != nil {
		return 0, err
	}
	return env.ID, nil
}

// UpdateItem overwrites the title and completed flag of item id.
func (c *Client) UpdateItem(ctx context.Context, id int64, title string, completed bool) error {
	req := types.UpdateItemRequest{Title: title, Completed: &completed}
	return c.do(ctx, http.MethodPut, itemPath(id), req, nil)
}

// DeleteItem removes item id.
func (c *Client) DeleteItem(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, itemPath(id), nil, nil)
}

func itemPath(id int64) string {
	return "/items/" + strconv.FormatInt(id, 10)
}

// do sends one request and decodes the envelope into out (which may be nil).
// Any non-2xx status or success:false envelope becomes an *APIError.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rdr io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		rdr = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var env types.Envelope
	envErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if envErr == nil {
			apiErr.Message = env.Message
			apiErr.Detail = env.Error
		}
		return apiErr
	}
	if envErr != nil {
		return fmt.Errorf("decode response: %w", envErr)
	}
	if !env.Success {
		return &APIError{StatusCode: resp.StatusCode, Message: env.Message, Detail: env.Error}
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
