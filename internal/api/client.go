// Package api is a typed client for the vehicle collection resource and the
// session endpoints next to it. The backend owns storage and authorization;
// this package only speaks its HTTP contract.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultResourcePath is where the collection lives relative to the base URL.
	DefaultResourcePath = "/vehicles"

	requestIDHeader = "X-Request-ID"
	maxBodyBytes    = 4 << 20
)

// Client talks to one backend. It is safe for concurrent use.
type Client struct {
	base     *url.URL
	resource string
	http     *http.Client
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout bounds every request. Zero leaves requests unbounded.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		hc := *c.http
		hc.Timeout = d
		c.http = &hc
	}
}

// New builds a client for baseURL. resourcePath defaults to /vehicles.
func New(baseURL, resourcePath string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(strings.TrimSpace(baseURL), "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q needs a scheme and host", baseURL)
	}
	resourcePath = strings.TrimSpace(resourcePath)
	if resourcePath == "" {
		resourcePath = DefaultResourcePath
	}
	c := &Client{
		base:     u,
		resource: "/" + strings.Trim(resourcePath, "/"),
		http:     &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the backend address the client was built with.
func (c *Client) BaseURL() string { return c.base.String() }

// List fetches the collection, optionally narrowed by favorite flag on the
// server. Order is the server's.
func (c *Client) List(ctx context.Context, filter FavoriteFilter) ([]Vehicle, error) {
	q := url.Values{}
	if v, ok := filter.queryValue(); ok {
		q.Set("favorite", v)
	}
	var out []Vehicle
	if err := c.do(ctx, "list vehicles", http.MethodGet, c.resource, q, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []Vehicle{}
	}
	return out, nil
}

// Get fetches a single record.
func (c *Client) Get(ctx context.Context, id int64) (Vehicle, error) {
	var out Vehicle
	err := c.do(ctx, "get vehicle", http.MethodGet, c.itemPath(id), nil, nil, &out)
	return out, err
}

// Create posts a new record and returns it with its server-assigned id.
func (c *Client) Create(ctx context.Context, v NewVehicle) (Vehicle, error) {
	var out Vehicle
	err := c.do(ctx, "create vehicle", http.MethodPost, c.resource, nil, v, &out)
	return out, err
}

// Delete removes a record.
func (c *Client) Delete(ctx context.Context, id int64) (DeleteResult, error) {
	var out DeleteResult
	err := c.do(ctx, "delete vehicle", http.MethodDelete, c.itemPath(id), nil, nil, &out)
	return out, err
}

// ToggleFavorite asks the server to invert the record's favorite flag. The
// returned record carries whatever value the server settled on.
func (c *Client) ToggleFavorite(ctx context.Context, id int64) (Vehicle, error) {
	var out Vehicle
	err := c.do(ctx, "toggle favorite", http.MethodPatch, c.itemPath(id)+"/favorite", nil, nil, &out)
	return out, err
}

// Login exchanges credentials for the user's identity.
func (c *Client) Login(ctx context.Context, creds Credentials) (LoginResult, error) {
	var out LoginResult
	err := c.do(ctx, "login", http.MethodPost, "/login", nil, creds, &out)
	return out, err
}

// Logout notifies the backend. Callers treat failures as best effort.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, "logout", http.MethodPost, "/logout", nil, nil, nil)
}

func (c *Client) itemPath(id int64) string {
	return c.resource + "/" + strconv.FormatInt(id, 10)
}

func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body, out any) error {
	u := c.base.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode body: %w", op, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, reqID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.Printf("[api] %s %s id=%s failed: %v", method, u.Path, reqID, err)
		return &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		log.Printf("[api] %s %s id=%s read body: %v", method, u.Path, reqID, err)
		return &NetworkError{Op: op, Err: err}
	}
	log.Printf("[api] %s %s id=%s status=%d took=%s", method, u.Path, reqID, resp.StatusCode, time.Since(started).Round(time.Millisecond))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &ServerError{Op: op, Status: resp.StatusCode, Detail: errorDetail(data)}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &DecodeError{Op: op, Err: err}
	}
	return nil
}

// errorDetail pulls a human message from an error body. FastAPI-style
// backends send either {"detail": "..."} or a list of {"msg": "..."} entries
// for request validation failures.
func errorDetail(data []byte) string {
	var body struct {
		Detail  json.RawMessage `json:"detail"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	if len(body.Detail) > 0 {
		var s string
		if err := json.Unmarshal(body.Detail, &s); err == nil {
			return strings.TrimSpace(s)
		}
		var items []struct {
			Msg string `json:"msg"`
		}
		if err := json.Unmarshal(body.Detail, &items); err == nil {
			msgs := make([]string, 0, len(items))
			for _, it := range items {
				if m := strings.TrimSpace(it.Msg); m != "" {
					msgs = append(msgs, m)
				}
			}
			return strings.Join(msgs, "; ")
		}
	}
	return strings.TrimSpace(body.Message)
}
