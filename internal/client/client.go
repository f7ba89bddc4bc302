// Package client talks to the dashboard API through the {success,data,meta}
// envelope. With WithMockFallback the requests that the backend cannot answer
// are served from an in-memory store instead.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"BoutiqueAdmin/internal/mockapi"
	"BoutiqueAdmin/pkg/kit"
)

const (
	defaultTimeout = 5 * time.Second
	maxRespBytes   = 4 << 20
)

// Envelope is a decoded response. Data stays raw until a typed caller
// decodes it.
type Envelope struct {
	Success bool              `json:"success"`
	Data    json.RawMessage   `json:"data,omitempty"`
	Meta    *mockapi.PageMeta `json:"meta,omitempty"`
	Error   *kit.ErrorBody    `json:"error,omitempty"`

	// Mocked is set when the response came from the mock fallback.
	Mocked bool `json:"-"`
}

// APIError is a non-2xx response.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("api error: status=%d", e.Status)
	}
	return fmt.Sprintf("api error: status=%d code=%s: %s", e.Status, e.Code, e.Message)
}

var ErrBadResponse = errors.New("malformed api response")

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

type options struct {
	hc            *http.Client
	log           *zap.Logger
	mock          *mockapi.Store
	fallbackOn5xx bool
}

type Option func(*options)

func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) { o.hc = hc }
}

func WithLogger(log *zap.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithMockFallback wraps the client's transport so that requests failing at
// the transport level are answered by a mock route table over store. The
// table is mounted at the base URL's path.
func WithMockFallback(store *mockapi.Store, fallbackOn5xx bool) Option {
	return func(o *options) {
		o.mock = store
		o.fallbackOn5xx = fallbackOn5xx
	}
}

// New builds a client for baseURL, e.g. "http://localhost:8000/api".
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("client: base url %q is not absolute", baseURL)
	}

	o := options{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	hc := o.hc
	if hc == nil {
		hc = &http.Client{Timeout: defaultTimeout}
	}
	if o.mock != nil {
		// Copy so a caller's shared client keeps its own transport.
		wrapped := *hc
		routes := mockapi.NewRoutes(o.mock, mockapi.HandlerDeps{Log: o.log, BasePath: u.Path})
		tr := mockapi.NewTransport(hc.Transport, routes, o.log)
		tr.FallbackOn5xx = o.fallbackOn5xx
		wrapped.Transport = tr
		hc = &wrapped
	}

	return &Client{BaseURL: strings.TrimRight(baseURL, "/"), HTTP: hc}, nil
}

func (c *Client) Get(ctx context.Context, path string, params url.Values) (Envelope, error) {
	if len(params) > 0 {
		path += "?" + params.Encode()
	}
	return c.do(ctx, http.MethodGet, path, nil)
}

func (c *Client) Post(ctx context.Context, path string, body any) (Envelope, error) {
	return c.do(ctx, http.MethodPost, path, body)
}

func (c *Client) Put(ctx context.Context, path string, body any) (Envelope, error) {
	return c.do(ctx, http.MethodPut, path, body)
}

func (c *Client) Delete(ctx context.Context, path string) (Envelope, error) {
	return c.do(ctx, http.MethodDelete, path, nil)
}

// do sends one request. path must already be escaped; Resource does that for
// ids.
func (c *Client) do(ctx context.Context, method, path string, body any) (Envelope, error) {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return Envelope{}, fmt.Errorf("encode body: %w", err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, rd)
	if err != nil {
		return Envelope{}, err
	}
	req.Header.Set("Accept", "application/json")
	if rd != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return Envelope{}, err
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxRespBytes))
	if err != nil {
		return Envelope{}, err
	}

	var env Envelope
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil && resp.StatusCode < 300 {
			return Envelope{}, fmt.Errorf("%w: %v", ErrBadResponse, err)
		}
	}
	env.Mocked = resp.Header.Get(kit.SourceHeader) == "true"

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return env, responseError(resp.StatusCode, env)
	}
	return env, nil
}

func responseError(status int, env Envelope) error {
	if env.Error == nil {
		return &APIError{Status: status}
	}
	if status == http.StatusNotFound && env.Error.Entity != "" {
		return &mockapi.NotFoundError{Entity: env.Error.Entity, ID: env.Error.ID}
	}
	return &APIError{Status: status, Code: env.Error.Code, Message: env.Error.Message}
}
