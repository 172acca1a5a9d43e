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
	"go.uber.org/zap"
)

const requestIDHeader = "X-Request-Id"

// Client is the single place that knows the API base address.
// Auth and LostItems group the endpoints the way the screens use them.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
	token   func() string

	Auth      *AuthAPI
	LostItems *LostItemAPI
}

type Option func(*Client)

// WithHTTPClient swaps the transport. The default has no timeout of its own.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithToken supplies the bearer token for each request; an empty string
// sends no Authorization header.
func WithToken(fn func() string) Option {
	return func(c *Client) { c.token = fn }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		log:     zap.NewNop(),
		token:   func() string { return "" },
	}
	for _, o := range opts {
		o(c)
	}
	c.Auth = &AuthAPI{c: c}
	c.LostItems = &LostItemAPI{c: c}
	return c
}

// BaseURL returns the configured API root without a trailing slash.
func (c *Client) BaseURL() string { return c.baseURL }

// do performs one exchange and returns the body of a 2xx response.
// Anything else becomes *Error. There are no retries.
func (c *Client) do(ctx context.Context, method, path string, in any) ([]byte, error) {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	rid := uuid.NewString()
	req.Header.Set(requestIDHeader, rid)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	log := c.log.With(
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", rid),
	)
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.Error("request failed", zap.Duration("duration", time.Since(start)), zap.Error(err))
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("read body failed", zap.Int("status", resp.StatusCode), zap.Error(err))
		return nil, fmt.Errorf("read %s %s: %w", method, path, err)
	}

	log = log.With(zap.Int("status", resp.StatusCode), zap.Duration("duration", time.Since(start)))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := newError(resp.StatusCode, rid, raw)
		log.Warn("api returned error", zap.String("code", apiErr.Code), zap.String("message", apiErr.Message))
		return nil, apiErr
	}
	log.Debug("api ok")
	return raw, nil
}

// envelope is the backend's ApiResponse wrapper. Some endpoints return it,
// others return the payload bare.
type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
}

// unwrap returns the payload inside an envelope, or raw itself when the
// body is not enveloped.
func unwrap(raw []byte) json.RawMessage {
	t := bytes.TrimSpace(raw)
	if len(t) == 0 || t[0] != '{' {
		return t
	}
	var env envelope
	if err := json.Unmarshal(t, &env); err != nil || env.Success == nil {
		return t
	}
	return env.Data
}
