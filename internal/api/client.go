package api

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

	"github.com/bloops-games/achievements/internal/bytespool"
	"github.com/bloops-games/achievements/internal/logging"
	"github.com/google/uuid"
)

const (
	headerRequestID = "X-Request-ID"
	// Upper bound of a response body the client reads
	maxBodySize = 4 << 20
)

type Config struct {
	// Base URL of the achievements backend
	URL string `envconfig:"ACHIEVEMENTS_API_URL" default:"http://localhost:8000"`

	// Timeout of a single backend call
	Timeout time.Duration `envconfig:"ACHIEVEMENTS_API_TIMEOUT" default:"10s"`
}

type Client struct {
	baseURL string
	http    *http.Client
	debug   bool
}

type Option func(*Client)

// WithDebug logs every request and response status.
func WithDebug(debug bool) Option {
	return func(cl *Client) {
		cl.debug = debug
	}
}

func New(config Config, opts ...Option) (*Client, error) {
	u, err := url.Parse(config.URL)
	if err != nil {
		return nil, fmt.Errorf("parse api url: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("api url %q: scheme must be http or https", config.URL)
	}

	c := &Client{
		baseURL: strings.TrimRight(config.URL, "/"),
		http:    &http.Client{Timeout: config.Timeout},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// do sends one request and decodes a 2xx JSON body into out. Every failure is an *Error carrying op.
func (c *Client) do(ctx context.Context, op, method, path string, in, out interface{}) error {
	logger := logging.FromContext(ctx).Named("api.Client")

	var body io.Reader
	if in != nil {
		// the transport may read the body after Do returns, so it owns its bytes
		payload, err := json.Marshal(in)
		if err != nil {
			return &Error{Op: op, Err: fmt.Errorf("encode request: %w", err)}
		}

		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &Error{Op: op, Err: fmt.Errorf("new request: %w", err)}
	}

	requestID := uuid.New().String()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(headerRequestID, requestID)

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		logger.Debugw("request failed", "method", method, "path", path, "requestID", requestID, "error", err)
		return &Error{Op: op, Err: fmt.Errorf("%s %s: %w", method, path, err)}
	}

	defer resp.Body.Close()

	if c.debug {
		logger.Debugw("request", "method", method, "path", path, "status", resp.StatusCode,
			"requestID", requestID, "duration", time.Since(started))
	}

	buf := bytespool.Get()
	defer bytespool.Put(buf)

	if _, err := buf.ReadFrom(io.LimitReader(resp.Body, maxBodySize)); err != nil {
		return &Error{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}

	raw := buf.Bytes()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := newStatusError(op, resp.StatusCode, raw)
		logger.Debugw("backend error", "path", path, "status", resp.StatusCode, "detail", apiErr.Detail)
		return apiErr
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return &Error{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}

	return nil
}
