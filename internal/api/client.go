package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/dtroode/ttportal/internal/config"
	"github.com/dtroode/ttportal/internal/logger"
	"github.com/dtroode/ttportal/internal/model"
)

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 10 << 20

// Client talks to the tournament backend.
type Client struct {
	baseURL string
	timeout time.Duration
	http    *http.Client
	session model.SessionProvider
	logger  *logger.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithTransport replaces the base HTTP transport.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.http.Transport = rt
	}
}

// NewClient creates a new backend client. session may be nil for
// unauthenticated use.
func NewClient(cfg config.API, session model.SessionProvider, logger *logger.Logger, opts ...Option) *Client {
	if session == nil {
		session = noSession{}
	}

	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		timeout: cfg.RequestTimeout,
		http:    &http.Client{Transport: http.DefaultTransport},
		session: session,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.http.Transport = requestID{
		next: logging{
			next:   bearer{next: c.http.Transport, session: session},
			logger: logger,
		},
	}

	return c
}

// envelope is the response shape shared by all backend endpoints.
type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// response is a decoded backend answer.
type response struct {
	status int
	env    envelope
	body   []byte
}

func (c *Client) doJSON(ctx context.Context, method, path string, in any) (*response, error) {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}
	return c.do(ctx, method, path, body, "application/json")
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string) (*response, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", contentType)
	}

	authenticated := c.session.Token() != ""

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, transportError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, transportError(err)
	}

	// A failed login is a credentials error, not a dead session.
	if resp.StatusCode == http.StatusUnauthorized && authenticated && path != pathUsersLogin {
		c.session.Invalidate()
	}

	out := &response{status: resp.StatusCode, body: raw}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := httpStatusMessage(resp.StatusCode)
		if err := json.Unmarshal(raw, &out.env); err == nil && out.env.Message != "" {
			msg = out.env.Message
		}
		return nil, &Error{Kind: KindServer, Status: resp.StatusCode, Message: msg}
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out.env); err != nil {
		return nil, &Error{Kind: KindDecode, Status: resp.StatusCode, Err: err}
	}
	if out.env.Success != nil && !*out.env.Success {
		msg := out.env.Message
		if msg == "" {
			msg = httpStatusMessage(resp.StatusCode)
		}
		return nil, &Error{Kind: KindServer, Status: resp.StatusCode, Message: msg}
	}

	return out, nil
}

// decode unmarshals the envelope data into out. Missing data leaves out untouched.
func (r *response) decode(out any) error {
	data := bytes.TrimSpace(r.env.Data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &Error{Kind: KindDecode, Status: r.status, Err: err}
	}
	return nil
}

func transportError(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &Error{Kind: KindTimeout, Message: "request timed out", Err: err}
	}
	return &Error{Kind: KindNetwork, Err: err}
}

var (
	_ model.UserAPI       = (*Client)(nil)
	_ model.TournamentAPI = (*Client)(nil)
	_ model.PaymentAPI    = (*Client)(nil)
	_ model.BracketAPI    = (*Client)(nil)
)
