package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/ttportal/internal/logger"
	"github.com/dtroode/ttportal/internal/model"
)

// RequestIDHeader carries a per-request correlation id.
const RequestIDHeader = "X-Request-ID"

// requestID stamps every outgoing request with a fresh correlation id.
type requestID struct {
	next http.RoundTripper
}

func (t requestID) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get(RequestIDHeader) != "" {
		return t.next.RoundTrip(req)
	}
	r := req.Clone(req.Context())
	r.Header.Set(RequestIDHeader, uuid.NewString())
	return t.next.RoundTrip(r)
}

// bearer attaches the session token when a session exists.
type bearer struct {
	next    http.RoundTripper
	session model.SessionProvider
}

func (t bearer) RoundTrip(req *http.Request) (*http.Response, error) {
	token := t.session.Token()
	if token == "" {
		return t.next.RoundTrip(req)
	}
	r := req.Clone(req.Context())
	r.Header.Set("Authorization", "Bearer "+token)
	return t.next.RoundTrip(r)
}

// logging records method, path, status and duration of each request.
type logging struct {
	next   http.RoundTripper
	logger *logger.Logger
}

func (t logging) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	t.logger.Debug("API client: request started",
		"method", req.Method,
		"path", req.URL.Path,
		"request_id", req.Header.Get(RequestIDHeader))

	resp, err := t.next.RoundTrip(req)
	duration := time.Since(start)

	if err != nil {
		t.logger.Error("API client: request failed",
			"method", req.Method,
			"path", req.URL.Path,
			"request_id", req.Header.Get(RequestIDHeader),
			"duration_ms", duration.Milliseconds(),
			"error", err.Error())
		return nil, err
	}

	t.logger.Info("API client: request completed",
		"method", req.Method,
		"path", req.URL.Path,
		"request_id", req.Header.Get(RequestIDHeader),
		"duration_ms", duration.Milliseconds(),
		"status", resp.StatusCode)

	return resp, nil
}

// noSession is used when the client is created without a session provider.
type noSession struct{}

func (noSession) Current() (model.Session, bool) { return model.Session{}, false }
func (noSession) Token() string                  { return "" }
func (noSession) Invalidate()                    {}
