package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// RecordedRequest is a request seen by Backend.
type RecordedRequest struct {
	Method string
	Path   string
	Header http.Header
	Body   []byte
}

// Backend is a fake tournament backend for client tests.
type Backend struct {
	*httptest.Server

	mux *http.ServeMux

	mu       sync.Mutex
	requests []RecordedRequest
}

// NewBackend starts a fake backend that is closed with the test.
// URL() returns the base to configure as API base URL.
func NewBackend(t *testing.T) *Backend {
	t.Helper()

	b := &Backend{mux: http.NewServeMux()}
	b.Server = httptest.NewServer(http.HandlerFunc(b.serve))
	t.Cleanup(b.Close)

	return b
}

func (b *Backend) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	_ = r.Body.Close()

	b.mu.Lock()
	b.requests = append(b.requests, RecordedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Header: r.Header.Clone(),
		Body:   body,
	})
	b.mu.Unlock()

	r.Body = io.NopCloser(bytes.NewReader(body))
	b.mux.ServeHTTP(w, r)
}

// URL returns the API base URL of the backend.
func (b *Backend) URL() string {
	return b.Server.URL + "/api"
}

// Handle registers a handler for a method and path below /api,
// e.g. Handle("GET", "/users", h).
func (b *Backend) Handle(method, path string, h http.HandlerFunc) {
	b.mux.HandleFunc(method+" /api"+path, h)
}

// Requests returns the requests received so far.
func (b *Backend) Requests() []RecordedRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]RecordedRequest(nil), b.requests...)
}

// Count returns how many requests hit method and path.
func (b *Backend) Count(method, path string) int {
	n := 0
	for _, r := range b.Requests() {
		if r.Method == method && r.Path == "/api"+path {
			n++
		}
	}
	return n
}

// OK responds with a success envelope around data.
func OK(data any) http.HandlerFunc {
	return Envelope(http.StatusOK, true, data, "")
}

// Fail responds with status and a failure envelope carrying message.
func Fail(status int, message string) http.HandlerFunc {
	return Envelope(status, false, nil, message)
}

// Envelope responds with a backend envelope.
func Envelope(status int, success bool, data any, message string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		WriteJSON(w, status, map[string]any{
			"success": success,
			"data":    data,
			"message": message,
		})
	}
}

// WriteJSON writes v as a JSON response.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
