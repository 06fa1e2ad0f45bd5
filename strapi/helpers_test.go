package strapi

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// recordedRequest is one call the fake CMS received.
type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Header http.Header
	Body   []byte
}

// fakeCMS is an httptest server that records every request and answers
// through respond, which gets the 1-based call number.
type fakeCMS struct {
	srv      *httptest.Server
	mu       sync.Mutex
	requests []recordedRequest
}

func newFakeCMS(t *testing.T, respond func(w http.ResponseWriter, r *http.Request, body []byte, call int)) *fakeCMS {
	t.Helper()
	f := &fakeCMS{}
	f.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		f.requests = append(f.requests, recordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Header: r.Header.Clone(),
			Body:   body,
		})
		call := len(f.requests)
		f.mu.Unlock()
		respond(w, r, body, call)
	}))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeCMS) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func (f *fakeCMS) request(i int) recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[i]
}

func (f *fakeCMS) client(t *testing.T, token string) *Client {
	t.Helper()
	c, err := NewClient(Config{BaseURL: f.srv.URL, Token: token})
	require.NoError(t, err)
	return c
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

const validationErrorBody = `{"data":null,"error":{"status":400,"name":"ValidationError","message":"Invalid content"}}`

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}
