package testkit

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// Upstream is a fake government API keyed by request path
// unknown paths answer 404 and every request is recorded
type Upstream struct {
	*httptest.Server

	mu     sync.Mutex
	routes map[string]http.HandlerFunc
	hits   []string
}

// NewUpstream starts a fake upstream that is closed on test cleanup
func NewUpstream(t *testing.T) *Upstream {
	t.Helper()
	u := &Upstream{routes: map[string]http.HandlerFunc{}}
	u.Server = httptest.NewServer(http.HandlerFunc(u.serve))
	t.Cleanup(u.Close)
	return u
}

// Handle installs h for an exact path
func (u *Upstream) Handle(path string, h http.HandlerFunc) *Upstream {
	u.mu.Lock()
	u.routes[path] = h
	u.mu.Unlock()
	return u
}

// JSON answers path with status and body as application/json
func (u *Upstream) JSON(path string, status int, body string) *Upstream {
	return u.Handle(path, Respond(status, "application/json; charset=utf-8", body))
}

// XML answers path with status and body as application/xml
func (u *Upstream) XML(path string, status int, body string) *Upstream {
	return u.Handle(path, Respond(status, "application/xml", body))
}

// Hits returns the recorded request URIs in arrival order
func (u *Upstream) Hits() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]string(nil), u.hits...)
}

// Count returns how many requests hit path
func (u *Upstream) Count(path string) int {
	u.mu.Lock()
	defer u.mu.Unlock()
	n := 0
	for _, h := range u.hits {
		if h == path || (len(h) > len(path) && h[:len(path)] == path && h[len(path)] == '?') {
			n++
		}
	}
	return n
}

func (u *Upstream) serve(w http.ResponseWriter, r *http.Request) {
	u.mu.Lock()
	u.hits = append(u.hits, r.URL.RequestURI())
	h, ok := u.routes[r.URL.Path]
	u.mu.Unlock()
	if !ok {
		http.NotFound(w, r)
		return
	}
	h(w, r)
}

// Respond builds a handler with a fixed status, content type and body
func Respond(status int, contentType, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}
