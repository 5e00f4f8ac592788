package middleware_test

import (
	"compress/flate"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	perr "engagegov/internal/platform/errors"
	pnet "engagegov/internal/platform/net"
	"engagegov/internal/platform/net/middleware"
)

func TestRequestID_PropagatesToContextAndHeader(t *testing.T) {
	var seen string
	h := middleware.RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = pnet.RequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "abc-1")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if seen != "abc-1" {
		t.Fatalf("handler saw request id %q", seen)
	}
	if got := rr.Header().Get("X-Request-Id"); got != "abc-1" {
		t.Fatalf("response header = %q", got)
	}
}

func TestRequestID_GeneratedWhenMissing(t *testing.T) {
	var seen string
	h := middleware.RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = pnet.RequestID(r.Context())
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if seen == "" {
		t.Fatal("expected a generated request id")
	}
}

func TestRecoverJSON(t *testing.T) {
	h := middleware.RecoverJSON(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rr.Code)
	}
	var body struct {
		Code  string `json:"code"`
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Code != perr.ErrorCodePanic.String() || body.Error == "" {
		t.Fatalf("unexpected body %s", rr.Body.String())
	}
}

func TestAccessLog_PassesThrough(t *testing.T) {
	cases := []struct {
		name   string
		status int
		opt    middleware.AccessLogOptions
	}{
		{"ok", http.StatusOK, middleware.AccessLogOptions{}},
		{"slow", http.StatusOK, middleware.AccessLogOptions{Slow: time.Nanosecond}},
		{"server error", http.StatusBadGateway, middleware.AccessLogOptions{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := middleware.AccessLog(tc.opt)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = io.WriteString(w, "body")
			}))
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/x?source=camara", nil))
			if rr.Code != tc.status || rr.Body.String() != "body" {
				t.Fatalf("got %d %q", rr.Code, rr.Body.String())
			}
		})
	}
}

func TestCORS_ReadOnlyMethods(t *testing.T) {
	h := middleware.CORS(middleware.CORSOptions{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://example.org")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Fatalf("GET preflight should be allowed, headers=%v", rr.Header())
	}

	req = httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://example.org")
	req.Header.Set("Access-Control-Request-Method", http.MethodDelete)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Fatal("DELETE preflight should be refused")
	}
}

func TestCompress(t *testing.T) {
	h := middleware.Compress(flate.BestSpeed)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `"`+strings.Repeat("a", 4<<10)+`"`)
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Header().Get("Content-Encoding") == "" {
		t.Fatal("expected compressed response")
	}
}

func TestWrappers_NonNil(t *testing.T) {
	if middleware.RealIP() == nil || middleware.Timeout(time.Second) == nil || middleware.NoCache() == nil ||
		middleware.StripSlashes() == nil || middleware.Throttle(4) == nil || middleware.Heartbeat("/ping") == nil {
		t.Fatal("nil middleware")
	}
}
