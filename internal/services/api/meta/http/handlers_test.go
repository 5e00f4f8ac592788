package http

import (
	"context"
	"encoding/json"
	"errors"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"engagegov/internal/platform/config"
	phttp "engagegov/internal/platform/net/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type checkFunc func(context.Context) error

func (f checkFunc) Health(ctx context.Context) error { return f(ctx) }

func serve(t *testing.T, d Deps, target string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	r := phttp.NewServer(config.New()).Router()
	Register(r, d)
	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, target, nil))
	var env map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func TestHealthAndVersion(t *testing.T) {
	d := Deps{StartedAt: time.Now().Add(-time.Minute)}

	rec, env := serve(t, d, "/health")
	assert.Equal(t, stdhttp.StatusOK, rec.Code)
	data := env["data"].(map[string]any)
	assert.Equal(t, "engagegov-api", data["service"])
	assert.GreaterOrEqual(t, data["uptime"].(float64), 59.0)

	rec, env = serve(t, d, "/version")
	assert.Equal(t, stdhttp.StatusOK, rec.Code)
	assert.Equal(t, "dev", env["data"].(map[string]any)["version"])
}

func TestReady(t *testing.T) {
	rec, _ := serve(t, Deps{}, "/ready")
	assert.Equal(t, stdhttp.StatusOK, rec.Code)

	ok := Deps{Checks: map[string]Checker{"redis": checkFunc(func(context.Context) error { return nil })}}
	rec, _ = serve(t, ok, "/ready")
	assert.Equal(t, stdhttp.StatusOK, rec.Code)

	down := Deps{Checks: map[string]Checker{"redis": checkFunc(func(context.Context) error { return errors.New("refused") })}}
	rec, env := serve(t, down, "/ready")
	assert.Equal(t, stdhttp.StatusServiceUnavailable, rec.Code)
	data := env["data"].(map[string]any)
	assert.Equal(t, "fail", data["status"])
	check := data["checks"].([]any)[0].(map[string]any)
	assert.Equal(t, "redis", check["name"])
	assert.Equal(t, "refused", check["error"])
}
