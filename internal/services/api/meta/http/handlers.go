// Package http provides meta endpoints
package http

import (
	"context"
	"net/http"
	"time"

	"engagegov/internal/core/version"
	"engagegov/internal/modkit/httpkit"
)

// Checker is satisfied by dependencies that can report health, e.g. the redis client
type Checker interface {
	Health(context.Context) error
}

// Deps are the handler dependencies; a nil checker is reported as skipped
type Deps struct {
	StartedAt time.Time
	Checks    map[string]Checker
}

type handlers struct {
	deps Deps
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}

	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
}

// HealthResponse is the health payload
type HealthResponse struct {
	OK      bool   `json:"ok"      example:"true"`
	Service string `json:"service" example:"engagegov-api"`
	Started string `json:"started" example:"2026-10-01T13:00:00Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
}

// ReadyCheck describes a single dependency check
type ReadyCheck struct {
	Name   string `json:"name"   example:"redis"`
	Status string `json:"status" example:"ok"` // ok fail skipped
	Error  string `json:"error,omitempty" example:"dial tcp 127.0.0.1:6379: connect: connection refused"`
}

// ReadyResponse summarizes readiness
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"` // ok fail
	Checks []ReadyCheck `json:"checks"`
}

// swagger:route GET /meta/health Meta metaHealth
// @Summary Liveness
// @Tags Meta
// @Produce json
// @Success 200 {object} httpkit.Envelope{data=HealthResponse}
// @Router /meta/health [get]
func (h *handlers) health(*http.Request) httpkit.Response {
	return httpkit.OK(HealthResponse{
		OK:      true,
		Service: version.Service,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(time.Since(h.deps.StartedAt) / time.Second),
	})
}

// swagger:route GET /meta/ready Meta metaReady
// @Summary Readiness with dependency checks
// @Tags Meta
// @Produce json
// @Success 200 {object} httpkit.Envelope{data=ReadyResponse}
// @Failure 503 {object} httpkit.Envelope{data=ReadyResponse}
// @Router /meta/ready [get]
func (h *handlers) ready(r *http.Request) httpkit.Response {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	out := ReadyResponse{Status: "ok", Checks: []ReadyCheck{}}
	for name, c := range h.deps.Checks {
		rc := ReadyCheck{Name: name, Status: "ok"}
		switch {
		case c == nil:
			rc.Status = "skipped"
		default:
			if err := c.Health(ctx); err != nil {
				rc.Status, rc.Error = "fail", err.Error()
				out.Status = "fail"
			}
		}
		out.Checks = append(out.Checks, rc)
	}

	resp := httpkit.OK(out)
	if out.Status != "ok" {
		resp.Status = http.StatusServiceUnavailable
	}
	return resp
}

// swagger:route GET /meta/version Meta metaVersion
// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 {object} httpkit.Envelope{data=version.BuildInfo}
// @Router /meta/version [get]
func (h *handlers) version(*http.Request) httpkit.Response {
	return httpkit.OK(version.Info())
}
