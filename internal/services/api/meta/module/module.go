// Package module wires meta endpoints into the API
package module

import (
	"net/http"
	"time"

	"engagegov/internal/modkit"
	"engagegov/internal/modkit/httpkit"
	metahttp "engagegov/internal/services/api/meta/http"
)

// Module implements modkit.Module
type Module struct {
	name   string
	prefix string
	mws    []func(http.Handler) http.Handler
	deps   metahttp.Deps
}

// New constructs the meta module; redis is checked for readiness when configured
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build("meta", append([]modkit.Option{modkit.WithPrefix("/meta")}, opts...)...)

	checks := map[string]metahttp.Checker{}
	if deps.Redis != nil {
		checks["redis"] = deps.Redis
	}
	return &Module{
		name:   b.Name,
		prefix: b.Prefix,
		mws:    b.Mw,
		deps:   metahttp.Deps{StartedAt: time.Now(), Checks: checks},
	}
}

// MountRoutes implements modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {
	httpkit.MountUnder(r, m.prefix, m.mws, func(sub httpkit.Router) {
		metahttp.Register(sub, m.deps)
	})
}

// Name implements modkit.Module
func (m *Module) Name() string { return m.name }

// Ports implements modkit.Module
func (m *Module) Ports() any { return nil }
