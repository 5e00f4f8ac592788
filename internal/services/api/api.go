// Package api composes the HTTP API from its modules
package api

import (
	"context"

	"engagegov/internal/modkit"
	"engagegov/internal/modkit/httpkit"
	"engagegov/internal/modkit/module"
	"engagegov/internal/modkit/swaggerkit"
	"engagegov/internal/platform/metrics"
	phttp "engagegov/internal/platform/net/http"
	metamod "engagegov/internal/services/api/meta/module"
	govmod "engagegov/internal/services/govdata/module"

	"github.com/prometheus/client_golang/prometheus"
)

// Options are the API options
type Options struct {
	Deps           modkit.Deps
	Gatherer       prometheus.Gatherer
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts every module under /api/v1 and the operational endpoints at the root
// background upkeep runs until ctx ends
func Mount(ctx context.Context, r phttp.Router, opt Options) error {
	deps := opt.Deps.Normalize()

	gov, err := govmod.New(deps)
	if err != nil {
		return err
	}
	gov.Start(ctx)

	mods := []module.Module{
		metamod.New(deps),
		gov,
	}

	r.Use(httpkit.CommonStack(deps.Cfg)...)

	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)
	if opt.Gatherer != nil {
		r.Handle("/metrics", metrics.Handler(opt.Gatherer))
	}

	httpkit.MountAPIV1(r, nil, func(api httpkit.Router) {
		for _, m := range mods {
			deps.Log.Debug().Str("module", m.Name()).Msg("mounting module")
			m.MountRoutes(api)
		}
	})
	return nil
}
