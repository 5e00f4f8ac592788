// Package module wires the govdata adapters, cache and service into the API
package module

import (
	"context"
	"net/http"
	"time"

	"engagegov/internal/adapters/govdata/camara"
	"engagegov/internal/adapters/govdata/fetch"
	"engagegov/internal/adapters/govdata/senado"
	"engagegov/internal/core/records"
	"engagegov/internal/modkit"
	"engagegov/internal/modkit/httpkit"
	"engagegov/internal/platform/cache"
	perr "engagegov/internal/platform/errors"
	"engagegov/internal/platform/logger"
	"engagegov/internal/platform/metrics"
	"engagegov/internal/platform/redis"
	"engagegov/internal/services/govdata/domain"
	govhttp "engagegov/internal/services/govdata/http"
	"engagegov/internal/services/govdata/service"
)

// Ports exposed by the govdata module
type Ports struct {
	Service domain.ServicePort
}

// Module implements modkit.Module for govdata
type Module struct {
	name   string
	prefix string
	mws    []func(http.Handler) http.Handler
	opts   Options
	cache  cache.Cache
	svc    *service.Svc
	log    *logger.Logger
}

// New builds the module from deps and GOV_ configuration
func New(deps modkit.Deps, opts ...modkit.Option) (*Module, error) {
	deps = deps.Normalize()
	o, err := FromConfig(deps.Cfg)
	if err != nil {
		return nil, err
	}
	return NewWithOptions(deps, o, opts...)
}

// NewWithOptions builds the module from explicit options
func NewWithOptions(deps modkit.Deps, o Options, opts ...modkit.Option) (*Module, error) {
	deps = deps.Normalize()
	b := modkit.Build("govdata", append([]modkit.Option{modkit.WithPrefix("/gov")}, opts...)...)
	log := logger.Named("govdata")

	c := deps.Cache
	if c == nil {
		var err error
		if c, err = NewCache(o, deps.Redis); err != nil {
			return nil, err
		}
	}

	adapters := Adapters(o, deps.Metrics)
	if len(adapters) == 0 {
		return nil, perr.InvalidArgf("govdata: every source is disabled")
	}
	router := service.NewRouter(records.Source(o.Default), adapters...)
	if _, err := router.Dispatch(""); err != nil {
		return nil, perr.WithField(perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "default source"), "GOV_DEFAULT_SOURCE")
	}

	svc := service.New(router, c, deps.Metrics, service.Options{
		TTL:          o.CacheTTL,
		EmptyTTL:     o.EmptyTTL,
		DefaultLimit: o.DefaultLimit,
		MaxLimit:     o.MaxLimit,
		LoadTimeout:  o.LoadTimeout,
	})

	log.Info().
		Strs("sources", router.Sources()).
		Str("default", o.Default).
		Str("cache", o.CacheBackend).
		Msg("govdata ready")

	return &Module{
		name:   b.Name,
		prefix: b.Prefix,
		mws:    b.Mw,
		opts:   o,
		cache:  c,
		svc:    svc,
		log:    log,
	}, nil
}

// Adapters builds one adapter per enabled source
func Adapters(o Options, m *metrics.Metrics) []domain.Adapter {
	var out []domain.Adapter
	for _, src := range []records.Source{records.SourceCamara, records.SourceSenado} {
		so, ok := o.Sources[string(src)]
		if !ok || so.Disabled {
			continue
		}
		c := fetch.New(fetch.Options{
			Source:         string(src),
			BaseURL:        so.BaseURL,
			UserAgent:      so.UserAgent,
			AttemptTimeout: so.Timeout,
			RatePerSecond:  so.RatePerSecond,
			Burst:          so.Burst,
			Retry: fetch.RetryPolicy{
				MaxAttempts: so.Attempts,
				Base:        250 * time.Millisecond,
				Max:         5 * time.Second,
			},
		}, fetch.WithMetrics(m))

		switch src {
		case records.SourceCamara:
			out = append(out, camara.New(c, m))
		case records.SourceSenado:
			out = append(out, senado.New(c, m))
		}
	}
	return out
}

// NewCache picks the backend named by o.CacheBackend
func NewCache(o Options, rc *redis.Client) (cache.Cache, error) {
	switch o.CacheBackend {
	case cache.BackendNone:
		return cache.Nop{}, nil
	case cache.BackendRedis:
		if rc == nil {
			return nil, perr.WithField(perr.InvalidArgf("redis cache backend needs REDIS_URL"), "GOV_CACHE_BACKEND")
		}
		return cache.NewRedis(rc.Client, o.CachePrefix), nil
	case cache.BackendMemory, "":
		return cache.NewMemory(), nil
	default:
		return nil, perr.WithField(perr.InvalidArgf("unknown cache backend %q", o.CacheBackend), "GOV_CACHE_BACKEND")
	}
}

// Start runs background upkeep until ctx ends; only the memory cache needs any
func (m *Module) Start(ctx context.Context) {
	if mem, ok := m.cache.(*cache.Memory); ok {
		go mem.Janitor(ctx, m.opts.CacheTTL)
	}
}

// Service returns the consumer facing service
func (m *Module) Service() *service.Svc { return m.svc }

// Name satisfies modkit.Module
func (m *Module) Name() string { return m.name }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return Ports{Service: m.svc} }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {
	httpkit.MountUnder(r, m.prefix, m.mws, func(sub httpkit.Router) {
		govhttp.Register(sub, m.svc)
	})
}
