// Package modkit provides module wiring and core deps
package modkit

import (
	"engagegov/internal/platform/cache"
	"engagegov/internal/platform/config"
	"engagegov/internal/platform/logger"
	"engagegov/internal/platform/metrics"
	"engagegov/internal/platform/redis"
)

// Deps holds core dependencies passed to modules
// Redis is nil unless REDIS_URL is set; a nil Cache lets the module pick its backend
type Deps struct {
	Log     *logger.Logger
	Cfg     config.Conf
	Cache   cache.Cache
	Redis   *redis.Client
	Metrics *metrics.Metrics
}

// Normalize fills a zero logger with the global one
func (d Deps) Normalize() Deps {
	if d.Log == nil {
		d.Log = logger.Get()
	}
	return d
}
