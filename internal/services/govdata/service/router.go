package service

import (
	"sort"
	"strings"
	"sync"

	"engagegov/internal/core/records"
	perr "engagegov/internal/platform/errors"
	"engagegov/internal/services/govdata/domain"
)

// Router maps source keys to adapters
type Router struct {
	mu       sync.RWMutex
	adapters map[records.Source]domain.Adapter
	def      records.Source
}

// NewRouter builds a router; def is used when callers pass a blank key
func NewRouter(def records.Source, adapters ...domain.Adapter) *Router {
	r := &Router{adapters: map[records.Source]domain.Adapter{}, def: def}
	for _, a := range adapters {
		r.Register(a)
	}
	return r
}

// Register adds or replaces the adapter for its source
func (r *Router) Register(a domain.Adapter) {
	if a == nil {
		return
	}
	r.mu.Lock()
	r.adapters[a.Source()] = a
	r.mu.Unlock()
}

// Dispatch looks up key; blank selects the default source
// an unknown key is InvalidArgument wrapping domain.ErrUnknownSource
func (r *Router) Dispatch(key string) (domain.Adapter, error) {
	src := r.Resolve(key)
	r.mu.RLock()
	a, ok := r.adapters[src]
	r.mu.RUnlock()
	if !ok {
		return nil, perr.WithField(
			perr.Wrapf(domain.ErrUnknownSource, perr.ErrorCodeInvalidArgument, "unknown source %q", string(src)),
			"source",
		)
	}
	return a, nil
}

// Resolve normalizes key without checking registration
func (r *Router) Resolve(key string) records.Source {
	k := strings.ToLower(strings.TrimSpace(key))
	if k == "" {
		return r.def
	}
	return records.Source(k)
}

// Default is the source used for blank keys
func (r *Router) Default() records.Source { return r.def }

// Sources lists registered keys in order
func (r *Router) Sources() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.adapters))
	for s := range r.adapters {
		out = append(out, string(s))
	}
	sort.Strings(out)
	return out
}
