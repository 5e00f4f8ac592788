// Package service is the consumer facing side of the aggregation client:
// source dispatch plus a read-through cache in front of the adapters
package service

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"engagegov/internal/core/records"
	"engagegov/internal/platform/cache"
	perr "engagegov/internal/platform/errors"
	"engagegov/internal/platform/logger"
	"engagegov/internal/platform/metrics"
	"engagegov/internal/services/govdata/domain"

	"golang.org/x/sync/singleflight"
)

// cache operation labels, also used in keys
const (
	opRepresentatives = "representatives"
	opItems           = "items"
	opItem            = "item"
	opSpeeches        = "speeches"
)

// Options tune the read-through layer
type Options struct {
	TTL          time.Duration // default 5m
	EmptyTTL     time.Duration // default 30s, for empty or not found results
	DefaultLimit int           // default 20
	MaxLimit     int           // default 100
	LoadTimeout  time.Duration // default 60s, bounds one shared upstream load
}

func (o Options) withDefaults() Options {
	if o.TTL <= 0 {
		o.TTL = 5 * time.Minute
	}
	if o.EmptyTTL <= 0 {
		o.EmptyTTL = 30 * time.Second
	}
	if o.DefaultLimit <= 0 {
		o.DefaultLimit = 20
	}
	if o.MaxLimit <= 0 {
		o.MaxLimit = 100
	}
	if o.LoadTimeout <= 0 {
		o.LoadTimeout = time.Minute
	}
	return o
}

// Service defines the service contract for govdata
type Service interface{ domain.ServicePort }

// Svc implements Service
type Svc struct {
	router  *Router
	cache   cache.Cache
	metrics *metrics.Metrics
	opts    Options
	group   singleflight.Group

	mu      sync.Mutex
	flights map[string]*flight
}

// flight is the context of one shared load
// it ends when its last waiter leaves or the load timeout passes
type flight struct {
	ctx     context.Context
	cancel  context.CancelFunc
	waiters int
}

var _ Service = (*Svc)(nil)

// New builds the service; a nil cache disables caching and m may be nil
func New(r *Router, c cache.Cache, m *metrics.Metrics, o Options) *Svc {
	if r == nil {
		panic("govdata.Service requires a non nil Router")
	}
	if c == nil {
		c = cache.Nop{}
	}
	return &Svc{router: r, cache: c, metrics: m, opts: o.withDefaults(), flights: map[string]*flight{}}
}

// Router exposes the dispatch table
func (s *Svc) Router() *Router { return s.router }

// Sources lists the registered sources and the default
func (s *Svc) Sources() domain.SourcesResp {
	return domain.SourcesResp{Default: string(s.router.Default()), Sources: s.router.Sources()}
}

// GetRepresentatives returns the sitting members of source
func (s *Svc) GetRepresentatives(ctx context.Context, source string) ([]records.Representative, error) {
	a, err := s.router.Dispatch(source)
	if err != nil {
		return nil, err
	}
	return readThrough(ctx, s, a.Source(), opRepresentatives, nil,
		func(ctx context.Context) ([]records.Representative, bool, error) {
			out, err := a.ListRepresentatives(ctx)
			return out, len(out) == 0, err
		})
}

// GetLegislativeItems lists items of source; limit <= 0 uses the default and is clamped to the max
func (s *Svc) GetLegislativeItems(ctx context.Context, source string, year *int, limit int) ([]records.LegislativeItem, error) {
	a, err := s.router.Dispatch(source)
	if err != nil {
		return nil, err
	}
	limit = s.clamp(limit)
	params := map[string]string{"limit": strconv.Itoa(limit)}
	if year != nil {
		params["year"] = strconv.Itoa(*year)
	}
	return readThrough(ctx, s, a.Source(), opItems, params,
		func(ctx context.Context) ([]records.LegislativeItem, bool, error) {
			out, err := a.ListLegislativeItems(ctx, year, limit)
			return out, len(out) == 0, err
		})
}

// GetLegislativeItemByExternalID fetches one item from a pinned source
// not found is (nil, false, nil)
func (s *Svc) GetLegislativeItemByExternalID(ctx context.Context, source, externalID string) (*records.LegislativeItem, bool, error) {
	a, err := s.router.Dispatch(source)
	if err != nil {
		return nil, false, err
	}
	externalID = strings.TrimSpace(externalID)
	if externalID == "" {
		return nil, false, perr.WithField(perr.InvalidArgf("external id is required"), "externalId")
	}
	it, err := readThrough(ctx, s, a.Source(), opItem, map[string]string{"id": externalID},
		func(ctx context.Context) (*records.LegislativeItem, bool, error) {
			it, ok, err := a.GetLegislativeItemByExternalID(ctx, externalID)
			if err != nil || !ok {
				return nil, true, err
			}
			return &it, false, nil
		})
	if err != nil || it == nil {
		return nil, false, err
	}
	return it, true, nil
}

// GetSpeeches returns speeches of source
func (s *Svc) GetSpeeches(ctx context.Context, source string) ([]records.Speech, error) {
	a, err := s.router.Dispatch(source)
	if err != nil {
		return nil, err
	}
	return readThrough(ctx, s, a.Source(), opSpeeches, nil,
		func(ctx context.Context) ([]records.Speech, bool, error) {
			out, err := a.ListSpeeches(ctx)
			return out, len(out) == 0, err
		})
}

func (s *Svc) clamp(limit int) int {
	if limit <= 0 {
		return s.opts.DefaultLimit
	}
	return min(limit, s.opts.MaxLimit)
}

// Key renders the cache key for an operation; params are sorted so order never matters
func Key(src records.Source, op string, params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	b.WriteString("govdata:")
	b.WriteString(string(src))
	b.WriteByte(':')
	b.WriteString(op)
	b.WriteByte(':')
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(params[k])
	}
	return b.String()
}

// loader returns the value, whether it counts as empty, and an error
type loader[T any] func(ctx context.Context) (T, bool, error)

// readThrough serves from cache, otherwise loads once per key across concurrent callers
func readThrough[T any](ctx context.Context, s *Svc, src records.Source, op string, params map[string]string, load loader[T]) (T, error) {
	var zero T
	ctx = logger.WithSource(ctx, string(src))
	log := logger.C(ctx)
	key := Key(src, op, params)

	if b, ok, err := s.cache.Get(ctx, key); err != nil {
		s.metrics.IncCache(string(src), "error")
		log.Warn().Err(err).Str("key", key).Msg("cache get failed")
	} else if ok {
		var v T
		if err := json.Unmarshal(b, &v); err == nil {
			s.metrics.IncCache(string(src), "hit")
			return v, nil
		}
		log.Warn().Str("key", key).Msg("cache entry undecodable, reloading")
	}
	s.metrics.IncCache(string(src), "miss")

	do := func(lctx context.Context) (any, error) {
		v, empty, err := load(lctx)
		if err != nil {
			return zero, err
		}
		ttl := s.opts.TTL
		if empty {
			ttl = s.opts.EmptyTTL
		}
		if b, err := json.Marshal(v); err == nil {
			if err := s.cache.Set(lctx, key, b, ttl); err != nil {
				log.Warn().Err(err).Str("key", key).Msg("cache set failed")
			}
		}
		return v, nil
	}

	f := s.join(ctx, key)
	defer s.leave(key, f)

	ch := s.group.DoChan(key, func() (any, error) { return do(f.ctx) })
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			// the shared load ended on a flight we do not own; ours is still live
			if isContextErr(res.Err) && ctx.Err() == nil && f.ctx.Err() == nil {
				log.Debug().Err(res.Err).Str("key", key).Msg("shared load ended early, reloading")
				rctx, cancel := context.WithTimeout(ctx, s.opts.LoadTimeout)
				defer cancel()
				v, err := do(rctx)
				if err != nil {
					return zero, err
				}
				return v.(T), nil
			}
			return zero, res.Err
		}
		v, _ := res.Val.(T)
		if res.Shared {
			log.Debug().Str("key", key).Msg("load shared with concurrent caller")
		}
		return v, nil
	}
}

// join registers a waiter on the flight for key, starting one if needed
// the flight keeps ctx values but not its cancellation or deadline
func (s *Svc) join(ctx context.Context, key string) *flight {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.flights[key]
	if !ok {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.opts.LoadTimeout)
		f = &flight{ctx: fctx, cancel: cancel}
		s.flights[key] = f
	}
	f.waiters++
	return f
}

// leave drops a waiter; the last one out cancels the flight
func (s *Svc) leave(key string, f *flight) {
	s.mu.Lock()
	f.waiters--
	last := f.waiters == 0
	if last && s.flights[key] == f {
		delete(s.flights, key)
	}
	s.mu.Unlock()
	if last {
		f.cancel()
	}
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
