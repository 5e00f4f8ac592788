// Package endpoint resolves a logical operation into ordered candidate requests
// and walks them until one succeeds
package endpoint

import (
	"context"
	"net/url"
	"strconv"

	"engagegov/internal/adapters/govdata/fetch"
	perr "engagegov/internal/platform/errors"
	"engagegov/internal/platform/logger"
	"engagegov/internal/platform/metrics"
)

// Operation names a logical read against a source
type Operation string

const (
	OpRepresentatives  Operation = "representatives"
	OpLegislativeItems Operation = "legislative_items"
	OpLegislativeItem  Operation = "legislative_item"
	OpAuthors          Operation = "authors"
	OpTimeline         Operation = "timeline"
	OpSpeeches         Operation = "speeches"
)

// Params are the inputs a plan may use
type Params struct {
	Year       *int
	Limit      int
	ExternalID string
}

// Candidate is one path and query combination
type Candidate struct {
	Path  string
	Query url.Values
}

// String renders path?query for logs
func (c Candidate) String() string {
	if enc := c.Query.Encode(); enc != "" {
		return c.Path + "?" + enc
	}
	return c.Path
}

// Plan builds the ordered candidates for one operation
type Plan func(Params) []Candidate

// Getter is the HTTP boundary the resolver drives
type Getter interface {
	Get(ctx context.Context, path string, q url.Values) (fetch.Response, error)
}

// Result is the winning response
type Result struct {
	Response  fetch.Response
	Candidate Candidate
	Tried     int
}

// Resolver owns the candidate plans of one source
type Resolver struct {
	source  string
	plans   map[Operation]Plan
	metrics *metrics.Metrics
	log     logger.Logger
}

// NewResolver builds a resolver; m may be nil
func NewResolver(source string, plans map[Operation]Plan, m *metrics.Metrics) *Resolver {
	return &Resolver{
		source:  source,
		plans:   plans,
		metrics: m,
		log:     logger.Named("govdata.endpoint").With().Str("source", source).Logger(),
	}
}

// Resolve returns the candidates for op in priority order; unknown ops have none
func (r *Resolver) Resolve(op Operation, p Params) []Candidate {
	plan, ok := r.plans[op]
	if !ok || plan == nil {
		return nil
	}
	return plan(p)
}

// First tries candidates strictly in order and returns the first 2xx
//
// ok is false when every candidate failed; that is not an error.
// The only error is caller cancellation, returned as ctx.Err().
func (r *Resolver) First(ctx context.Context, g Getter, op Operation, p Params) (Result, bool, error) {
	cands := r.Resolve(op, p)
	for i, c := range cands {
		res, err := g.Get(ctx, c.Path, c.Query)
		if err == nil && res.OK() {
			if i > 0 {
				r.log.Debug().Str("op", string(op)).Str("candidate", c.String()).Int("index", i).Msg("fallback candidate served")
			}
			return Result{Response: res, Candidate: c, Tried: i + 1}, true, nil
		}
		if perr.Canceled(err) || ctx.Err() != nil {
			return Result{}, false, ctx.Err()
		}
		r.metrics.IncFallthrough(r.source)
		r.log.Debug().
			Err(err).
			Str("op", string(op)).
			Str("candidate", c.String()).
			Int("status", res.Status).
			Msg("candidate failed")
	}
	if len(cands) > 0 {
		r.log.Warn().Str("op", string(op)).Int("tried", len(cands)).Msg("no candidate succeeded")
	}
	return Result{}, false, nil
}

// Variants expands each path into a JSON preferring variant and a plain one
// the JSON variant adds formato=json and goes first
func Variants(paths []string, q url.Values, preferJSON bool) []Candidate {
	out := make([]Candidate, 0, len(paths)*2)
	for _, p := range paths {
		if preferJSON {
			jq := Clone(q)
			jq.Set("formato", "json")
			out = append(out, Candidate{Path: p, Query: jq})
		}
		out = append(out, Candidate{Path: p, Query: Clone(q)})
	}
	return out
}

// Clone copies q; nil becomes an empty set
func Clone(q url.Values) url.Values {
	out := make(url.Values, len(q))
	for k, v := range q {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// Query builds values from pairs, skipping blank values
func Query(kv ...string) url.Values {
	q := url.Values{}
	for i := 0; i+1 < len(kv); i += 2 {
		if kv[i+1] != "" {
			q.Set(kv[i], kv[i+1])
		}
	}
	return q
}

// YearString renders an optional year, "" when unset
func YearString(y *int) string {
	if y == nil {
		return ""
	}
	return strconv.Itoa(*y)
}
