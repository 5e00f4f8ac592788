// Package govdata holds what the source adapters share: candidate probing,
// parse diagnostics and canonical id stamping
package govdata

import (
	"context"

	"engagegov/internal/adapters/govdata/endpoint"
	"engagegov/internal/adapters/govdata/fetch"
	"engagegov/internal/adapters/govdata/parse"
	"engagegov/internal/core/ident"
	"engagegov/internal/core/records"
	"engagegov/internal/platform/logger"
	"engagegov/internal/platform/metrics"
)

// Base is embedded by every source adapter
type Base struct {
	src      records.Source
	client   *fetch.Client
	resolver *endpoint.Resolver
	log      logger.Logger
}

// NewBase wires a client and the source's candidate plans
func NewBase(src records.Source, c *fetch.Client, plans map[endpoint.Operation]endpoint.Plan, m *metrics.Metrics) Base {
	return Base{
		src:      src,
		client:   c,
		resolver: endpoint.NewResolver(string(src), plans, m),
		log:      *logger.Named("govdata." + string(src)),
	}
}

// Source implements the adapter capability set
func (b Base) Source() records.Source { return b.src }

// Resolver exposes the candidate plans; engagegov-probe -plan prints them
func (b Base) Resolver() *endpoint.Resolver { return b.resolver }

// Fetch returns the body of the first successful candidate for op
// ok=false with nil error means every candidate failed
func (b Base) Fetch(ctx context.Context, op endpoint.Operation, p endpoint.Params) ([]byte, bool, error) {
	res, ok, err := b.resolver.First(ctx, b.client, op, p)
	if err != nil || !ok {
		return nil, false, err
	}
	return res.Response.Body, true, nil
}

// Diag logs a parse that was not clean; the caller still returns what was parsed
func (b Base) Diag(ctx context.Context, op endpoint.Operation, d parse.Diag) {
	l := logger.C(ctx).With().Str("component", "govdata."+string(b.src)).Logger()
	switch {
	case d.Err != nil:
		l.Warn().Err(d.Err).Str("op", string(op)).Str("format", d.Format.String()).Int("records", d.Seen-d.Dropped).Msg("payload parse failed")
	case !d.Envelope:
		l.Warn().Str("op", string(op)).Str("format", d.Format.String()).Msg("payload envelope missing")
	case d.Dropped > 0:
		l.Debug().Str("op", string(op)).Int("seen", d.Seen).Int("dropped", d.Dropped).Msg("malformed records dropped")
	}
}

// StampRepresentatives sets canonical ids in place
func StampRepresentatives(rs []records.Representative) []records.Representative {
	for i := range rs {
		rs[i].ID = ident.Generate(rs[i].Source, rs[i].ExternalID)
	}
	return rs
}

// StampItems sets canonical ids in place
func StampItems(items []records.LegislativeItem) []records.LegislativeItem {
	for i := range items {
		items[i].ID = ident.Generate(items[i].Source, items[i].ExternalID)
	}
	return items
}

// StampSpeeches sets canonical ids in place
func StampSpeeches(ss []records.Speech) []records.Speech {
	for i := range ss {
		ss[i].ID = ident.Generate(ss[i].Source, ss[i].ExternalID)
	}
	return ss
}

// Cap trims s to at most limit elements; limit <= 0 keeps everything
func Cap[T any](s []T, limit int) []T {
	if limit > 0 && len(s) > limit {
		return s[:limit]
	}
	return s
}
