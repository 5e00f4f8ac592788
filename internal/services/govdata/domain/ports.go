package domain

import (
	"context"
	"errors"

	"engagegov/internal/core/records"
)

// ErrUnknownSource is wrapped by the router when a key matches no adapter
var ErrUnknownSource = errors.New("unknown source")

// Adapter is the capability set every source implements
//
// Failures inside an adapter degrade to empty results or not found. The only
// error an adapter returns is the caller's cancellation.
type Adapter interface {
	Source() records.Source
	ListRepresentatives(ctx context.Context) ([]records.Representative, error)
	ListLegislativeItems(ctx context.Context, year *int, limit int) ([]records.LegislativeItem, error)
	GetLegislativeItemByExternalID(ctx context.Context, externalID string) (records.LegislativeItem, bool, error)
	ListSpeeches(ctx context.Context) ([]records.Speech, error)
}

// ServicePort is what consumers of the aggregation client see
type ServicePort interface {
	GetRepresentatives(ctx context.Context, source string) ([]records.Representative, error)
	GetLegislativeItems(ctx context.Context, source string, year *int, limit int) ([]records.LegislativeItem, error)
	GetLegislativeItemByExternalID(ctx context.Context, source, externalID string) (*records.LegislativeItem, bool, error)
	GetSpeeches(ctx context.Context, source string) ([]records.Speech, error)
	Sources() SourcesResp
}
