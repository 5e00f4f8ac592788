// Package records defines the canonical, source-agnostic shapes produced by the government data adapters
// Records are read-through projections built per request and never persisted here
package records

import "time"

// ID is the canonical identifier derived from (source, external id)
// treat it as opaque; only its stability is guaranteed
type ID string

// Source tags the upstream provider a record came from
type Source string

const (
	// SourceCamara is the lower-house open data service
	SourceCamara Source = "camara"
	// SourceSenado is the senate open data service
	SourceSenado Source = "senado"
)

// String implements fmt.Stringer
func (s Source) String() string { return string(s) }

// Representative is an elected member of a house
type Representative struct {
	ID         ID     `json:"id"`
	ExternalID string `json:"externalId"`
	Source     Source `json:"source"`
	Name       string `json:"name"`
	Party      string `json:"party"`
	State      string `json:"state"`
	PhotoURL   string `json:"photoUrl,omitempty"`
}

// LegislativeItem is a law or proposal
// Summary is never null; the remaining optional fields are zero when the source does not expose them
type LegislativeItem struct {
	ID         ID     `json:"id"`
	ExternalID string `json:"externalId"`
	Source     Source `json:"source"`
	ItemType   string `json:"itemType"`
	Number     string `json:"number"`
	Year       *int   `json:"year,omitempty"`
	Summary    string `json:"summary"`
	Status     string `json:"status,omitempty"`

	Authors  []string        `json:"authors,omitempty"`
	Timeline []TimelineEntry `json:"timeline,omitempty"`

	URL              string     `json:"url,omitempty"`
	PresentationDate string     `json:"presentationDate,omitempty"`
	PresentedAt      *time.Time `json:"presentedAt,omitempty"`
}

// TimelineEntry is one step in an item's procedural history
type TimelineEntry struct {
	Date        string     `json:"date"`
	At          *time.Time `json:"at,omitempty"`
	EventLabel  string     `json:"eventLabel"`
	Description string     `json:"description,omitempty"`
}

// Speech is a floor speech by a representative
type Speech struct {
	ID                       ID         `json:"id"`
	ExternalID               string     `json:"externalId"`
	Source                   Source     `json:"source"`
	RepresentativeExternalID string     `json:"representativeExternalId"`
	Date                     *time.Time `json:"date,omitempty"`
	SessionID                string     `json:"sessionId"`
	Text                     string     `json:"text"`
}
