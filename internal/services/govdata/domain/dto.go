// Package domain holds the govdata contracts and the DTOs of its HTTP surface
package domain

// SourceQuery selects a source; blank means the default
type SourceQuery struct {
	Source string `query:"source" json:"source,omitempty" validate:"omitempty,alphanum,max=16" example:"camara"`
}

// LawsQuery filters the legislative item list
type LawsQuery struct {
	Source string `query:"source" json:"source,omitempty" validate:"omitempty,alphanum,max=16" example:"camara"`
	Year   *int   `query:"year"   json:"year,omitempty"   validate:"omitempty,min=1900,max=2100" example:"2024"`
	Items  int    `query:"items"  json:"items,omitempty"  validate:"omitempty,min=1,max=100" example:"20"`
}

// SourcesResp lists what the router can dispatch to
type SourcesResp struct {
	Default string   `json:"default" example:"camara"`
	Sources []string `json:"sources" example:"camara"`
}
