package parse

import (
	"engagegov/internal/core/ident"
	"engagegov/internal/core/records"
)

// RepresentativeMap lists the source keys for each representative field, in preference order
type RepresentativeMap struct {
	ExternalID []string
	Name       []string
	Party      []string
	State      []string
	PhotoURL   []string
}

// ItemMap lists the source keys for each legislative item field
type ItemMap struct {
	ExternalID       []string
	ItemType         []string
	Number           []string
	Year             []string
	Summary          []string
	Status           []string
	Authors          []string
	URL              []string
	PresentationDate []string
}

// TimelineMap lists the source keys for a timeline entry
type TimelineMap struct {
	Date        []string
	Event       []string
	Description []string
}

// SpeechMap lists the source keys for a speech
type SpeechMap struct {
	ExternalID               []string
	RepresentativeExternalID []string
	Date                     []string
	SessionID                []string
	Text                     []string
}

// Representatives maps body into representatives tagged with src; ids are left for the caller
func Representatives(body []byte, s Shape, m RepresentativeMap, src records.Source) ([]records.Representative, Diag) {
	rows, d := Records(body, s)
	out := make([]records.Representative, 0, len(rows))
	for _, f := range rows {
		r := records.Representative{
			ExternalID: f.Str(m.ExternalID...),
			Source:     src,
			Name:       f.Str(m.Name...),
			Party:      f.Str(m.Party...),
			State:      f.Str(m.State...),
			PhotoURL:   f.Str(m.PhotoURL...),
		}
		if r.ExternalID == "" {
			r.ExternalID = ident.Synthesize(r.Name, r.Party, r.State)
		}
		if r.ExternalID == "" {
			d.Dropped++
			continue
		}
		out = append(out, r)
	}
	return out, d
}

// LegislativeItems maps body into items tagged with src; Summary is always set, possibly ""
func LegislativeItems(body []byte, s Shape, m ItemMap, src records.Source) ([]records.LegislativeItem, Diag) {
	rows, d := Records(body, s)
	out := make([]records.LegislativeItem, 0, len(rows))
	for _, f := range rows {
		it, ok := Item(f, m, src)
		if !ok {
			d.Dropped++
			continue
		}
		out = append(out, it)
	}
	return out, d
}

// Item maps one field set; ok is false when nothing identifies the record
func Item(f Fields, m ItemMap, src records.Source) (records.LegislativeItem, bool) {
	it := records.LegislativeItem{
		ExternalID:       f.Str(m.ExternalID...),
		Source:           src,
		ItemType:         f.Str(m.ItemType...),
		Number:           f.Str(m.Number...),
		Summary:          f.Str(m.Summary...),
		Status:           f.Str(m.Status...),
		Authors:          f.Strs(m.Authors...),
		URL:              f.Str(m.URL...),
		PresentationDate: f.Str(m.PresentationDate...),
	}
	if y, ok := f.Int(m.Year...); ok && y > 0 {
		it.Year = &y
	}
	it.PresentedAt = timePtr(it.PresentationDate)
	if it.ExternalID == "" {
		it.ExternalID = ident.Synthesize(it.ItemType, it.Number, f.Str(m.Year...), it.Summary)
	}
	return it, it.ExternalID != ""
}

// Timeline maps body into ordered timeline entries; entries without an event are dropped
func Timeline(body []byte, s Shape, m TimelineMap) ([]records.TimelineEntry, Diag) {
	rows, d := Records(body, s)
	out := make([]records.TimelineEntry, 0, len(rows))
	for _, f := range rows {
		e := records.TimelineEntry{
			Date:        f.Str(m.Date...),
			EventLabel:  f.Str(m.Event...),
			Description: f.Str(m.Description...),
		}
		if e.EventLabel == "" {
			e.EventLabel, e.Description = e.Description, ""
		}
		if e.EventLabel == "" {
			d.Dropped++
			continue
		}
		e.At = timePtr(e.Date)
		out = append(out, e)
	}
	return out, d
}

// Names maps body into a list of names, keeping source order
func Names(body []byte, s Shape, keys ...string) ([]string, Diag) {
	rows, d := Records(body, s)
	out := make([]string, 0, len(rows))
	for _, f := range rows {
		if n := f.Str(keys...); n != "" {
			out = append(out, n)
			continue
		}
		d.Dropped++
	}
	return out, d
}

// Speeches maps body into speeches tagged with src
func Speeches(body []byte, s Shape, m SpeechMap, src records.Source) ([]records.Speech, Diag) {
	rows, d := Records(body, s)
	out := make([]records.Speech, 0, len(rows))
	for _, f := range rows {
		sp := records.Speech{
			ExternalID:               f.Str(m.ExternalID...),
			Source:                   src,
			RepresentativeExternalID: f.Str(m.RepresentativeExternalID...),
			Date:                     timePtr(f.Str(m.Date...)),
			SessionID:                f.Str(m.SessionID...),
			Text:                     f.Str(m.Text...),
		}
		if sp.ExternalID == "" {
			sp.ExternalID = ident.Synthesize(sp.RepresentativeExternalID, f.Str(m.Date...), sp.SessionID, sp.Text)
		}
		if sp.ExternalID == "" {
			d.Dropped++
			continue
		}
		out = append(out, sp)
	}
	return out, d
}
