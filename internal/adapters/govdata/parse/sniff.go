// Package parse turns raw source payloads into canonical records
//
// Nothing here returns an error to the caller or panics on bad input. Malformed
// bodies yield no records and a Diag describing what went wrong, which the
// adapter logs.
package parse

import "bytes"

// Format is the sniffed payload format
type Format int

const (
	FormatUnknown Format = iota
	FormatJSON
	FormatXML
)

// String implements fmt.Stringer
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatXML:
		return "xml"
	default:
		return "unknown"
	}
}

var bom = []byte{0xEF, 0xBB, 0xBF}

// Sniff reports XML when the trimmed body starts with '<', JSON for anything else non empty
func Sniff(body []byte) Format {
	b := bytes.TrimSpace(bytes.TrimPrefix(bytes.TrimSpace(body), bom))
	switch {
	case len(b) == 0:
		return FormatUnknown
	case b[0] == '<':
		return FormatXML
	default:
		return FormatJSON
	}
}

// Shape says where records live in a payload
type Shape struct {
	// Envelopes are dotted JSON paths tried in order, e.g. "dados"
	// an empty list accepts a bare top level array
	Envelopes []string

	// Elements are XML local names that delimit one record, e.g. "deputado_"
	Elements []string
}

// Diag summarizes one parse for logging
type Diag struct {
	Format   Format
	Envelope bool
	Seen     int
	Dropped  int
	Err      error
}

// Empty reports whether the parse produced nothing usable
func (d Diag) Empty() bool { return d.Seen-d.Dropped <= 0 }

// Records extracts raw field maps according to s
func Records(body []byte, s Shape) ([]Fields, Diag) {
	d := Diag{Format: Sniff(body)}
	var (
		out []Fields
		err error
	)
	switch d.Format {
	case FormatJSON:
		out, d, err = jsonRecords(body, s, d)
	case FormatXML:
		out, d, err = xmlRecords(body, s, d)
	default:
		return nil, d
	}
	d.Err = err
	return out, d
}
