package parse

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
)

type xmlFrame struct {
	name     string
	hasChild bool
}

// xmlRecords streams the document and flattens every record element's leaves
// into one Fields; the first occurrence of a leaf name wins
func xmlRecords(body []byte, s Shape, d Diag) ([]Fields, Diag, error) {
	want := make(map[string]struct{}, len(s.Elements))
	for _, e := range s.Elements {
		want[e] = struct{}{}
	}

	dec := xml.NewDecoder(bytes.NewReader(bytes.TrimPrefix(bytes.TrimSpace(body), bom)))
	dec.CharsetReader = charsetReader

	var (
		out   []Fields
		cur   Fields
		stack []xmlFrame
		text  strings.Builder
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// keep what was complete before the damage
			return out, d, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if cur == nil {
				if _, ok := want[t.Name.Local]; ok {
					cur = Fields{}
					stack = stack[:0]
					d.Envelope = true
				}
				continue
			}
			if n := len(stack); n > 0 {
				stack[n-1].hasChild = true
			}
			stack = append(stack, xmlFrame{name: t.Name.Local})
			text.Reset()
		case xml.CharData:
			if cur != nil && len(stack) > 0 {
				text.Write(t)
			}
		case xml.EndElement:
			if cur == nil {
				continue
			}
			if len(stack) == 0 {
				d.Seen++
				if len(cur) == 0 {
					d.Dropped++
				} else {
					out = append(out, cur)
				}
				cur = nil
				continue
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !top.hasChild {
				if _, seen := cur[top.name]; !seen {
					cur[top.name] = text.String()
				}
			}
			text.Reset()
		}
	}
	return out, d, nil
}

// charsetReader decodes legacy encodings such as ISO-8859-1 declared in the prolog
func charsetReader(label string, in io.Reader) (io.Reader, error) {
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, err
	}
	return enc.NewDecoder().Reader(in), nil
}
