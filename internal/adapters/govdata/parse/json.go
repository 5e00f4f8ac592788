package parse

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
)

var errNotObject = errors.New("top level json is not an object")

func jsonRecords(body []byte, s Shape, d Diag) ([]Fields, Diag, error) {
	dec := json.NewDecoder(bytes.NewReader(bytes.TrimPrefix(bytes.TrimSpace(body), bom)))
	dec.UseNumber()

	var root any
	if err := dec.Decode(&root); err != nil {
		return nil, d, err
	}
	// trailing garbage after a complete value means the payload is not what we think
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, d, errors.New("trailing data after json value")
	}

	var env any
	switch {
	case len(s.Envelopes) == 0:
		env = root
		d.Envelope = true
	default:
		obj, ok := root.(map[string]any)
		if !ok {
			return nil, d, errNotObject
		}
		for _, path := range s.Envelopes {
			if v, ok := Fields(obj).Lookup(path); ok && v != nil {
				env, d.Envelope = v, true
				break
			}
		}
		if !d.Envelope {
			return nil, d, nil
		}
	}

	switch x := env.(type) {
	case []any:
		out := make([]Fields, 0, len(x))
		for _, e := range x {
			d.Seen++
			m, ok := e.(map[string]any)
			if !ok {
				d.Dropped++
				continue
			}
			out = append(out, Fields(m))
		}
		return out, d, nil
	case map[string]any:
		d.Seen = 1
		return []Fields{Fields(x)}, d, nil
	default:
		return nil, d, errors.New("envelope is neither a list nor an object")
	}
}
