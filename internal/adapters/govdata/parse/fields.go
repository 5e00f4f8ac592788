package parse

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Fields is one record's raw values
// leaves are string, json.Number, float64, bool or nil; branches are map[string]any or []any
type Fields map[string]any

// Lookup finds key exactly, then as a dotted path through nested objects
func (f Fields) Lookup(key string) (any, bool) {
	if f == nil || key == "" {
		return nil, false
	}
	if v, ok := f[key]; ok {
		return v, true
	}
	if !strings.Contains(key, ".") {
		return nil, false
	}
	var cur any = map[string]any(f)
	for _, part := range strings.Split(key, ".") {
		m, ok := asMap(cur)
		if !ok {
			return nil, false
		}
		if cur, ok = m[part]; !ok {
			return nil, false
		}
	}
	return cur, true
}

// Str returns the first key holding a non blank scalar, trimmed and NFC normalized
// objects, arrays and nulls count as absent
func (f Fields) Str(keys ...string) string {
	for _, k := range keys {
		v, ok := f.Lookup(k)
		if !ok {
			continue
		}
		if s, ok := scalar(v); ok && s != "" {
			return s
		}
	}
	return ""
}

// Int returns the first key holding an integral number or numeric string
func (f Fields) Int(keys ...string) (int, bool) {
	for _, k := range keys {
		v, ok := f.Lookup(k)
		if !ok {
			continue
		}
		switch x := v.(type) {
		case json.Number:
			if n, err := x.Int64(); err == nil {
				return int(n), true
			}
		case float64:
			if x == math.Trunc(x) && !math.IsInf(x, 0) {
				return int(x), true
			}
		case string:
			if n, err := strconv.Atoi(strings.TrimSpace(x)); err == nil {
				return n, true
			}
		}
	}
	return 0, false
}

// Strs returns the first key holding a list, keeping its scalar elements in order
// a single scalar becomes a one element list
func (f Fields) Strs(keys ...string) []string {
	for _, k := range keys {
		v, ok := f.Lookup(k)
		if !ok {
			continue
		}
		switch x := v.(type) {
		case []any:
			out := make([]string, 0, len(x))
			for _, e := range x {
				if s, ok := scalar(e); ok && s != "" {
					out = append(out, s)
				}
			}
			if len(out) > 0 {
				return out
			}
		default:
			if s, ok := scalar(x); ok && s != "" {
				return []string{s}
			}
		}
	}
	return nil
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Fields:
		return m, true
	}
	return nil, false
}

func scalar(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return clean(x), true
	case json.Number:
		return x.String(), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(x), true
	}
	return "", false
}

// clean trims and NFC normalizes text from either format
func clean(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	return norm.NFC.String(s)
}
