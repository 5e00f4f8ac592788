// Package strings provides small string helpers shared by the wiring code
package strings

import std "strings"

// Prefix normalizes a mount path to a single leading slash and no trailing slash
// blank and "/" both normalize to "" which means mount at the parent
func Prefix(s string) string {
	s = std.Trim(std.TrimSpace(s), "/")
	if s == "" {
		return ""
	}
	return "/" + s
}

// FirstNonBlank returns the first value with non whitespace content, trimmed
func FirstNonBlank(vals ...string) string {
	for _, v := range vals {
		if v = std.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
