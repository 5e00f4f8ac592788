// Package testkit provides testing helpers and a fake upstream for the source adapters
package testkit

import (
	"fmt"
	"strings"
	"testing"
)

// MustPanic asserts that fn panics and returns the recovered value rendered as text
func MustPanic(t *testing.T, fn func()) (msg string) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic, got none")
		}
		msg = fmt.Sprint(r)
	}()
	fn()
	return ""
}

// MustContain asserts that every needle is in haystack
func MustContain(t *testing.T, haystack string, needles ...string) {
	t.Helper()
	for _, n := range needles {
		if !strings.Contains(haystack, n) {
			t.Fatalf("expected output to contain %q\n\nfull output:\n%s", n, haystack)
		}
	}
}
