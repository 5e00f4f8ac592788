// Package time contains time related helpers
package time

import "time"

// Ptr returns t in UTC, or nil if t is zero
func Ptr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	t = t.UTC()
	return &t
}
