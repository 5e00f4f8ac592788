package time

import (
	"testing"
	"time"
)

func TestPtr(t *testing.T) {
	t.Parallel()
	if Ptr(time.Time{}) != nil {
		t.Fatal("zero time should be nil")
	}
	loc := time.FixedZone("BRT", -3*3600)
	p := Ptr(time.Date(2024, 3, 1, 9, 0, 0, 0, loc))
	if p == nil || p.Location() != time.UTC || p.Hour() != 12 {
		t.Fatalf("expected 12:00 UTC got %v", p)
	}
}
