package parse

import (
	"strconv"
	"strings"
	"time"

	ptime "engagegov/internal/platform/time"
)

var layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006 15:04:05",
	"02/01/2006",
}

// ParseTime accepts the date shapes the sources emit, plus unix seconds
// zone-less values are read as UTC
func ParseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, l := range layouts {
		if t, err := time.Parse(l, s); err == nil {
			return t.UTC(), true
		}
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil && n > 100000000 {
		return time.Unix(n, 0).UTC(), true
	}
	return time.Time{}, false
}

func timePtr(s string) *time.Time {
	t, _ := ParseTime(s)
	return ptime.Ptr(t)
}
