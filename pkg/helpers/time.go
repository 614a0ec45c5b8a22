package helpers

import (
	"strings"
	"time"
)

// DateLayout is the calendar date format used in query strings and bodies.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD value; an empty string yields the zero time and ok=true.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, true
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// NowRFC3339 is the timestamp format stored in Redis hashes.
func NowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}
