package billing

import "time"

// DateLayout is the calendar-date format used at the API boundary.
const DateLayout = "2006-01-02"

// ParseDate parses a boundary calendar-date string into a timestamp fixed
// at midnight UTC of that day. An empty string yields the zero time.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// MidnightUTC truncates a timestamp to midnight UTC of its calendar day,
// the normal form for dates crossing the API boundary.
func MidnightUTC(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDate renders a timestamp as a boundary calendar-date string. The
// zero time renders as the empty string.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(DateLayout)
}
