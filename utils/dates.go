package utils

import "time"

// DateLayout is the canonical calendar-date format used everywhere a
// played_date or tournament window crosses a package boundary. Dates are
// plain YYYY-MM-DD strings so they compare lexicographically.
const DateLayout = "2006-01-02"

// LocalDateStr formats t as YYYY-MM-DD in t's own location. Converting to
// UTC first can roll the date forward or backward near midnight, which is
// exactly the bug this helper exists to avoid.
func LocalDateStr(t time.Time) string {
	return t.Format(DateLayout)
}

// Today returns the caller's local calendar date.
func Today() string {
	return LocalDateStr(time.Now())
}
