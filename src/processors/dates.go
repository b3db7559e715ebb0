package processors

import (
	"fmt"
	"math"
	"time"
)

// DateKeyLayout is the canonical calendar-date form used everywhere: in
// persisted data, occurrence keys, and the HTTP API.
const DateKeyLayout = "2006-01-02"

// ParseDate parses a "YYYY-MM-DD" string into a date-only value at local
// midnight. All engine comparisons happen on these normalized values; raw
// datetimes with residual time components would shift by a day around DST.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateKeyLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// DateKey formats a time as its canonical calendar-date key.
func DateKey(t time.Time) string {
	return t.Format(DateKeyLayout)
}

// DateOnly truncates a timestamp to local midnight of the same calendar day.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}

// EndOfDay returns the last representable instant of t's calendar day, so an
// inclusive end date covers its whole day.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), time.Local)
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	// Day zero of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.Local).Day()
}

// DaysBetween counts whole calendar days from a to b, both local midnights.
// The division is rounded because a DST transition makes the interval 23 or
// 25 hours instead of 24.
func DaysBetween(a, b time.Time) int {
	return int(math.Round(b.Sub(a).Hours() / 24))
}
