package processors

import (
	"time"

	"github.com/username/prosper/backend/src/models"
)

// Matches reports whether the indexed transaction recurs on the given
// calendar day. day must be a date-only value at local midnight. Pure
// function, no side effects.
//
// Bound checks come first: a candidate past the inclusive end-of-day bound
// or before the anchor never matches, regardless of frequency.
func Matches(it IndexedTransaction, day time.Time) bool {
	if !it.End.IsZero() && day.After(it.End) {
		return false
	}
	if day.Before(it.Start) {
		return false
	}

	switch it.Frequency {
	case models.FrequencyNone:
		// Exact date equality, not day-count arithmetic.
		return day.Equal(it.Start)

	case models.FrequencyWeekly:
		return DaysBetween(it.Start, day)%7 == 0

	case models.FrequencyBiweekly:
		return DaysBetween(it.Start, day)%14 == 0

	case models.FrequencyMonthly:
		return day.Day() == clampedDay(it.StartDay, day)

	case models.FrequencyQuarterly:
		monthsDiff := (day.Year()-it.Start.Year())*12 + int(day.Month()-it.Start.Month())
		if monthsDiff < 0 || monthsDiff%3 != 0 {
			return false
		}
		return day.Day() == clampedDay(it.StartDay, day)
	}
	return false
}

// clampedDay pulls an anchor day-of-month into the candidate's month, so a
// 31st-anchored transaction lands on the 28th/29th/30th in shorter months.
func clampedDay(startDay int, day time.Time) int {
	if dim := DaysInMonth(day.Year(), day.Month()); startDay > dim {
		return dim
	}
	return startDay
}
