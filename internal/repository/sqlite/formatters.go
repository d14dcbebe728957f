package sqlite

import (
	"time"
)

// TimeLayout is the fixed width text format used for every stored time.
// Fixed width keeps lexicographic order equal to chronological order, so
// range comparisons can run on the text columns directly.
const TimeLayout = "2006-01-02T15:04:05.000000000"

// Years outside this range do not fit the four digit year of TimeLayout.
const (
	MinStorableYear = 0
	MaxStorableYear = 9999
)

// IsStorableTime reports whether t keeps a four digit year both in its own
// zone and in UTC.
func IsStorableTime(t time.Time) bool {
	return storableYear(t.Year()) && storableYear(t.UTC().Year())
}

func storableYear(year int) bool {
	return year >= MinStorableYear && year <= MaxStorableYear
}

// FormatTimeForDB formats the wall clock of t without any zone information.
// Convert t to the intended zone before calling.
func FormatTimeForDB(t time.Time) string {
	return t.Format(TimeLayout)
}

// FormatInstantForDB formats t as a UTC wall clock.
func FormatInstantForDB(t time.Time) string {
	return FormatTimeForDB(t.UTC())
}

// ParseTimeFromDB parses a stored time. The result is in UTC and represents
// whatever wall clock was stored.
func ParseTimeFromDB(s string) (time.Time, error) {
	return time.Parse(TimeLayout, s)
}
