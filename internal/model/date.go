package model

import "time"

// DateLayout is the ISO calendar date format used for all persisted dates.
const DateLayout = "2006-01-02"

// DateISO formats a time as an ISO calendar date.
func DateISO(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDateISO parses an ISO calendar date in the given location.
func ParseDateISO(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, loc)
}

// WeekdayOf maps a time to the 1..7 weekday numbering (Monday = 1).
func WeekdayOf(t time.Time) int {
	return int(t.Weekday()+6)%7 + 1
}

// Midnight truncates a time to the start of its calendar day.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
