package entity

import "time"

// DateLayout is the canonical calendar-date encoding used in storage and exports.
const DateLayout = "2006-01-02"

// Day truncates t to midnight UTC of its wall-clock calendar date.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDay parses a YYYY-MM-DD date as midnight UTC.
func ParseDay(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	return Day(t), nil
}
