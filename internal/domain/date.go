package domain

import "time"

// CivilDate отбрасывает время и зону: полночь UTC того же календарного дня
func CivilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDate returns true if both values fall on the same calendar day
func SameDate(a, b time.Time) bool {
	return CivilDate(a).Equal(CivilDate(b))
}

// IsPastDate returns true if date is before today in loc
func IsPastDate(date, now time.Time, loc *time.Location) bool {
	if loc == nil {
		loc = time.UTC
	}
	return CivilDate(date).Before(CivilDate(now.In(loc)))
}

// ParseDate парсит дату YYYY-MM-DD
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateFormat, s)
}
