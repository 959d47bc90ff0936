package calculator

import (
	"time"

	"cloud.google.com/go/civil"
)

// DateOf returns the civil date of t as seen in loc. A nil loc means UTC.
func DateOf(t time.Time, loc *time.Location) civil.Date {
	if loc == nil {
		loc = time.UTC
	}
	return civil.DateOf(t.In(loc))
}

// Today returns the civil date of now in loc.
func Today(now time.Time, loc *time.Location) civil.Date {
	return DateOf(now, loc)
}

// StartOfDay returns midnight at the beginning of d in loc.
func StartOfDay(d civil.Date, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return d.In(loc)
}

// LastNDays returns the n dates ending at today, oldest first.
func LastNDays(today civil.Date, n int) []civil.Date {
	if n <= 0 {
		return nil
	}
	days := make([]civil.Date, n)
	for i := 0; i < n; i++ {
		days[i] = today.AddDays(i - n + 1)
	}
	return days
}
