package calculator

import (
	"time"

	"cloud.google.com/go/civil"

	"github.com/mmynk/stride/internal/models"
)

// OccursOn reports whether something first scheduled at start, repeating by r when
// recurrent, falls on day. Monthly and yearly repeats skip months without the
// start's day of month.
func OccursOn(start time.Time, recurrent bool, r models.Recurrence, day civil.Date, loc *time.Location) bool {
	first := DateOf(start, loc)
	if day.Before(first) {
		return false
	}
	if !recurrent || day == first {
		return day == first
	}

	switch r {
	case models.Daily:
		return true
	case models.Weekly:
		return day.DaysSince(first)%7 == 0
	case models.BiWeekly:
		return day.DaysSince(first)%14 == 0
	case models.Monthly:
		return day.Day == first.Day
	case models.Yearly:
		return day.Month == first.Month && day.Day == first.Day
	}
	return false
}

// EventsOn returns the events occurring on day, in input order.
func EventsOn(events []*models.CalendarEvent, day civil.Date, loc *time.Location) []*models.CalendarEvent {
	var out []*models.CalendarEvent
	for _, e := range events {
		if OccursOn(e.EventDate, e.Recurrent, e.Recurrence, day, loc) {
			out = append(out, e)
		}
	}
	return out
}
