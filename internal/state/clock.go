package state

import (
	"time"

	"cloud.google.com/go/civil"

	"github.com/mmynk/stride/internal/calculator"
)

// Clock supplies the current time and the zone calendar dates are computed in.
// A nil Now means time.Now and a nil Location means UTC.
type Clock struct {
	Now      func() time.Time
	Location *time.Location
}

// Time returns the current time.
func (c Clock) Time() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// Today is the current calendar date in the clock's zone.
func (c Clock) Today() civil.Date {
	return calculator.Today(c.Time(), c.Location)
}
