package models

import (
	"fmt"
	"strings"
)

// Recurrence is the repeat pattern of a recurrent todo or event.
type Recurrence string

const (
	Daily    Recurrence = "daily"
	Weekly   Recurrence = "weekly"
	BiWeekly Recurrence = "bi-weekly"
	Monthly  Recurrence = "monthly"
	Yearly   Recurrence = "yearly"
)

// ParseRecurrence returns the pattern named by s.
func ParseRecurrence(s string) (Recurrence, error) {
	switch r := Recurrence(strings.ToLower(strings.TrimSpace(s))); r {
	case Daily, Weekly, BiWeekly, Monthly, Yearly:
		return r, nil
	}
	return "", fmt.Errorf("unknown recurrence %q", s)
}

// validateRecurrence requires a known pattern exactly when recurrent is set.
func validateRecurrence(recurrent bool, r Recurrence) error {
	if !recurrent {
		if r != "" {
			return invalidf("recurrence %q set on a non-recurrent record", r)
		}
		return nil
	}
	if _, err := ParseRecurrence(string(r)); err != nil {
		return invalidf("%v", err)
	}
	return nil
}
