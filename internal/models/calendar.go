package models

import (
	"strings"
	"time"
)

// CalendarEvent is a dated entry on the user's calendar.
type CalendarEvent struct {
	// ID is the unique identifier for the event (UUID format).
	ID string `json:"event_id"`

	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	EventDate   time.Time `json:"event_date"`

	Recurrent  bool       `json:"recurrent"`
	Recurrence Recurrence `json:"recurrent_date,omitempty"`
}

// Validate checks the event invariants.
func (e *CalendarEvent) Validate() error {
	if e.UserID == "" {
		return invalidf("event user_id is required")
	}
	if strings.TrimSpace(e.Title) == "" {
		return invalidf("event title is required")
	}
	if e.EventDate.IsZero() {
		return invalidf("event_date is required")
	}
	return validateRecurrence(e.Recurrent, e.Recurrence)
}

// EventPatch is a partial update of a calendar event.
type EventPatch struct {
	Title       *string     `json:"title,omitempty"`
	Description *string     `json:"description,omitempty"`
	EventDate   *time.Time  `json:"event_date,omitempty"`
	Recurrent   *bool       `json:"recurrent,omitempty"`
	Recurrence  *Recurrence `json:"recurrent_date,omitempty"`
}

// Apply copies the patch fields onto e.
func (p *EventPatch) Apply(e *CalendarEvent) {
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.EventDate != nil {
		e.EventDate = *p.EventDate
	}
	if p.Recurrent != nil {
		e.Recurrent = *p.Recurrent
	}
	if p.Recurrence != nil {
		e.Recurrence = *p.Recurrence
	}
	if !e.Recurrent {
		e.Recurrence = ""
	}
}
