package api

import "github.com/mmynk/stride/internal/models"

type ListEventsRequest struct {
	UserID string `json:"user_id"`
}

type ListEventsResponse struct {
	Events []*models.CalendarEvent `json:"events"`
}

type CreateEventRequest struct {
	Event *models.CalendarEvent `json:"event"`
}

type CreateEventResponse struct {
	Event *models.CalendarEvent `json:"event"`
}

type UpdateEventRequest struct {
	UserID  string            `json:"user_id"`
	EventID string            `json:"event_id"`
	Patch   models.EventPatch `json:"patch"`
}

type UpdateEventResponse struct {
	Event *models.CalendarEvent `json:"event"`
}

type DeleteEventRequest struct {
	UserID  string `json:"user_id"`
	EventID string `json:"event_id"`
}

type DeleteEventResponse struct{}
