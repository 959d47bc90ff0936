package repo

import (
	"context"
	"log/slog"

	"github.com/mmynk/stride/internal/models"
	"github.com/mmynk/stride/internal/storage"
)

// Calendar is the domain service for calendar events.
type Calendar struct {
	store  storage.CalendarStore
	logger *slog.Logger
}

// NewCalendar creates a calendar service over store.
func NewCalendar(store storage.CalendarStore, logger *slog.Logger) *Calendar {
	return &Calendar{store: store, logger: logger}
}

// FetchEvents returns the user's events.
func (s *Calendar) FetchEvents(ctx context.Context, userID string) ([]*models.CalendarEvent, error) {
	return fetchAll(ctx, s.logger, "fetch events", userID, s.store.ListEvents)
}

// AddEvent inserts e and returns the stored row.
func (s *Calendar) AddEvent(ctx context.Context, e *models.CalendarEvent) (*models.CalendarEvent, error) {
	const op = "add event"
	if err := e.Validate(); err != nil {
		return nil, invalid(op, err)
	}
	stored := *e
	if err := mutate(s.logger, op, e.UserID, s.store.CreateEvent(ctx, &stored)); err != nil {
		return nil, err
	}
	return &stored, nil
}

// UpdateEvent patches an event and returns the stored row.
func (s *Calendar) UpdateEvent(ctx context.Context, userID, id string, patch models.EventPatch) (*models.CalendarEvent, error) {
	const op = "update event"
	if err := requireUser(op, userID); err != nil {
		return nil, err
	}
	e, err := s.store.UpdateEvent(ctx, userID, id, patch)
	if err := mutate(s.logger, op, userID, err); err != nil {
		return nil, err
	}
	return e, nil
}

// DeleteEvent removes an event.
func (s *Calendar) DeleteEvent(ctx context.Context, userID, id string) error {
	const op = "delete event"
	if err := requireUser(op, userID); err != nil {
		return err
	}
	return mutate(s.logger, op, userID, s.store.DeleteEvent(ctx, userID, id))
}
