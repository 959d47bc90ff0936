package state

import (
	"context"
	"slices"

	"cloud.google.com/go/civil"

	"github.com/mmynk/stride/internal/calculator"
	"github.com/mmynk/stride/internal/models"
	"github.com/mmynk/stride/internal/repo"
)

// CalendarService is the domain service the calendar hook drives.
type CalendarService interface {
	FetchEvents(ctx context.Context, userID string) ([]*models.CalendarEvent, error)
	AddEvent(ctx context.Context, e *models.CalendarEvent) (*models.CalendarEvent, error)
	UpdateEvent(ctx context.Context, userID, id string, patch models.EventPatch) (*models.CalendarEvent, error)
	DeleteEvent(ctx context.Context, userID, id string) error
}

var _ CalendarService = (*repo.Calendar)(nil)

// Calendar is the calendar events hook.
type Calendar struct {
	base
	svc   CalendarService
	clock Clock
}

func NewCalendar(store *Store, svc CalendarService, userID UserFunc, clock Clock) *Calendar {
	return &Calendar{base: base{store: store, userID: userID}, svc: svc, clock: clock}
}

func (h *Calendar) Mount(ctx context.Context) error {
	return h.mount(ctx, h.load)
}

func (h *Calendar) Refresh(ctx context.Context) error {
	return h.refresh(ctx, h.load)
}

func (h *Calendar) load(ctx context.Context, userID string) error {
	return refetch(ctx, &h.base, FamilyEvents, &h.store.events, func(ctx context.Context) ([]models.CalendarEvent, error) {
		events, err := h.svc.FetchEvents(ctx, userID)
		return values(events), err
	})
}

func (h *Calendar) Events() []models.CalendarEvent { return h.store.Events() }

// EventsOn returns the events occurring on day, expanding recurrences.
func (h *Calendar) EventsOn(day civil.Date) []*models.CalendarEvent {
	return calculator.EventsOn(pointers(h.store.Events()), day, h.clock.Location)
}

// Upcoming returns the events occurring today.
func (h *Calendar) Upcoming() []*models.CalendarEvent {
	return h.EventsOn(h.clock.Today())
}

// Add creates an event owned by the signed-in user.
func (h *Calendar) Add(ctx context.Context, e *models.CalendarEvent) (*models.CalendarEvent, error) {
	userID, err := h.requireUser()
	if err != nil {
		return nil, err
	}
	e.UserID = userID

	var stored *models.CalendarEvent
	err = h.run(func() error {
		var err error
		stored, err = h.svc.AddEvent(ctx, e)
		if err != nil {
			return err
		}
		row := *stored
		update(h.store, FamilyEvents, &h.store.events, func(events []models.CalendarEvent) []models.CalendarEvent {
			return append(slices.Clone(events), row)
		})
		return nil
	})
	return stored, err
}

func (h *Calendar) Update(ctx context.Context, id string, patch models.EventPatch) (*models.CalendarEvent, error) {
	userID := h.userID()
	if userID == "" {
		return nil, ErrSignedOut
	}
	var updated *models.CalendarEvent
	err := h.run(func() error {
		var err error
		updated, err = h.svc.UpdateEvent(ctx, userID, id, patch)
		if err != nil {
			return err
		}
		row := *updated
		update(h.store, FamilyEvents, &h.store.events, func(events []models.CalendarEvent) []models.CalendarEvent {
			return replaceByID(events, row, eventID)
		})
		return nil
	})
	return updated, err
}

func (h *Calendar) Delete(ctx context.Context, id string) error {
	userID := h.userID()
	if userID == "" {
		return ErrSignedOut
	}
	return h.run(func() error {
		if err := h.svc.DeleteEvent(ctx, userID, id); err != nil {
			return err
		}
		update(h.store, FamilyEvents, &h.store.events, func(events []models.CalendarEvent) []models.CalendarEvent {
			return removeByID(events, id, eventID)
		})
		return nil
	})
}

func eventID(e models.CalendarEvent) string { return e.ID }
