package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/stride/internal/storage"
	"github.com/mmynk/stride/pkg/api"
)

// CalendarService implements the Connect CalendarService.
type CalendarService struct {
	events storage.CalendarStore
	logger *slog.Logger
}

// NewCalendarService creates a new CalendarService with the given storage backend.
func NewCalendarService(events storage.CalendarStore, logger *slog.Logger) *CalendarService {
	return &CalendarService{events: events, logger: logger}
}

// ListEvents returns the caller's calendar events.
func (s *CalendarService) ListEvents(ctx context.Context, req *connect.Request[api.ListEventsRequest]) (*connect.Response[api.ListEventsResponse], error) {
	userID, err := owner(ctx, req.Msg.UserID)
	if err != nil {
		return nil, err
	}

	events, err := s.events.ListEvents(ctx, userID)
	if err != nil {
		s.logger.Error("ListEvents failed", "user_id", userID, "error", err)
		return nil, storeError(err)
	}
	return connect.NewResponse(&api.ListEventsResponse{Events: events}), nil
}

// CreateEvent adds a calendar event for the caller.
func (s *CalendarService) CreateEvent(ctx context.Context, req *connect.Request[api.CreateEventRequest]) (*connect.Response[api.CreateEventResponse], error) {
	e := req.Msg.Event
	if e == nil {
		return nil, missing("event")
	}
	userID, err := owner(ctx, e.UserID)
	if err != nil {
		return nil, err
	}
	e.UserID = userID
	if err := e.Validate(); err != nil {
		return nil, storeError(err)
	}

	if err := s.events.CreateEvent(ctx, e); err != nil {
		s.logger.Error("CreateEvent failed", "user_id", userID, "error", err)
		return nil, storeError(err)
	}
	s.logger.Info("Event created", "user_id", userID, "event_id", e.ID)
	return connect.NewResponse(&api.CreateEventResponse{Event: e}), nil
}

// UpdateEvent patches one of the caller's events.
func (s *CalendarService) UpdateEvent(ctx context.Context, req *connect.Request[api.UpdateEventRequest]) (*connect.Response[api.UpdateEventResponse], error) {
	userID, err := owner(ctx, req.Msg.UserID)
	if err != nil {
		return nil, err
	}
	if req.Msg.EventID == "" {
		return nil, missing("event_id")
	}

	e, err := s.events.UpdateEvent(ctx, userID, req.Msg.EventID, req.Msg.Patch)
	if err != nil {
		return nil, storeError(err)
	}
	return connect.NewResponse(&api.UpdateEventResponse{Event: e}), nil
}

// DeleteEvent removes one of the caller's events.
func (s *CalendarService) DeleteEvent(ctx context.Context, req *connect.Request[api.DeleteEventRequest]) (*connect.Response[api.DeleteEventResponse], error) {
	userID, err := owner(ctx, req.Msg.UserID)
	if err != nil {
		return nil, err
	}
	if req.Msg.EventID == "" {
		return nil, missing("event_id")
	}

	if err := s.events.DeleteEvent(ctx, userID, req.Msg.EventID); err != nil {
		return nil, storeError(err)
	}
	s.logger.Info("Event deleted", "user_id", userID, "event_id", req.Msg.EventID)
	return connect.NewResponse(&api.DeleteEventResponse{}), nil
}
