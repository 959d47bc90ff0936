package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mmynk/stride/internal/models"
	"github.com/mmynk/stride/internal/storage"
)

const eventColumns = `event_id, user_id, title, description, event_date, recurrent, recurrent_date`

func scanEvent(row rowScanner) (*models.CalendarEvent, error) {
	e := &models.CalendarEvent{}
	var eventDate int64
	if err := row.Scan(
		&e.ID,
		&e.UserID,
		&e.Title,
		&e.Description,
		&eventDate,
		&e.Recurrent,
		&e.Recurrence,
	); err != nil {
		return nil, err
	}
	e.EventDate = fromUnix(eventDate)
	return e, nil
}

// ListEvents returns the calendar events of a user in date order.
func (s *Store) ListEvents(ctx context.Context, userID string) ([]*models.CalendarEvent, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM calendar
		WHERE user_id = ?
		ORDER BY event_date
	`
	return list(ctx, s, s.db, "events", scanEvent, query, userID)
}

// CreateEvent inserts a calendar event, generating its ID.
func (s *Store) CreateEvent(ctx context.Context, e *models.CalendarEvent) error {
	e.ID = uuid.New().String()

	query := `
		INSERT INTO calendar (` + eventColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, s.rebind(query),
		e.ID,
		e.UserID,
		e.Title,
		e.Description,
		toUnix(e.EventDate),
		e.Recurrent,
		string(e.Recurrence),
	)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}
	return nil
}

// UpdateEvent applies patch to an event owned by userID.
func (s *Store) UpdateEvent(ctx context.Context, userID, id string, patch models.EventPatch) (*models.CalendarEvent, error) {
	var updated *models.CalendarEvent
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		query := `SELECT ` + eventColumns + ` FROM calendar WHERE event_id = ? AND user_id = ?`
		e, err := scanEvent(tx.QueryRowContext(ctx, s.rebind(query), id, userID))
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("event %s: %w", id, storage.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to get event: %w", err)
		}

		patch.Apply(e)
		if err := e.Validate(); err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, s.rebind(`
			UPDATE calendar
			SET title = ?, description = ?, event_date = ?, recurrent = ?, recurrent_date = ?
			WHERE event_id = ? AND user_id = ?
		`),
			e.Title,
			e.Description,
			toUnix(e.EventDate),
			e.Recurrent,
			string(e.Recurrence),
			id,
			userID,
		)
		if err != nil {
			return fmt.Errorf("failed to update event: %w", err)
		}
		updated = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteEvent removes an event owned by userID.
func (s *Store) DeleteEvent(ctx context.Context, userID, id string) error {
	return s.deleteOwned(ctx, "calendar", "event_id", "event", userID, id)
}
