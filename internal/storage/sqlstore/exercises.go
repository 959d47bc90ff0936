package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/stride/internal/models"
	"github.com/mmynk/stride/internal/storage"
)

const exerciseColumns = `id, user_id, workout_type, exercise, reps, weight, weight_unit, duration_min, intensity, logged_at`

func scanExercise(row rowScanner) (*models.Exercise, error) {
	e := &models.Exercise{}
	var loggedAt int64
	if err := row.Scan(
		&e.ID,
		&e.UserID,
		&e.WorkoutType,
		&e.Name,
		&e.Reps,
		&e.Weight,
		&e.WeightUnit,
		&e.DurationMin,
		&e.Intensity,
		&loggedAt,
	); err != nil {
		return nil, err
	}
	e.LoggedAt = fromUnix(loggedAt)
	return e, nil
}

// ListExercises returns the exercises of a user, newest first.
func (s *Store) ListExercises(ctx context.Context, userID string) ([]*models.Exercise, error) {
	query := `
		SELECT ` + exerciseColumns + `
		FROM exercises
		WHERE user_id = ?
		ORDER BY logged_at DESC
	`
	return list(ctx, s, s.db, "exercises", scanExercise, query, userID)
}

// CreateExercise inserts an exercise, generating its ID and timestamp.
func (s *Store) CreateExercise(ctx context.Context, e *models.Exercise) error {
	e.ID = uuid.New().String()
	if e.LoggedAt.IsZero() {
		e.LoggedAt = time.Now().UTC().Truncate(time.Second)
	}
	e.Normalize()

	query := `
		INSERT INTO exercises (` + exerciseColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, s.rebind(query), exerciseArgs(e)...)
	if err != nil {
		return fmt.Errorf("failed to insert exercise: %w", err)
	}
	return nil
}

func exerciseArgs(e *models.Exercise) []any {
	return []any{
		e.ID,
		e.UserID,
		string(e.WorkoutType),
		e.Name,
		e.Reps,
		e.Weight,
		string(e.WeightUnit),
		e.DurationMin,
		e.Intensity,
		toUnix(e.LoggedAt),
	}
}

// UpdateExercise applies patch to an exercise owned by userID.
func (s *Store) UpdateExercise(ctx context.Context, userID, id string, patch models.ExercisePatch) (*models.Exercise, error) {
	var updated *models.Exercise
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		query := `SELECT ` + exerciseColumns + ` FROM exercises WHERE id = ? AND user_id = ?`
		e, err := scanExercise(tx.QueryRowContext(ctx, s.rebind(query), id, userID))
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("exercise %s: %w", id, storage.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to get exercise: %w", err)
		}

		patch.Apply(e)
		if err := e.Validate(); err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, s.rebind(`
			UPDATE exercises
			SET workout_type = ?, exercise = ?, reps = ?, weight = ?, weight_unit = ?,
				duration_min = ?, intensity = ?, logged_at = ?
			WHERE id = ? AND user_id = ?
		`),
			string(e.WorkoutType),
			e.Name,
			e.Reps,
			e.Weight,
			string(e.WeightUnit),
			e.DurationMin,
			e.Intensity,
			toUnix(e.LoggedAt),
			id,
			userID,
		)
		if err != nil {
			return fmt.Errorf("failed to update exercise: %w", err)
		}
		updated = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteExercise removes an exercise owned by userID.
func (s *Store) DeleteExercise(ctx context.Context, userID, id string) error {
	return s.deleteOwned(ctx, "exercises", "id", "exercise", userID, id)
}
