package repo

import (
	"context"
	"log/slog"

	"github.com/mmynk/stride/internal/models"
	"github.com/mmynk/stride/internal/storage"
)

// HealthStore is the store surface the health service needs.
type HealthStore interface {
	storage.HealthStore
	storage.ExerciseStore
}

// Health is the domain service for the health profile and logged exercises.
type Health struct {
	store  HealthStore
	logger *slog.Logger
}

// NewHealth creates a health service over store.
func NewHealth(store HealthStore, logger *slog.Logger) *Health {
	return &Health{store: store, logger: logger}
}

// FetchProfile returns the user's health profile, or (nil, nil) before onboarding.
func (s *Health) FetchProfile(ctx context.Context, userID string) (*models.HealthProfile, error) {
	return fetchOne(ctx, s.logger, "fetch health profile", userID, s.store.GetHealthProfile)
}

// SaveProfile creates or replaces the user's health profile.
func (s *Health) SaveProfile(ctx context.Context, p *models.HealthProfile) (*models.HealthProfile, error) {
	const op = "save health profile"
	if err := p.Validate(); err != nil {
		return nil, invalid(op, err)
	}
	saved := *p
	if err := mutate(s.logger, op, p.UserID, s.store.SaveHealthProfile(ctx, &saved)); err != nil {
		return nil, err
	}
	return &saved, nil
}

// FetchExercises returns the user's logged exercises.
func (s *Health) FetchExercises(ctx context.Context, userID string) ([]*models.Exercise, error) {
	return fetchAll(ctx, s.logger, "fetch exercises", userID, s.store.ListExercises)
}

// AddExercise inserts e and returns the stored row.
func (s *Health) AddExercise(ctx context.Context, e *models.Exercise) (*models.Exercise, error) {
	const op = "add exercise"
	stored := *e
	stored.Normalize()
	if err := stored.Validate(); err != nil {
		return nil, invalid(op, err)
	}
	if err := mutate(s.logger, op, e.UserID, s.store.CreateExercise(ctx, &stored)); err != nil {
		return nil, err
	}
	return &stored, nil
}

// UpdateExercise patches an exercise and returns the stored row.
func (s *Health) UpdateExercise(ctx context.Context, userID, id string, patch models.ExercisePatch) (*models.Exercise, error) {
	const op = "update exercise"
	if err := requireUser(op, userID); err != nil {
		return nil, err
	}
	e, err := s.store.UpdateExercise(ctx, userID, id, patch)
	if err := mutate(s.logger, op, userID, err); err != nil {
		return nil, err
	}
	return e, nil
}

// DeleteExercise removes an exercise.
func (s *Health) DeleteExercise(ctx context.Context, userID, id string) error {
	const op = "delete exercise"
	if err := requireUser(op, userID); err != nil {
		return err
	}
	return mutate(s.logger, op, userID, s.store.DeleteExercise(ctx, userID, id))
}
