package state

import (
	"context"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mmynk/stride/internal/calculator"
	"github.com/mmynk/stride/internal/models"
	"github.com/mmynk/stride/internal/repo"
)

// HealthService is the domain service the health hook drives.
type HealthService interface {
	FetchProfile(ctx context.Context, userID string) (*models.HealthProfile, error)
	SaveProfile(ctx context.Context, p *models.HealthProfile) (*models.HealthProfile, error)
	FetchExercises(ctx context.Context, userID string) ([]*models.Exercise, error)
	AddExercise(ctx context.Context, e *models.Exercise) (*models.Exercise, error)
	UpdateExercise(ctx context.Context, userID, id string, patch models.ExercisePatch) (*models.Exercise, error)
	DeleteExercise(ctx context.Context, userID, id string) error
}

var _ HealthService = (*repo.Health)(nil)

// Health is the health hook: profile goals, logged exercises and the heatmap.
type Health struct {
	base
	svc   HealthService
	clock Clock
}

func NewHealth(store *Store, svc HealthService, userID UserFunc, clock Clock) *Health {
	return &Health{base: base{store: store, userID: userID}, svc: svc, clock: clock}
}

// Mount loads the profile and exercises on first use.
func (h *Health) Mount(ctx context.Context) error {
	return h.mount(ctx, h.load)
}

// Refresh reloads the profile and exercises.
func (h *Health) Refresh(ctx context.Context) error {
	return h.refresh(ctx, h.load)
}

// load fetches the profile and exercises concurrently. A failing profile fetch still
// leaves the exercises loaded.
func (h *Health) load(ctx context.Context, userID string) error {
	var g errgroup.Group
	g.Go(func() error {
		return refetch(ctx, &h.base, FamilyHealth, &h.store.health, func(ctx context.Context) (*models.HealthProfile, error) {
			return h.svc.FetchProfile(ctx, userID)
		})
	})
	g.Go(func() error {
		return refetch(ctx, &h.base, FamilyExercises, &h.store.exercises, func(ctx context.Context) ([]models.Exercise, error) {
			exs, err := h.svc.FetchExercises(ctx, userID)
			return values(exs), err
		})
	})
	return g.Wait()
}

// Profile returns the cached health profile, nil before onboarding.
func (h *Health) Profile() *models.HealthProfile { return h.store.HealthProfile() }

func (h *Health) Exercises() []models.Exercise { return h.store.Exercises() }

// HasProfile reports whether the user has completed health onboarding.
func (h *Health) HasProfile() bool { return h.store.HealthProfile() != nil }

// Heatmap is the activity of the last n days ending today, oldest first.
func (h *Health) Heatmap(n int) []calculator.DayActivity {
	if n <= 0 {
		n = calculator.DefaultHeatmapDays
	}
	return calculator.Heatmap(pointers(h.store.Exercises()), h.clock.Today(), n, h.clock.Location)
}

// TodayExercises are the exercises logged on today's calendar date.
func (h *Health) TodayExercises() []*models.Exercise {
	return calculator.ExercisesOn(pointers(h.store.Exercises()), h.clock.Today(), h.clock.Location)
}

func (h *Health) CardioMinutesToday() float64 {
	return calculator.CardioMinutesOn(pointers(h.store.Exercises()), h.clock.Today(), h.clock.Location)
}

// CardioProgress is today's cardio minutes as a percentage of the cardio goal.
func (h *Health) CardioProgress() float64 {
	p := h.store.HealthProfile()
	if p == nil {
		return 0
	}
	return calculator.Percent(h.CardioMinutesToday(), p.CardioGoal)
}

// History groups exercises by calendar date, newest first.
func (h *Health) History(n int) []calculator.DateGroup[*models.Exercise] {
	groups := calculator.GroupByDate(pointers(h.store.Exercises()), func(e *models.Exercise) time.Time { return e.LoggedAt }, h.clock.Location)
	if n > 0 {
		return calculator.Recent(groups, n)
	}
	return groups
}

// SaveProfile creates or replaces the signed-in user's health profile.
func (h *Health) SaveProfile(ctx context.Context, p *models.HealthProfile) (*models.HealthProfile, error) {
	userID, err := h.requireUser()
	if err != nil {
		return nil, err
	}
	p.UserID = userID

	var saved *models.HealthProfile
	err = h.run(func() error {
		var err error
		saved, err = h.svc.SaveProfile(ctx, p)
		if err != nil {
			return err
		}
		update(h.store, FamilyHealth, &h.store.health, func(*models.HealthProfile) *models.HealthProfile { return clonePtr(saved) })
		return nil
	})
	return saved, err
}

// AddExercise logs an exercise for the signed-in user and appends the confirmed row.
func (h *Health) AddExercise(ctx context.Context, e *models.Exercise) (*models.Exercise, error) {
	userID, err := h.requireUser()
	if err != nil {
		return nil, err
	}
	e.UserID = userID

	var stored *models.Exercise
	err = h.run(func() error {
		var err error
		stored, err = h.svc.AddExercise(ctx, e)
		if err != nil {
			return err
		}
		row := *stored
		update(h.store, FamilyExercises, &h.store.exercises, func(exs []models.Exercise) []models.Exercise {
			return append(slices.Clone(exs), row)
		})
		return nil
	})
	return stored, err
}

func (h *Health) UpdateExercise(ctx context.Context, id string, patch models.ExercisePatch) (*models.Exercise, error) {
	userID := h.userID()
	if userID == "" {
		return nil, ErrSignedOut
	}
	var updated *models.Exercise
	err := h.run(func() error {
		var err error
		updated, err = h.svc.UpdateExercise(ctx, userID, id, patch)
		if err != nil {
			return err
		}
		row := *updated
		update(h.store, FamilyExercises, &h.store.exercises, func(exs []models.Exercise) []models.Exercise {
			return replaceByID(exs, row, func(e models.Exercise) string { return e.ID })
		})
		return nil
	})
	return updated, err
}

// DeleteExercise deletes an exercise and drops it from the cache.
func (h *Health) DeleteExercise(ctx context.Context, id string) error {
	userID := h.userID()
	if userID == "" {
		return ErrSignedOut
	}
	return h.run(func() error {
		if err := h.svc.DeleteExercise(ctx, userID, id); err != nil {
			return err
		}
		update(h.store, FamilyExercises, &h.store.exercises, func(exs []models.Exercise) []models.Exercise {
			return removeByID(exs, id, func(e models.Exercise) string { return e.ID })
		})
		return nil
	})
}
