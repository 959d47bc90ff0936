package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/stride/internal/storage"
	"github.com/mmynk/stride/pkg/api"
)

// HealthService implements the Connect HealthService.
type HealthService struct {
	profiles  storage.HealthStore
	exercises storage.ExerciseStore
	logger    *slog.Logger
}

// NewHealthService creates a new HealthService with the given storage backend.
func NewHealthService(store storage.Records, logger *slog.Logger) *HealthService {
	return &HealthService{profiles: store, exercises: store, logger: logger}
}

// GetHealthProfile returns the caller's profile, or NotFound before onboarding.
func (s *HealthService) GetHealthProfile(ctx context.Context, req *connect.Request[api.GetHealthProfileRequest]) (*connect.Response[api.GetHealthProfileResponse], error) {
	userID, err := owner(ctx, req.Msg.UserID)
	if err != nil {
		return nil, err
	}

	p, err := s.profiles.GetHealthProfile(ctx, userID)
	if err != nil {
		return nil, storeError(err)
	}
	return connect.NewResponse(&api.GetHealthProfileResponse{Profile: p}), nil
}

// SaveHealthProfile creates or replaces the caller's profile.
func (s *HealthService) SaveHealthProfile(ctx context.Context, req *connect.Request[api.SaveHealthProfileRequest]) (*connect.Response[api.SaveHealthProfileResponse], error) {
	p := req.Msg.Profile
	if p == nil {
		return nil, missing("profile")
	}
	userID, err := owner(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	p.UserID = userID
	if err := p.Validate(); err != nil {
		return nil, storeError(err)
	}

	if err := s.profiles.SaveHealthProfile(ctx, p); err != nil {
		s.logger.Error("SaveHealthProfile failed", "user_id", userID, "error", err)
		return nil, storeError(err)
	}
	s.logger.Info("Health profile saved", "user_id", userID)
	return connect.NewResponse(&api.SaveHealthProfileResponse{Profile: p}), nil
}

// ListExercises returns the caller's logged exercises.
func (s *HealthService) ListExercises(ctx context.Context, req *connect.Request[api.ListExercisesRequest]) (*connect.Response[api.ListExercisesResponse], error) {
	userID, err := owner(ctx, req.Msg.UserID)
	if err != nil {
		return nil, err
	}

	exercises, err := s.exercises.ListExercises(ctx, userID)
	if err != nil {
		s.logger.Error("ListExercises failed", "user_id", userID, "error", err)
		return nil, storeError(err)
	}
	return connect.NewResponse(&api.ListExercisesResponse{Exercises: exercises}), nil
}

// CreateExercise logs an exercise for the caller.
func (s *HealthService) CreateExercise(ctx context.Context, req *connect.Request[api.CreateExerciseRequest]) (*connect.Response[api.CreateExerciseResponse], error) {
	e := req.Msg.Exercise
	if e == nil {
		return nil, missing("exercise")
	}
	userID, err := owner(ctx, e.UserID)
	if err != nil {
		return nil, err
	}
	e.UserID = userID
	e.Normalize()
	if err := e.Validate(); err != nil {
		return nil, storeError(err)
	}

	if err := s.exercises.CreateExercise(ctx, e); err != nil {
		s.logger.Error("CreateExercise failed", "user_id", userID, "error", err)
		return nil, storeError(err)
	}
	s.logger.Info("Exercise logged", "user_id", userID, "exercise_id", e.ID, "workout_type", e.WorkoutType)
	return connect.NewResponse(&api.CreateExerciseResponse{Exercise: e}), nil
}

// UpdateExercise patches one of the caller's exercises.
func (s *HealthService) UpdateExercise(ctx context.Context, req *connect.Request[api.UpdateExerciseRequest]) (*connect.Response[api.UpdateExerciseResponse], error) {
	userID, err := owner(ctx, req.Msg.UserID)
	if err != nil {
		return nil, err
	}
	if req.Msg.ExerciseID == "" {
		return nil, missing("exercise_id")
	}

	e, err := s.exercises.UpdateExercise(ctx, userID, req.Msg.ExerciseID, req.Msg.Patch)
	if err != nil {
		return nil, storeError(err)
	}
	return connect.NewResponse(&api.UpdateExerciseResponse{Exercise: e}), nil
}

// DeleteExercise removes one of the caller's exercises.
func (s *HealthService) DeleteExercise(ctx context.Context, req *connect.Request[api.DeleteExerciseRequest]) (*connect.Response[api.DeleteExerciseResponse], error) {
	userID, err := owner(ctx, req.Msg.UserID)
	if err != nil {
		return nil, err
	}
	if req.Msg.ExerciseID == "" {
		return nil, missing("exercise_id")
	}

	if err := s.exercises.DeleteExercise(ctx, userID, req.Msg.ExerciseID); err != nil {
		return nil, storeError(err)
	}
	s.logger.Info("Exercise deleted", "user_id", userID, "exercise_id", req.Msg.ExerciseID)
	return connect.NewResponse(&api.DeleteExerciseResponse{}), nil
}
