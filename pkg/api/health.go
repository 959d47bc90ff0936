package api

import "github.com/mmynk/stride/internal/models"

type GetHealthProfileRequest struct {
	UserID string `json:"user_id"`
}

type GetHealthProfileResponse struct {
	Profile *models.HealthProfile `json:"profile"`
}

type SaveHealthProfileRequest struct {
	Profile *models.HealthProfile `json:"profile"`
}

type SaveHealthProfileResponse struct {
	Profile *models.HealthProfile `json:"profile"`
}

type ListExercisesRequest struct {
	UserID string `json:"user_id"`
}

type ListExercisesResponse struct {
	Exercises []*models.Exercise `json:"exercises"`
}

type CreateExerciseRequest struct {
	Exercise *models.Exercise `json:"exercise"`
}

type CreateExerciseResponse struct {
	Exercise *models.Exercise `json:"exercise"`
}

type UpdateExerciseRequest struct {
	UserID     string               `json:"user_id"`
	ExerciseID string               `json:"exercise_id"`
	Patch      models.ExercisePatch `json:"patch"`
}

type UpdateExerciseResponse struct {
	Exercise *models.Exercise `json:"exercise"`
}

type DeleteExerciseRequest struct {
	UserID     string `json:"user_id"`
	ExerciseID string `json:"exercise_id"`
}

type DeleteExerciseResponse struct{}
