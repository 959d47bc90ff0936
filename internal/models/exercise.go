package models

import (
	"fmt"
	"strings"
	"time"
)

// WorkoutType classifies an exercise.
type WorkoutType string

const (
	Weights  WorkoutType = "weights"
	Cardio   WorkoutType = "cardio"
	Mobility WorkoutType = "mobility"
)

// ParseWorkoutType returns the workout type named by s.
func ParseWorkoutType(s string) (WorkoutType, error) {
	switch t := WorkoutType(strings.ToLower(strings.TrimSpace(s))); t {
	case Weights, Cardio, Mobility:
		return t, nil
	}
	return "", fmt.Errorf("unknown workout type %q", s)
}

// WeightUnit is the unit of Exercise.Weight.
type WeightUnit string

const (
	Kilograms  WeightUnit = "kg"
	Pounds     WeightUnit = "lbs"
	Bodyweight WeightUnit = "bodyweight"
)

// Exercise is a single logged workout.
type Exercise struct {
	// ID is the unique identifier for the exercise (UUID format).
	ID string `json:"id"`

	UserID      string      `json:"user_id"`
	WorkoutType WorkoutType `json:"workout_type"`

	// Name of the exercise (e.g. "Bench press", "Run").
	Name string `json:"exercise"`

	Reps       int        `json:"reps"`
	Weight     float64    `json:"weight"`
	WeightUnit WeightUnit `json:"weight_unit"`

	DurationMin float64 `json:"duration_min"`

	// Intensity is the distance covered, used for cardio only.
	Intensity float64 `json:"intensity"`

	LoggedAt time.Time `json:"logged_at"`
}

// Normalize applies the form rules: bodyweight exercises carry no weight and an
// empty unit defaults to kilograms.
func (e *Exercise) Normalize() {
	if e.WeightUnit == "" {
		e.WeightUnit = Kilograms
	}
	if e.WeightUnit == Bodyweight {
		e.Weight = 0
	}
}

// Validate checks the exercise invariants.
func (e *Exercise) Validate() error {
	if e.UserID == "" {
		return invalidf("exercise user_id is required")
	}
	if _, err := ParseWorkoutType(string(e.WorkoutType)); err != nil {
		return invalidf("%v", err)
	}
	if strings.TrimSpace(e.Name) == "" {
		return invalidf("exercise name is required")
	}
	switch e.WeightUnit {
	case Kilograms, Pounds, Bodyweight:
	default:
		return invalidf("unknown weight unit %q", e.WeightUnit)
	}
	if e.Reps < 0 || e.Weight < 0 || e.DurationMin < 0 || e.Intensity < 0 {
		return invalidf("exercise values must not be negative")
	}
	return nil
}

// ExercisePatch is a partial update of an exercise.
type ExercisePatch struct {
	WorkoutType *WorkoutType `json:"workout_type,omitempty"`
	Name        *string      `json:"exercise,omitempty"`
	Reps        *int         `json:"reps,omitempty"`
	Weight      *float64     `json:"weight,omitempty"`
	WeightUnit  *WeightUnit  `json:"weight_unit,omitempty"`
	DurationMin *float64     `json:"duration_min,omitempty"`
	Intensity   *float64     `json:"intensity,omitempty"`
	LoggedAt    *time.Time   `json:"logged_at,omitempty"`
}

// Apply copies the patch fields onto e and re-normalizes it.
func (p *ExercisePatch) Apply(e *Exercise) {
	if p.WorkoutType != nil {
		e.WorkoutType = *p.WorkoutType
	}
	if p.Name != nil {
		e.Name = *p.Name
	}
	if p.Reps != nil {
		e.Reps = *p.Reps
	}
	if p.Weight != nil {
		e.Weight = *p.Weight
	}
	if p.WeightUnit != nil {
		e.WeightUnit = *p.WeightUnit
	}
	if p.DurationMin != nil {
		e.DurationMin = *p.DurationMin
	}
	if p.Intensity != nil {
		e.Intensity = *p.Intensity
	}
	if p.LoggedAt != nil {
		e.LoggedAt = *p.LoggedAt
	}
	e.Normalize()
}
