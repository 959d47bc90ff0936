package calculator

import (
	"sort"
	"time"

	"cloud.google.com/go/civil"

	"github.com/mmynk/stride/internal/models"
)

// DefaultHeatmapDays is twelve weeks, the span of the gym progress tracker.
const DefaultHeatmapDays = 84

// IntensityLevel classifies a day by how many distinct workout types were logged.
//
//	0 types -> 0, 1 -> 1, 2 -> 2, 3 or more -> 3
func IntensityLevel(distinctTypes int) int {
	switch {
	case distinctTypes <= 0:
		return 0
	case distinctTypes >= 3:
		return 3
	default:
		return distinctTypes
	}
}

// DayActivity is one cell of the activity heatmap.
type DayActivity struct {
	Date         civil.Date
	Level        int
	WorkoutTypes []models.WorkoutType // sorted, distinct
}

// WorkoutTypesByDate returns the distinct workout types logged on each civil date.
func WorkoutTypesByDate(exercises []*models.Exercise, loc *time.Location) map[civil.Date]map[models.WorkoutType]struct{} {
	byDate := make(map[civil.Date]map[models.WorkoutType]struct{})
	for _, ex := range exercises {
		d := DateOf(ex.LoggedAt, loc)
		if _, ok := byDate[d]; !ok {
			byDate[d] = make(map[models.WorkoutType]struct{})
		}
		byDate[d][ex.WorkoutType] = struct{}{}
	}
	return byDate
}

// DayIntensity returns the intensity level of a single date.
func DayIntensity(exercises []*models.Exercise, day civil.Date, loc *time.Location) int {
	return IntensityLevel(len(WorkoutTypesByDate(exercises, loc)[day]))
}

// Heatmap returns one DayActivity for each of the n days ending at today, oldest
// first.
func Heatmap(exercises []*models.Exercise, today civil.Date, n int, loc *time.Location) []DayActivity {
	byDate := WorkoutTypesByDate(exercises, loc)
	days := LastNDays(today, n)
	cells := make([]DayActivity, len(days))
	for i, d := range days {
		set := byDate[d]
		types := make([]models.WorkoutType, 0, len(set))
		for t := range set {
			types = append(types, t)
		}
		sort.Slice(types, func(a, b int) bool { return types[a] < types[b] })
		cells[i] = DayActivity{Date: d, Level: IntensityLevel(len(types)), WorkoutTypes: types}
	}
	return cells
}

// ExercisesOn returns the exercises logged on day.
func ExercisesOn(exercises []*models.Exercise, day civil.Date, loc *time.Location) []*models.Exercise {
	var out []*models.Exercise
	for _, ex := range exercises {
		if DateOf(ex.LoggedAt, loc) == day {
			out = append(out, ex)
		}
	}
	return out
}

// CardioMinutesOn totals the duration of cardio exercises logged on day.
func CardioMinutesOn(exercises []*models.Exercise, day civil.Date, loc *time.Location) float64 {
	var total float64
	for _, ex := range ExercisesOn(exercises, day, loc) {
		if ex.WorkoutType == models.Cardio {
			total += ex.DurationMin
		}
	}
	return total
}
