package models

import (
	"fmt"
	"math"
	"strings"
)

// MacroUnit declares how a macronutrient target is expressed.
type MacroUnit string

const (
	MacroGrams   MacroUnit = "grams"
	MacroPercent MacroUnit = "percent"
)

// ParseMacroUnit accepts "grams"/"g" and "percent"/"%".
func ParseMacroUnit(s string) (MacroUnit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "grams", "gram", "g":
		return MacroGrams, nil
	case "percent", "percentage", "%":
		return MacroPercent, nil
	}
	return "", fmt.Errorf("unknown macro unit %q", s)
}

// MacroTarget is one macronutrient goal with its declared unit.
type MacroTarget struct {
	Amount float64   `json:"amount"`
	Unit   MacroUnit `json:"unit"`
}

// HydrationUnit is the unit of the daily hydration goal.
type HydrationUnit string

const (
	HydrationCups        HydrationUnit = "cups"
	HydrationOunces      HydrationUnit = "oz"
	HydrationMilliliters HydrationUnit = "ml"
)

// HealthProfile holds a user's nutrition and activity goals.
// There is at most one profile per user; it is created during onboarding.
type HealthProfile struct {
	UserID string `json:"user_id"`

	// CalorieGoal is the daily calorie target (kcal).
	CalorieGoal float64 `json:"calorie_goal"`

	Carbs   MacroTarget `json:"carbs"`
	Fats    MacroTarget `json:"fats"`
	Protein MacroTarget `json:"protein"`

	HydrationGoal float64       `json:"hydration_goal"`
	HydrationUnit HydrationUnit `json:"hydration_goal_unit"`

	// CardioGoal is the daily cardio target in minutes.
	CardioGoal float64 `json:"cardio_goal"`

	// StepsGoal is the daily step count target.
	StepsGoal int `json:"steps_goal"`
}

// DefaultHealthProfile returns the onboarding defaults for the given macro unit.
func DefaultHealthProfile(userID string, unit MacroUnit) *HealthProfile {
	p := &HealthProfile{
		UserID:        userID,
		CalorieGoal:   2000,
		HydrationGoal: 8,
		HydrationUnit: HydrationCups,
		CardioGoal:    30,
		StepsGoal:     10000,
	}
	if unit == MacroGrams {
		// 50/30/20 split of 2000 kcal at 4/9/4 kcal per gram.
		p.Carbs = MacroTarget{Amount: 250, Unit: MacroGrams}
		p.Fats = MacroTarget{Amount: 67, Unit: MacroGrams}
		p.Protein = MacroTarget{Amount: 100, Unit: MacroGrams}
		return p
	}
	p.Carbs = MacroTarget{Amount: 50, Unit: MacroPercent}
	p.Fats = MacroTarget{Amount: 30, Unit: MacroPercent}
	p.Protein = MacroTarget{Amount: 20, Unit: MacroPercent}
	return p
}

// Validate checks the profile invariants. Percent macros must add up to 100 when all
// three are declared as percentages.
func (p *HealthProfile) Validate() error {
	if p.UserID == "" {
		return invalidf("health profile user_id is required")
	}
	if p.CalorieGoal < 0 || p.HydrationGoal < 0 || p.CardioGoal < 0 || p.StepsGoal < 0 {
		return invalidf("health goals must not be negative")
	}
	for name, m := range map[string]MacroTarget{"carbs": p.Carbs, "fats": p.Fats, "protein": p.Protein} {
		if m.Unit != MacroGrams && m.Unit != MacroPercent {
			return invalidf("%s unit must be grams or percent", name)
		}
		if m.Amount < 0 {
			return invalidf("%s must not be negative", name)
		}
		if m.Unit == MacroPercent && m.Amount > 100 {
			return invalidf("%s must be at most 100 percent", name)
		}
	}
	if p.Carbs.Unit == MacroPercent && p.Fats.Unit == MacroPercent && p.Protein.Unit == MacroPercent {
		if sum := p.Carbs.Amount + p.Fats.Amount + p.Protein.Amount; math.Abs(sum-100) > 0.001 {
			return invalidf("macronutrient split must add up to 100 percent, got %g", sum)
		}
	}
	switch p.HydrationUnit {
	case HydrationCups, HydrationOunces, HydrationMilliliters:
	default:
		return invalidf("unknown hydration unit %q", p.HydrationUnit)
	}
	return nil
}
