package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mmynk/stride/internal/models"
	"github.com/mmynk/stride/internal/storage"
)

// GetHealthProfile retrieves the health profile of a user.
func (s *Store) GetHealthProfile(ctx context.Context, userID string) (*models.HealthProfile, error) {
	query := `
		SELECT user_id, calorie_goal,
			carbs, carbs_unit, fats, fats_unit, protein, protein_unit,
			hydration_goal, hydration_goal_unit, cardio_goal, steps_goal
		FROM user_health
		WHERE user_id = ?
	`

	p := &models.HealthProfile{}
	err := s.db.QueryRowContext(ctx, s.rebind(query), userID).Scan(
		&p.UserID,
		&p.CalorieGoal,
		&p.Carbs.Amount, &p.Carbs.Unit,
		&p.Fats.Amount, &p.Fats.Unit,
		&p.Protein.Amount, &p.Protein.Unit,
		&p.HydrationGoal,
		&p.HydrationUnit,
		&p.CardioGoal,
		&p.StepsGoal,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("health profile for user %s: %w", userID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get health profile: %w", err)
	}
	return p, nil
}

// SaveHealthProfile inserts the profile or replaces the existing one for the same user.
func (s *Store) SaveHealthProfile(ctx context.Context, p *models.HealthProfile) error {
	query := `
		INSERT INTO user_health (user_id, calorie_goal,
			carbs, carbs_unit, fats, fats_unit, protein, protein_unit,
			hydration_goal, hydration_goal_unit, cardio_goal, steps_goal)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			calorie_goal = excluded.calorie_goal,
			carbs = excluded.carbs,
			carbs_unit = excluded.carbs_unit,
			fats = excluded.fats,
			fats_unit = excluded.fats_unit,
			protein = excluded.protein,
			protein_unit = excluded.protein_unit,
			hydration_goal = excluded.hydration_goal,
			hydration_goal_unit = excluded.hydration_goal_unit,
			cardio_goal = excluded.cardio_goal,
			steps_goal = excluded.steps_goal
	`

	_, err := s.db.ExecContext(ctx, s.rebind(query),
		p.UserID,
		p.CalorieGoal,
		p.Carbs.Amount, string(p.Carbs.Unit),
		p.Fats.Amount, string(p.Fats.Unit),
		p.Protein.Amount, string(p.Protein.Unit),
		p.HydrationGoal,
		string(p.HydrationUnit),
		p.CardioGoal,
		p.StepsGoal,
	)
	if err != nil {
		return fmt.Errorf("failed to save health profile: %w", err)
	}
	return nil
}
