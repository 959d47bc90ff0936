package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mmynk/stride/internal/models"
	"github.com/mmynk/stride/internal/storage"
)

// GetWallet retrieves the wallet of a user.
func (s *Store) GetWallet(ctx context.Context, userID string) (*models.Wallet, error) {
	query := `
		SELECT user_id, balance, savings_goal, daily_budget, currency
		FROM user_wallet
		WHERE user_id = ?
	`

	w := &models.Wallet{}
	err := s.db.QueryRowContext(ctx, s.rebind(query), userID).Scan(
		&w.UserID,
		&w.Balance,
		&w.SavingsGoal,
		&w.DailyBudget,
		&w.Currency,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("wallet for user %s: %w", userID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	return w, nil
}

// SaveWallet inserts the wallet or replaces the existing one for the same user.
func (s *Store) SaveWallet(ctx context.Context, w *models.Wallet) error {
	query := `
		INSERT INTO user_wallet (user_id, balance, savings_goal, daily_budget, currency)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			balance = excluded.balance,
			savings_goal = excluded.savings_goal,
			daily_budget = excluded.daily_budget,
			currency = excluded.currency
	`

	_, err := s.db.ExecContext(ctx, s.rebind(query),
		w.UserID,
		w.Balance.String(),
		w.SavingsGoal.String(),
		w.DailyBudget.String(),
		w.Currency,
	)
	if err != nil {
		return fmt.Errorf("failed to save wallet: %w", err)
	}
	return nil
}
