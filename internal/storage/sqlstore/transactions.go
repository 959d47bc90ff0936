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

const transactionColumns = `transaction_id, user_id, category, description, amount, type, logged_at`

func scanTransaction(row rowScanner) (*models.Transaction, error) {
	t := &models.Transaction{}
	var loggedAt int64
	if err := row.Scan(
		&t.ID,
		&t.UserID,
		&t.Category,
		&t.Description,
		&t.Amount,
		&t.Type,
		&loggedAt,
	); err != nil {
		return nil, err
	}
	t.LoggedAt = fromUnix(loggedAt)
	return t, nil
}

// ListTransactions returns the transactions of one type for a user, newest first.
func (s *Store) ListTransactions(ctx context.Context, userID string, typ models.TransactionType) ([]*models.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE user_id = ? AND type = ?
		ORDER BY logged_at DESC
	`
	return list(ctx, s, s.db, "transactions", scanTransaction, query, userID, int(typ))
}

// CreateTransaction inserts a transaction, generating its ID and timestamp.
func (s *Store) CreateTransaction(ctx context.Context, t *models.Transaction) error {
	t.ID = uuid.New().String()
	if t.LoggedAt.IsZero() {
		t.LoggedAt = time.Now().UTC().Truncate(time.Second)
	}

	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, s.rebind(query),
		t.ID,
		t.UserID,
		t.Category,
		t.Description,
		t.Amount.String(),
		int(t.Type),
		toUnix(t.LoggedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// UpdateTransaction applies patch to a transaction owned by userID.
func (s *Store) UpdateTransaction(ctx context.Context, userID, id string, patch models.TransactionPatch) (*models.Transaction, error) {
	var updated *models.Transaction
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = ? AND user_id = ?`
		t, err := scanTransaction(tx.QueryRowContext(ctx, s.rebind(query), id, userID))
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("transaction %s: %w", id, storage.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to get transaction: %w", err)
		}

		patch.Apply(t)
		if err := t.Validate(); err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, s.rebind(`
			UPDATE transactions
			SET category = ?, description = ?, amount = ?, type = ?, logged_at = ?
			WHERE transaction_id = ? AND user_id = ?
		`),
			t.Category,
			t.Description,
			t.Amount.String(),
			int(t.Type),
			toUnix(t.LoggedAt),
			id,
			userID,
		)
		if err != nil {
			return fmt.Errorf("failed to update transaction: %w", err)
		}
		updated = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteTransaction removes a transaction owned by userID.
func (s *Store) DeleteTransaction(ctx context.Context, userID, id string) error {
	return s.deleteOwned(ctx, "transactions", "transaction_id", "transaction", userID, id)
}
