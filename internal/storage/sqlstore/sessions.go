package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// RevokeToken records a token id as revoked until it would have expired anyway.
// Expired revocations are pruned on the way in.
func (s *Store) RevokeToken(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if _, err := s.db.ExecContext(ctx,
		s.rebind(`DELETE FROM revoked_tokens WHERE expires_at < ?`),
		time.Now().Unix(),
	); err != nil {
		return fmt.Errorf("failed to prune revoked tokens: %w", err)
	}

	query := `
		INSERT INTO revoked_tokens (token_id, expires_at)
		VALUES (?, ?)
		ON CONFLICT (token_id) DO NOTHING
	`
	if _, err := s.db.ExecContext(ctx, s.rebind(query), tokenID, expiresAt.Unix()); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// IsTokenRevoked reports whether the token id was revoked.
func (s *Store) IsTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	var id string
	err := s.db.QueryRowContext(ctx,
		s.rebind(`SELECT token_id FROM revoked_tokens WHERE token_id = ?`),
		tokenID,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check revoked token: %w", err)
	}
	return true, nil
}
