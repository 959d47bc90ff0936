package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mmynk/stride/internal/models"
	"github.com/mmynk/stride/internal/storage"
)

const todoColumns = `task_id, user_id, title, description, recurrent, recurrent_date, deadline, deadline_date, completed`

func scanTodo(row rowScanner) (*models.Todo, error) {
	t := &models.Todo{}
	var deadline int64
	if err := row.Scan(
		&t.ID,
		&t.UserID,
		&t.Title,
		&t.Description,
		&t.Recurrent,
		&t.Recurrence,
		&t.HasDeadline,
		&deadline,
		&t.Completed,
	); err != nil {
		return nil, err
	}
	t.Deadline = fromUnix(deadline)
	return t, nil
}

// ListTodos returns the todos of a user. Open todos come first, then by deadline.
func (s *Store) ListTodos(ctx context.Context, userID string) ([]*models.Todo, error) {
	query := `
		SELECT ` + todoColumns + `
		FROM todos
		WHERE user_id = ?
		ORDER BY completed, deadline DESC, deadline_date, title
	`
	return list(ctx, s, s.db, "todos", scanTodo, query, userID)
}

// CreateTodo inserts a todo, generating its ID.
func (s *Store) CreateTodo(ctx context.Context, t *models.Todo) error {
	t.ID = uuid.New().String()

	query := `
		INSERT INTO todos (` + todoColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, s.rebind(query),
		t.ID,
		t.UserID,
		t.Title,
		t.Description,
		t.Recurrent,
		string(t.Recurrence),
		t.HasDeadline,
		toUnix(t.Deadline),
		t.Completed,
	)
	if err != nil {
		return fmt.Errorf("failed to insert todo: %w", err)
	}
	return nil
}

// UpdateTodo applies patch to a todo owned by userID.
func (s *Store) UpdateTodo(ctx context.Context, userID, id string, patch models.TodoPatch) (*models.Todo, error) {
	var updated *models.Todo
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		query := `SELECT ` + todoColumns + ` FROM todos WHERE task_id = ? AND user_id = ?`
		t, err := scanTodo(tx.QueryRowContext(ctx, s.rebind(query), id, userID))
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("todo %s: %w", id, storage.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to get todo: %w", err)
		}

		patch.Apply(t)
		if err := t.Validate(); err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, s.rebind(`
			UPDATE todos
			SET title = ?, description = ?, recurrent = ?, recurrent_date = ?,
				deadline = ?, deadline_date = ?, completed = ?
			WHERE task_id = ? AND user_id = ?
		`),
			t.Title,
			t.Description,
			t.Recurrent,
			string(t.Recurrence),
			t.HasDeadline,
			toUnix(t.Deadline),
			t.Completed,
			id,
			userID,
		)
		if err != nil {
			return fmt.Errorf("failed to update todo: %w", err)
		}
		updated = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteTodo removes a todo owned by userID.
func (s *Store) DeleteTodo(ctx context.Context, userID, id string) error {
	return s.deleteOwned(ctx, "todos", "task_id", "todo", userID, id)
}
