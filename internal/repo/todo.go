package repo

import (
	"context"
	"log/slog"

	"github.com/mmynk/stride/internal/models"
	"github.com/mmynk/stride/internal/storage"
)

// Todo is the domain service for todos.
type Todo struct {
	store  storage.TodoStore
	logger *slog.Logger
}

// NewTodo creates a todo service over store.
func NewTodo(store storage.TodoStore, logger *slog.Logger) *Todo {
	return &Todo{store: store, logger: logger}
}

// FetchTodos returns the user's todos.
func (s *Todo) FetchTodos(ctx context.Context, userID string) ([]*models.Todo, error) {
	return fetchAll(ctx, s.logger, "fetch todos", userID, s.store.ListTodos)
}

// AddTodo inserts t and returns the stored row.
func (s *Todo) AddTodo(ctx context.Context, t *models.Todo) (*models.Todo, error) {
	const op = "add todo"
	if err := t.Validate(); err != nil {
		return nil, invalid(op, err)
	}
	stored := *t
	if err := mutate(s.logger, op, t.UserID, s.store.CreateTodo(ctx, &stored)); err != nil {
		return nil, err
	}
	return &stored, nil
}

// UpdateTodo patches a todo and returns the stored row.
func (s *Todo) UpdateTodo(ctx context.Context, userID, id string, patch models.TodoPatch) (*models.Todo, error) {
	const op = "update todo"
	if err := requireUser(op, userID); err != nil {
		return nil, err
	}
	t, err := s.store.UpdateTodo(ctx, userID, id, patch)
	if err := mutate(s.logger, op, userID, err); err != nil {
		return nil, err
	}
	return t, nil
}

// DeleteTodo removes a todo.
func (s *Todo) DeleteTodo(ctx context.Context, userID, id string) error {
	const op = "delete todo"
	if err := requireUser(op, userID); err != nil {
		return err
	}
	return mutate(s.logger, op, userID, s.store.DeleteTodo(ctx, userID, id))
}
