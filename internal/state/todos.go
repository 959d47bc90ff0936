package state

import (
	"context"
	"slices"

	"github.com/mmynk/stride/internal/models"
	"github.com/mmynk/stride/internal/repo"
)

// TodoService is the domain service the todo hook drives.
type TodoService interface {
	FetchTodos(ctx context.Context, userID string) ([]*models.Todo, error)
	AddTodo(ctx context.Context, t *models.Todo) (*models.Todo, error)
	UpdateTodo(ctx context.Context, userID, id string, patch models.TodoPatch) (*models.Todo, error)
	DeleteTodo(ctx context.Context, userID, id string) error
}

var _ TodoService = (*repo.Todo)(nil)

// Todos is the todo list hook.
type Todos struct {
	base
	svc TodoService
}

func NewTodos(store *Store, svc TodoService, userID UserFunc) *Todos {
	return &Todos{base: base{store: store, userID: userID}, svc: svc}
}

func (h *Todos) Mount(ctx context.Context) error {
	return h.mount(ctx, h.load)
}

// Refresh replaces the cached list with the backend's.
func (h *Todos) Refresh(ctx context.Context) error {
	return h.refresh(ctx, h.load)
}

func (h *Todos) load(ctx context.Context, userID string) error {
	return refetch(ctx, &h.base, FamilyTodos, &h.store.todos, func(ctx context.Context) ([]models.Todo, error) {
		todos, err := h.svc.FetchTodos(ctx, userID)
		return values(todos), err
	})
}

func (h *Todos) Todos() []models.Todo { return h.store.Todos() }

// Pending returns the todos not yet completed.
func (h *Todos) Pending() []models.Todo {
	return slices.DeleteFunc(h.store.Todos(), func(t models.Todo) bool { return t.Completed })
}

// Completed returns the completed todos.
func (h *Todos) Completed() []models.Todo {
	return slices.DeleteFunc(h.store.Todos(), func(t models.Todo) bool { return !t.Completed })
}

// Add creates a todo owned by the signed-in user.
func (h *Todos) Add(ctx context.Context, t *models.Todo) (*models.Todo, error) {
	userID, err := h.requireUser()
	if err != nil {
		return nil, err
	}
	t.UserID = userID

	var stored *models.Todo
	err = h.run(func() error {
		var err error
		stored, err = h.svc.AddTodo(ctx, t)
		if err != nil {
			return err
		}
		row := *stored
		update(h.store, FamilyTodos, &h.store.todos, func(todos []models.Todo) []models.Todo {
			return append(slices.Clone(todos), row)
		})
		return nil
	})
	return stored, err
}

func (h *Todos) Update(ctx context.Context, id string, patch models.TodoPatch) (*models.Todo, error) {
	userID := h.userID()
	if userID == "" {
		return nil, ErrSignedOut
	}
	var updated *models.Todo
	err := h.run(func() error {
		var err error
		updated, err = h.svc.UpdateTodo(ctx, userID, id, patch)
		if err != nil {
			return err
		}
		row := *updated
		update(h.store, FamilyTodos, &h.store.todos, func(todos []models.Todo) []models.Todo {
			return replaceByID(todos, row, todoID)
		})
		return nil
	})
	return updated, err
}

// ToggleComplete flips the completed flag and persists it.
func (h *Todos) ToggleComplete(ctx context.Context, id string) (*models.Todo, error) {
	i := slices.IndexFunc(h.store.Todos(), func(t models.Todo) bool { return t.ID == id })
	completed := true
	if i >= 0 {
		completed = !h.store.Todos()[i].Completed
	}
	return h.Update(ctx, id, models.TodoPatch{Completed: &completed})
}

func (h *Todos) Delete(ctx context.Context, id string) error {
	userID := h.userID()
	if userID == "" {
		return ErrSignedOut
	}
	return h.run(func() error {
		if err := h.svc.DeleteTodo(ctx, userID, id); err != nil {
			return err
		}
		update(h.store, FamilyTodos, &h.store.todos, func(todos []models.Todo) []models.Todo {
			return removeByID(todos, id, todoID)
		})
		return nil
	})
}

func todoID(t models.Todo) string { return t.ID }
