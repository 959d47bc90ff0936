package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/stride/internal/storage"
	"github.com/mmynk/stride/pkg/api"
)

// TodoService implements the Connect TodoService.
type TodoService struct {
	todos  storage.TodoStore
	logger *slog.Logger
}

// NewTodoService creates a new TodoService with the given storage backend.
func NewTodoService(todos storage.TodoStore, logger *slog.Logger) *TodoService {
	return &TodoService{todos: todos, logger: logger}
}

// ListTodos returns the caller's todos.
func (s *TodoService) ListTodos(ctx context.Context, req *connect.Request[api.ListTodosRequest]) (*connect.Response[api.ListTodosResponse], error) {
	userID, err := owner(ctx, req.Msg.UserID)
	if err != nil {
		return nil, err
	}

	todos, err := s.todos.ListTodos(ctx, userID)
	if err != nil {
		s.logger.Error("ListTodos failed", "user_id", userID, "error", err)
		return nil, storeError(err)
	}
	return connect.NewResponse(&api.ListTodosResponse{Todos: todos}), nil
}

// CreateTodo adds a todo for the caller.
func (s *TodoService) CreateTodo(ctx context.Context, req *connect.Request[api.CreateTodoRequest]) (*connect.Response[api.CreateTodoResponse], error) {
	t := req.Msg.Todo
	if t == nil {
		return nil, missing("todo")
	}
	userID, err := owner(ctx, t.UserID)
	if err != nil {
		return nil, err
	}
	t.UserID = userID
	if err := t.Validate(); err != nil {
		return nil, storeError(err)
	}

	if err := s.todos.CreateTodo(ctx, t); err != nil {
		s.logger.Error("CreateTodo failed", "user_id", userID, "error", err)
		return nil, storeError(err)
	}
	s.logger.Info("Todo created", "user_id", userID, "task_id", t.ID)
	return connect.NewResponse(&api.CreateTodoResponse{Todo: t}), nil
}

// UpdateTodo patches one of the caller's todos, including its completion flag.
func (s *TodoService) UpdateTodo(ctx context.Context, req *connect.Request[api.UpdateTodoRequest]) (*connect.Response[api.UpdateTodoResponse], error) {
	userID, err := owner(ctx, req.Msg.UserID)
	if err != nil {
		return nil, err
	}
	if req.Msg.TaskID == "" {
		return nil, missing("task_id")
	}

	t, err := s.todos.UpdateTodo(ctx, userID, req.Msg.TaskID, req.Msg.Patch)
	if err != nil {
		return nil, storeError(err)
	}
	return connect.NewResponse(&api.UpdateTodoResponse{Todo: t}), nil
}

// DeleteTodo removes one of the caller's todos.
func (s *TodoService) DeleteTodo(ctx context.Context, req *connect.Request[api.DeleteTodoRequest]) (*connect.Response[api.DeleteTodoResponse], error) {
	userID, err := owner(ctx, req.Msg.UserID)
	if err != nil {
		return nil, err
	}
	if req.Msg.TaskID == "" {
		return nil, missing("task_id")
	}

	if err := s.todos.DeleteTodo(ctx, userID, req.Msg.TaskID); err != nil {
		return nil, storeError(err)
	}
	s.logger.Info("Todo deleted", "user_id", userID, "task_id", req.Msg.TaskID)
	return connect.NewResponse(&api.DeleteTodoResponse{}), nil
}
