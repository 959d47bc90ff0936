package api

import "github.com/mmynk/stride/internal/models"

type ListTodosRequest struct {
	UserID string `json:"user_id"`
}

type ListTodosResponse struct {
	Todos []*models.Todo `json:"todos"`
}

type CreateTodoRequest struct {
	Todo *models.Todo `json:"todo"`
}

type CreateTodoResponse struct {
	Todo *models.Todo `json:"todo"`
}

type UpdateTodoRequest struct {
	UserID string           `json:"user_id"`
	TaskID string           `json:"task_id"`
	Patch  models.TodoPatch `json:"patch"`
}

type UpdateTodoResponse struct {
	Todo *models.Todo `json:"todo"`
}

type DeleteTodoRequest struct {
	UserID string `json:"user_id"`
	TaskID string `json:"task_id"`
}

type DeleteTodoResponse struct{}
