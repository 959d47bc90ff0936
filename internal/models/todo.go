package models

import (
	"strings"
	"time"
)

// Todo is a task on the user's list.
type Todo struct {
	// ID is the unique identifier for the task (UUID format).
	ID string `json:"task_id"`

	UserID      string `json:"user_id"`
	Title       string `json:"title"`
	Description string `json:"description"`

	Recurrent  bool       `json:"recurrent"`
	Recurrence Recurrence `json:"recurrent_date,omitempty"`

	HasDeadline bool      `json:"deadline"`
	Deadline    time.Time `json:"deadline_date"`

	// Completed is persisted so completion survives a reload.
	Completed bool `json:"completed"`
}

// Validate checks the todo invariants.
func (t *Todo) Validate() error {
	if t.UserID == "" {
		return invalidf("todo user_id is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return invalidf("todo title is required")
	}
	if err := validateRecurrence(t.Recurrent, t.Recurrence); err != nil {
		return err
	}
	if t.HasDeadline && t.Deadline.IsZero() {
		return invalidf("todo deadline_date is required when deadline is set")
	}
	return nil
}

// TodoPatch is a partial update of a todo.
type TodoPatch struct {
	Title       *string     `json:"title,omitempty"`
	Description *string     `json:"description,omitempty"`
	Recurrent   *bool       `json:"recurrent,omitempty"`
	Recurrence  *Recurrence `json:"recurrent_date,omitempty"`
	HasDeadline *bool       `json:"deadline,omitempty"`
	Deadline    *time.Time  `json:"deadline_date,omitempty"`
	Completed   *bool       `json:"completed,omitempty"`
}

// Apply copies the patch fields onto t. Turning recurrence or the deadline off
// clears the dependent field.
func (p *TodoPatch) Apply(t *Todo) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Recurrent != nil {
		t.Recurrent = *p.Recurrent
	}
	if p.Recurrence != nil {
		t.Recurrence = *p.Recurrence
	}
	if !t.Recurrent {
		t.Recurrence = ""
	}
	if p.HasDeadline != nil {
		t.HasDeadline = *p.HasDeadline
	}
	if p.Deadline != nil {
		t.Deadline = *p.Deadline
	}
	if !t.HasDeadline {
		t.Deadline = time.Time{}
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
}
