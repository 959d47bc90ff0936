// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/mmynk/stride/internal/models"
)

// ErrNotFound is returned (wrapped) when a record does not exist or is not owned by
// the requesting user.
var ErrNotFound = errors.New("not found")

// UserStore persists user accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	// GetUserByEmail and GetUserByID return (nil, nil) if the user does not exist.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// SessionStore tracks revoked session tokens.
type SessionStore interface {
	RevokeToken(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsTokenRevoked(ctx context.Context, tokenID string) (bool, error)
}

// WalletStore persists the single wallet of a user.
type WalletStore interface {
	// GetWallet returns ErrNotFound if the user has no wallet.
	GetWallet(ctx context.Context, userID string) (*models.Wallet, error)
	// SaveWallet inserts or replaces the wallet keyed by its user id.
	SaveWallet(ctx context.Context, wallet *models.Wallet) error
}

// TransactionStore persists wallet transactions.
type TransactionStore interface {
	ListTransactions(ctx context.Context, userID string, typ models.TransactionType) ([]*models.Transaction, error)
	// CreateTransaction assigns ID and, when zero, LoggedAt before inserting.
	CreateTransaction(ctx context.Context, tx *models.Transaction) error
	UpdateTransaction(ctx context.Context, userID, id string, patch models.TransactionPatch) (*models.Transaction, error)
	DeleteTransaction(ctx context.Context, userID, id string) error
}

// HealthStore persists the single health profile of a user.
type HealthStore interface {
	// GetHealthProfile returns ErrNotFound if the user has no profile.
	GetHealthProfile(ctx context.Context, userID string) (*models.HealthProfile, error)
	SaveHealthProfile(ctx context.Context, profile *models.HealthProfile) error
}

// ExerciseStore persists logged exercises.
type ExerciseStore interface {
	ListExercises(ctx context.Context, userID string) ([]*models.Exercise, error)
	CreateExercise(ctx context.Context, ex *models.Exercise) error
	UpdateExercise(ctx context.Context, userID, id string, patch models.ExercisePatch) (*models.Exercise, error)
	DeleteExercise(ctx context.Context, userID, id string) error
}

// TodoStore persists todos.
type TodoStore interface {
	ListTodos(ctx context.Context, userID string) ([]*models.Todo, error)
	CreateTodo(ctx context.Context, todo *models.Todo) error
	UpdateTodo(ctx context.Context, userID, id string, patch models.TodoPatch) (*models.Todo, error)
	DeleteTodo(ctx context.Context, userID, id string) error
}

// CalendarStore persists calendar events.
type CalendarStore interface {
	ListEvents(ctx context.Context, userID string) ([]*models.CalendarEvent, error)
	CreateEvent(ctx context.Context, event *models.CalendarEvent) error
	UpdateEvent(ctx context.Context, userID, id string, patch models.EventPatch) (*models.CalendarEvent, error)
	DeleteEvent(ctx context.Context, userID, id string) error
}

// Records is the per-table CRUD surface shared by the SQL store on the backend and
// the remote store client on the device.
type Records interface {
	WalletStore
	TransactionStore
	HealthStore
	ExerciseStore
	TodoStore
	CalendarStore
}

// Store is the full backend storage. This abstraction allows swapping storage
// backends (SQLite, PostgreSQL) without changing the service layer.
type Store interface {
	Records
	UserStore
	SessionStore

	// Close releases any resources held by the store.
	Close() error
}
