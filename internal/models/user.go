package models

import (
	"time"

	"github.com/google/uuid"
)

// Default display preferences applied at registration.
const (
	DefaultCurrency = "USD"
	DefaultLanguage = "en"
	DefaultTheme    = "default"
)

// User represents a registered user account.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string `json:"user_id"`

	// Name is the display name of the user.
	Name string `json:"name"`

	// Email is the user's email address (unique). Used for login.
	Email string `json:"email"`

	// PasswordHash is the bcrypt hash of the user's password.
	// Never sent over the wire.
	PasswordHash string `json:"-"`

	// Currency is the ISO 4217 code used to display amounts (e.g. "USD").
	Currency string `json:"currency"`

	// Language is the preferred UI language (e.g. "en").
	Language string `json:"language"`

	// Theme is the preferred UI theme name.
	Theme string `json:"theme"`

	// CreatedAt is the Unix timestamp when the user account was created.
	CreatedAt int64 `json:"created_at"`
}

// NewUser creates a user with a fresh ID, the given identity and default preferences.
func NewUser(email, name, passwordHash string) *User {
	return &User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Currency:     DefaultCurrency,
		Language:     DefaultLanguage,
		Theme:        DefaultTheme,
		CreatedAt:    time.Now().Unix(),
	}
}
