// Package auth implements Stride accounts: registration, password checks and the
// signed session tokens devices present on every call.
package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/mmynk/stride/internal/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrEmailExists        = errors.New("email already registered")
	ErrMissingIdentity    = errors.New("email and name are required")

	ErrInvalidToken = errors.New("invalid or expired token")
	ErrMissingToken = errors.New("authorization token required")
	ErrRevokedToken = errors.New("token has been revoked")
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 8

// NewAccount is the identity submitted at registration.
type NewAccount struct {
	Email    string
	Name     string
	Password string
}

// normalized trims the identity fields and lower-cases the email.
func (n NewAccount) normalized() NewAccount {
	n.Email = NormalizeEmail(n.Email)
	n.Name = strings.TrimSpace(n.Name)
	return n
}

func (n NewAccount) validate() error {
	if n.Email == "" || n.Name == "" {
		return ErrMissingIdentity
	}
	if len(n.Password) < MinPasswordLength {
		return ErrWeakPassword
	}
	return nil
}

// Authenticator creates accounts and checks credentials. The service layer only sees
// this interface, so another credential scheme can replace passwords.
type Authenticator interface {
	Register(ctx context.Context, acct NewAccount) (*models.User, error)
	// Authenticate returns ErrInvalidCredentials for an unknown email or a wrong password.
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
}

// NormalizeEmail trims and lower-cases an email so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
