package auth

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/stride/internal/models"
)

// Accounts is the user lookup and insert a Passwords authenticator needs.
type Accounts interface {
	CreateUser(ctx context.Context, user *models.User) error
	// GetUserByEmail returns (nil, nil) when no account uses the email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

var _ Authenticator = (*Passwords)(nil)

// Passwords authenticates accounts by bcrypt-hashed password.
type Passwords struct {
	accounts Accounts
	cost     int
}

// NewPasswords returns a password authenticator. A cost of 0 uses bcrypt.DefaultCost;
// tests pass bcrypt.MinCost.
func NewPasswords(accounts Accounts, cost int) *Passwords {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &Passwords{accounts: accounts, cost: cost}
}

func (p *Passwords) Register(ctx context.Context, acct NewAccount) (*models.User, error) {
	acct = acct.normalized()
	if err := acct.validate(); err != nil {
		return nil, err
	}

	existing, err := p.accounts.GetUserByEmail(ctx, acct.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up email: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(acct.Password), p.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.NewUser(acct.Email, acct.Name, string(hash))
	if err := p.accounts.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (p *Passwords) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	user, err := p.accounts.GetUserByEmail(ctx, NormalizeEmail(email))
	if err != nil || user == nil {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
