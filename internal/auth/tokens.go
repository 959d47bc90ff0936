package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims are the registered JWT claims of a session token. Subject is the user id and
// ID is the session id that logout revokes.
type Claims struct {
	jwt.RegisteredClaims
}

// UserID returns the account the token was issued to.
func (c *Claims) UserID() string { return c.Subject }

// Expiry returns when the token stops being accepted.
func (c *Claims) Expiry() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}

// Issued is a freshly signed session token.
type Issued struct {
	Token     string
	SessionID string
	ExpiresAt time.Time
}

// Tokens signs and verifies HS256 session tokens.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokens returns a token signer. The secret should be at least 32 random bytes.
func NewTokens(secret string, ttl time.Duration) *Tokens {
	return &Tokens{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a new session token for userID.
func (t *Tokens) Issue(userID string) (Issued, error) {
	now := t.now()
	sessionID := uuid.New().String()
	expires := now.Add(t.ttl).Truncate(jwt.TimePrecision)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{jwt.RegisteredClaims{
		ID:        sessionID,
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expires),
	}})
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return Issued{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return Issued{Token: signed, SessionID: sessionID, ExpiresAt: expires}, nil
}

// Parse verifies the signature and lifetime of a token. Every failure wraps
// ErrInvalidToken.
func (t *Tokens) Parse(token string) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	claims := &Claims{}
	if _, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" || claims.ID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
