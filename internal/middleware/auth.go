// Package middleware holds the Connect interceptors shared by every Stride service.
package middleware

import (
	"context"
	"fmt"
	"strings"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/stride/internal/auth"
	"github.com/mmynk/stride/internal/models"
)

type identityKey struct{}

// Identity is the authenticated caller of an RPC.
type Identity struct {
	UserID    string
	SessionID string
	ExpiresAt time.Time
}

// WithIdentity stores id in ctx.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFrom returns the caller stored by RequireAuth.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

// GetUserID returns the authenticated user id, or "" for a public call.
func GetUserID(ctx context.Context) string {
	id, _ := IdentityFrom(ctx)
	return id.UserID
}

// UserLookup finds users by id.
type UserLookup interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// RevocationChecker reports revoked token ids.
type RevocationChecker interface {
	IsTokenRevoked(ctx context.Context, tokenID string) (bool, error)
}

// RequireAuth returns an interceptor that rejects calls without a live session token.
// Tokens that are expired, revoked or issued to a deleted user fail with
// CodeUnauthenticated. Procedures listed in public skip the check.
func RequireAuth(tokens *auth.Tokens, users UserLookup, sessions RevocationChecker, public ...string) connect.UnaryInterceptorFunc {
	skip := make(map[string]bool, len(public))
	for _, p := range public {
		skip[p] = true
	}

	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if skip[req.Spec().Procedure] {
				return next(ctx, req)
			}

			tokenString, err := bearerToken(req.Header().Get("Authorization"))
			if err != nil {
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}

			claims, err := tokens.Parse(tokenString)
			if err != nil {
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}

			revoked, err := sessions.IsTokenRevoked(ctx, claims.ID)
			if err != nil {
				return nil, connect.NewError(connect.CodeInternal, fmt.Errorf("failed to check session: %w", err))
			}
			if revoked {
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrRevokedToken)
			}

			user, err := users.GetUserByID(ctx, claims.UserID())
			if err != nil {
				return nil, connect.NewError(connect.CodeInternal, fmt.Errorf("failed to load user: %w", err))
			}
			if user == nil {
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidToken)
			}

			return next(WithIdentity(ctx, Identity{
				UserID:    claims.UserID(),
				SessionID: claims.ID,
				ExpiresAt: claims.Expiry(),
			}), req)
		}
	}
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", auth.ErrMissingToken
	}
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" || strings.Contains(token, " ") {
		return "", auth.ErrInvalidToken
	}
	return token, nil
}
