package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/stride/internal/auth"
	"github.com/mmynk/stride/internal/middleware"
	"github.com/mmynk/stride/internal/models"
	"github.com/mmynk/stride/internal/storage"
	"github.com/mmynk/stride/pkg/api"
)

// AuthService implements the AuthService RPC interface.
type AuthService struct {
	authenticator auth.Authenticator
	tokens        *auth.Tokens
	users         storage.UserStore
	sessions      storage.SessionStore
	logger        *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, tokens *auth.Tokens, users storage.UserStore, sessions storage.SessionStore, logger *slog.Logger) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		tokens:        tokens,
		users:         users,
		sessions:      sessions,
		logger:        logger,
	}
}

// issue signs a session token for a user that just proved who they are.
func (s *AuthService) issue(user *models.User) (string, error) {
	issued, err := s.tokens.Issue(user.ID)
	if err != nil {
		s.logger.Error("Failed to issue token", "user_id", user.ID, "error", err)
		return "", connect.NewError(connect.CodeInternal, err)
	}
	s.logger.Debug("Session opened", "user_id", user.ID, "session_id", issued.SessionID, "expires_at", issued.ExpiresAt)
	return issued.Token, nil
}

// Register creates a new user account and opens a session for it.
func (s *AuthService) Register(ctx context.Context, req *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error) {
	s.logger.Info("Register request received", "email", req.Msg.Email)

	user, err := s.authenticator.Register(ctx, auth.NewAccount{
		Email:    req.Msg.Email,
		Name:     req.Msg.Name,
		Password: req.Msg.Password,
	})
	switch {
	case errors.Is(err, auth.ErrEmailExists):
		return nil, connect.NewError(connect.CodeAlreadyExists, err)
	case errors.Is(err, auth.ErrWeakPassword), errors.Is(err, auth.ErrMissingIdentity):
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	case err != nil:
		s.logger.Error("Register failed", "email", req.Msg.Email, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	token, err := s.issue(user)
	if err != nil {
		return nil, err
	}
	s.logger.Info("User registered", "user_id", user.ID)
	return connect.NewResponse(&api.RegisterResponse{User: user, Token: token}), nil
}

// Login checks a user's password and returns a session token.
func (s *AuthService) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	s.logger.Info("Login request received", "email", req.Msg.Email)

	if req.Msg.Email == "" || req.Msg.Password == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, auth.ErrInvalidCredentials)
	}
	user, err := s.authenticator.Authenticate(ctx, req.Msg.Email, req.Msg.Password)
	if err != nil {
		s.logger.Warn("Login failed", "email", req.Msg.Email, "error", err)
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidCredentials)
	}

	token, err := s.issue(user)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.LoginResponse{User: user, Token: token}), nil
}

// Logout revokes the session token used for the call until it would have expired.
func (s *AuthService) Logout(ctx context.Context, req *connect.Request[api.LogoutRequest]) (*connect.Response[api.LogoutResponse], error) {
	id, ok := middleware.IdentityFrom(ctx)
	if !ok || id.SessionID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}

	if err := s.sessions.RevokeToken(ctx, id.SessionID, id.ExpiresAt); err != nil {
		s.logger.Error("Logout failed", "user_id", id.UserID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	s.logger.Info("User logged out", "user_id", id.UserID)
	return connect.NewResponse(&api.LogoutResponse{}), nil
}

// GetCurrentUser returns the account the session token belongs to.
func (s *AuthService) GetCurrentUser(ctx context.Context, req *connect.Request[api.GetCurrentUserRequest]) (*connect.Response[api.GetCurrentUserResponse], error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		s.logger.Error("GetCurrentUser failed", "user_id", userID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	if user == nil {
		return nil, connect.NewError(connect.CodeNotFound, storage.ErrNotFound)
	}
	return connect.NewResponse(&api.GetCurrentUserResponse{User: user}), nil
}
