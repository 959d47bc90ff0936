package remote

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/stride/internal/auth"
	"github.com/mmynk/stride/internal/models"
	"github.com/mmynk/stride/internal/service"
	"github.com/mmynk/stride/internal/storage"
	"github.com/mmynk/stride/internal/storage/sqlstore"
)

func setupBackend(t *testing.T) string {
	t.Helper()
	store, err := sqlstore.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	server := httptest.NewServer(service.NewMux(service.Deps{
		Store:         store,
		Authenticator: auth.NewPasswords(store, bcrypt.MinCost),
		Tokens:        auth.NewTokens("test-secret", time.Hour),
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}))
	t.Cleanup(func() {
		server.Close()
		store.Close()
	})
	return server.URL
}

func TestClient(t *testing.T) {
	ctx := context.Background()
	client := New(nil, setupBackend(t))

	user, token, err := client.Register(ctx, "alice@example.com", "Alice", "password123")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if token == "" || client.Token() != token {
		t.Fatalf("expected token to be kept on the client")
	}

	t.Run("missing wallet maps to ErrNotFound", func(t *testing.T) {
		_, err := client.GetWallet(ctx, user.ID)
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("create copies stored row back", func(t *testing.T) {
		tx := &models.Transaction{
			UserID:      user.ID,
			Category:    "food",
			Description: "coffee",
			Amount:      decimal.RequireFromString("3.20"),
			Type:        models.Debit,
		}
		if err := client.CreateTransaction(ctx, tx); err != nil {
			t.Fatalf("CreateTransaction failed: %v", err)
		}
		if tx.ID == "" || tx.LoggedAt.IsZero() {
			t.Errorf("expected id and timestamp, got %+v", tx)
		}
	})

	t.Run("validation maps to ErrInvalid", func(t *testing.T) {
		err := client.CreateTodo(ctx, &models.Todo{UserID: user.ID})
		if !errors.Is(err, models.ErrInvalid) {
			t.Errorf("expected ErrInvalid, got %v", err)
		}
	})

	t.Run("current user", func(t *testing.T) {
		got, err := client.CurrentUser(ctx)
		if err != nil {
			t.Fatalf("CurrentUser failed: %v", err)
		}
		if got.ID != user.ID {
			t.Errorf("expected %s, got %s", user.ID, got.ID)
		}
	})

	t.Run("revoked token maps to ErrUnauthenticated", func(t *testing.T) {
		if err := client.Logout(ctx); err != nil {
			t.Fatalf("Logout failed: %v", err)
		}
		if client.Token() != "" {
			t.Error("expected token to be cleared")
		}

		client.SetToken(token)
		_, err := client.ListTodos(ctx, user.ID)
		if !errors.Is(err, ErrUnauthenticated) {
			t.Errorf("expected ErrUnauthenticated, got %v", err)
		}
	})

	t.Run("login issues a fresh token", func(t *testing.T) {
		_, fresh, err := client.Login(ctx, "alice@example.com", "password123")
		if err != nil {
			t.Fatalf("Login failed: %v", err)
		}
		if fresh == token {
			t.Error("expected a new token")
		}
		if _, err := client.ListTodos(ctx, user.ID); err != nil {
			t.Errorf("ListTodos failed: %v", err)
		}
	})
}
