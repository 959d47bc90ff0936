package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/stride/internal/auth"
	"github.com/mmynk/stride/internal/middleware"
	"github.com/mmynk/stride/internal/models"
	"github.com/mmynk/stride/internal/storage/sqlstore"
	"github.com/mmynk/stride/pkg/api"
	"github.com/mmynk/stride/pkg/api/apiconnect"
)

type testClients struct {
	auth     apiconnect.AuthServiceClient
	wallet   apiconnect.WalletServiceClient
	health   apiconnect.HealthServiceClient
	todo     apiconnect.TodoServiceClient
	calendar apiconnect.CalendarServiceClient
	registry *prometheus.Registry
}

// setupTestServer starts every service over a temp-file SQLite store.
func setupTestServer(t *testing.T) *testClients {
	t.Helper()

	store, err := sqlstore.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	registry := prometheus.NewRegistry()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mux := NewMux(Deps{
		Store:         store,
		Authenticator: auth.NewPasswords(store, bcrypt.MinCost),
		Tokens:        auth.NewTokens("test-secret", time.Hour),
		Logger:        logger,
		Metrics:       middleware.NewMetrics(registry),
	})
	server := httptest.NewServer(mux)

	t.Cleanup(func() {
		server.Close()
		store.Close()
	})

	return &testClients{
		auth:     apiconnect.NewAuthServiceClient(http.DefaultClient, server.URL),
		wallet:   apiconnect.NewWalletServiceClient(http.DefaultClient, server.URL),
		health:   apiconnect.NewHealthServiceClient(http.DefaultClient, server.URL),
		todo:     apiconnect.NewTodoServiceClient(http.DefaultClient, server.URL),
		calendar: apiconnect.NewCalendarServiceClient(http.DefaultClient, server.URL),
		registry: registry,
	}
}

// authed wraps msg in a request carrying the bearer token.
func authed[T any](token string, msg *T) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set("Authorization", "Bearer "+token)
	return req
}

func register(t *testing.T, c *testClients, email string) (*models.User, string) {
	t.Helper()
	resp, err := c.auth.Register(context.Background(), connect.NewRequest(&api.RegisterRequest{
		Email:    email,
		Name:     "Test User",
		Password: "password123",
	}))
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if resp.Msg.Token == "" || resp.Msg.User == nil || resp.Msg.User.ID == "" {
		t.Fatalf("expected user and token, got %+v", resp.Msg)
	}
	return resp.Msg.User, resp.Msg.Token
}

func assertCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", want)
	}
	var connectErr *connect.Error
	if !errors.As(err, &connectErr) {
		t.Fatalf("expected connect error, got %v", err)
	}
	if connectErr.Code() != want {
		t.Errorf("expected code %v, got %v (%v)", want, connectErr.Code(), err)
	}
}

func TestAuthFlow(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()

	user, token := register(t, c, "alice@example.com")
	if user.Currency != models.DefaultCurrency || user.Language != models.DefaultLanguage {
		t.Errorf("expected default preferences, got %+v", user)
	}

	t.Run("duplicate email", func(t *testing.T) {
		_, err := c.auth.Register(ctx, connect.NewRequest(&api.RegisterRequest{
			Email: "ALICE@example.com", Name: "Again", Password: "password123",
		}))
		assertCode(t, err, connect.CodeAlreadyExists)
	})

	t.Run("weak password", func(t *testing.T) {
		_, err := c.auth.Register(ctx, connect.NewRequest(&api.RegisterRequest{
			Email: "bob@example.com", Name: "Bob", Password: "short",
		}))
		assertCode(t, err, connect.CodeInvalidArgument)
	})

	t.Run("login", func(t *testing.T) {
		resp, err := c.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{
			Email: "alice@example.com", Password: "password123",
		}))
		if err != nil {
			t.Fatalf("Login failed: %v", err)
		}
		if resp.Msg.User.ID != user.ID {
			t.Errorf("expected user %s, got %s", user.ID, resp.Msg.User.ID)
		}

		_, err = c.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{
			Email: "alice@example.com", Password: "wrong-password",
		}))
		assertCode(t, err, connect.CodeUnauthenticated)
	})

	t.Run("current user requires token", func(t *testing.T) {
		_, err := c.auth.GetCurrentUser(ctx, connect.NewRequest(&api.GetCurrentUserRequest{}))
		assertCode(t, err, connect.CodeUnauthenticated)

		_, err = c.auth.GetCurrentUser(ctx, authed("garbage", &api.GetCurrentUserRequest{}))
		assertCode(t, err, connect.CodeUnauthenticated)

		resp, err := c.auth.GetCurrentUser(ctx, authed(token, &api.GetCurrentUserRequest{}))
		if err != nil {
			t.Fatalf("GetCurrentUser failed: %v", err)
		}
		if resp.Msg.User.Email != "alice@example.com" || resp.Msg.User.Name != "Test User" {
			t.Errorf("unexpected user %+v", resp.Msg.User)
		}
	})

	t.Run("logout revokes token", func(t *testing.T) {
		if _, err := c.auth.Logout(ctx, authed(token, &api.LogoutRequest{})); err != nil {
			t.Fatalf("Logout failed: %v", err)
		}
		_, err := c.auth.GetCurrentUser(ctx, authed(token, &api.GetCurrentUserRequest{}))
		assertCode(t, err, connect.CodeUnauthenticated)
	})
}

func TestWalletService(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()
	user, token := register(t, c, "alice@example.com")
	other, _ := register(t, c, "bob@example.com")

	_, err := c.wallet.GetWallet(ctx, authed(token, &api.GetWalletRequest{UserID: user.ID}))
	assertCode(t, err, connect.CodeNotFound)

	_, err = c.wallet.SaveWallet(ctx, authed(token, &api.SaveWalletRequest{Wallet: &models.Wallet{
		UserID:      user.ID,
		Balance:     decimal.NewFromInt(100),
		DailyBudget: decimal.NewFromInt(20),
	}}))
	if err != nil {
		t.Fatalf("SaveWallet failed: %v", err)
	}

	resp, err := c.wallet.GetWallet(ctx, authed(token, &api.GetWalletRequest{UserID: user.ID}))
	if err != nil {
		t.Fatalf("GetWallet failed: %v", err)
	}
	if !resp.Msg.Wallet.Balance.Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected balance 100, got %s", resp.Msg.Wallet.Balance)
	}

	t.Run("other user's records are denied", func(t *testing.T) {
		_, err := c.wallet.GetWallet(ctx, authed(token, &api.GetWalletRequest{UserID: other.ID}))
		assertCode(t, err, connect.CodePermissionDenied)
	})

	t.Run("invalid transaction rejected", func(t *testing.T) {
		_, err := c.wallet.CreateTransaction(ctx, authed(token, &api.CreateTransactionRequest{Transaction: &models.Transaction{
			Category: "food",
			Amount:   decimal.NewFromInt(5),
			Type:     models.Debit,
		}}))
		assertCode(t, err, connect.CodeInvalidArgument)

		_, err = c.wallet.CreateTransaction(ctx, authed(token, &api.CreateTransactionRequest{}))
		assertCode(t, err, connect.CodeInvalidArgument)
	})

	t.Run("transactions listed by type", func(t *testing.T) {
		created, err := c.wallet.CreateTransaction(ctx, authed(token, &api.CreateTransactionRequest{Transaction: &models.Transaction{
			Category:    "food",
			Description: "lunch",
			Amount:      decimal.RequireFromString("12.50"),
			Type:        models.Debit,
		}}))
		if err != nil {
			t.Fatalf("CreateTransaction failed: %v", err)
		}
		tx := created.Msg.Transaction
		if tx.ID == "" || tx.UserID != user.ID || tx.LoggedAt.IsZero() {
			t.Fatalf("expected stored transaction, got %+v", tx)
		}

		debits, err := c.wallet.ListTransactions(ctx, authed(token, &api.ListTransactionsRequest{Type: models.Debit}))
		if err != nil {
			t.Fatalf("ListTransactions failed: %v", err)
		}
		if len(debits.Msg.Transactions) != 1 {
			t.Fatalf("expected 1 debit, got %d", len(debits.Msg.Transactions))
		}
		credits, err := c.wallet.ListTransactions(ctx, authed(token, &api.ListTransactionsRequest{Type: models.Credit}))
		if err != nil {
			t.Fatalf("ListTransactions failed: %v", err)
		}
		if len(credits.Msg.Transactions) != 0 {
			t.Errorf("expected no credits, got %d", len(credits.Msg.Transactions))
		}

		desc := "dinner"
		updated, err := c.wallet.UpdateTransaction(ctx, authed(token, &api.UpdateTransactionRequest{
			TransactionID: tx.ID,
			Patch:         models.TransactionPatch{Description: &desc},
		}))
		if err != nil {
			t.Fatalf("UpdateTransaction failed: %v", err)
		}
		if updated.Msg.Transaction.Description != "dinner" || !updated.Msg.Transaction.Amount.Equal(tx.Amount) {
			t.Errorf("unexpected update result %+v", updated.Msg.Transaction)
		}

		if _, err := c.wallet.DeleteTransaction(ctx, authed(token, &api.DeleteTransactionRequest{TransactionID: tx.ID})); err != nil {
			t.Fatalf("DeleteTransaction failed: %v", err)
		}
		_, err = c.wallet.DeleteTransaction(ctx, authed(token, &api.DeleteTransactionRequest{TransactionID: tx.ID}))
		assertCode(t, err, connect.CodeNotFound)
	})
}

func TestHealthService(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()
	user, token := register(t, c, "alice@example.com")

	bad := models.DefaultHealthProfile(user.ID, models.MacroPercent)
	bad.Carbs.Amount = 60
	_, err := c.health.SaveHealthProfile(ctx, authed(token, &api.SaveHealthProfileRequest{Profile: bad}))
	assertCode(t, err, connect.CodeInvalidArgument)

	_, err = c.health.SaveHealthProfile(ctx, authed(token, &api.SaveHealthProfileRequest{
		Profile: models.DefaultHealthProfile(user.ID, models.MacroPercent),
	}))
	if err != nil {
		t.Fatalf("SaveHealthProfile failed: %v", err)
	}

	profile, err := c.health.GetHealthProfile(ctx, authed(token, &api.GetHealthProfileRequest{}))
	if err != nil {
		t.Fatalf("GetHealthProfile failed: %v", err)
	}
	if profile.Msg.Profile.CalorieGoal != 2000 || profile.Msg.Profile.Carbs.Unit != models.MacroPercent {
		t.Errorf("unexpected profile %+v", profile.Msg.Profile)
	}

	created, err := c.health.CreateExercise(ctx, authed(token, &api.CreateExerciseRequest{Exercise: &models.Exercise{
		WorkoutType: models.Cardio,
		Name:        "run",
		DurationMin: 25,
		Intensity:   5,
	}}))
	if err != nil {
		t.Fatalf("CreateExercise failed: %v", err)
	}
	if created.Msg.Exercise.WeightUnit != models.Kilograms {
		t.Errorf("expected normalized unit, got %q", created.Msg.Exercise.WeightUnit)
	}

	list, err := c.health.ListExercises(ctx, authed(token, &api.ListExercisesRequest{}))
	if err != nil {
		t.Fatalf("ListExercises failed: %v", err)
	}
	if len(list.Msg.Exercises) != 1 {
		t.Fatalf("expected 1 exercise, got %d", len(list.Msg.Exercises))
	}

	_, err = c.health.DeleteExercise(ctx, authed(token, &api.DeleteExerciseRequest{}))
	assertCode(t, err, connect.CodeInvalidArgument)
}

func TestTodoAndCalendarServices(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()
	_, token := register(t, c, "alice@example.com")

	created, err := c.todo.CreateTodo(ctx, authed(token, &api.CreateTodoRequest{Todo: &models.Todo{Title: "laundry"}}))
	if err != nil {
		t.Fatalf("CreateTodo failed: %v", err)
	}

	done := true
	if _, err := c.todo.UpdateTodo(ctx, authed(token, &api.UpdateTodoRequest{
		TaskID: created.Msg.Todo.ID,
		Patch:  models.TodoPatch{Completed: &done},
	})); err != nil {
		t.Fatalf("UpdateTodo failed: %v", err)
	}

	todos, err := c.todo.ListTodos(ctx, authed(token, &api.ListTodosRequest{}))
	if err != nil {
		t.Fatalf("ListTodos failed: %v", err)
	}
	if len(todos.Msg.Todos) != 1 || !todos.Msg.Todos[0].Completed {
		t.Errorf("expected completed todo, got %+v", todos.Msg.Todos)
	}

	_, err = c.calendar.CreateEvent(ctx, authed(token, &api.CreateEventRequest{Event: &models.CalendarEvent{
		Title:     "dentist",
		EventDate: time.Date(2024, 5, 1, 15, 0, 0, 0, time.UTC),
		Recurrent: true,
	}}))
	assertCode(t, err, connect.CodeInvalidArgument)

	event, err := c.calendar.CreateEvent(ctx, authed(token, &api.CreateEventRequest{Event: &models.CalendarEvent{
		Title:     "dentist",
		EventDate: time.Date(2024, 5, 1, 15, 0, 0, 0, time.UTC),
	}}))
	if err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}

	_, err = c.calendar.DeleteEvent(ctx, authed(token, &api.DeleteEventRequest{EventID: "nonexistent-id"}))
	assertCode(t, err, connect.CodeNotFound)

	if _, err := c.calendar.DeleteEvent(ctx, authed(token, &api.DeleteEventRequest{EventID: event.Msg.Event.ID})); err != nil {
		t.Fatalf("DeleteEvent failed: %v", err)
	}
}

func TestMetricsRecorded(t *testing.T) {
	c := setupTestServer(t)
	register(t, c, "alice@example.com")

	families, err := c.registry.Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}
	var found bool
	for _, f := range families {
		if f.GetName() != "stride_rpc_requests_total" {
			continue
		}
		for _, m := range f.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "procedure" && l.GetValue() == api.AuthServiceRegisterProcedure && m.GetCounter().GetValue() == 1 {
					found = true
				}
			}
		}
	}
	if !found {
		t.Error("expected a Register request to be counted")
	}
}
