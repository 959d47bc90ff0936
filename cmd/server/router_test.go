package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/stride/internal/auth"
	"github.com/mmynk/stride/internal/middleware"
	"github.com/mmynk/stride/internal/service"
	"github.com/mmynk/stride/internal/storage/sqlstore"
	"github.com/mmynk/stride/pkg/api"
	"github.com/mmynk/stride/pkg/api/apiconnect"
)

func setupServer(t *testing.T) *httptest.Server {
	t.Helper()
	store, err := sqlstore.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	registry := prometheus.NewRegistry()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	server := httptest.NewServer(newRouter(service.Deps{
		Store:         store,
		Authenticator: auth.NewPasswords(store, bcrypt.MinCost),
		Tokens:        auth.NewTokens("test-secret", time.Hour),
		Logger:        logger,
		Metrics:       middleware.NewMetrics(registry),
	}, registry))
	t.Cleanup(func() {
		server.Close()
		store.Close()
	})
	return server
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, string(body)
}

func TestHealthz(t *testing.T) {
	server := setupServer(t)
	code, body := get(t, server.URL+"/healthz")
	if code != http.StatusOK || body != "ok\n" {
		t.Errorf("healthz = %d %q", code, body)
	}
}

func TestConnectThroughRouter(t *testing.T) {
	server := setupServer(t)
	client := apiconnect.NewAuthServiceClient(http.DefaultClient, server.URL)

	resp, err := client.Register(context.Background(), connect.NewRequest(&api.RegisterRequest{
		Email: "ada@example.com", Name: "Ada", Password: "correct-horse",
	}))
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if resp.Msg.Token == "" {
		t.Error("expected a session token")
	}

	_, err = client.GetCurrentUser(context.Background(), connect.NewRequest(&api.GetCurrentUserRequest{}))
	var connectErr *connect.Error
	if !errors.As(err, &connectErr) || connectErr.Code() != connect.CodeUnauthenticated {
		t.Errorf("GetCurrentUser without token: got %v, want Unauthenticated", err)
	}

	code, body := get(t, server.URL+"/metrics")
	if code != http.StatusOK {
		t.Fatalf("metrics status = %d", code)
	}
	if !strings.Contains(body, `stride_rpc_requests_total{code="ok",procedure="`+api.AuthServiceRegisterProcedure+`"} 1`) {
		t.Errorf("register call not counted:\n%s", body)
	}
}

func TestCORSPreflight(t *testing.T) {
	server := setupServer(t)
	req, err := http.NewRequest(http.MethodOptions, server.URL+api.AuthServiceLoginProcedure, nil)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("preflight status = %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Allow-Origin = %q", got)
	}
}
