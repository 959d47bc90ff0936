package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/stride/internal/auth"
	"github.com/mmynk/stride/internal/service"
	"github.com/mmynk/stride/internal/storage/sqlstore"
)

// setupCLI points the CLI at a fresh backend and a temp credentials file.
func setupCLI(t *testing.T) {
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

	t.Setenv("STRIDE_CONFIG", "")
	t.Setenv("STRIDE_SERVER_URL", server.URL)
	t.Setenv("STRIDE_CREDENTIALS", filepath.Join(t.TempDir(), "credentials.yaml"))
	t.Setenv("STRIDE_TIMEZONE", "UTC")
	t.Setenv("STRIDE_MACRO_UNIT", "")
	t.Setenv("LOG_LEVEL", "error")
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, args...)
	if err != nil {
		t.Fatalf("stride %s: %v", strings.Join(args, " "), err)
	}
	return out
}

func assertContains(t *testing.T, out, want string) {
	t.Helper()
	if !strings.Contains(out, want) {
		t.Errorf("output missing %q:\n%s", want, out)
	}
}

var idPattern = regexp.MustCompile(`\(([0-9a-f-]{36})\)`)

func idFrom(t *testing.T, out string) string {
	t.Helper()
	m := idPattern.FindStringSubmatch(out)
	if m == nil {
		t.Fatalf("no id in output: %q", out)
	}
	return m[1]
}

func TestCLIFlow(t *testing.T) {
	setupCLI(t)

	assertContains(t, mustRun(t, "status"), "Not signed in.")
	if _, err := run(t, "wallet", "show"); err != errNotSignedIn {
		t.Errorf("wallet show signed out: got %v, want errNotSignedIn", err)
	}

	assertContains(t, mustRun(t, "register", "--email", "ada@example.com", "--name", "Ada", "--password", "correct-horse"), "Welcome, Ada!")
	assertContains(t, mustRun(t, "status"), "Setup:     pending")

	assertContains(t, mustRun(t, "onboard", "--balance", "100", "--daily-budget", "20"), "Setup complete. Balance: $100.00")
	status := mustRun(t, "status")
	assertContains(t, status, "Balance:   $100.00")
	assertContains(t, status, "$0.00 spent")

	t.Run("wallet", func(t *testing.T) {
		out := mustRun(t, "wallet", "add", "--amount", "12.50", "--category", "Food", "--description", "Lunch")
		assertContains(t, out, "Balance: $87.50")
		lunch := idFrom(t, out)

		show := mustRun(t, "wallet", "show")
		assertContains(t, show, "Spent today:    $12.50")
		assertContains(t, show, "Weekly savings: $127.50 of $140.00")

		assertContains(t, mustRun(t, "wallet", "history"), "Lunch")
		assertContains(t, mustRun(t, "wallet", "delete", lunch), "Balance: $100.00")
		assertContains(t, mustRun(t, "wallet", "history"), "No transactions yet.")

		if _, err := run(t, "wallet", "add", "--amount", "-1", "--category", "Food", "--description", "Refund"); err == nil {
			t.Error("negative amount accepted")
		}
	})

	t.Run("gym", func(t *testing.T) {
		out := mustRun(t, "gym", "log", "--type", "weights", "--name", "Squat", "--reps", "5", "--weight", "100")
		assertContains(t, out, "Logged weights Squat")
		assertContains(t, mustRun(t, "gym", "list"), "5 x 100 kg")
		assertContains(t, mustRun(t, "gym", "heatmap", "--days", "7"), "......-\n")
		assertContains(t, mustRun(t, "gym", "delete", idFrom(t, out)), "Deleted")
	})

	t.Run("todo", func(t *testing.T) {
		id := idFrom(t, mustRun(t, "todo", "add", "--title", "Stretch"))
		assertContains(t, mustRun(t, "todo", "list"), "[ ] Stretch")
		assertContains(t, mustRun(t, "todo", "done", id), `"Stretch" is completed.`)
		assertContains(t, mustRun(t, "todo", "list"), "Nothing to do.")
		assertContains(t, mustRun(t, "todo", "list", "--all"), "[x] Stretch")
		mustRun(t, "todo", "delete", id)
	})

	t.Run("calendar", func(t *testing.T) {
		id := idFrom(t, mustRun(t, "calendar", "add", "--title", "Standup", "--repeat", "weekly"))
		assertContains(t, mustRun(t, "calendar", "list"), "Standup (weekly)")
		nextWeek := time.Now().UTC().AddDate(0, 0, 7).Format("2006-01-02")
		assertContains(t, mustRun(t, "calendar", "list", "--date", nextWeek), "Standup")
		mustRun(t, "calendar", "delete", id)
		assertContains(t, mustRun(t, "calendar", "list"), "No events on")
	})

	assertContains(t, mustRun(t, "logout"), "Signed out.")
	assertContains(t, mustRun(t, "status"), "Not signed in.")

	out := mustRun(t, "login", "--email", "ada@example.com", "--password", "correct-horse")
	assertContains(t, out, "Signed in as ada@example.com.")
	if strings.Contains(out, "Setup is not finished") {
		t.Error("onboarded user reported as new")
	}
}

func TestParseWhen(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		in   string
		want time.Time
	}{
		{"", now},
		{"2026-03-01", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"2026-03-01 08:30", time.Date(2026, 3, 1, 8, 30, 0, 0, time.UTC)},
		{"2026-03-01T08:30:00Z", time.Date(2026, 3, 1, 8, 30, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, err := parseWhen(tt.in, now, time.UTC)
		if err != nil {
			t.Errorf("parseWhen(%q): %v", tt.in, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("parseWhen(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if _, err := parseWhen("yesterday", now, time.UTC); err == nil {
		t.Error("expected an error for an unparseable time")
	}
}
