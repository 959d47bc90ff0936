// Package app assembles the device client: the remote store client, the domain
// services, the shared cache with its hooks and the session context.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"connectrpc.com/connect"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/stride/internal/config"
	"github.com/mmynk/stride/internal/models"
	"github.com/mmynk/stride/internal/remote"
	"github.com/mmynk/stride/internal/repo"
	"github.com/mmynk/stride/internal/session"
	"github.com/mmynk/stride/internal/state"
)

// Options configure New.
type Options struct {
	ServerURL string
	// HTTPClient defaults to http.DefaultClient.
	HTTPClient  connect.HTTPClient
	Credentials session.CredentialStore
	// Location is the zone calendar dates are computed in. Nil means UTC.
	Location  *time.Location
	Now       func() time.Time
	MacroUnit models.MacroUnit
	Logger    *slog.Logger
}

// App is one signed-in device.
type App struct {
	Remote   *remote.Client
	Store    *state.Store
	Session  *session.Session
	Wallet   *state.Wallet
	Health   *state.Health
	Todos    *state.Todos
	Calendar *state.Calendar

	clock     state.Clock
	macroUnit models.MacroUnit
	logger    *slog.Logger
}

func New(opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Credentials == nil {
		opts.Credentials = &session.MemoryCredentials{}
	}
	if opts.MacroUnit == "" {
		opts.MacroUnit = models.MacroPercent
	}

	client := remote.New(opts.HTTPClient, opts.ServerURL)
	a := &App{
		Remote:    client,
		Store:     state.NewStore(),
		clock:     state.Clock{Now: opts.Now, Location: opts.Location},
		macroUnit: opts.MacroUnit,
		logger:    logger,
	}

	userID := func() string { return a.Session.UserID() }
	a.Wallet = state.NewWallet(a.Store, repo.NewWallet(client, logger), userID, a.clock)
	a.Health = state.NewHealth(a.Store, repo.NewHealth(client, logger), userID, a.clock)
	a.Todos = state.NewTodos(a.Store, repo.NewTodo(client, logger), userID)
	a.Calendar = state.NewCalendar(a.Store, repo.NewCalendar(client, logger), userID, a.clock)
	a.Session = session.New(session.Deps{
		Auth:        client,
		Credentials: opts.Credentials,
		Store:       a.Store,
		Wallet:      a.Wallet,
		Health:      a.Health,
		Logger:      logger,
	})
	return a
}

// FromConfig builds an App from the client settings.
func FromConfig(cfg *config.Config, logger *slog.Logger) (*App, error) {
	if err := cfg.ValidateClient(); err != nil {
		return nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	unit, err := cfg.MacroUnit()
	if err != nil {
		return nil, err
	}
	timeout, err := cfg.ClientTimeout()
	if err != nil {
		return nil, err
	}
	return New(Options{
		ServerURL:   cfg.Client.ServerURL,
		HTTPClient:  &http.Client{Timeout: timeout},
		Credentials: session.FileCredentials{Path: cfg.Client.Credentials},
		Location:    loc,
		MacroUnit:   unit,
		Logger:      logger,
	}), nil
}

// Start resumes a saved session and loads the user record and onboarding state.
// It reports whether a session is active afterwards.
func (a *App) Start(ctx context.Context) (bool, error) {
	ok, err := a.Session.Restore(ctx)
	if err != nil || !ok {
		return false, err
	}
	if _, err := a.Session.LoadUser(ctx); err != nil {
		if errors.Is(err, remote.ErrUnauthenticated) {
			return false, nil
		}
		return true, err
	}
	return true, a.Session.RefreshUserData(ctx)
}

// MountAll performs the first load of every hook concurrently.
func (a *App) MountAll(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error { return a.Wallet.Mount(ctx) })
	g.Go(func() error { return a.Health.Mount(ctx) })
	g.Go(func() error { return a.Todos.Mount(ctx) })
	g.Go(func() error { return a.Calendar.Mount(ctx) })
	if err := g.Wait(); err != nil {
		return fmt.Errorf("failed to load data: %w", err)
	}
	return nil
}

// DefaultHealthProfile returns onboarding defaults in the configured macro unit.
func (a *App) DefaultHealthProfile() *models.HealthProfile {
	return models.DefaultHealthProfile(a.Session.UserID(), a.macroUnit)
}

// Clock is the time source every derived date uses.
func (a *App) Clock() state.Clock { return a.clock }
