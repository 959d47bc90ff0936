// Package session holds the signed-in user's context on the device: identity,
// display preferences, the current page and whether onboarding is still pending.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/mmynk/stride/internal/models"
	"github.com/mmynk/stride/internal/remote"
	"github.com/mmynk/stride/internal/state"
)

// Page names a top-level screen.
type Page string

const (
	PageLogin    Page = "login"
	PageRegister Page = "register"
	PageWelcome  Page = "welcome"
	PageHome     Page = "home"
	PageWallet   Page = "wallet"
	PageHealth   Page = "health"
	PageGym      Page = "gym"
	PageTodos    Page = "todos"
	PageCalendar Page = "calendar"
)

// Auth is the backend account surface.
type Auth interface {
	Register(ctx context.Context, email, name, password string) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*models.User, error)
	SetToken(token string)
}

var _ Auth = (*remote.Client)(nil)

// WalletHook is the part of the wallet hook onboarding needs.
type WalletHook interface {
	Refresh(ctx context.Context) error
	HasWallet() bool
	SaveWallet(ctx context.Context, w *models.Wallet) (*models.Wallet, error)
}

// HealthHook is the part of the health hook onboarding needs.
type HealthHook interface {
	Refresh(ctx context.Context) error
	HasProfile() bool
	SaveProfile(ctx context.Context, p *models.HealthProfile) (*models.HealthProfile, error)
}

var (
	_ WalletHook = (*state.Wallet)(nil)
	_ HealthHook = (*state.Health)(nil)
)

// Profile is a snapshot of the session context.
type Profile struct {
	UserID        string
	Authenticated bool
	User          *models.User
	Theme         string
	CurrentPage   Page
	Currency      string
	IsNewUser     bool
}

// RegisterParams are the inputs of Register.
type RegisterParams struct {
	Email    string
	Name     string
	Password string
}

// Deps are the collaborators of a Session.
type Deps struct {
	Auth        Auth
	Credentials CredentialStore
	Store       *state.Store
	Wallet      WalletHook
	Health      HealthHook
	Logger      *slog.Logger
}

// Session is safe for concurrent use.
type Session struct {
	d Deps

	mu      sync.RWMutex
	profile Profile
}

func New(d Deps) *Session {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	return &Session{d: d, profile: signedOut()}
}

func signedOut() Profile {
	return Profile{Theme: models.DefaultTheme, CurrentPage: PageLogin, Currency: models.DefaultCurrency}
}

// Profile returns a copy of the session context.
func (s *Session) Profile() Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p := s.profile
	if p.User != nil {
		u := *p.User
		p.User = &u
	}
	return p
}

// UserID returns the signed-in user id, or "".
func (s *Session) UserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile.UserID
}

func (s *Session) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile.Authenticated
}

func (s *Session) IsNewUser() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile.IsNewUser
}

func (s *Session) SetTheme(theme string) {
	s.mu.Lock()
	s.profile.Theme = theme
	s.mu.Unlock()
}

func (s *Session) SetCurrentPage(p Page) {
	s.mu.Lock()
	s.profile.CurrentPage = p
	s.mu.Unlock()
}

// Restore resumes a saved session without contacting the backend. It reports
// whether credentials were found.
func (s *Session) Restore(ctx context.Context) (bool, error) {
	c, err := s.d.Credentials.Load()
	if err != nil {
		return false, err
	}
	if !c.Valid() {
		return false, nil
	}
	s.d.Auth.SetToken(c.Token)
	s.mu.Lock()
	s.profile.UserID = c.UserID
	s.profile.Authenticated = true
	s.profile.CurrentPage = PageHome
	s.mu.Unlock()
	s.d.Logger.DebugContext(ctx, "Session restored", "user_id", c.UserID)
	return true, nil
}

// LoadUser fetches the user record of a restored session. A rejected token signs
// the session out locally.
func (s *Session) LoadUser(ctx context.Context) (*models.User, error) {
	if !s.Authenticated() {
		return nil, state.ErrSignedOut
	}
	user, err := s.d.Auth.CurrentUser(ctx)
	if errors.Is(err, remote.ErrUnauthenticated) {
		s.d.Logger.WarnContext(ctx, "Session token rejected, signing out", "user_id", s.UserID())
		if clearErr := s.clear(); clearErr != nil {
			return nil, errors.Join(err, clearErr)
		}
		return nil, err
	}
	if err != nil {
		return nil, err
	}
	s.setUser(user)
	return user, nil
}

// Register creates an account and signs in to it.
func (s *Session) Register(ctx context.Context, p RegisterParams) error {
	email := strings.TrimSpace(p.Email)
	if email == "" || p.Password == "" {
		return fmt.Errorf("%w: email and password are required", models.ErrInvalid)
	}
	user, token, err := s.d.Auth.Register(ctx, email, strings.TrimSpace(p.Name), p.Password)
	if err != nil {
		return err
	}
	return s.establish(ctx, user, token)
}

// Login signs in with email and password.
func (s *Session) Login(ctx context.Context, email, password string) error {
	user, token, err := s.d.Auth.Login(ctx, strings.TrimSpace(email), password)
	if err != nil {
		return err
	}
	return s.establish(ctx, user, token)
}

func (s *Session) establish(ctx context.Context, user *models.User, token string) error {
	if err := s.d.Credentials.Save(Credentials{UserID: user.ID, Token: token}); err != nil {
		return err
	}
	s.mu.Lock()
	s.profile.UserID = user.ID
	s.profile.Authenticated = true
	s.mu.Unlock()
	s.setUser(user)
	s.d.Logger.InfoContext(ctx, "Signed in", "user_id", user.ID)
	return s.RefreshUserData(ctx)
}

func (s *Session) setUser(user *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := *user
	s.profile.User = &u
	if user.Currency != "" {
		s.profile.Currency = user.Currency
	}
	if user.Theme != "" {
		s.profile.Theme = user.Theme
	}
}

// RefreshUserData reloads the wallet and health profile and recomputes IsNewUser.
func (s *Session) RefreshUserData(ctx context.Context) error {
	if !s.Authenticated() {
		return state.ErrSignedOut
	}
	if err := errors.Join(s.d.Wallet.Refresh(ctx), s.d.Health.Refresh(ctx)); err != nil {
		return err
	}
	isNew := !s.d.Wallet.HasWallet() || !s.d.Health.HasProfile()
	s.mu.Lock()
	s.profile.IsNewUser = isNew
	if isNew {
		s.profile.CurrentPage = PageWelcome
	} else if s.profile.CurrentPage == PageWelcome || s.profile.CurrentPage == PageLogin || s.profile.CurrentPage == PageRegister {
		s.profile.CurrentPage = PageHome
	}
	s.mu.Unlock()
	return nil
}

// Onboard saves the first wallet and health profile of a new user.
func (s *Session) Onboard(ctx context.Context, wallet *models.Wallet, profile *models.HealthProfile) error {
	userID := s.UserID()
	if userID == "" {
		return state.ErrSignedOut
	}
	w := *wallet
	w.UserID = userID
	if w.Currency == "" {
		w.Currency = s.Profile().Currency
	}
	p := *profile
	p.UserID = userID
	if err := errors.Join(w.Validate(), p.Validate()); err != nil {
		return err
	}
	if _, err := s.d.Wallet.SaveWallet(ctx, &w); err != nil {
		return err
	}
	if _, err := s.d.Health.SaveProfile(ctx, &p); err != nil {
		return err
	}
	return s.RefreshUserData(ctx)
}

// Logout revokes the token at the backend when reachable, forgets the saved
// credentials and empties the application cache.
func (s *Session) Logout(ctx context.Context) error {
	userID := s.UserID()
	if err := s.d.Auth.Logout(ctx); err != nil {
		s.d.Logger.WarnContext(ctx, "Logout failed at backend", "user_id", userID, "error", err)
	}
	if err := s.clear(); err != nil {
		return err
	}
	s.d.Logger.InfoContext(ctx, "Signed out", "user_id", userID)
	return nil
}

func (s *Session) clear() error {
	s.d.Auth.SetToken("")
	s.mu.Lock()
	s.profile = signedOut()
	s.mu.Unlock()
	s.d.Store.Reset()
	return s.d.Credentials.Clear()
}
