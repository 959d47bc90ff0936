// Package memstore is an in-memory storage.Records used by the client-core tests and
// by offline demos. Hook lets callers inject failures or block a call.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/stride/internal/models"
	"github.com/mmynk/stride/internal/storage"
)

// Ensure Store implements storage.Records
var _ storage.Records = (*Store)(nil)

// Store keeps every table in maps keyed by record id.
type Store struct {
	// Hook, if set, runs before every operation with its name (e.g. "ListTodos").
	// A non-nil return fails the operation with that error.
	Hook func(ctx context.Context, op string) error

	mu           sync.Mutex
	wallets      map[string]models.Wallet
	profiles     map[string]models.HealthProfile
	transactions map[string]models.Transaction
	exercises    map[string]models.Exercise
	todos        map[string]models.Todo
	events       map[string]models.CalendarEvent
	now          func() time.Time
}

// New creates an empty store.
func New() *Store {
	return &Store{
		wallets:      map[string]models.Wallet{},
		profiles:     map[string]models.HealthProfile{},
		transactions: map[string]models.Transaction{},
		exercises:    map[string]models.Exercise{},
		todos:        map[string]models.Todo{},
		events:       map[string]models.CalendarEvent{},
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) hook(ctx context.Context, op string) error {
	if s.Hook == nil {
		return nil
	}
	return s.Hook(ctx, op)
}

func notFound(what, id string) error {
	return fmt.Errorf("%s %s: %w", what, id, storage.ErrNotFound)
}

func (s *Store) GetWallet(ctx context.Context, userID string) (*models.Wallet, error) {
	if err := s.hook(ctx, "GetWallet"); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.wallets[userID]
	if !ok {
		return nil, notFound("wallet for user", userID)
	}
	return &w, nil
}

func (s *Store) SaveWallet(ctx context.Context, w *models.Wallet) error {
	if err := s.hook(ctx, "SaveWallet"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wallets[w.UserID] = *w
	return nil
}

func (s *Store) ListTransactions(ctx context.Context, userID string, typ models.TransactionType) ([]*models.Transaction, error) {
	if err := s.hook(ctx, "ListTransactions"); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Transaction
	for _, t := range s.transactions {
		if t.UserID == userID && t.Type == typ {
			out = append(out, &t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LoggedAt.After(out[j].LoggedAt) })
	return out, nil
}

func (s *Store) CreateTransaction(ctx context.Context, t *models.Transaction) error {
	if err := s.hook(ctx, "CreateTransaction"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = uuid.New().String()
	if t.LoggedAt.IsZero() {
		t.LoggedAt = s.now()
	}
	s.transactions[t.ID] = *t
	return nil
}

func (s *Store) UpdateTransaction(ctx context.Context, userID, id string, patch models.TransactionPatch) (*models.Transaction, error) {
	if err := s.hook(ctx, "UpdateTransaction"); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.transactions[id]
	if !ok || t.UserID != userID {
		return nil, notFound("transaction", id)
	}
	patch.Apply(&t)
	if err := t.Validate(); err != nil {
		return nil, err
	}
	s.transactions[id] = t
	return &t, nil
}

func (s *Store) DeleteTransaction(ctx context.Context, userID, id string) error {
	if err := s.hook(ctx, "DeleteTransaction"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.transactions[id]; !ok || t.UserID != userID {
		return notFound("transaction", id)
	}
	delete(s.transactions, id)
	return nil
}

func (s *Store) GetHealthProfile(ctx context.Context, userID string) (*models.HealthProfile, error) {
	if err := s.hook(ctx, "GetHealthProfile"); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[userID]
	if !ok {
		return nil, notFound("health profile for user", userID)
	}
	return &p, nil
}

func (s *Store) SaveHealthProfile(ctx context.Context, p *models.HealthProfile) error {
	if err := s.hook(ctx, "SaveHealthProfile"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[p.UserID] = *p
	return nil
}

func (s *Store) ListExercises(ctx context.Context, userID string) ([]*models.Exercise, error) {
	if err := s.hook(ctx, "ListExercises"); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Exercise
	for _, e := range s.exercises {
		if e.UserID == userID {
			out = append(out, &e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LoggedAt.After(out[j].LoggedAt) })
	return out, nil
}

func (s *Store) CreateExercise(ctx context.Context, e *models.Exercise) error {
	if err := s.hook(ctx, "CreateExercise"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = uuid.New().String()
	if e.LoggedAt.IsZero() {
		e.LoggedAt = s.now()
	}
	e.Normalize()
	s.exercises[e.ID] = *e
	return nil
}

func (s *Store) UpdateExercise(ctx context.Context, userID, id string, patch models.ExercisePatch) (*models.Exercise, error) {
	if err := s.hook(ctx, "UpdateExercise"); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.exercises[id]
	if !ok || e.UserID != userID {
		return nil, notFound("exercise", id)
	}
	patch.Apply(&e)
	if err := e.Validate(); err != nil {
		return nil, err
	}
	s.exercises[id] = e
	return &e, nil
}

func (s *Store) DeleteExercise(ctx context.Context, userID, id string) error {
	if err := s.hook(ctx, "DeleteExercise"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.exercises[id]; !ok || e.UserID != userID {
		return notFound("exercise", id)
	}
	delete(s.exercises, id)
	return nil
}

func (s *Store) ListTodos(ctx context.Context, userID string) ([]*models.Todo, error) {
	if err := s.hook(ctx, "ListTodos"); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Todo
	for _, t := range s.todos {
		if t.UserID == userID {
			out = append(out, &t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (s *Store) CreateTodo(ctx context.Context, t *models.Todo) error {
	if err := s.hook(ctx, "CreateTodo"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = uuid.New().String()
	s.todos[t.ID] = *t
	return nil
}

func (s *Store) UpdateTodo(ctx context.Context, userID, id string, patch models.TodoPatch) (*models.Todo, error) {
	if err := s.hook(ctx, "UpdateTodo"); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.todos[id]
	if !ok || t.UserID != userID {
		return nil, notFound("todo", id)
	}
	patch.Apply(&t)
	if err := t.Validate(); err != nil {
		return nil, err
	}
	s.todos[id] = t
	return &t, nil
}

func (s *Store) DeleteTodo(ctx context.Context, userID, id string) error {
	if err := s.hook(ctx, "DeleteTodo"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.todos[id]; !ok || t.UserID != userID {
		return notFound("todo", id)
	}
	delete(s.todos, id)
	return nil
}

func (s *Store) ListEvents(ctx context.Context, userID string) ([]*models.CalendarEvent, error) {
	if err := s.hook(ctx, "ListEvents"); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.CalendarEvent
	for _, e := range s.events {
		if e.UserID == userID {
			out = append(out, &e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EventDate.Before(out[j].EventDate) })
	return out, nil
}

func (s *Store) CreateEvent(ctx context.Context, e *models.CalendarEvent) error {
	if err := s.hook(ctx, "CreateEvent"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = uuid.New().String()
	s.events[e.ID] = *e
	return nil
}

func (s *Store) UpdateEvent(ctx context.Context, userID, id string, patch models.EventPatch) (*models.CalendarEvent, error) {
	if err := s.hook(ctx, "UpdateEvent"); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.events[id]
	if !ok || e.UserID != userID {
		return nil, notFound("event", id)
	}
	patch.Apply(&e)
	if err := e.Validate(); err != nil {
		return nil, err
	}
	s.events[id] = e
	return &e, nil
}

func (s *Store) DeleteEvent(ctx context.Context, userID, id string) error {
	if err := s.hook(ctx, "DeleteEvent"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.events[id]; !ok || e.UserID != userID {
		return notFound("event", id)
	}
	delete(s.events, id)
	return nil
}
