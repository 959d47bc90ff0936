// Package state holds the device-side cache of every record family and the hooks that
// keep it in sync with the backend. Hooks derive display metrics from the cache and
// apply mutations to it only after the backend confirmed them.
package state

import (
	"fmt"
	"slices"
	"sync"

	"github.com/mmynk/stride/internal/models"
)

// Family names one cached record family.
type Family int

const (
	FamilyWallet Family = iota
	FamilyDebits
	FamilyCredits
	FamilyHealth
	FamilyExercises
	FamilyTodos
	FamilyEvents
	numFamilies
)

var familyNames = [numFamilies]string{"wallet", "debits", "credits", "health", "exercises", "todos", "events"}

func (f Family) String() string {
	if f >= 0 && f < numFamilies {
		return familyNames[f]
	}
	return fmt.Sprintf("family(%d)", int(f))
}

// cell is one cached value and the version it was written at.
type cell[T any] struct {
	value   T
	version uint64
}

// Store is the application cache shared by all hooks. Readers always get copies.
//
// Every family carries a version that increases on each write. A fetch captures
// the version before calling the backend and its result is only applied if the
// version is unchanged, so a response that raced with a confirmed mutation or a
// newer fetch is dropped.
type Store struct {
	mu        sync.RWMutex
	wallet    cell[*models.Wallet]
	debits    cell[[]models.Transaction]
	credits   cell[[]models.Transaction]
	health    cell[*models.HealthProfile]
	exercises cell[[]models.Exercise]
	todos     cell[[]models.Todo]
	events    cell[[]models.CalendarEvent]

	// generation counts resets.
	generation uint64

	subMu   sync.Mutex
	subs    map[int]func(Family)
	nextSub int
}

// NewStore creates an empty cache.
func NewStore() *Store {
	return &Store{subs: map[int]func(Family){}}
}

// Subscribe registers fn to be called after every change with the family that
// changed. Calls happen outside the store lock. The returned func unsubscribes.
func (s *Store) Subscribe(fn func(Family)) (cancel func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Store) notify(families ...Family) {
	s.subMu.Lock()
	fns := make([]func(Family), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, f := range families {
		for _, fn := range fns {
			fn(f)
		}
	}
}

// Version returns the current version of a family.
func (s *Store) Version(f Family) uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch f {
	case FamilyWallet:
		return s.wallet.version
	case FamilyDebits:
		return s.debits.version
	case FamilyCredits:
		return s.credits.version
	case FamilyHealth:
		return s.health.version
	case FamilyExercises:
		return s.exercises.version
	case FamilyTodos:
		return s.todos.version
	case FamilyEvents:
		return s.events.version
	}
	return 0
}

// Generation returns how many times the cache has been reset. Hooks mount again
// once it changes.
func (s *Store) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// Reset empties every family and invalidates in-flight fetches.
func (s *Store) Reset() {
	s.mu.Lock()
	s.generation++
	s.wallet = cell[*models.Wallet]{version: s.wallet.version + 1}
	s.debits = cell[[]models.Transaction]{version: s.debits.version + 1}
	s.credits = cell[[]models.Transaction]{version: s.credits.version + 1}
	s.health = cell[*models.HealthProfile]{version: s.health.version + 1}
	s.exercises = cell[[]models.Exercise]{version: s.exercises.version + 1}
	s.todos = cell[[]models.Todo]{version: s.todos.version + 1}
	s.events = cell[[]models.CalendarEvent]{version: s.events.version + 1}
	s.mu.Unlock()

	all := make([]Family, 0, numFamilies)
	for f := Family(0); f < numFamilies; f++ {
		all = append(all, f)
	}
	s.notify(all...)
}

func (s *Store) Wallet() *models.Wallet {
	return read(s, &s.wallet, clonePtr[models.Wallet])
}

func (s *Store) Debits() []models.Transaction {
	return read(s, &s.debits, slices.Clone[[]models.Transaction])
}

func (s *Store) Credits() []models.Transaction {
	return read(s, &s.credits, slices.Clone[[]models.Transaction])
}

func (s *Store) HealthProfile() *models.HealthProfile {
	return read(s, &s.health, clonePtr[models.HealthProfile])
}

func (s *Store) Exercises() []models.Exercise {
	return read(s, &s.exercises, slices.Clone[[]models.Exercise])
}

func (s *Store) Todos() []models.Todo {
	return read(s, &s.todos, slices.Clone[[]models.Todo])
}

func (s *Store) Events() []models.CalendarEvent {
	return read(s, &s.events, slices.Clone[[]models.CalendarEvent])
}

func read[T any](s *Store, c *cell[T], clone func(T) T) T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(c.value)
}

// replaceIf stores v if the family is still at version token.
func replaceIf[T any](s *Store, f Family, c *cell[T], token uint64, v T) bool {
	s.mu.Lock()
	if c.version != token {
		s.mu.Unlock()
		return false
	}
	c.value = v
	c.version++
	s.mu.Unlock()

	s.notify(f)
	return true
}

// update applies a confirmed mutation unconditionally.
func update[T any](s *Store, f Family, c *cell[T], fn func(T) T) {
	s.mu.Lock()
	c.value = fn(c.value)
	c.version++
	s.mu.Unlock()

	s.notify(f)
}

func version[T any](s *Store, c *cell[T]) uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return c.version
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// values copies fetched records into a value slice, never nil.
func values[T any](items []*T) []T {
	out := make([]T, 0, len(items))
	for _, p := range items {
		if p != nil {
			out = append(out, *p)
		}
	}
	return out
}

// pointers adapts a cached copy for the calculator functions.
func pointers[T any](items []T) []*T {
	out := make([]*T, len(items))
	for i := range items {
		out[i] = &items[i]
	}
	return out
}

// replaceByID swaps the record with v's id for v, or appends v if absent.
func replaceByID[T any](items []T, v T, id func(T) string) []T {
	out := slices.Clone(items)
	for i := range out {
		if id(out[i]) == id(v) {
			out[i] = v
			return out
		}
	}
	return append(out, v)
}

func removeByID[T any](items []T, target string, id func(T) string) []T {
	return slices.DeleteFunc(slices.Clone(items), func(v T) bool { return id(v) == target })
}
