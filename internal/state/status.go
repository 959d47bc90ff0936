package state

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Phase is the lifecycle of a hook.
type Phase int

const (
	Uninitialized Phase = iota
	Loading
	Ready
)

func (p Phase) String() string {
	switch p {
	case Uninitialized:
		return "uninitialized"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// UserFunc returns the signed-in user id, or "" when signed out.
type UserFunc func() string

// loadKey identifies what a hook last loaded: the user and the cache generation.
type loadKey struct {
	userID     string
	generation uint64
}

// status is the shared loading flag and error slot of a hook. Every operation sets
// the slot on failure and clears it on success.
type status struct {
	mu       sync.Mutex
	phase    Phase
	inflight int
	err      string
	loaded   loadKey
}

func (s *status) begin() {
	s.mu.Lock()
	s.inflight++
	s.mu.Unlock()
}

func (s *status) end(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight--
	if err != nil {
		s.err = err.Error()
	} else {
		s.err = ""
	}
}

// mounting moves the hook to Loading unless it is already loading or has loaded key,
// and reports whether it did.
func (s *status) mounting(key loadKey) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == Loading || (s.phase == Ready && s.loaded == key) {
		return false
	}
	s.phase = Loading
	s.loaded = key
	return true
}

// refreshed marks a successful full reload for key as the hook's first load.
func (s *status) refreshed(key loadKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != Loading {
		s.phase = Ready
		s.loaded = key
	}
}

func (s *status) ready() {
	s.mu.Lock()
	s.phase = Ready
	s.mu.Unlock()
}

// Phase returns the lifecycle phase.
func (s *status) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Loading reports whether any operation of the hook is in flight.
func (s *status) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase == Loading || s.inflight > 0
}

// Err returns the message of the last failed operation, or "" after a success.
func (s *status) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// base is embedded by every hook.
type base struct {
	status
	store  *Store
	userID UserFunc
	flight singleflight.Group
}

// run wraps one hook operation with the status bookkeeping.
func (b *base) run(fn func() error) error {
	b.status.begin()
	err := fn()
	b.status.end(err)
	return err
}

func (b *base) key(userID string) loadKey {
	return loadKey{userID: userID, generation: b.store.Generation()}
}

// mount performs the first load for the signed-in user. It loads again after the
// user changes or the cache is reset. Failures still leave the hook Ready.
func (b *base) mount(ctx context.Context, load func(ctx context.Context, userID string) error) error {
	userID := b.userID()
	if userID == "" || !b.status.mounting(b.key(userID)) {
		return nil
	}
	defer b.status.ready()
	return b.run(func() error { return load(ctx, userID) })
}

// refresh reloads every family of the hook. A successful refresh counts as the
// first load, so a later mount does not fetch again.
func (b *base) refresh(ctx context.Context, load func(ctx context.Context, userID string) error) error {
	userID := b.userID()
	if userID == "" {
		return ErrSignedOut
	}
	key := b.key(userID)
	err := b.run(func() error { return load(ctx, userID) })
	if err == nil {
		b.status.refreshed(key)
	}
	return err
}

// requireUser returns the user id for a mutation, or ErrSignedOut.
func (b *base) requireUser() (string, error) {
	userID := b.userID()
	if userID == "" {
		return "", ErrSignedOut
	}
	return userID, nil
}

// refetch loads a family unless a load of the same family at the same version is
// already in flight, in which case it waits for and shares that result. The result
// is applied only if no write happened meanwhile.
func refetch[T any](ctx context.Context, b *base, f Family, c *cell[T], fetch func(ctx context.Context) (T, error)) error {
	token := version(b.store, c)
	key := fmt.Sprintf("%s@%d", f, token)
	_, err, _ := b.flight.Do(key, func() (any, error) {
		v, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		replaceIf(b.store, f, c, token, v)
		return nil, nil
	})
	return err
}

// ErrSignedOut is returned by hook mutations while no user is signed in.
var ErrSignedOut = errors.New("not signed in")
