// Package repo holds the device-side domain services. Each service wraps the store
// calls for one entity family and turns every failure into a typed *Error.
package repo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mmynk/stride/internal/models"
	"github.com/mmynk/stride/internal/remote"
	"github.com/mmynk/stride/internal/storage"
)

// Kind classifies a domain service failure.
type Kind int

const (
	// KindRemote is a failed or unreachable store call.
	KindRemote Kind = iota + 1
	// KindValidation is a record rejected before or by the store.
	KindValidation
	// KindNotFound is an update or delete of a record that does not exist.
	KindNotFound
	// KindUnauthenticated is a missing, expired or revoked session.
	KindUnauthenticated
)

func (k Kind) String() string {
	switch k {
	case KindRemote:
		return "remote"
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not found"
	case KindUnauthenticated:
		return "unauthenticated"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is returned by every domain service method.
type Error struct {
	Op   string
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the kind of a domain error, or 0 if err is not one.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func classify(op string, err error) *Error {
	kind := KindRemote
	switch {
	case errors.Is(err, models.ErrInvalid):
		kind = KindValidation
	case errors.Is(err, storage.ErrNotFound):
		kind = KindNotFound
	case errors.Is(err, remote.ErrUnauthenticated):
		kind = KindUnauthenticated
	}
	return &Error{Op: op, Kind: kind, Err: err}
}

func invalid(op string, err error) *Error {
	return &Error{Op: op, Kind: KindValidation, Err: err}
}

var errNoUser = fmt.Errorf("%w: user id is required", models.ErrInvalid)

func requireUser(op, userID string) error {
	if userID == "" {
		return invalid(op, errNoUser)
	}
	return nil
}

// fetchAll never hands back a partial or nil slice.
func fetchAll[T any](ctx context.Context, logger *slog.Logger, op, userID string, fn func(context.Context, string) ([]T, error)) ([]T, error) {
	if err := requireUser(op, userID); err != nil {
		return []T{}, err
	}
	items, err := fn(ctx, userID)
	if err != nil {
		e := classify(op, err)
		logger.Error("Fetch failed", "op", op, "user_id", userID, "kind", e.Kind, "error", err)
		return []T{}, e
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// fetchOne reports a missing row as (nil, nil).
func fetchOne[T any](ctx context.Context, logger *slog.Logger, op, userID string, fn func(context.Context, string) (*T, error)) (*T, error) {
	if err := requireUser(op, userID); err != nil {
		return nil, err
	}
	v, err := fn(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		e := classify(op, err)
		logger.Error("Fetch failed", "op", op, "user_id", userID, "kind", e.Kind, "error", err)
		return nil, e
	}
	return v, nil
}

// mutate runs a confirmed write and classifies its failure.
func mutate(logger *slog.Logger, op, userID string, err error) error {
	if err == nil {
		return nil
	}
	e := classify(op, err)
	logger.Warn("Mutation failed", "op", op, "user_id", userID, "kind", e.Kind, "error", err)
	return e
}
