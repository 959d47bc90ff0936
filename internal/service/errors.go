// Package service implements the Stride Connect handlers on top of the storage layer.
package service

import (
	"context"
	"errors"
	"fmt"

	"connectrpc.com/connect"

	"github.com/mmynk/stride/internal/middleware"
	"github.com/mmynk/stride/internal/models"
	"github.com/mmynk/stride/internal/storage"
)

var errAuthRequired = errors.New("authentication required")

// owner resolves the user a request acts on. An empty requested id means the caller;
// any other id must match the authenticated user.
func owner(ctx context.Context, requested string) (string, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return "", connect.NewError(connect.CodeUnauthenticated, errAuthRequired)
	}
	if requested != "" && requested != userID {
		return "", connect.NewError(connect.CodePermissionDenied, fmt.Errorf("records of user %s are not accessible", requested))
	}
	return userID, nil
}

// storeError translates storage and validation errors into Connect codes.
func storeError(err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, models.ErrInvalid):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, context.Canceled):
		return connect.NewError(connect.CodeCanceled, err)
	case errors.Is(err, context.DeadlineExceeded):
		return connect.NewError(connect.CodeDeadlineExceeded, err)
	}
	return connect.NewError(connect.CodeInternal, err)
}

func missing(field string) error {
	return connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("%s is required", field))
}
