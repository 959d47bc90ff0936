package models

import (
	"errors"
	"fmt"
)

// ErrInvalid is wrapped by every validation failure returned from a Validate method.
var ErrInvalid = errors.New("invalid record")

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}
