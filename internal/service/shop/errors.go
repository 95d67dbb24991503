package shop

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation wraps every rejected input.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound reports an unknown stock item, worker or draft.
	ErrNotFound = errors.New("not found")
	// ErrRemoteSave reports that a change was kept in memory and in the local
	// snapshot but the remote store did not accept it.
	ErrRemoteSave = errors.New("remote save failed")
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func notFound(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}
