package record

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("record not found")
	ErrEmptyCollection = errors.New("no records to export")
	ErrInvalidType     = errors.New("invalid record type")
	ErrFieldMismatch   = errors.New("record fields do not match type")
	ErrInvalidInput    = errors.New("invalid input")
	ErrCorrupt         = errors.New("persisted data is corrupt")
	ErrUnreadable      = errors.New("persisted data cannot be read")
)

// ValidationError describes the first form field that failed validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// PersistenceError is returned when a store cannot write its file.
// The in-memory state of the store may already reflect the change.
type PersistenceError struct {
	Op   string
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist %s to %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// IsPersistence reports whether err is or wraps a *PersistenceError.
func IsPersistence(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}
