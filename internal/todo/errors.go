package todo

import (
	"errors"

	"github.com/dashkit/todo/internal/task"
)

var (
	// ErrEmptyDescription is returned by Add when the description is blank.
	ErrEmptyDescription = task.ErrEmptyDescription
	// ErrStaleIndex is returned when a visible index no longer maps to a task.
	ErrStaleIndex = errors.New("invalid task index")
	// ErrTaskNotFound is returned when an ID reference matches no task.
	ErrTaskNotFound = task.ErrNotFound
	// ErrAmbiguousID is returned when an ID prefix matches several tasks.
	ErrAmbiguousID = task.ErrAmbiguous
)

// ValidationError wraps input that was rejected before any state changed.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err was caused by rejected user input.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsStale reports whether err was caused by a task reference that no longer
// resolves against the current list.
func IsStale(err error) bool {
	return errors.Is(err, ErrStaleIndex) ||
		errors.Is(err, ErrTaskNotFound) ||
		errors.Is(err, ErrAmbiguousID)
}
