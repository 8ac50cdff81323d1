package persistence

import (
	"errors"
	"fmt"
)

var (
	// ErrTraceNotFound indicates no execution trace exists for the given
	// identifier.
	ErrTraceNotFound = errors.New("execution trace not found")

	// ErrTraceAlreadyExists indicates a trace with the same identifier was
	// already stored.
	ErrTraceAlreadyExists = errors.New("execution trace already exists")
)

// TraceError wraps trace storage errors with operation context.
type TraceError struct {
	Op      string
	TraceID string
	Err     error
}

func (e *TraceError) Error() string {
	return fmt.Sprintf("%s operation failed for trace %s: %v", e.Op, e.TraceID, e.Err)
}

func (e *TraceError) Unwrap() error {
	return e.Err
}

func (e *TraceError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// IsTraceNotFound checks if an error indicates a trace was not found.
func IsTraceNotFound(err error) bool {
	return errors.Is(err, ErrTraceNotFound)
}
