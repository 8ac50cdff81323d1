// Package registry maintains the mapping from action identifiers to
// executable handlers and their declared signatures.
package registry

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownAction indicates no definition is registered for an
	// identifier.
	ErrUnknownAction = errors.New("unknown action")

	// ErrDuplicateAction indicates an identifier is already registered with
	// a different signature.
	ErrDuplicateAction = errors.New("duplicate action")

	// ErrInvalidDefinition indicates a definition is missing required fields
	// or declares an unknown parameter type.
	ErrInvalidDefinition = errors.New("invalid action definition")
)

// ActionError wraps registry errors with the offending action identifier.
type ActionError struct {
	Op       string
	ActionID string
	Err      error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("%s failed for action %q: %v", e.Op, e.ActionID, e.Err)
}

func (e *ActionError) Unwrap() error {
	return e.Err
}

func (e *ActionError) Is(target error) bool {
	return errors.Is(e.Err, target)
}
