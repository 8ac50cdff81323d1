// Package plan converts external planning-engine output into an executable,
// dependency-ordered plan validated against the action registry.
package plan

import (
	"errors"
	"fmt"
)

// ErrInvalidPlan is the root of all plan validation failures. Validation
// errors are configuration errors: they are reported before dispatch starts
// and dispatch never begins.
var ErrInvalidPlan = errors.New("invalid plan")

// ValidationError names the offending action and parameter of a plan that
// failed validation.
type ValidationError struct {
	Plan      string
	ActionID  string
	Parameter string
	Message   string
	Err       error
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("plan %q", e.Plan)

	if e.ActionID != "" {
		msg += fmt.Sprintf(", action %q", e.ActionID)
	}

	if e.Parameter != "" {
		msg += fmt.Sprintf(", parameter %q", e.Parameter)
	}

	if e.Message != "" {
		msg += ": " + e.Message
	}

	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

func (e *ValidationError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}

	return ErrInvalidPlan
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidPlan || errors.Is(e.Err, target)
}
