// Package models defines the core domain models for plan dispatch and
// execution monitoring.
package models

import (
	"math"

	"github.com/plexmo/plexmo/pkg/protocol"
)

// ParameterType enumerates the argument types an action signature may declare.
type ParameterType string

const (
	ParameterString  ParameterType = "string"
	ParameterInteger ParameterType = "integer"
	ParameterFloat   ParameterType = "float"
	ParameterBoolean ParameterType = "boolean"
	ParameterObject  ParameterType = "object"
)

// KnownParameterType reports whether t is one of the declared parameter types.
func KnownParameterType(t ParameterType) bool {
	switch t {
	case ParameterString, ParameterInteger, ParameterFloat, ParameterBoolean, ParameterObject:
		return true
	}

	return false
}

// Accepts reports whether a JSON-decoded argument value matches the type.
// JSON numbers arrive as float64, so integers are floats without a
// fractional part.
func (t ParameterType) Accepts(value any) bool {
	switch t {
	case ParameterString:
		_, ok := value.(string)

		return ok
	case ParameterInteger:
		switch v := value.(type) {
		case int, int32, int64:
			return true
		case float64:
			return v == math.Trunc(v)
		}

		return false
	case ParameterFloat:
		switch value.(type) {
		case float64, float32, int, int64:
			return true
		}

		return false
	case ParameterBoolean:
		_, ok := value.(bool)

		return ok
	case ParameterObject:
		return value != nil
	}

	return false
}

// Parameter is one typed parameter of an action signature.
type Parameter struct {
	Name string        `json:"name" validate:"required"`
	Type ParameterType `json:"type" validate:"required"`
}

// ActionDefinition maps an action identifier to its executable handler and
// declared signature. Immutable once registered.
type ActionDefinition struct {
	ID          string           `json:"id"          validate:"required"`
	Description string           `json:"description,omitempty"`
	Parameters  []Parameter      `json:"parameters"`
	Returns     ParameterType    `json:"returns,omitempty"`
	Handler     protocol.Handler `json:"-"`
}

// SameSignature reports whether two definitions declare the identical
// parameter list and return type.
func (d *ActionDefinition) SameSignature(other *ActionDefinition) bool {
	if d.Returns != other.Returns || len(d.Parameters) != len(other.Parameters) {
		return false
	}

	for i, p := range d.Parameters {
		if other.Parameters[i] != p {
			return false
		}
	}

	return true
}

// Parameter returns the declared parameter with the given name.
func (d *ActionDefinition) Parameter(name string) (Parameter, bool) {
	for _, p := range d.Parameters {
		if p.Name == name {
			return p, true
		}
	}

	return Parameter{}, false
}
