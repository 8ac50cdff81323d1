package models

import (
	"fmt"
	"strings"
)

// Operator enumerates the comparison operators usable in conditions.
type Operator string

const (
	OpEqual        Operator = "eq"
	OpNotEqual     Operator = "ne"
	OpLess         Operator = "lt"
	OpLessEqual    Operator = "le"
	OpGreater      Operator = "gt"
	OpGreaterEqual Operator = "ge"
)

// Condition is a structural pre- or postcondition over one grounded fluent:
// the fluent's current value compared against an expected value. Conditions
// carry no executable code; the monitor evaluates them against a state
// snapshot.
type Condition struct {
	Fluent   string   `json:"fluent"             validate:"required"`
	Args     []string `json:"args,omitempty"`
	Operator Operator `json:"operator,omitempty" validate:"omitempty,oneof=eq ne lt le gt ge"`
	Value    any      `json:"value"`
}

// Key returns the grounded fluent key used to look the condition up in a
// state snapshot, e.g. "at(r1,table)".
func (c Condition) Key() string {
	if len(c.Args) == 0 {
		return c.Fluent
	}

	return fmt.Sprintf("%s(%s)", c.Fluent, strings.Join(c.Args, ","))
}

// Op returns the effective operator, defaulting to equality.
func (c Condition) Op() Operator {
	if c.Operator == "" {
		return OpEqual
	}

	return c.Operator
}

func (c Condition) String() string {
	return fmt.Sprintf("%s %s %v", c.Key(), c.Op(), c.Value)
}
