package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCondition_Key(t *testing.T) {
	assert.Equal(t, "at(r1,table)", Condition{Fluent: "at", Args: []string{"r1", "table"}}.Key())
	assert.Equal(t, "mission_active", Condition{Fluent: "mission_active"}.Key())
	assert.Equal(t, "battery(r1)", Condition{Fluent: "battery", Args: []string{"r1"}}.Key())
}

func TestCondition_OpDefaultsToEqual(t *testing.T) {
	assert.Equal(t, OpEqual, Condition{Fluent: "at"}.Op())
	assert.Equal(t, OpGreaterEqual, Condition{Fluent: "battery", Operator: OpGreaterEqual}.Op())
}

func TestCondition_String(t *testing.T) {
	c := Condition{Fluent: "battery", Args: []string{"r1"}, Operator: OpGreaterEqual, Value: 20}

	assert.Equal(t, "battery(r1) ge 20", c.String())
}
