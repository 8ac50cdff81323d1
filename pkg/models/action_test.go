package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParameterType_Accepts(t *testing.T) {
	tests := []struct {
		name     string
		typ      ParameterType
		value    any
		accepted bool
	}{
		{"string ok", ParameterString, "dock", true},
		{"string rejects number", ParameterString, 3, false},
		{"integer from json whole float", ParameterInteger, float64(3), true},
		{"integer rejects fraction", ParameterInteger, 3.5, false},
		{"integer from int", ParameterInteger, 3, true},
		{"float from float", ParameterFloat, 3.5, true},
		{"float accepts int", ParameterFloat, 3, true},
		{"float rejects string", ParameterFloat, "3.5", false},
		{"boolean ok", ParameterBoolean, true, true},
		{"boolean rejects string", ParameterBoolean, "true", false},
		{"object accepts map", ParameterObject, map[string]any{"k": 1}, true},
		{"object rejects nil", ParameterObject, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.accepted, tt.typ.Accepts(tt.value))
		})
	}
}

func TestKnownParameterType(t *testing.T) {
	assert.True(t, KnownParameterType(ParameterString))
	assert.True(t, KnownParameterType(ParameterObject))
	assert.False(t, KnownParameterType("velocity"))
}

func TestActionDefinition_SameSignature(t *testing.T) {
	base := &ActionDefinition{
		ID: "move",
		Parameters: []Parameter{
			{Name: "robot", Type: ParameterString},
			{Name: "to", Type: ParameterString},
		},
		Returns: ParameterBoolean,
	}

	identical := &ActionDefinition{
		ID: "move",
		Parameters: []Parameter{
			{Name: "robot", Type: ParameterString},
			{Name: "to", Type: ParameterString},
		},
		Returns: ParameterBoolean,
	}

	reordered := &ActionDefinition{
		ID: "move",
		Parameters: []Parameter{
			{Name: "to", Type: ParameterString},
			{Name: "robot", Type: ParameterString},
		},
		Returns: ParameterBoolean,
	}

	differentReturn := &ActionDefinition{
		ID:         "move",
		Parameters: base.Parameters,
		Returns:    ParameterString,
	}

	assert.True(t, base.SameSignature(identical))
	assert.False(t, base.SameSignature(reordered))
	assert.False(t, base.SameSignature(differentReturn))
}

func TestActionDefinition_Parameter(t *testing.T) {
	def := &ActionDefinition{
		ID:         "move",
		Parameters: []Parameter{{Name: "robot", Type: ParameterString}},
	}

	p, ok := def.Parameter("robot")
	assert.True(t, ok)
	assert.Equal(t, ParameterString, p.Type)

	_, ok = def.Parameter("speed")
	assert.False(t, ok)
}
