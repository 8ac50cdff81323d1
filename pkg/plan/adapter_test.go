package plan

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plexmo/plexmo/pkg/models"
	"github.com/plexmo/plexmo/pkg/protocol"
	"github.com/plexmo/plexmo/pkg/registry"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

func testRegistry(t *testing.T) *registry.Registry {
	t.Helper()

	reg := registry.NewRegistry(testLogger())

	handler := protocol.HandlerFunc(func(_ context.Context, _ map[string]any) (any, error) {
		return nil, nil
	})

	require.NoError(t, reg.Register(&models.ActionDefinition{
		ID: "move",
		Parameters: []models.Parameter{
			{Name: "robot", Type: models.ParameterString},
			{Name: "to", Type: models.ParameterString},
		},
		Handler: handler,
	}))

	require.NoError(t, reg.Register(&models.ActionDefinition{
		ID: "charge",
		Parameters: []models.Parameter{
			{Name: "robot", Type: models.ParameterString},
			{Name: "level", Type: models.ParameterInteger},
		},
		Handler: handler,
	}))

	return reg
}

func testAdapter(t *testing.T) *Adapter {
	t.Helper()

	return NewAdapter(testRegistry(t), testLogger())
}

func TestAdapter_BuildSequentialPlan(t *testing.T) {
	adapter := testAdapter(t)

	p, err := adapter.Build([]byte(`{
		"name": "patrol",
		"type": "sequential",
		"actions": [
			{"id": "a1", "action": "move", "arguments": {"robot": "r1", "to": "dock"}},
			{"id": "a2", "action": "charge", "arguments": {"robot": "r1", "level": 90}},
			{"id": "a3", "action": "move", "arguments": {"robot": "r1", "to": "gate"}}
		]
	}`))

	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "patrol", p.Name)
	assert.Equal(t, models.PlanSequential, p.Type)
	assert.Equal(t, 3, p.Size())

	// Document order becomes the chain.
	assert.Empty(t, p.Predecessors("a1"))
	assert.Equal(t, []string{"a1"}, p.Predecessors("a2"))
	assert.Equal(t, []string{"a2"}, p.Predecessors("a3"))
	assert.Equal(t, []string{"a2"}, p.Successors("a1"))
	assert.Equal(t, []string{"a2", "a3"}, p.Descendants("a1"))
}

func TestAdapter_BuildPartialOrderPlan(t *testing.T) {
	adapter := testAdapter(t)

	p, err := adapter.Build([]byte(`{
		"name": "fan-in",
		"type": "partial-order",
		"actions": [
			{"id": "left", "action": "move", "arguments": {"robot": "r1", "to": "dock"}},
			{"id": "right", "action": "move", "arguments": {"robot": "r2", "to": "dock"}},
			{"id": "join", "action": "charge", "arguments": {"robot": "r1", "level": 50}, "depends_on": ["left", "right"]}
		]
	}`))

	require.NoError(t, err)
	assert.Empty(t, p.Predecessors("left"))
	assert.Empty(t, p.Predecessors("right"))
	assert.Equal(t, []string{"left", "right"}, p.Predecessors("join"))
	assert.Equal(t, []string{"join"}, p.Successors("left"))
}

func TestAdapter_BuildParsesConditions(t *testing.T) {
	adapter := testAdapter(t)

	p, err := adapter.Build([]byte(`{
		"name": "guarded",
		"type": "sequential",
		"actions": [
			{
				"id": "a1",
				"action": "move",
				"arguments": {"robot": "r1", "to": "dock"},
				"preconditions": [
					{"fluent": "at", "args": ["r1", "gate"], "value": true}
				],
				"postconditions": [
					{"fluent": "battery", "args": ["r1"], "operator": "ge", "value": 20}
				]
			}
		]
	}`))

	require.NoError(t, err)

	action := p.Action("a1")
	require.Len(t, action.Preconditions, 1)
	assert.Equal(t, "at(r1,gate)", action.Preconditions[0].Key())
	assert.Equal(t, models.OpEqual, action.Preconditions[0].Op())

	require.Len(t, action.Postconditions, 1)
	assert.Equal(t, models.OpGreaterEqual, action.Postconditions[0].Op())
}

func TestAdapter_BuildRejectsSchemaViolations(t *testing.T) {
	adapter := testAdapter(t)

	tests := []struct {
		name string
		doc  string
	}{
		{"missing name", `{"type": "sequential", "actions": [{"id": "a1", "action": "move"}]}`},
		{"unknown plan type", `{"name": "x", "type": "parallel", "actions": [{"id": "a1", "action": "move"}]}`},
		{"empty actions", `{"name": "x", "type": "sequential", "actions": []}`},
		{"unknown field", `{"name": "x", "type": "sequential", "priority": 3, "actions": [{"id": "a1", "action": "move"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := adapter.Build([]byte(tt.doc))

			assert.Nil(t, p)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidPlan)
		})
	}
}

func TestAdapter_BuildRejectsUnknownAction(t *testing.T) {
	adapter := testAdapter(t)

	p, err := adapter.Build([]byte(`{
		"name": "broken",
		"type": "sequential",
		"actions": [{"id": "a1", "action": "teleport", "arguments": {}}]
	}`))

	assert.Nil(t, p)
	require.Error(t, err)
	assert.ErrorIs(t, err, registry.ErrUnknownAction)
}

func TestAdapter_BuildRejectsArgumentErrors(t *testing.T) {
	adapter := testAdapter(t)

	tests := []struct {
		name     string
		doc      string
		expected string
	}{
		{
			"unbound argument",
			`{"name": "x", "type": "sequential", "actions": [
				{"id": "a1", "action": "move", "arguments": {"robot": "r1"}}
			]}`,
			"argument is not bound",
		},
		{
			"type mismatch",
			`{"name": "x", "type": "sequential", "actions": [
				{"id": "a1", "action": "charge", "arguments": {"robot": "r1", "level": 12.5}}
			]}`,
			"does not match declared type",
		},
		{
			"undeclared argument",
			`{"name": "x", "type": "sequential", "actions": [
				{"id": "a1", "action": "move", "arguments": {"robot": "r1", "to": "dock", "speed": 3}}
			]}`,
			"is not declared by action",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := adapter.Build([]byte(tt.doc))

			assert.Nil(t, p)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidPlan)
			assert.Contains(t, err.Error(), tt.expected)
			assert.Contains(t, err.Error(), "a1")
		})
	}
}

func TestAdapter_BuildRejectsDuplicateActionID(t *testing.T) {
	adapter := testAdapter(t)

	p, err := adapter.Build([]byte(`{
		"name": "dup",
		"type": "sequential",
		"actions": [
			{"id": "a1", "action": "move", "arguments": {"robot": "r1", "to": "dock"}},
			{"id": "a1", "action": "move", "arguments": {"robot": "r1", "to": "gate"}}
		]
	}`))

	assert.Nil(t, p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate action id")
}

func TestAdapter_BuildRejectsUnknownDependency(t *testing.T) {
	adapter := testAdapter(t)

	p, err := adapter.Build([]byte(`{
		"name": "dangling",
		"type": "partial-order",
		"actions": [
			{"id": "a1", "action": "move", "arguments": {"robot": "r1", "to": "dock"}, "depends_on": ["ghost"]}
		]
	}`))

	assert.Nil(t, p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `depends on unknown action "ghost"`)
}

func TestAdapter_BuildRejectsCycles(t *testing.T) {
	adapter := testAdapter(t)

	p, err := adapter.Build([]byte(`{
		"name": "loop",
		"type": "partial-order",
		"actions": [
			{"id": "a1", "action": "move", "arguments": {"robot": "r1", "to": "dock"}, "depends_on": ["a2"]},
			{"id": "a2", "action": "move", "arguments": {"robot": "r1", "to": "gate"}, "depends_on": ["a1"]}
		]
	}`))

	assert.Nil(t, p)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidPlan)
	assert.Contains(t, err.Error(), "creates a cycle")
}

func TestAdapter_LoadFile(t *testing.T) {
	adapter := testAdapter(t)

	path := t.TempDir() + "/plan.json"
	doc := `{
		"name": "from-disk",
		"type": "sequential",
		"actions": [{"id": "a1", "action": "move", "arguments": {"robot": "r1", "to": "dock"}}]
	}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	p, err := adapter.LoadFile(path)

	require.NoError(t, err)
	assert.Equal(t, "from-disk", p.Name)
}

func TestAdapter_LoadFileMissing(t *testing.T) {
	adapter := testAdapter(t)

	p, err := adapter.LoadFile(t.TempDir() + "/missing.json")

	assert.Nil(t, p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read plan file")
}
