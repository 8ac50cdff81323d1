package state

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatic_SnapshotIsACopy(t *testing.T) {
	provider := NewStatic(map[string]any{"at(r1,dock)": true})

	snapshot, err := provider.Snapshot(context.Background())
	require.NoError(t, err)

	value, ok := snapshot.Lookup("at(r1,dock)")
	assert.True(t, ok)
	assert.Equal(t, true, value)

	// Later writes do not leak into snapshots taken earlier.
	provider.Set("at(r1,dock)", false)

	value, _ = snapshot.Lookup("at(r1,dock)")
	assert.Equal(t, true, value)

	fresh, err := provider.Snapshot(context.Background())
	require.NoError(t, err)

	value, _ = fresh.Lookup("at(r1,dock)")
	assert.Equal(t, false, value)
}

func TestStatic_NilFluents(t *testing.T) {
	provider := NewStatic(nil)

	snapshot, err := provider.Snapshot(context.Background())
	require.NoError(t, err)

	_, ok := snapshot.Lookup("anything")
	assert.False(t, ok)

	provider.Set("battery(r1)", 80)

	snapshot, err = provider.Snapshot(context.Background())
	require.NoError(t, err)

	value, ok := snapshot.Lookup("battery(r1)")
	assert.True(t, ok)
	assert.Equal(t, 80, value)
}
