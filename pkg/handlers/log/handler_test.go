package log

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_LogsMessage(t *testing.T) {
	var buf bytes.Buffer

	logger := slog.New(slog.NewTextHandler(&buf, nil))
	handler := NewHandler(logger)

	result, err := handler.Execute(context.Background(), map[string]any{"message": "arrived at dock"})

	require.NoError(t, err)
	assert.Equal(t, map[string]any{"message": "arrived at dock"}, result)
	assert.Contains(t, buf.String(), "arrived at dock")
}

func TestDefinition(t *testing.T) {
	def := Definition(slog.Default())

	assert.Equal(t, "log", def.ID)
	require.Len(t, def.Parameters, 1)
	assert.Equal(t, "message", def.Parameters[0].Name)
	assert.NotNil(t, def.Handler)
}
