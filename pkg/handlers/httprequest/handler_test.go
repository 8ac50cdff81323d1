package httprequest

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_GetRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		_, _ = w.Write([]byte(`{"ok": true}`))
	}))
	defer server.Close()

	handler := NewHandler()

	result, err := handler.Execute(context.Background(), map[string]any{"url": server.URL})

	require.NoError(t, err)

	payload, ok := result.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, payload["status_code"])
	assert.Equal(t, `{"ok": true}`, payload["body"])
}

func TestHandler_PostRequestWithBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Equal(t, `{"command": "open"}`, string(body))

		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	handler := NewHandler()

	result, err := handler.Execute(context.Background(), map[string]any{
		"url":    server.URL,
		"method": "post",
		"body":   `{"command": "open"}`,
	})

	require.NoError(t, err)

	payload, ok := result.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, http.StatusCreated, payload["status_code"])
}

func TestHandler_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	handler := NewHandler()

	result, err := handler.Execute(context.Background(), map[string]any{"url": server.URL})

	assert.Nil(t, result)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")
}

func TestDefinition(t *testing.T) {
	def := Definition()

	assert.Equal(t, "http_request", def.ID)
	assert.Len(t, def.Parameters, 3)
	assert.NotNil(t, def.Handler)
}
