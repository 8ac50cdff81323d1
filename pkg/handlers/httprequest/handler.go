// Package httprequest provides a handler that calls a middleware HTTP
// endpoint, the narrow interface through which plans reach external systems.
package httprequest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/plexmo/plexmo/pkg/models"
	"github.com/plexmo/plexmo/pkg/protocol"
)

const defaultTimeoutSeconds = 30

type Handler struct {
	client *http.Client
}

func NewHandler() *Handler {
	return &Handler{
		client: &http.Client{Timeout: defaultTimeoutSeconds * time.Second},
	}
}

func (h *Handler) Execute(ctx context.Context, args map[string]any) (any, error) {
	url, _ := args["url"].(string)

	method, _ := args["method"].(string)
	if method == "" {
		method = http.MethodGet
	}

	body, _ := args["body"].(string)

	req, err := http.NewRequestWithContext(ctx, strings.ToUpper(method), url, strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", url, err)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", url, err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("request to %s returned status %d", url, resp.StatusCode)
	}

	return map[string]any{
		"status_code": resp.StatusCode,
		"body":        string(payload),
	}, nil
}

// Definition returns the registrable action definition for this handler.
func Definition() *models.ActionDefinition {
	return &models.ActionDefinition{
		ID:          "http_request",
		Description: "Performs an HTTP request against a middleware endpoint.",
		Parameters: []models.Parameter{
			{Name: "url", Type: models.ParameterString},
			{Name: "method", Type: models.ParameterString},
			{Name: "body", Type: models.ParameterString},
		},
		Returns: models.ParameterObject,
		Handler: protocol.Handler(NewHandler()),
	}
}
