// Package persistence provides the storage abstraction for execution traces.
package persistence

import (
	"context"

	"github.com/plexmo/plexmo/pkg/models"
)

type Persistence interface {
	SaveTrace(ctx context.Context, trace *models.ExecutionTrace) error
	Traces(ctx context.Context) ([]*models.ExecutionTrace, error)
	TraceByID(ctx context.Context, id string) (*models.ExecutionTrace, error)
	HealthCheck(ctx context.Context) error

	Close(ctx context.Context) error
}
