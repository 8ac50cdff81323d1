// Package file provides file-based persistence for execution traces.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/plexmo/plexmo/pkg/models"
	"github.com/plexmo/plexmo/pkg/persistence"
)

const tracesDir = "traces"

// Persistence stores each execution trace as one JSON file under
// <root>/traces/<id>.json.
type Persistence struct {
	root string
}

func NewPersistence(root string) *Persistence {
	cleanRoot := strings.Replace(root, "file://", "", 1)

	return &Persistence{root: cleanRoot}
}

func (fp *Persistence) SaveTrace(_ context.Context, trace *models.ExecutionTrace) error {
	if trace.ID == "" {
		return &persistence.TraceError{Op: "save", TraceID: trace.ID, Err: errors.New("missing trace id")}
	}

	dir := filepath.Join(fp.root, tracesDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &persistence.TraceError{Op: "save", TraceID: trace.ID, Err: err}
	}

	data, err := json.MarshalIndent(trace, "", "  ")
	if err != nil {
		return &persistence.TraceError{Op: "save", TraceID: trace.ID, Err: err}
	}

	if err := os.WriteFile(fp.tracePath(trace.ID), data, 0o644); err != nil {
		return &persistence.TraceError{Op: "save", TraceID: trace.ID, Err: err}
	}

	return nil
}

func (fp *Persistence) Traces(_ context.Context) ([]*models.ExecutionTrace, error) {
	entries, err := os.ReadDir(filepath.Join(fp.root, tracesDir))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to list traces: %w", err)
	}

	traces := make([]*models.ExecutionTrace, 0, len(entries))

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		trace, err := fp.readTrace(strings.TrimSuffix(entry.Name(), ".json"))
		if err != nil {
			return nil, err
		}

		traces = append(traces, trace)
	}

	sort.Slice(traces, func(i, j int) bool {
		return traces[i].StartedAt.After(traces[j].StartedAt)
	})

	return traces, nil
}

func (fp *Persistence) TraceByID(_ context.Context, id string) (*models.ExecutionTrace, error) {
	return fp.readTrace(id)
}

func (fp *Persistence) HealthCheck(_ context.Context) error {
	if _, err := os.Stat(fp.root); errors.Is(err, fs.ErrNotExist) {
		return os.ErrNotExist
	}

	return nil
}

func (fp *Persistence) Close(_ context.Context) error {
	return nil
}

func (fp *Persistence) tracePath(id string) string {
	return filepath.Join(fp.root, tracesDir, id+".json")
}

func (fp *Persistence) readTrace(id string) (*models.ExecutionTrace, error) {
	data, err := os.ReadFile(fp.tracePath(id))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &persistence.TraceError{Op: "read", TraceID: id, Err: persistence.ErrTraceNotFound}
	}

	if err != nil {
		return nil, &persistence.TraceError{Op: "read", TraceID: id, Err: err}
	}

	var trace models.ExecutionTrace
	if err := json.Unmarshal(data, &trace); err != nil {
		return nil, &persistence.TraceError{Op: "read", TraceID: id, Err: err}
	}

	return &trace, nil
}
