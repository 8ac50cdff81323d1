package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/plexmo/plexmo/pkg/state"
)

// NewStateProvider builds the system-state source for the monitor. With
// provider "redis" the state is read from a Redis hash; otherwise a static
// provider is loaded from stateFile (empty state when no file is given).
func NewStateProvider(ctx context.Context, provider, stateFile, redisAddr, stateKey string, logger *slog.Logger) (state.Provider, error) {
	switch provider {
	case "redis":
		return state.NewRedis(ctx, state.RedisConfig{
			Addr:     redisAddr,
			Password: os.Getenv("REDIS_PASSWORD"),
			Key:      stateKey,
		}, logger)
	case "static", "":
		fluents := make(map[string]any)

		if stateFile != "" {
			raw, err := os.ReadFile(stateFile)
			if err != nil {
				return nil, fmt.Errorf("failed to read state file %s: %w", stateFile, err)
			}

			if err := json.Unmarshal(raw, &fluents); err != nil {
				return nil, fmt.Errorf("failed to decode state file %s: %w", stateFile, err)
			}
		}

		return state.NewStatic(fluents), nil
	default:
		return nil, fmt.Errorf("unsupported state provider: %s", provider)
	}
}
