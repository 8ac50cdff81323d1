package state

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/plexmo/plexmo/pkg/models"
)

const defaultStateKey = "plexmo:state"

// RedisConfig describes the connection to a Redis instance holding the
// current world state in a single hash: grounded fluent key to value.
// Middleware bridges keep the hash current; this provider only reads it.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Key      string
}

// Redis reads state snapshots from a Redis hash.
type Redis struct {
	client *redis.Client
	key    string
	logger *slog.Logger
}

func NewRedis(ctx context.Context, config RedisConfig, logger *slog.Logger) (*Redis, error) {
	if config.Addr == "" {
		config.Addr = "localhost:6379"
	}

	if config.Key == "" {
		config.Key = defaultStateKey
	}

	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.InfoContext(ctx, "Connected to Redis state source", "addr", config.Addr, "key", config.Key)

	return &Redis{client: client, key: config.Key, logger: logger}, nil
}

func (r *Redis) Snapshot(ctx context.Context) (*models.StateSnapshot, error) {
	values, err := r.client.HGetAll(ctx, r.key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read state hash %q: %w", r.key, err)
	}

	fluents := make(map[string]any, len(values))
	for key, raw := range values {
		fluents[key] = decodeFluentValue(raw)
	}

	return models.NewStateSnapshot(fluents), nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}

// Hash fields hold JSON scalars where possible; anything that does not
// parse is kept as the raw string.
func decodeFluentValue(raw string) any {
	var value any
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return raw
	}

	return value
}
