package bootstrap

import (
	"context"
	"fmt"

	"github.com/qaz17899/game-hub/internal/config"
	"github.com/qaz17899/game-hub/internal/logger"
	"github.com/qaz17899/game-hub/internal/storage"
)

// BuildStorage creates the key-value store selected by STORAGE_BACKEND.
// The memory backend needs no external service and is the default for
// local development; redis and postgres fail fast if unreachable so a
// misconfigured deployment does not silently run without persistence.
func BuildStorage(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	switch cfg.StorageBackend {
	case config.StorageBackendMemory:
		logger.Info(LogMsgStorageInitialized, "backend", cfg.StorageBackend)
		return storage.NewMemoryStore(), nil

	case config.StorageBackendRedis:
		store, err := storage.NewRedisStore(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, fmt.Errorf("%s %q: %w", ErrMsgFailedConnectStorage, cfg.StorageBackend, err)
		}
		logger.Info(LogMsgStorageInitialized, "backend", cfg.StorageBackend, "addr", cfg.RedisAddr)
		return store, nil

	case config.StorageBackendPostgres:
		store, err := storage.NewPostgresStore(ctx, cfg.GetDBConnString())
		if err != nil {
			return nil, fmt.Errorf("%s %q: %w", ErrMsgFailedConnectStorage, cfg.StorageBackend, err)
		}
		logger.Info(LogMsgStorageInitialized, "backend", cfg.StorageBackend, "host", cfg.DBHost)
		return store, nil

	default:
		return nil, fmt.Errorf("%s %q", ErrMsgUnknownBackend, cfg.StorageBackend)
	}
}
