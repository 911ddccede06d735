package storage

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/terraincognita07/doze/internal/cache"
	"github.com/terraincognita07/doze/internal/config"
	"github.com/terraincognita07/doze/internal/db"
	"github.com/terraincognita07/doze/internal/services"
)

// Open builds the key-value store selected by cfg.StorageBackend. The
// returned closer releases the backend connection.
func Open(ctx context.Context, cfg config.Config, logger *zap.Logger) (services.KeyValueStore, func() error, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.StorageBackend {
	case config.BackendMemory:
		logger.Warn("using in-memory storage, entries are lost on exit")
		return NewMemoryStore(), noopClose, nil

	case config.BackendRedis:
		client, err := cache.Connect(ctx, cache.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, nil, err
		}
		store := cache.NewStore(client, cfg.RedisPrefix)
		logger.Info("storage ready", zap.String("backend", cfg.StorageBackend), zap.String("addr", cfg.RedisAddr))
		return store, store.Close, nil

	case config.BackendPostgres:
		database, err := db.OpenPostgres(cfg.PostgresDSN, logger)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("storage ready", zap.String("backend", cfg.StorageBackend))
		return gormStore(database)

	case config.BackendSQLite:
		database, err := db.OpenSQLite(cfg.SQLitePath(), logger)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("storage ready", zap.String("backend", cfg.StorageBackend), zap.String("path", cfg.SQLitePath()))
		return gormStore(database)

	default:
		return nil, nil, fmt.Errorf("unsupported storage backend %q", cfg.StorageBackend)
	}
}

func gormStore(database *gorm.DB) (services.KeyValueStore, func() error, error) {
	repositories := db.NewRepositories(database)
	return repositories.KeyValues, func() error { return db.Close(database) }, nil
}

func noopClose() error {
	return nil
}
