// Package app wires configuration into a ready Library: it selects the
// persistence backend once and builds the repository over it.
package app

import (
	"context"
	"fmt"

	"teamprompt/config"
	"teamprompt/internal/database"
	"teamprompt/internal/repository"
	"teamprompt/internal/services"
	"teamprompt/internal/storage"
	"teamprompt/pkg/logger"

	"go.uber.org/zap"
)

// App owns the library and whatever connections back it.
type App struct {
	Library *services.Library
	closers []func() error
	log     *zap.Logger
}

// Open selects the backend described by cfg and builds the library on it.
func Open(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, error) {
	log = logger.OrNop(log)
	a := &App{log: log}

	var sender storage.Sender
	if cfg.HostURL != "" {
		sender = storage.NewHTTPSender(cfg.HostURL, cfg.HostTimeout, log.Named("host"))
	}

	backend, err := storage.Select(ctx, storage.SelectOptions{
		Mode:       cfg.Backend,
		Sender:     sender,
		Prefix:     cfg.StoragePrefix,
		OpenMedium: a.mediumOpener(cfg),
		Logger:     log.Named("storage"),
	})
	if err != nil {
		a.Close()
		return nil, err
	}

	policy := repository.FaultIgnore
	if cfg.StrictPersistence {
		policy = repository.FaultSurface
	}
	repo := repository.New(backend, repository.Options{
		Policy: policy,
		Logger: log.Named("repository"),
	})
	a.Library = services.NewLibrary(repo, log.Named("library"))
	return a, nil
}

func (a *App) mediumOpener(cfg *config.Config) func(ctx context.Context) (storage.Medium, error) {
	return func(ctx context.Context) (storage.Medium, error) {
		switch cfg.WebMedium {
		case config.MediumRedis:
			client, err := database.ConnectRedis(ctx, cfg)
			if err != nil {
				return nil, fmt.Errorf("connect redis %s: %w", cfg.RedisFullAddr(), err)
			}
			a.closers = append(a.closers, client.Close)
			return storage.NewRedisMedium(client), nil
		case config.MediumSQLite:
			db, err := database.ConnectSQLite(cfg.SQLitePath)
			if err != nil {
				return nil, fmt.Errorf("open sqlite %s: %w", cfg.SQLitePath, err)
			}
			sqlDB, err := db.DB()
			if err != nil {
				return nil, err
			}
			a.closers = append(a.closers, sqlDB.Close)
			return storage.NewSQLMedium(db)
		default:
			return nil, fmt.Errorf("unknown medium %q", cfg.WebMedium)
		}
	}
}

// Close releases the durable medium connections.
func (a *App) Close() {
	for _, c := range a.closers {
		if err := c(); err != nil {
			a.log.Warn("close failed", zap.Error(err))
		}
	}
	a.closers = nil
}
