package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/iudanet/edukeeper/internal/client/api"
	"github.com/iudanet/edukeeper/internal/client/storage"
	"github.com/iudanet/edukeeper/internal/client/storage/boltdb"
	"github.com/iudanet/edukeeper/internal/client/storage/rediscache"
	"github.com/iudanet/edukeeper/internal/config"
)

// Backend удалённое хранилище и локальный кэш одного запуска CLI
type Backend struct {
	Remote api.DocumentStore
	Cache  storage.LocalCache
	Close  func() error
}

// Connector открывает Backend по конфигурации клиента
type Connector func(ctx context.Context, cfg *config.ClientConfig, logger *slog.Logger) (*Backend, error)

// Connect открывает HTTP клиент сервера и локальный кэш:
// redis, если задан redis_url, иначе файл bbolt
func Connect(ctx context.Context, cfg *config.ClientConfig, logger *slog.Logger) (*Backend, error) {
	remote := api.NewClient(cfg.ServerURL,
		api.WithToken(cfg.Token),
		api.WithTimeout(cfg.Timeout),
	)

	if cfg.RedisURL != "" {
		cache, err := rediscache.New(ctx, rediscache.Config{URL: cfg.RedisURL, Prefix: cfg.RedisPrefix})
		if err != nil {
			return nil, fmt.Errorf("failed to open redis cache: %w", err)
		}
		logger.Debug("Using redis cache", "prefix", cfg.RedisPrefix)
		return &Backend{Remote: remote, Cache: cache, Close: cache.Close}, nil
	}

	cache, err := boltdb.New(ctx, cfg.CachePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	logger.Debug("Using bbolt cache", "path", cfg.CachePath)
	return &Backend{Remote: remote, Cache: cache, Close: cache.Close}, nil
}
