package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/ndtm/internal/config"
	"github.com/aretw0/ndtm/internal/service"
	"github.com/aretw0/ndtm/pkg/adapters/file"
	"github.com/aretw0/ndtm/pkg/adapters/memory"
	"github.com/aretw0/ndtm/pkg/adapters/redis"
	"github.com/aretw0/ndtm/pkg/ports"
)

// OpenStore returns the Redis store when cfg names a Redis address, the file
// store when it names a directory, and the in-memory store otherwise.
// The returned close function is never nil.
func OpenStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (ports.ProgramStore, func() error, error) {
	noop := func() error { return nil }
	switch {
	case cfg.Redis.Addr != "":
	case cfg.Store.Dir != "":
		logger.Info("using file program store", "dir", cfg.Store.Dir)
		return file.New(cfg.Store.Dir), noop, nil
	default:
		logger.Info("using in-memory program store")
		return memory.NewStore(), noop, nil
	}

	store := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
		redis.WithPrefix(cfg.Redis.Prefix),
		redis.WithTTL(cfg.Redis.TTL),
	)
	if err := store.Ping(ctx); err != nil {
		_ = store.Close()
		return nil, nil, fmt.Errorf("redis unavailable at %s: %w", cfg.Redis.Addr, err)
	}
	logger.Info("using redis program store", "addr", cfg.Redis.Addr, "prefix", cfg.Redis.Prefix)
	return store, store.Close, nil
}

// Seed saves every program file in dir through svc, so stored text is canonical.
func Seed(ctx context.Context, svc *service.Service, dir string) (int, error) {
	programs, err := LoadPrograms(dir)
	if err != nil {
		return 0, err
	}
	for name, text := range programs {
		if _, err := svc.Save(ctx, name, text); err != nil {
			return 0, fmt.Errorf("seed %s: %w", name, err)
		}
	}
	return len(programs), nil
}
