package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/louisbranch/manaforge/internal/services/rules/domain/replay"
	"github.com/louisbranch/manaforge/internal/services/rules/observer"
	rediscache "github.com/louisbranch/manaforge/internal/services/rules/storage/redis"
	storagesqlite "github.com/louisbranch/manaforge/internal/services/rules/storage/sqlite"
)

// Config selects the backends Open connects to. An empty RedisURL keeps
// snapshots in SQLite only.
type Config struct {
	DBPath      string
	RedisURL    string
	SnapshotTTL time.Duration
	EventBuffer int64
	Logger      *slog.Logger
}

// Runtime is an opened Service together with the resources it owns.
type Runtime struct {
	*Service

	store *storagesqlite.Store
	redis *goredis.Client
	bus   *observer.Bus
}

// Open connects storage and the event bus and builds a Service on them.
func Open(ctx context.Context, cfg Config) (*Runtime, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	path := strings.TrimSpace(cfg.DBPath)
	if path == "" {
		return nil, errors.New("database path is required")
	}
	store, err := storagesqlite.Open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("open game store: %w", err)
	}
	rt := &Runtime{store: store}

	var snapshots replay.SnapshotStore = store
	if url := strings.TrimSpace(cfg.RedisURL); url != "" {
		client, err := rediscache.NewClient(ctx, url)
		if err != nil {
			_ = rt.Close()
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		rt.redis = client
		cache, err := rediscache.New(client, store, cfg.SnapshotTTL, logger)
		if err != nil {
			_ = rt.Close()
			return nil, err
		}
		snapshots = cache
	}

	rt.bus = observer.New(cfg.EventBuffer, logger)
	svc, err := New(Deps{
		Store:     store,
		Snapshots: snapshots,
		Bus:       rt.bus,
		Logger:    logger,
	})
	if err != nil {
		_ = rt.Close()
		return nil, err
	}
	rt.Service = svc
	return rt, nil
}

// Close releases the bus, Redis and SQLite in that order.
func (r *Runtime) Close() error {
	var errs []error
	if r.bus != nil {
		errs = append(errs, r.bus.Close())
	}
	if r.redis != nil {
		errs = append(errs, r.redis.Close())
	}
	if r.store != nil {
		errs = append(errs, r.store.Close())
	}
	return errors.Join(errs...)
}
