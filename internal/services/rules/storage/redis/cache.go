// Package redis caches the latest snapshot of each game in Redis in front of
// a durable snapshot store.
package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/louisbranch/manaforge/internal/services/rules/domain/encoding"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/replay"
)

// KeyPrefix namespaces snapshot hashes.
const KeyPrefix = "manaforge:snapshot:"

// ErrClientRequired indicates a missing Redis client.
var ErrClientRequired = errors.New("redis client is required")

// saveIfNewer writes the snapshot hash unless a newer sequence is cached.
var saveIfNewer = goredis.NewScript(`
local cur = redis.call('HGET', KEYS[1], 'seq')
if cur and tonumber(cur) > tonumber(ARGV[1]) then
  return 0
end
redis.call('HSET', KEYS[1], 'seq', ARGV[1], 'state', ARGV[2], 'updated_at', ARGV[3])
if tonumber(ARGV[4]) > 0 then
  redis.call('PEXPIRE', KEYS[1], ARGV[4])
end
return 1
`)

// Cache is a read-through, write-through snapshot store. Backing may be nil,
// in which case Redis is the only copy.
type Cache struct {
	client  goredis.UniversalClient
	backing replay.SnapshotStore
	ttl     time.Duration
	logger  *slog.Logger
}

var _ replay.SnapshotStore = (*Cache)(nil)

// NewClient connects to the Redis server at url, e.g. redis://localhost:6379/0.
func NewClient(ctx context.Context, url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(strings.TrimSpace(url))
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := goredis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}

// New builds a cache over client. A zero ttl keeps entries until evicted.
func New(client goredis.UniversalClient, backing replay.SnapshotStore, ttl time.Duration, logger *slog.Logger) (*Cache, error) {
	if client == nil {
		return nil, ErrClientRequired
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{client: client, backing: backing, ttl: ttl, logger: logger}, nil
}

func key(gameID string) string {
	return KeyPrefix + gameID
}

// Get returns the cached snapshot, falling back to the backing store and
// filling the cache on a miss.
func (c *Cache) Get(ctx context.Context, gameID string) (replay.Snapshot, error) {
	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return replay.Snapshot{}, replay.ErrGameIDRequired
	}
	fields, err := c.client.HGetAll(ctx, key(gameID)).Result()
	if err != nil {
		c.logger.Warn("redis snapshot read failed", "game_id", gameID, "error", err)
	}
	if err == nil && len(fields) > 0 {
		snapshot, err := decode(gameID, fields)
		if err == nil {
			c.logger.Debug("snapshot cache hit", "game_id", gameID, "seq", snapshot.Seq)
			return snapshot, nil
		}
		c.logger.Warn("discarding unreadable cached snapshot", "game_id", gameID, "error", err)
	}

	if c.backing == nil {
		return replay.Snapshot{}, replay.ErrSnapshotNotFound
	}
	snapshot, err := c.backing.Get(ctx, gameID)
	if err != nil {
		return replay.Snapshot{}, err
	}
	if err := c.put(ctx, snapshot); err != nil {
		c.logger.Warn("snapshot cache fill failed", "game_id", gameID, "error", err)
	}
	return snapshot, nil
}

// Save writes the snapshot to the backing store, then to Redis.
func (c *Cache) Save(ctx context.Context, snapshot replay.Snapshot) error {
	snapshot.GameID = strings.TrimSpace(snapshot.GameID)
	if snapshot.GameID == "" {
		return replay.ErrGameIDRequired
	}
	if snapshot.UpdatedAt.IsZero() {
		snapshot.UpdatedAt = time.Now().UTC()
	}
	if c.backing != nil {
		if err := c.backing.Save(ctx, snapshot); err != nil {
			return err
		}
	}
	if err := c.put(ctx, snapshot); err != nil {
		if c.backing == nil {
			return err
		}
		c.logger.Warn("snapshot cache write failed", "game_id", snapshot.GameID, "error", err)
	}
	return nil
}

// Invalidate drops the cached snapshot of a game.
func (c *Cache) Invalidate(ctx context.Context, gameID string) error {
	if err := c.client.Del(ctx, key(strings.TrimSpace(gameID))).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}

func (c *Cache) put(ctx context.Context, snapshot replay.Snapshot) error {
	data, err := encoding.EncodeState(snapshot.State)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	err = saveIfNewer.Run(ctx, c.client, []string{key(snapshot.GameID)},
		snapshot.Seq,
		data,
		snapshot.UpdatedAt.UTC().UnixMilli(),
		c.ttl.Milliseconds(),
	).Err()
	if err != nil {
		return fmt.Errorf("redis snapshot write failed: %w", err)
	}
	return nil
}

func decode(gameID string, fields map[string]string) (replay.Snapshot, error) {
	seq, err := strconv.ParseUint(fields["seq"], 10, 64)
	if err != nil {
		return replay.Snapshot{}, fmt.Errorf("parse seq: %w", err)
	}
	updatedAt, err := strconv.ParseInt(fields["updated_at"], 10, 64)
	if err != nil {
		return replay.Snapshot{}, fmt.Errorf("parse updated_at: %w", err)
	}
	state, err := encoding.DecodeState([]byte(fields["state"]))
	if err != nil {
		return replay.Snapshot{}, err
	}
	return replay.Snapshot{
		GameID:    gameID,
		Seq:       seq,
		State:     state,
		UpdatedAt: time.UnixMilli(updatedAt).UTC(),
	}, nil
}
