// Package checkpoint provides in-process snapshot stores for replay.
package checkpoint

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/louisbranch/manaforge/internal/services/rules/domain/replay"
)

var (
	// ErrGameIDRequired indicates a missing game id.
	ErrGameIDRequired = errors.New("game id is required")
	// ErrStoreRequired indicates a nil store.
	ErrStoreRequired = errors.New("snapshot store is required")
)

// Memory stores snapshots in memory. States are immutable values, so stored
// snapshots share structure with the caller's state safely.
type Memory struct {
	mu        sync.Mutex
	snapshots map[string]replay.Snapshot
}

// NewMemory creates a new in-memory snapshot store.
func NewMemory() *Memory {
	return &Memory{snapshots: make(map[string]replay.Snapshot)}
}

// Get retrieves the latest snapshot of a game.
func (m *Memory) Get(ctx context.Context, gameID string) (replay.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return replay.Snapshot{}, err
	}
	if m == nil {
		return replay.Snapshot{}, ErrStoreRequired
	}
	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return replay.Snapshot{}, ErrGameIDRequired
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot, ok := m.snapshots[gameID]
	if !ok {
		return replay.Snapshot{}, replay.ErrSnapshotNotFound
	}
	return snapshot, nil
}

// Save replaces the snapshot of a game. Older sequences never overwrite a
// newer snapshot.
func (m *Memory) Save(ctx context.Context, snapshot replay.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m == nil {
		return ErrStoreRequired
	}
	gameID := strings.TrimSpace(snapshot.GameID)
	if gameID == "" {
		return ErrGameIDRequired
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if current, ok := m.snapshots[gameID]; ok && current.Seq > snapshot.Seq {
		return nil
	}
	snapshot.GameID = gameID
	if snapshot.UpdatedAt.IsZero() {
		snapshot.UpdatedAt = time.Now().UTC()
	}
	m.snapshots[gameID] = snapshot
	return nil
}
