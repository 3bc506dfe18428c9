package checkpoint

import (
	"context"

	"github.com/louisbranch/manaforge/internal/services/rules/domain/replay"
)

// Noop ignores stored snapshots for replay.
type Noop struct{}

// NewNoop creates a snapshot store that never reuses snapshots.
func NewNoop() *Noop {
	return &Noop{}
}

// Get always reports that no snapshot exists.
func (n *Noop) Get(ctx context.Context, _ string) (replay.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return replay.Snapshot{}, err
	}
	return replay.Snapshot{}, replay.ErrSnapshotNotFound
}

// Save is a no-op.
func (n *Noop) Save(ctx context.Context, _ replay.Snapshot) error {
	return ctx.Err()
}
