package checkpoint

import (
	"context"
	"errors"
	"testing"

	"github.com/louisbranch/manaforge/internal/services/rules/domain/replay"
)

func TestNoopNeverReturnsSnapshot(t *testing.T) {
	store := NewNoop()
	if err := store.Save(context.Background(), replay.Snapshot{GameID: "game-1", Seq: 4}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := store.Get(context.Background(), "game-1"); !errors.Is(err, replay.ErrSnapshotNotFound) {
		t.Fatalf("get error = %v, want %v", err, replay.ErrSnapshotNotFound)
	}
}
