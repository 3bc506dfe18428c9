package sqlite

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/louisbranch/manaforge/internal/services/rules/domain/action"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/encoding"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/game"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/replay"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/rng"
	"github.com/louisbranch/manaforge/internal/services/rules/storage"
)

func TestOpenRequiresPath(t *testing.T) {
	t.Parallel()

	if _, err := Open(context.Background(), ""); err == nil {
		t.Fatal("expected empty path error")
	}
}

func sampleState(id string) game.State {
	return game.State{
		ID:         id,
		Round:      1,
		RoundLimit: 6,
		TimeOfDay:  game.Day,
		Phase:      game.PhaseTactics,
		Players:    []game.Player{{ID: "p1", HeroID: "arythea", Level: 1, Hand: []string{"march", "rage"}}},
		RNG:        rng.New(11),
	}
}

func hashOf(t *testing.T, s game.State) string {
	t.Helper()
	h, err := encoding.Hash(s)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return h
}

func entry(gameID string, seq uint64, a action.Action) replay.Entry {
	env, _ := action.Encode(a)
	return replay.Entry{GameID: gameID, Seq: seq, PlayerID: "p1", Action: env, StateHash: "hash"}
}

func TestCreateGetGameRoundTrip(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	initial := sampleState("game-1")
	if err := store.CreateGame(ctx, initial); err != nil {
		t.Fatalf("create game: %v", err)
	}

	got, err := store.GetGame(ctx, "game-1")
	if err != nil {
		t.Fatalf("get game: %v", err)
	}
	if got.ID != "game-1" || got.LastSeq != 0 {
		t.Fatalf("game = %s/%d, want game-1/0", got.ID, got.LastSeq)
	}
	if hashOf(t, got.Initial) != hashOf(t, initial) {
		t.Fatal("initial state changed in storage")
	}
	if got.CreatedAt.IsZero() {
		t.Fatal("expected created at")
	}
}

func TestCreateGameReturnsAlreadyExists(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	if err := store.CreateGame(ctx, sampleState("game-1")); err != nil {
		t.Fatalf("create game: %v", err)
	}
	if err := store.CreateGame(ctx, sampleState("game-1")); !errors.Is(err, storage.ErrAlreadyExists) {
		t.Fatalf("error = %v, want %v", err, storage.ErrAlreadyExists)
	}
}

func TestGetGameReturnsNotFound(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	if _, err := store.GetGame(context.Background(), "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("error = %v, want %v", err, storage.ErrNotFound)
	}
}

func TestAppendAndListEntries(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	if err := store.CreateGame(ctx, sampleState("game-1")); err != nil {
		t.Fatalf("create game: %v", err)
	}
	actions := []action.Action{
		action.SelectTactic{TacticID: "early_bird"},
		action.PlayCard{CardID: "march"},
		action.Move{Target: game.Coord{Q: 1}},
	}
	for i, a := range actions {
		if err := store.AppendEntry(ctx, entry("game-1", uint64(i+1), a)); err != nil {
			t.Fatalf("append %d: %v", i+1, err)
		}
	}

	page, err := store.ListEntries(ctx, "game-1", 1, 1)
	if err != nil {
		t.Fatalf("list entries: %v", err)
	}
	if len(page) != 1 || page[0].Seq != 2 {
		t.Fatalf("page = %+v, want seq 2 only", page)
	}
	decoded, err := action.Decode(page[0].Action)
	if err != nil {
		t.Fatalf("decode action: %v", err)
	}
	if played, ok := decoded.(action.PlayCard); !ok || played.CardID != "march" {
		t.Fatalf("action = %#v, want PlayCard march", decoded)
	}
	if page[0].StateHash != "hash" || page[0].PlayerID != "p1" {
		t.Fatalf("entry = %+v", page[0])
	}

	all, err := store.ListEntries(ctx, "game-1", 0, 10)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("entries = %d, want 3", len(all))
	}
	got, err := store.GetGame(ctx, "game-1")
	if err != nil {
		t.Fatalf("get game: %v", err)
	}
	if got.LastSeq != 3 {
		t.Fatalf("last seq = %d, want 3", got.LastSeq)
	}
}

func TestAppendEntryRejectsOutOfOrderSequence(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	if err := store.CreateGame(ctx, sampleState("game-1")); err != nil {
		t.Fatalf("create game: %v", err)
	}
	tests := []struct {
		name string
		seq  uint64
	}{
		{name: "gap", seq: 2},
		{name: "zero", seq: 0},
	}
	for _, tt := range tests {
		err := store.AppendEntry(ctx, entry("game-1", tt.seq, action.EndTurn{}))
		if !errors.Is(err, storage.ErrSequenceConflict) {
			t.Fatalf("%s: error = %v, want %v", tt.name, err, storage.ErrSequenceConflict)
		}
	}
	if err := store.AppendEntry(ctx, entry("missing", 1, action.EndTurn{})); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("missing game: error = %v, want %v", err, storage.ErrNotFound)
	}
}

func TestSnapshotSaveKeepsNewest(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	if _, err := store.Get(ctx, "game-1"); !errors.Is(err, replay.ErrSnapshotNotFound) {
		t.Fatalf("error = %v, want %v", err, replay.ErrSnapshotNotFound)
	}
	if err := store.CreateGame(ctx, sampleState("game-1")); err != nil {
		t.Fatalf("create game: %v", err)
	}

	newer := sampleState("game-1")
	newer.Round = 2
	if err := store.Save(ctx, replay.Snapshot{GameID: "game-1", Seq: 5, State: newer}); err != nil {
		t.Fatalf("save newer: %v", err)
	}
	if err := store.Save(ctx, replay.Snapshot{GameID: "game-1", Seq: 3, State: sampleState("game-1")}); err != nil {
		t.Fatalf("save older: %v", err)
	}

	got, err := store.Get(ctx, "game-1")
	if err != nil {
		t.Fatalf("get snapshot: %v", err)
	}
	if got.Seq != 5 || got.State.Round != 2 {
		t.Fatalf("snapshot seq/round = %d/%d, want 5/2", got.Seq, got.State.Round)
	}
	if hashOf(t, got.State) != hashOf(t, newer) {
		t.Fatal("snapshot state changed in storage")
	}
}

func TestSnapshotSaveRequiresGame(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	err := store.Save(context.Background(), replay.Snapshot{GameID: "missing", Seq: 1, State: sampleState("missing")})
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("error = %v, want %v", err, storage.ErrNotFound)
	}
}

func TestEntryPayloadIsStoredVerbatim(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	if err := store.CreateGame(ctx, sampleState("game-1")); err != nil {
		t.Fatalf("create game: %v", err)
	}
	e := entry("game-1", 1, action.Move{Target: game.Coord{Q: 1, R: -1}})
	if err := store.AppendEntry(ctx, e); err != nil {
		t.Fatalf("append: %v", err)
	}
	got, err := store.ListEntries(ctx, "game-1", 0, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !json.Valid(got[0].Action.PayloadJSON) || string(got[0].Action.PayloadJSON) != string(e.Action.PayloadJSON) {
		t.Fatalf("payload = %s, want %s", got[0].Action.PayloadJSON, e.Action.PayloadJSON)
	}
}

func openTempStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "games.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	return store
}
