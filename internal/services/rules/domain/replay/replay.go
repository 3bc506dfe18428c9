// Package replay rebuilds game state by re-running a journal of actions.
package replay

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/manaforge/internal/services/rules/domain/action"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/encoding"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/engine"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/game"
)

const defaultPageSize = 200

var (
	// ErrJournalRequired indicates a missing journal.
	ErrJournalRequired = errors.New("journal is required")
	// ErrSnapshotStoreRequired indicates a missing snapshot store.
	ErrSnapshotStoreRequired = errors.New("snapshot store is required")
	// ErrProcessorRequired indicates a missing processor.
	ErrProcessorRequired = errors.New("processor is required")
	// ErrGameIDRequired indicates a missing game id.
	ErrGameIDRequired = errors.New("game id is required")
	// ErrSnapshotNotFound indicates no snapshot exists yet.
	ErrSnapshotNotFound = errors.New("snapshot not found")
	// ErrRejected indicates a journaled action the engine no longer admits.
	ErrRejected = errors.New("journaled action rejected")
	// ErrDiverged indicates a replayed state whose hash differs from the
	// recorded one.
	ErrDiverged = errors.New("replayed state diverged")
)

// Entry is one accepted action in a game's journal. StateHash is the hash of
// the state the action produced; empty skips the check.
type Entry struct {
	GameID    string
	Seq       uint64
	PlayerID  string
	Action    action.Envelope
	StateHash string
	CreatedAt time.Time
}

// Journal lists entries for replay.
type Journal interface {
	ListEntries(ctx context.Context, gameID string, afterSeq uint64, limit int) ([]Entry, error)
}

// Snapshot is the state of a game after the entry at Seq.
type Snapshot struct {
	GameID    string
	Seq       uint64
	State     game.State
	UpdatedAt time.Time
}

// SnapshotStore manages replay snapshots.
type SnapshotStore interface {
	Get(ctx context.Context, gameID string) (Snapshot, error)
	Save(ctx context.Context, snapshot Snapshot) error
}

// Processor runs one action.
type Processor interface {
	ProcessAction(ctx context.Context, s game.State, playerID string, a action.Action) (engine.Result, error)
}

// Options configures replay behavior.
type Options struct {
	AfterSeq uint64
	UntilSeq uint64
	PageSize int
}

// Result captures replay outcomes.
type Result struct {
	State   game.State
	LastSeq uint64
	Applied int
}

// Replay re-runs journal entries in order starting from the newest usable
// snapshot, or from initial at AfterSeq. A snapshot is saved after each page.
func Replay(ctx context.Context, journal Journal, snapshots SnapshotStore, processor Processor, gameID string, initial game.State, options Options) (Result, error) {
	if journal == nil {
		return Result{}, ErrJournalRequired
	}
	if snapshots == nil {
		return Result{}, ErrSnapshotStoreRequired
	}
	if processor == nil {
		return Result{}, ErrProcessorRequired
	}
	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return Result{}, ErrGameIDRequired
	}

	result := Result{State: initial, LastSeq: options.AfterSeq}
	snapshot, err := snapshots.Get(ctx, gameID)
	switch {
	case errors.Is(err, ErrSnapshotNotFound):
	case err != nil:
		return Result{}, err
	case snapshot.Seq > options.AfterSeq && (options.UntilSeq == 0 || snapshot.Seq <= options.UntilSeq):
		result.State = snapshot.State
		result.LastSeq = snapshot.Seq
	}

	pageSize := options.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	for {
		entries, err := journal.ListEntries(ctx, gameID, result.LastSeq, pageSize)
		if err != nil {
			return result, err
		}
		if len(entries) == 0 {
			return result, nil
		}
		applied := result.Applied
		for _, entry := range entries {
			if options.UntilSeq > 0 && entry.Seq > options.UntilSeq {
				return result, saveIfAdvanced(ctx, snapshots, gameID, result, applied)
			}
			expectedSeq := result.LastSeq + 1
			if entry.Seq != expectedSeq {
				return result, fmt.Errorf("entry sequence gap: expected %d got %d", expectedSeq, entry.Seq)
			}
			next, err := apply(ctx, processor, result.State, entry)
			if err != nil {
				return result, err
			}
			result.State = next
			result.LastSeq = entry.Seq
			result.Applied++
		}
		if err := saveIfAdvanced(ctx, snapshots, gameID, result, applied); err != nil {
			return result, err
		}
	}
}

func apply(ctx context.Context, processor Processor, s game.State, entry Entry) (game.State, error) {
	a, err := action.Decode(entry.Action)
	if err != nil {
		return s, fmt.Errorf("entry %d: %w", entry.Seq, err)
	}
	res, err := processor.ProcessAction(ctx, s, entry.PlayerID, a)
	if err != nil {
		return s, fmt.Errorf("entry %d: %w", entry.Seq, err)
	}
	if !res.Accepted {
		return s, fmt.Errorf("%w: entry %d (%s): %s", ErrRejected, entry.Seq, entry.Action.Type, res.Verdict.Code)
	}
	if entry.StateHash != "" {
		hash, err := encoding.Hash(res.State)
		if err != nil {
			return s, fmt.Errorf("entry %d: %w", entry.Seq, err)
		}
		if hash != entry.StateHash {
			return s, fmt.Errorf("%w: entry %d: got %s want %s", ErrDiverged, entry.Seq, hash, entry.StateHash)
		}
	}
	return res.State, nil
}

func saveIfAdvanced(ctx context.Context, snapshots SnapshotStore, gameID string, result Result, appliedBefore int) error {
	if result.Applied == appliedBefore {
		return nil
	}
	return snapshots.Save(ctx, Snapshot{
		GameID:    gameID,
		Seq:       result.LastSeq,
		State:     result.State,
		UpdatedAt: time.Now().UTC(),
	})
}
