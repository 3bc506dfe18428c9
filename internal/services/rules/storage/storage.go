// Package storage defines persistence contracts for saved games.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/louisbranch/manaforge/internal/services/rules/domain/game"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/replay"
)

var (
	// ErrNotFound indicates a requested record is missing.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists indicates a uniqueness-constrained record already exists.
	ErrAlreadyExists = errors.New("record already exists")
	// ErrSequenceConflict indicates a journal entry that does not follow the
	// last stored sequence.
	ErrSequenceConflict = errors.New("journal sequence conflict")
)

// Game is a saved game: the state it started from and how far its journal
// has grown.
type Game struct {
	ID        string
	Initial   game.State
	LastSeq   uint64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// GameStore persists saved games and their action journals.
type GameStore interface {
	CreateGame(ctx context.Context, initial game.State) error
	GetGame(ctx context.Context, gameID string) (Game, error)
	AppendEntry(ctx context.Context, entry replay.Entry) error
	replay.Journal
}

// Store is the complete save store.
type Store interface {
	GameStore
	replay.SnapshotStore
}
