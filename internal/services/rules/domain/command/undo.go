package command

import (
	"errors"
	"fmt"

	"github.com/louisbranch/manaforge/internal/services/rules/domain/event"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/game"
)

var (
	// ErrNothingToUndo indicates an empty undo stack with no checkpoint.
	ErrNothingToUndo = errors.New("nothing to undo")
	// ErrCheckpointReached indicates the stack was cleared by an
	// irreversible command this turn.
	ErrCheckpointReached = errors.New("undo checkpoint reached")
	// ErrNotYourTurn indicates an undo by a player who does not own the
	// top entry.
	ErrNotYourTurn = errors.New("not your turn")
)

// Undo restores the state recorded by the most recent reversible command.
// The restored state keeps the remaining stack and the current checkpoint.
func Undo(env Env, s game.State) (Result, error) {
	if err := UndoRefusal(s, env.PlayerID); err != nil {
		return Result{}, err
	}
	entry, rest, _ := s.PopUndo()
	restored := entry.Before
	restored.History = rest.History
	return Result{
		State: restored,
		Events: []event.Event{event.ForPlayer(event.TypeActionUndone, env.PlayerID, event.ActionUndonePayload{
			ActionType: entry.ActionType,
		})},
	}, nil
}

// UndoRefusal classifies why s cannot be undone by playerID, or returns nil.
func UndoRefusal(s game.State, playerID string) error {
	if s.CurrentPlayerID() != playerID {
		return ErrNotYourTurn
	}
	n := len(s.History.Entries)
	if n == 0 {
		if s.History.Checkpoint != "" {
			return fmt.Errorf("%w: %s", ErrCheckpointReached, s.History.Checkpoint)
		}
		return ErrNothingToUndo
	}
	if s.History.Entries[n-1].PlayerID != playerID {
		return ErrNotYourTurn
	}
	return nil
}
