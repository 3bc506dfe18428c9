package validate

import (
	"errors"
	"slices"

	apperrors "github.com/louisbranch/manaforge/internal/platform/errors"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/action"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/command"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/game"
)

func gameNotOver(s game.State, _ string, _ action.Action) Verdict {
	if s.Phase == game.PhaseGameOver {
		return reject(apperrors.CodeGameOver)
	}
	return Valid
}

func phaseIs(phases ...game.Phase) Rule {
	return func(s game.State, _ string, a action.Action) Verdict {
		if slices.Contains(phases, s.Phase) {
			return Valid
		}
		return reject(apperrors.CodeWrongPhase, "ActionType", string(a.Type()), "Phase", string(s.Phase))
	}
}

func currentPlayer(s game.State, playerID string, _ action.Action) Verdict {
	if s.CurrentPlayerID() != playerID {
		return reject(apperrors.CodeNotYourTurn)
	}
	if _, ok := s.Player(playerID); !ok {
		return reject(apperrors.CodeNotYourTurn)
	}
	return Valid
}

func noPendingChoice(s game.State, playerID string, _ action.Action) Verdict {
	if p, _ := s.Player(playerID); p.PendingChoice != nil {
		return reject(apperrors.CodePendingChoice)
	}
	return Valid
}

func noPendingTactic(s game.State, playerID string, _ action.Action) Verdict {
	if p, _ := s.Player(playerID); p.PendingTactic != nil {
		return reject(apperrors.CodePendingTacticDecision)
	}
	return Valid
}

func notInCombat(s game.State, _ string, a action.Action) Verdict {
	if s.InCombat() {
		return reject(apperrors.CodeInCombat, "ActionType", string(a.Type()))
	}
	return Valid
}

func inCombat(s game.State, playerID string, _ action.Action) Verdict {
	if !s.InCombat() || s.Combat.PlayerID != playerID {
		return reject(apperrors.CodeNotInCombat)
	}
	return Valid
}

func actionNotTaken(s game.State, playerID string, _ action.Action) Verdict {
	if p, _ := s.Player(playerID); p.Turn.ActionTaken {
		return reject(apperrors.CodeActionAlreadyTaken)
	}
	return Valid
}

func roundNotAnnounced(s game.State, _ string, _ action.Action) Verdict {
	if s.EndOfRoundAnnouncedBy != "" {
		return reject(apperrors.CodeRoundAlreadyAnnounced)
	}
	return Valid
}

func deckEmpty(s game.State, playerID string, _ action.Action) Verdict {
	if p, _ := s.Player(playerID); len(p.Deck) > 0 {
		return reject(apperrors.CodeDeckNotEmpty)
	}
	return Valid
}

// undoAvailable classifies the undo refusals: another player's entry, a
// checkpoint set this turn, or an empty stack.
func undoAvailable(s game.State, playerID string, _ action.Action) Verdict {
	err := command.UndoRefusal(s, playerID)
	switch {
	case err == nil:
		return Valid
	case errors.Is(err, command.ErrNotYourTurn):
		return reject(apperrors.CodeNotYourTurn)
	case errors.Is(err, command.ErrCheckpointReached):
		return reject(apperrors.CodeCheckpointReached, "Checkpoint", s.History.Checkpoint)
	default:
		return reject(apperrors.CodeNothingToUndo)
	}
}
