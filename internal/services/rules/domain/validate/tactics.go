package validate

import (
	"strconv"

	apperrors "github.com/louisbranch/manaforge/internal/platform/errors"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/action"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/command"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/game"
)

func choicePending(s game.State, playerID string, a action.ResolveChoice) Verdict {
	p, _ := s.Player(playerID)
	if p.PendingChoice == nil {
		return reject(apperrors.CodeNoPendingChoice)
	}
	if a.Index < 0 || a.Index >= len(p.PendingChoice.Options) {
		return reject(apperrors.CodeInvalidChoiceIndex, "Index", strconv.Itoa(a.Index))
	}
	return Valid
}

func tacticAvailable(s game.State, _ string, a action.SelectTactic) Verdict {
	if !game.Contains(s.AvailableTactics, a.TacticID) {
		return reject(apperrors.CodeTacticUnavailable, "TacticID", a.TacticID)
	}
	return Valid
}

// tacticDecisionInput checks the input against the kind of decision pending:
// up to RethinkLimit cards from hand, or one untaken basic die.
func tacticDecisionInput(s game.State, playerID string, a action.ResolveTacticDecision) Verdict {
	p, _ := s.Player(playerID)
	if p.PendingTactic == nil {
		return reject(apperrors.CodeNoPendingTacticDecision)
	}
	invalid := reject(apperrors.CodeInvalidTacticDecision)
	switch p.PendingTactic.Kind {
	case game.TacticDecisionRethink:
		if a.DieID != "" || len(a.CardIDs) > command.RethinkLimit {
			return invalid
		}
		hand := p.Hand
		for _, id := range a.CardIDs {
			var ok bool
			if hand, ok = game.RemoveFirst(hand, id); !ok {
				return invalid
			}
		}
		return Valid
	case game.TacticDecisionManaSteal:
		if len(a.CardIDs) > 0 {
			return invalid
		}
		die, _, ok := s.SourceDie(a.DieID)
		if !ok || die.TakenBy != "" || !die.Color.IsBasic() {
			return invalid
		}
		return Valid
	default:
		return invalid
	}
}
