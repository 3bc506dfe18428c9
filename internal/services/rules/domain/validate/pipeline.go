package validate

import (
	apperrors "github.com/louisbranch/manaforge/internal/platform/errors"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/action"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/content"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/game"
)

// Rule checks one condition of an action submitted by playerID.
type Rule func(s game.State, playerID string, a action.Action) Verdict

// forAction adapts a rule written for one action variant. Other variants
// pass.
func forAction[A action.Action](f func(s game.State, playerID string, a A) Verdict) Rule {
	return func(s game.State, playerID string, a action.Action) Verdict {
		act, ok := a.(A)
		if !ok {
			return Valid
		}
		return f(s, playerID, act)
	}
}

func chain(parts ...[]Rule) []Rule {
	var n int
	for _, p := range parts {
		n += len(p)
	}
	out := make([]Rule, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// Validator holds the rule list of every action type.
type Validator struct {
	content   content.Lookup
	pipelines map[action.Type][]Rule
}

// New builds the rule lists against a content catalog.
func New(lookup content.Lookup) *Validator {
	v := &Validator{content: lookup}
	v.pipelines = v.build()
	return v
}

// Validate runs the rule list of a's type and returns the first rejection.
func (v *Validator) Validate(s game.State, playerID string, a action.Action) Verdict {
	if a == nil {
		return reject(apperrors.CodeUnknownAction, "ActionType", "")
	}
	rules, ok := v.pipelines[a.Type()]
	if !ok {
		return reject(apperrors.CodeUnknownAction, "ActionType", string(a.Type()))
	}
	for _, rule := range rules {
		if verdict := rule(s, playerID, a); !verdict.OK() {
			return verdict
		}
	}
	return Valid
}

// Supports reports whether t has a rule list.
func (v *Validator) Supports(t action.Type) bool {
	_, ok := v.pipelines[t]
	return ok
}

func (v *Validator) build() map[action.Type][]Rule {
	admission := []Rule{gameNotOver}
	// turn is the prefix of every action taken on the acting player's turn.
	turn := chain(admission, []Rule{
		phaseIs(game.PhaseTurns),
		currentPlayer,
		noPendingTactic,
		noPendingChoice,
	})
	// roam is the prefix of actions that require being out of combat.
	roam := chain(turn, []Rule{notInCombat})
	// mainAction is the prefix of actions that start the turn's one action
	// or precede it.
	mainAction := chain(roam, []Rule{actionNotTaken})
	fight := chain(turn, []Rule{inCombat})

	return map[action.Type][]Rule{
		action.TypeMove: chain(mainAction, []Rule{
			forAction(moveAdjacent),
			forAction(moveRevealed),
			forAction(moveNotOccupied),
			forAction(movePassable),
			forAction(moveAffordable),
		}),
		action.TypeExplore: chain(mainAction, []Rule{
			forAction(exploreAdjacent),
			forAction(exploreUnrevealed),
			tileDeckNotEmpty,
			forAction(exploreNoOverlap),
			exploreAffordable,
		}),
		action.TypeChallenge: chain(mainAction, []Rule{
			forAction(challengeAdjacent),
			forAction(challengeHostiles),
		}),
		action.TypePlayCard: chain(turn, []Rule{
			forAction(func(s game.State, pid string, a action.PlayCard) Verdict { return cardInHand(s, pid, a.CardID) }),
			forAction(v.cardPlayable),
			forAction(manaProvided),
			forAction(v.manaPowersCard),
			forAction(manaHeld),
			forAction(v.cardResolvable),
		}),
		action.TypePlayCardSideways: chain(turn, []Rule{
			forAction(func(s game.State, pid string, a action.PlayCardSideways) Verdict {
				return cardInHand(s, pid, a.CardID)
			}),
			forAction(v.sidewaysPlayable),
			forAction(v.sidewaysResource),
		}),
		action.TypeUseSourceDie: chain(turn, []Rule{
			forAction(dieAvailable),
			diceLimit,
			forAction(dieColor),
		}),
		action.TypeConvertCrystal: chain(turn, []Rule{
			forAction(crystalHeld),
		}),
		action.TypeDeclareBlock: chain(fight, []Rule{
			combatPhaseIs(game.CombatBlock),
			forAction(blockTarget),
			forAction(blockDeclared),
			forAction(blockCovered),
		}),
		action.TypeDeclareAttack: chain(fight, []Rule{
			combatPhaseIs(game.CombatRangedSiege, game.CombatAttack),
			forAction(attackTarget),
			forAction(v.attackKindAllowed),
			forAction(attackDeclared),
			forAction(attackCovered),
		}),
		action.TypeAssignDamage: chain(fight, []Rule{
			combatPhaseIs(game.CombatAssignDamage),
			forAction(v.damageAssignable),
			forAction(damageUnit),
		}),
		action.TypeEndCombatPhase: chain(fight, []Rule{
			v.damageSettled,
		}),
		action.TypeActivateUnit: chain(turn, []Rule{
			forAction(unitReady),
			forAction(v.unitAbility),
			forAction(v.unitManaCost),
			forAction(v.unitResolvable),
		}),
		action.TypeRecruitUnit: chain(roam, []Rule{
			recruitSite,
			forAction(unitOffered),
			commandLimit,
			forAction(v.recruitAffordable),
		}),
		action.TypeUseSkill: chain(turn, []Rule{
			forAction(skillOwned),
			forAction(v.skillUnused),
			forAction(v.skillResolvable),
		}),
		action.TypeResolveChoice: chain(admission, []Rule{
			phaseIs(game.PhaseTactics, game.PhaseTurns),
			currentPlayer,
			forAction(choicePending),
		}),
		action.TypeResolveTacticDecision: chain(admission, []Rule{
			phaseIs(game.PhaseTactics),
			currentPlayer,
			noPendingChoice,
			forAction(tacticDecisionInput),
		}),
		action.TypeSelectTactic: chain(admission, []Rule{
			phaseIs(game.PhaseTactics),
			currentPlayer,
			noPendingTactic,
			noPendingChoice,
			forAction(tacticAvailable),
		}),
		action.TypeAnnounceEndOfRound: chain(roam, []Rule{
			roundNotAnnounced,
			deckEmpty,
		}),
		action.TypeEndTurn: roam,
		action.TypeUndo: chain(admission, []Rule{
			undoAvailable,
		}),
	}
}
