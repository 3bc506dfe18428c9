package command

import (
	"errors"
	"fmt"

	"github.com/louisbranch/manaforge/internal/services/rules/domain/action"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/content"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/effect"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/event"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/game"
)

var (
	// ErrUnknownAction indicates an action type without a command.
	ErrUnknownAction = errors.New("unknown action type")
	// ErrActionMismatch indicates an action value that does not match its type.
	ErrActionMismatch = errors.New("action value does not match its type")
	// ErrInvalidTarget indicates a command applied to a target it cannot use.
	ErrInvalidTarget = errors.New("invalid command target")
	// ErrInputConflict indicates a command that would leave a player owing
	// two decisions at once.
	ErrInputConflict = errors.New("player already has pending input")
)

// Env carries the read-only inputs of one command.
type Env struct {
	Content  content.Lookup
	PlayerID string
}

func (env Env) effectEnv(kind game.SourceKind, id, targetEnemy string) effect.Env {
	return effect.Env{
		Content:     env.Content,
		PlayerID:    env.PlayerID,
		Source:      game.ChoiceSource{Kind: kind, ID: id},
		TargetEnemy: targetEnemy,
	}
}

// Result is the successor state and the events a command produced.
type Result struct {
	State  game.State
	Events []event.Event
	// Reversible is set when the command can be undone.
	Reversible bool
	// TurnChanged is set when control passed to another player or round; the
	// undo history starts empty for the next actor.
	TurnChanged bool
}

func (r *Result) emit(evts ...event.Event) {
	r.Events = append(r.Events, evts...)
}

// absorb takes the state and events of an effect or combat outcome.
func (r *Result) absorb(out effect.Outcome) {
	r.State = out.State
	r.Events = append(r.Events, out.Events...)
}

type handler func(env Env, s game.State, a action.Action) (Result, error)

func typed[A action.Action](f func(Env, game.State, A) (Result, error)) handler {
	return func(env Env, s game.State, a action.Action) (Result, error) {
		act, ok := a.(A)
		if !ok {
			return Result{}, fmt.Errorf("%w: %T for %s", ErrActionMismatch, a, a.Type())
		}
		return f(env, s, act)
	}
}

var handlers map[action.Type]handler

func init() {
	handlers = map[action.Type]handler{
		action.TypeMove:                  typed(move),
		action.TypeExplore:               typed(explore),
		action.TypeChallenge:             typed(challenge),
		action.TypePlayCard:              typed(playCard),
		action.TypePlayCardSideways:      typed(playCardSideways),
		action.TypeUseSourceDie:          typed(useSourceDie),
		action.TypeConvertCrystal:        typed(convertCrystal),
		action.TypeDeclareBlock:          typed(declareBlock),
		action.TypeDeclareAttack:         typed(declareAttack),
		action.TypeAssignDamage:          typed(assignDamage),
		action.TypeEndCombatPhase:        typed(endCombatPhase),
		action.TypeActivateUnit:          typed(activateUnit),
		action.TypeRecruitUnit:           typed(recruitUnit),
		action.TypeUseSkill:              typed(useSkill),
		action.TypeResolveChoice:         typed(resolveChoice),
		action.TypeResolveTacticDecision: typed(resolveTacticDecision),
		action.TypeSelectTactic:          typed(selectTactic),
		action.TypeAnnounceEndOfRound:    typed(announceEndOfRound),
		action.TypeEndTurn:               typed(endTurn),
	}
}

// Supports reports whether t has a command. Undo is handled by Execute.
func Supports(t action.Type) bool {
	if t == action.TypeUndo {
		return true
	}
	_, ok := handlers[t]
	return ok
}

// Execute applies a on behalf of env.PlayerID and maintains the undo history.
func Execute(env Env, s game.State, a action.Action) (Result, error) {
	if a == nil {
		return Result{}, fmt.Errorf("%w: nil action", ErrUnknownAction)
	}
	if a.Type() == action.TypeUndo {
		return Undo(env, s)
	}
	h, ok := handlers[a.Type()]
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrUnknownAction, a.Type())
	}
	before := s.Memento()
	res, err := h(env, s, a)
	if err != nil {
		return Result{}, err
	}
	return record(env, before, a.Type(), res), nil
}

func record(env Env, before game.State, t action.Type, res Result) Result {
	if res.Reversible {
		res.State = res.State.PushUndo(game.UndoEntry{
			PlayerID:   env.PlayerID,
			ActionType: string(t),
			Before:     before,
		})
		return res
	}
	if res.TurnChanged {
		res.State.History = game.History{}
	} else {
		res.State = res.State.Checkpoint(string(t))
	}
	res.emit(event.ForPlayer(event.TypeCheckpointReached, env.PlayerID, event.CheckpointPayload{Reason: string(t)}))
	return res
}
