package effect

import (
	"errors"
	"fmt"

	"github.com/louisbranch/manaforge/internal/services/rules/domain/content"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/event"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/game"
)

var (
	// ErrUnknownKind indicates an effect kind outside the vocabulary.
	ErrUnknownKind = errors.New("unknown effect kind")
	// ErrNoPendingChoice indicates a resume without a pending choice.
	ErrNoPendingChoice = errors.New("no pending choice")
	// ErrChoiceIndex indicates an option index out of range.
	ErrChoiceIndex = errors.New("choice index out of range")
	// ErrContentMissing indicates a referenced definition is missing.
	ErrContentMissing = errors.New("content definition missing")
)

// Env carries the read-only inputs of one resolution.
type Env struct {
	Content  content.Lookup
	PlayerID string
	// Source is the provenance recorded on modifiers and pending choices.
	Source game.ChoiceSource
	// TargetEnemy binds one_enemy modifiers.
	TargetEnemy string
}

// Outcome is the result of a resolution.
type Outcome struct {
	State  game.State
	Events []event.Event
	// Revealed is set when hidden information such as deck order became
	// visible. Commands that reveal cannot be undone.
	Revealed bool
	// Suspended is set when a pending choice was written.
	Suspended bool
}

type run struct {
	env      Env
	state    game.State
	events   []event.Event
	revealed bool
}

// Resolve runs e for env.PlayerID against s.
func Resolve(env Env, s game.State, e game.Effect) (Outcome, error) {
	if _, err := s.MustPlayer(env.PlayerID); err != nil {
		return Outcome{}, err
	}
	r := &run{env: env, state: s}
	suspended, err := r.resolve(e, nil)
	if err != nil {
		return Outcome{}, err
	}
	return r.outcome(suspended), nil
}

// ResumeChoice resolves option index of the player's pending choice, then
// the stored continuation.
func ResumeChoice(env Env, s game.State, index int) (Outcome, error) {
	p, err := s.MustPlayer(env.PlayerID)
	if err != nil {
		return Outcome{}, err
	}
	pending := p.PendingChoice
	if pending == nil {
		return Outcome{}, ErrNoPendingChoice
	}
	if index < 0 || index >= len(pending.Options) {
		return Outcome{}, fmt.Errorf("%w: %d of %d", ErrChoiceIndex, index, len(pending.Options))
	}
	p.PendingChoice = nil
	env.Source = pending.Source
	env.TargetEnemy = pending.TargetEnemy
	r := &run{env: env, state: s.WithPlayer(p)}
	r.emit(event.ForPlayer(event.TypeChoiceResolved, env.PlayerID, event.ChoicePayload{
		SourceID: pending.Source.ID,
		Index:    index,
	}))
	chosen := pending.Options[index]
	suspended, err := r.resolve(chosen, pending.Continuation)
	if err != nil {
		return Outcome{}, err
	}
	if !suspended {
		suspended, err = r.resolveSeq(pending.Continuation, nil)
		if err != nil {
			return Outcome{}, err
		}
	}
	return r.outcome(suspended), nil
}

// Resolvable reports whether e can do something for env.PlayerID in s. A
// choice is resolvable when any option is; a cost gate when its cost can be
// paid; combat gains only in a phase that uses them.
func Resolvable(env Env, s game.State, e game.Effect) bool {
	r := &run{env: env, state: s}
	return r.resolvable(e)
}

func (r *run) outcome(suspended bool) Outcome {
	return Outcome{State: r.state, Events: r.events, Revealed: r.revealed, Suspended: suspended}
}

func (r *run) emit(evts ...event.Event) {
	r.events = append(r.events, evts...)
}

func (r *run) player() (game.Player, error) {
	return r.state.MustPlayer(r.env.PlayerID)
}

func (r *run) setPlayer(p game.Player) {
	r.state = r.state.WithPlayer(p)
}

// resolve runs e. after is what runs once e completes; it is captured only
// when e suspends, the caller runs it otherwise.
func (r *run) resolve(e game.Effect, after []game.Effect) (bool, error) {
	handler, ok := kinds[e.Kind]
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownKind, e.Kind)
	}
	if handler.leaf != nil {
		_, err := handler.leaf(r, e)
		return false, err
	}
	children := handler.children(e)
	switch e.Kind {
	case game.EffectCompound:
		return r.resolveSeq(children, after)
	case game.EffectChoice:
		return r.resolveChoice(children, after)
	case game.EffectConditional:
		branch, err := r.branch(e)
		if err != nil || branch == nil {
			return false, err
		}
		return r.resolve(*branch, after)
	case game.EffectScaling:
		scaled, err := r.scale(e)
		if err != nil {
			return false, err
		}
		return r.resolve(scaled, after)
	case game.EffectCostGated:
		return r.resolveCostGated(e, after)
	default:
		return false, fmt.Errorf("%w: %q", ErrUnknownKind, e.Kind)
	}
}

func (r *run) resolveSeq(effects, after []game.Effect) (bool, error) {
	for i, child := range effects {
		rest := game.Append(effects[i+1:], after...)
		suspended, err := r.resolve(child, rest)
		if err != nil || suspended {
			return suspended, err
		}
	}
	return false, nil
}

func (r *run) resolveChoice(options, after []game.Effect) (bool, error) {
	var open []game.Effect
	for _, option := range options {
		if r.resolvable(option) {
			open = append(open, option)
		}
	}
	switch len(open) {
	case 0:
		return false, nil
	case 1:
		return r.resolve(open[0], after)
	}
	p, err := r.player()
	if err != nil {
		return false, err
	}
	p.PendingChoice = &game.PendingChoice{
		Source:       r.env.Source,
		Options:      open,
		Continuation: game.Append(after),
		TargetEnemy:  r.env.TargetEnemy,
	}
	r.setPlayer(p)
	r.emit(event.ForPlayer(event.TypeChoiceRequired, r.env.PlayerID, event.ChoicePayload{
		SourceID: r.env.Source.ID,
		Options:  len(open),
	}))
	return true, nil
}

func (r *run) resolveCostGated(e game.Effect, after []game.Effect) (bool, error) {
	if e.Cost == nil || e.Then == nil {
		return false, nil
	}
	before := r.state
	beforeEvents := len(r.events)
	paid, err := r.payCost(*e.Cost)
	if err != nil {
		return false, err
	}
	if !paid {
		r.state = before
		r.events = r.events[:beforeEvents]
		return false, nil
	}
	return r.resolve(*e.Then, after)
}

// payCost runs a cost sub-effect. Costs are leaves or compounds of leaves;
// any leaf that cannot be paid fails the whole cost.
func (r *run) payCost(cost game.Effect) (bool, error) {
	handler, ok := kinds[cost.Kind]
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownKind, cost.Kind)
	}
	if handler.leaf != nil {
		return handler.leaf(r, cost)
	}
	if cost.Kind != game.EffectCompound {
		return false, fmt.Errorf("%w: cost of kind %q", ErrUnknownKind, cost.Kind)
	}
	for _, child := range handler.children(cost) {
		paid, err := r.payCost(child)
		if err != nil || !paid {
			return paid, err
		}
	}
	return true, nil
}

func (r *run) resolvable(e game.Effect) bool {
	handler, ok := kinds[e.Kind]
	if !ok {
		return false
	}
	if handler.leaf != nil {
		return r.leafResolvable(e)
	}
	children := handler.children(e)
	switch e.Kind {
	case game.EffectChoice:
		for _, child := range children {
			if r.resolvable(child) {
				return true
			}
		}
		return false
	case game.EffectConditional:
		branch, err := r.branch(e)
		if err != nil {
			return false
		}
		return branch == nil || r.resolvable(*branch)
	case game.EffectScaling:
		return len(children) == 1 && r.resolvable(children[0])
	case game.EffectCostGated:
		if e.Cost == nil || e.Then == nil {
			return false
		}
		return r.costPayable(*e.Cost) && r.resolvable(*e.Then)
	default:
		for _, child := range children {
			if !r.resolvable(child) {
				return false
			}
		}
		return true
	}
}

func (r *run) costPayable(cost game.Effect) bool {
	probe := &run{env: r.env, state: r.state}
	paid, err := probe.payCost(cost)
	return err == nil && paid
}

func (r *run) leafResolvable(e game.Effect) bool {
	p, err := r.player()
	if err != nil {
		return false
	}
	combat := r.state.Combat
	inOwnCombat := combat != nil && combat.PlayerID == p.ID
	switch e.Kind {
	case game.EffectGainAttack:
		if !inOwnCombat {
			return false
		}
		switch combat.Phase {
		case game.CombatAttack:
			return true
		case game.CombatRangedSiege:
			return e.AttackKind == game.AttackRanged || e.AttackKind == game.AttackSiege
		default:
			return false
		}
	case game.EffectGainBlock:
		return inOwnCombat && combat.Phase == game.CombatBlock
	case game.EffectPayMana:
		_, ok := manaToSpend(r.state, p, e.Color)
		return ok
	case game.EffectApplyModifier:
		if e.Modifier == nil {
			return false
		}
		if e.Modifier.Scope.TargetsEnemies() {
			return inOwnCombat
		}
		return true
	default:
		return true
	}
}
