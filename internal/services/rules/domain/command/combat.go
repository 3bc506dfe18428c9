package command

import (
	"errors"
	"fmt"

	"github.com/louisbranch/manaforge/internal/services/rules/domain/action"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/combat"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/event"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/game"
)

// ErrUnassignedDamage indicates leaving assign_damage with damage left over.
var ErrUnassignedDamage = errors.New("unassigned damage")

func (env Env) combatEnv() combat.Env {
	return combat.Env{Content: env.Content, PlayerID: env.PlayerID}
}

func declareBlock(env Env, s game.State, a action.DeclareBlock) (Result, error) {
	out, err := combat.DeclareBlock(env.combatEnv(), s, a.EnemyInstanceID, a.Block)
	if err != nil {
		return Result{}, err
	}
	res := Result{Reversible: true}
	res.absorb(out)
	return res, nil
}

// declareAttack can be undone while points only accumulate on the enemy. A
// defeat awards fame and may end the fight, so it cannot.
func declareAttack(env Env, s game.State, a action.DeclareAttack) (Result, error) {
	out, err := combat.DeclareAttack(env.combatEnv(), s, a.EnemyInstanceID, a.Kind, a.Attack)
	if err != nil {
		return Result{}, err
	}
	res := Result{}
	res.absorb(out)
	res.Reversible = !out.Revealed && out.State.Combat != nil && !hasEvent(out.Events, event.TypeEnemyDefeated)
	return res, nil
}

func assignDamage(env Env, s game.State, a action.AssignDamage) (Result, error) {
	out, err := combat.AssignDamage(env.combatEnv(), s, a.EnemyInstanceID, a.UnitInstanceID)
	if err != nil {
		return Result{}, err
	}
	res := Result{}
	res.absorb(out)
	return res, nil
}

func endCombatPhase(env Env, s game.State, _ action.EndCombatPhase) (Result, error) {
	if s.Combat != nil && s.Combat.Phase == game.CombatAssignDamage {
		left, err := combat.Unassigned(env.Content, s)
		if err != nil {
			return Result{}, err
		}
		if len(left) > 0 {
			return Result{}, fmt.Errorf("%w: %v", ErrUnassignedDamage, left)
		}
	}
	out, err := combat.EndPhase(env.combatEnv(), s)
	if err != nil {
		return Result{}, err
	}
	res := Result{}
	res.absorb(out)
	return res, nil
}

func hasEvent(events []event.Event, t event.Type) bool {
	for _, e := range events {
		if e.Type == t {
			return true
		}
	}
	return false
}
