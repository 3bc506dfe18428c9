package validate

import (
	"errors"
	"slices"

	apperrors "github.com/louisbranch/manaforge/internal/platform/errors"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/action"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/combat"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/game"
)

func combatPhaseIs(phases ...game.CombatPhase) Rule {
	return func(s game.State, _ string, a action.Action) Verdict {
		if slices.Contains(phases, s.Combat.Phase) {
			return Valid
		}
		return reject(apperrors.CodeWrongCombatPhase, "ActionType", string(a.Type()), "Phase", string(s.Combat.Phase))
	}
}

// liveEnemy finds an enemy that can still be targeted. Hidden summoners are
// out of reach until their summoned enemy leaves.
func liveEnemy(s game.State, enemyID string) (game.CombatEnemy, Verdict) {
	e, _, ok := s.Combat.Enemy(enemyID)
	if !ok {
		return e, reject(apperrors.CodeEnemyNotFound, "EnemyID", enemyID)
	}
	if e.IsDefeated || e.IsHidden {
		return e, reject(apperrors.CodeEnemyNotTargetable, "EnemyID", enemyID)
	}
	return e, Valid
}

func declared(pool game.ElementalPool) Verdict {
	if pool.Negative() || pool.Total() == 0 {
		return reject(apperrors.CodeEmptyDeclaration)
	}
	return Valid
}

func covered(pool, declared game.ElementalPool) Verdict {
	if _, ok := pool.Sub(declared); !ok {
		return reject(apperrors.CodeInsufficientPool)
	}
	return Valid
}

func blockTarget(s game.State, _ string, a action.DeclareBlock) Verdict {
	e, verdict := liveEnemy(s, a.EnemyInstanceID)
	if !verdict.OK() {
		return verdict
	}
	if e.IsBlocked {
		return reject(apperrors.CodeEnemyNotTargetable, "EnemyID", a.EnemyInstanceID)
	}
	return Valid
}

func blockDeclared(_ game.State, _ string, a action.DeclareBlock) Verdict {
	return declared(a.Block)
}

func blockCovered(s game.State, playerID string, a action.DeclareBlock) Verdict {
	p, _ := s.Player(playerID)
	return covered(p.Pools.Block, a.Block)
}

func attackTarget(s game.State, _ string, a action.DeclareAttack) Verdict {
	_, verdict := liveEnemy(s, a.EnemyInstanceID)
	return verdict
}

func (v *Validator) attackKindAllowed(s game.State, _ string, a action.DeclareAttack) Verdict {
	switch a.Kind {
	case game.AttackMelee, game.AttackRanged, game.AttackSiege:
	default:
		return reject(apperrors.CodeAttackKindForbidden, "AttackKind", string(a.Kind))
	}
	e, _, _ := s.Combat.Enemy(a.EnemyInstanceID)
	def, ok := v.content.Enemy(e.EnemyID)
	if !ok {
		return Valid
	}
	err := combat.CheckAttackKind(def, s.Modifiers, *s.Combat, e, a.Kind)
	switch {
	case err == nil:
		return Valid
	case errors.Is(err, combat.ErrFortified):
		return reject(apperrors.CodeFortifiedEnemy, "EnemyID", a.EnemyInstanceID)
	default:
		return reject(apperrors.CodeAttackKindForbidden, "AttackKind", string(a.Kind))
	}
}

func attackDeclared(_ game.State, _ string, a action.DeclareAttack) Verdict {
	return declared(a.Attack)
}

func attackCovered(s game.State, playerID string, a action.DeclareAttack) Verdict {
	p, _ := s.Player(playerID)
	return covered(p.Pools.Attack(a.Kind), a.Attack)
}

func (v *Validator) damageAssignable(s game.State, _ string, a action.AssignDamage) Verdict {
	if _, _, ok := s.Combat.Enemy(a.EnemyInstanceID); !ok {
		return reject(apperrors.CodeEnemyNotFound, "EnemyID", a.EnemyInstanceID)
	}
	pending, err := combat.Unassigned(v.content, s)
	if err != nil {
		return Valid
	}
	if !slices.Contains(pending, a.EnemyInstanceID) {
		return reject(apperrors.CodeDamageNotAssignable, "EnemyID", a.EnemyInstanceID)
	}
	return Valid
}

func damageUnit(s game.State, playerID string, a action.AssignDamage) Verdict {
	if a.UnitInstanceID == "" {
		return Valid
	}
	p, _ := s.Player(playerID)
	if _, _, ok := p.Unit(a.UnitInstanceID); !ok {
		return reject(apperrors.CodeUnitNotFound, "UnitID", a.UnitInstanceID)
	}
	return Valid
}

// damageSettled keeps the fight in assign_damage until every unblocked enemy
// has dealt its damage. The verdict does not depend on how many remain.
func (v *Validator) damageSettled(s game.State, _ string, _ action.Action) Verdict {
	if s.Combat.Phase != game.CombatAssignDamage {
		return Valid
	}
	pending, err := combat.Unassigned(v.content, s)
	if err != nil || len(pending) == 0 {
		return Valid
	}
	return reject(apperrors.CodeUnassignedDamage)
}
