package combat

import (
	"github.com/louisbranch/manaforge/internal/services/rules/domain/content"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/game"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/modifier"
)

// enemyContext is the modifier query subject for an enemy in playerID's fight.
func enemyContext(def content.EnemyDef, playerID string, e game.CombatEnemy) modifier.Context {
	return modifier.ForEnemy(playerID, e.InstanceID, def.HasAbility(content.AbilityArcaneImmunity))
}

// EffectiveAttack is the enemy's attack after cancellation and the best
// reduction, never below zero.
func EffectiveAttack(def content.EnemyDef, mods []game.ActiveModifier, playerID string, e game.CombatEnemy) int {
	ctx := enemyContext(def, playerID, e)
	if modifier.EnemyAttackCancelled(mods, ctx) {
		return 0
	}
	return max(def.Attack-modifier.EnemyAttackReduction(mods, ctx), 0)
}

// DamageDealt is the damage an unblocked enemy inflicts. Brutal doubles it.
func DamageDealt(def content.EnemyDef, effectiveAttack int) int {
	if def.HasAbility(content.AbilityBrutal) {
		return effectiveAttack * 2
	}
	return effectiveAttack
}

// BlockRequired is the effective block needed to block the enemy. Swift
// doubles it.
func BlockRequired(def content.EnemyDef, effectiveAttack int) int {
	if def.HasAbility(content.AbilitySwift) {
		return effectiveAttack * 2
	}
	return effectiveAttack
}

// EffectiveArmor is the enemy's armor after the best reduction, never below
// one. Elusive enemies use their higher armor unless they were blocked.
func EffectiveArmor(def content.EnemyDef, mods []game.ActiveModifier, playerID string, e game.CombatEnemy) int {
	armor := def.Armor
	if def.HasAbility(content.AbilityElusive) && !e.IsBlocked && def.ElusiveArmor > 0 {
		armor = def.ElusiveArmor
	}
	reduced := armor - modifier.EnemyArmorReduction(mods, enemyContext(def, playerID, e))
	return max(reduced, 1)
}

// resisted reports whether the enemy resists attacks of el. Cold fire is
// resisted only by enemies resisting both fire and ice.
func resisted(def content.EnemyDef, el game.Element) bool {
	if el == game.ElementColdFire {
		return def.Resists(game.ElementFire) && def.Resists(game.ElementIce)
	}
	return def.Resists(el)
}

// EffectiveDamage is the damage an attack pool deals to the enemy. Points of
// resisted elements are summed and halved, rounding down.
func EffectiveDamage(def content.EnemyDef, mods []game.ActiveModifier, playerID string, e game.CombatEnemy, attack game.ElementalPool) int {
	if modifier.EnemyResistancesRemoved(mods, enemyContext(def, playerID, e)) {
		return attack.Total()
	}
	full, halved := 0, 0
	for _, el := range game.Elements {
		if resisted(def, el) {
			halved += attack.Get(el)
		} else {
			full += attack.Get(el)
		}
	}
	return full + halved/2
}

// efficient reports whether block of element blockEl stops an attack of
// attackEl at full value.
func efficient(blockEl, attackEl game.Element) bool {
	switch attackEl {
	case game.ElementFire:
		return blockEl == game.ElementIce || blockEl == game.ElementColdFire
	case game.ElementIce:
		return blockEl == game.ElementFire || blockEl == game.ElementColdFire
	case game.ElementColdFire:
		return blockEl == game.ElementColdFire
	default:
		return true
	}
}

// EffectiveBlock is the value of a block pool against an attack element.
// Inefficient points are summed and halved, rounding down.
func EffectiveBlock(block game.ElementalPool, attackEl game.Element) int {
	full, halved := 0, 0
	for _, el := range game.Elements {
		if efficient(el, attackEl) {
			full += block.Get(el)
		} else {
			halved += block.Get(el)
		}
	}
	return full + halved/2
}

// Fortified reports whether the enemy counts as fortified: by ability, or
// as the defender of a fortified site, unless a modifier ignores it.
func Fortified(def content.EnemyDef, mods []game.ActiveModifier, playerID string, e game.CombatEnemy, siteFortified bool) bool {
	if !def.HasAbility(content.AbilityFortified) && !(siteFortified && e.Origin == game.OriginSite) {
		return false
	}
	return !modifier.FortificationIgnored(mods, enemyContext(def, playerID, e))
}
