package modifier

import "github.com/louisbranch/manaforge/internal/services/rules/domain/game"

// SidewaysValue returns the value of playing a card of kind sideways. The
// best matching modifier replaces base when higher; bonuses do not add.
func SidewaysValue(mods []game.ActiveModifier, playerID string, kind game.CardKind, base int) int {
	matches := Matching(mods, ForPlayer(playerID), game.ModifierSidewaysValue, func(e game.ModifierEffect) bool {
		return e.CardKind == "" || e.CardKind == kind
	})
	if best, ok := Max(matches); ok && best > base {
		return best
	}
	return base
}

// TerrainCost returns the cost of entering terrain for playerID. A modifier
// cost is a replacement value and the lowest available cost wins, so a
// modifier can open impassable terrain. ok is false if the terrain stays
// impassable.
func TerrainCost(mods []game.ActiveModifier, playerID string, terrain game.Terrain, tod game.TimeOfDay) (int, bool) {
	base, passable := game.BaseMoveCost(terrain, tod)
	matches := Matching(mods, ForPlayer(playerID), game.ModifierTerrainCost, terrainFilter(terrain))
	best, found := Min(matches)
	switch {
	case found && passable:
		return min(base, max(best, 0)), true
	case found:
		return max(best, 0), true
	default:
		return base, passable
	}
}

// TerrainSafe reports whether entering terrain skips the hostile-encounter
// check.
func TerrainSafe(mods []game.ActiveModifier, playerID string, terrain game.Terrain) bool {
	return len(Matching(mods, ForPlayer(playerID), game.ModifierTerrainSafe, terrainFilter(terrain))) > 0
}

func terrainFilter(terrain game.Terrain) func(game.ModifierEffect) bool {
	return func(e game.ModifierEffect) bool {
		return e.Terrain == "" || e.Terrain == terrain
	}
}

// ExtraSourceDice counts additional source dice playerID may use this turn.
func ExtraSourceDice(mods []game.ActiveModifier, playerID string) int {
	return len(Matching(mods, ForPlayer(playerID), game.ModifierExtraSourceDie, nil))
}

// HandLimitBonus counts hand-limit grants for playerID.
func HandLimitBonus(mods []game.ActiveModifier, playerID string) int {
	return len(Matching(mods, ForPlayer(playerID), game.ModifierHandLimitBonus, nil))
}

// HandLimit is the player's printed hand limit plus granted bonuses.
func HandLimit(mods []game.ActiveModifier, p game.Player) int {
	return p.HandLimit + HandLimitBonus(mods, p.ID)
}

// ResourceBonus finds the best consumable bonus for resource. The caller
// applies Amount and passes the returned id to Consume.
func ResourceBonus(mods []game.ActiveModifier, playerID string, resource game.Resource) (game.ActiveModifier, bool) {
	matches := Matching(mods, ForPlayer(playerID), game.ModifierResourceBonus, func(e game.ModifierEffect) bool {
		return e.Resource == resource
	})
	var best game.ActiveModifier
	found := false
	for _, m := range matches {
		// Ties go to the modifier added first.
		if !found || m.Effect.Amount > best.Effect.Amount {
			best, found = m, true
		}
	}
	return best, found
}

// EnemyAttackReduction is the largest attack reduction on the enemy.
func EnemyAttackReduction(mods []game.ActiveModifier, ctx Context) int {
	best, _ := Max(Matching(mods, ctx, game.ModifierEnemyAttackReduce, nil))
	return max(best, 0)
}

// EnemyAttackCancelled reports whether the enemy's attack is cancelled.
func EnemyAttackCancelled(mods []game.ActiveModifier, ctx Context) bool {
	return len(Matching(mods, ctx, game.ModifierEnemyAttackCancel, nil)) > 0
}

// EnemyArmorReduction is the largest armor reduction on the enemy.
func EnemyArmorReduction(mods []game.ActiveModifier, ctx Context) int {
	best, _ := Max(Matching(mods, ctx, game.ModifierEnemyArmorReduce, nil))
	return max(best, 0)
}

// EnemyResistancesRemoved reports whether the enemy has lost its resistances.
func EnemyResistancesRemoved(mods []game.ActiveModifier, ctx Context) bool {
	return len(Matching(mods, ctx, game.ModifierEnemyRemoveResistances, nil)) > 0
}

// FortificationIgnored reports whether the enemy's fortification is ignored.
func FortificationIgnored(mods []game.ActiveModifier, ctx Context) bool {
	return len(Matching(mods, ctx, game.ModifierIgnoreFortification, nil)) > 0
}
