package game

// Duration is the lifecycle boundary that expires a modifier.
type Duration string

const (
	DurationTurn      Duration = "turn"
	DurationCombat    Duration = "combat"
	DurationRound     Duration = "round"
	DurationPermanent Duration = "permanent"
)

// ScopeKind names who a modifier applies to.
type ScopeKind string

const (
	ScopeSelf         ScopeKind = "self"
	ScopeAllPlayers   ScopeKind = "all_players"
	ScopeOtherPlayers ScopeKind = "other_players"
	ScopeOneEnemy     ScopeKind = "one_enemy"
	ScopeAllEnemies   ScopeKind = "all_enemies"
)

// TargetsEnemies reports whether the scope is evaluated in an enemy context.
func (k ScopeKind) TargetsEnemies() bool {
	return k == ScopeOneEnemy || k == ScopeAllEnemies
}

// Scope binds a scope kind to its target.
type Scope struct {
	Kind            ScopeKind `json:"kind"`
	EnemyInstanceID string    `json:"enemy_instance_id,omitempty"`
}

// ModifierKind tags a ModifierEffect variant.
type ModifierKind string

const (
	ModifierSidewaysValue          ModifierKind = "sideways_value"
	ModifierTerrainCost            ModifierKind = "terrain_cost"
	ModifierTerrainSafe            ModifierKind = "terrain_safe"
	ModifierExtraSourceDie         ModifierKind = "extra_source_die"
	ModifierHandLimitBonus         ModifierKind = "hand_limit_bonus"
	ModifierResourceBonus          ModifierKind = "resource_bonus"
	ModifierEnemyAttackReduce      ModifierKind = "enemy_attack_reduce"
	ModifierEnemyAttackCancel      ModifierKind = "enemy_attack_cancel"
	ModifierEnemyArmorReduce       ModifierKind = "enemy_armor_reduce"
	ModifierEnemyRemoveResistances ModifierKind = "enemy_remove_resistances"
	ModifierIgnoreFortification    ModifierKind = "ignore_fortification"
)

// ModifierEffect is the rule override a modifier carries. Filters left empty
// match everything.
type ModifierEffect struct {
	Kind     ModifierKind `json:"kind" yaml:"kind"`
	Amount   int          `json:"amount,omitempty" yaml:"amount,omitempty"`
	CardKind CardKind     `json:"card_kind,omitempty" yaml:"card_kind,omitempty"`
	Terrain  Terrain      `json:"terrain,omitempty" yaml:"terrain,omitempty"`
	Resource Resource     `json:"resource,omitempty" yaml:"resource,omitempty"`
}

// SourceKind names what created a modifier or pending choice.
type SourceKind string

const (
	SourceCard   SourceKind = "card"
	SourceSkill  SourceKind = "skill"
	SourceUnit   SourceKind = "unit"
	SourceTactic SourceKind = "tactic"
	SourceSite   SourceKind = "site"
)

// Source records provenance.
type Source struct {
	Kind     SourceKind `json:"kind"`
	ID       string     `json:"id"`
	PlayerID string     `json:"player_id"`
}

// ActiveModifier is one live rule override.
type ActiveModifier struct {
	ID       string         `json:"id"`
	Source   Source         `json:"source"`
	Duration Duration       `json:"duration"`
	Scope    Scope          `json:"scope"`
	Effect   ModifierEffect `json:"effect"`
	// RemainingUses is zero for modifiers that are not consumed.
	RemainingUses int `json:"remaining_uses,omitempty"`
}
