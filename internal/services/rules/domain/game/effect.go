package game

// EffectKind tags an Effect variant. The set is closed: interpreters switch
// over it exhaustively.
type EffectKind string

const (
	EffectNoop             EffectKind = "noop"
	EffectGainMove         EffectKind = "gain_move"
	EffectGainInfluence    EffectKind = "gain_influence"
	EffectGainAttack       EffectKind = "gain_attack"
	EffectGainBlock        EffectKind = "gain_block"
	EffectGainHealing      EffectKind = "gain_healing"
	EffectGainMana         EffectKind = "gain_mana"
	EffectGainCrystal      EffectKind = "gain_crystal"
	EffectDrawCards        EffectKind = "draw_cards"
	EffectGainFame         EffectKind = "gain_fame"
	EffectChangeReputation EffectKind = "change_reputation"
	EffectApplyModifier    EffectKind = "apply_modifier"
	EffectTakeWound        EffectKind = "take_wound"
	EffectPayMana          EffectKind = "pay_mana"

	EffectCompound    EffectKind = "compound"
	EffectConditional EffectKind = "conditional"
	EffectScaling     EffectKind = "scaling"
	EffectChoice      EffectKind = "choice"
	EffectCostGated   EffectKind = "cost_gated"
)

// Effect is the declarative payload of a card, skill, unit ability or tactic.
//
// Leaves use Amount/Color/Element/AttackKind/Modifier. Combinators use:
// compound and choice -> Effects; conditional -> Condition, Then, Else;
// scaling -> Scaling, Then (the base leaf); cost_gated -> Cost, Then.
type Effect struct {
	Kind       EffectKind        `json:"kind" yaml:"kind"`
	Amount     int               `json:"amount,omitempty" yaml:"amount,omitempty"`
	Color      Color             `json:"color,omitempty" yaml:"color,omitempty"`
	Element    Element           `json:"element,omitempty" yaml:"element,omitempty"`
	AttackKind AttackKind        `json:"attack_kind,omitempty" yaml:"attack_kind,omitempty"`
	Modifier   *ModifierTemplate `json:"modifier,omitempty" yaml:"modifier,omitempty"`
	Effects    []Effect          `json:"effects,omitempty" yaml:"effects,omitempty"`
	Condition  *Condition        `json:"condition,omitempty" yaml:"condition,omitempty"`
	Scaling    *Scaling          `json:"scaling,omitempty" yaml:"scaling,omitempty"`
	Cost       *Effect           `json:"cost,omitempty" yaml:"cost,omitempty"`
	Then       *Effect           `json:"then,omitempty" yaml:"then,omitempty"`
	Else       *Effect           `json:"else,omitempty" yaml:"else,omitempty"`
}

// ConditionKind tags a Condition predicate.
type ConditionKind string

const (
	ConditionInCombat            ConditionKind = "in_combat"
	ConditionCombatPhase         ConditionKind = "combat_phase"
	ConditionIsDay               ConditionKind = "is_day"
	ConditionIsNight             ConditionKind = "is_night"
	ConditionOnTerrain           ConditionKind = "on_terrain"
	ConditionWoundsInHandAtLeast ConditionKind = "wounds_in_hand_at_least"
)

// Condition selects a branch of a conditional effect.
type Condition struct {
	Kind    ConditionKind `json:"kind" yaml:"kind"`
	Phase   CombatPhase   `json:"phase,omitempty" yaml:"phase,omitempty"`
	Terrain Terrain       `json:"terrain,omitempty" yaml:"terrain,omitempty"`
	Amount  int           `json:"amount,omitempty" yaml:"amount,omitempty"`
}

// ScalingKind names the quantity a scaling effect multiplies.
type ScalingKind string

const (
	ScalingPerEnemy       ScalingKind = "per_enemy"
	ScalingPerWoundInHand ScalingKind = "per_wound_in_hand"
	ScalingPerReadyUnit   ScalingKind = "per_ready_unit"
	ScalingPerCrystal     ScalingKind = "per_crystal"
)

// Scaling adds Factor*count to the base leaf's Amount at resolution time.
type Scaling struct {
	Per    ScalingKind `json:"per" yaml:"per"`
	Factor int         `json:"factor" yaml:"factor"`
}

// ModifierTemplate is the authoring form of a modifier an effect applies.
type ModifierTemplate struct {
	Duration Duration       `json:"duration" yaml:"duration"`
	Scope    ScopeKind      `json:"scope" yaml:"scope"`
	Effect   ModifierEffect `json:"effect" yaml:"effect"`
	Uses     int            `json:"uses,omitempty" yaml:"uses,omitempty"`
}
