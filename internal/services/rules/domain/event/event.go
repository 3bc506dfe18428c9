package event

import (
	"github.com/louisbranch/manaforge/internal/services/rules/domain/game"
)

// Type identifies the type of a rules event.
type Type string

// Admission events.
const (
	// TypeActionRejected records an action the validator pipeline refused.
	TypeActionRejected Type = "action.rejected"
	// TypeActionUndone records a successful undo.
	TypeActionUndone Type = "action.undone"
	// TypeCheckpointReached records that the undo stack was cleared.
	TypeCheckpointReached Type = "action.checkpoint_reached"
)

// Player resource events.
const (
	TypeHeroMoved          Type = "hero.moved"
	TypeTileExplored       Type = "map.tile_explored"
	TypeCardPlayed         Type = "card.played"
	TypeCardsDrawn         Type = "card.drawn"
	TypeResourceGained     Type = "resource.gained"
	TypeManaGained         Type = "mana.gained"
	TypeManaPaid           Type = "mana.paid"
	TypeCrystalGained      Type = "crystal.gained"
	TypeSourceDieTaken     Type = "source.die_taken"
	TypeSourceRerolled     Type = "source.rerolled"
	TypeFameGained         Type = "hero.fame_gained"
	TypeReputationChanged  Type = "hero.reputation_changed"
	TypeLevelGained        Type = "hero.level_gained"
	TypeWoundReceived      Type = "hero.wound_received"
	TypeWoundHealed        Type = "hero.wound_healed"
	TypeModifierApplied    Type = "modifier.applied"
	TypeModifierConsumed   Type = "modifier.consumed"
	TypeModifiersExpired   Type = "modifier.expired"
	TypeChoiceRequired     Type = "choice.required"
	TypeChoiceResolved     Type = "choice.resolved"
	TypeUnitRecruited      Type = "unit.recruited"
	TypeUnitActivated      Type = "unit.activated"
	TypeUnitWounded        Type = "unit.wounded"
	TypeUnitDestroyed      Type = "unit.destroyed"
	TypeSkillUsed          Type = "skill.used"
	TypeTacticSelected     Type = "tactic.selected"
	TypeTacticDecisionMade Type = "tactic.decision_made"
)

// Combat events.
const (
	TypeCombatStarted      Type = "combat.started"
	TypeCombatPhaseChanged Type = "combat.phase_changed"
	TypeEnemySummoned      Type = "combat.enemy_summoned"
	TypeEnemyBlocked       Type = "combat.enemy_blocked"
	TypeEnemyDefeated      Type = "combat.enemy_defeated"
	TypeDamageAssigned     Type = "combat.damage_assigned"
	TypeKnockedOut         Type = "combat.knocked_out"
	TypeCombatEnded        Type = "combat.ended"
	TypeSiteConquered      Type = "site.conquered"
)

// Turn and round events.
const (
	TypeTurnEnded        Type = "turn.ended"
	TypeTurnStarted      Type = "turn.started"
	TypeRoundAnnounced   Type = "round.end_announced"
	TypeRoundEnded       Type = "round.ended"
	TypeRoundStarted     Type = "round.started"
	TypeTacticsCompleted Type = "round.tactics_completed"
	TypeGameEnded        Type = "game.ended"
)

// Entity types used on events.
const (
	EntityPlayer   = "player"
	EntityEnemy    = "enemy"
	EntityCard     = "card"
	EntityUnit     = "unit"
	EntityHex      = "hex"
	EntityModifier = "modifier"
	EntityGame     = "game"
)

// Event is one observable fact produced by an accepted or rejected action.
type Event struct {
	Type       Type   `json:"type"`
	PlayerID   string `json:"player_id,omitempty"`
	EntityType string `json:"entity_type,omitempty"`
	EntityID   string `json:"entity_id,omitempty"`
	// Payload is one of the payload structs in this package, or nil.
	Payload any `json:"payload,omitempty"`
}

// ForPlayer builds an event about the player entity itself.
func ForPlayer(t Type, playerID string, payload any) Event {
	return Event{Type: t, PlayerID: playerID, EntityType: EntityPlayer, EntityID: playerID, Payload: payload}
}

// ActionRejectedPayload carries the stable rejection code.
type ActionRejectedPayload struct {
	ActionType string `json:"action_type"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}

// ActionUndonePayload names the reverted action.
type ActionUndonePayload struct {
	ActionType string `json:"action_type"`
}

// CheckpointPayload names the irreversible action.
type CheckpointPayload struct {
	Reason string `json:"reason"`
}

// HeroMovedPayload records a step.
type HeroMovedPayload struct {
	From game.Coord `json:"from"`
	To   game.Coord `json:"to"`
	Cost int        `json:"cost"`
}

// TileExploredPayload records a revealed tile.
type TileExploredPayload struct {
	TileID string     `json:"tile_id"`
	Center game.Coord `json:"center"`
}

// CardPlayedPayload records a played card.
type CardPlayedPayload struct {
	CardID   string        `json:"card_id"`
	Powered  bool          `json:"powered,omitempty"`
	Sideways bool          `json:"sideways,omitempty"`
	Resource game.Resource `json:"resource,omitempty"`
	Amount   int           `json:"amount,omitempty"`
}

// CardsDrawnPayload records a draw.
type CardsDrawnPayload struct {
	Count int `json:"count"`
}

// ResourceGainedPayload records move, influence, attack or block gained.
type ResourceGainedPayload struct {
	Resource   game.Resource   `json:"resource"`
	Amount     int             `json:"amount"`
	Element    game.Element    `json:"element,omitempty"`
	AttackKind game.AttackKind `json:"attack_kind,omitempty"`
}

// ManaPayload records a token or crystal color.
type ManaPayload struct {
	Color game.Color `json:"color"`
}

// SourceDiePayload records a die taken from the source.
type SourceDiePayload struct {
	DieID string     `json:"die_id"`
	Color game.Color `json:"color"`
}

// AmountPayload records a signed quantity change.
type AmountPayload struct {
	Amount int `json:"amount"`
	Total  int `json:"total"`
}

// LevelGainedPayload records a level-up and its reward.
type LevelGainedPayload struct {
	Level   int    `json:"level"`
	SkillID string `json:"skill_id,omitempty"`
	CardID  string `json:"card_id,omitempty"`
}

// WoundPayload records wounds taken into hand or discard.
type WoundPayload struct {
	Count     int  `json:"count"`
	ToDiscard bool `json:"to_discard,omitempty"`
}

// ModifierPayload records one modifier.
type ModifierPayload struct {
	ModifierID string            `json:"modifier_id"`
	Kind       game.ModifierKind `json:"kind"`
}

// ModifiersExpiredPayload records a sweep.
type ModifiersExpiredPayload struct {
	Boundary string   `json:"boundary"`
	IDs      []string `json:"ids"`
}

// ChoicePayload records a pending choice opened or resolved.
type ChoicePayload struct {
	SourceID string `json:"source_id"`
	Options  int    `json:"options,omitempty"`
	Index    int    `json:"index,omitempty"`
}

// UnitPayload records a unit interaction.
type UnitPayload struct {
	UnitID string `json:"unit_id"`
}

// SkillPayload records a used skill.
type SkillPayload struct {
	SkillID string `json:"skill_id"`
}

// TacticPayload records a tactic selection or decision.
type TacticPayload struct {
	TacticID string `json:"tactic_id"`
}

// CombatStartedPayload records the start of a fight.
type CombatStartedPayload struct {
	Coord   game.Coord `json:"coord"`
	Assault bool       `json:"assault,omitempty"`
	Enemies []string   `json:"enemies"`
}

// CombatPhasePayload records a phase transition.
type CombatPhasePayload struct {
	From game.CombatPhase `json:"from"`
	To   game.CombatPhase `json:"to"`
}

// EnemyPayload records an enemy-level fact.
type EnemyPayload struct {
	EnemyID string `json:"enemy_id"`
	Fame    int    `json:"fame,omitempty"`
}

// DamageAssignedPayload records where an enemy's damage went.
type DamageAssignedPayload struct {
	Damage         int    `json:"damage"`
	Wounds         int    `json:"wounds"`
	UnitInstanceID string `json:"unit_instance_id,omitempty"`
}

// KnockedOutPayload records a knockout.
type KnockedOutPayload struct {
	WoundsThisCombat int `json:"wounds_this_combat"`
	HandLimit        int `json:"hand_limit"`
}

// CombatEndedPayload records the outcome of a fight.
type CombatEndedPayload struct {
	Victory  bool `json:"victory"`
	Defeated int  `json:"defeated"`
}

// SiteConqueredPayload records a conquest.
type SiteConqueredPayload struct {
	Site game.SiteKind `json:"site"`
}

// TurnPayload records turn boundaries.
type TurnPayload struct {
	Round int `json:"round"`
}

// RoundPayload records round boundaries.
type RoundPayload struct {
	Round     int            `json:"round"`
	TimeOfDay game.TimeOfDay `json:"time_of_day"`
}

// OrderPayload records a computed player order.
type OrderPayload struct {
	Order []string `json:"order"`
}
