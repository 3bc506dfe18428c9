package action

import "github.com/louisbranch/manaforge/internal/services/rules/domain/game"

// Type identifies an action variant.
type Type string

const (
	TypeMove                  Type = "move"
	TypeExplore               Type = "explore"
	TypeChallenge             Type = "challenge"
	TypePlayCard              Type = "play_card"
	TypePlayCardSideways      Type = "play_card_sideways"
	TypeUseSourceDie          Type = "use_source_die"
	TypeConvertCrystal        Type = "convert_crystal"
	TypeDeclareBlock          Type = "declare_block"
	TypeDeclareAttack         Type = "declare_attack"
	TypeAssignDamage          Type = "assign_damage"
	TypeEndCombatPhase        Type = "end_combat_phase"
	TypeActivateUnit          Type = "activate_unit"
	TypeRecruitUnit           Type = "recruit_unit"
	TypeUseSkill              Type = "use_skill"
	TypeResolveChoice         Type = "resolve_choice"
	TypeResolveTacticDecision Type = "resolve_tactic_decision"
	TypeSelectTactic          Type = "select_tactic"
	TypeAnnounceEndOfRound    Type = "announce_end_of_round"
	TypeEndTurn               Type = "end_turn"
	TypeUndo                  Type = "undo"
)

// Action is one player-submitted intent. The interface is sealed.
type Action interface {
	Type() Type
	sealed()
}

// Move moves the hero to an adjacent revealed hex.
type Move struct {
	Target game.Coord `json:"target"`
}

// Explore reveals the tile whose edge hex Target is adjacent to the hero.
type Explore struct {
	Target game.Coord `json:"target"`
}

// Challenge starts a fight with rampaging enemies on an adjacent hex.
type Challenge struct {
	Target game.Coord `json:"target"`
}

// ManaPayment names where the mana powering a card comes from.
type ManaPayment struct {
	Color game.Color `json:"color"`
	// FromCrystal spends a crystal instead of a mana token.
	FromCrystal bool `json:"from_crystal,omitempty"`
}

// PlayCard plays a card from hand for its basic or powered effect.
type PlayCard struct {
	CardID      string       `json:"card_id"`
	Powered     bool         `json:"powered,omitempty"`
	Mana        *ManaPayment `json:"mana,omitempty"`
	TargetEnemy string       `json:"target_enemy,omitempty"`
}

// PlayCardSideways plays any card for a flat amount of one resource.
type PlayCardSideways struct {
	CardID   string        `json:"card_id"`
	Resource game.Resource `json:"resource"`
}

// UseSourceDie takes a die from the source as a mana token. Gold dice need a
// basic Color to stand in for.
type UseSourceDie struct {
	DieID string     `json:"die_id"`
	Color game.Color `json:"color,omitempty"`
}

// ConvertCrystal turns a crystal into a mana token of the same color.
type ConvertCrystal struct {
	Color game.Color `json:"color"`
}

// DeclareBlock commits block points against one enemy.
type DeclareBlock struct {
	EnemyInstanceID string             `json:"enemy_instance_id"`
	Block           game.ElementalPool `json:"block"`
}

// DeclareAttack commits attack points of one kind against one enemy.
type DeclareAttack struct {
	EnemyInstanceID string             `json:"enemy_instance_id"`
	Kind            game.AttackKind    `json:"kind"`
	Attack          game.ElementalPool `json:"attack"`
}

// AssignDamage assigns one unblocked enemy's damage to a unit or, when
// UnitInstanceID is empty, to the hero.
type AssignDamage struct {
	EnemyInstanceID string `json:"enemy_instance_id"`
	UnitInstanceID  string `json:"unit_instance_id,omitempty"`
}

// EndCombatPhase advances the combat state machine.
type EndCombatPhase struct{}

// ActivateUnit spends a ready unit on one of its abilities.
type ActivateUnit struct {
	UnitInstanceID string `json:"unit_instance_id"`
	AbilityIndex   int    `json:"ability_index"`
	TargetEnemy    string `json:"target_enemy,omitempty"`
}

// RecruitUnit pays influence for a unit in the offer at a village.
type RecruitUnit struct {
	UnitID string `json:"unit_id"`
}

// UseSkill uses a hero skill.
type UseSkill struct {
	SkillID     string `json:"skill_id"`
	TargetEnemy string `json:"target_enemy,omitempty"`
}

// ResolveChoice picks an option of the pending choice.
type ResolveChoice struct {
	Index int `json:"index"`
}

// ResolveTacticDecision supplies the input a tactic is waiting on: cards to
// return for rethink, or a die to keep for mana steal.
type ResolveTacticDecision struct {
	CardIDs []string `json:"card_ids,omitempty"`
	DieID   string   `json:"die_id,omitempty"`
}

// SelectTactic picks a tactic card during the tactics phase.
type SelectTactic struct {
	TacticID string `json:"tactic_id"`
}

// AnnounceEndOfRound gives every other player one final turn.
type AnnounceEndOfRound struct{}

// EndTurn ends the acting player's turn.
type EndTurn struct{}

// Undo reverts the last reversible action of the current turn.
type Undo struct{}

func (Move) Type() Type                  { return TypeMove }
func (Explore) Type() Type               { return TypeExplore }
func (Challenge) Type() Type             { return TypeChallenge }
func (PlayCard) Type() Type              { return TypePlayCard }
func (PlayCardSideways) Type() Type      { return TypePlayCardSideways }
func (UseSourceDie) Type() Type          { return TypeUseSourceDie }
func (ConvertCrystal) Type() Type        { return TypeConvertCrystal }
func (DeclareBlock) Type() Type          { return TypeDeclareBlock }
func (DeclareAttack) Type() Type         { return TypeDeclareAttack }
func (AssignDamage) Type() Type          { return TypeAssignDamage }
func (EndCombatPhase) Type() Type        { return TypeEndCombatPhase }
func (ActivateUnit) Type() Type          { return TypeActivateUnit }
func (RecruitUnit) Type() Type           { return TypeRecruitUnit }
func (UseSkill) Type() Type              { return TypeUseSkill }
func (ResolveChoice) Type() Type         { return TypeResolveChoice }
func (ResolveTacticDecision) Type() Type { return TypeResolveTacticDecision }
func (SelectTactic) Type() Type          { return TypeSelectTactic }
func (AnnounceEndOfRound) Type() Type    { return TypeAnnounceEndOfRound }
func (EndTurn) Type() Type               { return TypeEndTurn }
func (Undo) Type() Type                  { return TypeUndo }

func (Move) sealed()                  {}
func (Explore) sealed()               {}
func (Challenge) sealed()             {}
func (PlayCard) sealed()              {}
func (PlayCardSideways) sealed()      {}
func (UseSourceDie) sealed()          {}
func (ConvertCrystal) sealed()        {}
func (DeclareBlock) sealed()          {}
func (DeclareAttack) sealed()         {}
func (AssignDamage) sealed()          {}
func (EndCombatPhase) sealed()        {}
func (ActivateUnit) sealed()          {}
func (RecruitUnit) sealed()           {}
func (UseSkill) sealed()              {}
func (ResolveChoice) sealed()         {}
func (ResolveTacticDecision) sealed() {}
func (SelectTactic) sealed()          {}
func (AnnounceEndOfRound) sealed()    {}
func (EndTurn) sealed()               {}
func (Undo) sealed()                  {}
