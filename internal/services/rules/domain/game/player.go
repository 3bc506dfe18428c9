package game

// Unit is a recruited unit instance.
type Unit struct {
	InstanceID string `json:"instance_id"`
	UnitID     string `json:"unit_id"`
	Ready      bool   `json:"ready"`
	Wounded    bool   `json:"wounded,omitempty"`
}

// TurnState holds per-turn accumulators reset at end of turn.
type TurnState struct {
	MovePoints      int  `json:"move_points,omitempty"`
	InfluencePoints int  `json:"influence_points,omitempty"`
	DiceUsed        int  `json:"dice_used,omitempty"`
	ActionTaken     bool `json:"action_taken,omitempty"`
	HasMoved        bool `json:"has_moved,omitempty"`
	Explored        bool `json:"explored,omitempty"`
}

// CombatPools accumulates attack and block gained from effects during a fight.
type CombatPools struct {
	Melee  ElementalPool `json:"melee"`
	Ranged ElementalPool `json:"ranged"`
	Siege  ElementalPool `json:"siege"`
	Block  ElementalPool `json:"block"`
}

// Attack returns the pool for an attack kind.
func (p CombatPools) Attack(kind AttackKind) ElementalPool {
	switch kind {
	case AttackRanged:
		return p.Ranged
	case AttackSiege:
		return p.Siege
	default:
		return p.Melee
	}
}

// WithAttack returns pools with the attack kind's pool replaced.
func (p CombatPools) WithAttack(kind AttackKind, pool ElementalPool) CombatPools {
	switch kind {
	case AttackRanged:
		p.Ranged = pool
	case AttackSiege:
		p.Siege = pool
	default:
		p.Melee = pool
	}
	return p
}

// ChoiceSource is the provenance of a pending choice.
type ChoiceSource struct {
	Kind SourceKind `json:"kind"`
	ID   string     `json:"id"`
}

// PendingChoice suspends effect resolution until the player picks an option.
// Continuation holds sibling effects that run after the chosen branch.
type PendingChoice struct {
	Source       ChoiceSource `json:"source"`
	Options      []Effect     `json:"options"`
	Continuation []Effect     `json:"continuation,omitempty"`
	TargetEnemy  string       `json:"target_enemy,omitempty"`
}

// TacticDecisionKind names the follow-up input a tactic needs.
type TacticDecisionKind string

const (
	TacticDecisionNone      TacticDecisionKind = ""
	TacticDecisionRethink   TacticDecisionKind = "rethink"
	TacticDecisionManaSteal TacticDecisionKind = "mana_steal"
)

// PendingTacticDecision suspends the player until the tactic input arrives.
type PendingTacticDecision struct {
	TacticID string             `json:"tactic_id"`
	Kind     TacticDecisionKind `json:"kind"`
}

// Player is one seat at the table.
type Player struct {
	ID            string `json:"id"`
	HeroID        string `json:"hero_id"`
	Position      Coord  `json:"position"`
	Fame          int    `json:"fame"`
	Reputation    int    `json:"reputation"`
	Level         int    `json:"level"`
	Armor         int    `json:"armor"`
	HandLimit     int    `json:"hand_limit"`
	CommandTokens int    `json:"command_tokens"`

	Hand     []string `json:"hand,omitempty"`
	Deck     []string `json:"deck,omitempty"`
	Discard  []string `json:"discard,omitempty"`
	PlayArea []string `json:"play_area,omitempty"`

	Crystals   Crystals `json:"crystals"`
	ManaTokens []Color  `json:"mana_tokens,omitempty"`
	Units      []Unit   `json:"units,omitempty"`

	Skills              []string `json:"skills,omitempty"`
	SkillsUsedThisTurn  []string `json:"skills_used_this_turn,omitempty"`
	SkillsUsedThisRound []string `json:"skills_used_this_round,omitempty"`

	Tactic        string `json:"tactic,omitempty"`
	TacticFlipped bool   `json:"tactic_flipped,omitempty"`

	Turn             TurnState   `json:"turn"`
	Pools            CombatPools `json:"pools"`
	WoundsThisCombat int         `json:"wounds_this_combat,omitempty"`
	KnockedOut       bool        `json:"knocked_out,omitempty"`
	FinalTurnTaken   bool        `json:"final_turn_taken,omitempty"`

	PendingChoice *PendingChoice         `json:"pending_choice,omitempty"`
	PendingTactic *PendingTacticDecision `json:"pending_tactic,omitempty"`
}

// HasPendingInput reports whether the player is suspended on a decision.
func (p Player) HasPendingInput() bool {
	return p.PendingChoice != nil || p.PendingTactic != nil
}

// WoundsInHand counts wound cards in hand.
func (p Player) WoundsInHand() int {
	return Count(p.Hand, WoundCardID)
}

// Unit returns the unit with the given instance id.
func (p Player) Unit(instanceID string) (Unit, int, bool) {
	for i, u := range p.Units {
		if u.InstanceID == instanceID {
			return u, i, true
		}
	}
	return Unit{}, -1, false
}

// ReadyUnits counts ready, unwounded units.
func (p Player) ReadyUnits() int {
	n := 0
	for _, u := range p.Units {
		if u.Ready && !u.Wounded {
			n++
		}
	}
	return n
}

// ManaAvailable reports whether a token or crystal of color is available.
func (p Player) ManaAvailable(color Color) bool {
	return Contains(p.ManaTokens, color) || p.Crystals.Get(color) > 0
}
