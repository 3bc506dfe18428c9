package game

// CombatPhase is a step of the combat state machine.
type CombatPhase string

const (
	CombatRangedSiege  CombatPhase = "ranged_siege"
	CombatBlock        CombatPhase = "block"
	CombatAssignDamage CombatPhase = "assign_damage"
	CombatAttack       CombatPhase = "attack"
)

// EnemyOrigin records where a combat enemy came from.
type EnemyOrigin string

const (
	OriginSite      EnemyOrigin = "site"
	OriginRampaging EnemyOrigin = "rampaging"
	OriginSummoned  EnemyOrigin = "summoned"
)

// CombatEnemy is one enemy instance in a fight. Effective attack and armor
// are computed on demand, never stored.
type CombatEnemy struct {
	InstanceID     string        `json:"instance_id"`
	EnemyID        string        `json:"enemy_id"`
	Origin         EnemyOrigin   `json:"origin"`
	Coord          Coord         `json:"coord"`
	SummonedBy     string        `json:"summoned_by,omitempty"`
	IsDefeated     bool          `json:"is_defeated,omitempty"`
	IsBlocked      bool          `json:"is_blocked,omitempty"`
	IsHidden       bool          `json:"is_hidden,omitempty"`
	DamageAssigned bool          `json:"damage_assigned,omitempty"`
	PendingBlock   ElementalPool `json:"pending_block"`
	PendingAttack  ElementalPool `json:"pending_attack"`
}

// CombatState is present on State iff a fight is active.
type CombatState struct {
	PlayerID string        `json:"player_id"`
	Phase    CombatPhase   `json:"phase"`
	Coord    Coord         `json:"coord"`
	Assault  bool          `json:"assault,omitempty"`
	Enemies  []CombatEnemy `json:"enemies"`
}

// Enemy returns the enemy with the given instance id.
func (c CombatState) Enemy(instanceID string) (CombatEnemy, int, bool) {
	for i, e := range c.Enemies {
		if e.InstanceID == instanceID {
			return e, i, true
		}
	}
	return CombatEnemy{}, -1, false
}

// WithEnemy returns a copy with the matching enemy replaced.
func (c CombatState) WithEnemy(e CombatEnemy) CombatState {
	for i, existing := range c.Enemies {
		if existing.InstanceID == e.InstanceID {
			c.Enemies = ReplaceAt(c.Enemies, i, e)
			return c
		}
	}
	return c
}

// AllDefeated reports whether every non-summoned enemy is defeated.
func (c CombatState) AllDefeated() bool {
	for _, e := range c.Enemies {
		if e.Origin == OriginSummoned {
			continue
		}
		if !e.IsDefeated {
			return false
		}
	}
	return true
}
