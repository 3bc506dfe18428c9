// Package content defines the static game definitions the rules engine reads
// through a pure Lookup surface.
//
// The engine never mutates definitions and never stores them in state; state
// only carries ids. Static is the map-backed implementation used by setup,
// tests and the CLI, loaded from YAML.
package content

import "github.com/louisbranch/manaforge/internal/services/rules/domain/game"

// Lookup resolves ids to definitions. Implementations must be pure.
type Lookup interface {
	Card(id string) (CardDef, bool)
	Enemy(id string) (EnemyDef, bool)
	Unit(id string) (UnitDef, bool)
	Tile(id string) (TileDef, bool)
	Skill(id string) (SkillDef, bool)
	Tactic(id string) (TacticDef, bool)
	Hero(id string) (HeroDef, bool)
}

// CardDef is a deed card.
type CardDef struct {
	ID       string        `yaml:"id"`
	Name     string        `yaml:"name"`
	Kind     game.CardKind `yaml:"kind"`
	Color    game.Color    `yaml:"color"`
	Basic    game.Effect   `yaml:"basic"`
	Powered  game.Effect   `yaml:"powered"`
	Sideways int           `yaml:"sideways"`
}

// SidewaysValue is the unmodified value of playing the card sideways.
func (c CardDef) SidewaysValue() int {
	if c.Kind == game.CardWound {
		return 0
	}
	if c.Sideways > 0 {
		return c.Sideways
	}
	return 1
}

// EnemyColor groups enemies into draw piles.
type EnemyColor string

const (
	EnemyGreen  EnemyColor = "green"
	EnemyGrey   EnemyColor = "grey"
	EnemyBrown  EnemyColor = "brown"
	EnemyViolet EnemyColor = "violet"
)

// Ability is an enemy ability flag.
type Ability string

const (
	AbilityFortified      Ability = "fortified"
	AbilitySwift          Ability = "swift"
	AbilityBrutal         Ability = "brutal"
	AbilityPoison         Ability = "poison"
	AbilityParalyze       Ability = "paralyze"
	AbilityElusive        Ability = "elusive"
	AbilitySummoner       Ability = "summoner"
	AbilityArcaneImmunity Ability = "arcane_immunity"
)

// EnemyDef is an enemy token type.
type EnemyDef struct {
	ID            string         `yaml:"id"`
	Name          string         `yaml:"name"`
	Color         EnemyColor     `yaml:"color"`
	Armor         int            `yaml:"armor"`
	ElusiveArmor  int            `yaml:"elusive_armor"`
	Attack        int            `yaml:"attack"`
	AttackElement game.Element   `yaml:"attack_element"`
	Fame          int            `yaml:"fame"`
	Abilities     []Ability      `yaml:"abilities"`
	Resistances   []game.Element `yaml:"resistances"`
}

// HasAbility reports whether the enemy has ability a.
func (e EnemyDef) HasAbility(a Ability) bool {
	for _, have := range e.Abilities {
		if have == a {
			return true
		}
	}
	return false
}

// Resists reports whether the enemy resists element el.
func (e EnemyDef) Resists(el game.Element) bool {
	for _, r := range e.Resistances {
		if r == el {
			return true
		}
	}
	return false
}

// Element returns the attack element, defaulting to physical.
func (e EnemyDef) Element() game.Element {
	if e.AttackElement == "" {
		return game.ElementPhysical
	}
	return e.AttackElement
}

// UnitAbility is one activatable unit ability.
type UnitAbility struct {
	Effect   game.Effect `yaml:"effect"`
	ManaCost game.Color  `yaml:"mana_cost"`
}

// UnitDef is a recruitable unit.
type UnitDef struct {
	ID        string        `yaml:"id"`
	Name      string        `yaml:"name"`
	Level     int           `yaml:"level"`
	Cost      int           `yaml:"cost"`
	Armor     int           `yaml:"armor"`
	Abilities []UnitAbility `yaml:"abilities"`
}

// TileHex is one hex of a map tile relative to the tile center.
type TileHex struct {
	Offset    game.Coord    `yaml:"offset"`
	Terrain   game.Terrain  `yaml:"terrain"`
	Site      game.SiteKind `yaml:"site"`
	MineColor game.Color    `yaml:"mine_color"`
	// Enemies lists pile colors drawn when the tile is revealed.
	Enemies []EnemyColor `yaml:"enemies"`
}

// TileDef is a map tile.
type TileDef struct {
	ID    string    `yaml:"id"`
	Hexes []TileHex `yaml:"hexes"`
}

// SkillUsage is how often a skill can be used.
type SkillUsage string

const (
	SkillOncePerTurn  SkillUsage = "turn"
	SkillOncePerRound SkillUsage = "round"
)

// SkillDef is a hero skill.
type SkillDef struct {
	ID     string      `yaml:"id"`
	Name   string      `yaml:"name"`
	Usage  SkillUsage  `yaml:"usage"`
	Effect game.Effect `yaml:"effect"`
}

// TacticDef is a round tactic card.
type TacticDef struct {
	ID       string                  `yaml:"id"`
	Name     string                  `yaml:"name"`
	Number   int                     `yaml:"number"`
	Time     game.TimeOfDay          `yaml:"time"`
	OnSelect game.Effect             `yaml:"on_select"`
	Decision game.TacticDecisionKind `yaml:"decision"`
}

// HeroDef is a playable hero.
type HeroDef struct {
	ID           string   `yaml:"id"`
	Name         string   `yaml:"name"`
	Armor        int      `yaml:"armor"`
	HandLimit    int      `yaml:"hand_limit"`
	StartingDeck []string `yaml:"starting_deck"`
	Skills       []string `yaml:"skills"`
}
