package game

// Color identifies a mana color.
type Color string

const (
	ColorRed   Color = "red"
	ColorBlue  Color = "blue"
	ColorGreen Color = "green"
	ColorWhite Color = "white"
	ColorGold  Color = "gold"
	ColorBlack Color = "black"
)

// BasicColors lists the colors that can be stored as crystals.
var BasicColors = []Color{ColorRed, ColorBlue, ColorGreen, ColorWhite}

// IsBasic reports whether the color can be stored as a crystal.
func (c Color) IsBasic() bool {
	switch c {
	case ColorRed, ColorBlue, ColorGreen, ColorWhite:
		return true
	default:
		return false
	}
}

// Valid reports whether the color is part of the vocabulary.
func (c Color) Valid() bool {
	return c.IsBasic() || c == ColorGold || c == ColorBlack
}

// Element identifies the element of an attack or block.
type Element string

const (
	ElementPhysical Element = "physical"
	ElementFire     Element = "fire"
	ElementIce      Element = "ice"
	ElementColdFire Element = "cold_fire"
)

// Elements lists every element in a stable order.
var Elements = []Element{ElementPhysical, ElementFire, ElementIce, ElementColdFire}

// AttackKind distinguishes melee from ranged and siege attacks.
type AttackKind string

const (
	AttackMelee  AttackKind = "melee"
	AttackRanged AttackKind = "ranged"
	AttackSiege  AttackKind = "siege"
)

// TimeOfDay is day or night.
type TimeOfDay string

const (
	Day   TimeOfDay = "day"
	Night TimeOfDay = "night"
)

// Phase is the coarse round phase.
type Phase string

const (
	PhaseTactics  Phase = "tactics"
	PhaseTurns    Phase = "turns"
	PhaseGameOver Phase = "game_over"
)

// CardKind classifies deed cards.
type CardKind string

const (
	CardBasicAction    CardKind = "basic_action"
	CardAdvancedAction CardKind = "advanced_action"
	CardSpell          CardKind = "spell"
	CardArtifact       CardKind = "artifact"
	CardWound          CardKind = "wound"
)

// WoundCardID is the card id used for every wound in a deck.
const WoundCardID = "wound"

// Resource names a per-turn accumulator that bonuses can target.
type Resource string

const (
	ResourceMove      Resource = "move"
	ResourceInfluence Resource = "influence"
	ResourceAttack    Resource = "attack"
	ResourceBlock     Resource = "block"
)
