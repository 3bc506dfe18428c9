package modifier

import "github.com/louisbranch/manaforge/internal/services/rules/domain/game"

// Boundary is a lifecycle boundary that expires modifiers.
type Boundary string

const (
	BoundaryTurn   Boundary = "turn"
	BoundaryCombat Boundary = "combat"
	BoundaryRound  Boundary = "round"
)

func expires(d game.Duration, b Boundary) bool {
	switch b {
	case BoundaryTurn:
		return d == game.DurationTurn
	case BoundaryCombat:
		return d == game.DurationCombat
	case BoundaryRound:
		return d == game.DurationTurn || d == game.DurationRound || d == game.DurationCombat
	default:
		return false
	}
}

// Sweep drops the modifiers whose duration ends at b and returns their ids.
// Permanent modifiers are never swept. s is returned unchanged, modifier
// slice included, when nothing expires.
func Sweep(s game.State, b Boundary) (game.State, []string) {
	var kept []game.ActiveModifier
	var expired []string
	for _, m := range s.Modifiers {
		if expires(m.Duration, b) {
			expired = append(expired, m.ID)
			continue
		}
		kept = append(kept, m)
	}
	if len(expired) == 0 {
		return s, nil
	}
	return s.WithModifiers(kept), expired
}
