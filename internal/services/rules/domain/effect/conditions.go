package effect

import (
	"fmt"

	"github.com/louisbranch/manaforge/internal/services/rules/domain/game"
)

// branch returns the branch a conditional selects, or nil.
func (r *run) branch(e game.Effect) (*game.Effect, error) {
	if e.Condition == nil {
		return nil, fmt.Errorf("%w: conditional without condition", ErrUnknownKind)
	}
	ok, err := Holds(r.state, r.env.PlayerID, *e.Condition)
	if err != nil {
		return nil, err
	}
	if ok {
		return e.Then, nil
	}
	return e.Else, nil
}

// Holds evaluates a condition for playerID against s.
func Holds(s game.State, playerID string, c game.Condition) (bool, error) {
	p, err := s.MustPlayer(playerID)
	if err != nil {
		return false, err
	}
	inCombat := s.Combat != nil && s.Combat.PlayerID == playerID
	switch c.Kind {
	case game.ConditionInCombat:
		return inCombat, nil
	case game.ConditionCombatPhase:
		return inCombat && s.Combat.Phase == c.Phase, nil
	case game.ConditionIsDay:
		return s.TimeOfDay == game.Day, nil
	case game.ConditionIsNight:
		return s.TimeOfDay == game.Night, nil
	case game.ConditionOnTerrain:
		h, ok := s.Map.Hex(p.Position)
		return ok && h.Terrain == c.Terrain, nil
	case game.ConditionWoundsInHandAtLeast:
		return p.WoundsInHand() >= c.Amount, nil
	default:
		return false, fmt.Errorf("%w: condition %q", ErrUnknownKind, c.Kind)
	}
}

// scale returns the base leaf with Factor*count added to its Amount, counted
// from the state at resolution time.
func (r *run) scale(e game.Effect) (game.Effect, error) {
	if e.Scaling == nil || e.Then == nil {
		return game.Effect{Kind: game.EffectNoop}, nil
	}
	n, err := Count(r.state, r.env.PlayerID, e.Scaling.Per)
	if err != nil {
		return game.Effect{}, err
	}
	scaled := *e.Then
	scaled.Amount += e.Scaling.Factor * n
	return scaled, nil
}

// Count returns the quantity a scaling kind multiplies.
func Count(s game.State, playerID string, per game.ScalingKind) (int, error) {
	p, err := s.MustPlayer(playerID)
	if err != nil {
		return 0, err
	}
	switch per {
	case game.ScalingPerEnemy:
		if s.Combat == nil || s.Combat.PlayerID != playerID {
			return 0, nil
		}
		n := 0
		for _, e := range s.Combat.Enemies {
			if !e.IsDefeated && !e.IsHidden {
				n++
			}
		}
		return n, nil
	case game.ScalingPerWoundInHand:
		return p.WoundsInHand(), nil
	case game.ScalingPerReadyUnit:
		return p.ReadyUnits(), nil
	case game.ScalingPerCrystal:
		return p.Crystals.Total(), nil
	default:
		return 0, fmt.Errorf("%w: scaling %q", ErrUnknownKind, per)
	}
}
