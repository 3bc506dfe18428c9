package command

import (
	"fmt"

	"github.com/louisbranch/manaforge/internal/services/rules/domain/action"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/content"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/effect"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/event"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/game"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/modifier"
)

// ManaPowers reports whether mana of color can power a card of cardColor.
// Gold stands in for any basic color by day.
func ManaPowers(tod game.TimeOfDay, cardColor, color game.Color) bool {
	if color == cardColor {
		return true
	}
	return color == game.ColorGold && tod == game.Day && cardColor.IsBasic()
}

// SidewaysEffect is the leaf a sideways play of amount resolves to.
func SidewaysEffect(resource game.Resource, amount int) (game.Effect, bool) {
	switch resource {
	case game.ResourceMove:
		return game.Effect{Kind: game.EffectGainMove, Amount: amount}, true
	case game.ResourceInfluence:
		return game.Effect{Kind: game.EffectGainInfluence, Amount: amount}, true
	case game.ResourceAttack:
		return game.Effect{Kind: game.EffectGainAttack, Amount: amount, AttackKind: game.AttackMelee, Element: game.ElementPhysical}, true
	case game.ResourceBlock:
		return game.Effect{Kind: game.EffectGainBlock, Amount: amount, Element: game.ElementPhysical}, true
	default:
		return game.Effect{}, false
	}
}

// SidewaysAmount is what playing def sideways is worth to playerID.
func SidewaysAmount(s game.State, playerID string, def content.CardDef) int {
	return modifier.SidewaysValue(s.Modifiers, playerID, def.Kind, def.SidewaysValue())
}

// DiceAllowed is how many source dice playerID may take this turn.
func DiceAllowed(s game.State, playerID string) int {
	return 1 + modifier.ExtraSourceDice(s.Modifiers, playerID)
}

func card(lookup content.Lookup, id string) (content.CardDef, error) {
	def, ok := lookup.Card(id)
	if !ok {
		return content.CardDef{}, fmt.Errorf("%w: card %s", effect.ErrContentMissing, id)
	}
	return def, nil
}

// fromHand moves one copy of cardID from hand to the play area.
func fromHand(p game.Player, cardID string) (game.Player, error) {
	hand, ok := game.RemoveFirst(p.Hand, cardID)
	if !ok {
		return p, fmt.Errorf("%w: card %s not in hand", ErrInvalidTarget, cardID)
	}
	p.Hand = hand
	p.PlayArea = game.Append(p.PlayArea, cardID)
	return p, nil
}

func playCard(env Env, s game.State, a action.PlayCard) (Result, error) {
	p, err := s.MustPlayer(env.PlayerID)
	if err != nil {
		return Result{}, err
	}
	def, err := card(env.Content, a.CardID)
	if err != nil {
		return Result{}, err
	}
	if p, err = fromHand(p, a.CardID); err != nil {
		return Result{}, err
	}
	res := Result{Events: []event.Event{{
		Type:       event.TypeCardPlayed,
		PlayerID:   p.ID,
		EntityType: event.EntityCard,
		EntityID:   a.CardID,
		Payload:    event.CardPlayedPayload{CardID: a.CardID, Powered: a.Powered},
	}}}
	body := def.Basic
	if a.Powered {
		body = def.Powered
		if p, err = payMana(p, a.Mana); err != nil {
			return Result{}, err
		}
		res.emit(event.ForPlayer(event.TypeManaPaid, p.ID, event.ManaPayload{Color: a.Mana.Color}))
	}
	out, err := effect.Resolve(env.effectEnv(game.SourceCard, a.CardID, a.TargetEnemy), s.WithPlayer(p), body)
	if err != nil {
		return Result{}, err
	}
	res.absorb(out)
	res.Reversible = !out.Revealed
	return res, nil
}

func payMana(p game.Player, m *action.ManaPayment) (game.Player, error) {
	if m == nil {
		return p, fmt.Errorf("%w: powered play without mana", ErrInvalidTarget)
	}
	if m.FromCrystal {
		n := p.Crystals.Get(m.Color)
		if n == 0 {
			return p, fmt.Errorf("%w: no %s crystal", ErrInvalidTarget, m.Color)
		}
		p.Crystals = p.Crystals.With(m.Color, n-1)
		return p, nil
	}
	tokens, ok := game.RemoveFirst(p.ManaTokens, m.Color)
	if !ok {
		return p, fmt.Errorf("%w: no %s mana token", ErrInvalidTarget, m.Color)
	}
	p.ManaTokens = tokens
	return p, nil
}

func playCardSideways(env Env, s game.State, a action.PlayCardSideways) (Result, error) {
	p, err := s.MustPlayer(env.PlayerID)
	if err != nil {
		return Result{}, err
	}
	def, err := card(env.Content, a.CardID)
	if err != nil {
		return Result{}, err
	}
	amount := SidewaysAmount(s, p.ID, def)
	leaf, ok := SidewaysEffect(a.Resource, amount)
	if !ok {
		return Result{}, fmt.Errorf("%w: resource %q", ErrInvalidTarget, a.Resource)
	}
	if p, err = fromHand(p, a.CardID); err != nil {
		return Result{}, err
	}
	res := Result{Events: []event.Event{{
		Type:       event.TypeCardPlayed,
		PlayerID:   p.ID,
		EntityType: event.EntityCard,
		EntityID:   a.CardID,
		Payload:    event.CardPlayedPayload{CardID: a.CardID, Sideways: true, Resource: a.Resource, Amount: amount},
	}}}
	out, err := effect.Resolve(env.effectEnv(game.SourceCard, a.CardID, ""), s.WithPlayer(p), leaf)
	if err != nil {
		return Result{}, err
	}
	res.absorb(out)
	res.Reversible = !out.Revealed
	return res, nil
}

func useSourceDie(env Env, s game.State, a action.UseSourceDie) (Result, error) {
	p, err := s.MustPlayer(env.PlayerID)
	if err != nil {
		return Result{}, err
	}
	die, idx, ok := s.SourceDie(a.DieID)
	if !ok || die.TakenBy != "" {
		return Result{}, fmt.Errorf("%w: die %s unavailable", ErrInvalidTarget, a.DieID)
	}
	color := die.Color
	if color == game.ColorGold {
		color = a.Color
	}
	die.TakenBy = p.ID
	s.Source = game.ReplaceAt(s.Source, idx, die)
	p.ManaTokens = game.Append(p.ManaTokens, color)
	p.Turn.DiceUsed++
	return Result{
		State: s.WithPlayer(p),
		Events: []event.Event{event.ForPlayer(event.TypeSourceDieTaken, p.ID, event.SourceDiePayload{
			DieID: die.ID,
			Color: color,
		})},
		Reversible: true,
	}, nil
}

func convertCrystal(env Env, s game.State, a action.ConvertCrystal) (Result, error) {
	p, err := s.MustPlayer(env.PlayerID)
	if err != nil {
		return Result{}, err
	}
	n := p.Crystals.Get(a.Color)
	if n == 0 {
		return Result{}, fmt.Errorf("%w: no %s crystal", ErrInvalidTarget, a.Color)
	}
	p.Crystals = p.Crystals.With(a.Color, n-1)
	p.ManaTokens = game.Append(p.ManaTokens, a.Color)
	return Result{
		State:      s.WithPlayer(p),
		Events:     []event.Event{event.ForPlayer(event.TypeManaGained, p.ID, event.ManaPayload{Color: a.Color})},
		Reversible: true,
	}, nil
}
