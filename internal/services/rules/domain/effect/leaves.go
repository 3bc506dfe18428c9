package effect

import (
	"github.com/louisbranch/manaforge/internal/services/rules/domain/event"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/game"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/modifier"
)

// Reputation is clamped to this range.
const (
	MinReputation = -7
	MaxReputation = 7
)

func leafNoop(*run, game.Effect) (bool, error) {
	return true, nil
}

// withBonus adds the best consumable bonus for resource and spends one of
// its charges.
func (r *run) withBonus(resource game.Resource, amount int) int {
	bonus, ok := modifier.ResourceBonus(r.state.Modifiers, r.env.PlayerID, resource)
	if !ok {
		return amount
	}
	r.state, _ = modifier.Consume(r.state, bonus.ID)
	r.emit(event.Event{
		Type:       event.TypeModifierConsumed,
		PlayerID:   r.env.PlayerID,
		EntityType: event.EntityModifier,
		EntityID:   bonus.ID,
		Payload:    event.ModifierPayload{ModifierID: bonus.ID, Kind: bonus.Effect.Kind},
	})
	return amount + bonus.Effect.Amount
}

func (r *run) gained(resource game.Resource, amount int, element game.Element, kind game.AttackKind) {
	r.emit(event.ForPlayer(event.TypeResourceGained, r.env.PlayerID, event.ResourceGainedPayload{
		Resource:   resource,
		Amount:     amount,
		Element:    element,
		AttackKind: kind,
	}))
}

func leafGainMove(r *run, e game.Effect) (bool, error) {
	amount := r.withBonus(game.ResourceMove, e.Amount)
	p, err := r.player()
	if err != nil {
		return false, err
	}
	p.Turn.MovePoints += amount
	r.setPlayer(p)
	r.gained(game.ResourceMove, amount, "", "")
	return true, nil
}

func leafGainInfluence(r *run, e game.Effect) (bool, error) {
	amount := r.withBonus(game.ResourceInfluence, e.Amount)
	p, err := r.player()
	if err != nil {
		return false, err
	}
	p.Turn.InfluencePoints += amount
	r.setPlayer(p)
	r.gained(game.ResourceInfluence, amount, "", "")
	return true, nil
}

func elementOf(e game.Effect) game.Element {
	if e.Element == "" {
		return game.ElementPhysical
	}
	return e.Element
}

func leafGainAttack(r *run, e game.Effect) (bool, error) {
	amount := r.withBonus(game.ResourceAttack, e.Amount)
	p, err := r.player()
	if err != nil {
		return false, err
	}
	kind := e.AttackKind
	if kind == "" {
		kind = game.AttackMelee
	}
	el := elementOf(e)
	p.Pools = p.Pools.WithAttack(kind, p.Pools.Attack(kind).Plus(el, amount))
	r.setPlayer(p)
	r.gained(game.ResourceAttack, amount, el, kind)
	return true, nil
}

func leafGainBlock(r *run, e game.Effect) (bool, error) {
	amount := r.withBonus(game.ResourceBlock, e.Amount)
	p, err := r.player()
	if err != nil {
		return false, err
	}
	el := elementOf(e)
	p.Pools.Block = p.Pools.Block.Plus(el, amount)
	r.setPlayer(p)
	r.gained(game.ResourceBlock, amount, el, "")
	return true, nil
}

func leafGainHealing(r *run, e game.Effect) (bool, error) {
	p, err := r.player()
	if err != nil {
		return false, err
	}
	healed := 0
	for healed < e.Amount {
		hand, removed := game.RemoveFirst(p.Hand, game.WoundCardID)
		if !removed {
			break
		}
		p.Hand = hand
		healed++
	}
	if healed == 0 {
		return true, nil
	}
	r.setPlayer(p)
	r.emit(event.ForPlayer(event.TypeWoundHealed, p.ID, event.WoundPayload{Count: healed}))
	return true, nil
}

func leafGainMana(r *run, e game.Effect) (bool, error) {
	p, err := r.player()
	if err != nil {
		return false, err
	}
	p.ManaTokens = game.Append(p.ManaTokens, e.Color)
	r.setPlayer(p)
	r.emit(event.ForPlayer(event.TypeManaGained, p.ID, event.ManaPayload{Color: e.Color}))
	return true, nil
}

// GainCrystal adds a crystal of a basic color; past the cap it becomes a
// mana token instead.
func GainCrystal(p game.Player, color game.Color) (game.Player, bool) {
	if n := p.Crystals.Get(color); n < game.MaxCrystals {
		p.Crystals = p.Crystals.With(color, n+1)
		return p, true
	}
	p.ManaTokens = game.Append(p.ManaTokens, color)
	return p, false
}

func leafGainCrystal(r *run, e game.Effect) (bool, error) {
	p, err := r.player()
	if err != nil {
		return false, err
	}
	if !e.Color.IsBasic() {
		return false, nil
	}
	p, stored := GainCrystal(p, e.Color)
	r.setPlayer(p)
	if stored {
		r.emit(event.ForPlayer(event.TypeCrystalGained, p.ID, event.ManaPayload{Color: e.Color}))
	} else {
		r.emit(event.ForPlayer(event.TypeManaGained, p.ID, event.ManaPayload{Color: e.Color}))
	}
	return true, nil
}

// DrawCards moves up to n cards from the top of the deck to the hand.
func DrawCards(p game.Player, n int) (game.Player, int) {
	n = min(n, len(p.Deck))
	if n <= 0 {
		return p, 0
	}
	p.Hand = game.Append(p.Hand, p.Deck[:n]...)
	p.Deck = game.Append(p.Deck[n:])
	return p, n
}

func leafDrawCards(r *run, e game.Effect) (bool, error) {
	p, err := r.player()
	if err != nil {
		return false, err
	}
	p, drawn := DrawCards(p, e.Amount)
	if drawn == 0 {
		return true, nil
	}
	r.setPlayer(p)
	r.revealed = true
	r.emit(event.ForPlayer(event.TypeCardsDrawn, p.ID, event.CardsDrawnPayload{Count: drawn}))
	return true, nil
}

func leafGainFame(r *run, e game.Effect) (bool, error) {
	out, err := GainFame(r.env.Content, r.state, r.env.PlayerID, e.Amount)
	if err != nil {
		return false, err
	}
	r.state = out.State
	r.emit(out.Events...)
	r.revealed = r.revealed || out.Revealed
	return true, nil
}

func leafChangeReputation(r *run, e game.Effect) (bool, error) {
	p, err := r.player()
	if err != nil {
		return false, err
	}
	next := min(max(p.Reputation+e.Amount, MinReputation), MaxReputation)
	if next == p.Reputation {
		return true, nil
	}
	delta := next - p.Reputation
	p.Reputation = next
	r.setPlayer(p)
	r.emit(event.ForPlayer(event.TypeReputationChanged, p.ID, event.AmountPayload{Amount: delta, Total: next}))
	return true, nil
}

func leafApplyModifier(r *run, e game.Effect) (bool, error) {
	if e.Modifier == nil {
		return false, nil
	}
	target := r.env.TargetEnemy
	if e.Modifier.Scope == game.ScopeOneEnemy && target == "" {
		target = r.soleEnemy()
		if target == "" {
			return false, nil
		}
	}
	source := game.Source{Kind: r.env.Source.Kind, ID: r.env.Source.ID, PlayerID: r.env.PlayerID}
	m, next := modifier.Add(r.state, source, *e.Modifier, target)
	r.state = next
	evt := event.Event{
		Type:       event.TypeModifierApplied,
		PlayerID:   r.env.PlayerID,
		EntityType: event.EntityModifier,
		EntityID:   m.ID,
		Payload:    event.ModifierPayload{ModifierID: m.ID, Kind: m.Effect.Kind},
	}
	r.emit(evt)
	return true, nil
}

// soleEnemy returns the only targetable enemy of the player's fight.
func (r *run) soleEnemy() string {
	c := r.state.Combat
	if c == nil || c.PlayerID != r.env.PlayerID {
		return ""
	}
	found := ""
	for _, e := range c.Enemies {
		if e.IsDefeated || e.IsHidden {
			continue
		}
		if found != "" {
			return ""
		}
		found = e.InstanceID
	}
	return found
}

// TakeWounds adds n wound cards to the hand, or to the discard pile.
func TakeWounds(p game.Player, n int, toDiscard bool) game.Player {
	if n <= 0 {
		return p
	}
	cards := make([]string, n)
	for i := range cards {
		cards[i] = game.WoundCardID
	}
	if toDiscard {
		p.Discard = game.Append(p.Discard, cards...)
	} else {
		p.Hand = game.Append(p.Hand, cards...)
	}
	return p
}

func leafTakeWound(r *run, e game.Effect) (bool, error) {
	p, err := r.player()
	if err != nil {
		return false, err
	}
	n := max(e.Amount, 1)
	r.setPlayer(TakeWounds(p, n, false))
	r.emit(event.ForPlayer(event.TypeWoundReceived, p.ID, event.WoundPayload{Count: n}))
	return true, nil
}

type manaSpend struct {
	token   bool
	color   game.Color
	crystal bool
}

// manaToSpend picks how to pay one mana of color: a matching token, then a
// gold token by day for basic colors, then a crystal.
func manaToSpend(s game.State, p game.Player, color game.Color) (manaSpend, bool) {
	if game.Contains(p.ManaTokens, color) {
		return manaSpend{token: true, color: color}, true
	}
	if color.IsBasic() && s.TimeOfDay == game.Day && game.Contains(p.ManaTokens, game.ColorGold) {
		return manaSpend{token: true, color: game.ColorGold}, true
	}
	if p.Crystals.Get(color) > 0 {
		return manaSpend{crystal: true, color: color}, true
	}
	return manaSpend{}, false
}

// SpendMana removes one token or crystal of color from p.
func SpendMana(s game.State, p game.Player, color game.Color) (game.Player, bool) {
	spend, ok := manaToSpend(s, p, color)
	if !ok {
		return p, false
	}
	if spend.crystal {
		p.Crystals = p.Crystals.With(spend.color, p.Crystals.Get(spend.color)-1)
		return p, true
	}
	p.ManaTokens, _ = game.RemoveFirst(p.ManaTokens, spend.color)
	return p, true
}

func leafPayMana(r *run, e game.Effect) (bool, error) {
	p, err := r.player()
	if err != nil {
		return false, err
	}
	p, ok := SpendMana(r.state, p, e.Color)
	if !ok {
		return false, nil
	}
	r.setPlayer(p)
	r.emit(event.ForPlayer(event.TypeManaPaid, p.ID, event.ManaPayload{Color: e.Color}))
	return true, nil
}
