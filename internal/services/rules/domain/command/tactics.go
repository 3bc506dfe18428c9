package command

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/louisbranch/manaforge/internal/services/rules/domain/action"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/content"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/effect"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/event"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/game"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/rng"
)

// RethinkLimit is the most cards a rethink decision may return.
const RethinkLimit = 3

// TacticOrder is the order players pick tactics in: lowest fame first, ties
// broken by seat.
func TacticOrder(s game.State) []string {
	seats := slices.Clone(s.Players)
	slices.SortStableFunc(seats, func(a, b game.Player) int {
		return cmp.Compare(a.Fame, b.Fame)
	})
	order := make([]string, len(seats))
	for i, p := range seats {
		order[i] = p.ID
	}
	return order
}

// OpenTactics starts the tactics phase of the current round.
func OpenTactics(s game.State) game.State {
	s.AvailableTactics = game.Append(s.TacticSets[s.TimeOfDay])
	s.TacticOrder = TacticOrder(s)
	s.Phase = game.PhaseTactics
	s.CurrentIndex = 0
	return s
}

func tactic(lookup content.Lookup, id string) (content.TacticDef, error) {
	def, ok := lookup.Tactic(id)
	if !ok {
		return content.TacticDef{}, fmt.Errorf("%w: tactic %s", effect.ErrContentMissing, id)
	}
	return def, nil
}

func selectTactic(env Env, s game.State, a action.SelectTactic) (Result, error) {
	p, err := s.MustPlayer(env.PlayerID)
	if err != nil {
		return Result{}, err
	}
	def, err := tactic(env.Content, a.TacticID)
	if err != nil {
		return Result{}, err
	}
	available, ok := game.RemoveFirst(s.AvailableTactics, def.ID)
	if !ok {
		return Result{}, fmt.Errorf("%w: tactic %s unavailable", ErrInvalidTarget, def.ID)
	}
	s.AvailableTactics = available
	p.Tactic = def.ID
	if def.Decision != game.TacticDecisionNone {
		p.PendingTactic = &game.PendingTacticDecision{TacticID: def.ID, Kind: def.Decision}
	}
	res := Result{
		State:  s.WithPlayer(p),
		Events: []event.Event{event.ForPlayer(event.TypeTacticSelected, p.ID, event.TacticPayload{TacticID: def.ID})},
	}
	if def.OnSelect.Kind != "" {
		out, err := effect.Resolve(env.effectEnv(game.SourceTactic, def.ID, ""), res.State, def.OnSelect)
		if err != nil {
			return Result{}, err
		}
		res.absorb(out)
		// A tactic decision and an effect choice cannot both be pending.
		if after, _ := res.State.Player(p.ID); after.PendingTactic != nil && after.PendingChoice != nil {
			return Result{}, fmt.Errorf("%w: tactic %s", ErrInputConflict, def.ID)
		}
	}
	return res, settleTactic(env, &res)
}

func resolveTacticDecision(env Env, s game.State, a action.ResolveTacticDecision) (Result, error) {
	p, err := s.MustPlayer(env.PlayerID)
	if err != nil {
		return Result{}, err
	}
	pending := p.PendingTactic
	if pending == nil {
		return Result{}, fmt.Errorf("%w: no pending tactic decision", ErrInvalidTarget)
	}
	p.PendingTactic = nil
	res := Result{}
	switch pending.Kind {
	case game.TacticDecisionRethink:
		p, s, err = rethink(p, s, a.CardIDs)
		if err != nil {
			return Result{}, err
		}
		res.emit(event.ForPlayer(event.TypeCardsDrawn, p.ID, event.CardsDrawnPayload{Count: len(a.CardIDs)}))
	case game.TacticDecisionManaSteal:
		die, idx, ok := s.SourceDie(a.DieID)
		if !ok || die.TakenBy != "" || !die.Color.IsBasic() {
			return Result{}, fmt.Errorf("%w: die %s cannot be stolen", ErrInvalidTarget, a.DieID)
		}
		die.TakenBy = p.ID
		s.Source = game.ReplaceAt(s.Source, idx, die)
		p.ManaTokens = game.Append(p.ManaTokens, die.Color)
		res.emit(event.ForPlayer(event.TypeSourceDieTaken, p.ID, event.SourceDiePayload{DieID: die.ID, Color: die.Color}))
	default:
		return Result{}, fmt.Errorf("%w: tactic decision %q", ErrInvalidTarget, pending.Kind)
	}
	res.State = s.WithPlayer(p)
	res.Events = append([]event.Event{event.ForPlayer(event.TypeTacticDecisionMade, p.ID, event.TacticPayload{
		TacticID: pending.TacticID,
	})}, res.Events...)
	if res.State.Phase == game.PhaseTactics {
		return res, settleTactic(env, &res)
	}
	return res, nil
}

// rethink returns cards from hand to the discard pile, shuffles the discard
// pile into the deck and draws as many cards as were returned.
func rethink(p game.Player, s game.State, cardIDs []string) (game.Player, game.State, error) {
	if len(cardIDs) > RethinkLimit {
		return p, s, fmt.Errorf("%w: rethink takes at most %d cards", ErrInvalidTarget, RethinkLimit)
	}
	for _, id := range cardIDs {
		hand, ok := game.RemoveFirst(p.Hand, id)
		if !ok {
			return p, s, fmt.Errorf("%w: card %s not in hand", ErrInvalidTarget, id)
		}
		p.Hand = hand
		p.Discard = game.Append(p.Discard, id)
	}
	pool := game.Append(p.Deck, p.Discard...)
	p.Deck, s.RNG = rng.Shuffle(s.RNG, pool)
	p.Discard = nil
	p, _ = effect.DrawCards(p, len(cardIDs))
	return p, s, nil
}

// settleTactic passes the pick to the next player once the acting player has
// no input left to give. After the last pick, turn order follows tactic
// numbers and the first turn starts.
func settleTactic(env Env, res *Result) error {
	p, err := res.State.MustPlayer(env.PlayerID)
	if err != nil {
		return err
	}
	if p.HasPendingInput() {
		return nil
	}
	s := res.State
	res.TurnChanged = true
	if s.CurrentIndex+1 < len(s.TacticOrder) {
		s.CurrentIndex++
		res.State = s
		return nil
	}
	order, err := TurnOrder(env.Content, s)
	if err != nil {
		return err
	}
	s.TurnOrder = order
	s.Phase = game.PhaseTurns
	s.CurrentIndex = 0
	res.State = s
	res.emit(
		event.Event{
			Type:       event.TypeTacticsCompleted,
			EntityType: event.EntityGame,
			EntityID:   s.ID,
			Payload:    event.OrderPayload{Order: order},
		},
		event.ForPlayer(event.TypeTurnStarted, order[0], event.TurnPayload{Round: s.Round}),
	)
	return nil
}

// TurnOrder sorts players by the number of their selected tactic.
func TurnOrder(lookup content.Lookup, s game.State) ([]string, error) {
	type pick struct {
		id     string
		number int
	}
	picks := make([]pick, 0, len(s.Players))
	for _, p := range s.Players {
		def, err := tactic(lookup, p.Tactic)
		if err != nil {
			return nil, err
		}
		picks = append(picks, pick{id: p.ID, number: def.Number})
	}
	slices.SortStableFunc(picks, func(a, b pick) int {
		return cmp.Compare(a.number, b.number)
	})
	order := make([]string, len(picks))
	for i, pk := range picks {
		order[i] = pk.id
	}
	return order, nil
}
