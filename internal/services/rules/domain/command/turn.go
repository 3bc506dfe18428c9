package command

import (
	"github.com/louisbranch/manaforge/internal/services/rules/domain/action"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/effect"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/event"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/game"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/modifier"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/rng"
)

// DieColors are the faces of a source die.
var DieColors = []game.Color{
	game.ColorRed, game.ColorBlue, game.ColorGreen, game.ColorWhite, game.ColorGold, game.ColorBlack,
}

// HandLimit is how many cards playerID draws up to at end of turn.
func HandLimit(s game.State, p game.Player) int {
	return modifier.HandLimit(s.Modifiers, p)
}

func endTurn(env Env, s game.State, _ action.EndTurn) (Result, error) {
	res := Result{State: s}
	if err := finishTurn(env, &res); err != nil {
		return Result{}, err
	}
	return res, nil
}

func announceEndOfRound(env Env, s game.State, _ action.AnnounceEndOfRound) (Result, error) {
	s.EndOfRoundAnnouncedBy = env.PlayerID
	res := Result{
		State:  s,
		Events: []event.Event{event.ForPlayer(event.TypeRoundAnnounced, env.PlayerID, event.TurnPayload{Round: s.Round})},
	}
	if err := finishTurn(env, &res); err != nil {
		return Result{}, err
	}
	return res, nil
}

// finishTurn cleans up the acting player and hands the turn on.
func finishTurn(env Env, res *Result) error {
	s := res.State
	p, err := s.MustPlayer(env.PlayerID)
	if err != nil {
		return err
	}
	p.Discard = game.Append(p.Discard, p.PlayArea...)
	p.PlayArea = nil
	drawn := 0
	if n := HandLimit(s, p) - len(p.Hand); n > 0 {
		p, drawn = effect.DrawCards(p, n)
	}
	p.Turn = game.TurnState{}
	p.Pools = game.CombatPools{}
	p.KnockedOut = false
	p.SkillsUsedThisTurn = nil
	p.ManaTokens = nil
	if s.EndOfRoundAnnouncedBy != "" {
		p.FinalTurnTaken = true
	}
	s = s.WithPlayer(p)
	res.emit(event.ForPlayer(event.TypeTurnEnded, p.ID, event.TurnPayload{Round: s.Round}))
	if drawn > 0 {
		res.emit(event.ForPlayer(event.TypeCardsDrawn, p.ID, event.CardsDrawnPayload{Count: drawn}))
	}

	var rolled []event.Event
	s, rolled, err = reroll(s, func(d game.SourceDie) bool { return d.TakenBy == p.ID })
	if err != nil {
		return err
	}
	res.emit(rolled...)
	s, expired := modifier.Sweep(s, modifier.BoundaryTurn)
	if len(expired) > 0 {
		res.emit(event.ForPlayer(event.TypeModifiersExpired, p.ID, event.ModifiersExpiredPayload{
			Boundary: string(modifier.BoundaryTurn),
			IDs:      expired,
		}))
	}
	res.State = s
	return advance(env, res)
}

// reroll rolls every die matching pick and returns it to the source.
func reroll(s game.State, pick func(game.SourceDie) bool) (game.State, []event.Event, error) {
	var events []event.Event
	var source []game.SourceDie
	for i, d := range s.Source {
		if !pick(d) {
			continue
		}
		if source == nil {
			source = game.Append(s.Source)
		}
		idx, next, err := rng.Intn(s.RNG, len(DieColors))
		if err != nil {
			return s, nil, err
		}
		s.RNG = next
		d.Color = DieColors[idx]
		d.TakenBy = ""
		source[i] = d
		events = append(events, event.Event{
			Type:     event.TypeSourceRerolled,
			EntityID: d.ID,
			Payload:  event.SourceDiePayload{DieID: d.ID, Color: d.Color},
		})
	}
	if source != nil {
		s.Source = source
	}
	return s, events, nil
}

// advance passes the turn to the next player in turn order. Once the end of
// the round is announced, players who took their final turn are skipped and
// the round ends when none are left.
func advance(env Env, res *Result) error {
	s := res.State
	n := len(s.TurnOrder)
	for step := 1; step <= n; step++ {
		idx := (s.CurrentIndex + step) % n
		if s.EndOfRoundAnnouncedBy != "" {
			if p, ok := s.Player(s.TurnOrder[idx]); !ok || p.FinalTurnTaken {
				continue
			}
		}
		s.CurrentIndex = idx
		res.State = s
		res.TurnChanged = true
		res.emit(event.ForPlayer(event.TypeTurnStarted, s.TurnOrder[idx], event.TurnPayload{Round: s.Round}))
		return nil
	}
	return endRound(env, res)
}

func endRound(env Env, res *Result) error {
	s := res.State
	res.TurnChanged = true
	res.emit(event.Event{
		Type:       event.TypeRoundEnded,
		EntityType: event.EntityGame,
		EntityID:   s.ID,
		Payload:    event.RoundPayload{Round: s.Round, TimeOfDay: s.TimeOfDay},
	})
	if s.Round >= s.RoundLimit {
		s.Phase = game.PhaseGameOver
		res.State = s
		res.emit(event.Event{
			Type:       event.TypeGameEnded,
			EntityType: event.EntityGame,
			EntityID:   s.ID,
			Payload:    event.RoundPayload{Round: s.Round, TimeOfDay: s.TimeOfDay},
		})
		return nil
	}

	s.Round++
	if s.TimeOfDay == game.Day {
		s.TimeOfDay = game.Night
	} else {
		s.TimeOfDay = game.Day
	}
	s.EndOfRoundAnnouncedBy = ""
	s, expired := modifier.Sweep(s, modifier.BoundaryRound)
	if len(expired) > 0 {
		res.emit(event.Event{
			Type:       event.TypeModifiersExpired,
			EntityType: event.EntityGame,
			EntityID:   s.ID,
			Payload:    event.ModifiersExpiredPayload{Boundary: string(modifier.BoundaryRound), IDs: expired},
		})
	}
	for _, p := range s.Players {
		p, s = refresh(s, p)
		s = s.WithPlayer(p)
	}
	s, rolled, err := reroll(s, func(game.SourceDie) bool { return true })
	if err != nil {
		return err
	}
	res.emit(rolled...)
	s = OpenTactics(s)
	res.State = s
	res.emit(event.Event{
		Type:       event.TypeRoundStarted,
		EntityType: event.EntityGame,
		EntityID:   s.ID,
		Payload:    event.RoundPayload{Round: s.Round, TimeOfDay: s.TimeOfDay},
	})
	return nil
}

// refresh reshuffles every card p owns into the deck, draws a new hand and
// readies units. The returned state only advances the RNG.
func refresh(s game.State, p game.Player) (game.Player, game.State) {
	cards := make([]string, 0, len(p.Hand)+len(p.Deck)+len(p.Discard)+len(p.PlayArea))
	cards = append(cards, p.Hand...)
	cards = append(cards, p.Deck...)
	cards = append(cards, p.Discard...)
	cards = append(cards, p.PlayArea...)
	p.Deck, s.RNG = rng.Shuffle(s.RNG, cards)
	p.Hand, p.Discard, p.PlayArea = nil, nil, nil
	p, _ = effect.DrawCards(p, HandLimit(s, p))
	if len(p.Units) > 0 {
		units := make([]game.Unit, len(p.Units))
		for i, u := range p.Units {
			u.Ready = true
			units[i] = u
		}
		p.Units = units
	}
	p.Turn = game.TurnState{}
	p.Pools = game.CombatPools{}
	p.ManaTokens = nil
	p.SkillsUsedThisTurn = nil
	p.SkillsUsedThisRound = nil
	p.Tactic = ""
	p.TacticFlipped = false
	p.FinalTurnTaken = false
	p.KnockedOut = false
	p.PendingTactic = nil
	return p, s
}
