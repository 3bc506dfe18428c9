package command

import (
	"errors"
	"reflect"
	"testing"

	"github.com/louisbranch/manaforge/internal/services/rules/domain/action"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/event"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/game"
)

func owned(p game.Player) int {
	return len(p.Hand) + len(p.Deck) + len(p.Discard) + len(p.PlayArea)
}

func TestEndTurnCleansUpAndPassesTurn(t *testing.T) {
	env := testEnv(t, "p1")
	s := withPlayer(turnState(), "p1", func(p *game.Player) {
		p.Hand = []string{"march"}
		p.PlayArea = []string{"rage", "stamina"}
		p.Deck = []string{"promise", "threaten", "swiftness", "tranquility", "crystallize"}
		p.ManaTokens = []game.Color{game.ColorRed}
		p.Turn = game.TurnState{MovePoints: 3, DiceUsed: 1}
		p.SkillsUsedThisTurn = []string{"dark_paths"}
	})
	s.Source = game.ReplaceAt(s.Source, 0, game.SourceDie{ID: "die-1", Color: game.ColorRed, TakenBy: "p1"})
	s = s.WithModifiers([]game.ActiveModifier{
		{ID: "mod-1", Source: game.Source{PlayerID: "p1"}, Duration: game.DurationTurn, Scope: game.Scope{Kind: game.ScopeSelf}, Effect: game.ModifierEffect{Kind: game.ModifierExtraSourceDie}},
		{ID: "mod-2", Source: game.Source{PlayerID: "p1"}, Duration: game.DurationRound, Scope: game.Scope{Kind: game.ScopeSelf}, Effect: game.ModifierEffect{Kind: game.ModifierExtraSourceDie}},
	})

	res := execute(t, env, s, action.EndTurn{})
	p := mustPlayer(t, res.State, "p1")
	if want := []string{"march", "promise", "threaten", "swiftness", "tranquility"}; !reflect.DeepEqual(p.Hand, want) {
		t.Fatalf("hand = %v, want %v", p.Hand, want)
	}
	if !reflect.DeepEqual(p.Deck, []string{"crystallize"}) || !reflect.DeepEqual(p.Discard, []string{"rage", "stamina"}) {
		t.Fatalf("deck = %v discard = %v", p.Deck, p.Discard)
	}
	if len(p.PlayArea) != 0 || len(p.ManaTokens) != 0 || p.Turn != (game.TurnState{}) || len(p.SkillsUsedThisTurn) != 0 {
		t.Fatalf("turn state not reset: %+v", p)
	}
	if die, _, _ := res.State.SourceDie("die-1"); die.TakenBy != "" {
		t.Fatalf("die-1 = %+v, want returned to the source", die)
	}
	if len(res.State.Modifiers) != 1 || res.State.Modifiers[0].ID != "mod-2" {
		t.Fatalf("modifiers = %+v, want only mod-2", res.State.Modifiers)
	}
	if res.State.CurrentPlayerID() != "p2" {
		t.Fatalf("current = %s, want p2", res.State.CurrentPlayerID())
	}
	want := []event.Type{
		event.TypeTurnEnded, event.TypeCardsDrawn, event.TypeSourceRerolled,
		event.TypeModifiersExpired, event.TypeTurnStarted, event.TypeCheckpointReached,
	}
	if got := eventTypes(res.Events); !reflect.DeepEqual(got, want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	if !res.TurnChanged || len(res.State.History.Entries) != 0 || res.State.History.Checkpoint != "" {
		t.Fatalf("history = %+v, want empty for the next player", res.State.History)
	}
	if _, err := Execute(testEnv(t, "p2"), res.State, action.Undo{}); !errors.Is(err, ErrNothingToUndo) {
		t.Fatalf("undo err = %v, want %v", err, ErrNothingToUndo)
	}
}

func TestEndOfRoundAfterFinalTurns(t *testing.T) {
	s := withPlayer(turnState(), "p1", func(p *game.Player) {
		p.Deck = nil
		p.Fame = 5
	})
	s = withPlayer(s, "p2", func(p *game.Player) {
		p.Fame = 3
		p.Deck = []string{"rage", "stamina"}
		p.Units = []game.Unit{{InstanceID: "unit-1", UnitID: "peasants"}}
	})
	s.Source = game.ReplaceAt(s.Source, 2, game.SourceDie{ID: "die-3", Color: game.ColorBlack, TakenBy: "p2"})
	before := map[string]int{}
	for _, p := range s.Players {
		before[p.ID] = owned(p)
	}

	announced := execute(t, testEnv(t, "p1"), s, action.AnnounceEndOfRound{})
	if announced.State.EndOfRoundAnnouncedBy != "p1" || announced.State.CurrentPlayerID() != "p2" {
		t.Fatalf("announced by %q, current %q", announced.State.EndOfRoundAnnouncedBy, announced.State.CurrentPlayerID())
	}
	if !mustPlayer(t, announced.State, "p1").FinalTurnTaken {
		t.Fatal("announcing player must have taken the final turn")
	}
	if !hasEvent(announced.Events, event.TypeRoundAnnounced) {
		t.Fatalf("events = %v", eventTypes(announced.Events))
	}

	res := execute(t, testEnv(t, "p2"), announced.State, action.EndTurn{})
	next := res.State
	if next.Round != 2 || next.TimeOfDay != game.Night || next.Phase != game.PhaseTactics {
		t.Fatalf("round = %d tod = %s phase = %s", next.Round, next.TimeOfDay, next.Phase)
	}
	if next.EndOfRoundAnnouncedBy != "" {
		t.Fatalf("announcement not cleared: %q", next.EndOfRoundAnnouncedBy)
	}
	if !reflect.DeepEqual(next.AvailableTactics, s.TacticSets[game.Night]) {
		t.Fatalf("tactics = %v", next.AvailableTactics)
	}
	if !reflect.DeepEqual(next.TacticOrder, []string{"p2", "p1"}) || next.CurrentPlayerID() != "p2" {
		t.Fatalf("tactic order = %v current = %s", next.TacticOrder, next.CurrentPlayerID())
	}
	for _, p := range next.Players {
		if owned(p) != before[p.ID] {
			t.Fatalf("%s owns %d cards, want %d", p.ID, owned(p), before[p.ID])
		}
		if len(p.Hand) != min(p.HandLimit, before[p.ID]) {
			t.Fatalf("%s hand = %d cards", p.ID, len(p.Hand))
		}
		if p.FinalTurnTaken || p.Tactic != "" {
			t.Fatalf("%s round flags not reset: %+v", p.ID, p)
		}
	}
	if !mustPlayer(t, next, "p2").Units[0].Ready {
		t.Fatal("units must be readied")
	}
	for _, d := range next.Source {
		if d.TakenBy != "" {
			t.Fatalf("die %s still taken", d.ID)
		}
	}
	for _, typ := range []event.Type{event.TypeRoundEnded, event.TypeRoundStarted} {
		if !hasEvent(res.Events, typ) {
			t.Fatalf("missing %s in %v", typ, eventTypes(res.Events))
		}
	}
}

func TestGameEndsAfterLastRound(t *testing.T) {
	s := turnState()
	s.Players = s.Players[:1]
	s.TurnOrder = []string{"p1"}
	s.Round = s.RoundLimit
	res := execute(t, testEnv(t, "p1"), s, action.AnnounceEndOfRound{})
	if res.State.Phase != game.PhaseGameOver {
		t.Fatalf("phase = %s, want %s", res.State.Phase, game.PhaseGameOver)
	}
	if res.State.Round != s.RoundLimit {
		t.Fatalf("round = %d, want %d", res.State.Round, s.RoundLimit)
	}
	if !hasEvent(res.Events, event.TypeGameEnded) {
		t.Fatalf("events = %v", eventTypes(res.Events))
	}
}

func TestSinglePlayerTurnsContinueUntilAnnounced(t *testing.T) {
	s := turnState()
	s.Players = s.Players[:1]
	s.TurnOrder = []string{"p1"}
	res := execute(t, testEnv(t, "p1"), s, action.EndTurn{})
	if res.State.Round != 1 || res.State.CurrentPlayerID() != "p1" {
		t.Fatalf("round = %d current = %s", res.State.Round, res.State.CurrentPlayerID())
	}
}
