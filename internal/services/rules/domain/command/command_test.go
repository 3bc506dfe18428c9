package command

import (
	"errors"
	"reflect"
	"testing"

	"github.com/louisbranch/manaforge/internal/services/rules/domain/action"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/content"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/event"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/game"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/rng"
)

func baseContent(t *testing.T) *content.Static {
	t.Helper()
	cat, err := content.Base()
	if err != nil {
		t.Fatalf("content.Base: %v", err)
	}
	return cat
}

func testEnv(t *testing.T, playerID string) Env {
	return Env{Content: baseContent(t), PlayerID: playerID}
}

var (
	origin = game.Coord{}
	east   = game.Coord{Q: 1, R: 0}
	north  = game.Coord{Q: 1, R: -1}
)

func hexes(hs ...game.Hex) game.Map {
	m := game.Map{Hexes: map[string]game.Hex{}}
	for _, h := range hs {
		m.Hexes[h.Coord.Key()] = h
	}
	return m
}

func turnState() game.State {
	return game.State{
		ID:         "game-1",
		Round:      1,
		RoundLimit: 3,
		TimeOfDay:  game.Day,
		Phase:      game.PhaseTurns,
		Players: []game.Player{
			{
				ID:            "p1",
				HeroID:        "arythea",
				Level:         1,
				Armor:         2,
				HandLimit:     5,
				CommandTokens: 1,
				Hand:          []string{"march", "rage", "improvisation"},
				Deck:          []string{"stamina", "promise", "swiftness", "threaten"},
			},
			{
				ID:            "p2",
				HeroID:        "tovak",
				Level:         1,
				Armor:         2,
				HandLimit:     5,
				CommandTokens: 1,
				Position:      game.Coord{Q: -1, R: 1},
				Hand:          []string{"march"},
			},
		},
		TurnOrder: []string{"p1", "p2"},
		TacticSets: map[game.TimeOfDay][]string{
			game.Day:   {"early_bird", "rethink", "mana_steal"},
			game.Night: {"from_the_dusk", "long_night", "mana_search"},
		},
		Map: hexes(
			game.Hex{Coord: origin, Terrain: game.TerrainPlains},
			game.Hex{Coord: east, Terrain: game.TerrainPlains},
			game.Hex{Coord: game.Coord{Q: -1, R: 1}, Terrain: game.TerrainPlains},
		),
		Source: []game.SourceDie{
			{ID: "die-1", Color: game.ColorRed},
			{ID: "die-2", Color: game.ColorGold},
			{ID: "die-3", Color: game.ColorBlack},
		},
		RNG: rng.New(11),
	}
}

func withPlayer(s game.State, id string, f func(*game.Player)) game.State {
	p, _ := s.Player(id)
	f(&p)
	return s.WithPlayer(p)
}

func mustPlayer(t *testing.T, s game.State, id string) game.Player {
	t.Helper()
	p, err := s.MustPlayer(id)
	if err != nil {
		t.Fatalf("player: %v", err)
	}
	return p
}

func execute(t *testing.T, env Env, s game.State, a action.Action) Result {
	t.Helper()
	res, err := Execute(env, s, a)
	if err != nil {
		t.Fatalf("Execute(%s): %v", a.Type(), err)
	}
	return res
}

func eventTypes(events []event.Event) []event.Type {
	out := make([]event.Type, len(events))
	for i, e := range events {
		out[i] = e.Type
	}
	return out
}

func TestEveryActionHasACommand(t *testing.T) {
	types := []action.Type{
		action.TypeMove, action.TypeExplore, action.TypeChallenge, action.TypePlayCard,
		action.TypePlayCardSideways, action.TypeUseSourceDie, action.TypeConvertCrystal,
		action.TypeDeclareBlock, action.TypeDeclareAttack, action.TypeAssignDamage,
		action.TypeEndCombatPhase, action.TypeActivateUnit, action.TypeRecruitUnit,
		action.TypeUseSkill, action.TypeResolveChoice, action.TypeResolveTacticDecision,
		action.TypeSelectTactic, action.TypeAnnounceEndOfRound, action.TypeEndTurn, action.TypeUndo,
	}
	for _, typ := range types {
		if !Supports(typ) {
			t.Fatalf("no command for %s", typ)
		}
	}
	if Supports("teleport") {
		t.Fatal("unexpected command for teleport")
	}
}

func TestUndoRestoresExactPreState(t *testing.T) {
	env := testEnv(t, "p1")
	s0 := withPlayer(turnState(), "p1", func(p *game.Player) {
		p.Crystals.Red = 1
	})
	actions := []action.Action{
		action.PlayCard{CardID: "march"},
		action.PlayCardSideways{CardID: "rage", Resource: game.ResourceMove},
		action.UseSourceDie{DieID: "die-1"},
		action.UseSourceDie{DieID: "die-2", Color: game.ColorWhite},
		action.ConvertCrystal{Color: game.ColorRed},
		action.Move{Target: east},
	}
	for _, a := range actions {
		res := execute(t, env, s0, a)
		if !res.Reversible {
			t.Fatalf("%s: expected reversible", a.Type())
		}
		undone := execute(t, env, res.State, action.Undo{})
		if !reflect.DeepEqual(undone.State, s0) {
			t.Fatalf("%s: undo did not restore the pre-state", a.Type())
		}
		if got := eventTypes(undone.Events); !reflect.DeepEqual(got, []event.Type{event.TypeActionUndone}) {
			t.Fatalf("%s: undo events = %v", a.Type(), got)
		}
	}
}

func TestUndoUnwindsStackInOrder(t *testing.T) {
	env := testEnv(t, "p1")
	s0 := turnState()
	s1 := execute(t, env, s0, action.PlayCard{CardID: "march"}).State
	s2 := execute(t, env, s1, action.Move{Target: east}).State
	if n := len(s2.History.Entries); n != 2 {
		t.Fatalf("stack depth = %d, want 2", n)
	}
	back1 := execute(t, env, s2, action.Undo{}).State
	if !reflect.DeepEqual(back1, s1) {
		t.Fatal("first undo did not restore the state after the card play")
	}
	back0 := execute(t, env, back1, action.Undo{}).State
	if !reflect.DeepEqual(back0, s0) {
		t.Fatal("second undo did not restore the initial state")
	}
}

func TestUndoRefusals(t *testing.T) {
	env := testEnv(t, "p1")
	tests := []struct {
		name   string
		state  game.State
		player string
		want   error
	}{
		{name: "empty stack", state: turnState(), player: "p1", want: ErrNothingToUndo},
		{name: "checkpoint", state: turnState().Checkpoint("explore"), player: "p1", want: ErrCheckpointReached},
		{name: "other player", state: turnState(), player: "p2", want: ErrNotYourTurn},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env.PlayerID = tt.player
			_, err := Execute(env, tt.state, action.Undo{})
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if refusal := UndoRefusal(tt.state, tt.player); !errors.Is(refusal, tt.want) {
				t.Fatalf("UndoRefusal = %v, want %v", refusal, tt.want)
			}
		})
	}
}

func TestIrreversibleCommandSetsCheckpoint(t *testing.T) {
	env := testEnv(t, "p1")
	s := execute(t, env, turnState(), action.PlayCard{CardID: "march"}).State
	s.Map = s.Map.With(game.Hex{
		Coord:   north,
		Terrain: game.TerrainPlains,
		Enemies: []game.EnemyToken{{InstanceID: "enemy-1", EnemyID: "prowlers"}},
	})
	res := execute(t, env, s, action.Challenge{Target: north})
	if res.Reversible {
		t.Fatal("challenge must not be reversible")
	}
	if len(res.State.History.Entries) != 0 || res.State.History.Checkpoint != string(action.TypeChallenge) {
		t.Fatalf("history = %+v", res.State.History)
	}
	last := res.Events[len(res.Events)-1]
	if last.Type != event.TypeCheckpointReached {
		t.Fatalf("last event = %s, want %s", last.Type, event.TypeCheckpointReached)
	}
	if _, err := Execute(env, res.State, action.Undo{}); !errors.Is(err, ErrCheckpointReached) {
		t.Fatalf("undo err = %v, want %v", err, ErrCheckpointReached)
	}
}

func TestExecuteRejectsUnknownAction(t *testing.T) {
	if _, err := Execute(testEnv(t, "p1"), turnState(), nil); !errors.Is(err, ErrUnknownAction) {
		t.Fatalf("err = %v, want %v", err, ErrUnknownAction)
	}
}
