package engine

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"

	apperrors "github.com/louisbranch/manaforge/internal/platform/errors"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/action"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/content"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/event"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/game"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/rng"
)

type recordingSink struct {
	mu      sync.Mutex
	gameIDs []string
	events  [][]event.Event
	err     error
}

func (r *recordingSink) Publish(_ context.Context, gameID string, events []event.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gameIDs = append(r.gameIDs, gameID)
	r.events = append(r.events, events)
	return r.err
}

func newEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	cat, err := content.Base()
	if err != nil {
		t.Fatalf("content.Base: %v", err)
	}
	e, err := New(cat, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e
}

func turnState() game.State {
	m := game.Map{Hexes: map[string]game.Hex{}}
	for _, h := range []game.Hex{
		{Coord: game.Coord{}, Terrain: game.TerrainPlains},
		{Coord: game.Coord{Q: 1}, Terrain: game.TerrainPlains},
	} {
		m.Hexes[h.Coord.Key()] = h
	}
	return game.State{
		ID:         "game-1",
		Round:      1,
		RoundLimit: 3,
		TimeOfDay:  game.Day,
		Phase:      game.PhaseTurns,
		Players: []game.Player{
			{ID: "p1", HeroID: "arythea", Armor: 2, HandLimit: 5, CommandTokens: 1, Hand: []string{"march", "rage"}},
			{ID: "p2", HeroID: "tovak", Armor: 2, HandLimit: 5, CommandTokens: 1},
		},
		TurnOrder: []string{"p1", "p2"},
		Map:       m,
		RNG:       rng.New(9),
	}
}

func eventTypes(events []event.Event) []event.Type {
	out := make([]event.Type, 0, len(events))
	for _, e := range events {
		out = append(out, e.Type)
	}
	return out
}

func TestNewRequiresContent(t *testing.T) {
	if _, err := New(nil); !errors.Is(err, ErrContentRequired) {
		t.Fatalf("New(nil) error = %v, want %v", err, ErrContentRequired)
	}
}

func TestProcessActionAccepts(t *testing.T) {
	sink := &recordingSink{}
	e := newEngine(t, WithSink(sink))
	s0 := turnState()

	res, err := e.ProcessAction(context.Background(), s0, "p1", action.PlayCard{CardID: "march"})
	if err != nil {
		t.Fatalf("ProcessAction: %v", err)
	}
	if !res.Accepted {
		t.Fatalf("accepted = false, verdict %+v", res.Verdict)
	}
	p, _ := res.State.Player("p1")
	if p.Turn.MovePoints != 2 {
		t.Fatalf("move points = %d, want 2", p.Turn.MovePoints)
	}
	if !reflect.DeepEqual(p.PlayArea, []string{"march"}) {
		t.Fatalf("play area = %v, want [march]", p.PlayArea)
	}
	if len(res.Events) == 0 || res.Events[0].Type != event.TypeCardPlayed {
		t.Fatalf("events = %v, want card.played first", eventTypes(res.Events))
	}
	if len(sink.events) != 1 || sink.gameIDs[0] != "game-1" {
		t.Fatalf("sink calls = %d (%v), want 1 for game-1", len(sink.events), sink.gameIDs)
	}
	if !reflect.DeepEqual(sink.events[0], res.Events) {
		t.Fatalf("published events differ from result events")
	}
	if p0, _ := s0.Player("p1"); len(p0.Hand) != 2 || p0.Turn.MovePoints != 0 {
		t.Fatalf("input state was modified: %+v", p0)
	}
}

func TestProcessActionRejects(t *testing.T) {
	sink := &recordingSink{}
	e := newEngine(t, WithSink(sink))
	s0 := turnState()

	tests := []struct {
		name   string
		player string
		action action.Action
		want   apperrors.Code
	}{
		{name: "not adjacent", player: "p1", action: action.Move{Target: game.Coord{Q: 2}}, want: apperrors.CodeHexNotAdjacent},
		{name: "not your turn", player: "p2", action: action.EndTurn{}, want: apperrors.CodeNotYourTurn},
		{name: "nothing to undo", player: "p1", action: action.Undo{}, want: apperrors.CodeNothingToUndo},
		{name: "nil action", player: "p1", action: nil, want: apperrors.CodeUnknownAction},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := e.ProcessAction(context.Background(), s0, tt.player, tt.action)
			if err != nil {
				t.Fatalf("ProcessAction: %v", err)
			}
			if res.Accepted {
				t.Fatal("accepted = true, want false")
			}
			if res.Verdict.Code != tt.want {
				t.Fatalf("code = %s, want %s", res.Verdict.Code, tt.want)
			}
			if !reflect.DeepEqual(res.State, s0) {
				t.Fatal("rejected action changed state")
			}
			if len(res.Events) != 1 || res.Events[0].Type != event.TypeActionRejected {
				t.Fatalf("events = %v, want [action.rejected]", eventTypes(res.Events))
			}
			payload, ok := res.Events[0].Payload.(event.ActionRejectedPayload)
			if !ok {
				t.Fatalf("payload type = %T, want ActionRejectedPayload", res.Events[0].Payload)
			}
			if payload.Code != string(tt.want) || payload.Message == "" {
				t.Fatalf("payload = %+v, want code %s with message", payload, tt.want)
			}
			if res.Events[0].PlayerID != tt.player {
				t.Fatalf("event player = %q, want %q", res.Events[0].PlayerID, tt.player)
			}
		})
	}
	if len(sink.events) != 0 {
		t.Fatalf("sink calls = %d, want 0 for rejections", len(sink.events))
	}
}

func TestProcessActionUndoRestoresState(t *testing.T) {
	e := newEngine(t)
	s0 := turnState()

	played, err := e.ProcessAction(context.Background(), s0, "p1", action.PlayCard{CardID: "march"})
	if err != nil || !played.Accepted {
		t.Fatalf("play: err %v verdict %+v", err, played.Verdict)
	}
	undone, err := e.ProcessAction(context.Background(), played.State, "p1", action.Undo{})
	if err != nil || !undone.Accepted {
		t.Fatalf("undo: err %v verdict %+v", err, undone.Verdict)
	}
	if !reflect.DeepEqual(undone.State, s0) {
		t.Fatal("undo did not restore the pre-action state")
	}
	if got := eventTypes(undone.Events); !reflect.DeepEqual(got, []event.Type{event.TypeActionUndone}) {
		t.Fatalf("events = %v, want [action.undone]", got)
	}
}

func TestProcessActionSinkFailureDoesNotFail(t *testing.T) {
	sink := &recordingSink{err: errors.New("broker down")}
	e := newEngine(t, WithSink(sink))

	res, err := e.ProcessAction(context.Background(), turnState(), "p1", action.PlayCard{CardID: "march"})
	if err != nil {
		t.Fatalf("ProcessAction: %v", err)
	}
	if !res.Accepted {
		t.Fatalf("accepted = false, verdict %+v", res.Verdict)
	}
}

func TestProcessActionHonorsCanceledContext(t *testing.T) {
	e := newEngine(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s0 := turnState()

	res, err := e.ProcessAction(ctx, s0, "p1", action.PlayCard{CardID: "march"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
	if !reflect.DeepEqual(res.State, s0) {
		t.Fatal("canceled call changed state")
	}
}

func TestProcessActionIsDeterministic(t *testing.T) {
	e := newEngine(t)
	a := action.PlayCard{CardID: "march"}

	first, err := e.ProcessAction(context.Background(), turnState(), "p1", a)
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	second, err := e.ProcessAction(context.Background(), turnState(), "p1", a)
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatal("same input produced different results")
	}
}
