package command

import (
	"errors"
	"reflect"
	"testing"

	"github.com/louisbranch/manaforge/internal/services/rules/domain/action"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/event"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/game"
)

func sidewaysMod(kind game.CardKind, amount int) game.ActiveModifier {
	return game.ActiveModifier{
		ID:       "mod-9",
		Source:   game.Source{Kind: game.SourceSkill, ID: "power_of_pain", PlayerID: "p1"},
		Duration: game.DurationTurn,
		Scope:    game.Scope{Kind: game.ScopeSelf},
		Effect:   game.ModifierEffect{Kind: game.ModifierSidewaysValue, CardKind: kind, Amount: amount},
	}
}

func TestPlayCardSideways(t *testing.T) {
	tests := []struct {
		name string
		card string
		mods []game.ActiveModifier
		want int
	}{
		{name: "basic action", card: "rage", want: 1},
		{name: "boosted basic action", card: "rage", mods: []game.ActiveModifier{sidewaysMod(game.CardBasicAction, 2)}, want: 2},
		{name: "wound", card: "wound", want: 0},
		{name: "wound with power of pain", card: "wound", mods: []game.ActiveModifier{sidewaysMod(game.CardWound, 2)}, want: 2},
		{name: "filter for other kind", card: "rage", mods: []game.ActiveModifier{sidewaysMod(game.CardWound, 2)}, want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := testEnv(t, "p1")
			s := withPlayer(turnState(), "p1", func(p *game.Player) {
				p.Hand = []string{tt.card}
			}).WithModifiers(tt.mods)
			res := execute(t, env, s, action.PlayCardSideways{CardID: tt.card, Resource: game.ResourceMove})
			p := mustPlayer(t, res.State, "p1")
			if p.Turn.MovePoints != tt.want {
				t.Fatalf("move = %d, want %d", p.Turn.MovePoints, tt.want)
			}
			if len(p.Hand) != 0 || !reflect.DeepEqual(p.PlayArea, []string{tt.card}) {
				t.Fatalf("hand = %v play area = %v", p.Hand, p.PlayArea)
			}
			payload, ok := res.Events[0].Payload.(event.CardPlayedPayload)
			if !ok || !payload.Sideways || payload.Amount != tt.want {
				t.Fatalf("card event = %+v", res.Events[0])
			}
		})
	}
}

func TestPlayCardPoweredPaysMana(t *testing.T) {
	tests := []struct {
		name    string
		payment action.ManaPayment
		setup   func(*game.Player)
		check   func(*testing.T, game.Player)
	}{
		{
			name:    "token",
			payment: action.ManaPayment{Color: game.ColorGreen},
			setup:   func(p *game.Player) { p.ManaTokens = []game.Color{game.ColorGreen, game.ColorRed} },
			check: func(t *testing.T, p game.Player) {
				if !reflect.DeepEqual(p.ManaTokens, []game.Color{game.ColorRed}) {
					t.Fatalf("tokens = %v", p.ManaTokens)
				}
			},
		},
		{
			name:    "crystal",
			payment: action.ManaPayment{Color: game.ColorGreen, FromCrystal: true},
			setup:   func(p *game.Player) { p.Crystals.Green = 2 },
			check: func(t *testing.T, p game.Player) {
				if p.Crystals.Green != 1 {
					t.Fatalf("green crystals = %d, want 1", p.Crystals.Green)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := testEnv(t, "p1")
			s := withPlayer(turnState(), "p1", tt.setup)
			payment := tt.payment
			res := execute(t, env, s, action.PlayCard{CardID: "march", Powered: true, Mana: &payment})
			p := mustPlayer(t, res.State, "p1")
			if p.Turn.MovePoints != 4 {
				t.Fatalf("move = %d, want 4", p.Turn.MovePoints)
			}
			tt.check(t, p)
		})
	}
}

func TestPlayCardWithoutMana(t *testing.T) {
	env := testEnv(t, "p1")
	_, err := Execute(env, turnState(), action.PlayCard{CardID: "march", Powered: true})
	if !errors.Is(err, ErrInvalidTarget) {
		t.Fatalf("err = %v, want %v", err, ErrInvalidTarget)
	}
}

func TestManaPowers(t *testing.T) {
	tests := []struct {
		tod   game.TimeOfDay
		card  game.Color
		mana  game.Color
		wants bool
	}{
		{game.Day, game.ColorGreen, game.ColorGreen, true},
		{game.Day, game.ColorGreen, game.ColorRed, false},
		{game.Day, game.ColorGreen, game.ColorGold, true},
		{game.Night, game.ColorGreen, game.ColorGold, false},
		{game.Night, game.ColorGreen, game.ColorBlack, false},
	}
	for _, tt := range tests {
		if got := ManaPowers(tt.tod, tt.card, tt.mana); got != tt.wants {
			t.Fatalf("ManaPowers(%s, %s, %s) = %v, want %v", tt.tod, tt.card, tt.mana, got, tt.wants)
		}
	}
}

func TestChoiceSuspendsThenResumes(t *testing.T) {
	env := testEnv(t, "p1")
	played := execute(t, env, turnState(), action.PlayCard{CardID: "improvisation"})
	p := mustPlayer(t, played.State, "p1")
	if p.PendingChoice == nil || len(p.PendingChoice.Options) != 2 {
		t.Fatalf("pending choice = %+v", p.PendingChoice)
	}
	if !played.Reversible {
		t.Fatal("suspending play must be reversible")
	}

	resolved := execute(t, env, played.State, action.ResolveChoice{Index: 1})
	p = mustPlayer(t, resolved.State, "p1")
	if p.PendingChoice != nil || p.Turn.InfluencePoints != 3 {
		t.Fatalf("pending = %+v influence = %d", p.PendingChoice, p.Turn.InfluencePoints)
	}
	undone := execute(t, env, resolved.State, action.Undo{})
	if !reflect.DeepEqual(undone.State, played.State) {
		t.Fatal("undo did not restore the pending choice")
	}
}

func TestUseSourceDie(t *testing.T) {
	env := testEnv(t, "p1")
	res := execute(t, env, turnState(), action.UseSourceDie{DieID: "die-2", Color: game.ColorBlue})
	p := mustPlayer(t, res.State, "p1")
	if !reflect.DeepEqual(p.ManaTokens, []game.Color{game.ColorBlue}) || p.Turn.DiceUsed != 1 {
		t.Fatalf("tokens = %v dice used = %d", p.ManaTokens, p.Turn.DiceUsed)
	}
	die, _, _ := res.State.SourceDie("die-2")
	if die.TakenBy != "p1" || die.Color != game.ColorGold {
		t.Fatalf("die = %+v", die)
	}
	if DiceAllowed(res.State, "p1") != 1 {
		t.Fatalf("DiceAllowed = %d, want 1", DiceAllowed(res.State, "p1"))
	}
	if _, err := Execute(env, res.State, action.UseSourceDie{DieID: "die-2", Color: game.ColorBlue}); !errors.Is(err, ErrInvalidTarget) {
		t.Fatalf("second take err = %v, want %v", err, ErrInvalidTarget)
	}
}

func TestConvertCrystal(t *testing.T) {
	env := testEnv(t, "p1")
	s := withPlayer(turnState(), "p1", func(p *game.Player) { p.Crystals.Red = 2 })
	res := execute(t, env, s, action.ConvertCrystal{Color: game.ColorRed})
	p := mustPlayer(t, res.State, "p1")
	if p.Crystals.Red != 1 || !reflect.DeepEqual(p.ManaTokens, []game.Color{game.ColorRed}) {
		t.Fatalf("crystals = %+v tokens = %v", p.Crystals, p.ManaTokens)
	}
	if _, err := Execute(env, turnState(), action.ConvertCrystal{Color: game.ColorRed}); !errors.Is(err, ErrInvalidTarget) {
		t.Fatalf("err = %v, want %v", err, ErrInvalidTarget)
	}
}
