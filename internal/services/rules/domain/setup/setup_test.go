package setup

import (
	"errors"
	"reflect"
	"testing"

	"github.com/google/uuid"

	"github.com/louisbranch/manaforge/internal/services/rules/domain/content"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/game"
)

func baseCatalog(t *testing.T) *content.Static {
	t.Helper()
	cat, err := content.Base()
	if err != nil {
		t.Fatalf("content.Base: %v", err)
	}
	return cat
}

func twoSeats() []Seat {
	return []Seat{{PlayerID: "p1", HeroID: "arythea"}, {PlayerID: "p2", HeroID: "tovak"}}
}

func TestNewGameOpensTactics(t *testing.T) {
	cat := baseCatalog(t)
	s, err := NewGame(cat, Config{GameID: "game-1", Seed: 42, Seats: twoSeats()})
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	if s.ID != "game-1" {
		t.Fatalf("id = %q, want game-1", s.ID)
	}
	if s.Phase != game.PhaseTactics || s.Round != 1 || s.TimeOfDay != game.Day {
		t.Fatalf("phase/round/time = %s/%d/%s, want tactics/1/day", s.Phase, s.Round, s.TimeOfDay)
	}
	if s.RoundLimit != DefaultRoundLimit {
		t.Fatalf("round limit = %d, want %d", s.RoundLimit, DefaultRoundLimit)
	}
	if !reflect.DeepEqual(s.TacticOrder, []string{"p1", "p2"}) {
		t.Fatalf("tactic order = %v, want [p1 p2]", s.TacticOrder)
	}
	if len(s.AvailableTactics) != len(cat.TacticsFor(game.Day)) {
		t.Fatalf("available tactics = %v", s.AvailableTactics)
	}
	if len(s.Source) != 4 {
		t.Fatalf("source dice = %d, want 4", len(s.Source))
	}
	basic := 0
	for _, d := range s.Source {
		if d.Color.IsBasic() {
			basic++
		}
	}
	if 2*basic < len(s.Source) {
		t.Fatalf("basic dice = %d of %d, want at least half", basic, len(s.Source))
	}
	if len(s.UnitOffer) > 4 {
		t.Fatalf("unit offer = %v, want at most 4", s.UnitOffer)
	}
	if len(s.TileDeck) != len(cat.TileIDs(CountryTilePrefix)) {
		t.Fatalf("tile deck = %v", s.TileDeck)
	}
	if !s.Map.Revealed(game.Coord{}) {
		t.Fatal("start tile is not placed at the origin")
	}
	for _, p := range s.Players {
		hero, _ := cat.Hero(p.HeroID)
		if len(p.Hand) != hero.HandLimit {
			t.Fatalf("%s hand = %d, want %d", p.ID, len(p.Hand), hero.HandLimit)
		}
		if len(p.Hand)+len(p.Deck) != len(hero.StartingDeck) {
			t.Fatalf("%s cards = %d, want %d", p.ID, len(p.Hand)+len(p.Deck), len(hero.StartingDeck))
		}
		if p.Level != 1 || p.CommandTokens != 1 || p.Armor != hero.Armor {
			t.Fatalf("%s level/tokens/armor = %d/%d/%d", p.ID, p.Level, p.CommandTokens, p.Armor)
		}
	}
}

func TestNewGameIsDeterministic(t *testing.T) {
	cat := baseCatalog(t)
	cfg := Config{GameID: "game-1", Seed: 7, Seats: twoSeats()}
	a, err := NewGame(cat, cfg)
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	b, err := NewGame(cat, cfg)
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatal("same seed produced different games")
	}
}

func TestNewGameAssignsUUID(t *testing.T) {
	s, err := NewGame(baseCatalog(t), Config{Seats: twoSeats()[:1]})
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	if _, err := uuid.Parse(s.ID); err != nil {
		t.Fatalf("id %q is not a uuid: %v", s.ID, err)
	}
}

func TestNewGameRejectsBadSeats(t *testing.T) {
	cat := baseCatalog(t)
	tests := []struct {
		name  string
		seats []Seat
		want  error
	}{
		{name: "no seats", want: ErrNoSeats},
		{name: "too many", seats: make([]Seat, MaxPlayers+1), want: ErrTooManySeats},
		{name: "missing player", seats: []Seat{{HeroID: "arythea"}}, want: ErrPlayerIDRequired},
		{name: "unknown hero", seats: []Seat{{PlayerID: "p1", HeroID: "nobody"}}, want: ErrUnknownHero},
		{
			name:  "duplicate hero",
			seats: []Seat{{PlayerID: "p1", HeroID: "tovak"}, {PlayerID: "p2", HeroID: "tovak"}},
			want:  ErrDuplicateSeat,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewGame(cat, Config{Seats: tt.seats}); !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
		})
	}
}
