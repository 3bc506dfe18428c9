// Package setup builds the opening state of a new game from a content catalog
// and a seed.
package setup

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/louisbranch/manaforge/internal/services/rules/domain/command"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/content"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/game"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/rng"
)

const (
	// MaxPlayers is the largest supported table.
	MaxPlayers = 4
	// DefaultRoundLimit is used when Config.RoundLimit is zero.
	DefaultRoundLimit = 6
	// StartTileID is the tile placed at the origin.
	StartTileID = "start"
	// CountryTilePrefix selects the tiles that form the explore deck.
	CountryTilePrefix = "country_"
)

var (
	// ErrNoSeats indicates a game without players.
	ErrNoSeats = errors.New("at least one seat is required")
	// ErrTooManySeats indicates more seats than MaxPlayers.
	ErrTooManySeats = errors.New("too many seats")
	// ErrPlayerIDRequired indicates a seat without a player id.
	ErrPlayerIDRequired = errors.New("player id is required")
	// ErrDuplicateSeat indicates a player or hero seated twice.
	ErrDuplicateSeat = errors.New("duplicate seat")
	// ErrUnknownHero indicates a hero missing from the catalog.
	ErrUnknownHero = errors.New("unknown hero")
	// ErrStartTileMissing indicates a catalog without the start tile.
	ErrStartTileMissing = errors.New("start tile is missing")
)

// Catalog is the content a new game is built from.
type Catalog interface {
	content.Lookup
	TacticsFor(tod game.TimeOfDay) []content.TacticDef
	EnemiesOfColor(color content.EnemyColor) []string
	TileIDs(prefix string) []string
	UnitIDs() []string
	CardIDs(kind game.CardKind) []string
}

// Seat is one player and the hero they play.
type Seat struct {
	PlayerID string
	HeroID   string
}

// Config describes a new game. An empty GameID gets a random UUID.
type Config struct {
	GameID     string
	Seed       uint64
	Seats      []Seat
	RoundLimit int
}

var enemyColors = []content.EnemyColor{
	content.EnemyGreen, content.EnemyGrey, content.EnemyBrown, content.EnemyViolet,
}

// NewGame returns a game at the start of the first day's tactics phase.
func NewGame(cat Catalog, cfg Config) (game.State, error) {
	if err := checkSeats(cat, cfg.Seats); err != nil {
		return game.State{}, err
	}
	gameID := strings.TrimSpace(cfg.GameID)
	if gameID == "" {
		gameID = uuid.NewString()
	}
	roundLimit := cfg.RoundLimit
	if roundLimit <= 0 {
		roundLimit = DefaultRoundLimit
	}

	s := game.State{
		ID:         gameID,
		Round:      1,
		RoundLimit: roundLimit,
		TimeOfDay:  game.Day,
		RNG:        rng.New(cfg.Seed),
		TacticSets: map[game.TimeOfDay][]string{
			game.Day:   tacticIDs(cat.TacticsFor(game.Day)),
			game.Night: tacticIDs(cat.TacticsFor(game.Night)),
		},
	}

	start, ok := cat.Tile(StartTileID)
	if !ok {
		return game.State{}, ErrStartTileMissing
	}
	s.Map = placeStart(start)

	s.TileDeck, s.RNG = rng.Shuffle(s.RNG, cat.TileIDs(CountryTilePrefix))
	s.AdvancedDeck, s.RNG = rng.Shuffle(s.RNG, cat.CardIDs(game.CardAdvancedAction))
	s.EnemyPiles = make(map[string][]string, len(enemyColors))
	for _, color := range enemyColors {
		var pile []string
		pile, s.RNG = rng.Shuffle(s.RNG, cat.EnemiesOfColor(color))
		s.EnemyPiles[string(color)] = pile
	}
	var units []string
	units, s.RNG = rng.Shuffle(s.RNG, cat.UnitIDs())
	s.UnitOffer = units[:min(len(units), len(cfg.Seats)+2)]

	for _, seat := range cfg.Seats {
		hero, _ := cat.Hero(seat.HeroID)
		var p game.Player
		p, s.RNG = newPlayer(s.RNG, seat, hero)
		s.Players = append(s.Players, p)
	}

	var err error
	if s.Source, s.RNG, err = rollSource(s.RNG, len(cfg.Seats)+2); err != nil {
		return game.State{}, err
	}
	return command.OpenTactics(s), nil
}

func checkSeats(cat Catalog, seats []Seat) error {
	if len(seats) == 0 {
		return ErrNoSeats
	}
	if len(seats) > MaxPlayers {
		return fmt.Errorf("%w: %d > %d", ErrTooManySeats, len(seats), MaxPlayers)
	}
	players := make(map[string]bool, len(seats))
	heroes := make(map[string]bool, len(seats))
	for _, seat := range seats {
		if strings.TrimSpace(seat.PlayerID) == "" {
			return ErrPlayerIDRequired
		}
		if _, ok := cat.Hero(seat.HeroID); !ok {
			return fmt.Errorf("%w: %q", ErrUnknownHero, seat.HeroID)
		}
		if players[seat.PlayerID] || heroes[seat.HeroID] {
			return fmt.Errorf("%w: %s/%s", ErrDuplicateSeat, seat.PlayerID, seat.HeroID)
		}
		players[seat.PlayerID] = true
		heroes[seat.HeroID] = true
	}
	return nil
}

func tacticIDs(defs []content.TacticDef) []string {
	out := make([]string, len(defs))
	for i, d := range defs {
		out[i] = d.ID
	}
	return out
}

func placeStart(tile content.TileDef) game.Map {
	hexes := make([]game.Hex, 0, len(tile.Hexes))
	for _, th := range tile.Hexes {
		hexes = append(hexes, game.Hex{Coord: th.Offset, Terrain: th.Terrain, TileID: tile.ID})
	}
	return game.Map{}.WithAll(hexes)
}

// newPlayer seats a hero at the origin with a shuffled deck and a full hand.
func newPlayer(r rng.State, seat Seat, hero content.HeroDef) (game.Player, rng.State) {
	deck, r := rng.Shuffle(r, hero.StartingDeck)
	n := min(hero.HandLimit, len(deck))
	return game.Player{
		ID:            seat.PlayerID,
		HeroID:        hero.ID,
		Level:         1,
		Armor:         hero.Armor,
		HandLimit:     hero.HandLimit,
		CommandTokens: 1,
		Hand:          deck[:n:n],
		Deck:          deck[n:],
	}, r
}

// rollSource rolls n dice, rerolling all of them until at least half show a
// basic color.
func rollSource(r rng.State, n int) ([]game.SourceDie, rng.State, error) {
	dice := make([]game.SourceDie, n)
	for {
		basic := 0
		for i := range dice {
			var color game.Color
			var err error
			if color, r, err = rng.Pick(r, command.DieColors); err != nil {
				return nil, r, err
			}
			dice[i] = game.SourceDie{ID: fmt.Sprintf("die-%d", i+1), Color: color}
			if color.IsBasic() {
				basic++
			}
		}
		if 2*basic >= n {
			return dice, r, nil
		}
	}
}
