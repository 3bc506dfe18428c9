package command

import (
	"fmt"

	"github.com/louisbranch/manaforge/internal/services/rules/domain/action"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/combat"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/effect"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/event"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/game"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/modifier"
)

// ExploreCost is the move point cost of revealing a tile.
const ExploreCost = 2

// MoveCost returns the move points needed for playerID to enter coord. ok is
// false when the hex is unrevealed or impassable.
func MoveCost(s game.State, playerID string, coord game.Coord) (int, bool) {
	h, ok := s.Map.Hex(coord)
	if !ok {
		return 0, false
	}
	return modifier.TerrainCost(s.Modifiers, playerID, h.Terrain, s.TimeOfDay)
}

// Provoked returns the rampaging hexes adjacent to both from and to.
func Provoked(s game.State, from, to game.Coord) []game.Hex {
	var out []game.Hex
	for _, c := range to.Neighbors() {
		if c == from || !c.Adjacent(from) {
			continue
		}
		h, ok := s.Map.Hex(c)
		if ok && h.HasHostiles() {
			out = append(out, h)
		}
	}
	return out
}

// Assaultable reports whether entering h starts an assault.
func Assaultable(h game.Hex) bool {
	return h.Site != nil && game.IsFortifiedSite(h.Site.Kind) && !h.Site.Conquered && len(h.Site.Defenders) > 0
}

// ExploreCenter returns the center of the tile revealed by exploring target
// from position. The new tile sits on the far side of target.
func ExploreCenter(position, target game.Coord) game.Coord {
	return target.Add(target.Sub(position))
}

// TileFootprint lists the coordinates a tile centered at center covers.
func TileFootprint(center game.Coord) []game.Coord {
	return append([]game.Coord{center}, center.Neighbors()...)
}

func move(env Env, s game.State, a action.Move) (Result, error) {
	p, err := s.MustPlayer(env.PlayerID)
	if err != nil {
		return Result{}, err
	}
	cost, ok := MoveCost(s, p.ID, a.Target)
	if !ok {
		return Result{}, fmt.Errorf("%w: cannot enter %s", ErrInvalidTarget, a.Target.Key())
	}
	from := p.Position
	p.Position = a.Target
	p.Turn.MovePoints -= cost
	p.Turn.HasMoved = true
	res := Result{
		State: s.WithPlayer(p),
		Events: []event.Event{event.ForPlayer(event.TypeHeroMoved, p.ID, event.HeroMovedPayload{
			From: from,
			To:   a.Target,
			Cost: cost,
		})},
		Reversible: true,
	}

	h, _ := res.State.Map.Hex(a.Target)
	if Assaultable(h) {
		parts := make([]combat.Participant, 0, len(h.Site.Defenders))
		for _, tok := range h.Site.Defenders {
			parts = append(parts, combat.Participant{Token: tok, Origin: game.OriginSite, Coord: h.Coord})
		}
		return startCombat(env, res, h.Coord, true, parts)
	}
	if modifier.TerrainSafe(res.State.Modifiers, p.ID, h.Terrain) {
		return res, nil
	}
	var parts []combat.Participant
	for _, hostile := range Provoked(res.State, from, a.Target) {
		parts = append(parts, rampaging(hostile)...)
	}
	if len(parts) == 0 {
		return res, nil
	}
	return startCombat(env, res, a.Target, false, parts)
}

func rampaging(h game.Hex) []combat.Participant {
	parts := make([]combat.Participant, 0, len(h.Enemies))
	for _, tok := range h.Enemies {
		parts = append(parts, combat.Participant{Token: tok, Origin: game.OriginRampaging, Coord: h.Coord})
	}
	return parts
}

// startCombat opens a fight on top of res. Fighting is the turn's action and
// cannot be undone.
func startCombat(env Env, res Result, coord game.Coord, assault bool, parts []combat.Participant) (Result, error) {
	out, err := combat.Start(combat.Env{Content: env.Content, PlayerID: env.PlayerID}, res.State, coord, assault, parts)
	if err != nil {
		return Result{}, err
	}
	res.absorb(out)
	p, err := res.State.MustPlayer(env.PlayerID)
	if err != nil {
		return Result{}, err
	}
	p.Turn.ActionTaken = true
	res.State = res.State.WithPlayer(p)
	res.Reversible = false
	return res, nil
}

func challenge(env Env, s game.State, a action.Challenge) (Result, error) {
	h, ok := s.Map.Hex(a.Target)
	if !ok || !h.HasHostiles() {
		return Result{}, fmt.Errorf("%w: no enemies at %s", ErrInvalidTarget, a.Target.Key())
	}
	return startCombat(env, Result{State: s}, h.Coord, false, rampaging(h))
}

func explore(env Env, s game.State, a action.Explore) (Result, error) {
	p, err := s.MustPlayer(env.PlayerID)
	if err != nil {
		return Result{}, err
	}
	if len(s.TileDeck) == 0 {
		return Result{}, fmt.Errorf("%w: tile deck is empty", ErrInvalidTarget)
	}
	tileID := s.TileDeck[0]
	tile, ok := env.Content.Tile(tileID)
	if !ok {
		return Result{}, fmt.Errorf("%w: tile %s", effect.ErrContentMissing, tileID)
	}
	s.TileDeck = game.RemoveAt(s.TileDeck, 0)
	p.Turn.MovePoints -= ExploreCost
	p.Turn.Explored = true
	s = s.WithPlayer(p)

	center := ExploreCenter(p.Position, a.Target)
	hexes := make([]game.Hex, 0, len(tile.Hexes))
	for _, th := range tile.Hexes {
		h := game.Hex{Coord: center.Add(th.Offset), Terrain: th.Terrain, TileID: tile.ID}
		var tokens []game.EnemyToken
		for _, color := range th.Enemies {
			var tok game.EnemyToken
			tok, s, ok = drawEnemy(s, string(color))
			if ok {
				tokens = append(tokens, tok)
			}
		}
		switch {
		case th.Site == game.SiteRampaging:
			h.Enemies = tokens
		case th.Site != "":
			h.Site = &game.Site{
				Kind:      th.Site,
				Fortified: game.IsFortifiedSite(th.Site),
				Defenders: tokens,
				MineColor: th.MineColor,
			}
		}
		hexes = append(hexes, h)
	}
	s.Map = s.Map.WithAll(hexes)
	return Result{
		State: s,
		Events: []event.Event{{
			Type:       event.TypeTileExplored,
			PlayerID:   p.ID,
			EntityType: event.EntityHex,
			EntityID:   center.Key(),
			Payload:    event.TileExploredPayload{TileID: tile.ID, Center: center},
		}},
	}, nil
}

// drawEnemy takes the top token of a pile and gives it an instance id.
func drawEnemy(s game.State, color string) (game.EnemyToken, game.State, bool) {
	pile := s.EnemyPiles[color]
	if len(pile) == 0 {
		return game.EnemyToken{}, s, false
	}
	enemyID := pile[0]
	s = s.WithEnemyPile(color, game.RemoveAt(pile, 0))
	id, s := s.NextID("enemy")
	return game.EnemyToken{InstanceID: id, EnemyID: enemyID}, s, true
}
