package validate

import (
	"strconv"

	apperrors "github.com/louisbranch/manaforge/internal/platform/errors"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/action"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/command"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/game"
)

func adjacent(s game.State, playerID string, target game.Coord) Verdict {
	p, _ := s.Player(playerID)
	if !p.Position.Adjacent(target) {
		return reject(apperrors.CodeHexNotAdjacent, "Hex", target.Key())
	}
	return Valid
}

func revealed(s game.State, target game.Coord) Verdict {
	if !s.Map.Revealed(target) {
		return reject(apperrors.CodeHexNotRevealed, "Hex", target.Key())
	}
	return Valid
}

func moveAdjacent(s game.State, playerID string, a action.Move) Verdict {
	return adjacent(s, playerID, a.Target)
}

func moveRevealed(s game.State, _ string, a action.Move) Verdict {
	return revealed(s, a.Target)
}

// moveNotOccupied keeps heroes out of hexes held by rampaging enemies; those
// are fought with a challenge instead.
func moveNotOccupied(s game.State, _ string, a action.Move) Verdict {
	if h, _ := s.Map.Hex(a.Target); len(h.Enemies) > 0 {
		return reject(apperrors.CodeHexOccupied, "Hex", a.Target.Key())
	}
	return Valid
}

func movePassable(s game.State, playerID string, a action.Move) Verdict {
	if _, ok := command.MoveCost(s, playerID, a.Target); !ok {
		return reject(apperrors.CodeHexImpassable, "Hex", a.Target.Key())
	}
	return Valid
}

func moveAffordable(s game.State, playerID string, a action.Move) Verdict {
	cost, _ := command.MoveCost(s, playerID, a.Target)
	return movePoints(s, playerID, cost)
}

func movePoints(s game.State, playerID string, cost int) Verdict {
	p, _ := s.Player(playerID)
	if p.Turn.MovePoints < cost {
		return reject(apperrors.CodeInsufficientMove,
			"Cost", strconv.Itoa(cost),
			"Available", strconv.Itoa(p.Turn.MovePoints))
	}
	return Valid
}

func exploreAdjacent(s game.State, playerID string, a action.Explore) Verdict {
	return adjacent(s, playerID, a.Target)
}

func exploreUnrevealed(s game.State, _ string, a action.Explore) Verdict {
	if s.Map.Revealed(a.Target) {
		return reject(apperrors.CodeHexRevealed, "Hex", a.Target.Key())
	}
	return Valid
}

func tileDeckNotEmpty(s game.State, _ string, _ action.Action) Verdict {
	if len(s.TileDeck) == 0 {
		return reject(apperrors.CodeTileDeckEmpty)
	}
	return Valid
}

func exploreNoOverlap(s game.State, playerID string, a action.Explore) Verdict {
	p, _ := s.Player(playerID)
	center := command.ExploreCenter(p.Position, a.Target)
	for _, c := range command.TileFootprint(center) {
		if s.Map.Revealed(c) {
			return reject(apperrors.CodeTileOverlap, "Hex", center.Key())
		}
	}
	return Valid
}

func exploreAffordable(s game.State, playerID string, _ action.Action) Verdict {
	return movePoints(s, playerID, command.ExploreCost)
}

func challengeAdjacent(s game.State, playerID string, a action.Challenge) Verdict {
	return adjacent(s, playerID, a.Target)
}

func challengeHostiles(s game.State, _ string, a action.Challenge) Verdict {
	if h, ok := s.Map.Hex(a.Target); !ok || !h.HasHostiles() {
		return reject(apperrors.CodeNoEnemiesAtHex, "Hex", a.Target.Key())
	}
	return Valid
}
