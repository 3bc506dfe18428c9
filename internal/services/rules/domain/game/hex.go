package game

import (
	"fmt"
	"sort"
)

// Coord is an axial hex coordinate.
type Coord struct {
	Q int `json:"q" yaml:"q"`
	R int `json:"r" yaml:"r"`
}

// Key returns the map key for the coordinate.
func (c Coord) Key() string {
	return fmt.Sprintf("%d,%d", c.Q, c.R)
}

// Add returns the component-wise sum.
func (c Coord) Add(o Coord) Coord {
	return Coord{Q: c.Q + o.Q, R: c.R + o.R}
}

// Sub returns the component-wise difference.
func (c Coord) Sub(o Coord) Coord {
	return Coord{Q: c.Q - o.Q, R: c.R - o.R}
}

var hexDirections = [6]Coord{
	{Q: 1, R: 0}, {Q: 1, R: -1}, {Q: 0, R: -1},
	{Q: -1, R: 0}, {Q: -1, R: 1}, {Q: 0, R: 1},
}

// Neighbors returns the six adjacent coordinates in a fixed order.
func (c Coord) Neighbors() []Coord {
	out := make([]Coord, 0, len(hexDirections))
	for _, d := range hexDirections {
		out = append(out, c.Add(d))
	}
	return out
}

// Distance returns the hex distance between two coordinates.
func (c Coord) Distance(o Coord) int {
	dq := c.Q - o.Q
	dr := c.R - o.R
	ds := -dq - dr
	return (abs(dq) + abs(dr) + abs(ds)) / 2
}

// Adjacent reports whether two coordinates share an edge.
func (c Coord) Adjacent(o Coord) bool {
	return c.Distance(o) == 1
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Terrain is the terrain of a hex.
type Terrain string

const (
	TerrainPlains    Terrain = "plains"
	TerrainHills     Terrain = "hills"
	TerrainForest    Terrain = "forest"
	TerrainWasteland Terrain = "wasteland"
	TerrainDesert    Terrain = "desert"
	TerrainSwamp     Terrain = "swamp"
	TerrainLake      Terrain = "lake"
	TerrainMountain  Terrain = "mountain"
	TerrainCity      Terrain = "city"
)

type terrainCost struct {
	day, night int
	passable   bool
}

var baseTerrainCosts = map[Terrain]terrainCost{
	TerrainPlains:    {day: 2, night: 2, passable: true},
	TerrainHills:     {day: 3, night: 3, passable: true},
	TerrainForest:    {day: 3, night: 5, passable: true},
	TerrainWasteland: {day: 4, night: 4, passable: true},
	TerrainDesert:    {day: 5, night: 3, passable: true},
	TerrainSwamp:     {day: 5, night: 5, passable: true},
	TerrainCity:      {day: 2, night: 2, passable: true},
	TerrainLake:      {},
	TerrainMountain:  {},
}

// BaseMoveCost returns the unmodified cost of entering terrain. ok is false
// for impassable or unknown terrain.
func BaseMoveCost(t Terrain, tod TimeOfDay) (cost int, ok bool) {
	entry, found := baseTerrainCosts[t]
	if !found || !entry.passable {
		return 0, false
	}
	if tod == Night {
		return entry.night, true
	}
	return entry.day, true
}

// SiteKind identifies a site printed on a hex.
type SiteKind string

const (
	SiteVillage      SiteKind = "village"
	SiteMonastery    SiteKind = "monastery"
	SiteKeep         SiteKind = "keep"
	SiteMageTower    SiteKind = "mage_tower"
	SiteMine         SiteKind = "mine"
	SiteMagicalGlade SiteKind = "magical_glade"
	SiteRampaging    SiteKind = "rampaging"
)

// IsFortifiedSite reports whether a site kind requires an assault.
func IsFortifiedSite(kind SiteKind) bool {
	return kind == SiteKeep || kind == SiteMageTower
}

// EnemyToken is one enemy instance placed on the map.
type EnemyToken struct {
	InstanceID string `json:"instance_id"`
	EnemyID    string `json:"enemy_id"`
}

// Site is a location on a hex.
type Site struct {
	Kind      SiteKind     `json:"kind"`
	Fortified bool         `json:"fortified,omitempty"`
	Conquered bool         `json:"conquered,omitempty"`
	Owner     string       `json:"owner,omitempty"`
	Defenders []EnemyToken `json:"defenders,omitempty"`
	MineColor Color        `json:"mine_color,omitempty"`
}

// Hex is one revealed map space.
type Hex struct {
	Coord   Coord        `json:"coord"`
	Terrain Terrain      `json:"terrain"`
	TileID  string       `json:"tile_id,omitempty"`
	Site    *Site        `json:"site,omitempty"`
	Enemies []EnemyToken `json:"enemies,omitempty"`
}

// HasHostiles reports whether rampaging enemies occupy the hex.
func (h Hex) HasHostiles() bool {
	return len(h.Enemies) > 0
}

// Map holds revealed hexes keyed by Coord.Key.
type Map struct {
	Hexes map[string]Hex `json:"hexes"`
}

// Hex returns the hex at c.
func (m Map) Hex(c Coord) (Hex, bool) {
	h, ok := m.Hexes[c.Key()]
	return h, ok
}

// Revealed reports whether a hex exists at c.
func (m Map) Revealed(c Coord) bool {
	_, ok := m.Hexes[c.Key()]
	return ok
}

// With returns a map with h stored; the receiver is not modified.
func (m Map) With(h Hex) Map {
	hexes := make(map[string]Hex, len(m.Hexes)+1)
	for k, v := range m.Hexes {
		hexes[k] = v
	}
	hexes[h.Coord.Key()] = h
	return Map{Hexes: hexes}
}

// WithAll returns a map with every hex stored in one copy.
func (m Map) WithAll(hs []Hex) Map {
	hexes := make(map[string]Hex, len(m.Hexes)+len(hs))
	for k, v := range m.Hexes {
		hexes[k] = v
	}
	for _, h := range hs {
		hexes[h.Coord.Key()] = h
	}
	return Map{Hexes: hexes}
}

// Sorted returns every hex ordered by coordinate for deterministic iteration.
func (m Map) Sorted() []Hex {
	out := make([]Hex, 0, len(m.Hexes))
	for _, h := range m.Hexes {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Coord.Q != out[j].Coord.Q {
			return out[i].Coord.Q < out[j].Coord.Q
		}
		return out[i].Coord.R < out[j].Coord.R
	})
	return out
}
