package content

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/louisbranch/manaforge/internal/services/rules/domain/game"
)

var (
	// ErrDuplicateID indicates two definitions of the same kind share an id.
	ErrDuplicateID = errors.New("duplicate definition id")
	// ErrIDRequired indicates a definition without an id.
	ErrIDRequired = errors.New("definition id is required")
	// ErrUnknownReference indicates a definition referencing a missing id.
	ErrUnknownReference = errors.New("unknown definition reference")
)

//go:embed base.yaml
var baseYAML []byte

type catalogFile struct {
	Cards   []CardDef   `yaml:"cards"`
	Enemies []EnemyDef  `yaml:"enemies"`
	Units   []UnitDef   `yaml:"units"`
	Tiles   []TileDef   `yaml:"tiles"`
	Skills  []SkillDef  `yaml:"skills"`
	Tactics []TacticDef `yaml:"tactics"`
	Heroes  []HeroDef   `yaml:"heroes"`
}

// Static is an immutable map-backed catalog.
type Static struct {
	cards   map[string]CardDef
	enemies map[string]EnemyDef
	units   map[string]UnitDef
	tiles   map[string]TileDef
	skills  map[string]SkillDef
	tactics map[string]TacticDef
	heroes  map[string]HeroDef
}

var _ Lookup = (*Static)(nil)

// Base returns the embedded base-game catalog.
func Base() (*Static, error) {
	return LoadYAML(bytes.NewReader(baseYAML))
}

// LoadYAML parses and validates a catalog document.
func LoadYAML(r io.Reader) (*Static, error) {
	var file catalogFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return build(file)
}

func build(file catalogFile) (*Static, error) {
	s := &Static{
		cards:   make(map[string]CardDef, len(file.Cards)),
		enemies: make(map[string]EnemyDef, len(file.Enemies)),
		units:   make(map[string]UnitDef, len(file.Units)),
		tiles:   make(map[string]TileDef, len(file.Tiles)),
		skills:  make(map[string]SkillDef, len(file.Skills)),
		tactics: make(map[string]TacticDef, len(file.Tactics)),
		heroes:  make(map[string]HeroDef, len(file.Heroes)),
	}
	for _, c := range file.Cards {
		if err := put(s.cards, "card", c.ID, c); err != nil {
			return nil, err
		}
		if err := validateEffect(c.Basic, "card "+c.ID+" basic"); err != nil {
			return nil, err
		}
		if err := validateEffect(c.Powered, "card "+c.ID+" powered"); err != nil {
			return nil, err
		}
	}
	for _, e := range file.Enemies {
		if err := put(s.enemies, "enemy", e.ID, e); err != nil {
			return nil, err
		}
	}
	for _, u := range file.Units {
		if err := put(s.units, "unit", u.ID, u); err != nil {
			return nil, err
		}
		for i, a := range u.Abilities {
			if err := validateEffect(a.Effect, fmt.Sprintf("unit %s ability %d", u.ID, i)); err != nil {
				return nil, err
			}
		}
	}
	for _, t := range file.Tiles {
		if err := put(s.tiles, "tile", t.ID, t); err != nil {
			return nil, err
		}
	}
	for _, sk := range file.Skills {
		if err := put(s.skills, "skill", sk.ID, sk); err != nil {
			return nil, err
		}
		if err := validateEffect(sk.Effect, "skill "+sk.ID); err != nil {
			return nil, err
		}
	}
	for _, tc := range file.Tactics {
		if err := put(s.tactics, "tactic", tc.ID, tc); err != nil {
			return nil, err
		}
	}
	for _, h := range file.Heroes {
		if err := put(s.heroes, "hero", h.ID, h); err != nil {
			return nil, err
		}
		for _, cardID := range h.StartingDeck {
			if _, ok := s.cards[cardID]; !ok {
				return nil, fmt.Errorf("%w: hero %s card %s", ErrUnknownReference, h.ID, cardID)
			}
		}
		for _, skillID := range h.Skills {
			if _, ok := s.skills[skillID]; !ok {
				return nil, fmt.Errorf("%w: hero %s skill %s", ErrUnknownReference, h.ID, skillID)
			}
		}
	}
	return s, nil
}

func put[T any](m map[string]T, kind, id string, def T) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("%w: %s", ErrIDRequired, kind)
	}
	if _, exists := m[id]; exists {
		return fmt.Errorf("%w: %s %s", ErrDuplicateID, kind, id)
	}
	m[id] = def
	return nil
}

// validateEffect checks combinator shape; leaves are interpreted later.
func validateEffect(e game.Effect, where string) error {
	switch e.Kind {
	case "":
		return nil
	case game.EffectCompound, game.EffectChoice:
		if len(e.Effects) == 0 {
			return fmt.Errorf("%s: %s requires effects", where, e.Kind)
		}
		for i, child := range e.Effects {
			if err := validateEffect(child, fmt.Sprintf("%s.%d", where, i)); err != nil {
				return err
			}
		}
	case game.EffectConditional:
		if e.Condition == nil || e.Then == nil {
			return fmt.Errorf("%s: conditional requires condition and then", where)
		}
		if err := validateEffect(*e.Then, where+".then"); err != nil {
			return err
		}
		if e.Else != nil {
			return validateEffect(*e.Else, where+".else")
		}
	case game.EffectScaling:
		if e.Scaling == nil || e.Then == nil {
			return fmt.Errorf("%s: scaling requires scaling and then", where)
		}
		return validateEffect(*e.Then, where+".then")
	case game.EffectCostGated:
		if e.Cost == nil || e.Then == nil {
			return fmt.Errorf("%s: cost_gated requires cost and then", where)
		}
		if err := validateEffect(*e.Cost, where+".cost"); err != nil {
			return err
		}
		return validateEffect(*e.Then, where+".then")
	case game.EffectApplyModifier:
		if e.Modifier == nil {
			return fmt.Errorf("%s: apply_modifier requires modifier", where)
		}
	}
	return nil
}

// Card implements Lookup.
func (s *Static) Card(id string) (CardDef, bool) {
	c, ok := s.cards[id]
	return c, ok
}

// Enemy implements Lookup.
func (s *Static) Enemy(id string) (EnemyDef, bool) {
	e, ok := s.enemies[id]
	return e, ok
}

// Unit implements Lookup.
func (s *Static) Unit(id string) (UnitDef, bool) {
	u, ok := s.units[id]
	return u, ok
}

// Tile implements Lookup.
func (s *Static) Tile(id string) (TileDef, bool) {
	t, ok := s.tiles[id]
	return t, ok
}

// Skill implements Lookup.
func (s *Static) Skill(id string) (SkillDef, bool) {
	sk, ok := s.skills[id]
	return sk, ok
}

// Tactic implements Lookup.
func (s *Static) Tactic(id string) (TacticDef, bool) {
	t, ok := s.tactics[id]
	return t, ok
}

// Hero implements Lookup.
func (s *Static) Hero(id string) (HeroDef, bool) {
	h, ok := s.heroes[id]
	return h, ok
}

// TacticsFor lists tactics for a time of day ordered by number.
func (s *Static) TacticsFor(tod game.TimeOfDay) []TacticDef {
	var out []TacticDef
	for _, t := range s.tactics {
		if t.Time == tod {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

// EnemiesOfColor lists enemy ids of a pile color in id order.
func (s *Static) EnemiesOfColor(color EnemyColor) []string {
	var out []string
	for id, e := range s.enemies {
		if e.Color == color {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

// TileIDs lists tile ids with the given prefix in id order.
func (s *Static) TileIDs(prefix string) []string {
	var out []string
	for id := range s.tiles {
		if strings.HasPrefix(id, prefix) {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

// UnitIDs lists unit ids in id order.
func (s *Static) UnitIDs() []string {
	out := make([]string, 0, len(s.units))
	for id := range s.units {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// CardIDs lists card ids of a kind in id order.
func (s *Static) CardIDs(kind game.CardKind) []string {
	var out []string
	for id, c := range s.cards {
		if c.Kind == kind {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}
