package effect

import (
	"github.com/louisbranch/manaforge/internal/services/rules/domain/game"
)

// Capability is a bit set of things an effect may do.
type Capability uint32

const (
	CapMove Capability = 1 << iota
	CapInfluence
	CapAttack
	CapRanged
	CapSiege
	CapBlock
	CapHealing
	CapDraw
	CapMana
	CapModifier
	CapTargetsEnemy
	CapFame
	CapWound
)

// Has reports whether every bit of want is set.
func (c Capability) Has(want Capability) bool {
	return c&want == want
}

// Any reports whether any bit of want is set.
func (c Capability) Any(want Capability) bool {
	return c&want != 0
}

type leafFunc func(r *run, e game.Effect) (bool, error)

// kindSpec describes one effect kind. Leaves set leaf and caps; combinators
// set children. Execution and detection both read children.
type kindSpec struct {
	leaf     leafFunc
	caps     func(game.Effect) Capability
	children func(game.Effect) []game.Effect
}

func fixed(c Capability) func(game.Effect) Capability {
	return func(game.Effect) Capability { return c }
}

func optional(es ...*game.Effect) []game.Effect {
	var out []game.Effect
	for _, e := range es {
		if e != nil {
			out = append(out, *e)
		}
	}
	return out
}

var kinds map[game.EffectKind]kindSpec

func init() {
	kinds = map[game.EffectKind]kindSpec{
		game.EffectNoop:             {leaf: leafNoop, caps: fixed(0)},
		game.EffectGainMove:         {leaf: leafGainMove, caps: fixed(CapMove)},
		game.EffectGainInfluence:    {leaf: leafGainInfluence, caps: fixed(CapInfluence)},
		game.EffectGainAttack:       {leaf: leafGainAttack, caps: attackCaps},
		game.EffectGainBlock:        {leaf: leafGainBlock, caps: fixed(CapBlock)},
		game.EffectGainHealing:      {leaf: leafGainHealing, caps: fixed(CapHealing)},
		game.EffectGainMana:         {leaf: leafGainMana, caps: fixed(CapMana)},
		game.EffectGainCrystal:      {leaf: leafGainCrystal, caps: fixed(CapMana)},
		game.EffectDrawCards:        {leaf: leafDrawCards, caps: fixed(CapDraw)},
		game.EffectGainFame:         {leaf: leafGainFame, caps: fixed(CapFame)},
		game.EffectChangeReputation: {leaf: leafChangeReputation, caps: fixed(0)},
		game.EffectApplyModifier:    {leaf: leafApplyModifier, caps: modifierCaps},
		game.EffectTakeWound:        {leaf: leafTakeWound, caps: fixed(CapWound)},
		game.EffectPayMana:          {leaf: leafPayMana, caps: fixed(0)},

		game.EffectCompound: {children: func(e game.Effect) []game.Effect { return e.Effects }},
		game.EffectChoice:   {children: func(e game.Effect) []game.Effect { return e.Effects }},
		game.EffectConditional: {children: func(e game.Effect) []game.Effect {
			return optional(e.Then, e.Else)
		}},
		game.EffectScaling: {children: func(e game.Effect) []game.Effect { return optional(e.Then) }},
		game.EffectCostGated: {children: func(e game.Effect) []game.Effect {
			return optional(e.Cost, e.Then)
		}},
	}
}

func attackCaps(e game.Effect) Capability {
	switch e.AttackKind {
	case game.AttackRanged:
		return CapAttack | CapRanged
	case game.AttackSiege:
		return CapAttack | CapSiege
	default:
		return CapAttack
	}
}

func modifierCaps(e game.Effect) Capability {
	if e.Modifier != nil && e.Modifier.Scope == game.ScopeOneEnemy {
		return CapModifier | CapTargetsEnemy
	}
	return CapModifier
}

// Kinds lists every effect kind the interpreter knows.
func Kinds() []game.EffectKind {
	out := make([]game.EffectKind, 0, len(kinds))
	for k := range kinds {
		out = append(out, k)
	}
	return out
}

// Capabilities returns every capability e could exercise on some branch.
// Unknown kinds contribute nothing.
func Capabilities(e game.Effect) Capability {
	spec, ok := kinds[e.Kind]
	if !ok {
		return 0
	}
	if spec.children == nil {
		return spec.caps(e)
	}
	var out Capability
	for _, child := range spec.children(e) {
		out |= Capabilities(child)
	}
	return out
}

// Detect reports whether e could exercise capability c.
func Detect(e game.Effect, c Capability) bool {
	return Capabilities(e).Has(c)
}
