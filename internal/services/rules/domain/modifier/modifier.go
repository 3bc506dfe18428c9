package modifier

import (
	"github.com/louisbranch/manaforge/internal/services/rules/domain/game"
)

// Context is the subject a query is evaluated for. EnemyInstanceID is empty
// for player-context queries.
type Context struct {
	PlayerID        string
	EnemyInstanceID string
	// ArcaneImmune makes enemy-scoped modifiers inapplicable.
	ArcaneImmune bool
}

// ForPlayer returns a player-context query subject.
func ForPlayer(playerID string) Context {
	return Context{PlayerID: playerID}
}

// ForEnemy returns an enemy-context query subject within playerID's fight.
func ForEnemy(playerID, enemyInstanceID string, arcaneImmune bool) Context {
	return Context{PlayerID: playerID, EnemyInstanceID: enemyInstanceID, ArcaneImmune: arcaneImmune}
}

// Applies reports whether m's scope covers ctx.
func Applies(m game.ActiveModifier, ctx Context) bool {
	switch m.Scope.Kind {
	case game.ScopeSelf:
		return ctx.EnemyInstanceID == "" && m.Source.PlayerID == ctx.PlayerID
	case game.ScopeAllPlayers:
		return ctx.EnemyInstanceID == ""
	case game.ScopeOtherPlayers:
		return ctx.EnemyInstanceID == "" && m.Source.PlayerID != ctx.PlayerID
	case game.ScopeOneEnemy:
		return ctx.EnemyInstanceID != "" && !ctx.ArcaneImmune &&
			m.Scope.EnemyInstanceID == ctx.EnemyInstanceID
	case game.ScopeAllEnemies:
		return ctx.EnemyInstanceID != "" && !ctx.ArcaneImmune &&
			m.Source.PlayerID == ctx.PlayerID
	default:
		return false
	}
}

// Matching returns the modifiers of kind whose scope covers ctx and whose
// effect passes filter (nil accepts all).
func Matching(mods []game.ActiveModifier, ctx Context, kind game.ModifierKind, filter func(game.ModifierEffect) bool) []game.ActiveModifier {
	var out []game.ActiveModifier
	for _, m := range mods {
		if m.Effect.Kind != kind || !Applies(m, ctx) {
			continue
		}
		if filter != nil && !filter(m.Effect) {
			continue
		}
		out = append(out, m)
	}
	return out
}

// Max returns the largest Amount among matches and whether any matched.
func Max(matches []game.ActiveModifier) (int, bool) {
	best, found := 0, false
	for _, m := range matches {
		if !found || m.Effect.Amount > best {
			best, found = m.Effect.Amount, true
		}
	}
	return best, found
}

// Min returns the smallest Amount among matches and whether any matched.
func Min(matches []game.ActiveModifier) (int, bool) {
	best, found := 0, false
	for _, m := range matches {
		if !found || m.Effect.Amount < best {
			best, found = m.Effect.Amount, true
		}
	}
	return best, found
}

// Add instantiates a template as an active modifier on s. targetEnemy binds
// one_enemy scopes.
func Add(s game.State, source game.Source, tmpl game.ModifierTemplate, targetEnemy string) (game.ActiveModifier, game.State) {
	id, s := s.NextID("mod")
	m := game.ActiveModifier{
		ID:       id,
		Source:   source,
		Duration: tmpl.Duration,
		Scope:    game.Scope{Kind: tmpl.Scope},
		Effect:   tmpl.Effect,
	}
	if tmpl.Scope == game.ScopeOneEnemy {
		m.Scope.EnemyInstanceID = targetEnemy
	}
	if tmpl.Effect.Kind == game.ModifierResourceBonus {
		m.RemainingUses = tmpl.Uses
		if m.RemainingUses <= 0 {
			m.RemainingUses = 1
		}
	}
	return m, s.WithModifiers(game.Append(s.Modifiers, m))
}

// Consume spends one charge of the modifier with id, deleting it at zero.
// Unknown ids leave s unchanged.
func Consume(s game.State, id string) (game.State, bool) {
	for i, m := range s.Modifiers {
		if m.ID != id {
			continue
		}
		if m.RemainingUses > 1 {
			m.RemainingUses--
			return s.WithModifiers(game.ReplaceAt(s.Modifiers, i, m)), true
		}
		return s.WithModifiers(game.RemoveAt(s.Modifiers, i)), true
	}
	return s, false
}

// RemoveFromSource drops every modifier created by source.
func RemoveFromSource(s game.State, source game.Source) game.State {
	var kept []game.ActiveModifier
	removed := false
	for _, m := range s.Modifiers {
		if m.Source == source {
			removed = true
			continue
		}
		kept = append(kept, m)
	}
	if !removed {
		return s
	}
	return s.WithModifiers(kept)
}
