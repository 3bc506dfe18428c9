package command

import (
	"github.com/louisbranch/manaforge/internal/services/rules/domain/action"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/effect"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/game"
)

// resolveChoice resumes the suspended effect. A choice opened by a tactic
// holds the tactics phase until it is resolved.
func resolveChoice(env Env, s game.State, a action.ResolveChoice) (Result, error) {
	out, err := effect.ResumeChoice(effect.Env{Content: env.Content, PlayerID: env.PlayerID}, s, a.Index)
	if err != nil {
		return Result{}, err
	}
	res := Result{}
	res.absorb(out)
	if res.State.Phase == game.PhaseTactics {
		return res, settleTactic(env, &res)
	}
	res.Reversible = !out.Revealed
	return res, nil
}
