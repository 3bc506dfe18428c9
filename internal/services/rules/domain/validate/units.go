package validate

import (
	"strconv"

	apperrors "github.com/louisbranch/manaforge/internal/platform/errors"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/action"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/command"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/content"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/effect"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/game"
)

func unitReady(s game.State, playerID string, a action.ActivateUnit) Verdict {
	p, _ := s.Player(playerID)
	u, _, ok := p.Unit(a.UnitInstanceID)
	if !ok {
		return reject(apperrors.CodeUnitNotFound, "UnitID", a.UnitInstanceID)
	}
	if !u.Ready || u.Wounded {
		return reject(apperrors.CodeUnitNotReady, "UnitID", a.UnitInstanceID)
	}
	return Valid
}

func (v *Validator) ability(s game.State, playerID string, a action.ActivateUnit) (game.Unit, content.UnitAbility, bool) {
	p, _ := s.Player(playerID)
	u, _, _ := p.Unit(a.UnitInstanceID)
	def, ok := v.content.Unit(u.UnitID)
	if !ok || a.AbilityIndex < 0 || a.AbilityIndex >= len(def.Abilities) {
		return u, content.UnitAbility{}, false
	}
	return u, def.Abilities[a.AbilityIndex], true
}

func (v *Validator) unitAbility(s game.State, playerID string, a action.ActivateUnit) Verdict {
	if _, _, ok := v.ability(s, playerID, a); !ok {
		return reject(apperrors.CodeUnitAbilityInvalid, "UnitID", a.UnitInstanceID, "Index", strconv.Itoa(a.AbilityIndex))
	}
	return Valid
}

func (v *Validator) unitManaCost(s game.State, playerID string, a action.ActivateUnit) Verdict {
	_, ab, _ := v.ability(s, playerID, a)
	if ab.ManaCost == "" {
		return Valid
	}
	p, _ := s.Player(playerID)
	if _, ok := effect.SpendMana(s, p, ab.ManaCost); !ok {
		return reject(apperrors.CodeManaUnavailable, "Color", string(ab.ManaCost))
	}
	return Valid
}

// unitResolvable checks the ability against the state after its mana is
// spent and the unit is exhausted.
func (v *Validator) unitResolvable(s game.State, playerID string, a action.ActivateUnit) Verdict {
	u, ab, _ := v.ability(s, playerID, a)
	p, _ := s.Player(playerID)
	if ab.ManaCost != "" {
		p, _ = effect.SpendMana(s, p, ab.ManaCost)
	}
	_, idx, _ := p.Unit(u.InstanceID)
	u.Ready = false
	p.Units = game.ReplaceAt(p.Units, idx, u)
	env := v.effectEnv(playerID, game.SourceUnit, u.InstanceID, a.TargetEnemy)
	if !effect.Resolvable(env, s.WithPlayer(p), ab.Effect) {
		return reject(apperrors.CodeEffectNotResolvable, "SourceID", u.UnitID)
	}
	return Valid
}

func recruitSite(s game.State, playerID string, _ action.Action) Verdict {
	p, _ := s.Player(playerID)
	if h, ok := s.Map.Hex(p.Position); !ok || !command.RecruitSite(h) {
		return reject(apperrors.CodeRecruitSiteRequired)
	}
	return Valid
}

func unitOffered(s game.State, _ string, a action.RecruitUnit) Verdict {
	if !game.Contains(s.UnitOffer, a.UnitID) {
		return reject(apperrors.CodeUnitNotOffered, "UnitID", a.UnitID)
	}
	return Valid
}

func commandLimit(s game.State, playerID string, _ action.Action) Verdict {
	if p, _ := s.Player(playerID); len(p.Units) >= p.CommandTokens {
		return reject(apperrors.CodeCommandLimit)
	}
	return Valid
}

func (v *Validator) recruitAffordable(s game.State, playerID string, a action.RecruitUnit) Verdict {
	def, ok := v.content.Unit(a.UnitID)
	if !ok {
		return Valid
	}
	p, _ := s.Player(playerID)
	if p.Turn.InfluencePoints < def.Cost {
		return reject(apperrors.CodeInsufficientInfluence,
			"Cost", strconv.Itoa(def.Cost),
			"Available", strconv.Itoa(p.Turn.InfluencePoints))
	}
	return Valid
}

func skillOwned(s game.State, playerID string, a action.UseSkill) Verdict {
	if p, _ := s.Player(playerID); !game.Contains(p.Skills, a.SkillID) {
		return reject(apperrors.CodeSkillNotOwned, "SkillID", a.SkillID)
	}
	return Valid
}

func (v *Validator) skillUnused(s game.State, playerID string, a action.UseSkill) Verdict {
	def, ok := v.content.Skill(a.SkillID)
	if !ok {
		return Valid
	}
	if p, _ := s.Player(playerID); command.SkillUsed(p, def) {
		return reject(apperrors.CodeSkillAlreadyUsed, "SkillID", a.SkillID)
	}
	return Valid
}

func (v *Validator) skillResolvable(s game.State, playerID string, a action.UseSkill) Verdict {
	def, ok := v.content.Skill(a.SkillID)
	if !ok {
		return Valid
	}
	env := v.effectEnv(playerID, game.SourceSkill, def.ID, a.TargetEnemy)
	if !effect.Resolvable(env, s, def.Effect) {
		return reject(apperrors.CodeEffectNotResolvable, "SourceID", def.ID)
	}
	return Valid
}
