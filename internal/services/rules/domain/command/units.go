package command

import (
	"fmt"

	"github.com/louisbranch/manaforge/internal/services/rules/domain/action"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/content"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/effect"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/event"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/game"
)

// RecruitSite reports whether units can be recruited on h.
func RecruitSite(h game.Hex) bool {
	return h.Site != nil && (h.Site.Kind == game.SiteVillage || h.Site.Kind == game.SiteMonastery)
}

func unitEvent(t event.Type, playerID string, u game.Unit) event.Event {
	return event.Event{
		Type:       t,
		PlayerID:   playerID,
		EntityType: event.EntityUnit,
		EntityID:   u.InstanceID,
		Payload:    event.UnitPayload{UnitID: u.UnitID},
	}
}

func activateUnit(env Env, s game.State, a action.ActivateUnit) (Result, error) {
	p, err := s.MustPlayer(env.PlayerID)
	if err != nil {
		return Result{}, err
	}
	u, idx, ok := p.Unit(a.UnitInstanceID)
	if !ok {
		return Result{}, fmt.Errorf("%w: unit %s", ErrInvalidTarget, a.UnitInstanceID)
	}
	def, ok := env.Content.Unit(u.UnitID)
	if !ok {
		return Result{}, fmt.Errorf("%w: unit %s", effect.ErrContentMissing, u.UnitID)
	}
	if a.AbilityIndex < 0 || a.AbilityIndex >= len(def.Abilities) {
		return Result{}, fmt.Errorf("%w: ability %d of %s", ErrInvalidTarget, a.AbilityIndex, def.ID)
	}
	ability := def.Abilities[a.AbilityIndex]

	res := Result{Events: []event.Event{unitEvent(event.TypeUnitActivated, p.ID, u)}}
	if ability.ManaCost != "" {
		if p, ok = effect.SpendMana(s, p, ability.ManaCost); !ok {
			return Result{}, fmt.Errorf("%w: no %s mana for %s", ErrInvalidTarget, ability.ManaCost, def.ID)
		}
		res.emit(event.ForPlayer(event.TypeManaPaid, p.ID, event.ManaPayload{Color: ability.ManaCost}))
	}
	u.Ready = false
	p.Units = game.ReplaceAt(p.Units, idx, u)

	out, err := effect.Resolve(env.effectEnv(game.SourceUnit, u.InstanceID, a.TargetEnemy), s.WithPlayer(p), ability.Effect)
	if err != nil {
		return Result{}, err
	}
	res.absorb(out)
	res.Reversible = !out.Revealed
	return res, nil
}

func recruitUnit(env Env, s game.State, a action.RecruitUnit) (Result, error) {
	p, err := s.MustPlayer(env.PlayerID)
	if err != nil {
		return Result{}, err
	}
	def, ok := env.Content.Unit(a.UnitID)
	if !ok {
		return Result{}, fmt.Errorf("%w: unit %s", effect.ErrContentMissing, a.UnitID)
	}
	offer, ok := game.RemoveFirst(s.UnitOffer, a.UnitID)
	if !ok {
		return Result{}, fmt.Errorf("%w: unit %s not offered", ErrInvalidTarget, a.UnitID)
	}
	s.UnitOffer = offer
	id, s := s.NextID("unit")
	u := game.Unit{InstanceID: id, UnitID: def.ID, Ready: true}
	p.Turn.InfluencePoints -= def.Cost
	p.Units = game.Append(p.Units, u)
	return Result{
		State:      s.WithPlayer(p),
		Events:     []event.Event{unitEvent(event.TypeUnitRecruited, p.ID, u)},
		Reversible: true,
	}, nil
}

// SkillUsed reports whether playerID already used def within its usage window.
func SkillUsed(p game.Player, def content.SkillDef) bool {
	if def.Usage == content.SkillOncePerRound {
		return game.Contains(p.SkillsUsedThisRound, def.ID)
	}
	return game.Contains(p.SkillsUsedThisTurn, def.ID)
}

func useSkill(env Env, s game.State, a action.UseSkill) (Result, error) {
	p, err := s.MustPlayer(env.PlayerID)
	if err != nil {
		return Result{}, err
	}
	def, ok := env.Content.Skill(a.SkillID)
	if !ok {
		return Result{}, fmt.Errorf("%w: skill %s", effect.ErrContentMissing, a.SkillID)
	}
	if def.Usage == content.SkillOncePerRound {
		p.SkillsUsedThisRound = game.Append(p.SkillsUsedThisRound, def.ID)
	} else {
		p.SkillsUsedThisTurn = game.Append(p.SkillsUsedThisTurn, def.ID)
	}
	res := Result{Events: []event.Event{event.ForPlayer(event.TypeSkillUsed, p.ID, event.SkillPayload{SkillID: def.ID})}}
	out, err := effect.Resolve(env.effectEnv(game.SourceSkill, def.ID, a.TargetEnemy), s.WithPlayer(p), def.Effect)
	if err != nil {
		return Result{}, err
	}
	res.absorb(out)
	res.Reversible = !out.Revealed
	return res, nil
}
