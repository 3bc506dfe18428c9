package combat

import (
	"errors"
	"fmt"

	"github.com/louisbranch/manaforge/internal/services/rules/domain/content"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/effect"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/event"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/game"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/modifier"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/rng"
)

var (
	// ErrNoCombat indicates a combat operation without an active fight.
	ErrNoCombat = errors.New("no active combat")
	// ErrEnemyNotFound indicates an unknown enemy instance.
	ErrEnemyNotFound = errors.New("combat enemy not found")
	// ErrEnemyDefeated indicates targeting an enemy already defeated.
	ErrEnemyDefeated = errors.New("combat enemy already defeated")
	// ErrUnitNotFound indicates an unknown unit instance.
	ErrUnitNotFound = errors.New("unit not found")
	// ErrPoolExceeded indicates spending more points than the pool holds.
	ErrPoolExceeded = errors.New("points exceed available pool")
	// ErrWrongPhase indicates an operation outside its combat phase.
	ErrWrongPhase = errors.New("wrong combat phase")
	// ErrAttackKind indicates melee points spent in the ranged and siege phase.
	ErrAttackKind = errors.New("attack kind not allowed in this phase")
	// ErrFortified indicates a non-siege attack on a fortified enemy.
	ErrFortified = errors.New("fortified enemy requires siege attack")
)

// SummonPile is the enemy pile summoners draw from.
const SummonPile = string(content.EnemyBrown)

// Env carries the read-only inputs of a combat operation.
type Env struct {
	Content  content.Lookup
	PlayerID string
}

// Participant is an enemy token entering a fight from the hex at Coord.
type Participant struct {
	Token  game.EnemyToken
	Origin game.EnemyOrigin
	Coord  game.Coord
}

// Outcome is the state and events a combat step produced.
type Outcome = effect.Outcome

func (env Env) enemyDef(e game.CombatEnemy) (content.EnemyDef, error) {
	def, ok := env.Content.Enemy(e.EnemyID)
	if !ok {
		return content.EnemyDef{}, fmt.Errorf("%w: enemy %s", effect.ErrContentMissing, e.EnemyID)
	}
	return def, nil
}

func active(s game.State) (game.CombatState, error) {
	if s.Combat == nil {
		return game.CombatState{}, ErrNoCombat
	}
	return *s.Combat, nil
}

func withCombat(s game.State, c game.CombatState) game.State {
	return s.WithCombat(&c)
}

func enemyEvent(t event.Type, playerID string, e game.CombatEnemy, payload any) event.Event {
	return event.Event{Type: t, PlayerID: playerID, EntityType: event.EntityEnemy, EntityID: e.InstanceID, Payload: payload}
}

// target returns the live enemy with enemyID.
func target(c game.CombatState, enemyID string) (game.CombatEnemy, error) {
	e, _, ok := c.Enemy(enemyID)
	if !ok {
		return game.CombatEnemy{}, fmt.Errorf("%w: %s", ErrEnemyNotFound, enemyID)
	}
	if e.IsDefeated {
		return game.CombatEnemy{}, fmt.Errorf("%w: %s", ErrEnemyDefeated, enemyID)
	}
	return e, nil
}

// Start opens a fight at coord. Pools and per-combat wound counts reset.
func Start(env Env, s game.State, coord game.Coord, assault bool, participants []Participant) (Outcome, error) {
	p, err := s.MustPlayer(env.PlayerID)
	if err != nil {
		return Outcome{}, err
	}
	c := game.CombatState{PlayerID: p.ID, Phase: game.CombatRangedSiege, Coord: coord, Assault: assault}
	ids := make([]string, 0, len(participants))
	for _, part := range participants {
		if _, ok := env.Content.Enemy(part.Token.EnemyID); !ok {
			return Outcome{}, fmt.Errorf("%w: enemy %s", effect.ErrContentMissing, part.Token.EnemyID)
		}
		c.Enemies = append(c.Enemies, game.CombatEnemy{
			InstanceID: part.Token.InstanceID,
			EnemyID:    part.Token.EnemyID,
			Origin:     part.Origin,
			Coord:      part.Coord,
		})
		ids = append(ids, part.Token.InstanceID)
	}
	p.Pools = game.CombatPools{}
	p.WoundsThisCombat = 0
	s = withCombat(s.WithPlayer(p), c)
	return Outcome{
		State: s,
		Events: []event.Event{event.ForPlayer(event.TypeCombatStarted, p.ID, event.CombatStartedPayload{
			Coord:   coord,
			Assault: assault,
			Enemies: ids,
		})},
	}, nil
}

// Unassigned lists enemies whose damage must be assigned before leaving the
// assign_damage phase: not defeated, not blocked, not hidden, not yet
// assigned, and with positive effective attack.
func Unassigned(lookup content.Lookup, s game.State) ([]string, error) {
	c, err := active(s)
	if err != nil {
		return nil, err
	}
	env := Env{Content: lookup, PlayerID: c.PlayerID}
	var out []string
	for _, e := range c.Enemies {
		if e.IsDefeated || e.IsBlocked || e.IsHidden || e.DamageAssigned {
			continue
		}
		def, err := env.enemyDef(e)
		if err != nil {
			return nil, err
		}
		if EffectiveAttack(def, s.Modifiers, c.PlayerID, e) > 0 {
			out = append(out, e.InstanceID)
		}
	}
	return out, nil
}

// DeclareBlock moves block points from the player's pool onto an enemy. The
// enemy is blocked once the effective block reaches the block required.
func DeclareBlock(env Env, s game.State, enemyID string, block game.ElementalPool) (Outcome, error) {
	c, err := active(s)
	if err != nil {
		return Outcome{}, err
	}
	if c.Phase != game.CombatBlock {
		return Outcome{}, fmt.Errorf("%w: %s", ErrWrongPhase, c.Phase)
	}
	e, err := target(c, enemyID)
	if err != nil {
		return Outcome{}, err
	}
	def, err := env.enemyDef(e)
	if err != nil {
		return Outcome{}, err
	}
	p, err := s.MustPlayer(env.PlayerID)
	if err != nil {
		return Outcome{}, err
	}
	rest, ok := p.Pools.Block.Sub(block)
	if !ok {
		return Outcome{}, ErrPoolExceeded
	}
	p.Pools.Block = rest
	e.PendingBlock = e.PendingBlock.Add(block)
	var events []event.Event
	required := BlockRequired(def, EffectiveAttack(def, s.Modifiers, env.PlayerID, e))
	if !e.IsBlocked && EffectiveBlock(e.PendingBlock, def.Element()) >= required {
		e.IsBlocked = true
		events = append(events, enemyEvent(event.TypeEnemyBlocked, env.PlayerID, e, event.EnemyPayload{EnemyID: e.EnemyID}))
	}
	s = withCombat(s.WithPlayer(p), c.WithEnemy(e))
	return Outcome{State: s, Events: events}, nil
}

// DeclareAttack moves attack points of kind onto an enemy. The enemy is
// defeated once the effective damage reaches its effective armor; its fame
// is awarded at once. Defeating the last enemy ends the fight.
func DeclareAttack(env Env, s game.State, enemyID string, kind game.AttackKind, attack game.ElementalPool) (Outcome, error) {
	c, err := active(s)
	if err != nil {
		return Outcome{}, err
	}
	if c.Phase != game.CombatRangedSiege && c.Phase != game.CombatAttack {
		return Outcome{}, fmt.Errorf("%w: %s", ErrWrongPhase, c.Phase)
	}
	e, err := target(c, enemyID)
	if err != nil {
		return Outcome{}, err
	}
	def, err := env.enemyDef(e)
	if err != nil {
		return Outcome{}, err
	}
	if err := CheckAttackKind(def, s.Modifiers, c, e, kind); err != nil {
		return Outcome{}, err
	}
	p, err := s.MustPlayer(env.PlayerID)
	if err != nil {
		return Outcome{}, err
	}
	rest, ok := p.Pools.Attack(kind).Sub(attack)
	if !ok {
		return Outcome{}, ErrPoolExceeded
	}
	p.Pools = p.Pools.WithAttack(kind, rest)
	e.PendingAttack = e.PendingAttack.Add(attack)
	s = s.WithPlayer(p)

	damage := EffectiveDamage(def, s.Modifiers, env.PlayerID, e, e.PendingAttack)
	if damage < EffectiveArmor(def, s.Modifiers, env.PlayerID, e) {
		return Outcome{State: withCombat(s, c.WithEnemy(e))}, nil
	}

	e.IsDefeated = true
	e.PendingAttack = game.ElementalPool{}
	c = c.WithEnemy(e)
	s = withCombat(s, c)
	events := []event.Event{enemyEvent(event.TypeEnemyDefeated, env.PlayerID, e, event.EnemyPayload{EnemyID: e.EnemyID, Fame: def.Fame})}
	revealed := false
	if e.Origin != game.OriginSummoned {
		fame, err := effect.GainFame(env.Content, s, env.PlayerID, def.Fame)
		if err != nil {
			return Outcome{}, err
		}
		s = fame.State
		events = append(events, fame.Events...)
		revealed = fame.Revealed
	}
	if c.AllDefeated() {
		end, err := finish(env, s)
		if err != nil {
			return Outcome{}, err
		}
		s = end.State
		events = append(events, end.Events...)
	}
	return Outcome{State: s, Events: events, Revealed: revealed}, nil
}

// CheckAttackKind reports whether attacks of kind may target e in the current
// phase. The ranged and siege phase admits only siege against fortified
// enemies.
func CheckAttackKind(def content.EnemyDef, mods []game.ActiveModifier, c game.CombatState, e game.CombatEnemy, kind game.AttackKind) error {
	if c.Phase != game.CombatRangedSiege {
		return nil
	}
	if kind == game.AttackMelee {
		return ErrAttackKind
	}
	if kind != game.AttackSiege && Fortified(def, mods, c.PlayerID, e, c.Assault) {
		return ErrFortified
	}
	return nil
}

// AssignDamage resolves one unblocked enemy's damage. With a unit id the
// unit absorbs up to its armor and the rest reaches the hero.
func AssignDamage(env Env, s game.State, enemyID, unitInstanceID string) (Outcome, error) {
	c, err := active(s)
	if err != nil {
		return Outcome{}, err
	}
	if c.Phase != game.CombatAssignDamage {
		return Outcome{}, fmt.Errorf("%w: %s", ErrWrongPhase, c.Phase)
	}
	e, err := target(c, enemyID)
	if err != nil {
		return Outcome{}, err
	}
	def, err := env.enemyDef(e)
	if err != nil {
		return Outcome{}, err
	}
	p, err := s.MustPlayer(env.PlayerID)
	if err != nil {
		return Outcome{}, err
	}
	damage := DamageDealt(def, EffectiveAttack(def, s.Modifiers, env.PlayerID, e))
	poison := def.HasAbility(content.AbilityPoison)
	paralyze := def.HasAbility(content.AbilityParalyze)
	var events []event.Event

	if unitInstanceID != "" {
		u, idx, ok := p.Unit(unitInstanceID)
		if !ok {
			return Outcome{}, fmt.Errorf("%w: %s", ErrUnitNotFound, unitInstanceID)
		}
		udef, ok := env.Content.Unit(u.UnitID)
		if !ok {
			return Outcome{}, fmt.Errorf("%w: unit %s", effect.ErrContentMissing, u.UnitID)
		}
		damage = max(damage-udef.Armor, 0)
		unitEvent := event.Event{PlayerID: p.ID, EntityType: event.EntityUnit, EntityID: u.InstanceID, Payload: event.UnitPayload{UnitID: u.UnitID}}
		if u.Wounded || poison || paralyze {
			p.Units = game.RemoveAt(p.Units, idx)
			unitEvent.Type = event.TypeUnitDestroyed
		} else {
			u.Wounded = true
			p.Units = game.ReplaceAt(p.Units, idx, u)
			unitEvent.Type = event.TypeUnitWounded
		}
		events = append(events, unitEvent)
	}

	// Each point of damage left after any unit absorbs it is one wound.
	wounds := max(damage, 0)
	if wounds > 0 {
		p = effect.TakeWounds(p, wounds, false)
		events = append(events, event.ForPlayer(event.TypeWoundReceived, p.ID, event.WoundPayload{Count: wounds}))
		if poison {
			p = effect.TakeWounds(p, wounds, true)
			events = append(events, event.ForPlayer(event.TypeWoundReceived, p.ID, event.WoundPayload{Count: wounds, ToDiscard: true}))
		}
		if paralyze {
			p = discardNonWounds(p)
		}
		p.WoundsThisCombat += wounds
		limit := modifier.HandLimit(s.Modifiers, p)
		if !p.KnockedOut && p.WoundsThisCombat >= limit {
			p.KnockedOut = true
			p = discardNonWounds(p)
			events = append(events, event.ForPlayer(event.TypeKnockedOut, p.ID, event.KnockedOutPayload{
				WoundsThisCombat: p.WoundsThisCombat,
				HandLimit:        limit,
			}))
		}
	}

	e.DamageAssigned = true
	events = append([]event.Event{enemyEvent(event.TypeDamageAssigned, env.PlayerID, e, event.DamageAssignedPayload{
		Damage:         DamageDealt(def, EffectiveAttack(def, s.Modifiers, env.PlayerID, e)),
		Wounds:         wounds,
		UnitInstanceID: unitInstanceID,
	})}, events...)
	s = withCombat(s.WithPlayer(p), c.WithEnemy(e))
	return Outcome{State: s, Events: events}, nil
}

func discardNonWounds(p game.Player) game.Player {
	var keep, drop []string
	for _, id := range p.Hand {
		if id == game.WoundCardID {
			keep = append(keep, id)
		} else {
			drop = append(drop, id)
		}
	}
	if len(drop) == 0 {
		return p
	}
	p.Hand = keep
	p.Discard = game.Append(p.Discard, drop...)
	return p
}

// EndPhase advances the fight to its next phase, or ends it after attack.
// Completeness of assign_damage is checked by the caller.
func EndPhase(env Env, s game.State) (Outcome, error) {
	c, err := active(s)
	if err != nil {
		return Outcome{}, err
	}
	var next game.CombatPhase
	var events []event.Event
	switch c.Phase {
	case game.CombatRangedSiege:
		next = game.CombatBlock
		c = clearPending(c)
		s, c, events, err = summon(env, s, c)
		if err != nil {
			return Outcome{}, err
		}
	case game.CombatBlock:
		next = game.CombatAssignDamage
		p, err := s.MustPlayer(env.PlayerID)
		if err != nil {
			return Outcome{}, err
		}
		p.Pools.Block = game.ElementalPool{}
		s = s.WithPlayer(p)
	case game.CombatAssignDamage:
		next = game.CombatAttack
		s, c = dismissSummoned(s, c)
	case game.CombatAttack:
		return finish(env, s)
	default:
		return Outcome{}, fmt.Errorf("%w: %s", ErrWrongPhase, c.Phase)
	}
	from := c.Phase
	c.Phase = next
	events = append([]event.Event{event.ForPlayer(event.TypeCombatPhaseChanged, env.PlayerID, event.CombatPhasePayload{
		From: from,
		To:   next,
	})}, events...)
	return Outcome{State: withCombat(s, c), Events: events}, nil
}

func clearPending(c game.CombatState) game.CombatState {
	enemies := make([]game.CombatEnemy, len(c.Enemies))
	for i, e := range c.Enemies {
		e.PendingAttack = game.ElementalPool{}
		enemies[i] = e
	}
	c.Enemies = enemies
	return c
}

// summon has every undefeated summoner hide behind an enemy drawn from the
// summon pile. The draw position comes from the state RNG.
func summon(env Env, s game.State, c game.CombatState) (game.State, game.CombatState, []event.Event, error) {
	var events []event.Event
	for _, e := range c.Enemies {
		if e.IsDefeated || e.Origin == game.OriginSummoned {
			continue
		}
		def, err := env.enemyDef(e)
		if err != nil {
			return s, c, nil, err
		}
		if !def.HasAbility(content.AbilitySummoner) {
			continue
		}
		pile := s.EnemyPiles[SummonPile]
		if len(pile) == 0 {
			continue
		}
		idx, next, err := rng.Intn(s.RNG, len(pile))
		if err != nil {
			return s, c, nil, err
		}
		s.RNG = next
		enemyID := pile[idx]
		s = s.WithEnemyPile(SummonPile, game.RemoveAt(pile, idx))
		var instanceID string
		instanceID, s = s.NextID("enemy")
		summoned := game.CombatEnemy{
			InstanceID: instanceID,
			EnemyID:    enemyID,
			Origin:     game.OriginSummoned,
			Coord:      e.Coord,
			SummonedBy: e.InstanceID,
		}
		e.IsHidden = true
		c = c.WithEnemy(e)
		c.Enemies = game.Append(c.Enemies, summoned)
		events = append(events, enemyEvent(event.TypeEnemySummoned, env.PlayerID, summoned, event.EnemyPayload{EnemyID: enemyID}))
	}
	return s, c, events, nil
}

// dismissSummoned removes summoned enemies, returning them to the summon
// pile, and reveals their summoners.
func dismissSummoned(s game.State, c game.CombatState) (game.State, game.CombatState) {
	var kept []game.CombatEnemy
	var returned []string
	for _, e := range c.Enemies {
		if e.Origin == game.OriginSummoned {
			returned = append(returned, e.EnemyID)
			continue
		}
		e.IsHidden = false
		kept = append(kept, e)
	}
	if len(returned) == 0 {
		return s, c
	}
	c.Enemies = kept
	s = s.WithEnemyPile(SummonPile, game.Append(s.EnemyPiles[SummonPile], returned...))
	return s, c
}

// finish ends the fight: defeated tokens leave the map, an assault victory
// conquers the site, combat modifiers expire and pools reset.
func finish(env Env, s game.State) (Outcome, error) {
	c, err := active(s)
	if err != nil {
		return Outcome{}, err
	}
	p, err := s.MustPlayer(env.PlayerID)
	if err != nil {
		return Outcome{}, err
	}
	victory := c.AllDefeated()
	defeated := 0
	var events []event.Event

	for _, coord := range enemyHexes(c) {
		h, ok := s.Map.Hex(coord)
		if !ok {
			continue
		}
		h = removeDefeated(h, c)
		if coord == c.Coord && victory && c.Assault && h.Site != nil && !h.Site.Conquered {
			site := *h.Site
			site.Conquered = true
			site.Owner = p.ID
			h.Site = &site
			events = append(events, event.Event{
				Type:       event.TypeSiteConquered,
				PlayerID:   p.ID,
				EntityType: event.EntityHex,
				EntityID:   h.Coord.Key(),
				Payload:    event.SiteConqueredPayload{Site: site.Kind},
			})
		}
		s = s.WithHex(h)
	}
	for _, e := range c.Enemies {
		if e.IsDefeated && e.Origin != game.OriginSummoned {
			defeated++
		}
	}

	p.Pools = game.CombatPools{}
	s = s.WithPlayer(p).WithCombat(nil)
	s, expired := modifier.Sweep(s, modifier.BoundaryCombat)
	events = append([]event.Event{event.ForPlayer(event.TypeCombatEnded, p.ID, event.CombatEndedPayload{
		Victory:  victory,
		Defeated: defeated,
	})}, events...)
	if len(expired) > 0 {
		events = append(events, event.ForPlayer(event.TypeModifiersExpired, p.ID, event.ModifiersExpiredPayload{
			Boundary: string(modifier.BoundaryCombat),
			IDs:      expired,
		}))
	}
	return Outcome{State: s, Events: events}, nil
}

// enemyHexes lists the combat hex and every hex an enemy came from, in
// first-seen order.
func enemyHexes(c game.CombatState) []game.Coord {
	coords := []game.Coord{c.Coord}
	for _, e := range c.Enemies {
		if e.Origin == game.OriginSummoned || game.Contains(coords, e.Coord) {
			continue
		}
		coords = append(coords, e.Coord)
	}
	return coords
}

func removeDefeated(h game.Hex, c game.CombatState) game.Hex {
	gone := make(map[string]bool)
	for _, e := range c.Enemies {
		if e.IsDefeated {
			gone[e.InstanceID] = true
		}
	}
	if len(gone) == 0 {
		return h
	}
	filter := func(tokens []game.EnemyToken) []game.EnemyToken {
		var out []game.EnemyToken
		for _, t := range tokens {
			if !gone[t.InstanceID] {
				out = append(out, t)
			}
		}
		return out
	}
	h.Enemies = filter(h.Enemies)
	if h.Site != nil {
		site := *h.Site
		site.Defenders = filter(site.Defenders)
		h.Site = &site
	}
	return h
}
