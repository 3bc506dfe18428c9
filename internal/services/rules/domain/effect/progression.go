package effect

import (
	"fmt"

	"github.com/louisbranch/manaforge/internal/services/rules/domain/content"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/event"
	"github.com/louisbranch/manaforge/internal/services/rules/domain/game"
)

// GainFame adds fame and applies every level reward crossed on the way.
// Taking an advanced action reveals the top of that deck, so Revealed is set
// when one is granted.
func GainFame(lookup content.Lookup, s game.State, playerID string, amount int) (Outcome, error) {
	p, err := s.MustPlayer(playerID)
	if err != nil {
		return Outcome{}, err
	}
	if amount <= 0 {
		return Outcome{State: s}, nil
	}
	var events []event.Event
	revealed := false
	p.Fame += amount
	events = append(events, event.ForPlayer(event.TypeFameGained, p.ID, event.AmountPayload{Amount: amount, Total: p.Fame}))

	target := min(game.LevelForFame(p.Fame), game.MaxLevel)
	for p.Level < target {
		p.Level++
		reward := game.RewardForLevel(p.Level)
		p.Armor += reward.Armor
		p.HandLimit += reward.HandLimit
		p.CommandTokens += reward.CommandTokens
		payload := event.LevelGainedPayload{Level: p.Level}
		if reward.Skill {
			skillID, err := nextSkill(lookup, p)
			if err != nil {
				return Outcome{}, err
			}
			if skillID != "" {
				p.Skills = game.Append(p.Skills, skillID)
				payload.SkillID = skillID
			}
		}
		if reward.AdvancedAction && len(s.AdvancedDeck) > 0 {
			cardID := s.AdvancedDeck[0]
			s.AdvancedDeck = game.Append(s.AdvancedDeck[1:])
			p.Discard = game.Append(p.Discard, cardID)
			payload.CardID = cardID
			revealed = true
		}
		events = append(events, event.ForPlayer(event.TypeLevelGained, p.ID, payload))
	}
	return Outcome{State: s.WithPlayer(p), Events: events, Revealed: revealed}, nil
}

func nextSkill(lookup content.Lookup, p game.Player) (string, error) {
	hero, ok := lookup.Hero(p.HeroID)
	if !ok {
		return "", fmt.Errorf("%w: hero %s", ErrContentMissing, p.HeroID)
	}
	for _, id := range hero.Skills {
		if !game.Contains(p.Skills, id) {
			return id, nil
		}
	}
	return "", nil
}
