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

func (v *Validator) effectEnv(playerID string, kind game.SourceKind, id, targetEnemy string) effect.Env {
	return effect.Env{
		Content:     v.content,
		PlayerID:    playerID,
		Source:      game.ChoiceSource{Kind: kind, ID: id},
		TargetEnemy: targetEnemy,
	}
}

func cardInHand(s game.State, playerID, cardID string) Verdict {
	p, _ := s.Player(playerID)
	if !game.Contains(p.Hand, cardID) {
		return reject(apperrors.CodeCardNotInHand, "CardID", cardID)
	}
	return Valid
}

// playable returns the definition of a card that can be played at all.
// Wounds only ever sit in hand.
func (v *Validator) playable(cardID string) (content.CardDef, Verdict) {
	def, ok := v.content.Card(cardID)
	if !ok || def.Kind == game.CardWound {
		return def, reject(apperrors.CodeCardNotPlayable, "CardID", cardID)
	}
	return def, Valid
}

func (v *Validator) cardPlayable(_ game.State, _ string, a action.PlayCard) Verdict {
	_, verdict := v.playable(a.CardID)
	return verdict
}

func manaProvided(_ game.State, _ string, a action.PlayCard) Verdict {
	if !a.Powered {
		return Valid
	}
	if a.Mana == nil {
		return reject(apperrors.CodeManaRequired, "CardID", a.CardID)
	}
	if !a.Mana.Color.Valid() || (a.Mana.FromCrystal && !a.Mana.Color.IsBasic()) {
		return reject(apperrors.CodeInvalidManaColor, "Color", string(a.Mana.Color))
	}
	return Valid
}

func (v *Validator) manaPowersCard(s game.State, _ string, a action.PlayCard) Verdict {
	if !a.Powered {
		return Valid
	}
	def, _ := v.content.Card(a.CardID)
	if !command.ManaPowers(s.TimeOfDay, def.Color, a.Mana.Color) {
		return reject(apperrors.CodeManaColorMismatch, "Color", string(a.Mana.Color), "CardID", a.CardID)
	}
	return Valid
}

func manaHeld(s game.State, playerID string, a action.PlayCard) Verdict {
	if !a.Powered {
		return Valid
	}
	p, _ := s.Player(playerID)
	if a.Mana.FromCrystal {
		if p.Crystals.Get(a.Mana.Color) == 0 {
			return reject(apperrors.CodeNoCrystal, "Color", string(a.Mana.Color))
		}
		return Valid
	}
	if !game.Contains(p.ManaTokens, a.Mana.Color) {
		return reject(apperrors.CodeManaUnavailable, "Color", string(a.Mana.Color))
	}
	return Valid
}

// cardResolvable checks the chosen effect against the state the play would
// leave before resolving: card out of hand and mana spent.
func (v *Validator) cardResolvable(s game.State, playerID string, a action.PlayCard) Verdict {
	def, _ := v.content.Card(a.CardID)
	p, _ := s.Player(playerID)
	p.Hand, _ = game.RemoveFirst(p.Hand, a.CardID)
	body := def.Basic
	if a.Powered {
		body = def.Powered
		if a.Mana.FromCrystal {
			p.Crystals = p.Crystals.With(a.Mana.Color, p.Crystals.Get(a.Mana.Color)-1)
		} else {
			p.ManaTokens, _ = game.RemoveFirst(p.ManaTokens, a.Mana.Color)
		}
	}
	env := v.effectEnv(playerID, game.SourceCard, a.CardID, a.TargetEnemy)
	if !effect.Resolvable(env, s.WithPlayer(p), body) {
		return reject(apperrors.CodeEffectNotResolvable, "SourceID", a.CardID)
	}
	return Valid
}

func (v *Validator) sidewaysPlayable(_ game.State, _ string, a action.PlayCardSideways) Verdict {
	_, verdict := v.playable(a.CardID)
	return verdict
}

// sidewaysResource admits a resource only when gaining it does something now:
// attack and block need the matching combat phase.
func (v *Validator) sidewaysResource(s game.State, playerID string, a action.PlayCardSideways) Verdict {
	def, _ := v.content.Card(a.CardID)
	leaf, ok := command.SidewaysEffect(a.Resource, command.SidewaysAmount(s, playerID, def))
	if !ok || !effect.Resolvable(v.effectEnv(playerID, game.SourceCard, a.CardID, ""), s, leaf) {
		return reject(apperrors.CodeInvalidResource, "Resource", string(a.Resource))
	}
	return Valid
}

func dieAvailable(s game.State, _ string, a action.UseSourceDie) Verdict {
	die, _, ok := s.SourceDie(a.DieID)
	switch {
	case !ok:
		return reject(apperrors.CodeDieNotFound, "DieID", a.DieID)
	case die.TakenBy != "":
		return reject(apperrors.CodeDieTaken, "DieID", a.DieID)
	case die.Depleted(s.TimeOfDay):
		return reject(apperrors.CodeDieDepleted, "DieID", a.DieID)
	}
	return Valid
}

func diceLimit(s game.State, playerID string, _ action.Action) Verdict {
	p, _ := s.Player(playerID)
	if p.Turn.DiceUsed >= command.DiceAllowed(s, playerID) {
		return reject(apperrors.CodeDiceLimitReached, "Count", strconv.Itoa(p.Turn.DiceUsed))
	}
	return Valid
}

// dieColor requires a basic stand-in color for gold dice and no other color
// for the rest.
func dieColor(s game.State, _ string, a action.UseSourceDie) Verdict {
	die, _, _ := s.SourceDie(a.DieID)
	if die.Color == game.ColorGold {
		if !a.Color.IsBasic() {
			return reject(apperrors.CodeInvalidManaColor, "Color", string(a.Color))
		}
		return Valid
	}
	if a.Color != "" && a.Color != die.Color {
		return reject(apperrors.CodeInvalidManaColor, "Color", string(a.Color))
	}
	return Valid
}

func crystalHeld(s game.State, playerID string, a action.ConvertCrystal) Verdict {
	if !a.Color.IsBasic() {
		return reject(apperrors.CodeInvalidManaColor, "Color", string(a.Color))
	}
	if p, _ := s.Player(playerID); p.Crystals.Get(a.Color) == 0 {
		return reject(apperrors.CodeNoCrystal, "Color", string(a.Color))
	}
	return Valid
}
