package action

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrTypeRequired indicates an envelope without a type.
	ErrTypeRequired = errors.New("action type is required")
	// ErrTypeUnknown indicates an unregistered action type.
	ErrTypeUnknown = errors.New("action type is not registered")
	// ErrPayloadInvalid indicates payload JSON that does not decode.
	ErrPayloadInvalid = errors.New("action payload json must be valid")
)

// Envelope is the serialized form of an action.
type Envelope struct {
	Type        Type            `json:"type"`
	PayloadJSON json.RawMessage `json:"payload,omitempty"`
}

type decoder func([]byte) (Action, error)

func decodeInto[T Action]() decoder {
	return func(data []byte) (Action, error) {
		var v T
		if len(data) > 0 {
			if err := json.Unmarshal(data, &v); err != nil {
				return nil, err
			}
		}
		return v, nil
	}
}

var registry = map[Type]decoder{
	TypeMove:                  decodeInto[Move](),
	TypeExplore:               decodeInto[Explore](),
	TypeChallenge:             decodeInto[Challenge](),
	TypePlayCard:              decodeInto[PlayCard](),
	TypePlayCardSideways:      decodeInto[PlayCardSideways](),
	TypeUseSourceDie:          decodeInto[UseSourceDie](),
	TypeConvertCrystal:        decodeInto[ConvertCrystal](),
	TypeDeclareBlock:          decodeInto[DeclareBlock](),
	TypeDeclareAttack:         decodeInto[DeclareAttack](),
	TypeAssignDamage:          decodeInto[AssignDamage](),
	TypeEndCombatPhase:        decodeInto[EndCombatPhase](),
	TypeActivateUnit:          decodeInto[ActivateUnit](),
	TypeRecruitUnit:           decodeInto[RecruitUnit](),
	TypeUseSkill:              decodeInto[UseSkill](),
	TypeResolveChoice:         decodeInto[ResolveChoice](),
	TypeResolveTacticDecision: decodeInto[ResolveTacticDecision](),
	TypeSelectTactic:          decodeInto[SelectTactic](),
	TypeAnnounceEndOfRound:    decodeInto[AnnounceEndOfRound](),
	TypeEndTurn:               decodeInto[EndTurn](),
	TypeUndo:                  decodeInto[Undo](),
}

// Types returns every registered action type in sorted order.
func Types() []Type {
	out := make([]Type, 0, len(registry))
	for t := range registry {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Encode wraps an action in its envelope.
func Encode(a Action) (Envelope, error) {
	payload, err := json.Marshal(a)
	if err != nil {
		return Envelope{}, fmt.Errorf("encode %s: %w", a.Type(), err)
	}
	return Envelope{Type: a.Type(), PayloadJSON: payload}, nil
}

// Decode unwraps an envelope into its concrete action.
func Decode(env Envelope) (Action, error) {
	t := Type(strings.TrimSpace(string(env.Type)))
	if t == "" {
		return nil, ErrTypeRequired
	}
	dec, ok := registry[t]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTypeUnknown, t)
	}
	a, err := dec(env.PayloadJSON)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrPayloadInvalid, t, err)
	}
	return a, nil
}
