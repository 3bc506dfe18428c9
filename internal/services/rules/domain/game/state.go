package game

import (
	"errors"
	"fmt"

	"github.com/louisbranch/manaforge/internal/services/rules/domain/rng"
)

// ErrPlayerNotFound indicates a referenced player is missing from state.
var ErrPlayerNotFound = errors.New("player not found")

// SourceDie is one die of the shared mana source.
type SourceDie struct {
	ID      string `json:"id"`
	Color   Color  `json:"color"`
	TakenBy string `json:"taken_by,omitempty"`
}

// Depleted reports whether the die cannot be used at the given time of day.
func (d SourceDie) Depleted(tod TimeOfDay) bool {
	if tod == Day {
		return d.Color == ColorBlack
	}
	return d.Color == ColorGold
}

// UndoEntry is one reversible command on the undo stack. Before holds the
// state the command started from with History cleared.
type UndoEntry struct {
	PlayerID   string `json:"player_id"`
	ActionType string `json:"action_type"`
	Before     State  `json:"before"`
}

// History is the undo stack. Checkpoint names the last irreversible command
// that cleared it during the current turn.
type History struct {
	Entries    []UndoEntry `json:"entries,omitempty"`
	Checkpoint string      `json:"checkpoint,omitempty"`
}

// State is the root immutable game value.
type State struct {
	ID         string    `json:"id"`
	Round      int       `json:"round"`
	RoundLimit int       `json:"round_limit"`
	TimeOfDay  TimeOfDay `json:"time_of_day"`
	Phase      Phase     `json:"phase"`

	Players      []Player `json:"players"`
	TurnOrder    []string `json:"turn_order,omitempty"`
	TacticOrder  []string `json:"tactic_order,omitempty"`
	CurrentIndex int      `json:"current_index"`

	AvailableTactics []string               `json:"available_tactics,omitempty"`
	TacticSets       map[TimeOfDay][]string `json:"tactic_sets,omitempty"`

	Map          Map                 `json:"map"`
	TileDeck     []string            `json:"tile_deck,omitempty"`
	AdvancedDeck []string            `json:"advanced_deck,omitempty"`
	EnemyPiles   map[string][]string `json:"enemy_piles,omitempty"`
	UnitOffer    []string            `json:"unit_offer,omitempty"`
	Source       []SourceDie         `json:"source,omitempty"`

	Modifiers []ActiveModifier `json:"modifiers,omitempty"`
	Combat    *CombatState     `json:"combat,omitempty"`

	RNG            rng.State `json:"rng"`
	NextInstanceID int       `json:"next_instance_id"`

	History History `json:"history"`

	EndOfRoundAnnouncedBy string `json:"end_of_round_announced_by,omitempty"`
}

// PlayerIndex returns the seat index of a player or -1.
func (s State) PlayerIndex(id string) int {
	for i, p := range s.Players {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// Player returns a player by id.
func (s State) Player(id string) (Player, bool) {
	idx := s.PlayerIndex(id)
	if idx < 0 {
		return Player{}, false
	}
	return s.Players[idx], true
}

// MustPlayer returns a player or an invariant error.
func (s State) MustPlayer(id string) (Player, error) {
	p, ok := s.Player(id)
	if !ok {
		return Player{}, fmt.Errorf("%w: %s", ErrPlayerNotFound, id)
	}
	return p, nil
}

// WithPlayer returns a state with the player of the same id replaced.
func (s State) WithPlayer(p Player) State {
	idx := s.PlayerIndex(p.ID)
	if idx < 0 {
		return s
	}
	s.Players = ReplaceAt(s.Players, idx, p)
	return s
}

// CurrentPlayerID returns the player expected to act next.
func (s State) CurrentPlayerID() string {
	switch s.Phase {
	case PhaseTactics:
		if s.CurrentIndex >= 0 && s.CurrentIndex < len(s.TacticOrder) {
			return s.TacticOrder[s.CurrentIndex]
		}
	case PhaseTurns:
		if s.CurrentIndex >= 0 && s.CurrentIndex < len(s.TurnOrder) {
			return s.TurnOrder[s.CurrentIndex]
		}
	}
	return ""
}

// NextID allocates an instance id from the counter carried in state.
func (s State) NextID(prefix string) (string, State) {
	s.NextInstanceID++
	return fmt.Sprintf("%s-%d", prefix, s.NextInstanceID), s
}

// WithModifiers returns a state with the modifier list replaced.
func (s State) WithModifiers(mods []ActiveModifier) State {
	s.Modifiers = nilIfEmpty(mods)
	return s
}

// WithCombat returns a state with the combat replaced (nil ends the fight).
func (s State) WithCombat(c *CombatState) State {
	s.Combat = c
	return s
}

// InCombat reports whether a fight is active.
func (s State) InCombat() bool {
	return s.Combat != nil
}

// Memento returns the undo snapshot of s.
func (s State) Memento() State {
	s.History = History{}
	return s
}

// PushUndo returns a state with the entry on top of the undo stack.
func (s State) PushUndo(entry UndoEntry) State {
	s.History = History{
		Entries:    Append(s.History.Entries, entry),
		Checkpoint: s.History.Checkpoint,
	}
	return s
}

// PopUndo removes and returns the top entry.
func (s State) PopUndo() (UndoEntry, State, bool) {
	n := len(s.History.Entries)
	if n == 0 {
		return UndoEntry{}, s, false
	}
	top := s.History.Entries[n-1]
	var rest []UndoEntry
	if n > 1 {
		rest = s.History.Entries[:n-1:n-1]
	}
	s.History = History{Entries: rest, Checkpoint: s.History.Checkpoint}
	return top, s, true
}

// Checkpoint clears the undo stack at an irreversible boundary.
func (s State) Checkpoint(reason string) State {
	s.History = History{Checkpoint: reason}
	return s
}

// SourceDie returns the die with id.
func (s State) SourceDie(id string) (SourceDie, int, bool) {
	for i, d := range s.Source {
		if d.ID == id {
			return d, i, true
		}
	}
	return SourceDie{}, -1, false
}

// WithHex returns a state with one map hex replaced.
func (s State) WithHex(h Hex) State {
	s.Map = s.Map.With(h)
	return s
}

// WithEnemyPile returns a state with one enemy draw pile replaced.
func (s State) WithEnemyPile(color string, pile []string) State {
	piles := make(map[string][]string, len(s.EnemyPiles)+1)
	for k, v := range s.EnemyPiles {
		piles[k] = v
	}
	piles[color] = nilIfEmpty(pile)
	s.EnemyPiles = piles
	return s
}
