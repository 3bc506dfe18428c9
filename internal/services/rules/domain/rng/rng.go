// Package rng provides a pure, explicitly threaded pseudo-random state.
//
// There is no hidden generator: every draw takes a State and returns the next
// State alongside the value, so a game stored to disk and reloaded continues
// with exactly the same sequence.
package rng

import "errors"

// ErrInvalidBound indicates a non-positive upper bound.
var ErrInvalidBound = errors.New("bound must be greater than zero")

// State is the serializable generator position.
type State struct {
	Seed    uint64 `json:"seed"`
	Counter uint64 `json:"counter"`
}

// New returns a generator positioned at the start of the seed's sequence.
func New(seed uint64) State {
	return State{Seed: seed}
}

// Next returns the next 64-bit value and the advanced state.
func Next(s State) (uint64, State) {
	z := s.Seed + (s.Counter+1)*0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	z ^= z >> 31
	s.Counter++
	return z, s
}

// Intn returns a value in [0, n) and the advanced state.
func Intn(s State, n int) (int, State, error) {
	if n <= 0 {
		return 0, s, ErrInvalidBound
	}
	// Rejection sampling keeps the distribution uniform for any n.
	bound := uint64(n)
	limit := ^uint64(0) - (^uint64(0) % bound)
	for {
		var v uint64
		v, s = Next(s)
		if v < limit {
			return int(v % bound), s, nil
		}
	}
}

// Shuffle returns a shuffled copy of items; the input slice is not modified.
func Shuffle[T any](s State, items []T) ([]T, State) {
	out := make([]T, len(items))
	copy(out, items)
	for i := len(out) - 1; i > 0; i-- {
		var j int
		j, s, _ = Intn(s, i+1)
		out[i], out[j] = out[j], out[i]
	}
	return out, s
}

// Pick returns one element of items chosen uniformly.
func Pick[T any](s State, items []T) (T, State, error) {
	var zero T
	if len(items) == 0 {
		return zero, s, ErrInvalidBound
	}
	idx, next, err := Intn(s, len(items))
	if err != nil {
		return zero, s, err
	}
	return items[idx], next, nil
}
