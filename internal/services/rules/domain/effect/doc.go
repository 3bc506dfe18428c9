// Package effect interprets card, skill, unit and tactic effect payloads.
//
// Resolution is a tree walk over the closed game.Effect vocabulary. Leaves
// change player resources; combinators sequence, branch, scale, gate on a
// cost, or suspend on a choice. A choice writes a game.PendingChoice holding
// the resolvable options plus the continuation that runs after the chosen
// branch, then returns; ResumeChoice re-enters the walk on that branch only.
//
// Capability detection answers what an effect could do without running it.
// Both walks read sub-effects through the same kind table, so a combinator
// cannot be added to one walk without the other.
package effect
