// Package engine is the public entry point of the rules engine.
//
// ProcessAction admits or rejects one player action against an immutable
// state, runs the matching command, and returns the successor state with the
// events it produced. Rejections are ordinary results; only invariant
// violations surface as errors.
package engine
