// Package game defines the serializable game state value and the data
// vocabulary shared by the rules packages.
//
// State is treated as immutable: every transition builds a successor through
// the copy-on-write helpers in this package, which copy only the branch that
// changes and keep untouched slices and maps identity-stable. Nothing in this
// package holds function values, so a State round-trips through JSON intact.
package game
