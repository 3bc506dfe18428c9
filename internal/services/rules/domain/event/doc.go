// Package event defines the observational events the rules engine emits.
//
// Events describe facts that already happened to a state. They are ordered
// per processed action and are never fed back into the engine as input.
package event
