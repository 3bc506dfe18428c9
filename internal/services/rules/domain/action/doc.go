// Package action defines the closed set of player actions the rules engine
// accepts.
//
// Every variant implements Action and carries only the fields its handler
// reads. Envelope is the wire form used by journals and the CLI: a type tag
// plus a JSON payload decoded through the registry in this package.
package action
