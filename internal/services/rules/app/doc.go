// Package app wires the rules engine to its save store, snapshot cache and
// event bus.
//
// A Service owns one process's view of its games. Actions for the same game
// are serialized in-process; the journal's sequence check rejects writers in
// other processes that race past it.
package app
