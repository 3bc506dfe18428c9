// Package command applies one admitted action to a game state.
//
// Every command is a pure function of the state and the action. Execute
// records the starting state on the undo stack when the command is
// reversible and clears the stack at a checkpoint when it is not. Undo pops
// the stack and restores the recorded state exactly.
//
// Commands assume the validator pipeline already admitted the action; any
// error they return is an invariant violation.
package command
