// Package validate decides whether an action is admissible before any command
// runs.
//
// Each action type has an ordered list of rules. Lists are assembled from
// shared prefixes (game over, phase, turn ownership, pending input, combat)
// followed by the action's own checks. Evaluation stops at the first failing
// rule, so a rejection always names the most general reason. Rules never
// modify state; a rule that does not apply to the action it sees returns
// Valid.
package validate
