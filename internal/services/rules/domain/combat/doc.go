// Package combat steps the fight state machine and computes per-enemy
// effective values.
//
// Phases run ranged_siege, block, assign_damage, attack, then the fight ends.
// Effective attack, armor, block and damage are never stored: they are folded
// from the enemy definition, its combat flags and live modifier queries each
// time they are needed.
package combat
