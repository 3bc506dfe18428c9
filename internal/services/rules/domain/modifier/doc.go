// Package modifier stores and queries the scoped, timed rule overrides that
// cards, skills, units and tactics create.
//
// Modifiers live on game.State as plain data. Queries filter the active list
// by scope for a (player, optional enemy) context and by effect kind, then
// aggregate with a fixed policy per kind: best numeric values take the
// maximum (or minimum for costs), boolean overrides OR together, and grants
// count. List order never changes a query result.
//
// Expiry is sweep-based at turn, combat and round boundaries. Consumable
// modifiers are removed by the consumer, one charge at a time.
package modifier
