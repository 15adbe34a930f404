// Package night collects and resolves one night of hidden actions.
//
// # Ledger
//
// Each living, able participant submits at most one action per night.
// A new submission by the same actor replaces the old one and purges the
// acknowledgement records it produced, which is how the mafia revises its
// kill before the night locks in.
//
// # Resolution
//
// Resolve walks the ledger once in ascending priority (submission order
// breaks ties): the lone predator first, then heals, then mafia kills,
// then the immediate information and silencing effects. Kills, heals,
// armor and conversions are collected in per-night scratch state and
// settled after the pass:
//
//   - armor absorbs one kill per charge and voids any heal on that target;
//   - a healed kill is survived and reported as treated;
//   - the converted predator's kill ignores both armor and healing;
//   - the lone predator converts once per game, when the mafia targets it
//     or when it hunts the mafia's consensus target and that target dies.
//
// The result lists the outcome records each participant may read and the
// deaths that the day phase announces.
package night
