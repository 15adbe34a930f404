// Package session owns one game from registration to victory.
//
// A Session threads a single registry, night ledger, day resolver and
// journal through every call. It is not safe for concurrent use: the game
// is turn based and the caller serializes submissions and votes.
//
// The lifecycle is setup, then alternating nights and days until a side
// wins:
//
//	setup -> night 1 -> day 1 (announce, nominate, confirm, finalize) -> night 2 -> ...
//
// Victory is evaluated after every night resolution and after every day
// finalization; once a side wins every further phase call fails with
// GAME_OVER.
package session
