package scenario

import (
	"github.com/louisbranch/nightfall/internal/game/roster"
	"github.com/louisbranch/nightfall/internal/game/session"
)

type scenarioState struct {
	session *session.Session
	seed    int64
	// players maps script names to participant ids in seat order.
	players map[string]roster.ID
	order   []string
	// journalSeq is the last journal entry already printed.
	journalSeq uint64
}
