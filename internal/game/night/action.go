package night

import (
	"github.com/louisbranch/nightfall/internal/game/role"
	"github.com/louisbranch/nightfall/internal/game/roster"
)

// Action is one accepted night submission.
type Action struct {
	Actor    roster.ID
	Target   roster.ID
	Effect   role.Effect
	Priority int
	// Seq is the submission order within the ledger, starting at 1.
	Seq int
}
