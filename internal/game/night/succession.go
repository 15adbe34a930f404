package night

import (
	"fmt"

	"github.com/louisbranch/nightfall/internal/game/roster"
)

// Succession grants the heal ability to every living successor whose bonded
// predecessor died by any cause other than execution, on a night after the
// bond was made. It runs once per day transition; the ability is usable
// from the following night.
func Succession(reg *roster.Registry) []Outcome {
	var out []Outcome
	for _, p := range reg.Alive() {
		if p.BondedWith == "" || p.CanHeal {
			continue
		}
		pred, ok := reg.Get(p.BondedWith)
		if !ok || pred.Alive || pred.DeathCause == roster.DeathCauseExecution {
			continue
		}
		if p.BondedOn >= pred.DiedOn {
			continue
		}
		p.CanHeal = true
		out = append(out, private(KindSuccession, p.ID, pred.ID, pred.ID,
			fmt.Sprintf("%s is gone; you carry on the %s's work", pred.Name, pred.Role)))
	}
	return out
}
