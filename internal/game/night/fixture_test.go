package night

import (
	"fmt"
	"testing"

	"github.com/louisbranch/nightfall/internal/game/role"
	"github.com/louisbranch/nightfall/internal/game/roster"
)

type seat struct {
	name string
	kind role.Kind
}

type table struct {
	reg    *roster.Registry
	ledger *Ledger
	ids    map[string]roster.ID
}

func newTable(t *testing.T, seats ...seat) *table {
	t.Helper()
	n := 0
	reg := roster.NewRegistry(func() (string, error) {
		n++
		return fmt.Sprintf("p%d", n), nil
	})
	ids := make(map[string]roster.ID, len(seats))
	assignment := make(map[roster.ID]role.Kind, len(seats))
	for _, s := range seats {
		pid, err := reg.Register(s.name)
		if err != nil {
			t.Fatalf("register %s: %v", s.name, err)
		}
		ids[s.name] = pid
		assignment[pid] = s.kind
	}
	if err := reg.AssignTable(assignment); err != nil {
		t.Fatalf("assign table: %v", err)
	}
	return &table{reg: reg, ledger: NewLedger(), ids: ids}
}

// classicTable is the six-seat table used by most night scenarios.
func classicTable(t *testing.T) *table {
	return newTable(t,
		seat{"Mafia", role.KindMafia},
		seat{"Police", role.KindPolice},
		seat{"Doctor", role.KindDoctor},
		seat{"Ann", role.KindCitizen},
		seat{"Ben", role.KindCitizen},
		seat{"Cal", role.KindCitizen},
	)
}

func (tb *table) id(name string) roster.ID {
	return tb.ids[name]
}

func (tb *table) get(t *testing.T, name string) *roster.Participant {
	t.Helper()
	p, ok := tb.reg.Get(tb.id(name))
	if !ok {
		t.Fatalf("participant %s not found", name)
	}
	return p
}

func (tb *table) submit(t *testing.T, actor, target string) Action {
	t.Helper()
	return tb.submitEffect(t, actor, target, role.EffectUnspecified)
}

func (tb *table) submitEffect(t *testing.T, actor, target string, effect role.Effect) Action {
	t.Helper()
	a, err := tb.ledger.Submit(tb.reg, tb.id(actor), tb.id(target), effect)
	if err != nil {
		t.Fatalf("submit %s -> %s: %v", actor, target, err)
	}
	return a
}

func (tb *table) resolve(day int) Result {
	res := Resolve(tb.reg, tb.ledger, day)
	tb.ledger.Clear()
	return res
}

func countKind(records []Outcome, kind Kind) int {
	n := 0
	for _, o := range records {
		if o.Kind == kind {
			n++
		}
	}
	return n
}

func recordsTo(records []Outcome, pid roster.ID, kind Kind) []Outcome {
	var out []Outcome
	for _, o := range records {
		if o.Kind == kind && o.Recipient == pid {
			out = append(out, o)
		}
	}
	return out
}
