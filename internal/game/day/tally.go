package day

import (
	"slices"

	"github.com/louisbranch/nightfall/internal/game/roster"
)

// Tally is the weighted count of a nomination round.
type Tally struct {
	// Weights maps each nominated participant to their summed vote weight.
	Weights map[roster.ID]int
	// Leader is the unique plurality nominee, empty on a tie or no votes.
	Leader roster.ID
	// Tied lists the nominees sharing the top weight when there is a tie.
	Tied       []roster.ID
	Abstention int
}

// CountNominations tallies ballots by summed weight. Ballot order does not
// affect the result.
func CountNominations(ballots []Ballot) Tally {
	t := Tally{Weights: make(map[roster.ID]int)}
	for _, b := range ballots {
		if b.Target == "" {
			t.Abstention += b.Weight
			continue
		}
		t.Weights[b.Target] += b.Weight
	}

	top := 0
	var leaders []roster.ID
	for pid, weight := range t.Weights {
		switch {
		case weight > top:
			top = weight
			leaders = []roster.ID{pid}
		case weight == top:
			leaders = append(leaders, pid)
		}
	}
	switch {
	case top == 0:
	case len(leaders) == 1:
		t.Leader = leaders[0]
	default:
		slices.Sort(leaders)
		t.Tied = leaders
	}
	return t
}

// Ballot is one voter's nomination; an empty Target abstains.
type Ballot struct {
	Voter  roster.ID
	Target roster.ID
	Weight int
}
