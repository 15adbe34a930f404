// Package victory decides whether a game has ended.
package victory

import (
	"fmt"
	"strings"

	"github.com/louisbranch/nightfall/internal/game/roster"
)

// Side is a winning side.
type Side int

const (
	// SideNone means the game goes on.
	SideNone Side = iota
	// SideMafia wins once it matches the rest of the living town.
	SideMafia
	// SideCitizens wins once no mafia-aligned participant is alive.
	SideCitizens
)

func (s Side) String() string {
	switch s {
	case SideMafia:
		return "mafia"
	case SideCitizens:
		return "citizens"
	default:
		return "none"
	}
}

// ParseSide parses a side name as printed by String.
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "":
		return SideNone, nil
	case "mafia":
		return SideMafia, nil
	case "citizens", "citizen":
		return SideCitizens, nil
	default:
		return SideNone, fmt.Errorf("unknown side %q", s)
	}
}

// Tally is the living head count by alignment.
type Tally struct {
	Mafia    int
	NonMafia int
}

// Count tallies the living participants. An unconverted lone predator
// counts as non-mafia.
func Count(reg *roster.Registry) Tally {
	var t Tally
	for _, p := range reg.Alive() {
		if p.MafiaAligned() {
			t.Mafia++
		} else {
			t.NonMafia++
		}
	}
	return t
}

// Evaluate reports the winning side, if any.
func Evaluate(reg *roster.Registry) (Side, bool) {
	return Decide(Count(reg))
}

// Decide applies the win conditions to a tally.
func Decide(t Tally) (Side, bool) {
	switch {
	case t.Mafia == 0:
		return SideCitizens, true
	case t.Mafia >= t.NonMafia:
		return SideMafia, true
	default:
		return SideNone, false
	}
}
