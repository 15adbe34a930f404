package session

import (
	"github.com/louisbranch/nightfall/internal/game/day"
	"github.com/louisbranch/nightfall/internal/game/night"
	"github.com/louisbranch/nightfall/internal/game/victory"
)

// Stage is the coarse lifecycle step of a game.
type Stage int

const (
	// StageSetup accepts registrations until roles are dealt.
	StageSetup Stage = iota
	// StageNight accepts night actions until the night is resolved.
	StageNight
	// StageDay runs the day resolver.
	StageDay
	// StageOver means a side has won.
	StageOver
)

func (s Stage) String() string {
	switch s {
	case StageSetup:
		return "setup"
	case StageNight:
		return "night"
	case StageDay:
		return "day"
	case StageOver:
		return "over"
	default:
		return "unknown"
	}
}

// DayPhaseState is the state of the game after a day step.
type DayPhaseState struct {
	Stage Stage
	// Day is the current day counter; night N precedes day N.
	Day   int
	Phase day.Phase
	// Announcements holds the public death announcements of the announce step.
	Announcements []night.Outcome
	// Tally is set by the nomination step.
	Tally *day.Tally
	// Verdict is set once the day's vote has closed.
	Verdict *day.Verdict
	// Succession holds the records of a day-to-night transition.
	Succession []night.Outcome
	Winner     victory.Side
}
