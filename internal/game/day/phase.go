// Package day runs the day that follows a night: death announcements, a
// weighted plurality nomination and a confirmation vote on the nominee.
package day

// Phase is a step of the day state machine.
type Phase int

const (
	// PhaseAnnounce reveals last night's deaths.
	PhaseAnnounce Phase = iota
	// PhaseNominate collects one nomination or abstention per voter.
	PhaseNominate
	// PhaseConfirm holds the binary vote on the plurality nominee.
	PhaseConfirm
	// PhaseFinalize closes the day.
	PhaseFinalize
)

func (p Phase) String() string {
	switch p {
	case PhaseAnnounce:
		return "announce"
	case PhaseNominate:
		return "nominate"
	case PhaseConfirm:
		return "confirm"
	case PhaseFinalize:
		return "finalize"
	default:
		return "unknown"
	}
}

// Outcome is how the day's vote ended.
type Outcome int

const (
	// OutcomePending means the vote has not closed yet.
	OutcomePending Outcome = iota
	// OutcomeNoNomination means nobody was nominated.
	OutcomeNoNomination
	// OutcomeTie means the nomination tallied a tie.
	OutcomeTie
	// OutcomeRejected means confirmations did not outnumber rejections.
	OutcomeRejected
	// OutcomeImmune means the confirmed nominee cannot be executed.
	OutcomeImmune
	// OutcomeExecuted means the nominee was executed.
	OutcomeExecuted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNoNomination:
		return "no_nomination"
	case OutcomeTie:
		return "tie"
	case OutcomeRejected:
		return "rejected"
	case OutcomeImmune:
		return "immune"
	case OutcomeExecuted:
		return "executed"
	default:
		return "pending"
	}
}

// Void reports whether the day ended without an execution.
func (o Outcome) Void() bool {
	return o != OutcomePending && o != OutcomeExecuted
}
