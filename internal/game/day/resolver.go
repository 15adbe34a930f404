package day

import (
	"fmt"

	"github.com/louisbranch/nightfall/internal/game/night"
	"github.com/louisbranch/nightfall/internal/game/roster"

	apperrors "github.com/louisbranch/nightfall/internal/platform/errors"
)

// Verdict summarizes a closed day.
type Verdict struct {
	Outcome Outcome
	Nominee roster.ID
	Tally   Tally
	// Approve and Reject are the weighted confirmation totals.
	Approve int
	Reject  int
}

// Resolver drives one day through Announce, Nominate, Confirm and Finalize.
type Resolver struct {
	reg     *roster.Registry
	day     int
	phase   Phase
	notices []night.Outcome

	ballots       []Ballot
	nominated     map[roster.ID]bool
	confirmations map[roster.ID]bool

	verdict Verdict
}

// NewResolver starts a day. notices are the system death notices of the
// night that just ended.
func NewResolver(reg *roster.Registry, day int, notices []night.Outcome) *Resolver {
	return &Resolver{
		reg:           reg,
		day:           day,
		phase:         PhaseAnnounce,
		notices:       notices,
		nominated:     make(map[roster.ID]bool),
		confirmations: make(map[roster.ID]bool),
	}
}

// Day returns the day number.
func (r *Resolver) Day() int {
	return r.day
}

// Phase returns the current phase.
func (r *Resolver) Phase() Phase {
	return r.phase
}

// Verdict returns the day's verdict; Outcome stays pending until the vote closes.
func (r *Resolver) Verdict() Verdict {
	return r.verdict
}

// Announce turns the pending death notices into public announcements and
// opens nominations. Roles are not disclosed.
func (r *Resolver) Announce() ([]night.Outcome, error) {
	if err := r.expect(PhaseAnnounce); err != nil {
		return nil, err
	}
	out := make([]night.Outcome, 0, len(r.notices))
	for _, n := range r.notices {
		if !n.PendingDeath {
			continue
		}
		name := string(n.Subject)
		if p, ok := r.reg.Get(n.Subject); ok {
			name = p.Name
		}
		out = append(out, night.Outcome{
			Kind:       night.KindDeath,
			Visibility: night.VisibilityPublic,
			Subject:    n.Subject,
			Message:    fmt.Sprintf("%s did not survive the night", name),
		})
	}
	r.phase = PhaseNominate
	return out, nil
}

// Nominate casts the voter's nomination. An empty target abstains.
func (r *Resolver) Nominate(voter, target roster.ID) error {
	if err := r.expect(PhaseNominate); err != nil {
		return err
	}
	p, err := r.voter(voter)
	if err != nil {
		return err
	}
	if r.nominated[voter] {
		return voteError(apperrors.CodeVoteAlreadyCast, voter, fmt.Sprintf("%s already nominated today", p.Name))
	}
	if target != "" {
		tp, ok := r.reg.Get(target)
		if !ok {
			return voteError(apperrors.CodeVoteUnknownTarget, voter, fmt.Sprintf("participant %s is not registered", target))
		}
		if !tp.Alive {
			return voteError(apperrors.CodeVoteTargetDead, voter, fmt.Sprintf("%s is dead", tp.Name))
		}
		if target == voter {
			return voteError(apperrors.CodeVoteSelf, voter, fmt.Sprintf("%s cannot nominate themselves", p.Name))
		}
	}
	r.nominated[voter] = true
	r.ballots = append(r.ballots, Ballot{Voter: voter, Target: target, Weight: p.VoteWeight()})
	return nil
}

// CloseNominations tallies the nominations. A unique plurality opens the
// confirmation vote; anything else voids the day.
func (r *Resolver) CloseNominations() (Tally, error) {
	if err := r.expect(PhaseNominate); err != nil {
		return Tally{}, err
	}
	t := CountNominations(r.ballots)
	r.verdict.Tally = t
	switch {
	case t.Leader != "":
		r.verdict.Nominee = t.Leader
		r.phase = PhaseConfirm
	case len(t.Tied) > 0:
		r.close(OutcomeTie)
	default:
		r.close(OutcomeNoNomination)
	}
	return t, nil
}

// Confirm casts the voter's approval or rejection of the nominee.
func (r *Resolver) Confirm(voter roster.ID, approve bool) error {
	if err := r.expect(PhaseConfirm); err != nil {
		return err
	}
	p, err := r.voter(voter)
	if err != nil {
		return err
	}
	if _, ok := r.confirmations[voter]; ok {
		return voteError(apperrors.CodeVoteAlreadyCast, voter, fmt.Sprintf("%s already voted on the nominee", p.Name))
	}
	r.confirmations[voter] = approve
	if approve {
		r.verdict.Approve += p.VoteWeight()
	} else {
		r.verdict.Reject += p.VoteWeight()
	}
	return nil
}

// CloseConfirmations executes the nominee when approvals strictly outweigh
// rejections and the nominee's role allows it.
func (r *Resolver) CloseConfirmations() (Verdict, error) {
	if err := r.expect(PhaseConfirm); err != nil {
		return Verdict{}, err
	}
	if r.verdict.Approve <= r.verdict.Reject {
		r.close(OutcomeRejected)
		return r.verdict, nil
	}
	nominee, ok := r.reg.Get(r.verdict.Nominee)
	switch {
	case !ok || !nominee.Alive:
		r.close(OutcomeRejected)
	case nominee.Descriptor().ExecutionImmune:
		r.close(OutcomeImmune)
	default:
		r.reg.Kill(nominee.ID, roster.DeathCauseExecution, r.day)
		r.close(OutcomeExecuted)
	}
	return r.verdict, nil
}

func (r *Resolver) close(outcome Outcome) {
	r.verdict.Outcome = outcome
	r.phase = PhaseFinalize
}

func (r *Resolver) voter(pid roster.ID) (*roster.Participant, error) {
	p, ok := r.reg.Get(pid)
	if !ok {
		return nil, voteError(apperrors.CodeVoteUnknownVoter, pid, fmt.Sprintf("participant %s is not registered", pid))
	}
	if !p.Alive {
		return nil, voteError(apperrors.CodeVoteVoterDead, pid, fmt.Sprintf("%s is dead", p.Name))
	}
	if !p.CanVote {
		return nil, voteError(apperrors.CodeVoteVoterSilenced, pid, fmt.Sprintf("%s cannot vote today", p.Name))
	}
	return p, nil
}

func (r *Resolver) expect(phase Phase) error {
	if r.phase == phase {
		return nil
	}
	return apperrors.WithMetadata(apperrors.CodePhaseMismatch,
		fmt.Sprintf("day %d is in the %s phase, not %s", r.day, r.phase, phase),
		map[string]string{"phase": r.phase.String(), "expected": phase.String()})
}

func voteError(code apperrors.Code, voter roster.ID, message string) error {
	return apperrors.WithMetadata(code, message, map[string]string{"voter_id": string(voter)})
}
