package night

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/louisbranch/nightfall/internal/game/role"
	"github.com/louisbranch/nightfall/internal/game/roster"

	apperrors "github.com/louisbranch/nightfall/internal/platform/errors"
)

// Ledger holds the actions submitted for the current night.
type Ledger struct {
	actions []Action
	records []Outcome
	seq     int
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Submit validates and stores an action for actor, replacing any earlier
// action by the same actor. An unspecified effect means the actor's own
// night effect. Rejections leave the ledger untouched.
func (l *Ledger) Submit(reg *roster.Registry, actor, target roster.ID, effect role.Effect) (Action, error) {
	p, ok := reg.Get(actor)
	if !ok {
		return Action{}, submissionError(apperrors.CodeSubmissionUnknownActor, actor, target,
			fmt.Sprintf("participant %s is not registered", actor))
	}
	if !p.Alive {
		return Action{}, submissionError(apperrors.CodeSubmissionActorDead, actor, target,
			fmt.Sprintf("%s is dead", p.Name))
	}
	if !p.CanUseAbility {
		return Action{}, submissionError(apperrors.CodeSubmissionAbilityBlocked, actor, target,
			fmt.Sprintf("%s cannot use an ability tonight", p.Name))
	}

	d := p.Descriptor()
	if !d.ActsAtNight && !p.CanHeal {
		return Action{}, submissionError(apperrors.CodeSubmissionNoNightAction, actor, target,
			fmt.Sprintf("the %s has no night action", d.Label))
	}
	if effect == role.EffectUnspecified {
		effect = d.Effect
		if !d.ActsAtNight {
			effect = role.EffectHeal
		}
	}
	if !p.AllowsEffect(effect) {
		return Action{}, submissionError(apperrors.CodeSubmissionEffectNotAllowed, actor, target,
			fmt.Sprintf("the %s cannot %s", d.Label, effect))
	}
	if d.SingleUse && effect == d.Effect && p.AbilitySpent {
		return Action{}, submissionError(apperrors.CodeSubmissionAbilitySpent, actor, target,
			fmt.Sprintf("%s has already used the %s ability", p.Name, d.Label))
	}

	if target == "" {
		return Action{}, submissionError(apperrors.CodeSubmissionTargetRequired, actor, target,
			fmt.Sprintf("%s must pick a target", p.Name))
	}
	tp, ok := reg.Get(target)
	if !ok {
		return Action{}, submissionError(apperrors.CodeSubmissionUnknownTarget, actor, target,
			fmt.Sprintf("participant %s is not registered", target))
	}
	if target == actor && !d.AllowSelfTarget && effect != role.EffectHeal {
		return Action{}, submissionError(apperrors.CodeSubmissionSelfTarget, actor, target,
			fmt.Sprintf("the %s cannot target themselves", d.Label))
	}
	if effect == role.EffectResurrect {
		if tp.Alive {
			return Action{}, submissionError(apperrors.CodeSubmissionTargetAlive, actor, target,
				fmt.Sprintf("%s is still alive", tp.Name))
		}
	} else if !tp.Alive {
		return Action{}, submissionError(apperrors.CodeSubmissionTargetDead, actor, target,
			fmt.Sprintf("%s is already dead", tp.Name))
	}

	l.Withdraw(actor)
	l.seq++
	a := Action{
		Actor:    actor,
		Target:   target,
		Effect:   effect,
		Priority: effect.Priority(),
		Seq:      l.seq,
	}
	l.actions = append(l.actions, a)
	l.records = append(l.records, acknowledge(reg, p, tp, effect))
	return a, nil
}

func acknowledge(reg *roster.Registry, p, target *roster.Participant, effect role.Effect) Outcome {
	if effect == role.EffectKill && p.MafiaAligned() {
		return team(KindAcknowledged, role.TeamMafia, killSquad(reg), target.ID, p.ID,
			fmt.Sprintf("%s picked %s", p.Name, target.Name))
	}
	return private(KindAcknowledged, p.ID, target.ID, p.ID,
		fmt.Sprintf("you chose to %s %s", effect, target.Name))
}

func submissionError(code apperrors.Code, actor, target roster.ID, message string) error {
	return apperrors.WithMetadata(code, message, map[string]string{
		"actor_id":  string(actor),
		"target_id": string(target),
	})
}

// Withdraw drops the actor's pending action and the records it produced.
// It reports whether there was anything to drop.
func (l *Ledger) Withdraw(actor roster.ID) bool {
	n := len(l.actions)
	l.actions = slices.DeleteFunc(l.actions, func(a Action) bool {
		return a.Actor == actor
	})
	l.records = slices.DeleteFunc(l.records, func(o Outcome) bool {
		return o.Source == actor
	})
	return len(l.actions) != n
}

// ActionOf returns the actor's pending action.
func (l *Ledger) ActionOf(actor roster.ID) (Action, bool) {
	for _, a := range l.actions {
		if a.Actor == actor {
			return a, true
		}
	}
	return Action{}, false
}

// Ordered returns the pending actions by ascending priority, then
// submission order.
func (l *Ledger) Ordered() []Action {
	out := slices.Clone(l.actions)
	slices.SortStableFunc(out, func(a, b Action) int {
		if c := cmp.Compare(a.Priority, b.Priority); c != 0 {
			return c
		}
		return cmp.Compare(a.Seq, b.Seq)
	})
	return out
}

// Pending returns the actions in submission order.
func (l *Ledger) Pending() []Action {
	return slices.Clone(l.actions)
}

// Records returns the acknowledgement records of the pending actions.
func (l *Ledger) Records() []Outcome {
	return slices.Clone(l.records)
}

// ConsensusTarget is the target of the most recently submitted mafia kill.
func (l *Ledger) ConsensusTarget() (roster.ID, bool) {
	for i := len(l.actions) - 1; i >= 0; i-- {
		if l.actions[i].Effect == role.EffectKill {
			return l.actions[i].Target, true
		}
	}
	return "", false
}

// Len returns the number of pending actions.
func (l *Ledger) Len() int {
	return len(l.actions)
}

// Clear drops every action and record.
func (l *Ledger) Clear() {
	l.actions = nil
	l.records = nil
	l.seq = 0
}
