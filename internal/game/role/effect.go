package role

import "fmt"

// Effect identifies what a night action does when it resolves.
type Effect int

const (
	// EffectUnspecified represents an invalid effect value.
	EffectUnspecified Effect = iota
	// EffectConditionalKill is the lone predator's kill. It only lands once
	// the predator has been converted into the mafia.
	EffectConditionalKill
	// EffectHeal protects the target from an unabsorbed kill this night.
	EffectHeal
	// EffectKill is the mafia team kill.
	EffectKill
	// EffectPassive marks roles with no night action.
	EffectPassive
	// EffectInvestigate privately learns something about the target.
	EffectInvestigate
	// EffectReveal publishes the target's role at dawn.
	EffectReveal
	// EffectSilenceVote removes the target's vote for the next day.
	EffectSilenceVote
	// EffectSilenceAbility removes the target's ability for the next night.
	EffectSilenceAbility
	// EffectResurrect brings a dead participant back.
	EffectResurrect
	// EffectBond privately links a successor to its predecessor.
	EffectBond
)

// Resolution priorities; lower resolves first.
const (
	PriorityConditionalKill = 1
	PriorityHeal            = 2
	PriorityKill            = 3
	PriorityPassive         = 4
	PriorityImmediate       = 5
)

var effectNames = map[Effect]string{
	EffectConditionalKill: "conditional_kill",
	EffectHeal:            "heal",
	EffectKill:            "kill",
	EffectPassive:         "passive",
	EffectInvestigate:     "investigate",
	EffectReveal:          "reveal",
	EffectSilenceVote:     "silence_vote",
	EffectSilenceAbility:  "silence_ability",
	EffectResurrect:       "resurrect",
	EffectBond:            "bond",
}

// Priority returns the resolution priority of an effect.
func (e Effect) Priority() int {
	switch e {
	case EffectConditionalKill:
		return PriorityConditionalKill
	case EffectHeal:
		return PriorityHeal
	case EffectKill:
		return PriorityKill
	case EffectPassive:
		return PriorityPassive
	default:
		return PriorityImmediate
	}
}

// IsKill reports whether the effect can take a life.
func (e Effect) IsKill() bool {
	return e == EffectKill || e == EffectConditionalKill
}

func (e Effect) String() string {
	if name, ok := effectNames[e]; ok {
		return name
	}
	return fmt.Sprintf("effect(%d)", int(e))
}

// ParseEffect parses the lowercase effect name used by tooling.
func ParseEffect(s string) (Effect, error) {
	for effect, name := range effectNames {
		if name == s {
			return effect, nil
		}
	}
	return EffectUnspecified, fmt.Errorf("unknown effect %q", s)
}
