package role

import (
	"fmt"
	"strings"
)

// Kind identifies a role.
type Kind int

const (
	// KindUnspecified represents an invalid role value.
	KindUnspecified Kind = iota
	KindCitizen
	KindMafia
	KindSpy
	KindMadame
	KindWerewolf
	KindPolice
	KindDoctor
	KindNurse
	KindSoldier
	KindPolitician
	KindThug
	KindReporter
	KindCleric
)

// Team is a faction for victory counting.
type Team int

const (
	// TeamUnspecified represents an invalid team value.
	TeamUnspecified Team = iota
	// TeamCitizen wins when no mafia-aligned participant is alive.
	TeamCitizen
	// TeamMafia wins once it matches the rest of the town.
	TeamMafia
	// TeamLone is the unconverted lone predator.
	TeamLone
)

func (t Team) String() string {
	switch t {
	case TeamCitizen:
		return "citizen"
	case TeamMafia:
		return "mafia"
	case TeamLone:
		return "lone"
	default:
		return "unspecified"
	}
}

// ParseTeam parses a lowercase team name.
func ParseTeam(s string) (Team, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "citizen":
		return TeamCitizen, nil
	case "mafia":
		return TeamMafia, nil
	case "lone":
		return TeamLone, nil
	default:
		return TeamUnspecified, fmt.Errorf("unknown team %q", s)
	}
}

// Descriptor is the immutable capability set of a role.
type Descriptor struct {
	Kind  Kind
	Label string
	Team  Team
	// Effect is the action the role performs at night.
	Effect Effect
	// Priority is the resolution priority of Effect.
	Priority    int
	ActsAtNight bool
	NeedsTarget bool
	// AllowSelfTarget permits the actor to name itself as target.
	AllowSelfTarget bool
	// TargetsDead requires the target to be dead instead of alive.
	TargetsDead bool
	// SingleUse spends the ability after its first resolution.
	SingleUse  bool
	VoteWeight int
	// ExecutionImmune survives a confirmed day execution.
	ExecutionImmune bool
	// ArmorCharges is the number of kills absorbed per game.
	ArmorCharges int
	// Convertible marks the lone predator that may join the mafia.
	Convertible bool
	// ExactInvestigation learns the full role instead of mafia or not.
	ExactInvestigation bool
	// ContactsMafia makes contact when the ability lands on a mafioso.
	ContactsMafia bool
	// Predecessor is the role a Bond looks for and inherits from.
	Predecessor Kind
}

func active(kind Kind, label string, team Team, effect Effect) Descriptor {
	return Descriptor{
		Kind:        kind,
		Label:       label,
		Team:        team,
		Effect:      effect,
		Priority:    effect.Priority(),
		ActsAtNight: true,
		NeedsTarget: true,
		VoteWeight:  1,
	}
}

func passive(kind Kind, label string) Descriptor {
	return Descriptor{
		Kind:       kind,
		Label:      label,
		Team:       TeamCitizen,
		Effect:     EffectPassive,
		Priority:   EffectPassive.Priority(),
		VoteWeight: 1,
	}
}

var catalog = func() map[Kind]Descriptor {
	doctor := active(KindDoctor, "Doctor", TeamCitizen, EffectHeal)
	doctor.AllowSelfTarget = true

	werewolf := active(KindWerewolf, "Werewolf", TeamLone, EffectConditionalKill)
	werewolf.Convertible = true

	soldier := passive(KindSoldier, "Soldier")
	soldier.ArmorCharges = 1

	politician := passive(KindPolitician, "Politician")
	politician.VoteWeight = 2
	politician.ExecutionImmune = true

	reporter := active(KindReporter, "Reporter", TeamCitizen, EffectReveal)
	reporter.SingleUse = true

	cleric := active(KindCleric, "Cleric", TeamCitizen, EffectResurrect)
	cleric.SingleUse = true
	cleric.TargetsDead = true

	spy := active(KindSpy, "Spy", TeamMafia, EffectInvestigate)
	spy.ExactInvestigation = true
	spy.ContactsMafia = true

	madame := active(KindMadame, "Madame", TeamMafia, EffectSilenceAbility)
	madame.ContactsMafia = true

	nurse := active(KindNurse, "Nurse", TeamCitizen, EffectBond)
	nurse.Predecessor = KindDoctor

	return map[Kind]Descriptor{
		KindCitizen:    passive(KindCitizen, "Citizen"),
		KindMafia:      active(KindMafia, "Mafia", TeamMafia, EffectKill),
		KindSpy:        spy,
		KindMadame:     madame,
		KindWerewolf:   werewolf,
		KindPolice:     active(KindPolice, "Police", TeamCitizen, EffectInvestigate),
		KindDoctor:     doctor,
		KindNurse:      nurse,
		KindSoldier:    soldier,
		KindPolitician: politician,
		KindThug:       active(KindThug, "Thug", TeamCitizen, EffectSilenceVote),
		KindReporter:   reporter,
		KindCleric:     cleric,
	}
}()

// Describe returns the descriptor of a role. Kind values come from the
// constants above or ParseKind; an out-of-range kind yields a descriptor
// that cannot act or vote.
func Describe(kind Kind) Descriptor {
	if d, ok := catalog[kind]; ok {
		return d
	}
	return Descriptor{Kind: kind, Label: "Unknown", Effect: EffectUnspecified}
}

// All returns every role kind in declaration order.
func All() []Kind {
	kinds := make([]Kind, 0, len(catalog))
	for k := KindCitizen; k <= KindCleric; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// IsValid reports whether the kind is in the catalog.
func (k Kind) IsValid() bool {
	_, ok := catalog[k]
	return ok
}

func (k Kind) String() string {
	return Describe(k).Label
}

// ParseKind parses a role label, case-insensitively.
func ParseKind(s string) (Kind, error) {
	s = strings.TrimSpace(s)
	for kind, d := range catalog {
		if strings.EqualFold(d.Label, s) {
			return kind, nil
		}
	}
	return KindUnspecified, fmt.Errorf("unknown role %q", s)
}
