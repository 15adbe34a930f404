// Package roster owns the participants of one game: registration before
// the game starts, role assignment from a ruleset, and the per-participant
// state the night and day phases mutate.
package roster

import "github.com/louisbranch/nightfall/internal/game/role"

// ID identifies a participant within a game.
type ID string

// DeathCause records how a participant left the game.
type DeathCause int

const (
	// DeathCauseNone marks a living participant.
	DeathCauseNone DeathCause = iota
	// DeathCauseNight is any death resolved at night.
	DeathCauseNight
	// DeathCauseExecution is a confirmed day-vote execution.
	DeathCauseExecution
)

func (c DeathCause) String() string {
	switch c {
	case DeathCauseNight:
		return "night"
	case DeathCauseExecution:
		return "execution"
	default:
		return "none"
	}
}

// Participant is one seat at the table. Dead participants stay in the
// registry as a record of the game.
type Participant struct {
	ID   ID
	Name string
	Role role.Kind
	Team role.Team

	Alive         bool
	CanVote       bool
	CanUseAbility bool

	// ArmorCharges counts kills this participant can still absorb.
	ArmorCharges int
	// AbilitySpent is set once a single-use ability has resolved.
	AbilitySpent bool
	// Converted is set when the lone predator joins the mafia.
	Converted bool
	// CanHeal is granted to a successor whose bonded predecessor died.
	CanHeal bool
	// BondedWith is the predecessor this participant bonded with.
	BondedWith ID
	// BondedOn is the night the bond was made.
	BondedOn int
	// Revealed is set once the participant's role was made public.
	Revealed bool

	DeathCause DeathCause
	// DiedOn is the day number of the death, zero while alive.
	DiedOn int
}

// Descriptor returns the catalog entry for the participant's role.
func (p *Participant) Descriptor() role.Descriptor {
	return role.Describe(p.Role)
}

// MafiaAligned reports whether the participant counts for the mafia.
func (p *Participant) MafiaAligned() bool {
	return p.Team == role.TeamMafia
}

// VoteWeight is the weight of the participant's nominations and confirmations.
func (p *Participant) VoteWeight() int {
	return p.Descriptor().VoteWeight
}

// AllowsEffect reports whether the participant may submit effect tonight.
func (p *Participant) AllowsEffect(effect role.Effect) bool {
	d := p.Descriptor()
	if d.ActsAtNight && d.Effect == effect {
		return true
	}
	return effect == role.EffectHeal && p.CanHeal
}
