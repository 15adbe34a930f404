package night

import (
	"slices"

	"github.com/louisbranch/nightfall/internal/game/role"
	"github.com/louisbranch/nightfall/internal/game/roster"
)

// Visibility scopes who may read an outcome record.
type Visibility int

const (
	// VisibilityUnspecified represents an invalid visibility value.
	VisibilityUnspecified Visibility = iota
	// VisibilityPrivate is readable by the recipient only.
	VisibilityPrivate
	// VisibilityTeam is readable by every member of the team.
	VisibilityTeam
	// VisibilityPublic is readable by everyone.
	VisibilityPublic
	// VisibilitySystem is consumed by the day announcer, not shown directly.
	VisibilitySystem
)

func (v Visibility) String() string {
	switch v {
	case VisibilityPrivate:
		return "private"
	case VisibilityTeam:
		return "team"
	case VisibilityPublic:
		return "public"
	case VisibilitySystem:
		return "system"
	default:
		return "unspecified"
	}
}

// Kind classifies an outcome record.
type Kind string

const (
	KindAcknowledged Kind = "acknowledged"
	KindInvestigated Kind = "investigated"
	KindContact      Kind = "contact"
	KindBonded       Kind = "bonded"
	KindTreated      Kind = "treated"
	KindArmor        Kind = "armor"
	KindSilenced     Kind = "silenced"
	KindRevealed     Kind = "revealed"
	KindResurrected  Kind = "resurrected"
	KindConverted    Kind = "converted"
	KindDeath        Kind = "death"
	KindDeathNotice  Kind = "death_notice"
	KindSuccession   Kind = "succession"
)

// Outcome is one piece of information produced at night.
type Outcome struct {
	Kind       Kind
	Visibility Visibility
	// Recipient is the reader of a private record.
	Recipient roster.ID
	// Team labels a team record.
	Team role.Team
	// Readers are the team members a team record was addressed to when it
	// was produced; later recruits do not read it.
	Readers []roster.ID
	// Subject is the participant the record is about.
	Subject roster.ID
	// Source is the actor whose action produced the record.
	Source  roster.ID
	Message string
	// PendingDeath marks a death the day phase has yet to announce.
	PendingDeath bool
}

// VisibleTo reports whether p may read the record.
func (o Outcome) VisibleTo(p *roster.Participant) bool {
	if p == nil {
		return false
	}
	switch o.Visibility {
	case VisibilityPrivate:
		return o.Recipient == p.ID
	case VisibilityTeam:
		return slices.Contains(o.Readers, p.ID)
	case VisibilityPublic:
		return true
	default:
		return false
	}
}

func private(kind Kind, to roster.ID, subject roster.ID, source roster.ID, message string) Outcome {
	return Outcome{
		Kind:       kind,
		Visibility: VisibilityPrivate,
		Recipient:  to,
		Subject:    subject,
		Source:     source,
		Message:    message,
	}
}

func public(kind Kind, subject roster.ID, source roster.ID, message string) Outcome {
	return Outcome{
		Kind:       kind,
		Visibility: VisibilityPublic,
		Subject:    subject,
		Source:     source,
		Message:    message,
	}
}

func team(kind Kind, t role.Team, readers []roster.ID, subject roster.ID, source roster.ID, message string) Outcome {
	return Outcome{
		Kind:       kind,
		Visibility: VisibilityTeam,
		Team:       t,
		Readers:    readers,
		Subject:    subject,
		Source:     source,
		Message:    message,
	}
}

// killSquad lists who shares the mafia's night kill: the mafia role holders
// and a converted predator. Supporting mafia roles find them only through
// contact.
func killSquad(reg *roster.Registry) []roster.ID {
	var out []roster.ID
	for _, p := range reg.All() {
		if p.Role == role.KindMafia || p.Converted {
			out = append(out, p.ID)
		}
	}
	return out
}
