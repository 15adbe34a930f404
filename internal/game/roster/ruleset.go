package roster

import (
	"strings"

	"github.com/louisbranch/nightfall/internal/game/role"
	apperrors "github.com/louisbranch/nightfall/internal/platform/errors"
)

// Slot places a role once the table has at least From players.
type Slot struct {
	Role role.Kind
	From int
}

// Ruleset selects the role composition and table size of a game.
type Ruleset struct {
	Name       string
	MinPlayers int
	MaxPlayers int
	Slots      []Slot
}

// Roles returns the role composition for n players: every slot whose
// threshold is met, then citizens up to n.
func (r Ruleset) Roles(n int) []role.Kind {
	roles := make([]role.Kind, 0, n)
	for _, slot := range r.Slots {
		if slot.From <= n && len(roles) < n {
			roles = append(roles, slot.Role)
		}
	}
	for len(roles) < n {
		roles = append(roles, role.KindCitizen)
	}
	return roles
}

var (
	// Classic is the six to eight player table with the three core roles.
	Classic = Ruleset{
		Name:       "classic",
		MinPlayers: 6,
		MaxPlayers: 8,
		Slots: []Slot{
			{Role: role.KindMafia},
			{Role: role.KindPolice},
			{Role: role.KindDoctor},
		},
	}
	// Moonlight adds the werewolf and the soldier to the classic table.
	Moonlight = Ruleset{
		Name:       "moonlight",
		MinPlayers: 6,
		MaxPlayers: 8,
		Slots: []Slot{
			{Role: role.KindMafia},
			{Role: role.KindWerewolf},
			{Role: role.KindPolice},
			{Role: role.KindDoctor},
			{Role: role.KindSoldier},
		},
	}
	// Standard is the eight to ten player table.
	Standard = Ruleset{
		Name:       "standard",
		MinPlayers: 8,
		MaxPlayers: 10,
		Slots: []Slot{
			{Role: role.KindMafia},
			{Role: role.KindPolice},
			{Role: role.KindDoctor},
			{Role: role.KindSpy},
			{Role: role.KindSoldier},
			{Role: role.KindReporter},
			{Role: role.KindPolitician},
			{Role: role.KindThug},
			{Role: role.KindNurse, From: 9},
			{Role: role.KindCleric, From: 10},
		},
	}
	// Extended scales from eight up to fourteen players.
	Extended = Ruleset{
		Name:       "extended",
		MinPlayers: 8,
		MaxPlayers: 14,
		Slots: []Slot{
			{Role: role.KindMafia},
			{Role: role.KindPolice},
			{Role: role.KindDoctor},
			{Role: role.KindSpy},
			{Role: role.KindSoldier},
			{Role: role.KindPolitician},
			{Role: role.KindThug},
			{Role: role.KindReporter},
			{Role: role.KindWerewolf, From: 9},
			{Role: role.KindNurse, From: 10},
			{Role: role.KindMadame, From: 11},
			{Role: role.KindMafia, From: 12},
			{Role: role.KindCleric, From: 13},
		},
	}
)

// Rulesets lists the built-in rulesets.
func Rulesets() []Ruleset {
	return []Ruleset{Classic, Moonlight, Standard, Extended}
}

// LookupRuleset finds a built-in ruleset by name.
func LookupRuleset(name string) (Ruleset, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, r := range Rulesets() {
		if r.Name == name {
			return r, nil
		}
	}
	return Ruleset{}, apperrors.WithMetadata(apperrors.CodeRosterUnknownRuleset,
		"unknown ruleset "+name, map[string]string{"ruleset": name})
}
