package roster

import (
	"fmt"
	"math/rand"

	"github.com/louisbranch/nightfall/internal/game/role"

	apperrors "github.com/louisbranch/nightfall/internal/platform/errors"
)

// AssignRoles deals the ruleset's roles to the listed participants and
// starts the game. A nil ids slice seats every registered participant;
// otherwise participants missing from ids are dropped from the roster.
// The shuffle draws from rng, so a seeded rng deals reproducibly.
func (r *Registry) AssignRoles(ids []ID, ruleset Ruleset, rng *rand.Rand) error {
	if r.started {
		return apperrors.New(apperrors.CodeRosterGameStarted, "the game has already started")
	}
	if rng == nil {
		return fmt.Errorf("assign roles: random source is required")
	}

	seated, err := r.seat(ids)
	if err != nil {
		return err
	}
	n := len(seated)
	if n < ruleset.MinPlayers {
		return apperrors.WithMetadata(apperrors.CodeInsufficientPlayers,
			fmt.Sprintf("ruleset %s needs at least %d players, have %d", ruleset.Name, ruleset.MinPlayers, n),
			map[string]string{"ruleset": ruleset.Name, "min": fmt.Sprint(ruleset.MinPlayers), "have": fmt.Sprint(n)})
	}
	if ruleset.MaxPlayers > 0 && n > ruleset.MaxPlayers {
		return apperrors.WithMetadata(apperrors.CodeRosterTooManyPlayers,
			fmt.Sprintf("ruleset %s seats at most %d players, have %d", ruleset.Name, ruleset.MaxPlayers, n),
			map[string]string{"ruleset": ruleset.Name, "max": fmt.Sprint(ruleset.MaxPlayers), "have": fmt.Sprint(n)})
	}

	roles := ruleset.Roles(n)
	rng.Shuffle(len(roles), func(i, j int) { roles[i], roles[j] = roles[j], roles[i] })

	r.keepOnly(seated)
	for i, p := range r.order {
		deal(p, roles[i])
	}
	r.started = true
	return nil
}

// AssignTable deals an explicit role to every registered participant and
// starts the game. It bypasses ruleset table sizes.
func (r *Registry) AssignTable(table map[ID]role.Kind) error {
	if r.started {
		return apperrors.New(apperrors.CodeRosterGameStarted, "the game has already started")
	}
	if len(r.order) == 0 {
		return apperrors.New(apperrors.CodeInsufficientPlayers, "no participants registered")
	}
	for pid := range table {
		if _, ok := r.byID[pid]; !ok {
			return unknownParticipant(pid)
		}
	}
	for _, p := range r.order {
		kind, ok := table[p.ID]
		if !ok || !kind.IsValid() {
			return apperrors.WithMetadata(apperrors.CodeRosterUnknownRole,
				fmt.Sprintf("participant %s has no valid role", p.Name),
				map[string]string{"name": p.Name})
		}
	}
	for _, p := range r.order {
		deal(p, table[p.ID])
	}
	r.started = true
	return nil
}

func (r *Registry) seat(ids []ID) ([]ID, error) {
	if ids == nil {
		seated := make([]ID, 0, len(r.order))
		for _, p := range r.order {
			seated = append(seated, p.ID)
		}
		return seated, nil
	}
	seen := make(map[ID]bool, len(ids))
	for _, pid := range ids {
		if _, ok := r.byID[pid]; !ok {
			return nil, unknownParticipant(pid)
		}
		if seen[pid] {
			return nil, apperrors.WithMetadata(apperrors.CodeRosterDuplicateName,
				fmt.Sprintf("participant %s is listed twice", pid),
				map[string]string{"participant_id": string(pid)})
		}
		seen[pid] = true
	}
	return ids, nil
}

func (r *Registry) keepOnly(seated []ID) {
	keep := make(map[ID]bool, len(seated))
	for _, pid := range seated {
		keep[pid] = true
	}
	remove := make(map[ID]bool)
	for _, p := range r.order {
		if !keep[p.ID] {
			remove[p.ID] = true
		}
	}
	r.drop(remove)
}

func deal(p *Participant, kind role.Kind) {
	d := role.Describe(kind)
	p.Role = kind
	p.Team = d.Team
	p.Alive = true
	p.CanVote = true
	p.CanUseAbility = true
	p.ArmorCharges = d.ArmorCharges
}
