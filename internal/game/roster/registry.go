package roster

import (
	"fmt"

	"github.com/louisbranch/nightfall/internal/game/role"
	"github.com/louisbranch/nightfall/internal/platform/id"

	apperrors "github.com/louisbranch/nightfall/internal/platform/errors"
)

// Registry is the authoritative participant list of one game.
type Registry struct {
	order       []*Participant
	byID        map[ID]*Participant
	started     bool
	conversions int
	idGenerator func() (string, error)
}

// NewRegistry creates an empty registry. A nil idGenerator uses id.NewID.
func NewRegistry(idGenerator func() (string, error)) *Registry {
	if idGenerator == nil {
		idGenerator = id.NewID
	}
	return &Registry{
		byID:        make(map[ID]*Participant),
		idGenerator: idGenerator,
	}
}

// Register adds a participant before roles are assigned.
func (r *Registry) Register(name string) (ID, error) {
	if r.started {
		return "", apperrors.New(apperrors.CodeRosterGameStarted, "the game has already started")
	}
	name = NormalizeName(name)
	if name == "" {
		return "", apperrors.New(apperrors.CodeRosterEmptyName, "participant name is required")
	}
	if existing, ok := r.FindByName(name); ok {
		return "", apperrors.WithMetadata(apperrors.CodeRosterDuplicateName,
			fmt.Sprintf("name %q is already taken", existing.Name),
			map[string]string{"name": name})
	}

	raw, err := r.idGenerator()
	if err != nil {
		return "", fmt.Errorf("generate participant id: %w", err)
	}
	p := &Participant{
		ID:            ID(raw),
		Name:          name,
		Alive:         true,
		CanVote:       true,
		CanUseAbility: true,
	}
	r.order = append(r.order, p)
	r.byID[p.ID] = p
	return p.ID, nil
}

// Remove drops a participant before roles are assigned.
func (r *Registry) Remove(pid ID) error {
	if r.started {
		return apperrors.New(apperrors.CodeRosterGameStarted, "the game has already started")
	}
	if _, ok := r.byID[pid]; !ok {
		return unknownParticipant(pid)
	}
	r.drop(map[ID]bool{pid: true})
	return nil
}

func (r *Registry) drop(remove map[ID]bool) {
	kept := r.order[:0]
	for _, p := range r.order {
		if remove[p.ID] {
			delete(r.byID, p.ID)
			continue
		}
		kept = append(kept, p)
	}
	r.order = kept
}

// Get returns the participant with the given id.
func (r *Registry) Get(pid ID) (*Participant, bool) {
	p, ok := r.byID[pid]
	return p, ok
}

// FindByName looks a participant up by display name, ignoring case.
func (r *Registry) FindByName(name string) (*Participant, bool) {
	key := nameKey(name)
	for _, p := range r.order {
		if nameKey(p.Name) == key {
			return p, true
		}
	}
	return nil, false
}

// All returns every participant in seat order, dead ones included.
func (r *Registry) All() []*Participant {
	out := make([]*Participant, len(r.order))
	copy(out, r.order)
	return out
}

// Alive returns the living participants in seat order.
func (r *Registry) Alive() []*Participant {
	out := make([]*Participant, 0, len(r.order))
	for _, p := range r.order {
		if p.Alive {
			out = append(out, p)
		}
	}
	return out
}

// MafiaAligned returns the living members of the mafia-aligned set.
func (r *Registry) MafiaAligned() []*Participant {
	out := make([]*Participant, 0)
	for _, p := range r.order {
		if p.Alive && p.MafiaAligned() {
			out = append(out, p)
		}
	}
	return out
}

// Len returns the number of registered participants.
func (r *Registry) Len() int {
	return len(r.order)
}

// Started reports whether roles have been assigned.
func (r *Registry) Started() bool {
	return r.started
}

// ConversionSpent reports whether the once-per-game conversion happened.
func (r *Registry) ConversionSpent() bool {
	return r.conversions > 0
}

// Convert moves a living lone predator into the mafia-aligned set. It
// succeeds at most once per game and is irreversible.
func (r *Registry) Convert(pid ID) bool {
	p, ok := r.byID[pid]
	if !ok || !p.Alive || r.conversions > 0 {
		return false
	}
	if !p.Descriptor().Convertible || p.Converted {
		return false
	}
	p.Team = role.TeamMafia
	p.Converted = true
	r.conversions++
	return true
}

// Kill marks a participant dead. It reports false when already dead.
func (r *Registry) Kill(pid ID, cause DeathCause, day int) bool {
	p, ok := r.byID[pid]
	if !ok || !p.Alive {
		return false
	}
	p.Alive = false
	p.CanVote = false
	p.CanUseAbility = false
	p.DeathCause = cause
	p.DiedOn = day
	return true
}

// Revive brings a dead participant back with fresh eligibility.
func (r *Registry) Revive(pid ID) bool {
	p, ok := r.byID[pid]
	if !ok || p.Alive {
		return false
	}
	p.Alive = true
	p.CanVote = true
	p.CanUseAbility = true
	p.DeathCause = DeathCauseNone
	p.DiedOn = 0
	return true
}

func unknownParticipant(pid ID) error {
	return apperrors.WithMetadata(apperrors.CodeRosterUnknownParticipant,
		fmt.Sprintf("participant %s is not registered", pid),
		map[string]string{"participant_id": string(pid)})
}
