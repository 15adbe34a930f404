// Package event records what happened in a game as an append-only journal
// of typed, sequenced facts.
package event

import (
	"encoding/json"
	"fmt"
	"time"
)

// Type identifies the type of a game event.
type Type string

// Setup events.
const (
	// TypeParticipantRegistered records a participant joining the table.
	TypeParticipantRegistered Type = "participant.registered"
	// TypeParticipantRemoved records a participant leaving before the deal.
	TypeParticipantRemoved Type = "participant.removed"
	// TypeRolesAssigned records the deal that starts the game.
	TypeRolesAssigned Type = "roles.assigned"
)

// Night events.
const (
	// TypeNightActionSubmitted records an accepted night submission.
	TypeNightActionSubmitted Type = "night.action_submitted"
	// TypeNightActionWithdrawn records a participant dropping their action.
	TypeNightActionWithdrawn Type = "night.action_withdrawn"
	// TypeNightResolved records the settlement of a night.
	TypeNightResolved Type = "night.resolved"
	// TypeParticipantDied records a death from any cause.
	TypeParticipantDied Type = "participant.died"
	// TypeTeamConverted records the lone predator joining the mafia.
	TypeTeamConverted Type = "team.converted"
)

// Day events.
const (
	// TypeDayNominated records the plurality nominee of a day.
	TypeDayNominated Type = "day.nominated"
	// TypeDayExecuted records a confirmed execution.
	TypeDayExecuted Type = "day.executed"
	// TypeDayVoteVoid records a day that ended without an execution.
	TypeDayVoteVoid Type = "day.vote_void"
	// TypeGameEnded records the winning side.
	TypeGameEnded Type = "game.ended"
)

// ActorType identifies who or what triggered an event.
type ActorType string

const (
	// ActorTypeSystem indicates the event was produced by the engine.
	ActorTypeSystem ActorType = "system"
	// ActorTypeParticipant indicates the event was triggered by a participant.
	ActorTypeParticipant ActorType = "participant"
)

// Event is an immutable entry in the game journal.
type Event struct {
	// Seq is the sequence number within the game (starts at 1).
	// Assigned by the journal on append.
	Seq uint64
	// Timestamp is assigned by the journal clock on append.
	Timestamp time.Time
	// Day is the day counter when the event occurred.
	Day  int
	Type Type
	// ActorType identifies who triggered the event.
	ActorType ActorType
	// ActorID is the participant ID if ActorType is participant.
	ActorID string
	// EntityID is the ID of the participant the event is about.
	EntityID    string
	PayloadJSON []byte
}

// Domain returns the domain prefix of the event type (e.g., "night", "day").
func (t Type) Domain() string {
	for i, c := range t {
		if c == '.' {
			return string(t[:i])
		}
	}
	return string(t)
}

// WithPayload returns a copy of the event carrying payload encoded as JSON.
func (e Event) WithPayload(payload any) (Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return e, fmt.Errorf("encode %s payload: %w", e.Type, err)
	}
	e.PayloadJSON = data
	return e, nil
}

// DecodePayload decodes the event payload into target.
func (e Event) DecodePayload(target any) error {
	if len(e.PayloadJSON) == 0 {
		return nil
	}
	if err := json.Unmarshal(e.PayloadJSON, target); err != nil {
		return fmt.Errorf("decode %s payload: %w", e.Type, err)
	}
	return nil
}
