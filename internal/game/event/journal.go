package event

import (
	"fmt"
	"strings"
	"time"
)

// Journal is an in-memory, append-only event log for one game.
type Journal struct {
	events []Event
	clock  func() time.Time
}

// NewJournal creates an empty journal. A nil clock uses time.Now.
func NewJournal(clock func() time.Time) *Journal {
	if clock == nil {
		clock = time.Now
	}
	return &Journal{clock: clock}
}

// Append assigns the next sequence number and a timestamp, then stores the event.
func (j *Journal) Append(evt Event) (Event, error) {
	if strings.TrimSpace(string(evt.Type)) == "" {
		return Event{}, fmt.Errorf("event type is required")
	}
	if evt.ActorType == "" {
		evt.ActorType = ActorTypeSystem
	}
	if evt.ActorType == ActorTypeParticipant && evt.ActorID == "" {
		return Event{}, fmt.Errorf("participant event %s requires an actor id", evt.Type)
	}
	evt.Seq = uint64(len(j.events)) + 1
	evt.Timestamp = j.clock().UTC()
	j.events = append(j.events, evt)
	return evt, nil
}

// List returns up to limit events with a sequence greater than afterSeq.
// A non-positive limit returns every remaining event.
func (j *Journal) List(afterSeq uint64, limit int) []Event {
	if afterSeq >= uint64(len(j.events)) {
		return nil
	}
	rest := j.events[afterSeq:]
	if limit > 0 && limit < len(rest) {
		rest = rest[:limit]
	}
	out := make([]Event, len(rest))
	copy(out, rest)
	return out
}

// OfType returns every event of the given type in sequence order.
func (j *Journal) OfType(t Type) []Event {
	var out []Event
	for _, evt := range j.events {
		if evt.Type == t {
			out = append(out, evt)
		}
	}
	return out
}

// Len returns the number of events appended so far.
func (j *Journal) Len() int {
	return len(j.events)
}
