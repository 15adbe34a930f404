package event

import (
	"testing"
	"time"
)

func fixedClock() func() time.Time {
	stamp := time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		stamp = stamp.Add(time.Minute)
		return stamp
	}
}

func TestJournalAppend_AssignsSeqAndTimestamp(t *testing.T) {
	journal := NewJournal(fixedClock())

	first, err := journal.Append(Event{Type: TypeRolesAssigned})
	if err != nil {
		t.Fatalf("append first: %v", err)
	}
	if first.Seq != 1 {
		t.Fatalf("first seq = %d, want %d", first.Seq, 1)
	}
	if first.ActorType != ActorTypeSystem {
		t.Fatalf("actor type = %q, want %q", first.ActorType, ActorTypeSystem)
	}

	second, err := journal.Append(Event{Type: TypeNightActionSubmitted, ActorType: ActorTypeParticipant, ActorID: "p1"})
	if err != nil {
		t.Fatalf("append second: %v", err)
	}
	if second.Seq != 2 {
		t.Fatalf("second seq = %d, want %d", second.Seq, 2)
	}
	if !second.Timestamp.After(first.Timestamp) {
		t.Fatalf("expected increasing timestamps, got %v then %v", first.Timestamp, second.Timestamp)
	}
}

func TestJournalAppend_RejectsInvalidEvents(t *testing.T) {
	journal := NewJournal(fixedClock())

	if _, err := journal.Append(Event{Type: " "}); err == nil {
		t.Fatal("expected error for empty type")
	}
	if _, err := journal.Append(Event{Type: TypeDayNominated, ActorType: ActorTypeParticipant}); err == nil {
		t.Fatal("expected error for participant event without actor")
	}
	if journal.Len() != 0 {
		t.Fatalf("journal length = %d, want 0", journal.Len())
	}
}

func TestJournalList_RespectsAfterSeqAndLimit(t *testing.T) {
	journal := NewJournal(fixedClock())
	for idx := 0; idx < 3; idx++ {
		if _, err := journal.Append(Event{Type: TypeNightResolved, Day: idx + 1}); err != nil {
			t.Fatalf("append %d: %v", idx, err)
		}
	}

	page := journal.List(1, 2)
	if len(page) != 2 {
		t.Fatalf("page length = %d, want %d", len(page), 2)
	}
	if page[0].Seq != 2 || page[1].Seq != 3 {
		t.Fatalf("page seqs = %d,%d, want 2,3", page[0].Seq, page[1].Seq)
	}
	if got := journal.List(3, 0); len(got) != 0 {
		t.Fatalf("expected empty tail, got %d", len(got))
	}
	if got := journal.List(0, 0); len(got) != 3 {
		t.Fatalf("expected full list, got %d", len(got))
	}
}

func TestJournalOfType(t *testing.T) {
	journal := NewJournal(fixedClock())
	for _, typ := range []Type{TypeNightResolved, TypeParticipantDied, TypeNightResolved} {
		if _, err := journal.Append(Event{Type: typ}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	if got := journal.OfType(TypeNightResolved); len(got) != 2 {
		t.Fatalf("night events = %d, want 2", len(got))
	}
}

func TestEventPayloadRoundTrip(t *testing.T) {
	type died struct {
		Cause string `json:"cause"`
	}
	evt, err := Event{Type: TypeParticipantDied}.WithPayload(died{Cause: "night"})
	if err != nil {
		t.Fatalf("with payload: %v", err)
	}
	if string(evt.PayloadJSON) != `{"cause":"night"}` {
		t.Fatalf("payload = %s", evt.PayloadJSON)
	}
	var got died
	if err := evt.DecodePayload(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Cause != "night" {
		t.Fatalf("cause = %q, want night", got.Cause)
	}
}

func TestTypeDomain(t *testing.T) {
	if got := TypeDayExecuted.Domain(); got != "day" {
		t.Fatalf("domain = %q, want day", got)
	}
	if got := Type("bare").Domain(); got != "bare" {
		t.Fatalf("domain = %q, want bare", got)
	}
}
