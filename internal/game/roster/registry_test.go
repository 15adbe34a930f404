package roster

import (
	"errors"
	"fmt"
	"testing"

	"github.com/louisbranch/nightfall/internal/game/role"

	apperrors "github.com/louisbranch/nightfall/internal/platform/errors"
)

func sequentialIDs() func() (string, error) {
	n := 0
	return func() (string, error) {
		n++
		return fmt.Sprintf("p%d", n), nil
	}
}

func registerAll(t *testing.T, r *Registry, names ...string) []ID {
	t.Helper()
	ids := make([]ID, 0, len(names))
	for _, name := range names {
		pid, err := r.Register(name)
		if err != nil {
			t.Fatalf("register %s: %v", name, err)
		}
		ids = append(ids, pid)
	}
	return ids
}

func TestRegisterNormalizesName(t *testing.T) {
	r := NewRegistry(sequentialIDs())

	pid, err := r.Register("  Min   Ji  ")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	p, ok := r.Get(pid)
	if !ok {
		t.Fatal("expected participant")
	}
	if p.Name != "Min Ji" {
		t.Fatalf("expected normalized name, got %q", p.Name)
	}
	if !p.Alive || !p.CanVote || !p.CanUseAbility {
		t.Fatalf("expected fresh eligibility, got %+v", p)
	}
}

func TestRegisterRejectsInvalidNames(t *testing.T) {
	tests := []struct {
		name string
		code apperrors.Code
	}{
		{name: "   ", code: apperrors.CodeRosterEmptyName},
		{name: "ALICE", code: apperrors.CodeRosterDuplicateName},
		{name: "JOSE\u0301", code: apperrors.CodeRosterDuplicateName},
	}

	r := NewRegistry(sequentialIDs())
	registerAll(t, r, "Alice", "José")

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Register(tt.name)
			if !errors.Is(err, apperrors.New(tt.code, "")) {
				t.Fatalf("expected %s, got %v", tt.code, err)
			}
			if !apperrors.IsClass(err, apperrors.ClassRoster) {
				t.Fatalf("expected roster class, got %v", err)
			}
		})
	}
}

func TestRegisterPropagatesIDFailure(t *testing.T) {
	r := NewRegistry(func() (string, error) { return "", errors.New("no entropy") })
	if _, err := r.Register("Alice"); err == nil {
		t.Fatal("expected id generator error")
	}
}

func TestRemove(t *testing.T) {
	r := NewRegistry(sequentialIDs())
	ids := registerAll(t, r, "Alice", "Bob", "Cara")

	if err := r.Remove(ids[1]); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if r.Len() != 2 {
		t.Fatalf("expected 2 participants, got %d", r.Len())
	}
	if _, ok := r.Get(ids[1]); ok {
		t.Fatal("expected Bob to be gone")
	}
	if err := r.Remove(ids[1]); !errors.Is(err, apperrors.New(apperrors.CodeRosterUnknownParticipant, "")) {
		t.Fatalf("expected unknown participant, got %v", err)
	}
	if _, err := r.Register("Bob"); err != nil {
		t.Fatalf("expected name to be free again: %v", err)
	}
}

func TestRosterLockedAfterStart(t *testing.T) {
	r := NewRegistry(sequentialIDs())
	ids := registerAll(t, r, "Alice", "Bob")
	if err := r.AssignTable(map[ID]role.Kind{ids[0]: role.KindMafia, ids[1]: role.KindCitizen}); err != nil {
		t.Fatalf("assign table: %v", err)
	}

	started := apperrors.New(apperrors.CodeRosterGameStarted, "")
	if _, err := r.Register("Cara"); !errors.Is(err, started) {
		t.Fatalf("expected game started on register, got %v", err)
	}
	if err := r.Remove(ids[0]); !errors.Is(err, started) {
		t.Fatalf("expected game started on remove, got %v", err)
	}
}

func TestConvertHappensOncePerGame(t *testing.T) {
	r := NewRegistry(sequentialIDs())
	ids := registerAll(t, r, "Wolf", "Boss", "Town")
	if err := r.AssignTable(map[ID]role.Kind{
		ids[0]: role.KindWerewolf,
		ids[1]: role.KindMafia,
		ids[2]: role.KindCitizen,
	}); err != nil {
		t.Fatalf("assign table: %v", err)
	}

	if r.Convert(ids[2]) {
		t.Fatal("expected citizen not to convert")
	}
	if !r.Convert(ids[0]) {
		t.Fatal("expected werewolf to convert")
	}
	if r.Convert(ids[0]) {
		t.Fatal("expected second conversion to be refused")
	}
	if got := len(r.MafiaAligned()); got != 2 {
		t.Fatalf("expected 2 mafia-aligned, got %d", got)
	}
	if !r.ConversionSpent() {
		t.Fatal("expected conversion spent")
	}
}

func TestKillAndRevive(t *testing.T) {
	r := NewRegistry(sequentialIDs())
	ids := registerAll(t, r, "Alice")

	if !r.Kill(ids[0], DeathCauseNight, 2) {
		t.Fatal("expected kill")
	}
	if r.Kill(ids[0], DeathCauseNight, 2) {
		t.Fatal("expected second kill to be a no-op")
	}
	p, _ := r.Get(ids[0])
	if p.Alive || p.CanVote || p.DeathCause != DeathCauseNight || p.DiedOn != 2 {
		t.Fatalf("unexpected dead participant state %+v", p)
	}
	if len(r.Alive()) != 0 || len(r.All()) != 1 {
		t.Fatal("expected dead participant to stay registered")
	}

	if !r.Revive(ids[0]) {
		t.Fatal("expected revive")
	}
	if !p.Alive || p.DeathCause != DeathCauseNone {
		t.Fatalf("unexpected revived state %+v", p)
	}
}
