package scenario

import (
	"context"
	"fmt"
	"strings"

	"github.com/louisbranch/nightfall/internal/game/night"
	"github.com/louisbranch/nightfall/internal/game/role"
	"github.com/louisbranch/nightfall/internal/game/roster"
	"github.com/louisbranch/nightfall/internal/game/victory"

	apperrors "github.com/louisbranch/nightfall/internal/platform/errors"
)

func (r *Runner) runStep(ctx context.Context, state *scenarioState, step Step) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	switch step.Kind {
	case "seed":
		return r.runSeedStep(state, step)
	case "players":
		return r.runPlayersStep(state, step)
	case "ruleset":
		return r.runRulesetStep(ctx, state, step)
	case "roles":
		return r.runRolesStep(state, step)
	case "act":
		return r.runActStep(state, step)
	case "withdraw":
		return r.runWithdrawStep(state, step)
	case "resolve":
		return r.runResolveStep(ctx, state)
	case "advance":
		return r.runAdvanceStep(ctx, state)
	case "nominate":
		return r.runNominateStep(state, step)
	case "confirm":
		return r.runConfirmStep(state, step)
	case "expect_alive":
		return r.runExpectLivenessStep(state, step, true)
	case "expect_dead":
		return r.runExpectLivenessStep(state, step, false)
	case "expect_record":
		return r.runExpectRecordStep(state, step)
	case "expect_phase":
		return r.runExpectPhaseStep(state, step)
	case "expect_winner":
		return r.runExpectWinnerStep(state, step)
	case "expect_team":
		return r.runExpectTeamStep(state, step)
	default:
		return fmt.Errorf("unknown step kind %q", step.Kind)
	}
}

func (r *Runner) runSeedStep(state *scenarioState, step Step) error {
	if state.session != nil {
		return r.failf("seed must come before players")
	}
	value, ok := step.Args["value"].(int)
	if !ok {
		return r.failf("seed value must be an integer")
	}
	state.seed = int64(value)
	return nil
}

func (r *Runner) runPlayersStep(state *scenarioState, step Step) error {
	s, err := r.ensureSession(state)
	if err != nil {
		return err
	}
	names, _ := step.Args["names"].([]any)
	for _, raw := range names {
		name, _ := raw.(string)
		pid, err := s.RegisterParticipant(name)
		if err != nil {
			return fmt.Errorf("register %s: %w", name, err)
		}
		state.players[name] = pid
		state.order = append(state.order, name)
	}
	return nil
}

func (r *Runner) runRulesetStep(ctx context.Context, state *scenarioState, step Step) error {
	if err := r.ensurePlayers(state); err != nil {
		return err
	}
	name := stringArg(step.Args, "name")
	if err := state.session.AssignRoles(ctx, nil, name); err != nil {
		return fmt.Errorf("assign roles: %w", err)
	}
	return nil
}

func (r *Runner) runRolesStep(state *scenarioState, step Step) error {
	if err := r.ensurePlayers(state); err != nil {
		return err
	}
	table := make(map[roster.ID]role.Kind, len(step.Args))
	for name, raw := range step.Args {
		pid, err := r.participantID(state, name)
		if err != nil {
			return err
		}
		label, _ := raw.(string)
		kind, err := role.ParseKind(label)
		if err != nil {
			return r.failf("role for %s: %v", name, err)
		}
		table[pid] = kind
	}
	if err := state.session.AssignRoleTable(table); err != nil {
		return fmt.Errorf("assign roles: %w", err)
	}
	return nil
}

func (r *Runner) runActStep(state *scenarioState, step Step) error {
	if err := r.ensurePlayers(state); err != nil {
		return err
	}
	actor, err := r.participantID(state, stringArg(step.Args, "actor"))
	if err != nil {
		return err
	}
	var target roster.ID
	if name := stringArg(step.Args, "target"); name != "" {
		if target, err = r.participantID(state, name); err != nil {
			return err
		}
	}
	effect := role.EffectUnspecified
	if name := stringArg(step.Args, "effect"); name != "" {
		if effect, err = role.ParseEffect(name); err != nil {
			return r.failf("%v", err)
		}
	}
	_, err = state.session.SubmitNightAction(actor, target, effect)
	return r.checkRejection(step, err)
}

func (r *Runner) runWithdrawStep(state *scenarioState, step Step) error {
	if err := r.ensurePlayers(state); err != nil {
		return err
	}
	actor, err := r.participantID(state, stringArg(step.Args, "name"))
	if err != nil {
		return err
	}
	return state.session.WithdrawNightAction(actor)
}

func (r *Runner) runResolveStep(ctx context.Context, state *scenarioState) error {
	if err := r.ensurePlayers(state); err != nil {
		return err
	}
	res, err := state.session.ResolveNight(ctx)
	if err != nil {
		return fmt.Errorf("resolve night: %w", err)
	}
	if res.Quiet {
		r.logf("  nothing happened tonight")
	}
	return nil
}

func (r *Runner) runAdvanceStep(ctx context.Context, state *scenarioState) error {
	if err := r.ensurePlayers(state); err != nil {
		return err
	}
	dayState, err := state.session.AdvanceDay(ctx)
	if err != nil {
		return fmt.Errorf("advance day: %w", err)
	}
	for _, o := range dayState.Announcements {
		r.logf("  %s", o.Message)
	}
	return nil
}

func (r *Runner) runNominateStep(state *scenarioState, step Step) error {
	if err := r.ensurePlayers(state); err != nil {
		return err
	}
	voter, err := r.participantID(state, stringArg(step.Args, "voter"))
	if err != nil {
		return err
	}
	var target roster.ID
	if name := stringArg(step.Args, "target"); name != "" {
		if target, err = r.participantID(state, name); err != nil {
			return err
		}
	}
	return r.checkRejection(step, state.session.CastNomination(voter, target))
}

func (r *Runner) runConfirmStep(state *scenarioState, step Step) error {
	if err := r.ensurePlayers(state); err != nil {
		return err
	}
	voter, err := r.participantID(state, stringArg(step.Args, "voter"))
	if err != nil {
		return err
	}
	approve, ok := step.Args["approve"].(bool)
	if !ok {
		return r.failf("confirm approve must be a boolean")
	}
	return r.checkRejection(step, state.session.CastConfirmation(voter, approve))
}

// checkRejection compares err with the step's reject expectation: a code
// string, or true for any rejection.
func (r *Runner) checkRejection(step Step, err error) error {
	want, expected := step.Args["reject"]
	if !expected {
		if err != nil {
			return fmt.Errorf("%s: %w", step.Kind, err)
		}
		return nil
	}
	if err == nil {
		return r.assertf("expected %s to be rejected", step.Kind)
	}
	switch want := want.(type) {
	case bool:
		if !want {
			return fmt.Errorf("%s: %w", step.Kind, err)
		}
	case string:
		if got := apperrors.CodeOf(err); !strings.EqualFold(string(got), want) {
			return r.assertf("expected rejection %s, got %s (%v)", want, got, err)
		}
	}
	r.logf("  rejected as expected: %v", err)
	return nil
}

func (r *Runner) runExpectLivenessStep(state *scenarioState, step Step, alive bool) error {
	if err := r.ensurePlayers(state); err != nil {
		return err
	}
	name := stringArg(step.Args, "name")
	pid, err := r.participantID(state, name)
	if err != nil {
		return err
	}
	p, _ := state.session.Participant(pid)
	if p.Alive != alive {
		return r.assertf("expected %s alive=%v, got %v", name, alive, p.Alive)
	}
	return nil
}

func (r *Runner) runExpectRecordStep(state *scenarioState, step Step) error {
	if err := r.ensurePlayers(state); err != nil {
		return err
	}
	name := stringArg(step.Args, "to")
	pid, err := r.participantID(state, name)
	if err != nil {
		return err
	}
	kind := night.Kind(stringArg(step.Args, "kind"))
	if kind == "" {
		return r.failf("expect_record kind is required")
	}
	got := 0
	for _, o := range state.session.RecordsFor(pid) {
		if o.Kind == kind {
			got++
		}
	}
	if want, ok := step.Args["count"].(int); ok {
		if got != want {
			return r.assertf("expected %d %s records for %s, got %d", want, kind, name, got)
		}
		return nil
	}
	if got == 0 {
		return r.assertf("expected a %s record for %s", kind, name)
	}
	return nil
}

func (r *Runner) runExpectPhaseStep(state *scenarioState, step Step) error {
	if err := r.ensurePlayers(state); err != nil {
		return err
	}
	want := stringArg(step.Args, "name")
	if got := state.session.PhaseName(); !strings.EqualFold(got, want) {
		return r.assertf("expected phase %s, got %s", want, got)
	}
	return nil
}

func (r *Runner) runExpectWinnerStep(state *scenarioState, step Step) error {
	if err := r.ensurePlayers(state); err != nil {
		return err
	}
	want, err := victory.ParseSide(stringArg(step.Args, "name"))
	if err != nil {
		return r.failf("%v", err)
	}
	if got := state.session.Winner(); got != want {
		return r.assertf("expected winner %s, got %s", want, got)
	}
	return nil
}

func (r *Runner) runExpectTeamStep(state *scenarioState, step Step) error {
	if err := r.ensurePlayers(state); err != nil {
		return err
	}
	name := stringArg(step.Args, "name")
	pid, err := r.participantID(state, name)
	if err != nil {
		return err
	}
	want, err := role.ParseTeam(stringArg(step.Args, "team"))
	if err != nil {
		return r.failf("%v", err)
	}
	p, _ := state.session.Participant(pid)
	if p.Team != want {
		return r.assertf("expected %s on team %s, got %s", name, want, p.Team)
	}
	return nil
}

func (r *Runner) ensurePlayers(state *scenarioState) error {
	if state.session == nil || len(state.players) == 0 {
		return r.failf("players are required")
	}
	return nil
}

func (r *Runner) participantID(state *scenarioState, name string) (roster.ID, error) {
	if name == "" {
		return "", r.failf("participant name is required")
	}
	if pid, ok := state.players[name]; ok {
		return pid, nil
	}
	return "", r.failf("unknown participant %q", name)
}

func (r *Runner) failf(format string, args ...any) error {
	return r.assertions.Failf(format, args...)
}

func (r *Runner) assertf(format string, args ...any) error {
	return r.assertions.Assertf(format, args...)
}

func stringArg(args map[string]any, key string) string {
	value, _ := args[key].(string)
	return strings.TrimSpace(value)
}
