package session

import (
	"context"
	"fmt"
	"io"
	"log"
	"math/rand"
	"time"

	"github.com/louisbranch/nightfall/internal/game/day"
	"github.com/louisbranch/nightfall/internal/game/event"
	"github.com/louisbranch/nightfall/internal/game/night"
	"github.com/louisbranch/nightfall/internal/game/role"
	"github.com/louisbranch/nightfall/internal/game/roster"
	"github.com/louisbranch/nightfall/internal/game/victory"
	"github.com/louisbranch/nightfall/internal/random"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/louisbranch/nightfall/internal/platform/errors"
)

const tracerName = "github.com/louisbranch/nightfall/internal/game/session"

// Options configures a new Session.
type Options struct {
	// Logger receives phase transitions; nil discards them.
	Logger *log.Logger
	// Seed drives role dealing. Zero picks a random seed.
	Seed int64
	// IDGenerator issues participant ids; nil uses random ids.
	IDGenerator func() (string, error)
	// Tracer records spans around phase changes; nil uses the global provider.
	Tracer trace.Tracer
	// Clock stamps journal events; nil uses time.Now.
	Clock func() time.Time
}

// Session is the state of one game.
type Session struct {
	logger *log.Logger
	tracer trace.Tracer
	seed   int64
	rng    *rand.Rand

	reg     *roster.Registry
	ledger  *night.Ledger
	resolve *day.Resolver
	journal *event.Journal

	stage   Stage
	day     int
	history []night.Outcome
	winner  victory.Side
}

// New creates a session in the setup stage.
func New(opts Options) (*Session, error) {
	rng, seed, err := random.Source(opts.Seed)
	if err != nil {
		return nil, fmt.Errorf("seed session: %w", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	tracer := opts.Tracer
	if tracer == nil {
		tracer = otel.Tracer(tracerName)
	}
	return &Session{
		logger:  logger,
		tracer:  tracer,
		seed:    seed,
		rng:     rng,
		reg:     roster.NewRegistry(opts.IDGenerator),
		ledger:  night.NewLedger(),
		journal: event.NewJournal(opts.Clock),
		stage:   StageSetup,
	}, nil
}

// Seed returns the seed the session deals with.
func (s *Session) Seed() int64 {
	return s.seed
}

// Stage returns the lifecycle stage.
func (s *Session) Stage() Stage {
	return s.stage
}

// Day returns the day counter; zero during setup.
func (s *Session) Day() int {
	return s.day
}

// PhaseName names the current step: the stage, or the day phase while a
// day is running.
func (s *Session) PhaseName() string {
	if s.stage == StageDay && s.resolve != nil {
		return s.resolve.Phase().String()
	}
	return s.stage.String()
}

// Winner returns the winning side once the game is over.
func (s *Session) Winner() victory.Side {
	return s.winner
}

// RegisterParticipant adds a participant before the deal.
func (s *Session) RegisterParticipant(name string) (roster.ID, error) {
	pid, err := s.reg.Register(name)
	if err != nil {
		return "", err
	}
	p, _ := s.reg.Get(pid)
	s.record(event.Event{Type: event.TypeParticipantRegistered, EntityID: string(pid)},
		map[string]string{"name": p.Name})
	s.logf("registered %s", p.Name)
	return pid, nil
}

// RemoveParticipant drops a participant before the deal.
func (s *Session) RemoveParticipant(pid roster.ID) error {
	if err := s.reg.Remove(pid); err != nil {
		return err
	}
	s.record(event.Event{Type: event.TypeParticipantRemoved, EntityID: string(pid)}, nil)
	return nil
}

// AssignRoles deals the named ruleset to ids (nil seats everyone) and
// opens the first night.
func (s *Session) AssignRoles(ctx context.Context, ids []roster.ID, rulesetName string) (err error) {
	_, span := s.tracer.Start(ctx, "session.assign_roles",
		trace.WithAttributes(attribute.String("nightfall.ruleset", rulesetName)))
	defer func() { endSpan(span, err) }()

	rs, err := roster.LookupRuleset(rulesetName)
	if err != nil {
		return err
	}
	if err := s.reg.AssignRoles(ids, rs, s.rng); err != nil {
		return err
	}
	span.SetAttributes(attribute.Int("nightfall.players", s.reg.Len()))
	s.start(rs.Name)
	return nil
}

// AssignRoleTable deals an explicit role to every participant and opens
// the first night.
func (s *Session) AssignRoleTable(table map[roster.ID]role.Kind) error {
	if err := s.reg.AssignTable(table); err != nil {
		return err
	}
	s.start("table")
	return nil
}

func (s *Session) start(ruleset string) {
	s.stage = StageNight
	s.day = 1
	roles := make(map[string]string, s.reg.Len())
	for _, p := range s.reg.All() {
		roles[string(p.ID)] = p.Role.String()
	}
	s.record(event.Event{Type: event.TypeRolesAssigned}, map[string]any{
		"ruleset": ruleset,
		"seed":    s.seed,
		"roles":   roles,
	})
	s.logf("roles dealt (%s, %d players); night %d begins", ruleset, s.reg.Len(), s.day)
}

// SubmitNightAction records the actor's action for tonight. An unspecified
// effect uses the actor's own night effect.
func (s *Session) SubmitNightAction(actor, target roster.ID, effect role.Effect) (night.Action, error) {
	if err := s.expectStage(StageNight); err != nil {
		return night.Action{}, err
	}
	a, err := s.ledger.Submit(s.reg, actor, target, effect)
	if err != nil {
		s.logf("night %d: rejected submission by %s: %v", s.day, actor, err)
		return night.Action{}, err
	}
	s.record(event.Event{
		Type:      event.TypeNightActionSubmitted,
		ActorType: event.ActorTypeParticipant,
		ActorID:   string(actor),
		EntityID:  string(target),
	}, map[string]any{"effect": a.Effect.String(), "priority": a.Priority})
	return a, nil
}

// WithdrawNightAction drops the actor's action for tonight.
func (s *Session) WithdrawNightAction(actor roster.ID) error {
	if err := s.expectStage(StageNight); err != nil {
		return err
	}
	if !s.ledger.Withdraw(actor) {
		return apperrors.WithMetadata(apperrors.CodeSubmissionNothingToWithdraw,
			fmt.Sprintf("participant %s has no action tonight", actor),
			map[string]string{"actor_id": string(actor)})
	}
	s.record(event.Event{
		Type:      event.TypeNightActionWithdrawn,
		ActorType: event.ActorTypeParticipant,
		ActorID:   string(actor),
	}, nil)
	return nil
}

// ResolveNight settles tonight's ledger and opens the day, or ends the game.
func (s *Session) ResolveNight(ctx context.Context) (res night.Result, err error) {
	_, span := s.tracer.Start(ctx, "session.resolve_night",
		trace.WithAttributes(
			attribute.Int("nightfall.day", s.day),
			attribute.Int("nightfall.actions", s.ledger.Len()),
		))
	defer func() { endSpan(span, err) }()

	if err := s.expectStage(StageNight); err != nil {
		return night.Result{}, err
	}

	res = night.Resolve(s.reg, s.ledger, s.day)
	s.history = append(s.history, s.ledger.Records()...)
	s.history = append(s.history, res.Records...)
	span.SetAttributes(
		attribute.Int("nightfall.deaths", len(res.Deaths)),
		attribute.Bool("nightfall.quiet", res.Quiet),
	)

	s.record(event.Event{Type: event.TypeNightResolved}, map[string]any{
		"deaths":  len(res.Deaths),
		"records": len(res.Records),
		"quiet":   res.Quiet,
	})
	for _, pid := range res.Deaths {
		s.record(event.Event{Type: event.TypeParticipantDied, EntityID: string(pid)},
			map[string]string{"cause": roster.DeathCauseNight.String()})
		s.logf("night %d: %s died", s.day, s.name(pid))
	}
	if res.Converted != "" {
		s.record(event.Event{Type: event.TypeTeamConverted, EntityID: string(res.Converted)},
			map[string]string{"team": role.TeamMafia.String()})
		s.logf("night %d: %s joined the mafia", s.day, s.name(res.Converted))
	}
	if res.Quiet {
		s.logf("night %d: nothing happened", s.day)
	}

	if s.settleVictory() {
		s.ledger.Clear()
		return res, nil
	}
	s.stage = StageDay
	s.resolve = day.NewResolver(s.reg, s.day, res.DeathNotices())
	s.logf("day %d begins", s.day)
	return res, nil
}

// CastNomination records the voter's nomination; an empty target abstains.
func (s *Session) CastNomination(voter, target roster.ID) error {
	if err := s.expectStage(StageDay); err != nil {
		return err
	}
	return s.resolve.Nominate(voter, target)
}

// CastConfirmation records the voter's verdict on the nominee.
func (s *Session) CastConfirmation(voter roster.ID, approve bool) error {
	if err := s.expectStage(StageDay); err != nil {
		return err
	}
	return s.resolve.Confirm(voter, approve)
}

// AdvanceDay moves the day one step: announce, close nominations, close
// confirmations, then finalize into the next night.
func (s *Session) AdvanceDay(ctx context.Context) (state DayPhaseState, err error) {
	if err := s.expectStage(StageDay); err != nil {
		return DayPhaseState{Stage: s.stage, Day: s.day, Winner: s.winner}, err
	}
	from := s.resolve.Phase()
	_, span := s.tracer.Start(ctx, "session.advance_day",
		trace.WithAttributes(
			attribute.Int("nightfall.day", s.day),
			attribute.String("nightfall.phase", from.String()),
		))
	defer func() { endSpan(span, err) }()

	state = DayPhaseState{Day: s.day}
	switch from {
	case day.PhaseAnnounce:
		out, err := s.resolve.Announce()
		if err != nil {
			return state, err
		}
		s.history = append(s.history, out...)
		state.Announcements = out
	case day.PhaseNominate:
		tally, err := s.resolve.CloseNominations()
		if err != nil {
			return state, err
		}
		state.Tally = &tally
		if tally.Leader != "" {
			s.record(event.Event{Type: event.TypeDayNominated, EntityID: string(tally.Leader)},
				map[string]int{"weight": tally.Weights[tally.Leader]})
			s.logf("day %d: %s is nominated", s.day, s.name(tally.Leader))
		} else {
			s.voidDay()
		}
	case day.PhaseConfirm:
		verdict, err := s.resolve.CloseConfirmations()
		if err != nil {
			return state, err
		}
		if verdict.Outcome == day.OutcomeExecuted {
			s.record(event.Event{Type: event.TypeDayExecuted, EntityID: string(verdict.Nominee)},
				map[string]int{"approve": verdict.Approve, "reject": verdict.Reject})
			s.record(event.Event{Type: event.TypeParticipantDied, EntityID: string(verdict.Nominee)},
				map[string]string{"cause": roster.DeathCauseExecution.String()})
			s.logf("day %d: %s was executed", s.day, s.name(verdict.Nominee))
			if s.settleVictory() {
				s.ledger.Clear()
				state.Stage = s.stage
				state.Phase = day.PhaseFinalize
				state.Verdict = &verdict
				state.Winner = s.winner
				return state, nil
			}
		} else {
			s.voidDay()
		}
	case day.PhaseFinalize:
		return s.finalizeDay(), nil
	}

	if verdict := s.resolve.Verdict(); verdict.Outcome != day.OutcomePending {
		state.Verdict = &verdict
	}
	state.Stage = s.stage
	state.Phase = s.resolve.Phase()
	return state, nil
}

func (s *Session) voidDay() {
	verdict := s.resolve.Verdict()
	s.record(event.Event{Type: event.TypeDayVoteVoid, EntityID: string(verdict.Nominee)},
		map[string]string{"outcome": verdict.Outcome.String()})
	s.logf("day %d: vote void (%s)", s.day, verdict.Outcome)
}

func (s *Session) finalizeDay() DayPhaseState {
	verdict := s.resolve.Verdict()
	state := DayPhaseState{Day: s.day, Phase: day.PhaseFinalize, Verdict: &verdict}

	s.ledger.Clear()
	if s.settleVictory() {
		state.Stage = s.stage
		state.Winner = s.winner
		return state
	}
	state.Succession = night.Succession(s.reg)
	s.history = append(s.history, state.Succession...)
	s.day++
	s.stage = StageNight
	s.resolve = nil
	s.logf("night %d begins", s.day)

	state.Stage = s.stage
	state.Day = s.day
	return state
}

// CheckVictory evaluates the win conditions against the current roster.
func (s *Session) CheckVictory() (victory.Side, bool) {
	if s.stage == StageSetup {
		return victory.SideNone, false
	}
	return victory.Evaluate(s.reg)
}

func (s *Session) settleVictory() bool {
	side, over := s.CheckVictory()
	if !over {
		return false
	}
	s.stage = StageOver
	s.winner = side
	s.resolve = nil
	s.record(event.Event{Type: event.TypeGameEnded}, map[string]string{"winner": side.String()})
	s.logf("game over: %s win", side)
	return true
}

// RecordsFor returns every record pid may read, in production order,
// including acknowledgements of tonight's pending actions.
func (s *Session) RecordsFor(pid roster.ID) []night.Outcome {
	p, ok := s.reg.Get(pid)
	if !ok {
		return nil
	}
	var out []night.Outcome
	for _, o := range s.history {
		if o.VisibleTo(p) {
			out = append(out, o)
		}
	}
	if s.stage != StageNight {
		// Resolved acknowledgements are already part of the history.
		return out
	}
	for _, o := range s.ledger.Records() {
		if o.VisibleTo(p) {
			out = append(out, o)
		}
	}
	return out
}

// Participant returns a copy of one participant.
func (s *Session) Participant(pid roster.ID) (roster.Participant, bool) {
	p, ok := s.reg.Get(pid)
	if !ok {
		return roster.Participant{}, false
	}
	return *p, true
}

// ParticipantByName returns a copy of the participant with the given name.
func (s *Session) ParticipantByName(name string) (roster.Participant, bool) {
	p, ok := s.reg.FindByName(name)
	if !ok {
		return roster.Participant{}, false
	}
	return *p, true
}

// Participants returns copies of every participant in seat order.
func (s *Session) Participants() []roster.Participant {
	all := s.reg.All()
	out := make([]roster.Participant, 0, len(all))
	for _, p := range all {
		out = append(out, *p)
	}
	return out
}

// Journal returns every event appended so far.
func (s *Session) Journal() []event.Event {
	return s.journal.List(0, 0)
}

func (s *Session) expectStage(stage Stage) error {
	if s.stage == stage {
		return nil
	}
	if s.stage == StageOver {
		return apperrors.WithMetadata(apperrors.CodeGameOver,
			fmt.Sprintf("the game is over: %s won", s.winner),
			map[string]string{"winner": s.winner.String()})
	}
	return apperrors.WithMetadata(apperrors.CodePhaseMismatch,
		fmt.Sprintf("the game is in the %s stage, not %s", s.stage, stage),
		map[string]string{"stage": s.stage.String(), "expected": stage.String()})
}

func (s *Session) record(evt event.Event, payload any) {
	evt.Day = s.day
	if payload != nil {
		withPayload, err := evt.WithPayload(payload)
		if err != nil {
			s.logf("journal %s: %v", evt.Type, err)
			return
		}
		evt = withPayload
	}
	if _, err := s.journal.Append(evt); err != nil {
		s.logf("journal %s: %v", evt.Type, err)
	}
}

func (s *Session) name(pid roster.ID) string {
	if p, ok := s.reg.Get(pid); ok {
		return p.Name
	}
	return string(pid)
}

func (s *Session) logf(format string, args ...any) {
	s.logger.Printf(format, args...)
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
