package scenario

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/louisbranch/nightfall/internal/game/roster"
	"github.com/louisbranch/nightfall/internal/game/session"
	"github.com/louisbranch/nightfall/internal/platform/timeouts"
)

// Config controls scenario execution.
type Config struct {
	// Seed overrides the deal seed of scripts that do not call seed().
	Seed       int64
	Timeout    time.Duration
	Assertions AssertionMode
	Verbose    bool
	Logger     *log.Logger
}

// DefaultConfig returns default runner configuration.
func DefaultConfig() Config {
	return Config{
		Timeout:    timeouts.ScenarioStep,
		Assertions: AssertionStrict,
		Verbose:    false,
	}
}

// Runner executes Lua scenarios against an in-process game session.
type Runner struct {
	assertions Assertions
	logger     *log.Logger
	verbose    bool
	timeout    time.Duration
	seed       int64
	// idGenerator is handed to every session the runner creates.
	idGenerator func() (string, error)
}

// NewRunner prepares a scenario runner. Config defaults (logger, timeout)
// are applied here so they are testable.
func NewRunner(cfg Config) *Runner {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(os.Stderr, "", 0)
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = timeouts.ScenarioStep
	}

	return &Runner{
		assertions: Assertions{Mode: cfg.Assertions, Logger: logger},
		logger:     logger,
		verbose:    cfg.Verbose,
		timeout:    timeout,
		seed:       cfg.Seed,
	}
}

// RunFile loads and executes a scenario file.
func RunFile(ctx context.Context, cfg Config, path string) error {
	scenario, err := LoadScenarioFromFile(path)
	if err != nil {
		return err
	}
	return NewRunner(cfg).RunScenario(ctx, scenario)
}

// RunScenario executes the scenario steps against a fresh session.
func (r *Runner) RunScenario(ctx context.Context, scenario *Scenario) error {
	if scenario == nil {
		return errors.New("scenario is required")
	}
	r.logf("scenario start: %s (%d steps)", scenario.Name, len(scenario.Steps))
	state := &scenarioState{
		seed:    r.seed,
		players: map[string]roster.ID{},
	}

	for index, step := range scenario.Steps {
		stepNumber := index + 1
		r.logf("step %d/%d start: %s", stepNumber, len(scenario.Steps), step.Kind)
		stepStart := time.Now()
		stepCtx, cancel := context.WithTimeout(ctx, r.timeout)
		err := r.runStep(stepCtx, state, step)
		cancel()
		if err != nil {
			return fmt.Errorf("step %d (%s): %w", stepNumber, step.Kind, err)
		}
		r.printJournal(state)
		r.logf("step %d/%d done: %s (%s)", stepNumber, len(scenario.Steps), step.Kind, time.Since(stepStart))
	}
	r.logf("scenario done: %s", scenario.Name)
	return nil
}

func (r *Runner) ensureSession(state *scenarioState) (*session.Session, error) {
	if state.session != nil {
		return state.session, nil
	}
	opts := session.Options{Seed: state.seed, IDGenerator: r.idGenerator}
	if r.verbose {
		opts.Logger = r.logger
	}
	s, err := session.New(opts)
	if err != nil {
		return nil, err
	}
	state.session = s
	return s, nil
}

func (r *Runner) printJournal(state *scenarioState) {
	if !r.verbose || state.session == nil {
		return
	}
	for _, evt := range state.session.Journal() {
		if evt.Seq <= state.journalSeq {
			continue
		}
		r.logger.Printf("  event %d: %s day=%d actor=%s entity=%s %s",
			evt.Seq, evt.Type, evt.Day, evt.ActorID, evt.EntityID, evt.PayloadJSON)
		state.journalSeq = evt.Seq
	}
}

func (r *Runner) logf(format string, args ...any) {
	if !r.verbose || r.logger == nil {
		return
	}
	r.logger.Printf(format, args...)
}
