package scenario

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func sequentialIDs() func() (string, error) {
	n := 0
	return func() (string, error) {
		n++
		return fmt.Sprintf("p%d", n), nil
	}
}

func newTestRunner(cfg Config) *Runner {
	runner := NewRunner(cfg)
	runner.idGenerator = sequentialIDs()
	return runner
}

func TestRunTestdataScenarios(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "*.lua"))
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(paths) == 0 {
		t.Fatal("expected testdata scenarios")
	}
	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			scenario, err := LoadScenarioFromFile(path)
			if err != nil {
				t.Fatalf("load scenario: %v", err)
			}
			var buf bytes.Buffer
			runner := newTestRunner(Config{Logger: log.New(&buf, "", 0), Seed: 1})
			if err := runner.RunScenario(context.Background(), scenario); err != nil {
				t.Fatalf("run scenario: %v\n%s", err, buf.String())
			}
		})
	}
}

func TestNewRunnerDefaults(t *testing.T) {
	runner := NewRunner(Config{})
	if runner.timeout != 10*time.Second {
		t.Fatalf("timeout = %s, want 10s", runner.timeout)
	}
	if runner.logger == nil {
		t.Fatal("expected default logger")
	}
	if DefaultConfig().Assertions != AssertionStrict {
		t.Fatal("expected strict assertions by default")
	}
}

func TestRunScenarioStrictFailure(t *testing.T) {
	path := writeScenarioFixture(t, `local scene = Scenario.new("wrong")
scene:players({"Mafia", "Ann", "Ben", "Cal"})
scene:roles({Mafia = "mafia", Ann = "citizen", Ben = "citizen", Cal = "citizen"})
scene:act({actor = "Mafia", target = "Ann"})
scene:resolve()
scene:expect_alive("Ann")
return scene
`)
	scenario, err := LoadScenarioFromFile(path)
	if err != nil {
		t.Fatalf("load scenario: %v", err)
	}

	err = newTestRunner(Config{}).RunScenario(context.Background(), scenario)
	if err == nil {
		t.Fatal("expected strict failure")
	}
	if !strings.Contains(err.Error(), "step 5 (expect_alive)") {
		t.Fatalf("error = %q, want step 5 (expect_alive)", err.Error())
	}
}

func TestRunScenarioLogOnlyContinues(t *testing.T) {
	path := writeScenarioFixture(t, `local scene = Scenario.new("lenient")
scene:players({"Mafia", "Ann", "Ben", "Cal"})
scene:roles({Mafia = "mafia", Ann = "citizen", Ben = "citizen", Cal = "citizen"})
scene:act({actor = "Mafia", target = "Ann"})
scene:resolve()
scene:expect_alive("Ann")
scene:expect_dead("Ann")
return scene
`)
	scenario, err := LoadScenarioFromFile(path)
	if err != nil {
		t.Fatalf("load scenario: %v", err)
	}

	var buf bytes.Buffer
	runner := newTestRunner(Config{Assertions: AssertionLogOnly, Logger: log.New(&buf, "", 0)})
	if err := runner.RunScenario(context.Background(), scenario); err != nil {
		t.Fatalf("run scenario: %v", err)
	}
	if !strings.Contains(buf.String(), "expectation: expected Ann alive=true") {
		t.Fatalf("expected logged expectation, got %q", buf.String())
	}
}

func TestRunScenarioUnexpectedRejectionFails(t *testing.T) {
	path := writeScenarioFixture(t, `local scene = Scenario.new("rejected")
scene:players({"Mafia", "Ann", "Ben", "Cal"})
scene:roles({Mafia = "mafia", Ann = "citizen", Ben = "citizen", Cal = "citizen"})
scene:act({actor = "Ann", target = "Ben"})
return scene
`)
	scenario, err := LoadScenarioFromFile(path)
	if err != nil {
		t.Fatalf("load scenario: %v", err)
	}

	err = newTestRunner(Config{}).RunScenario(context.Background(), scenario)
	if err == nil || !strings.Contains(err.Error(), "has no night action") {
		t.Fatalf("error = %v, want has no night action", err)
	}
}

func TestRunScenarioRequiresPlayers(t *testing.T) {
	scenario := &Scenario{Name: "bare", Steps: []Step{{Kind: "resolve", Args: map[string]any{}}}}

	err := newTestRunner(Config{}).RunScenario(context.Background(), scenario)
	if err == nil || !strings.Contains(err.Error(), "players are required") {
		t.Fatalf("error = %v, want players are required", err)
	}
}

func TestRunScenarioUnknownStep(t *testing.T) {
	scenario := &Scenario{Name: "odd", Steps: []Step{{Kind: "dance"}}}

	err := newTestRunner(Config{}).RunScenario(context.Background(), scenario)
	if err == nil || !strings.Contains(err.Error(), `unknown step kind "dance"`) {
		t.Fatalf("error = %v, want unknown step kind", err)
	}
}

func TestRunScenarioCancelledContext(t *testing.T) {
	scenario := &Scenario{Name: "cancelled", Steps: []Step{{Kind: "resolve"}}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := newTestRunner(Config{}).RunScenario(ctx, scenario)
	if err == nil || !strings.Contains(err.Error(), "context canceled") {
		t.Fatalf("error = %v, want context canceled", err)
	}
}

func TestRunScenarioVerbosePrintsJournal(t *testing.T) {
	path := writeScenarioFixture(t, `local scene = Scenario.new("verbose")
scene:seed(3)
scene:players({"A1", "A2", "A3", "A4", "A5", "A6"})
scene:ruleset("classic")
scene:resolve()
scene:expect_phase("announce")
return scene
`)
	scenario, err := LoadScenarioFromFile(path)
	if err != nil {
		t.Fatalf("load scenario: %v", err)
	}

	var buf bytes.Buffer
	runner := newTestRunner(Config{Verbose: true, Logger: log.New(&buf, "", 0)})
	if err := runner.RunScenario(context.Background(), scenario); err != nil {
		t.Fatalf("run scenario: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"scenario start: verbose", "roles.assigned", "night.resolved", "scenario done: verbose"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in verbose output, got %q", want, out)
		}
	}
}

func TestAssertions(t *testing.T) {
	var buf bytes.Buffer
	lenient := Assertions{Mode: AssertionLogOnly, Logger: log.New(&buf, "", 0)}
	if err := lenient.Assertf("missed %d", 1); err != nil {
		t.Fatalf("expected nil in log-only mode, got %v", err)
	}
	if !strings.Contains(buf.String(), "missed 1") {
		t.Fatalf("expected logged expectation, got %q", buf.String())
	}
	if err := lenient.Failf("broken"); err == nil {
		t.Fatal("expected Failf to fail in every mode")
	}
	if err := (Assertions{Mode: AssertionStrict}).Assertf("missed"); err == nil {
		t.Fatal("expected strict Assertf to fail")
	}
}
