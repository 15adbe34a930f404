// Package scenario implements the scenario command: it runs Lua game
// scripts against an in-process session.
package scenario

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/louisbranch/nightfall/internal/game/roster"
	"github.com/louisbranch/nightfall/internal/platform/cmd"
	"github.com/louisbranch/nightfall/internal/tools/scenario"
)

// Config holds scenario command configuration.
type Config struct {
	Scenario     string        `env:"SCENARIO_FILE"`
	Assertions   bool          `env:"SCENARIO_ASSERT"   envDefault:"true"`
	Verbose      bool          `env:"SCENARIO_VERBOSE"`
	Timeout      time.Duration `env:"SCENARIO_TIMEOUT"  envDefault:"10s"`
	Seed         int64         `env:"SEED"`
	ListRulesets bool
}

// ParseConfig parses env defaults and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := cmd.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.Scenario, "scenario", cfg.Scenario, "path to scenario lua file")
	fs.BoolVar(&cfg.Assertions, "assert", cfg.Assertions, "enable assertions (disable to log expectations)")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "enable verbose logging")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "timeout per step")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "deal seed for scripts that do not set one (0 = random)")
	fs.BoolVar(&cfg.ListRulesets, "rulesets", false, "list rulesets and exit")
	if err := cmd.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run executes the scenario command.
func Run(ctx context.Context, cfg Config, out io.Writer, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	if cfg.ListRulesets {
		return listRulesets(out)
	}
	if cfg.Scenario == "" {
		return errors.New("scenario path is required")
	}

	mode := scenario.AssertionStrict
	if !cfg.Assertions {
		mode = scenario.AssertionLogOnly
	}

	logger := log.New(errOut, "", 0)
	err := scenario.RunFile(ctx, scenario.Config{
		Seed:       cfg.Seed,
		Timeout:    cfg.Timeout,
		Assertions: mode,
		Verbose:    cfg.Verbose,
		Logger:     logger,
	}, cfg.Scenario)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "ok %s\n", cfg.Scenario)
	return err
}

func listRulesets(out io.Writer) error {
	for _, rs := range roster.Rulesets() {
		roles := rs.Roles(rs.MinPlayers)
		if _, err := fmt.Fprintf(out, "%-10s %2d-%-2d players  %v\n", rs.Name, rs.MinPlayers, rs.MaxPlayers, roles); err != nil {
			return err
		}
	}
	return nil
}
