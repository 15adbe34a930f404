// Package config loads command configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix namespaces every variable read by nightfall commands.
const EnvPrefix = "NIGHTFALL_"

// ParseEnv loads configuration from environment variables.
//
// Struct tags name variables without the shared prefix, so a field tagged
// `env:"SEED"` reads NIGHTFALL_SEED.
func ParseEnv(target any) error {
	if err := env.ParseWithOptions(target, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
