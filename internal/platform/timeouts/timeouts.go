// Package timeouts defines shared timeout constants used across commands.
package timeouts

import "time"

// ScenarioStep caps the time allowed for a single scenario script step.
const ScenarioStep = 10 * time.Second

// TelemetryShutdown limits how long a command waits for span export
// while exiting.
const TelemetryShutdown = 5 * time.Second
