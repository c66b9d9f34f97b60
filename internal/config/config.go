// Package config holds the small set of process-level settings that the
// CLI can source from the environment before it builds an interpreter:
// the REPL prompt, whether bare expression results get echoed, and the
// call-depth guard. Fields are populated via struct tags read by
// github.com/caarlos0/env, the same way the wider example corpus wires
// process configuration.
package config

import "github.com/caarlos0/env/v6"

// Config is the set of settings a golox invocation can be tuned with.
// Every field has a default that matches the documented language
// behavior, so a Config zero-populated by Load works out of the box.
type Config struct {
	// Prompt is printed before each REPL read.
	Prompt string `env:"GOLOX_PROMPT" envDefault:"> "`

	// EchoExpressionResults prints the value of a bare expression
	// statement typed at the REPL, the way many scripting shells do.
	EchoExpressionResults bool `env:"GOLOX_ECHO_RESULTS" envDefault:"false"`

	// MaxCallDepth bounds Lox call recursion. Exceeding it is reported as
	// a runtime error ("Stack overflow.") instead of crashing the host
	// process.
	MaxCallDepth int `env:"GOLOX_MAX_CALL_DEPTH" envDefault:"255"`
}

// Load reads a Config from the process environment, applying the
// defaults above for anything unset.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
