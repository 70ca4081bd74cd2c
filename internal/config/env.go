package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// RuntimeEnv holds process-level overrides read from the environment.
// Zero values mean "not set"; explicit CLI flags win over them.
type RuntimeEnv struct {
	FPS      int    `env:"RUNNER_FPS"`
	Seed     int64  `env:"RUNNER_SEED"`
	DB       string `env:"RUNNER_DB"`
	Config   string `env:"RUNNER_CONFIG"`
	LogFile  string `env:"RUNNER_LOG_FILE"`
	LogLevel string `env:"RUNNER_LOG_LEVEL"`
	PrefsApp string `env:"RUNNER_PREFS_APP"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadEnv reads RuntimeEnv from the process environment.
func LoadEnv() (RuntimeEnv, error) {
	var e RuntimeEnv
	if err := ParseEnv(&e); err != nil {
		return RuntimeEnv{}, err
	}
	return e, nil
}
