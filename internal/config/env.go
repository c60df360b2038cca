package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env holds the BRICKFALL_* environment overrides.
type Env struct {
	Config     string `env:"BRICKFALL_CONFIG"`
	LevelsDir  string `env:"BRICKFALL_LEVELS_DIR"`
	StartLives int    `env:"BRICKFALL_START_LIVES"`
	MaxLives   int    `env:"BRICKFALL_MAX_LIVES"`
	LogLevel   string `env:"BRICKFALL_LOG_LEVEL" envDefault:"info"`
	LogFile    string `env:"BRICKFALL_LOG_FILE"`
	DB         string `env:"BRICKFALL_DB"        envDefault:"~/.brickfall/scores.db"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadEnv reads the process environment.
func LoadEnv() (Env, error) {
	var e Env
	err := ParseEnv(&e)
	return e, err
}

// LoadEnvFrom reads overrides from an explicit variable map.
func LoadEnvFrom(vars map[string]string) (Env, error) {
	var e Env
	if err := env.ParseWithOptions(&e, env.Options{Environment: vars}); err != nil {
		return e, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}

// Apply copies the set overrides into cfg. Zero values are ignored.
func (e Env) Apply(cfg *BreakoutConfig) {
	if e.LevelsDir != "" {
		cfg.Levels.Dir = e.LevelsDir
	}
	if e.StartLives > 0 {
		cfg.Gameplay.StartLives = e.StartLives
	}
	if e.MaxLives > 0 {
		cfg.Gameplay.MaxLives = e.MaxLives
	}
	if cfg.Gameplay.MaxLives < cfg.Gameplay.StartLives {
		cfg.Gameplay.MaxLives = cfg.Gameplay.StartLives
	}
}
