// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the settings shared by every command.
type Config struct {
	DBPath      string        `env:"WORDCHALLENGE_DB"           envDefault:"wordchallenge.db"`
	WordURL     string        `env:"WORDCHALLENGE_WORD_URL"     envDefault:"http://127.0.0.1:3000/api/word"`
	ValidateURL string        `env:"WORDCHALLENGE_VALIDATE_URL" envDefault:"http://127.0.0.1:8000/api/validate-sentence"`
	Timeout     time.Duration `env:"WORDCHALLENGE_TIMEOUT"      envDefault:"30s"`
	LogFile     string        `env:"WORDCHALLENGE_LOG_FILE"     envDefault:"wordchallenge.log"`
	Verbose     bool          `env:"WORDCHALLENGE_VERBOSE"      envDefault:"false"`
}

// Load parses the environment into a Config. The result is not validated so
// callers can apply overrides first and then call Validate.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate rejects settings no command can run with.
func (c Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("database path must be set")
	}
	if c.WordURL == "" || c.ValidateURL == "" {
		return fmt.Errorf("word and validate URLs must be set")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	return nil
}
