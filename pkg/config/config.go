// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds the live entry point's configuration.
type Config struct {
	// Seed fixes the PRNG seed for a live run. Zero means a fresh
	// crypto-derived seed.
	Seed int64 `env:"GUESS_SEED"`

	// MaxRetries bounds unrecognized continue-answers. Zero retries
	// forever.
	MaxRetries int `env:"GUESS_MAX_RETRIES"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"GUESS_LOG_LEVEL" envDefault:"info"`
}

// Load parses configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// SlogLevel maps LogLevel to a slog level, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
