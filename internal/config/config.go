// Package config loads giftcycle settings from the environment.
//
// A .env file in the working directory is read first when present; real
// environment variables win over it.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/roach88/giftcycle/internal/sampler"
)

var validate = validator.New()

// Config holds every runtime setting.
type Config struct {
	DBPath          string        `env:"GIFTCYCLE_DB_PATH,default=giftcycle.db" validate:"required"`
	ListenAddr      string        `env:"GIFTCYCLE_LISTEN_ADDR,default=:8080" validate:"required"`
	LogLevel        string        `env:"GIFTCYCLE_LOG_LEVEL,default=info" validate:"oneof=debug info warn error"`
	DrawMaxAttempts int           `env:"GIFTCYCLE_DRAW_MAX_ATTEMPTS,default=5000" validate:"gte=1"`
	MinParticipants int           `env:"GIFTCYCLE_MIN_PARTICIPANTS,default=3" validate:"gte=3"`
	DrawStrategy    string        `env:"GIFTCYCLE_DRAW_STRATEGY,default=retry" validate:"oneof=retry backtrack"`
	BacktrackSteps  int           `env:"GIFTCYCLE_BACKTRACK_MAX_STEPS,default=1000000" validate:"gte=1"`
	ShutdownTimeout time.Duration `env:"GIFTCYCLE_SHUTDOWN_TIMEOUT,default=10s" validate:"gt=0"`
}

// Load reads .env (if any) and the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnvSet(env.EnvironToEnvSet(os.Environ()))
}

// FromEnvSet builds a Config from es, applying defaults and validation.
func FromEnvSet(es env.EnvSet) (Config, error) {
	var cfg Config
	if err := env.Unmarshal(es, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// SamplerOptions returns the draw settings as sampler options.
func (c Config) SamplerOptions() sampler.Options {
	return sampler.Options{
		MaxAttempts:     c.DrawMaxAttempts,
		MinParticipants: c.MinParticipants,
		Strategy:        sampler.Strategy(c.DrawStrategy),
		MaxSteps:        c.BacktrackSteps,
	}
}

// SlogLevel maps LogLevel to a slog.Level. Unknown values read as info.
func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
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
