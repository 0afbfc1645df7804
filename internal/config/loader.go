package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New())
//  2. file (YAML) if KIFU_CONFIG is set
//  3. env (prefix KIFU_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("KIFU_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: KIFU_K_FACTOR, KIFU_GRACE_GAMES, ...
	// Map env keys like KIFU_GRACE_GAMES -> grace_games (flat keys).
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("KIFU_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "kifu_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate enforces basic sanity on loaded values.
func (c *Config) validate() error {
	if c.KFactor <= 0 {
		return fmt.Errorf("%w: k_factor must be positive", ErrInvalidConfig)
	}
	if c.ProvisionalKFactor <= 0 {
		return fmt.Errorf("%w: provisional_k_factor must be positive", ErrInvalidConfig)
	}
	if c.InitialRating <= 0 {
		return fmt.Errorf("%w: initial_rating must be positive", ErrInvalidConfig)
	}
	if c.GraceGames < 1 {
		return fmt.Errorf("%w: grace_games must be at least 1", ErrInvalidConfig)
	}
	if c.InactivityMonths < 1 {
		return fmt.Errorf("%w: inactivity_months must be at least 1", ErrInvalidConfig)
	}
	if c.ProtectionBand < 0 {
		return fmt.Errorf("%w: protection_band must not be negative", ErrInvalidConfig)
	}
	return nil
}
