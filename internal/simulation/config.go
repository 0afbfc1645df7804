// Package simulation generates synthetic leagues and drives the full
// rating pipeline over them, verifying the engine's advertised
// invariants. It backs the simulate CLI and integration-style tests.
package simulation

import "time"

// Default simulation parameters.
const (
	defaultPlayers = 16
	defaultMonths  = 18
	defaultSeed    = 42
	defaultLeague  = "sim"
)

// Config controls league generation.
type Config struct {
	Players int
	Months  int
	Seed    int64
	League  string
	Start   time.Time
}

// Option applies a configuration option to the Config.
type Option func(*Config)

// WithPlayers sets the number of players in the league.
func WithPlayers(n int) Option {
	return func(c *Config) {
		if n >= 4 {
			c.Players = n
		}
	}
}

// WithMonths sets the simulated league duration.
func WithMonths(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.Months = n
		}
	}
}

// WithSeed fixes the random source for reproducible leagues.
func WithSeed(seed int64) Option {
	return func(c *Config) { c.Seed = seed }
}

// WithLeague names the generated league.
func WithLeague(name string) Option {
	return func(c *Config) {
		if name != "" {
			c.League = name
		}
	}
}

// WithStart sets the league's first month.
func WithStart(t time.Time) Option {
	return func(c *Config) {
		if !t.IsZero() {
			c.Start = t
		}
	}
}

// NewConfig creates a Config with defaults.
func NewConfig(opts ...Option) *Config {
	c := &Config{
		Players: defaultPlayers,
		Months:  defaultMonths,
		Seed:    defaultSeed,
		League:  defaultLeague,
		Start:   time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
