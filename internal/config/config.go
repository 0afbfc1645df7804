// Package config defines engine configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// MetricsAddr exposes /metrics when non-empty, e.g. ":9090".
	MetricsAddr string `koanf:"metrics_addr"`

	// KFactor is the rating step size for established players.
	KFactor float64 `koanf:"k_factor"`

	// ProvisionalKFactor is the step size used while estimating an
	// unrated newcomer's initial rating.
	ProvisionalKFactor float64 `koanf:"provisional_k_factor"`

	// InitialRating seeds the estimate of players without a grade.
	InitialRating float64 `koanf:"initial_rating"`

	// GraceGames is the length of the unrated grace period.
	GraceGames int `koanf:"grace_games"`

	// InactivityMonths bounds the active-player window and resets the
	// returning-player counter.
	InactivityMonths int `koanf:"inactivity_months"`

	// ProtectionBand is how far below its grade anchor a protected
	// rating may fall.
	ProtectionBand float64 `koanf:"protection_band"`

	// PromotionBonus enables one-time promotion bonuses.
	PromotionBonus bool `koanf:"promotion_bonus"`

	// MatchTag restricts runs to matches whose name carries the tag;
	// empty disables the filter.
	MatchTag string `koanf:"match_tag"`

	// International marks the league as international: locality is not
	// required for ranking eligibility.
	International bool `koanf:"international"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		MetricsAddr:        "",
		KFactor:            32,
		ProvisionalKFactor: 64,
		InitialRating:      1500,
		GraceGames:         12,
		InactivityMonths:   24,
		ProtectionBand:     100,
		PromotionBonus:     true,
		MatchTag:           "",
		International:      false,
	}
}
