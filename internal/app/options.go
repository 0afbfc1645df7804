package service

import (
	"time"

	"github.com/jvolf/kifu/internal/config"
	"github.com/jvolf/kifu/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithKFactor sets the rating step size.
func WithKFactor(k float64) Option {
	return func(s *Service) {
		if k > 0 {
			s.kFactor = k
		}
	}
}

// WithProvisionalKFactor sets the grace-period estimation step size.
func WithProvisionalKFactor(k float64) Option {
	return func(s *Service) {
		if k > 0 {
			s.provisionalK = k
		}
	}
}

// WithInitialRating seeds estimates of players without a grade.
func WithInitialRating(r float64) Option {
	return func(s *Service) {
		if r > 0 {
			s.initialRating = r
		}
	}
}

// WithProtectionBand sets the protected-floor distance below grade
// anchors.
func WithProtectionBand(band float64) Option {
	return func(s *Service) {
		if band >= 0 {
			s.protectionBand = band
		}
	}
}

// WithGraceGames sets the unrated grace period length.
func WithGraceGames(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.graceGames = n
		}
	}
}

// WithInactivityGap sets the activity window.
func WithInactivityGap(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.inactivityGap = d
		}
	}
}

// WithPromotionBonus enables or disables promotion bonuses.
func WithPromotionBonus(enabled bool) Option {
	return func(s *Service) {
		s.promotionBonus = enabled
	}
}

// WithMatchTag sets the tag used by tag-restricted runs.
func WithMatchTag(tag string) Option {
	return func(s *Service) {
		s.matchTag = tag
	}
}

// WithInternational marks the league as international.
func WithInternational(international bool) Option {
	return func(s *Service) {
		s.international = international
	}
}

// FromConfig applies every engine parameter from the loaded config.
func FromConfig(cfg *config.Config) Option {
	return func(s *Service) {
		if cfg == nil {
			return
		}
		WithKFactor(cfg.KFactor)(s)
		WithProvisionalKFactor(cfg.ProvisionalKFactor)(s)
		WithInitialRating(cfg.InitialRating)(s)
		WithProtectionBand(cfg.ProtectionBand)(s)
		WithGraceGames(cfg.GraceGames)(s)
		WithInactivityGap(time.Duration(cfg.InactivityMonths) * 30 * 24 * time.Hour)(s)
		WithPromotionBonus(cfg.PromotionBonus)(s)
		WithMatchTag(cfg.MatchTag)(s)
		WithInternational(cfg.International)(s)
	}
}
