package simulation

import (
	"context"
	"fmt"
	"time"

	service "github.com/jvolf/kifu/internal/app"
)

// Check is one verified invariant.
type Check struct {
	Name   string
	Passed bool
	Detail string
}

// Report collects the outcome of a full simulation run.
type Report struct {
	League  *League
	Checks  []Check
	Elapsed time.Duration
}

// Passed reports whether every check passed.
func (r *Report) Passed() bool {
	for _, c := range r.Checks {
		if !c.Passed {
			return false
		}
	}
	return true
}

func (r *Report) add(name string, passed bool, format string, args ...any) {
	r.Checks = append(r.Checks, Check{
		Name:   name,
		Passed: passed,
		Detail: fmt.Sprintf(format, args...),
	})
}

// Run generates a league, drives every engine operation over it, and
// verifies the engine's advertised invariants.
func Run(ctx context.Context, cfg *Config, opts ...service.Option) (*Report, error) {
	started := time.Now()

	league, err := Generate(cfg)
	if err != nil {
		return nil, fmt.Errorf("generate league: %w", err)
	}

	// The generated league names its rated nights "SWA ..."; the tag is
	// part of the generated data, so it wins over caller options.
	opts = append(opts, service.WithMatchTag("SWA"))
	svc := service.New(league.Source, opts...)

	report := &Report{League: league}
	if err := verifyRatings(ctx, svc, cfg, league, report); err != nil {
		return nil, err
	}
	if err := verifyHistory(ctx, svc, cfg, league, report); err != nil {
		return nil, err
	}
	if err := verifyStandings(ctx, svc, league, report); err != nil {
		return nil, err
	}
	if err := verifyForecast(ctx, svc, cfg, league, report); err != nil {
		return nil, err
	}

	report.Elapsed = time.Since(started)
	return report, nil
}
