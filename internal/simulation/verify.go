package simulation

import (
	"context"
	"fmt"

	service "github.com/jvolf/kifu/internal/app"
	"github.com/jvolf/kifu/internal/domain/model"
	"github.com/jvolf/kifu/internal/domain/rank"
)

// verifyRatings checks run determinism, the grace period, the
// promotion floor, and the tag restriction.
func verifyRatings(ctx context.Context, svc *service.Service, cfg *Config, league *League, report *Report) error {
	spec := service.RunSpec{League: cfg.League, Cutoff: league.End}

	first, err := svc.Ratings(ctx, spec)
	if err != nil {
		return fmt.Errorf("ratings run: %w", err)
	}
	second, err := svc.Ratings(ctx, spec)
	if err != nil {
		return fmt.Errorf("ratings rerun: %w", err)
	}

	deterministic := len(first.Ratings) == len(second.Ratings)
	if deterministic {
		for id, r := range first.Ratings {
			if second.Ratings[id] != r {
				deterministic = false
				break
			}
		}
	}
	report.add("determinism", deterministic,
		"two identical runs rated %d players", len(first.Ratings))

	// Early in the league the newcomer must still be estimating.
	early := service.RunSpec{League: cfg.League, Cutoff: cfg.Start.AddDate(0, 0, 10)}
	earlyRun, err := svc.Ratings(ctx, early)
	if err != nil {
		return fmt.Errorf("early ratings run: %w", err)
	}
	_, publicEarly := earlyRun.Ratings[league.Newcomer]
	_, estimated := earlyRun.Estimates[league.Newcomer]
	_, publicLate := first.Ratings[league.Newcomer]
	report.add("grace period", !publicEarly && estimated && publicLate,
		"newcomer estimated early (%v), published at league end (%v)", estimated, publicLate)

	floor := rank.Dan(4).Floor(100)
	report.add("promotion floor", first.Ratings[league.Promoted] >= floor,
		"promoted player rated %.1f against floor %.1f", first.Ratings[league.Promoted], floor)

	tagged, err := svc.Ratings(ctx, service.RunSpec{League: cfg.League, Cutoff: league.End, TagOnly: true})
	if err != nil {
		return fmt.Errorf("tag-restricted run: %w", err)
	}
	report.add("tag restriction", tagged.Matches < first.Matches,
		"tagged run processed %d of %d matches", tagged.Matches, first.Matches)
	return nil
}

// verifyHistory checks the monotone month coverage of snapshots.
func verifyHistory(ctx context.Context, svc *service.Service, cfg *Config, league *League, report *Report) error {
	snaps, err := svc.History(ctx, cfg.League, league.Promoted, league.End)
	if err != nil {
		return fmt.Errorf("history build: %w", err)
	}

	contiguous := len(snaps) > 0
	for i := 1; i < len(snaps); i++ {
		if snaps[i].Month != snaps[i-1].Month.Next() {
			contiguous = false
			break
		}
	}
	endsNow := len(snaps) > 0 && snaps[len(snaps)-1].Month == model.MonthOf(league.End)
	report.add("month coverage", contiguous && endsNow,
		"%d snapshots, contiguous=%v, endsAtPresent=%v", len(snaps), contiguous, endsNow)

	bonuses := 0
	for _, s := range snaps {
		bonuses += len(s.Bonuses)
	}
	report.add("bonus consume-once", bonuses <= 1,
		"promotion surfaced %d bonus entries across all months", bonuses)
	return nil
}

// verifyStandings checks the shared-first-place rule on every
// tournament.
func verifyStandings(ctx context.Context, svc *service.Service, league *League, report *Report) error {
	for _, tid := range league.Tournaments {
		rows, err := svc.Standings(ctx, tid)
		if err != nil {
			return fmt.Errorf("standings %s: %w", tid, err)
		}
		ok := len(rows) > 0
		undefeated := 0
		for _, row := range rows {
			if row.Undefeated() && row.Position != 1 {
				ok = false
			}
			if row.Undefeated() {
				undefeated++
			}
		}
		// With at least one undefeated player, nobody else may share
		// first place.
		if undefeated > 0 {
			for _, row := range rows {
				if !row.Undefeated() && row.Position <= 1 {
					ok = false
				}
			}
		}
		report.add("swiss "+tid, ok,
			"%d players, %d undefeated sharing first place", len(rows), undefeated)
	}
	return nil
}

// verifyForecast checks that every hypothetical win yields a positive
// delta.
func verifyForecast(ctx context.Context, svc *service.Service, cfg *Config, league *League, report *Report) error {
	f, err := svc.ForecastMatrix(ctx, service.RunSpec{League: cfg.League, Cutoff: league.End})
	if err != nil {
		return fmt.Errorf("forecast: %w", err)
	}
	positive := len(f.Players) > 1
	for i := range f.WinDelta {
		for j, d := range f.WinDelta[i] {
			if i != j && d <= 0 {
				positive = false
			}
		}
	}
	report.add("forecast deltas", positive,
		"pairwise win deltas positive for %d players", len(f.Players))
	return nil
}
