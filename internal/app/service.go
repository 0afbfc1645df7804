// Package service provides the core business service that runs rating
// calculations, history builds, and Swiss standings over a league's
// match stream.
package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jvolf/kifu/internal/adapters/source"
	"github.com/jvolf/kifu/internal/domain/history"
	"github.com/jvolf/kifu/internal/domain/model"
	"github.com/jvolf/kifu/internal/domain/promotion"
	"github.com/jvolf/kifu/internal/domain/rating"
	"github.com/jvolf/kifu/internal/domain/swiss"
	"github.com/jvolf/kifu/pkg/logger"
	"github.com/jvolf/kifu/pkg/metrics"
)

// Backend bundles the collaborator contracts one league needs.
type Backend interface {
	source.MatchSource
	source.RankSource
	source.Directory
	source.ParticipantSource
}

// RunSpec describes one independent calculation run.
type RunSpec struct {
	League string
	Cutoff time.Time

	// TagOnly restricts the run to matches whose name carries the
	// configured tag.
	TagOnly bool

	// Eligible post-filters the output rating map and active set when
	// non-nil; the engine still processes every match.
	Eligible map[model.PlayerID]bool
}

// RunResult is the output of one rating run.
type RunResult struct {
	// Ratings maps publicly rated players to their finalized rating.
	Ratings map[model.PlayerID]float64

	// Estimates maps grace-period players to their internal estimate,
	// for callers that display a fallback.
	Estimates map[model.PlayerID]float64

	// Active lists players with activity inside the window, sorted for
	// deterministic output.
	Active []model.PlayerID

	// Matches is the number of matches processed.
	Matches int
}

// Forecast is the pairwise hypothetical-delta matrix over active rated
// players: WinDelta[i][j] is player i's rating gain for beating player
// j right now.
type Forecast struct {
	Players  []model.PlayerID
	Ratings  []float64
	WinDelta [][]float64
}

// StandingRow pairs a calculated Swiss position with the manually
// recorded one; the two are reported side by side, never merged. A
// promotion recorded against the tournament rides along unchanged.
type StandingRow struct {
	swiss.PlayerScore
	DisplayName    string
	ManualPosition int
	Promotion      *model.RankRecord
}

// Service implements the rating operations over a backend.
type Service struct {
	backend Backend

	kFactor        float64
	provisionalK   float64
	initialRating  float64
	protectionBand float64
	graceGames     int
	inactivityGap  time.Duration
	promotionBonus bool
	matchTag       string
	international  bool

	logger logger.Logger
}

// New constructs a Service over the backend with default configuration.
func New(backend Backend, opts ...Option) *Service {
	s := &Service{
		backend:        backend,
		kFactor:        32,
		provisionalK:   64,
		initialRating:  1500,
		protectionBand: 100,
		graceGames:     12,
		inactivityGap:  2 * 365 * 24 * time.Hour,
		promotionBonus: true,
		logger:         nil, // resolved lazily so tests need no Init
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) log() logger.Logger {
	if s.logger == nil {
		return nopLogger{}
	}
	return s.logger
}

// newEngine builds a fresh engine for one isolated run.
func (s *Service) newEngine(grades rating.GradeLookup) *rating.Engine {
	return rating.NewEngine(
		rating.WithFormula(rating.NewFormula(
			rating.WithKFactor(s.kFactor),
			rating.WithProvisionalKFactor(s.provisionalK),
		)),
		rating.WithGradeLookup(grades),
		rating.WithGraceGames(s.graceGames),
		rating.WithInactivityGap(s.inactivityGap),
		rating.WithInitialRating(s.initialRating),
		rating.WithProtectionBand(s.protectionBand),
	)
}

// keep reports whether the match passes the tag restriction.
func (s *Service) keep(m *model.Match, tagOnly bool) bool {
	if !tagOnly || s.matchTag == "" {
		return true
	}
	return strings.Contains(strings.ToLower(m.Name), strings.ToLower(s.matchTag))
}

// Ratings processes the league's matches up to the cutoff and returns
// the finalized rating map plus the active-player set.
func (s *Service) Ratings(ctx context.Context, spec RunSpec) (*RunResult, error) {
	started := time.Now()

	matches, err := s.backend.Matches(ctx, spec.League, spec.Cutoff)
	if err != nil {
		metrics.RecordRunError("ratings")
		return nil, fmt.Errorf("load matches: %w", err)
	}
	records, err := s.backend.RankRecords(ctx, spec.League)
	if err != nil {
		metrics.RecordRunError("ratings")
		return nil, fmt.Errorf("load rank records: %w", err)
	}

	grades := promotion.NewHistory(records)
	engine := s.newEngine(grades)
	tracker := promotion.NewTracker(engine, grades,
		promotion.WithProtectionBand(s.protectionBand),
	)

	processed := 0
	for i := range matches {
		// Cancellation is checked at the per-match loop boundary; a
		// run has no other suspension points.
		select {
		case <-ctx.Done():
			metrics.RecordRunError("ratings")
			return nil, ctx.Err()
		default:
		}
		m := &matches[i]
		if !s.keep(m, spec.TagOnly) {
			continue
		}
		if err := engine.AddMatch(m); err != nil {
			metrics.RecordRunError("ratings")
			return nil, fmt.Errorf("match %q: %w", m.ID, err)
		}
		processed++
	}

	if s.promotionBonus {
		metrics.RecordPromotionBonuses(tracker.CheckAll(spec.Cutoff))
	}
	if err := engine.Finalize(spec.Cutoff); err != nil {
		metrics.RecordRunError("ratings")
		return nil, err
	}

	res := &RunResult{
		Ratings:   make(map[model.PlayerID]float64),
		Estimates: make(map[model.PlayerID]float64),
		Matches:   processed,
	}
	for _, id := range engine.Players() {
		if spec.Eligible != nil && !spec.Eligible[id] {
			continue
		}
		if r, err := engine.RatingOf(id); err == nil {
			res.Ratings[id] = r
		} else if est, ok := engine.EstimateOf(id); ok {
			res.Estimates[id] = est
		}
	}
	for _, id := range engine.ActivePlayers(spec.Cutoff) {
		if spec.Eligible != nil && !spec.Eligible[id] {
			continue
		}
		res.Active = append(res.Active, id)
	}
	sort.Slice(res.Active, func(i, j int) bool { return res.Active[i] < res.Active[j] })

	metrics.RecordRun("ratings", time.Since(started).Seconds())
	metrics.RecordMatchesProcessed(processed)
	metrics.UpdateActivePlayers(len(res.Active))
	metrics.UpdateTrackedPlayers(len(engine.Players()))
	s.log().Info(ctx, "rating run finished",
		logger.String("league", spec.League),
		logger.Int("matches", processed),
		logger.Int("rated", len(res.Ratings)),
		logger.Int("active", len(res.Active)),
	)
	return res, nil
}

// RatingsAt computes independent runs for several cutoffs concurrently.
// Each run owns a fresh engine, so no state is shared between them.
func (s *Service) RatingsAt(ctx context.Context, spec RunSpec, cutoffs ...time.Time) (map[time.Time]*RunResult, error) {
	results := make([]*RunResult, len(cutoffs))
	g, gctx := errgroup.WithContext(ctx)
	for i, cutoff := range cutoffs {
		i, cutoff := i, cutoff
		g.Go(func() error {
			sp := spec
			sp.Cutoff = cutoff
			r, err := s.Ratings(gctx, sp)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	out := make(map[time.Time]*RunResult, len(cutoffs))
	for i, cutoff := range cutoffs {
		out[cutoff] = results[i]
	}
	return out, nil
}

// History builds the focal player's monthly snapshot list through the
// month containing now.
func (s *Service) History(ctx context.Context, league string, focal model.PlayerID, now time.Time) ([]model.MonthlySnapshot, error) {
	started := time.Now()

	matches, err := s.backend.Matches(ctx, league, now)
	if err != nil {
		metrics.RecordRunError("history")
		return nil, fmt.Errorf("load matches: %w", err)
	}
	records, err := s.backend.RankRecords(ctx, league)
	if err != nil {
		metrics.RecordRunError("history")
		return nil, fmt.Errorf("load rank records: %w", err)
	}

	grades := promotion.NewHistory(records)
	engine := s.newEngine(grades)
	tracker := promotion.NewTracker(engine, grades,
		promotion.WithProtectionBand(s.protectionBand),
	)
	builder := history.NewBuilder(engine, tracker, grades,
		history.WithDirectory(s.backend),
		history.WithInternational(s.international),
	)

	snaps, err := builder.Build(ctx, focal, matches, now)
	if err != nil {
		metrics.RecordRunError("history")
		return nil, err
	}

	metrics.RecordRun("history", time.Since(started).Seconds())
	metrics.RecordSnapshotsBuilt(len(snaps))
	s.log().Info(ctx, "history built",
		logger.String("league", league),
		logger.String("player", string(focal)),
		logger.Int("months", len(snaps)),
	)
	return snaps, nil
}

// Standings computes the tournament's Swiss standings, pairing the
// calculated positions with any manually recorded ones.
func (s *Service) Standings(ctx context.Context, tournament string) ([]StandingRow, error) {
	started := time.Now()

	matches, err := s.backend.TournamentMatches(ctx, tournament)
	if err != nil {
		metrics.RecordRunError("standings")
		return nil, fmt.Errorf("load tournament matches: %w", err)
	}

	name := func(id model.PlayerID) string {
		if p, ok := s.backend.Profile(id); ok && p.DisplayName != "" {
			return p.DisplayName
		}
		return string(id)
	}
	rows, err := swiss.Standings(matches, swiss.WithNamer(name))
	if err != nil {
		metrics.RecordRunError("standings")
		return nil, err
	}

	manual := make(map[model.PlayerID]int)
	promos := make(map[model.PlayerID]*model.RankRecord)
	participants, err := s.backend.Participants(ctx, tournament)
	if err != nil {
		metrics.RecordRunError("standings")
		return nil, fmt.Errorf("load participants: %w", err)
	}
	for _, tp := range participants {
		if tp.ManualPosition > 0 {
			manual[tp.PlayerID] = tp.ManualPosition
		}
		if tp.Promotion != nil {
			promos[tp.PlayerID] = tp.Promotion
		}
	}

	out := make([]StandingRow, len(rows))
	for i, row := range rows {
		out[i] = StandingRow{
			PlayerScore:    row,
			DisplayName:    name(row.Player),
			ManualPosition: manual[row.Player],
			Promotion:      promos[row.Player],
		}
	}

	metrics.RecordRun("standings", time.Since(started).Seconds())
	metrics.RecordStandings(len(out))
	return out, nil
}

// ForecastMatrix computes pairwise hypothetical rating deltas between
// all active rated players as of the run's cutoff. Rows are computed
// concurrently; the underlying run state is read-only by then.
func (s *Service) ForecastMatrix(ctx context.Context, spec RunSpec) (*Forecast, error) {
	started := time.Now()

	run, err := s.Ratings(ctx, spec)
	if err != nil {
		metrics.RecordRunError("forecast")
		return nil, err
	}

	var players []model.PlayerID
	for _, id := range run.Active {
		if _, ok := run.Ratings[id]; ok {
			players = append(players, id)
		}
	}

	f := &Forecast{
		Players:  players,
		Ratings:  make([]float64, len(players)),
		WinDelta: make([][]float64, len(players)),
	}
	for i, id := range players {
		f.Ratings[i] = run.Ratings[id]
	}

	formula := rating.NewFormula(rating.WithKFactor(s.kFactor))
	g, _ := errgroup.WithContext(ctx)
	for i := range players {
		i := i
		g.Go(func() error {
			row := make([]float64, len(players))
			for j := range players {
				if i == j {
					continue
				}
				row[j] = formula.Delta(f.Ratings[i], f.Ratings[j], 1, model.DefaultFactor)
			}
			f.WinDelta[i] = row
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	metrics.RecordRun("forecast", time.Since(started).Seconds())
	return f, nil
}

// nopLogger drops everything; used when no logger is configured.
type nopLogger struct{}

func (nopLogger) Info(context.Context, string, ...logger.Field)  {}
func (nopLogger) Error(context.Context, string, ...logger.Field) {}
func (nopLogger) Debug(context.Context, string, ...logger.Field) {}
func (nopLogger) Warn(context.Context, string, ...logger.Field)  {}
func (nopLogger) Fatal(context.Context, string, ...logger.Field) {}
func (nopLogger) Named(string) logger.Logger                     { return nopLogger{} }
