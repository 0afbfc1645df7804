// Package source defines the collaborator contracts the engine consumes
// from outside the core: the sorted match stream, rank-record history,
// and the player directory. The core never reimplements persistence;
// callers back these interfaces with whatever store they own.
package source

import (
	"context"
	"time"

	"github.com/jvolf/kifu/internal/domain/model"
)

// MatchSource provides ascending-timestamp match streams.
type MatchSource interface {
	// Matches returns a league's matches with Timestamp <= cutoff, in
	// ascending timestamp order.
	Matches(ctx context.Context, league string, cutoff time.Time) ([]model.Match, error)

	// TournamentMatches returns one tournament's matches in ascending
	// timestamp order. An unknown tournament yields an empty result.
	TournamentMatches(ctx context.Context, tournament string) ([]model.Match, error)
}

// RankSource provides rank-record history.
type RankSource interface {
	// RankRecords returns every rank record for the league's players,
	// in ascending effective-date order per player.
	RankRecords(ctx context.Context, league string) ([]model.RankRecord, error)
}

// Directory is the player-status lookup.
type Directory interface {
	Profile(id model.PlayerID) (model.PlayerProfile, bool)
}

// ParticipantSource provides tournament membership, including manually
// recorded finishing positions.
type ParticipantSource interface {
	Participants(ctx context.Context, tournament string) ([]model.TournamentParticipant, error)
}
