package source

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jvolf/kifu/internal/domain/model"
)

// Memory implements every source contract in memory. It backs tests,
// the simulation CLI, and embedding callers that load data themselves.
// Matches are kept sorted on insert so reads are always stream-ready.
type Memory struct {
	mu           sync.RWMutex
	matches      map[string][]model.Match
	byTournament map[string][]model.Match
	records      map[string][]model.RankRecord
	profiles     map[model.PlayerID]model.PlayerProfile
	participants map[string][]model.TournamentParticipant
}

// NewMemory creates an empty in-memory source.
func NewMemory() *Memory {
	return &Memory{
		matches:      make(map[string][]model.Match),
		byTournament: make(map[string][]model.Match),
		records:      make(map[string][]model.RankRecord),
		profiles:     make(map[model.PlayerID]model.PlayerProfile),
		participants: make(map[string][]model.TournamentParticipant),
	}
}

// AddMatch validates and stores a match under the league, keeping the
// league's stream sorted by timestamp.
func (s *Memory) AddMatch(league string, m model.Match) error {
	if err := m.Validate(); err != nil {
		return fmt.Errorf("add match: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.matches[league]
	i := sort.Search(len(list), func(i int) bool {
		return list[i].Timestamp.After(m.Timestamp)
	})
	list = append(list, model.Match{})
	copy(list[i+1:], list[i:])
	list[i] = m
	s.matches[league] = list

	if m.Tournament != "" {
		tl := s.byTournament[m.Tournament]
		j := sort.Search(len(tl), func(i int) bool {
			return tl[i].Timestamp.After(m.Timestamp)
		})
		tl = append(tl, model.Match{})
		copy(tl[j+1:], tl[j:])
		tl[j] = m
		s.byTournament[m.Tournament] = tl
	}
	return nil
}

// AddRankRecord stores a rank record under the league.
func (s *Memory) AddRankRecord(league string, r model.RankRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.records[league]
	i := sort.Search(len(list), func(i int) bool {
		return list[i].EffectiveDate.After(r.EffectiveDate)
	})
	list = append(list, model.RankRecord{})
	copy(list[i+1:], list[i:])
	list[i] = r
	s.records[league] = list
}

// SetProfile stores or replaces a player profile.
func (s *Memory) SetProfile(p model.PlayerProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[p.ID] = p
}

// AddParticipant stores a tournament membership.
func (s *Memory) AddParticipant(tp model.TournamentParticipant) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.participants[tp.Tournament] = append(s.participants[tp.Tournament], tp)
}

// Matches returns the league's matches up to cutoff, ascending.
func (s *Memory) Matches(_ context.Context, league string, cutoff time.Time) ([]model.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := s.matches[league]
	n := sort.Search(len(list), func(i int) bool {
		return list[i].Timestamp.After(cutoff)
	})
	out := make([]model.Match, n)
	copy(out, list[:n])
	return out, nil
}

// TournamentMatches returns one tournament's matches, ascending.
func (s *Memory) TournamentMatches(_ context.Context, tournament string) ([]model.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := s.byTournament[tournament]
	out := make([]model.Match, len(list))
	copy(out, list)
	return out, nil
}

// RankRecords returns the league's rank records, ascending by date.
func (s *Memory) RankRecords(_ context.Context, league string) ([]model.RankRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := s.records[league]
	out := make([]model.RankRecord, len(list))
	copy(out, list)
	return out, nil
}

// Profile returns the player's directory entry.
func (s *Memory) Profile(id model.PlayerID) (model.PlayerProfile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[id]
	return p, ok
}

// Participants returns a tournament's memberships.
func (s *Memory) Participants(_ context.Context, tournament string) ([]model.TournamentParticipant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := s.participants[tournament]
	out := make([]model.TournamentParticipant, len(list))
	copy(out, list)
	return out, nil
}
