package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/goalpool/prediction-league/internal/domain/match"
)

type MatchRepository struct {
	mu      sync.RWMutex
	matches map[int64]match.Match
	now     func() time.Time
}

func NewMatchRepository(matches []match.Match) *MatchRepository {
	byID := make(map[int64]match.Match, len(matches))
	for _, item := range matches {
		byID[item.ID] = item
	}
	return &MatchRepository{matches: byID, now: time.Now}
}

func (r *MatchRepository) List(_ context.Context, filter match.Filter) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	now := r.now().UTC()
	out := make([]match.Match, 0, len(r.matches))
	for _, item := range r.matches {
		if filter.Round != nil && item.Round != *filter.Round {
			continue
		}
		if filter.UpcomingOnly && (item.Completed || item.KickoffAt.Before(now)) {
			continue
		}
		if filter.CompletedOnly && !item.Completed {
			continue
		}
		if filter.From != nil && item.KickoffAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && item.KickoffAt.After(*filter.To) {
			continue
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].KickoffAt.Equal(out[j].KickoffAt) {
			return out[i].KickoffAt.Before(out[j].KickoffAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *MatchRepository) GetByID(_ context.Context, matchID int64) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.matches[matchID]
	return item, ok, nil
}

func (r *MatchRepository) FirstKickoff(_ context.Context) (time.Time, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var first time.Time
	found := false
	for _, item := range r.matches {
		if !found || item.KickoffAt.Before(first) {
			first = item.KickoffAt
			found = true
		}
	}
	return first, found, nil
}

func (r *MatchRepository) RecordResult(_ context.Context, matchID int64, team1Score, team2Score int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.matches[matchID]
	if !ok {
		return nil
	}
	s1, s2 := team1Score, team2Score
	item.Team1Score = &s1
	item.Team2Score = &s2
	item.Completed = true
	r.matches[matchID] = item
	return nil
}
