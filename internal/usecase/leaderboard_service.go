package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/goalpool/prediction-league/internal/domain/scoring"
	"github.com/goalpool/prediction-league/internal/domain/user"
	"github.com/goalpool/prediction-league/internal/platform/cache"
)

// LeaderboardEntry is one ranked row. Ranks are dense: users on the same
// total share a rank and the next distinct total takes rank+1.
type LeaderboardEntry struct {
	Rank    int
	UserID  string
	Summary scoring.PointsSummary
}

// LeaderboardService ranks all users by recalculated totals. Users without
// a stored summary appear with zero points rather than being absent.
type LeaderboardService struct {
	scoringRepo scoring.Repository
	userRepo    user.Repository
	cache       *cache.Store
}

func NewLeaderboardService(scoringRepo scoring.Repository, userRepo user.Repository, store *cache.Store) *LeaderboardService {
	return &LeaderboardService{
		scoringRepo: scoringRepo,
		userRepo:    userRepo,
		cache:       store,
	}
}

// Leaderboard returns the ranked board, truncated to limit when limit > 0.
func (s *LeaderboardService) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.Leaderboard")
	defer span.End()

	entries, err := s.fullBoard(ctx)
	if err != nil {
		return nil, err
	}
	if limit > 0 && limit < len(entries) {
		entries = entries[:limit]
	}
	return entries, nil
}

// PointsFor returns one user's summary, zero-valued when the user has never
// been recalculated.
func (s *LeaderboardService) PointsFor(ctx context.Context, userID string) (scoring.PointsSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.PointsFor")
	defer span.End()

	if userID == "" {
		return scoring.PointsSummary{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	summary, ok, err := s.scoringRepo.Get(ctx, userID)
	if err != nil {
		return scoring.PointsSummary{}, fmt.Errorf("get points summary: %w", err)
	}
	if !ok {
		return scoring.PointsSummary{UserID: userID}, nil
	}
	return summary, nil
}

func (s *LeaderboardService) fullBoard(ctx context.Context) ([]LeaderboardEntry, error) {
	if s.cache != nil {
		value, err := s.cache.GetOrLoad(ctx, "leaderboard:full", func(ctx context.Context) (any, error) {
			return s.buildBoard(ctx)
		})
		if err != nil {
			return nil, err
		}
		entries, _ := value.([]LeaderboardEntry)
		return entries, nil
	}
	return s.buildBoard(ctx)
}

func (s *LeaderboardService) buildBoard(ctx context.Context) ([]LeaderboardEntry, error) {
	summaries, err := s.scoringRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list points summaries: %w", err)
	}
	byUser := make(map[string]scoring.PointsSummary, len(summaries))
	for _, summary := range summaries {
		byUser[summary.UserID] = summary
	}

	userIDs, err := s.userRepo.ListIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list user ids: %w", err)
	}
	for _, id := range userIDs {
		if _, ok := byUser[id]; !ok {
			byUser[id] = scoring.PointsSummary{UserID: id}
		}
	}

	entries := make([]LeaderboardEntry, 0, len(byUser))
	for id, summary := range byUser {
		entries = append(entries, LeaderboardEntry{UserID: id, Summary: summary})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Summary.Total != entries[j].Summary.Total {
			return entries[i].Summary.Total > entries[j].Summary.Total
		}
		return entries[i].UserID < entries[j].UserID
	})

	rank := 0
	lastTotal := -1
	for i := range entries {
		if i == 0 || entries[i].Summary.Total != lastTotal {
			rank++
			lastTotal = entries[i].Summary.Total
		}
		entries[i].Rank = rank
	}
	return entries, nil
}
