package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/goalpool/prediction-league/internal/domain/match"
	"github.com/goalpool/prediction-league/internal/platform/logging"
)

// RecalcEnqueuer defers a global recalculation to an external job queue so
// result recording returns before the heavy work runs.
type RecalcEnqueuer interface {
	EnqueueGlobalRecalc(ctx context.Context) error
}

// MatchService serves match reads and records results. Recording a result
// is the only write; it triggers a global recalculation since every stored
// prediction may now be worth different points.
type MatchService struct {
	matchRepo match.Repository
	scoring   *ScoringService
	enqueuer  RecalcEnqueuer
	logger    *logging.Logger
	now       func() time.Time
}

func NewMatchService(
	matchRepo match.Repository,
	scoringService *ScoringService,
	enqueuer RecalcEnqueuer,
	logger *logging.Logger,
) *MatchService {
	if logger == nil {
		logger = logging.Default()
	}
	return &MatchService{
		matchRepo: matchRepo,
		scoring:   scoringService,
		enqueuer:  enqueuer,
		logger:    logger,
		now:       time.Now,
	}
}

type MatchFilter struct {
	Round        string
	UpcomingOnly bool
}

func (s *MatchService) List(ctx context.Context, filter MatchFilter) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.List")
	defer span.End()

	repoFilter := match.Filter{UpcomingOnly: filter.UpcomingOnly}
	if filter.Round != "" {
		round, err := match.ParseRound(filter.Round)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		repoFilter.Round = &round
	}
	return s.matchRepo.List(ctx, repoFilter)
}

func (s *MatchService) GetByID(ctx context.Context, matchID int64) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.GetByID")
	defer span.End()

	m, ok, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match: %w", err)
	}
	if !ok {
		return match.Match{}, fmt.Errorf("%w: match %d", ErrNotFound, matchID)
	}
	return m, nil
}

// Current returns the earliest match that has not finished yet: the one in
// play, or failing that the next to kick off.
func (s *MatchService) Current(ctx context.Context) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Current")
	defer span.End()

	matches, err := s.matchRepo.List(ctx, match.Filter{})
	if err != nil {
		return match.Match{}, fmt.Errorf("list matches: %w", err)
	}
	for _, m := range matches {
		if !m.Completed {
			return m, nil
		}
	}
	return match.Match{}, fmt.Errorf("%w: no current match", ErrNotFound)
}

// RecordResult stores a final score and kicks off the global
// recalculation, preferring the job queue and falling back to an
// in-process background run when enqueueing fails.
func (s *MatchService) RecordResult(ctx context.Context, matchID int64, team1Score, team2Score int) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.RecordResult")
	defer span.End()

	if team1Score < 0 || team2Score < 0 {
		return match.Match{}, fmt.Errorf("%w: scores must be non-negative", ErrInvalidInput)
	}

	if _, ok, err := s.matchRepo.GetByID(ctx, matchID); err != nil {
		return match.Match{}, fmt.Errorf("get match: %w", err)
	} else if !ok {
		return match.Match{}, fmt.Errorf("%w: match %d", ErrNotFound, matchID)
	}

	if err := s.matchRepo.RecordResult(ctx, matchID, team1Score, team2Score); err != nil {
		return match.Match{}, fmt.Errorf("record result: %w", err)
	}

	s.triggerGlobalRecalc(ctx, matchID)

	m, _, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("reload match: %w", err)
	}
	return m, nil
}

func (s *MatchService) triggerGlobalRecalc(ctx context.Context, matchID int64) {
	if s.enqueuer != nil {
		if err := s.enqueuer.EnqueueGlobalRecalc(ctx); err == nil {
			return
		} else {
			s.logger.WarnContext(ctx, "enqueue global recalculation failed, running in-process",
				"match_id", matchID,
				"error", err,
			)
		}
	}
	s.scoring.RecalculateAllInBackground()
}
