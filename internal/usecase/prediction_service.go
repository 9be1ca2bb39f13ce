package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/goalpool/prediction-league/internal/domain/match"
	"github.com/goalpool/prediction-league/internal/domain/prediction"
	"github.com/goalpool/prediction-league/internal/domain/team"
)

// PredictionService handles user prediction submission and reads. Every
// submission passes the eligibility gate before touching storage; storage
// itself enforces one row per key with insert-or-update semantics.
type PredictionService struct {
	eligibility   *EligibilityService
	teamRepo      team.Repository
	matchRepo     match.Repository
	teamPredRepo  prediction.TeamRepository
	matchPredRepo prediction.MatchRepository
	now           func() time.Time
}

func NewPredictionService(
	eligibility *EligibilityService,
	teamRepo team.Repository,
	matchRepo match.Repository,
	teamPredRepo prediction.TeamRepository,
	matchPredRepo prediction.MatchRepository,
) *PredictionService {
	return &PredictionService{
		eligibility:   eligibility,
		teamRepo:      teamRepo,
		matchRepo:     matchRepo,
		teamPredRepo:  teamPredRepo,
		matchPredRepo: matchPredRepo,
		now:           time.Now,
	}
}

type TeamPredictionInput struct {
	UserID     string
	Type       prediction.Type
	GroupName  string
	WinnerID   int64
	RunnerUpID int64
}

func (s *PredictionService) SubmitTeamPrediction(ctx context.Context, input TeamPredictionInput) (prediction.TeamPrediction, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.SubmitTeamPrediction")
	defer span.End()

	pred := prediction.TeamPrediction{
		UserID:     input.UserID,
		Type:       input.Type,
		GroupName:  input.GroupName,
		WinnerID:   input.WinnerID,
		RunnerUpID: input.RunnerUpID,
	}
	if err := pred.Validate(); err != nil {
		return prediction.TeamPrediction{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	for _, teamID := range []int64{pred.WinnerID, pred.RunnerUpID} {
		picked, ok, err := s.teamRepo.GetByID(ctx, teamID)
		if err != nil {
			return prediction.TeamPrediction{}, fmt.Errorf("get team %d: %w", teamID, err)
		}
		if !ok {
			return prediction.TeamPrediction{}, fmt.Errorf("%w: team %d", ErrNotFound, teamID)
		}
		if pred.Type == prediction.TypeTP2 && picked.Group != pred.GroupName {
			return prediction.TeamPrediction{}, fmt.Errorf("%w: team %d is not in group %s", ErrInvalidInput, teamID, pred.GroupName)
		}
	}

	if err := s.eligibility.CheckTeamPrediction(ctx, pred.UserID, pred.Type); err != nil {
		return prediction.TeamPrediction{}, err
	}

	stored, err := s.teamPredRepo.Upsert(ctx, pred)
	if err != nil {
		return prediction.TeamPrediction{}, fmt.Errorf("upsert team prediction: %w", err)
	}
	return stored, nil
}

type MatchPredictionInput struct {
	UserID     string
	MatchID    int64
	Team1Score int
	Team2Score int
}

func (s *PredictionService) SubmitMatchPrediction(ctx context.Context, input MatchPredictionInput) (prediction.MatchPrediction, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.SubmitMatchPrediction")
	defer span.End()

	pred := prediction.MatchPrediction{
		UserID:     input.UserID,
		MatchID:    input.MatchID,
		Team1Score: input.Team1Score,
		Team2Score: input.Team2Score,
	}
	if err := pred.Validate(); err != nil {
		return prediction.MatchPrediction{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	m, ok, err := s.matchRepo.GetByID(ctx, pred.MatchID)
	if err != nil {
		return prediction.MatchPrediction{}, fmt.Errorf("get match: %w", err)
	}
	if !ok {
		return prediction.MatchPrediction{}, fmt.Errorf("%w: match %d", ErrNotFound, pred.MatchID)
	}

	if err := s.eligibility.CheckMatchPrediction(ctx, m); err != nil {
		return prediction.MatchPrediction{}, err
	}

	stored, err := s.matchPredRepo.Upsert(ctx, pred)
	if err != nil {
		return prediction.MatchPrediction{}, fmt.Errorf("upsert match prediction: %w", err)
	}
	return stored, nil
}

// UserPredictions bundles everything a user has submitted.
type UserPredictions struct {
	TeamPredictions  []prediction.TeamPrediction
	MatchPredictions []prediction.MatchPrediction
}

func (s *PredictionService) ListByUser(ctx context.Context, userID string) (UserPredictions, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.ListByUser")
	defer span.End()

	if userID == "" {
		return UserPredictions{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	teamPreds, err := s.teamPredRepo.ListByUser(ctx, userID)
	if err != nil {
		return UserPredictions{}, fmt.Errorf("list team predictions: %w", err)
	}
	matchPreds, err := s.matchPredRepo.ListByUser(ctx, userID)
	if err != nil {
		return UserPredictions{}, fmt.Errorf("list match predictions: %w", err)
	}
	return UserPredictions{TeamPredictions: teamPreds, MatchPredictions: matchPreds}, nil
}

// ListByMatch returns everyone's predictions for a match. Other users'
// picks stay hidden until the match completes.
func (s *PredictionService) ListByMatch(ctx context.Context, matchID int64) ([]prediction.MatchPrediction, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.ListByMatch")
	defer span.End()

	m, ok, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("get match: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: match %d", ErrNotFound, matchID)
	}
	if !m.Completed {
		return nil, ErrNotYetOpen
	}

	preds, err := s.matchPredRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("list match predictions: %w", err)
	}
	return preds, nil
}
