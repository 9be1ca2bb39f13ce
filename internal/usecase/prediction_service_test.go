package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goalpool/prediction-league/internal/domain/match"
	"github.com/goalpool/prediction-league/internal/domain/prediction"
	"github.com/goalpool/prediction-league/internal/infrastructure/repository/memory"
)

func newPredictionFixture(t *testing.T, matches []match.Match, now time.Time) (*PredictionService, *memory.TeamPredictionRepository) {
	t.Helper()

	teamPreds := memory.NewTeamPredictionRepository()
	matchRepo := memory.NewMatchRepository(matches)
	eligibility := NewEligibilityService(matchRepo, teamPreds, testDeadlines)
	eligibility.now = func() time.Time { return now }

	svc := NewPredictionService(eligibility, memory.NewTeamRepository(groupATeams()), matchRepo, teamPreds, memory.NewMatchPredictionRepository())
	svc.now = func() time.Time { return now }
	return svc, teamPreds
}

func TestSubmitTeamPrediction_ResubmitReplacesPick(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)
	svc, teamPreds := newPredictionFixture(t, nil, now)

	ctx := context.Background()
	first, err := svc.SubmitTeamPrediction(ctx, TeamPredictionInput{
		UserID: "user-1", Type: prediction.TypeTP1, WinnerID: 1, RunnerUpID: 2,
	})
	if err != nil {
		t.Fatalf("first submission: %v", err)
	}

	second, err := svc.SubmitTeamPrediction(ctx, TeamPredictionInput{
		UserID: "user-1", Type: prediction.TypeTP1, WinnerID: 2, RunnerUpID: 3,
	})
	if err != nil {
		t.Fatalf("second submission: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("resubmission created a new row: ids %d and %d", first.ID, second.ID)
	}

	stored, err := teamPreds.ListByUserAndType(ctx, "user-1", prediction.TypeTP1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(stored) != 1 || stored[0].WinnerID != 2 {
		t.Fatalf("stored predictions: %+v, want single row with winner 2", stored)
	}
}

func TestSubmitTeamPrediction_TP2RejectsTeamOutsideGroup(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)
	svc, _ := newPredictionFixture(t, nil, now)

	// Fixture teams all sit in group A.
	_, err := svc.SubmitTeamPrediction(context.Background(), TeamPredictionInput{
		UserID: "user-1", Type: prediction.TypeTP2, GroupName: "B", WinnerID: 1, RunnerUpID: 2,
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("got %v, want ErrInvalidInput", err)
	}
}

func TestSubmitMatchPrediction_DeniedAfterLock(t *testing.T) {
	t.Parallel()

	kickoff := time.Date(2026, 6, 20, 18, 0, 0, 0, time.UTC)
	matches := []match.Match{{ID: 7, Team1ID: 1, Team2ID: 2, Round: match.RoundQualifying, KickoffAt: kickoff}}
	svc, _ := newPredictionFixture(t, matches, kickoff.Add(-10*time.Minute))

	_, err := svc.SubmitMatchPrediction(context.Background(), MatchPredictionInput{
		UserID: "user-1", MatchID: 7, Team1Score: 2, Team2Score: 1,
	})
	if !errors.Is(err, ErrDeadlinePassed) {
		t.Fatalf("got %v, want ErrDeadlinePassed", err)
	}
}

func TestSubmitMatchPrediction_UnknownMatch(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)
	svc, _ := newPredictionFixture(t, nil, now)

	_, err := svc.SubmitMatchPrediction(context.Background(), MatchPredictionInput{
		UserID: "user-1", MatchID: 404, Team1Score: 1, Team2Score: 0,
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestListByMatch_HiddenUntilCompleted(t *testing.T) {
	t.Parallel()

	kickoff := time.Date(2026, 6, 20, 18, 0, 0, 0, time.UTC)
	open := match.Match{ID: 7, Team1ID: 1, Team2ID: 2, Round: match.RoundQualifying, KickoffAt: kickoff}

	svc, _ := newPredictionFixture(t, []match.Match{open}, kickoff.Add(-time.Hour))
	if _, err := svc.ListByMatch(context.Background(), 7); !errors.Is(err, ErrNotYetOpen) {
		t.Fatalf("before kickoff: got %v, want ErrNotYetOpen", err)
	}

	// Still hidden in play: kickoff has passed but no result is in.
	svc, _ = newPredictionFixture(t, []match.Match{open}, kickoff.Add(30*time.Minute))
	if _, err := svc.ListByMatch(context.Background(), 7); !errors.Is(err, ErrNotYetOpen) {
		t.Fatalf("in play: got %v, want ErrNotYetOpen", err)
	}

	done := open
	done.Team1Score, done.Team2Score = scorePtr(1), scorePtr(0)
	done.Completed = true

	svc, _ = newPredictionFixture(t, []match.Match{done}, kickoff.Add(2*time.Hour))
	if _, err := svc.ListByMatch(context.Background(), 7); err != nil {
		t.Fatalf("after completion: got %v, want nil", err)
	}
}
