package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goalpool/prediction-league/internal/domain/match"
	"github.com/goalpool/prediction-league/internal/domain/multiplier"
	"github.com/goalpool/prediction-league/internal/domain/prediction"
	"github.com/goalpool/prediction-league/internal/infrastructure/repository/memory"
	"github.com/goalpool/prediction-league/internal/platform/logging"
)

func TestMultiplierActivate_RefreshesUserPoints(t *testing.T) {
	t.Parallel()

	kickoff := time.Date(2026, 7, 19, 18, 0, 0, 0, time.UTC)
	matches := []match.Match{
		completedMatch(1, 1, 2, match.RoundFinal, kickoff, 2, 0),
	}
	f := newScoringFixture(t, groupATeams(), matches)

	ctx := context.Background()
	if _, err := f.teamPreds.Upsert(ctx, prediction.TeamPrediction{
		UserID: "user-1", Type: prediction.TypeTP1, WinnerID: 1, RunnerUpID: 2,
	}); err != nil {
		t.Fatalf("seed tp1: %v", err)
	}

	eligibility := NewEligibilityService(memory.NewMatchRepository(matches), f.teamPreds, testDeadlines)
	eligibility.now = func() time.Time { return testDeadlines.ReDoubleUpOpenAt.Add(time.Hour) }

	svc := NewMultiplierService(eligibility, memory.NewTeamRepository(groupATeams()), f.multipliers, f.svc, logging.NewNop())

	if _, err := svc.Activate(ctx, "user-1", 1, multiplier.KindReDoubleUp); err != nil {
		t.Fatalf("activate: %v", err)
	}

	summary, ok, err := f.summaries.Get(ctx, "user-1")
	if err != nil || !ok {
		t.Fatalf("summary after activation: ok=%v err=%v", ok, err)
	}
	if summary.TP1 != 1600 {
		t.Fatalf("tp1 after activation: got %d, want (500+300)*2=1600", summary.TP1)
	}

	_, err = svc.Activate(ctx, "user-1", 1, multiplier.KindReDoubleUp)
	if !errors.Is(err, ErrAlreadyActivated) {
		t.Fatalf("second activation: got %v, want ErrAlreadyActivated", err)
	}
}

func TestMultiplierActivate_UnknownTeam(t *testing.T) {
	t.Parallel()

	f := newScoringFixture(t, groupATeams(), nil)
	eligibility := NewEligibilityService(memory.NewMatchRepository(nil), f.teamPreds, testDeadlines)
	svc := NewMultiplierService(eligibility, memory.NewTeamRepository(groupATeams()), f.multipliers, f.svc, logging.NewNop())

	_, err := svc.Activate(context.Background(), "user-1", 99, multiplier.KindDoubleUp)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}
