package standings

import (
	"testing"
	"time"

	"github.com/goalpool/prediction-league/internal/domain/match"
)

func completed(id, team1, team2 int64, round match.Round, s1, s2 int) match.Match {
	return match.Match{
		ID:         id,
		Team1ID:    team1,
		Team2ID:    team2,
		Round:      round,
		KickoffAt:  time.Date(2026, 6, 12, 18, 0, 0, 0, time.UTC),
		Team1Score: &s1,
		Team2Score: &s2,
		Completed:  true,
	}
}

func TestComputeOrdersByPointsThenGoalDiff(t *testing.T) {
	t.Parallel()

	matches := []match.Match{
		completed(1, 10, 11, match.RoundQualifying, 3, 0),
		completed(2, 12, 13, match.RoundQualifying, 1, 0),
		completed(3, 10, 12, match.RoundQualifying, 1, 1),
		completed(4, 11, 13, match.RoundQualifying, 2, 2),
	}
	table := Compute([]int64{10, 11, 12, 13}, matches)

	want := []int64{10, 12, 11, 13}
	for i, row := range table {
		if row.TeamID != want[i] {
			t.Fatalf("position %d: got team %d, want %d", i, row.TeamID, want[i])
		}
	}
	if table[0].Points != 4 || table[0].GoalDiff != 3 {
		t.Fatalf("leader: got %d pts gd %d, want 4 pts gd 3", table[0].Points, table[0].GoalDiff)
	}
}

func TestComputeBreaksFullTieByTeamID(t *testing.T) {
	t.Parallel()

	matches := []match.Match{
		completed(1, 20, 21, match.RoundQualifying, 1, 1),
	}
	table := Compute([]int64{21, 20}, matches)
	if table[0].TeamID != 20 || table[1].TeamID != 21 {
		t.Fatalf("tie order: got %d,%d, want 20,21", table[0].TeamID, table[1].TeamID)
	}
}

func TestComputeIgnoresIncompleteMatches(t *testing.T) {
	t.Parallel()

	pending := match.Match{ID: 9, Team1ID: 10, Team2ID: 11, Round: match.RoundQualifying}
	table := Compute([]int64{10, 11}, []match.Match{pending})
	for _, row := range table {
		if row.Played != 0 || row.Points != 0 {
			t.Fatalf("team %d: tallied a pending match", row.TeamID)
		}
	}
}

func TestFinalOutcome(t *testing.T) {
	t.Parallel()

	if _, _, ok := FinalOutcome(nil); ok {
		t.Fatal("expected no outcome without a final")
	}

	matches := []match.Match{completed(1, 30, 31, match.RoundFinal, 0, 2)}
	winner, runnerUp, ok := FinalOutcome(matches)
	if !ok || winner != 31 || runnerUp != 30 {
		t.Fatalf("got winner %d runner-up %d ok %v, want 31 30 true", winner, runnerUp, ok)
	}

	drawn := []match.Match{completed(1, 30, 31, match.RoundFinal, 1, 1)}
	if _, _, ok := FinalOutcome(drawn); ok {
		t.Fatal("drawn final must not yield a winner")
	}
}

func TestFinalOutcomeLatestKickoffDecides(t *testing.T) {
	t.Parallel()

	first := completed(1, 30, 31, match.RoundFinal, 2, 0)
	replay := completed(2, 30, 31, match.RoundFinal, 0, 1)
	replay.KickoffAt = first.KickoffAt.Add(72 * time.Hour)

	// Listing order must not matter, only kickoff recency.
	winner, runnerUp, ok := FinalOutcome([]match.Match{replay, first})
	if !ok || winner != 31 || runnerUp != 30 {
		t.Fatalf("got winner %d runner-up %d ok %v, want 31 30 true", winner, runnerUp, ok)
	}
	winner, _, ok = FinalOutcome([]match.Match{first, replay})
	if !ok || winner != 31 {
		t.Fatalf("reversed order: got winner %d ok %v, want 31 true", winner, ok)
	}
}

func TestQualifyingRecord(t *testing.T) {
	t.Parallel()

	matches := []match.Match{
		completed(1, 40, 41, match.RoundQualifying, 2, 0),
		completed(2, 42, 40, match.RoundQualifying, 1, 1),
		completed(3, 40, 43, match.RoundOf16, 5, 0),
	}
	record := QualifyingRecord(40, matches)
	if record.Completed != 2 {
		t.Fatalf("completed: got %d, want 2 (knockout match excluded)", record.Completed)
	}
	if record.Points != 4 {
		t.Fatalf("points: got %d, want 4", record.Points)
	}
}
