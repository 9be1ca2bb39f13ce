package usecase

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/goalpool/prediction-league/internal/domain/match"
	"github.com/goalpool/prediction-league/internal/domain/multiplier"
	"github.com/goalpool/prediction-league/internal/domain/prediction"
	"github.com/goalpool/prediction-league/internal/domain/scoring"
	"github.com/goalpool/prediction-league/internal/domain/team"
	"github.com/goalpool/prediction-league/internal/infrastructure/repository/memory"
	"github.com/goalpool/prediction-league/internal/platform/logging"
)

type scoringFixture struct {
	svc         *ScoringService
	teamPreds   *memory.TeamPredictionRepository
	matchPreds  *memory.MatchPredictionRepository
	multipliers *memory.MultiplierRepository
	summaries   *memory.ScoringRepository
	users       *memory.UserRepository
}

func newScoringFixture(t *testing.T, teams []team.Team, matches []match.Match) *scoringFixture {
	t.Helper()

	f := &scoringFixture{
		teamPreds:   memory.NewTeamPredictionRepository(),
		matchPreds:  memory.NewMatchPredictionRepository(),
		multipliers: memory.NewMultiplierRepository(),
		summaries:   memory.NewScoringRepository(),
		users:       memory.NewUserRepository(),
	}
	f.svc = NewScoringService(
		memory.NewTeamRepository(teams),
		memory.NewMatchRepository(matches),
		f.teamPreds,
		f.matchPreds,
		f.multipliers,
		f.summaries,
		f.users,
		nil,
		logging.NewNop(),
	)
	f.svc.now = func() time.Time {
		return time.Date(2026, 7, 20, 12, 0, 0, 0, time.UTC)
	}
	return f
}

func (f *scoringFixture) activate(t *testing.T, userID string, teamID int64, kind multiplier.Kind) {
	t.Helper()
	_, err := f.multipliers.Activate(context.Background(), multiplier.Activation{
		UserID: userID,
		TeamID: teamID,
		Kind:   kind,
	})
	if err != nil {
		t.Fatalf("activate multiplier: %v", err)
	}
}

func groupATeams() []team.Team {
	return []team.Team{
		{ID: 1, Name: "Brazil", CountryCode: "BRA", Group: "A"},
		{ID: 2, Name: "Germany", CountryCode: "GER", Group: "A"},
		{ID: 3, Name: "Morocco", CountryCode: "MAR", Group: "A"},
	}
}

func TestRecalculateUser_TP1WinnerAndRunnerUpWithDoubleUp(t *testing.T) {
	t.Parallel()

	kickoff := time.Date(2026, 7, 19, 18, 0, 0, 0, time.UTC)
	matches := []match.Match{
		completedMatch(1, 1, 2, match.RoundFinal, kickoff, 2, 0),
	}
	f := newScoringFixture(t, groupATeams(), matches)

	_, err := f.teamPreds.Upsert(context.Background(), prediction.TeamPrediction{
		UserID: "user-1", Type: prediction.TypeTP1, WinnerID: 1, RunnerUpID: 2,
	})
	if err != nil {
		t.Fatalf("seed tp1: %v", err)
	}
	f.activate(t, "user-1", 1, multiplier.KindDoubleUp)

	summary, err := f.svc.RecalculateUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("recalculate: %v", err)
	}
	if summary.TP1 != 1600 {
		t.Fatalf("tp1 points: got %d, want 1600", summary.TP1)
	}
	if summary.Total != 1600 {
		t.Fatalf("total: got %d, want 1600", summary.Total)
	}
}

func TestRecalculateUser_TP1StacksBothMultipliers(t *testing.T) {
	t.Parallel()

	kickoff := time.Date(2026, 7, 19, 18, 0, 0, 0, time.UTC)
	matches := []match.Match{
		// Runner-up pick is wrong, only the winner component pays.
		completedMatch(1, 1, 3, match.RoundFinal, kickoff, 3, 1),
	}
	f := newScoringFixture(t, groupATeams(), matches)

	_, err := f.teamPreds.Upsert(context.Background(), prediction.TeamPrediction{
		UserID: "user-1", Type: prediction.TypeTP1, WinnerID: 1, RunnerUpID: 2,
	})
	if err != nil {
		t.Fatalf("seed tp1: %v", err)
	}
	f.activate(t, "user-1", 1, multiplier.KindDoubleUp)
	f.activate(t, "user-1", 1, multiplier.KindReDoubleUp)

	summary, err := f.svc.RecalculateUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("recalculate: %v", err)
	}
	if summary.TP1 != 2000 {
		t.Fatalf("tp1 points: got %d, want 500*4=2000", summary.TP1)
	}
}

func TestRecalculateUser_TP2SumsPerGroup(t *testing.T) {
	t.Parallel()

	teams := []team.Team{
		{ID: 1, Name: "Brazil", CountryCode: "BRA", Group: "A"},
		{ID: 2, Name: "Germany", CountryCode: "GER", Group: "A"},
		{ID: 3, Name: "Morocco", CountryCode: "MAR", Group: "A"},
		{ID: 4, Name: "Argentina", CountryCode: "ARG", Group: "B"},
		{ID: 5, Name: "Netherlands", CountryCode: "NED", Group: "B"},
		{ID: 6, Name: "Senegal", CountryCode: "SEN", Group: "B"},
	}
	base := time.Date(2026, 6, 12, 18, 0, 0, 0, time.UTC)
	matches := []match.Match{
		// Group A finishes 1, 2, 3.
		completedMatch(1, 1, 2, match.RoundQualifying, base, 3, 0),
		completedMatch(2, 1, 3, match.RoundQualifying, base.Add(3*time.Hour), 1, 0),
		completedMatch(3, 2, 3, match.RoundQualifying, base.Add(6*time.Hour), 2, 1),
		// Group B finishes 4, 5, 6.
		completedMatch(4, 4, 5, match.RoundQualifying, base.Add(9*time.Hour), 2, 0),
		completedMatch(5, 4, 6, match.RoundQualifying, base.Add(12*time.Hour), 3, 1),
		completedMatch(6, 5, 6, match.RoundQualifying, base.Add(15*time.Hour), 1, 0),
	}
	f := newScoringFixture(t, teams, matches)

	ctx := context.Background()
	// Group A: winner right, runner-up wrong -> 200.
	if _, err := f.teamPreds.Upsert(ctx, prediction.TeamPrediction{
		UserID: "user-1", Type: prediction.TypeTP2, GroupName: "A", WinnerID: 1, RunnerUpID: 3,
	}); err != nil {
		t.Fatalf("seed tp2 group A: %v", err)
	}
	// Group B: winner wrong, runner-up right -> 100.
	if _, err := f.teamPreds.Upsert(ctx, prediction.TeamPrediction{
		UserID: "user-1", Type: prediction.TypeTP2, GroupName: "B", WinnerID: 6, RunnerUpID: 5,
	}); err != nil {
		t.Fatalf("seed tp2 group B: %v", err)
	}

	summary, err := f.svc.RecalculateUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("recalculate: %v", err)
	}
	if summary.TP2 != 300 {
		t.Fatalf("tp2 points: got %d, want 300", summary.TP2)
	}
}

func TestRecalculateUser_MatchPredictions(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 6, 12, 18, 0, 0, 0, time.UTC)
	matches := []match.Match{
		completedMatch(1, 1, 2, match.RoundQualifying, base, 2, 0),
		completedMatch(2, 1, 3, match.RoundSemifinals, base.Add(24*time.Hour), 1, 0),
		completedMatch(3, 2, 3, match.RoundFinal, base.Add(48*time.Hour), 2, 0),
		{ID: 4, Team1ID: 1, Team2ID: 2, Round: match.RoundFinal, KickoffAt: base.Add(72 * time.Hour)},
	}
	f := newScoringFixture(t, groupATeams(), matches)

	ctx := context.Background()
	seed := func(matchID int64, s1, s2 int) {
		t.Helper()
		if _, err := f.matchPreds.Upsert(ctx, prediction.MatchPrediction{
			UserID: "user-1", MatchID: matchID, Team1Score: s1, Team2Score: s2,
		}); err != nil {
			t.Fatalf("seed match prediction %d: %v", matchID, err)
		}
	}
	seed(1, 1, 1) // draw predicted, team1 won: 0
	seed(2, 1, 0) // exact semifinal: 100
	seed(3, 1, 0) // outcome-only final: 25
	seed(4, 2, 0) // match not played yet: 0

	summary, err := f.svc.RecalculateUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("recalculate: %v", err)
	}
	if summary.Match != 125 {
		t.Fatalf("match points: got %d, want 125", summary.Match)
	}
}

func TestRecalculateUser_MatchMultiplierIsMaxOfTwoTeams(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 6, 12, 18, 0, 0, 0, time.UTC)
	matches := []match.Match{
		completedMatch(1, 1, 2, match.RoundQualifying, base, 2, 0),
	}
	f := newScoringFixture(t, groupATeams(), matches)

	ctx := context.Background()
	if _, err := f.matchPreds.Upsert(ctx, prediction.MatchPrediction{
		UserID: "user-1", MatchID: 1, Team1Score: 2, Team2Score: 0,
	}); err != nil {
		t.Fatalf("seed match prediction: %v", err)
	}
	f.activate(t, "user-1", 1, multiplier.KindDoubleUp)
	f.activate(t, "user-1", 2, multiplier.KindDoubleUp)

	summary, err := f.svc.RecalculateUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("recalculate: %v", err)
	}
	// Exact qualifying score pays 25; factors on both teams do not
	// compound, the larger one wins: 25*2.
	if summary.Match != 50 {
		t.Fatalf("match points: got %d, want 50", summary.Match)
	}
}

func TestRecalculateUser_Idempotent(t *testing.T) {
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

	first, err := f.svc.RecalculateUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("first recalculate: %v", err)
	}
	second, err := f.svc.RecalculateUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("second recalculate: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("summaries differ:\nfirst  %+v\nsecond %+v", first, second)
	}
}

func TestRecalculateUser_NoFinalScoresZeroForTournamentPicks(t *testing.T) {
	t.Parallel()

	f := newScoringFixture(t, groupATeams(), nil)
	ctx := context.Background()
	if _, err := f.teamPreds.Upsert(ctx, prediction.TeamPrediction{
		UserID: "user-1", Type: prediction.TypeTP1, WinnerID: 1, RunnerUpID: 2,
	}); err != nil {
		t.Fatalf("seed tp1: %v", err)
	}

	summary, err := f.svc.RecalculateUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("recalculate: %v", err)
	}
	if summary.Total != 0 {
		t.Fatalf("total: got %d, want 0 before the final is decided", summary.Total)
	}
}

func TestMatchAwards_MonotonicAcrossRounds(t *testing.T) {
	t.Parallel()

	rounds := []match.Round{
		match.RoundQualifying,
		match.RoundOf16,
		match.RoundQuarterfinals,
		match.RoundSemifinals,
		match.RoundFinal,
	}
	prevOutcome, prevExact := 0, 0
	for _, round := range rounds {
		outcome, exact := matchAwards(round)
		if exact <= outcome {
			t.Fatalf("round %s: exact %d must exceed outcome %d", round, exact, outcome)
		}
		if outcome <= prevOutcome || exact <= prevExact {
			t.Fatalf("round %s: awards must grow with round importance", round)
		}
		prevOutcome, prevExact = outcome, exact
	}
}

// failingScoringRepo rejects writes for one user to exercise failure
// isolation in the global run.
type failingScoringRepo struct {
	*memory.ScoringRepository
	failUserID string
}

func (r *failingScoringRepo) Upsert(ctx context.Context, summary scoring.PointsSummary) error {
	if summary.UserID == r.failUserID {
		return errors.New("storage rejected write")
	}
	return r.ScoringRepository.Upsert(ctx, summary)
}

func TestRecalculateAll_IsolatesPerUserFailures(t *testing.T) {
	t.Parallel()

	kickoff := time.Date(2026, 7, 19, 18, 0, 0, 0, time.UTC)
	matches := []match.Match{
		completedMatch(1, 1, 2, match.RoundFinal, kickoff, 2, 0),
	}

	inner := memory.NewScoringRepository()
	failing := &failingScoringRepo{ScoringRepository: inner, failUserID: "user-bad"}
	users := memory.NewUserRepository("user-good", "user-bad")

	svc := NewScoringService(
		memory.NewTeamRepository(groupATeams()),
		memory.NewMatchRepository(matches),
		memory.NewTeamPredictionRepository(),
		memory.NewMatchPredictionRepository(),
		memory.NewMultiplierRepository(),
		failing,
		users,
		nil,
		logging.NewNop(),
	)

	report, err := svc.RecalculateAll(context.Background())
	if err != nil {
		t.Fatalf("recalculate all: %v", err)
	}
	if report.SuccessCount != 1 || report.FailedCount != 1 {
		t.Fatalf("report: got success %d failed %d, want 1 and 1", report.SuccessCount, report.FailedCount)
	}
	if _, ok, _ := inner.Get(context.Background(), "user-good"); !ok {
		t.Fatal("user-good summary should be written despite user-bad failing")
	}
}

func TestTeamPredictionPoints_ReadOnlyValue(t *testing.T) {
	t.Parallel()

	kickoff := time.Date(2026, 7, 19, 18, 0, 0, 0, time.UTC)
	matches := []match.Match{
		completedMatch(1, 1, 2, match.RoundFinal, kickoff, 2, 0),
	}
	f := newScoringFixture(t, groupATeams(), matches)

	ctx := context.Background()
	_, err := f.teamPreds.Upsert(ctx, prediction.TeamPrediction{
		UserID: "user-1", Type: prediction.TypeTP1, WinnerID: 1, RunnerUpID: 2,
	})
	if err != nil {
		t.Fatalf("seed tp1: %v", err)
	}
	f.activate(t, "user-1", 1, multiplier.KindDoubleUp)

	got, err := f.svc.TeamPredictionPoints(ctx, "user-1", prediction.TypeTP1, "")
	if err != nil {
		t.Fatalf("team prediction points: %v", err)
	}
	if got != 1600 {
		t.Fatalf("tp1 value: got %d, want 1600", got)
	}

	// A user with no stored prediction scores zero, not an error.
	got, err = f.svc.TeamPredictionPoints(ctx, "user-2", prediction.TypeTP1, "")
	if err != nil {
		t.Fatalf("absent prediction: %v", err)
	}
	if got != 0 {
		t.Fatalf("absent prediction value: got %d, want 0", got)
	}

	// The read never materializes a summary.
	if _, ok, _ := f.summaries.Get(ctx, "user-1"); ok {
		t.Fatal("summary was persisted by a read-only computation")
	}
}

func TestTeamPredictionPoints_FiltersByGroup(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 6, 17, 18, 0, 0, 0, time.UTC)
	matches := []match.Match{
		completedMatch(1, 1, 2, match.RoundQualifying, base, 2, 0),
	}
	f := newScoringFixture(t, groupATeams(), matches)

	ctx := context.Background()
	_, err := f.teamPreds.Upsert(ctx, prediction.TeamPrediction{
		UserID: "user-1", Type: prediction.TypeTP2, GroupName: "A", WinnerID: 1, RunnerUpID: 3,
	})
	if err != nil {
		t.Fatalf("seed tp2: %v", err)
	}

	got, err := f.svc.TeamPredictionPoints(ctx, "user-1", prediction.TypeTP2, "A")
	if err != nil {
		t.Fatalf("tp2 group A: %v", err)
	}
	if got == 0 {
		t.Fatal("tp2 value for the predicted group should be positive")
	}

	got, err = f.svc.TeamPredictionPoints(ctx, "user-1", prediction.TypeTP2, "B")
	if err != nil {
		t.Fatalf("tp2 group B: %v", err)
	}
	if got != 0 {
		t.Fatalf("tp2 value for a group without a prediction: got %d, want 0", got)
	}
}

func TestMatchPredictionPoints_ReadOnlyValue(t *testing.T) {
	t.Parallel()

	kickoff := time.Date(2026, 7, 14, 18, 0, 0, 0, time.UTC)
	matches := []match.Match{
		completedMatch(1, 1, 2, match.RoundSemifinals, kickoff, 2, 1),
	}
	f := newScoringFixture(t, groupATeams(), matches)

	ctx := context.Background()
	_, err := f.matchPreds.Upsert(ctx, prediction.MatchPrediction{
		UserID: "user-1", MatchID: 1, Team1Score: 2, Team2Score: 1,
	})
	if err != nil {
		t.Fatalf("seed match prediction: %v", err)
	}

	got, err := f.svc.MatchPredictionPoints(ctx, "user-1", 1)
	if err != nil {
		t.Fatalf("match prediction points: %v", err)
	}
	if got != 100 {
		t.Fatalf("exact semifinal value: got %d, want 100", got)
	}

	got, err = f.svc.MatchPredictionPoints(ctx, "user-2", 1)
	if err != nil {
		t.Fatalf("absent prediction: %v", err)
	}
	if got != 0 {
		t.Fatalf("absent prediction value: got %d, want 0", got)
	}

	if _, ok, _ := f.summaries.Get(ctx, "user-1"); ok {
		t.Fatal("summary was persisted by a read-only computation")
	}
}
