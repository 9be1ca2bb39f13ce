package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc"

	"github.com/goalpool/prediction-league/internal/domain/match"
	"github.com/goalpool/prediction-league/internal/domain/multiplier"
	"github.com/goalpool/prediction-league/internal/domain/prediction"
	"github.com/goalpool/prediction-league/internal/domain/scoring"
	"github.com/goalpool/prediction-league/internal/domain/standings"
	"github.com/goalpool/prediction-league/internal/domain/team"
	"github.com/goalpool/prediction-league/internal/domain/user"
	"github.com/goalpool/prediction-league/internal/platform/cache"
	"github.com/goalpool/prediction-league/internal/platform/logging"
	"github.com/goalpool/prediction-league/internal/platform/resilience"
)

// Award values per prediction category. Team-outcome awards pay the winner
// and runner-up components separately; the whole sum is multiplied by the
// winner team's multiplier.
const (
	tournamentWinnerAward   = 500
	tournamentRunnerUpAward = 300
	groupWinnerAward        = 200
	groupRunnerUpAward      = 100
)

// matchAwards returns the outcome-only and exact-score awards for a round.
// Exact beats outcome; only one of the two is ever paid.
func matchAwards(round match.Round) (outcome, exact int) {
	switch round {
	case match.RoundQualifying:
		return 5, 25
	case match.RoundOf16:
		return 10, 50
	case match.RoundQuarterfinals:
		return 15, 75
	case match.RoundSemifinals:
		return 20, 100
	case match.RoundFinal:
		return 25, 125
	default:
		return 0, 0
	}
}

const (
	defaultRecalcWorkers    = 8
	backgroundRecalcTimeout = 5 * time.Minute
)

// ScoringService recomputes user points from stored predictions and the
// current tournament state. Recalculation is a full overwrite of the user's
// summary, never an incremental delta, so replaying it is always safe.
type ScoringService struct {
	teamRepo       team.Repository
	matchRepo      match.Repository
	teamPredRepo   prediction.TeamRepository
	matchPredRepo  prediction.MatchRepository
	multiplierRepo multiplier.Repository
	scoringRepo    scoring.Repository
	userRepo       user.Repository

	cache         *cache.Store
	logger        *logging.Logger
	now           func() time.Time
	recalcFlight  resilience.SingleFlight
	recalcWorkers int
}

func NewScoringService(
	teamRepo team.Repository,
	matchRepo match.Repository,
	teamPredRepo prediction.TeamRepository,
	matchPredRepo prediction.MatchRepository,
	multiplierRepo multiplier.Repository,
	scoringRepo scoring.Repository,
	userRepo user.Repository,
	store *cache.Store,
	logger *logging.Logger,
) *ScoringService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ScoringService{
		teamRepo:       teamRepo,
		matchRepo:      matchRepo,
		teamPredRepo:   teamPredRepo,
		matchPredRepo:  matchPredRepo,
		multiplierRepo: multiplierRepo,
		scoringRepo:    scoringRepo,
		userRepo:       userRepo,
		cache:          store,
		logger:         logger,
		now:            time.Now,
		recalcWorkers:  defaultRecalcWorkers,
	}
}

// tournamentState is a point-in-time snapshot loaded once per recalculation
// so every prediction of a user is scored against the same data.
type tournamentState struct {
	matches      []match.Match
	matchByID    map[int64]match.Match
	winnerID     int64
	runnerUpID   int64
	finalDecided bool

	// groupTables memoizes per-group standings; guarded because one
	// snapshot is shared across recalculation workers.
	mu          sync.Mutex
	groupTables map[string][]standings.Row
}

func (s *ScoringService) loadState(ctx context.Context) (*tournamentState, error) {
	matches, err := s.matchRepo.List(ctx, match.Filter{})
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	state := &tournamentState{
		matches:     matches,
		matchByID:   make(map[int64]match.Match, len(matches)),
		groupTables: make(map[string][]standings.Row),
	}
	for _, m := range matches {
		state.matchByID[m.ID] = m
	}
	state.winnerID, state.runnerUpID, state.finalDecided = standings.FinalOutcome(matches)
	return state, nil
}

// groupTable lazily computes and memoizes one group's standings.
func (s *ScoringService) groupTable(ctx context.Context, state *tournamentState, group string) ([]standings.Row, error) {
	state.mu.Lock()
	table, ok := state.groupTables[group]
	state.mu.Unlock()
	if ok {
		return table, nil
	}

	teams, err := s.teamRepo.List(ctx, group)
	if err != nil {
		return nil, fmt.Errorf("list teams for group %s: %w", group, err)
	}
	teamIDs := make([]int64, 0, len(teams))
	for _, t := range teams {
		teamIDs = append(teamIDs, t.ID)
	}

	qualifying := make([]match.Match, 0, len(state.matches))
	for _, m := range state.matches {
		if m.Round == match.RoundQualifying {
			qualifying = append(qualifying, m)
		}
	}

	table = standings.Compute(teamIDs, qualifying)
	state.mu.Lock()
	state.groupTables[group] = table
	state.mu.Unlock()
	return table, nil
}

// teamPredictionPoints scores one team prediction. TP1 and TP3 pay against
// the tournament outcome, TP2 against the prediction's group table. The
// combined award is multiplied by the predicted winner team's multiplier,
// for the runner-up component too.
func (s *ScoringService) teamPredictionPoints(
	ctx context.Context,
	state *tournamentState,
	pred prediction.TeamPrediction,
	activations []multiplier.Activation,
) (int, error) {
	award := 0
	switch pred.Type {
	case prediction.TypeTP1, prediction.TypeTP3:
		if !state.finalDecided {
			return 0, nil
		}
		if pred.WinnerID == state.winnerID {
			award += tournamentWinnerAward
		}
		if pred.RunnerUpID == state.runnerUpID {
			award += tournamentRunnerUpAward
		}

	case prediction.TypeTP2:
		table, err := s.groupTable(ctx, state, pred.GroupName)
		if err != nil {
			return 0, err
		}
		first, second, ok := standings.TopTwo(table)
		if !ok {
			return 0, nil
		}
		if pred.WinnerID == first {
			award += groupWinnerAward
		}
		if pred.RunnerUpID == second {
			award += groupRunnerUpAward
		}

	default:
		return 0, fmt.Errorf("unknown prediction type %q", pred.Type)
	}

	return award * multiplier.FactorFor(pred.WinnerID, activations), nil
}

// matchPredictionPoints scores one exact-score prediction. Incomplete
// matches and unknown match references score zero. The multiplier is the
// max of the two participating teams' factors, never their product.
func matchPredictionPoints(
	state *tournamentState,
	pred prediction.MatchPrediction,
	activations []multiplier.Activation,
) int {
	m, ok := state.matchByID[pred.MatchID]
	if !ok || !m.HasResult() {
		return 0
	}

	outcomeAward, exactAward := matchAwards(m.Round)

	award := 0
	switch {
	case pred.Team1Score == *m.Team1Score && pred.Team2Score == *m.Team2Score:
		award = exactAward
	case pred.Outcome() == match.OutcomeOf(*m.Team1Score, *m.Team2Score):
		award = outcomeAward
	}
	if award == 0 {
		return 0
	}

	factor := multiplier.FactorFor(m.Team1ID, activations)
	if f := multiplier.FactorFor(m.Team2ID, activations); f > factor {
		factor = f
	}
	return award * factor
}

// TeamPredictionPoints computes the current value of one of the user's team
// predictions without persisting anything. Absent predictions score zero.
func (s *ScoringService) TeamPredictionPoints(ctx context.Context, userID string, predictionType prediction.Type, group string) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.TeamPredictionPoints")
	defer span.End()

	preds, err := s.teamPredRepo.ListByUserAndType(ctx, userID, predictionType)
	if err != nil {
		return 0, fmt.Errorf("list team predictions: %w", err)
	}

	state, err := s.loadState(ctx)
	if err != nil {
		return 0, err
	}
	activations, err := s.multiplierRepo.ListActiveByUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("list multiplier activations: %w", err)
	}

	for _, pred := range preds {
		if pred.GroupName != group {
			continue
		}
		return s.teamPredictionPoints(ctx, state, pred, activations)
	}
	return 0, nil
}

// MatchPredictionPoints computes the current value of the user's prediction
// for one match without persisting anything.
func (s *ScoringService) MatchPredictionPoints(ctx context.Context, userID string, matchID int64) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.MatchPredictionPoints")
	defer span.End()

	pred, ok, err := s.matchPredRepo.Get(ctx, userID, matchID)
	if err != nil {
		return 0, fmt.Errorf("get match prediction: %w", err)
	}
	if !ok {
		return 0, nil
	}

	state, err := s.loadState(ctx)
	if err != nil {
		return 0, err
	}
	activations, err := s.multiplierRepo.ListActiveByUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("list multiplier activations: %w", err)
	}
	return matchPredictionPoints(state, pred, activations), nil
}

// RecalculateUser recomputes and persists the user's full points summary.
// Concurrent calls for the same user collapse into one run. A failure while
// scoring a single prediction degrades that prediction to zero instead of
// aborting the whole summary.
func (s *ScoringService) RecalculateUser(ctx context.Context, userID string) (scoring.PointsSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.RecalculateUser")
	defer span.End()

	if userID == "" {
		return scoring.PointsSummary{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	value, err, _ := s.recalcFlight.Do("recalc:user:"+userID, func() (any, error) {
		return s.recalculateUserOnce(ctx, userID)
	})
	if err != nil {
		return scoring.PointsSummary{}, err
	}
	summary, _ := value.(scoring.PointsSummary)
	return summary, nil
}

func (s *ScoringService) recalculateUserOnce(ctx context.Context, userID string) (scoring.PointsSummary, error) {
	state, err := s.loadState(ctx)
	if err != nil {
		return scoring.PointsSummary{}, err
	}
	return s.recalculateUserWithState(ctx, state, userID)
}

func (s *ScoringService) recalculateUserWithState(ctx context.Context, state *tournamentState, userID string) (scoring.PointsSummary, error) {
	activations, err := s.multiplierRepo.ListActiveByUser(ctx, userID)
	if err != nil {
		return scoring.PointsSummary{}, fmt.Errorf("list multiplier activations: %w", err)
	}

	teamPreds, err := s.teamPredRepo.ListByUser(ctx, userID)
	if err != nil {
		return scoring.PointsSummary{}, fmt.Errorf("list team predictions: %w", err)
	}
	matchPreds, err := s.matchPredRepo.ListByUser(ctx, userID)
	if err != nil {
		return scoring.PointsSummary{}, fmt.Errorf("list match predictions: %w", err)
	}

	summary := scoring.PointsSummary{
		UserID:       userID,
		CalculatedAt: s.now().UTC(),
	}

	for _, pred := range teamPreds {
		points, predErr := s.teamPredictionPoints(ctx, state, pred, activations)
		if predErr != nil {
			s.logger.WarnContext(ctx, "team prediction degraded to zero",
				"user_id", userID,
				"prediction_type", string(pred.Type),
				"group", pred.GroupName,
				"error", predErr,
			)
			points = 0
		}
		switch pred.Type {
		case prediction.TypeTP1:
			summary.TP1 += points
		case prediction.TypeTP2:
			summary.TP2 += points
		case prediction.TypeTP3:
			summary.TP3 += points
		}
	}

	for _, pred := range matchPreds {
		summary.Match += matchPredictionPoints(state, pred, activations)
	}

	summary.Total = summary.TP1 + summary.TP2 + summary.TP3 + summary.Match

	if err := s.scoringRepo.Upsert(ctx, summary); err != nil {
		return scoring.PointsSummary{}, fmt.Errorf("upsert points summary: %w", err)
	}
	if s.cache != nil {
		s.cache.DeletePrefix(ctx, "leaderboard:")
		s.cache.Delete(ctx, "points:"+userID)
	}
	return summary, nil
}

// RecalcReport summarizes one global recalculation run.
type RecalcReport struct {
	UserCount    int `json:"user_count"`
	SuccessCount int `json:"success_count"`
	FailedCount  int `json:"failed_count"`
	WorkerCount  int `json:"worker_count"`
}

// RecalculateAll reruns the per-user recalculation for every known user.
// One user failing does not stop the run: their summary stays stale and the
// failure is counted and logged. Already-written summaries are final.
func (s *ScoringService) RecalculateAll(ctx context.Context) (RecalcReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.RecalculateAll")
	defer span.End()

	userIDs, err := s.userRepo.ListIDs(ctx)
	if err != nil {
		return RecalcReport{}, fmt.Errorf("list user ids: %w", err)
	}

	workerCount := s.recalcWorkers
	if workerCount < 1 {
		workerCount = 1
	}
	if workerCount > len(userIDs) && len(userIDs) > 0 {
		workerCount = len(userIDs)
	}

	report := RecalcReport{
		UserCount:   len(userIDs),
		WorkerCount: workerCount,
	}
	if len(userIDs) == 0 {
		return report, nil
	}

	state, err := s.loadState(ctx)
	if err != nil {
		return RecalcReport{}, err
	}

	var successCount atomic.Int32
	var failedCount atomic.Int32

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return RecalcReport{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for _, userID := range userIDs {
		userID := userID
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			if _, runErr := s.recalculateUserWithState(ctx, state, userID); runErr != nil {
				failedCount.Add(1)
				s.logger.ErrorContext(ctx, "user recalculation failed",
					"user_id", userID,
					"error", runErr,
				)
				return
			}
			successCount.Add(1)
		}); err != nil {
			workers.Done()
			return RecalcReport{}, fmt.Errorf("submit recalculation to worker pool: %w", err)
		}
	}

	workers.Wait()

	report.SuccessCount = int(successCount.Load())
	report.FailedCount = int(failedCount.Load())
	s.logger.InfoContext(ctx, "global recalculation finished",
		"users", report.UserCount,
		"succeeded", report.SuccessCount,
		"failed", report.FailedCount,
	)
	return report, nil
}

// RecalculateAllInBackground starts a global recalculation detached from
// the caller's request. A panic inside the run is recovered and logged
// rather than taking the process down.
func (s *ScoringService) RecalculateAllInBackground() {
	var wg conc.WaitGroup
	wg.Go(func() {
		ctx, cancel := context.WithTimeout(context.Background(), backgroundRecalcTimeout)
		defer cancel()

		if _, err := s.RecalculateAll(ctx); err != nil {
			s.logger.Error("background recalculation failed", "error", err)
		}
	})
	go func() {
		if recovered := wg.WaitAndRecover(); recovered != nil {
			s.logger.Error("background recalculation panicked", "panic", recovered.String())
		}
	}()
}
