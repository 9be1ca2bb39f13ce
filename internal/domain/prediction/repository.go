package prediction

import "context"

// TeamRepository persists team predictions. Upsert is keyed on
// (user, type, group): resubmitting before the deadline replaces the pick.
type TeamRepository interface {
	ListByUser(ctx context.Context, userID string) ([]TeamPrediction, error)
	ListByUserAndType(ctx context.Context, userID string, predictionType Type) ([]TeamPrediction, error)
	Upsert(ctx context.Context, p TeamPrediction) (TeamPrediction, error)
}

// MatchRepository persists exact-score predictions, keyed on (user, match).
type MatchRepository interface {
	ListByUser(ctx context.Context, userID string) ([]MatchPrediction, error)
	ListByMatch(ctx context.Context, matchID int64) ([]MatchPrediction, error)
	Get(ctx context.Context, userID string, matchID int64) (MatchPrediction, bool, error)
	Upsert(ctx context.Context, p MatchPrediction) (MatchPrediction, error)
}
