package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/goalpool/prediction-league/internal/domain/prediction"
	qb "github.com/goalpool/prediction-league/internal/platform/querybuilder"
)

type TeamPredictionRepository struct {
	db *sqlx.DB
}

func NewTeamPredictionRepository(db *sqlx.DB) *TeamPredictionRepository {
	return &TeamPredictionRepository{db: db}
}

func (r *TeamPredictionRepository) ListByUser(ctx context.Context, userID string) ([]prediction.TeamPrediction, error) {
	query, args, err := qb.Select("*").
		From("team_predictions").
		Where(qb.Eq("user_id", userID), qb.IsNull("deleted_at")).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list team predictions query: %w", err)
	}
	return r.selectTeamPredictions(ctx, query, args)
}

func (r *TeamPredictionRepository) ListByUserAndType(ctx context.Context, userID string, predictionType prediction.Type) ([]prediction.TeamPrediction, error) {
	query, args, err := qb.Select("*").
		From("team_predictions").
		Where(
			qb.Eq("user_id", userID),
			qb.Eq("prediction_type", string(predictionType)),
			qb.IsNull("deleted_at"),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list team predictions query: %w", err)
	}
	return r.selectTeamPredictions(ctx, query, args)
}

func (r *TeamPredictionRepository) selectTeamPredictions(ctx context.Context, query string, args []any) ([]prediction.TeamPrediction, error) {
	var rows []teamPredictionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list team predictions: %w", err)
	}
	out := make([]prediction.TeamPrediction, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamPredictionFromRow(row))
	}
	return out, nil
}

func (r *TeamPredictionRepository) Upsert(ctx context.Context, p prediction.TeamPrediction) (prediction.TeamPrediction, error) {
	insertModel := teamPredictionInsertModel{
		UserID:         p.UserID,
		PredictionType: string(p.Type),
		GroupName:      p.GroupName,
		WinnerTeamID:   p.WinnerID,
		RunnerUpTeamID: p.RunnerUpID,
	}
	query, args, err := qb.InsertModel("team_predictions", insertModel, `ON CONFLICT (user_id, prediction_type, group_name) WHERE deleted_at IS NULL
DO UPDATE SET
    winner_team_id = EXCLUDED.winner_team_id,
    runner_up_team_id = EXCLUDED.runner_up_team_id,
    updated_at = NOW()
RETURNING *`)
	if err != nil {
		return prediction.TeamPrediction{}, fmt.Errorf("build upsert team prediction query: %w", err)
	}

	var row teamPredictionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return prediction.TeamPrediction{}, fmt.Errorf("upsert team prediction: %w", err)
	}
	return teamPredictionFromRow(row), nil
}

func teamPredictionFromRow(row teamPredictionTableModel) prediction.TeamPrediction {
	return prediction.TeamPrediction{
		ID:         row.ID,
		UserID:     row.UserID,
		Type:       prediction.Type(row.PredictionType),
		GroupName:  row.GroupName,
		WinnerID:   row.WinnerTeamID,
		RunnerUpID: row.RunnerUpTeamID,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}

type MatchPredictionRepository struct {
	db *sqlx.DB
}

func NewMatchPredictionRepository(db *sqlx.DB) *MatchPredictionRepository {
	return &MatchPredictionRepository{db: db}
}

func (r *MatchPredictionRepository) ListByUser(ctx context.Context, userID string) ([]prediction.MatchPrediction, error) {
	query, args, err := qb.Select("*").
		From("match_predictions").
		Where(qb.Eq("user_id", userID), qb.IsNull("deleted_at")).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list match predictions query: %w", err)
	}
	return r.selectMatchPredictions(ctx, query, args)
}

func (r *MatchPredictionRepository) ListByMatch(ctx context.Context, matchID int64) ([]prediction.MatchPrediction, error) {
	query, args, err := qb.Select("*").
		From("match_predictions").
		Where(qb.Eq("match_id", matchID), qb.IsNull("deleted_at")).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list match predictions query: %w", err)
	}
	return r.selectMatchPredictions(ctx, query, args)
}

func (r *MatchPredictionRepository) selectMatchPredictions(ctx context.Context, query string, args []any) ([]prediction.MatchPrediction, error) {
	var rows []matchPredictionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list match predictions: %w", err)
	}
	out := make([]prediction.MatchPrediction, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchPredictionFromRow(row))
	}
	return out, nil
}

func (r *MatchPredictionRepository) Get(ctx context.Context, userID string, matchID int64) (prediction.MatchPrediction, bool, error) {
	query, args, err := qb.Select("*").
		From("match_predictions").
		Where(
			qb.Eq("user_id", userID),
			qb.Eq("match_id", matchID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return prediction.MatchPrediction{}, false, fmt.Errorf("build get match prediction query: %w", err)
	}

	var row matchPredictionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return prediction.MatchPrediction{}, false, nil
		}
		return prediction.MatchPrediction{}, false, fmt.Errorf("get match prediction: %w", err)
	}
	return matchPredictionFromRow(row), true, nil
}

func (r *MatchPredictionRepository) Upsert(ctx context.Context, p prediction.MatchPrediction) (prediction.MatchPrediction, error) {
	insertModel := matchPredictionInsertModel{
		UserID:     p.UserID,
		MatchID:    p.MatchID,
		Team1Score: p.Team1Score,
		Team2Score: p.Team2Score,
	}
	query, args, err := qb.InsertModel("match_predictions", insertModel, `ON CONFLICT (user_id, match_id) WHERE deleted_at IS NULL
DO UPDATE SET
    team1_score = EXCLUDED.team1_score,
    team2_score = EXCLUDED.team2_score,
    updated_at = NOW()
RETURNING *`)
	if err != nil {
		return prediction.MatchPrediction{}, fmt.Errorf("build upsert match prediction query: %w", err)
	}

	var row matchPredictionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return prediction.MatchPrediction{}, fmt.Errorf("upsert match prediction: %w", err)
	}
	return matchPredictionFromRow(row), nil
}

func matchPredictionFromRow(row matchPredictionTableModel) prediction.MatchPrediction {
	return prediction.MatchPrediction{
		ID:         row.ID,
		UserID:     row.UserID,
		MatchID:    row.MatchID,
		Team1Score: row.Team1Score,
		Team2Score: row.Team2Score,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}
