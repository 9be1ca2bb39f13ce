package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/goalpool/prediction-league/internal/domain/scoring"
	qb "github.com/goalpool/prediction-league/internal/platform/querybuilder"
)

type ScoringRepository struct {
	db *sqlx.DB
}

func NewScoringRepository(db *sqlx.DB) *ScoringRepository {
	return &ScoringRepository{db: db}
}

func (r *ScoringRepository) Get(ctx context.Context, userID string) (scoring.PointsSummary, bool, error) {
	query, args, err := qb.Select("*").
		From("user_points").
		Where(qb.Eq("user_id", userID), qb.IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		return scoring.PointsSummary{}, false, fmt.Errorf("build get points query: %w", err)
	}

	var row userPointsTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return scoring.PointsSummary{}, false, nil
		}
		return scoring.PointsSummary{}, false, fmt.Errorf("get points summary: %w", err)
	}
	return summaryFromRow(row), true, nil
}

func (r *ScoringRepository) List(ctx context.Context) ([]scoring.PointsSummary, error) {
	query, args, err := qb.Select("*").
		From("user_points").
		Where(qb.IsNull("deleted_at")).
		OrderBy("total_points DESC", "user_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list points query: %w", err)
	}

	var rows []userPointsTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list points summaries: %w", err)
	}

	out := make([]scoring.PointsSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, summaryFromRow(row))
	}
	return out, nil
}

// Upsert replaces all five point fields in one statement so a summary can
// never end up as a mix of two recalculations.
func (r *ScoringRepository) Upsert(ctx context.Context, summary scoring.PointsSummary) error {
	insertModel := userPointsInsertModel{
		UserID:       summary.UserID,
		TotalPoints:  summary.Total,
		TP1Points:    summary.TP1,
		TP2Points:    summary.TP2,
		TP3Points:    summary.TP3,
		MatchPoints:  summary.Match,
		CalculatedAt: summary.CalculatedAt,
	}
	query, args, err := qb.InsertModel("user_points", insertModel, `ON CONFLICT (user_id) WHERE deleted_at IS NULL
DO UPDATE SET
    total_points = EXCLUDED.total_points,
    tp1_points = EXCLUDED.tp1_points,
    tp2_points = EXCLUDED.tp2_points,
    tp3_points = EXCLUDED.tp3_points,
    match_points = EXCLUDED.match_points,
    calculated_at = EXCLUDED.calculated_at,
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert points query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert points summary: %w", err)
	}
	return nil
}

func summaryFromRow(row userPointsTableModel) scoring.PointsSummary {
	return scoring.PointsSummary{
		UserID:       row.UserID,
		Total:        row.TotalPoints,
		TP1:          row.TP1Points,
		TP2:          row.TP2Points,
		TP3:          row.TP3Points,
		Match:        row.MatchPoints,
		CalculatedAt: row.CalculatedAt,
	}
}
