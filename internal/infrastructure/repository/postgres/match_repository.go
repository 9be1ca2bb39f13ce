package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/goalpool/prediction-league/internal/domain/match"
	qb "github.com/goalpool/prediction-league/internal/platform/querybuilder"
)

type MatchRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db, now: time.Now}
}

func (r *MatchRepository) List(ctx context.Context, filter match.Filter) ([]match.Match, error) {
	builder := qb.Select("*").
		From("matches").
		Where(qb.IsNull("deleted_at")).
		OrderBy("kickoff_at", "id")
	if filter.Round != nil {
		builder = builder.Where(qb.Eq("round", string(*filter.Round)))
	}
	if filter.UpcomingOnly {
		builder = builder.Where(
			qb.Eq("completed", false),
			qb.Expr("kickoff_at >= ?", r.now().UTC()),
		)
	}
	if filter.CompletedOnly {
		builder = builder.Where(qb.Eq("completed", true))
	}
	if filter.From != nil {
		builder = builder.Where(qb.Expr("kickoff_at >= ?", *filter.From))
	}
	if filter.To != nil {
		builder = builder.Where(qb.Expr("kickoff_at <= ?", *filter.To))
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list matches query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchFromRow(row))
	}
	return out, nil
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID int64) (match.Match, bool, error) {
	query, args, err := qb.Select("*").
		From("matches").
		Where(qb.Eq("id", matchID), qb.IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build get match query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("get match: %w", err)
	}
	return matchFromRow(row), true, nil
}

func (r *MatchRepository) FirstKickoff(ctx context.Context) (time.Time, bool, error) {
	query, args, err := qb.Select("kickoff_at").
		From("matches").
		Where(qb.IsNull("deleted_at")).
		OrderBy("kickoff_at").
		Limit(1).
		ToSQL()
	if err != nil {
		return time.Time{}, false, fmt.Errorf("build first kickoff query: %w", err)
	}

	var kickoff time.Time
	if err := r.db.GetContext(ctx, &kickoff, query, args...); err != nil {
		if isNotFound(err) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, fmt.Errorf("get first kickoff: %w", err)
	}
	return kickoff, true, nil
}

func (r *MatchRepository) RecordResult(ctx context.Context, matchID int64, team1Score, team2Score int) error {
	query, args, err := qb.Update("matches").
		Set("team1_score", team1Score).
		Set("team2_score", team2Score).
		Set("completed", true).
		Set("updated_at", r.now().UTC()).
		Where(qb.Eq("id", matchID), qb.IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build record result query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("record result: %w", err)
	}
	return nil
}

func matchFromRow(row matchTableModel) match.Match {
	return match.Match{
		ID:         row.ID,
		Team1ID:    row.Team1ID,
		Team2ID:    row.Team2ID,
		Round:      match.Round(row.Round),
		KickoffAt:  row.KickoffAt,
		Team1Score: row.Team1Score,
		Team2Score: row.Team2Score,
		Completed:  row.Completed,
	}
}
