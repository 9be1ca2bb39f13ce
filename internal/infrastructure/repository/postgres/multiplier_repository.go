package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/goalpool/prediction-league/internal/domain/multiplier"
	qb "github.com/goalpool/prediction-league/internal/platform/querybuilder"
)

type MultiplierRepository struct {
	db *sqlx.DB
}

func NewMultiplierRepository(db *sqlx.DB) *MultiplierRepository {
	return &MultiplierRepository{db: db}
}

func (r *MultiplierRepository) ListActiveByUser(ctx context.Context, userID string) ([]multiplier.Activation, error) {
	query, args, err := qb.Select("*").
		From("multiplier_activations").
		Where(qb.Eq("user_id", userID), qb.IsNull("deleted_at")).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list activations query: %w", err)
	}

	var rows []multiplierActivationTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list activations: %w", err)
	}

	out := make([]multiplier.Activation, 0, len(rows))
	for _, row := range rows {
		out = append(out, activationFromRow(row))
	}
	return out, nil
}

func (r *MultiplierRepository) Activate(ctx context.Context, a multiplier.Activation) (multiplier.Activation, error) {
	insertModel := multiplierActivationInsertModel{
		UserID:      a.UserID,
		TeamID:      a.TeamID,
		Kind:        string(a.Kind),
		ActivatedAt: a.ActivatedAt,
	}
	// Plain insert: a duplicate key is a conflict, not an update.
	query, args, err := qb.InsertModel("multiplier_activations", insertModel, "RETURNING *")
	if err != nil {
		return multiplier.Activation{}, fmt.Errorf("build activate query: %w", err)
	}

	var row multiplierActivationTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isUniqueViolation(err) {
			return multiplier.Activation{}, multiplier.ErrAlreadyActive
		}
		return multiplier.Activation{}, fmt.Errorf("activate multiplier: %w", err)
	}
	return activationFromRow(row), nil
}

func activationFromRow(row multiplierActivationTableModel) multiplier.Activation {
	return multiplier.Activation{
		ID:          row.ID,
		UserID:      row.UserID,
		TeamID:      row.TeamID,
		Kind:        multiplier.Kind(row.Kind),
		ActivatedAt: row.ActivatedAt,
	}
}
