package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/goalpool/prediction-league/internal/domain/user"
	qb "github.com/goalpool/prediction-league/internal/platform/querybuilder"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) ListIDs(ctx context.Context) ([]string, error) {
	query, args, err := qb.Select("id").
		From("users").
		Where(qb.IsNull("deleted_at")).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list user ids query: %w", err)
	}

	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("list user ids: %w", err)
	}
	return ids, nil
}

func (r *UserRepository) Ensure(ctx context.Context, p user.Principal) error {
	if p.ID == "" {
		return nil
	}
	insertModel := userInsertModel{
		ID:    p.ID,
		Name:  p.Name,
		Email: p.Email,
	}
	query, args, err := qb.InsertModel("users", insertModel, `ON CONFLICT (id)
DO UPDATE SET
    name = EXCLUDED.name,
    email = EXCLUDED.email,
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build ensure user query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("ensure user: %w", err)
	}
	return nil
}
