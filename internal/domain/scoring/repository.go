package scoring

import "context"

type Repository interface {
	Get(ctx context.Context, userID string) (PointsSummary, bool, error)
	List(ctx context.Context) ([]PointsSummary, error)
	Upsert(ctx context.Context, summary PointsSummary) error
}
