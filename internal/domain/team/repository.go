package team

import "context"

// Repository describes team reads needed by use cases. The group filter is
// the single-letter group label; empty means all teams.
type Repository interface {
	List(ctx context.Context, group string) ([]Team, error)
	GetByID(ctx context.Context, teamID int64) (Team, bool, error)
}
