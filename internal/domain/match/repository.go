package match

import (
	"context"
	"time"
)

// Filter narrows List. Zero value selects everything, ordered by kickoff.
type Filter struct {
	Round         *Round
	UpcomingOnly  bool
	CompletedOnly bool
	From          *time.Time
	To            *time.Time
}

type Repository interface {
	List(ctx context.Context, filter Filter) ([]Match, error)
	GetByID(ctx context.Context, matchID int64) (Match, bool, error)

	// FirstKickoff returns the earliest kickoff across all matches.
	// ok is false when no matches exist.
	FirstKickoff(ctx context.Context) (time.Time, bool, error)

	// RecordResult stores the final score and marks the match completed.
	// Calling it again overwrites the previous result.
	RecordResult(ctx context.Context, matchID int64, team1Score, team2Score int) error
}
