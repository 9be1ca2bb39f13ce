// Package memory holds in-process repository implementations used by tests
// and by local runs without a database.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/goalpool/prediction-league/internal/domain/team"
)

type TeamRepository struct {
	mu    sync.RWMutex
	teams map[int64]team.Team
}

func NewTeamRepository(teams []team.Team) *TeamRepository {
	byID := make(map[int64]team.Team, len(teams))
	for _, item := range teams {
		byID[item.ID] = item
	}
	return &TeamRepository{teams: byID}
}

func (r *TeamRepository) List(_ context.Context, group string) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0, len(r.teams))
	for _, item := range r.teams {
		if group != "" && item.Group != group {
			continue
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *TeamRepository) GetByID(_ context.Context, teamID int64) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.teams[teamID]
	return item, ok, nil
}
