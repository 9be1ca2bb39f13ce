package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/goalpool/prediction-league/internal/domain/team"
	"github.com/goalpool/prediction-league/internal/platform/cache"
)

// TeamService serves team reads. Teams never change after seeding, so the
// lists sit behind the shared cache indefinitely within its TTL.
type TeamService struct {
	teamRepo team.Repository
	cache    *cache.Store
}

func NewTeamService(teamRepo team.Repository, store *cache.Store) *TeamService {
	return &TeamService{teamRepo: teamRepo, cache: store}
}

func (s *TeamService) List(ctx context.Context, group string) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.List")
	defer span.End()

	group = strings.ToUpper(strings.TrimSpace(group))
	if s.cache == nil {
		return s.teamRepo.List(ctx, group)
	}

	value, err := s.cache.GetOrLoad(ctx, "teams:"+group, func(ctx context.Context) (any, error) {
		return s.teamRepo.List(ctx, group)
	})
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	teams, _ := value.([]team.Team)
	return teams, nil
}

func (s *TeamService) GetByID(ctx context.Context, teamID int64) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.GetByID")
	defer span.End()

	t, ok, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team: %w", err)
	}
	if !ok {
		return team.Team{}, fmt.Errorf("%w: team %d", ErrNotFound, teamID)
	}
	return t, nil
}
