package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/goalpool/prediction-league/internal/domain/user"
)

// UserRepository tracks users observed by the engine. Accounts live in an
// external identity provider; this only needs the id population for global
// recalculation.
type UserRepository struct {
	mu  sync.RWMutex
	ids map[string]struct{}
}

func NewUserRepository(ids ...string) *UserRepository {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return &UserRepository{ids: set}
}

func (r *UserRepository) ListIDs(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.ids))
	for id := range r.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out, nil
}

func (r *UserRepository) Ensure(_ context.Context, p user.Principal) error {
	if p.ID == "" {
		return nil
	}
	r.mu.Lock()
	r.ids[p.ID] = struct{}{}
	r.mu.Unlock()
	return nil
}
