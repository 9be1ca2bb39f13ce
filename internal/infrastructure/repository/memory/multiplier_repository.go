package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/goalpool/prediction-league/internal/domain/multiplier"
)

type activationKey struct {
	userID string
	teamID int64
	kind   multiplier.Kind
}

type MultiplierRepository struct {
	mu     sync.RWMutex
	rows   map[activationKey]multiplier.Activation
	nextID int64
}

func NewMultiplierRepository() *MultiplierRepository {
	return &MultiplierRepository{
		rows:   make(map[activationKey]multiplier.Activation),
		nextID: 1,
	}
}

func (r *MultiplierRepository) ListActiveByUser(_ context.Context, userID string) ([]multiplier.Activation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]multiplier.Activation, 0)
	for _, row := range r.rows {
		if row.UserID == userID {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MultiplierRepository) Activate(_ context.Context, a multiplier.Activation) (multiplier.Activation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := activationKey{userID: a.UserID, teamID: a.TeamID, kind: a.Kind}
	if _, ok := r.rows[key]; ok {
		return multiplier.Activation{}, multiplier.ErrAlreadyActive
	}
	a.ID = r.nextID
	r.nextID++
	r.rows[key] = a
	return a, nil
}
