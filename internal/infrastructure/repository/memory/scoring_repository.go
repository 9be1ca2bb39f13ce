package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/goalpool/prediction-league/internal/domain/scoring"
)

type ScoringRepository struct {
	mu   sync.RWMutex
	rows map[string]scoring.PointsSummary
}

func NewScoringRepository() *ScoringRepository {
	return &ScoringRepository{rows: make(map[string]scoring.PointsSummary)}
}

func (r *ScoringRepository) Get(_ context.Context, userID string) (scoring.PointsSummary, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	row, ok := r.rows[userID]
	return row, ok, nil
}

func (r *ScoringRepository) List(_ context.Context) ([]scoring.PointsSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]scoring.PointsSummary, 0, len(r.rows))
	for _, row := range r.rows {
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (r *ScoringRepository) Upsert(_ context.Context, summary scoring.PointsSummary) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rows[summary.UserID] = summary
	return nil
}
