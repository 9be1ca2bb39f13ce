package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/goalpool/prediction-league/internal/domain/prediction"
)

type teamPredKey struct {
	userID string
	kind   prediction.Type
	group  string
}

type TeamPredictionRepository struct {
	mu     sync.RWMutex
	rows   map[teamPredKey]prediction.TeamPrediction
	nextID int64
	now    func() time.Time
}

func NewTeamPredictionRepository() *TeamPredictionRepository {
	return &TeamPredictionRepository{
		rows:   make(map[teamPredKey]prediction.TeamPrediction),
		nextID: 1,
		now:    time.Now,
	}
}

func (r *TeamPredictionRepository) ListByUser(_ context.Context, userID string) ([]prediction.TeamPrediction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]prediction.TeamPrediction, 0)
	for _, row := range r.rows {
		if row.UserID == userID {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *TeamPredictionRepository) ListByUserAndType(_ context.Context, userID string, predictionType prediction.Type) ([]prediction.TeamPrediction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]prediction.TeamPrediction, 0)
	for _, row := range r.rows {
		if row.UserID == userID && row.Type == predictionType {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *TeamPredictionRepository) Upsert(_ context.Context, p prediction.TeamPrediction) (prediction.TeamPrediction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := teamPredKey{userID: p.UserID, kind: p.Type, group: p.GroupName}
	now := r.now().UTC()
	if existing, ok := r.rows[key]; ok {
		p.ID = existing.ID
		p.CreatedAt = existing.CreatedAt
	} else {
		p.ID = r.nextID
		r.nextID++
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	r.rows[key] = p
	return p, nil
}

type matchPredKey struct {
	userID  string
	matchID int64
}

type MatchPredictionRepository struct {
	mu     sync.RWMutex
	rows   map[matchPredKey]prediction.MatchPrediction
	nextID int64
	now    func() time.Time
}

func NewMatchPredictionRepository() *MatchPredictionRepository {
	return &MatchPredictionRepository{
		rows:   make(map[matchPredKey]prediction.MatchPrediction),
		nextID: 1,
		now:    time.Now,
	}
}

func (r *MatchPredictionRepository) ListByUser(_ context.Context, userID string) ([]prediction.MatchPrediction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]prediction.MatchPrediction, 0)
	for _, row := range r.rows {
		if row.UserID == userID {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MatchPredictionRepository) ListByMatch(_ context.Context, matchID int64) ([]prediction.MatchPrediction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]prediction.MatchPrediction, 0)
	for _, row := range r.rows {
		if row.MatchID == matchID {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MatchPredictionRepository) Get(_ context.Context, userID string, matchID int64) (prediction.MatchPrediction, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	row, ok := r.rows[matchPredKey{userID: userID, matchID: matchID}]
	return row, ok, nil
}

func (r *MatchPredictionRepository) Upsert(_ context.Context, p prediction.MatchPrediction) (prediction.MatchPrediction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := matchPredKey{userID: p.UserID, matchID: p.MatchID}
	now := r.now().UTC()
	if existing, ok := r.rows[key]; ok {
		p.ID = existing.ID
		p.CreatedAt = existing.CreatedAt
	} else {
		p.ID = r.nextID
		r.nextID++
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	r.rows[key] = p
	return p, nil
}
