package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mlasky/diamondsync/internal/domain/standing"
)

type StandingRepository struct {
	mu     sync.RWMutex
	items  []standing.Standing
	nextID int64
}

func NewStandingRepository() *StandingRepository {
	return &StandingRepository{nextID: 1}
}

func (r *StandingRepository) Upsert(_ context.Context, item standing.Standing) (standing.Standing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for idx := range r.items {
		if r.items[idx].SeasonID == item.SeasonID && r.items[idx].TeamID == item.TeamID {
			item.ID = r.items[idx].ID
			r.items[idx] = item
			return item, nil
		}
	}

	item.ID = r.nextID
	r.nextID++
	r.items = append(r.items, item)
	return item, nil
}

func (r *StandingRepository) ListBySeason(_ context.Context, seasonID int64) ([]standing.Standing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]standing.Standing, 0)
	for _, item := range r.items {
		if item.SeasonID == seasonID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Rank < out[j].Rank })
	return out, nil
}
