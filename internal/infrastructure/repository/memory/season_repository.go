package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mlasky/diamondsync/internal/domain/season"
)

type SeasonRepository struct {
	mu     sync.RWMutex
	items  []season.Season
	nextID int64
}

func NewSeasonRepository() *SeasonRepository {
	return &SeasonRepository{nextID: 1}
}

func (r *SeasonRepository) Upsert(_ context.Context, item season.Season) (season.Season, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for idx := range r.items {
		if r.items[idx].ExternalLeagueID == item.ExternalLeagueID {
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

func (r *SeasonRepository) GetByExternalLeagueID(_ context.Context, externalLeagueID string) (season.Season, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.items {
		if item.ExternalLeagueID == externalLeagueID {
			return item, true, nil
		}
	}
	return season.Season{}, false, nil
}

func (r *SeasonRepository) GetByID(_ context.Context, id int64) (season.Season, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.items {
		if item.ID == id {
			return item, true, nil
		}
	}
	return season.Season{}, false, nil
}

func (r *SeasonRepository) List(_ context.Context) ([]season.Season, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := append([]season.Season(nil), r.items...)
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out, nil
}
