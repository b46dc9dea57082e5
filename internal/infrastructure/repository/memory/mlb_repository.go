package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mlasky/diamondsync/internal/domain/mlb"
)

type MLBRepository struct {
	mu      sync.RWMutex
	games   []mlb.Game
	batters []mlb.BatterGameStat
	nextID  int64
}

func NewMLBRepository() *MLBRepository {
	return &MLBRepository{nextID: 1}
}

func (r *MLBRepository) UpsertGame(_ context.Context, item mlb.Game) (mlb.Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for idx := range r.games {
		if r.games[idx].GamePk == item.GamePk {
			item.ID = r.games[idx].ID
			r.games[idx] = item
			return item, nil
		}
	}

	item.ID = r.nextID
	r.nextID++
	r.games = append(r.games, item)
	return item, nil
}

func (r *MLBRepository) UpsertBatterStat(_ context.Context, item mlb.BatterGameStat) (mlb.BatterGameStat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for idx := range r.batters {
		existing := r.batters[idx]
		if existing.GamePk == item.GamePk && existing.PlayerID == item.PlayerID && existing.TeamID == item.TeamID {
			item.ID = existing.ID
			r.batters[idx] = item
			return item, nil
		}
	}

	item.ID = r.nextID
	r.nextID++
	r.batters = append(r.batters, item)
	return item, nil
}

func (r *MLBRepository) ListGamesByDate(_ context.Context, gameDate string) ([]mlb.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]mlb.Game, 0)
	for _, item := range r.games {
		if item.GameDate == gameDate {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GamePk < out[j].GamePk })
	return out, nil
}
