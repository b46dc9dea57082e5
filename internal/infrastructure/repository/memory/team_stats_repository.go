package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mlasky/diamondsync/internal/domain/teamseason"
)

type TeamStatsRepository struct {
	mu            sync.RWMutex
	seasonStats   []teamseason.SeasonStat
	hittingStats  []teamseason.HittingStat
	pitchingStats []teamseason.PitchingStat
	nextID        int64
}

func NewTeamStatsRepository() *TeamStatsRepository {
	return &TeamStatsRepository{nextID: 1}
}

func (r *TeamStatsRepository) UpsertSeasonStat(_ context.Context, item teamseason.SeasonStat) (teamseason.SeasonStat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for idx := range r.seasonStats {
		if r.seasonStats[idx].SeasonID == item.SeasonID && r.seasonStats[idx].TeamID == item.TeamID {
			item.ID = r.seasonStats[idx].ID
			r.seasonStats[idx] = item
			return item, nil
		}
	}

	item.ID = r.nextID
	r.nextID++
	r.seasonStats = append(r.seasonStats, item)
	return item, nil
}

func (r *TeamStatsRepository) UpsertHittingStat(_ context.Context, item teamseason.HittingStat) (teamseason.HittingStat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for idx := range r.hittingStats {
		if r.hittingStats[idx].SeasonID == item.SeasonID && r.hittingStats[idx].TeamID == item.TeamID {
			item.ID = r.hittingStats[idx].ID
			r.hittingStats[idx] = item
			return item, nil
		}
	}

	item.ID = r.nextID
	r.nextID++
	r.hittingStats = append(r.hittingStats, item)
	return item, nil
}

func (r *TeamStatsRepository) UpsertPitchingStat(_ context.Context, item teamseason.PitchingStat) (teamseason.PitchingStat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for idx := range r.pitchingStats {
		if r.pitchingStats[idx].SeasonID == item.SeasonID && r.pitchingStats[idx].TeamID == item.TeamID {
			item.ID = r.pitchingStats[idx].ID
			r.pitchingStats[idx] = item
			return item, nil
		}
	}

	item.ID = r.nextID
	r.nextID++
	r.pitchingStats = append(r.pitchingStats, item)
	return item, nil
}

func (r *TeamStatsRepository) ListSeasonStats(_ context.Context, seasonID int64) ([]teamseason.SeasonStat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]teamseason.SeasonStat, 0)
	for _, item := range r.seasonStats {
		if item.SeasonID == seasonID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FantasyPoints > out[j].FantasyPoints })
	return out, nil
}
