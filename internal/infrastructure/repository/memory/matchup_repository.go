package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mlasky/diamondsync/internal/domain/matchup"
)

type MatchupRepository struct {
	mu     sync.RWMutex
	items  []matchup.Matchup
	nextID int64
}

func NewMatchupRepository() *MatchupRepository {
	return &MatchupRepository{nextID: 1}
}

func (r *MatchupRepository) Upsert(_ context.Context, item matchup.Matchup) (matchup.Matchup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item.PeriodType = matchup.NormalizePeriodType(item.PeriodType)

	for idx := range r.items {
		existing := r.items[idx]
		if existing.SeasonID == item.SeasonID &&
			existing.PeriodNumber == item.PeriodNumber &&
			existing.AwayTeamID == item.AwayTeamID &&
			existing.HomeTeamID == item.HomeTeamID {
			item.ID = existing.ID
			if item.DateRange == "" {
				item.DateRange = existing.DateRange
			}
			if item.ExternalMatchupID == "" {
				item.ExternalMatchupID = existing.ExternalMatchupID
			}
			r.items[idx] = item
			return item, nil
		}
	}

	item.ID = r.nextID
	r.nextID++
	r.items = append(r.items, item)
	return item, nil
}

func (r *MatchupRepository) ListBySeasonPeriod(_ context.Context, seasonID int64, periodNumber string) ([]matchup.Matchup, error) {
	return r.list(func(item matchup.Matchup) bool {
		return item.SeasonID == seasonID && item.PeriodNumber == periodNumber
	})
}

func (r *MatchupRepository) ListBySeason(_ context.Context, seasonID int64) ([]matchup.Matchup, error) {
	return r.list(func(item matchup.Matchup) bool {
		return item.SeasonID == seasonID
	})
}

func (r *MatchupRepository) list(match func(matchup.Matchup) bool) ([]matchup.Matchup, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]matchup.Matchup, 0)
	for _, item := range r.items {
		if match(item) {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PeriodNumber != out[j].PeriodNumber {
			return out[i].PeriodNumber < out[j].PeriodNumber
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
