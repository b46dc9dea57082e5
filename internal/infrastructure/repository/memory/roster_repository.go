package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/mlasky/diamondsync/internal/domain/roster"
)

type RosterRepository struct {
	mu     sync.RWMutex
	items  []roster.Entry
	nextID int64
}

func NewRosterRepository() *RosterRepository {
	return &RosterRepository{nextID: 1}
}

func (r *RosterRepository) Upsert(_ context.Context, item roster.Entry) (roster.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for idx := range r.items {
		existing := r.items[idx]
		if existing.SeasonID == item.SeasonID &&
			existing.TeamID == item.TeamID &&
			existing.PeriodNumber == item.PeriodNumber &&
			existing.PositionCode == item.PositionCode &&
			existing.RosterSlot == item.RosterSlot {
			item.ID = existing.ID
			if item.PlayerID == nil {
				item.PlayerID = existing.PlayerID
			}
			if item.BatSide == "" {
				item.BatSide = existing.BatSide
			}
			if item.ExternalPlayerID == "" {
				item.ExternalPlayerID = existing.ExternalPlayerID
			}
			if item.PitchingStaffID == nil {
				item.PitchingStaffID = existing.PitchingStaffID
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

func (r *RosterRepository) ListByTeamPeriod(_ context.Context, teamID int64, periodNumber string) ([]roster.Entry, error) {
	return r.list(func(item roster.Entry) bool {
		return item.TeamID == teamID && item.PeriodNumber == periodNumber
	})
}

func (r *RosterRepository) ListUnresolvedBySeason(_ context.Context, seasonID int64) ([]roster.Entry, error) {
	return r.list(func(item roster.Entry) bool {
		return item.SeasonID == seasonID && item.PlayerID == nil && !item.IsTeamPitching()
	})
}

func (r *RosterRepository) SetPlayerID(_ context.Context, entryID, playerID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for idx := range r.items {
		if r.items[idx].ID == entryID {
			id := playerID
			r.items[idx].PlayerID = &id
			return nil
		}
	}
	return fmt.Errorf("set roster player: entry %d not found", entryID)
}

func (r *RosterRepository) list(match func(roster.Entry) bool) ([]roster.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]roster.Entry, 0)
	for _, item := range r.items {
		if match(item) {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TeamID != out[j].TeamID {
			return out[i].TeamID < out[j].TeamID
		}
		if out[i].PositionCode != out[j].PositionCode {
			return out[i].PositionCode < out[j].PositionCode
		}
		return out[i].RosterSlot < out[j].RosterSlot
	})
	return out, nil
}
