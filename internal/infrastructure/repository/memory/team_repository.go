package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/mlasky/diamondsync/internal/domain/team"
)

type TeamRepository struct {
	mu     sync.RWMutex
	items  []team.Team
	nextID int64
}

func NewTeamRepository() *TeamRepository {
	return &TeamRepository{nextID: 1}
}

func (r *TeamRepository) Upsert(_ context.Context, item team.Team) (team.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for idx := range r.items {
		existing := r.items[idx]
		if existing.SeasonID == item.SeasonID && existing.ExternalTeamID == item.ExternalTeamID {
			item.ID = existing.ID
			if item.IconURL == "" {
				item.IconURL = existing.IconURL
			}
			item.ManagerID = existing.ManagerID
			r.items[idx] = item
			return item, nil
		}
	}

	item.ID = r.nextID
	r.nextID++
	item.ManagerID = nil
	r.items = append(r.items, item)
	return item, nil
}

func (r *TeamRepository) GetByExternalID(_ context.Context, seasonID int64, externalTeamID string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.items {
		if item.SeasonID == seasonID && item.ExternalTeamID == externalTeamID {
			return item, true, nil
		}
	}
	return team.Team{}, false, nil
}

func (r *TeamRepository) GetByID(_ context.Context, id int64) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.items {
		if item.ID == id {
			return item, true, nil
		}
	}
	return team.Team{}, false, nil
}

func (r *TeamRepository) ListBySeason(_ context.Context, seasonID int64) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0)
	for _, item := range r.items {
		if item.SeasonID == seasonID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *TeamRepository) AssignManager(_ context.Context, teamID, managerID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for idx := range r.items {
		if r.items[idx].ID == teamID {
			id := managerID
			r.items[idx].ManagerID = &id
			return nil
		}
	}
	return fmt.Errorf("assign manager: team %d not found", teamID)
}
