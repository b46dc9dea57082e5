package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/mlasky/diamondsync/internal/domain/player"
)

type PlayerRepository struct {
	mu     sync.RWMutex
	items  []player.Player
	nextID int64
}

func NewPlayerRepository() *PlayerRepository {
	return &PlayerRepository{nextID: 1}
}

func (r *PlayerRepository) Upsert(_ context.Context, item player.Player) (player.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for idx := range r.items {
		existing := r.items[idx]
		if existing.ExternalPlayerID == item.ExternalPlayerID {
			item.ID = existing.ID
			if item.MLBTeamAbbrev == "" {
				item.MLBTeamAbbrev = existing.MLBTeamAbbrev
			}
			if item.BatSide == "" {
				item.BatSide = existing.BatSide
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

func (r *PlayerRepository) GetByExternalID(_ context.Context, externalPlayerID string) (player.Player, bool, error) {
	return r.getOne(func(item player.Player) bool {
		return item.ExternalPlayerID == externalPlayerID
	})
}

func (r *PlayerRepository) GetByNormalizedName(_ context.Context, normalizedName string) (player.Player, bool, error) {
	return r.getOne(func(item player.Player) bool {
		return item.NormalizedName == normalizedName
	})
}

func (r *PlayerRepository) FindByNormalizedPrefix(_ context.Context, prefix string) (player.Player, bool, error) {
	return r.getOne(func(item player.Player) bool {
		return strings.HasPrefix(item.NormalizedName, prefix)
	})
}

func (r *PlayerRepository) getOne(match func(player.Player) bool) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.items {
		if match(item) {
			return item, true, nil
		}
	}
	return player.Player{}, false, nil
}
