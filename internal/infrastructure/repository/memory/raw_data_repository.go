package memory

import (
	"context"
	"sync"

	"github.com/mlasky/diamondsync/internal/domain/rawdata"
)

type RawDataRepository struct {
	mu     sync.RWMutex
	items  []rawdata.Payload
	nextID int64
}

func NewRawDataRepository() *RawDataRepository {
	return &RawDataRepository{nextID: 1}
}

func (r *RawDataRepository) UpsertMany(_ context.Context, items []rawdata.Payload) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		updated := false
		for idx := range r.items {
			existing := r.items[idx]
			if existing.Source == item.Source &&
				existing.EntityType == item.EntityType &&
				existing.EntityKey == item.EntityKey {
				item.ID = existing.ID
				r.items[idx] = item
				updated = true
				break
			}
		}
		if !updated {
			item.ID = r.nextID
			r.nextID++
			r.items = append(r.items, item)
		}
	}
	return nil
}

// All returns a copy of the stored payloads, newest last.
func (r *RawDataRepository) All() []rawdata.Payload {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]rawdata.Payload(nil), r.items...)
}
