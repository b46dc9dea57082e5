package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mlasky/diamondsync/internal/domain/manager"
)

type ManagerRepository struct {
	mu     sync.RWMutex
	items  []manager.Manager
	nextID int64
}

func NewManagerRepository() *ManagerRepository {
	return &ManagerRepository{nextID: 1}
}

func (r *ManagerRepository) Upsert(_ context.Context, item manager.Manager) (manager.Manager, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for idx := range r.items {
		if r.items[idx].Name == item.Name {
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

func (r *ManagerRepository) GetByName(_ context.Context, name string) (manager.Manager, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.items {
		if item.Name == name {
			return item, true, nil
		}
	}
	return manager.Manager{}, false, nil
}

func (r *ManagerRepository) List(_ context.Context) ([]manager.Manager, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := append([]manager.Manager(nil), r.items...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
