package manager

import "context"

type Repository interface {
	Upsert(ctx context.Context, item Manager) (Manager, error)
	GetByName(ctx context.Context, name string) (Manager, bool, error)
	List(ctx context.Context) ([]Manager, error)
}
