package standing

import "context"

type Repository interface {
	Upsert(ctx context.Context, item Standing) (Standing, error)
	ListBySeason(ctx context.Context, seasonID int64) ([]Standing, error)
}
