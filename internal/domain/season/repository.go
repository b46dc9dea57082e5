package season

import "context"

type Repository interface {
	Upsert(ctx context.Context, item Season) (Season, error)
	GetByExternalLeagueID(ctx context.Context, externalLeagueID string) (Season, bool, error)
	GetByID(ctx context.Context, id int64) (Season, bool, error)
	List(ctx context.Context) ([]Season, error)
}
