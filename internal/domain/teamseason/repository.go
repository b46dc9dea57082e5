package teamseason

import "context"

type Repository interface {
	UpsertSeasonStat(ctx context.Context, item SeasonStat) (SeasonStat, error)
	UpsertHittingStat(ctx context.Context, item HittingStat) (HittingStat, error)
	UpsertPitchingStat(ctx context.Context, item PitchingStat) (PitchingStat, error)
	ListSeasonStats(ctx context.Context, seasonID int64) ([]SeasonStat, error)
}
