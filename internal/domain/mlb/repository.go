package mlb

import "context"

type Repository interface {
	UpsertGame(ctx context.Context, item Game) (Game, error)
	UpsertBatterStat(ctx context.Context, item BatterGameStat) (BatterGameStat, error)
	ListGamesByDate(ctx context.Context, gameDate string) ([]Game, error)
}
