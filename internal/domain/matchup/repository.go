package matchup

import "context"

type Repository interface {
	// Upsert merges by (SeasonID, PeriodNumber, AwayTeamID, HomeTeamID).
	// DateRange and ExternalMatchupID keep the stored value when the
	// incoming one is empty.
	Upsert(ctx context.Context, item Matchup) (Matchup, error)
	ListBySeasonPeriod(ctx context.Context, seasonID int64, periodNumber string) ([]Matchup, error)
	ListBySeason(ctx context.Context, seasonID int64) ([]Matchup, error)
}
