package dailystat

import "context"

type Repository interface {
	UpsertPlayerDay(ctx context.Context, item PlayerDay) (PlayerDay, error)
	ListPlayerDays(ctx context.Context, statDate string, fantasyTeamID int64) ([]PlayerDay, error)
	// SumTeamDay aggregates the active PlayerDay rows for one team and
	// date: team-pitching rows feed the pitching bucket, everything else
	// the hitting bucket. Returns found=false when no active rows exist.
	SumTeamDay(ctx context.Context, statDate string, fantasyTeamID int64) (TeamDay, bool, error)
	// ListTeamIDsForDay returns the distinct fantasy teams having any
	// PlayerDay row (active or not) on the date.
	ListTeamIDsForDay(ctx context.Context, statDate string, seasonID int64) ([]int64, error)
	// PeriodForDay reads the period number from any PlayerDay row of the
	// date; found=false when the date has no rows.
	PeriodForDay(ctx context.Context, statDate string, seasonID int64) (string, bool, error)

	UpsertTeamDay(ctx context.Context, item TeamDay) (TeamDay, error)
	GetTeamDay(ctx context.Context, statDate string, fantasyTeamID int64) (TeamDay, bool, error)
	ListTeamDays(ctx context.Context, statDate string, seasonID int64) ([]TeamDay, error)

	UpsertMatchupDay(ctx context.Context, item MatchupDay) (MatchupDay, error)
	ListMatchupDaysBySeason(ctx context.Context, seasonID int64) ([]MatchupDay, error)

	// DeleteDay removes all PlayerDay, TeamDay and MatchupDay rows for
	// the date and season, returning the number of rows deleted.
	DeleteDay(ctx context.Context, statDate string, seasonID int64) (int64, error)
}
