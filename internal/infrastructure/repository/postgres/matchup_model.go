package postgres

import "time"

type matchupTableModel struct {
	ID                int64     `db:"id"`
	SeasonID          int64     `db:"season_id"`
	PeriodNumber      string    `db:"period_number"`
	PeriodType        string    `db:"period_type"`
	DateRange         string    `db:"date_range"`
	AwayTeamID        int64     `db:"away_team_id"`
	HomeTeamID        int64     `db:"home_team_id"`
	ExternalMatchupID string    `db:"external_matchup_id"`
	CreatedAt         time.Time `db:"created_at"`
	UpdatedAt         time.Time `db:"updated_at"`
}

type matchupInsertModel struct {
	SeasonID          int64  `db:"season_id"`
	PeriodNumber      string `db:"period_number"`
	PeriodType        string `db:"period_type"`
	DateRange         string `db:"date_range"`
	AwayTeamID        int64  `db:"away_team_id"`
	HomeTeamID        int64  `db:"home_team_id"`
	ExternalMatchupID string `db:"external_matchup_id"`
}
