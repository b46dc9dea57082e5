package postgres

import "time"

type playerDayInsertModel struct {
	StatDate           string  `db:"stat_date"`
	ExternalPlayerID   string  `db:"external_player_id"`
	MLBTeamAbbrev      string  `db:"mlb_team_abbrev"`
	FantasyTeamID      int64   `db:"fantasy_team_id"`
	SeasonID           int64   `db:"season_id"`
	PeriodNumber       string  `db:"period_number"`
	PositionPlayed     string  `db:"position_played"`
	IsActive           bool    `db:"is_active"`
	AtBats             int     `db:"at_bats"`
	Hits               int     `db:"hits"`
	Runs               int     `db:"runs"`
	Singles            int     `db:"singles"`
	Doubles            int     `db:"doubles"`
	Triples            int     `db:"triples"`
	HomeRuns           int     `db:"home_runs"`
	RBI                int     `db:"rbi"`
	Walks              int     `db:"walks"`
	StolenBases        int     `db:"stolen_bases"`
	CaughtStealing     int     `db:"caught_stealing"`
	Wins               int     `db:"wins"`
	InningsPitchedOuts int     `db:"innings_pitched_outs"`
	EarnedRuns         int     `db:"earned_runs"`
	HitsAllowed        int     `db:"hits_allowed"`
	WalksAllowed       int     `db:"walks_allowed"`
	HitsPlusWalks      int     `db:"hits_plus_walks"`
	Strikeouts         int     `db:"strikeouts"`
	FantasyPoints      float64 `db:"fantasy_points"`
}

type playerDayTableModel struct {
	ID int64 `db:"id"`
	playerDayInsertModel
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type teamDayInsertModel struct {
	StatDate           string  `db:"stat_date"`
	FantasyTeamID      int64   `db:"fantasy_team_id"`
	SeasonID           int64   `db:"season_id"`
	PeriodNumber       string  `db:"period_number"`
	AtBats             int     `db:"at_bats"`
	Hits               int     `db:"hits"`
	Runs               int     `db:"runs"`
	Singles            int     `db:"singles"`
	Doubles            int     `db:"doubles"`
	Triples            int     `db:"triples"`
	HomeRuns           int     `db:"home_runs"`
	RBI                int     `db:"rbi"`
	Walks              int     `db:"walks"`
	StolenBases        int     `db:"stolen_bases"`
	CaughtStealing     int     `db:"caught_stealing"`
	Wins               int     `db:"wins"`
	InningsPitchedOuts int     `db:"innings_pitched_outs"`
	EarnedRuns         int     `db:"earned_runs"`
	HitsAllowed        int     `db:"hits_allowed"`
	WalksAllowed       int     `db:"walks_allowed"`
	HitsPlusWalks      int     `db:"hits_plus_walks"`
	Strikeouts         int     `db:"strikeouts"`
	HittingPoints      float64 `db:"hitting_points"`
	PitchingPoints     float64 `db:"pitching_points"`
	TotalPoints        float64 `db:"total_points"`
}

type teamDayTableModel struct {
	ID int64 `db:"id"`
	teamDayInsertModel
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type matchupDayInsertModel struct {
	StatDate          string  `db:"stat_date"`
	SeasonID          int64   `db:"season_id"`
	PeriodNumber      string  `db:"period_number"`
	ExternalMatchupID string  `db:"external_matchup_id"`
	AwayTeamID        int64   `db:"away_team_id"`
	HomeTeamID        int64   `db:"home_team_id"`
	AwayPoints        float64 `db:"away_points"`
	HomePoints        float64 `db:"home_points"`
}

type matchupDayTableModel struct {
	ID int64 `db:"id"`
	matchupDayInsertModel
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
