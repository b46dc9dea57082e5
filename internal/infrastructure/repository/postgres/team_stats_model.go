package postgres

type teamSeasonStatInsertModel struct {
	SeasonID       int64   `db:"season_id"`
	TeamID         int64   `db:"team_id"`
	GamesPlayed    int     `db:"games_played"`
	FantasyPoints  float64 `db:"fantasy_points"`
	HittingPoints  float64 `db:"hitting_points"`
	PitchingPoints float64 `db:"pitching_points"`
}

type teamSeasonStatTableModel struct {
	ID int64 `db:"id"`
	teamSeasonStatInsertModel
}

type teamHittingStatInsertModel struct {
	SeasonID       int64   `db:"season_id"`
	TeamID         int64   `db:"team_id"`
	AtBats         int     `db:"at_bats"`
	Hits           int     `db:"hits"`
	Runs           int     `db:"runs"`
	Singles        int     `db:"singles"`
	Doubles        int     `db:"doubles"`
	Triples        int     `db:"triples"`
	HomeRuns       int     `db:"home_runs"`
	RBI            int     `db:"rbi"`
	Walks          int     `db:"walks"`
	StolenBases    int     `db:"stolen_bases"`
	CaughtStealing int     `db:"caught_stealing"`
	BattingAverage float64 `db:"batting_average"`
}

type teamPitchingStatInsertModel struct {
	SeasonID           int64   `db:"season_id"`
	TeamID             int64   `db:"team_id"`
	Wins               int     `db:"wins"`
	InningsPitchedOuts int     `db:"innings_pitched_outs"`
	EarnedRuns         int     `db:"earned_runs"`
	HitsAllowed        int     `db:"hits_allowed"`
	WalksAllowed       int     `db:"walks_allowed"`
	Strikeouts         int     `db:"strikeouts"`
	ERA                float64 `db:"era"`
}
