package postgres

import "time"

type mlbGameInsertModel struct {
	GamePk    int64  `db:"game_pk"`
	GameDate  string `db:"game_date"`
	HomeTeam  string `db:"home_team"`
	AwayTeam  string `db:"away_team"`
	HomeScore int    `db:"home_score"`
	AwayScore int    `db:"away_score"`
	Status    string `db:"status"`
}

type mlbGameTableModel struct {
	ID int64 `db:"id"`
	mlbGameInsertModel
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type batterGameStatInsertModel struct {
	GamePk         int64  `db:"game_pk"`
	PlayerID       int64  `db:"player_id"`
	TeamID         int64  `db:"team_id"`
	PlayerName     string `db:"player_name"`
	AtBats         int    `db:"at_bats"`
	Hits           int    `db:"hits"`
	Runs           int    `db:"runs"`
	Doubles        int    `db:"doubles"`
	Triples        int    `db:"triples"`
	HomeRuns       int    `db:"home_runs"`
	RBI            int    `db:"rbi"`
	Walks          int    `db:"walks"`
	StolenBases    int    `db:"stolen_bases"`
	CaughtStealing int    `db:"caught_stealing"`
}
