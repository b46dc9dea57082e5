package postgres

import "time"

type standingTableModel struct {
	ID             int64     `db:"id"`
	SeasonID       int64     `db:"season_id"`
	TeamID         int64     `db:"team_id"`
	Rank           int       `db:"rank"`
	Wins           int       `db:"wins"`
	Losses         int       `db:"losses"`
	Ties           int       `db:"ties"`
	WinPercentage  float64   `db:"win_percentage"`
	DivisionRecord string    `db:"division_record"`
	GamesBack      string    `db:"games_back"`
	WaiverPosition int       `db:"waiver_position"`
	PointsFor      float64   `db:"points_for"`
	PointsAgainst  float64   `db:"points_against"`
	Streak         string    `db:"streak"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

type standingInsertModel struct {
	SeasonID       int64   `db:"season_id"`
	TeamID         int64   `db:"team_id"`
	Rank           int     `db:"rank"`
	Wins           int     `db:"wins"`
	Losses         int     `db:"losses"`
	Ties           int     `db:"ties"`
	WinPercentage  float64 `db:"win_percentage"`
	DivisionRecord string  `db:"division_record"`
	GamesBack      string  `db:"games_back"`
	WaiverPosition int     `db:"waiver_position"`
	PointsFor      float64 `db:"points_for"`
	PointsAgainst  float64 `db:"points_against"`
	Streak         string  `db:"streak"`
}
