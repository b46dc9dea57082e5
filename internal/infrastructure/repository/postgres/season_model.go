package postgres

import "time"

type seasonTableModel struct {
	ID               int64     `db:"id"`
	Year             string    `db:"year"`
	ExternalLeagueID string    `db:"external_league_id"`
	DisplayName      string    `db:"display_name"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}

type seasonInsertModel struct {
	Year             string `db:"year"`
	ExternalLeagueID string `db:"external_league_id"`
	DisplayName      string `db:"display_name"`
}
