package postgres

import "time"

type playerTableModel struct {
	ID               int64     `db:"id"`
	ExternalPlayerID string    `db:"external_player_id"`
	FullName         string    `db:"full_name"`
	NormalizedName   string    `db:"normalized_name"`
	MLBTeamAbbrev    string    `db:"mlb_team_abbrev"`
	BatSide          string    `db:"bat_side"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}

type playerInsertModel struct {
	ExternalPlayerID string `db:"external_player_id"`
	FullName         string `db:"full_name"`
	NormalizedName   string `db:"normalized_name"`
	MLBTeamAbbrev    string `db:"mlb_team_abbrev"`
	BatSide          string `db:"bat_side"`
}
