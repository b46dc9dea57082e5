package postgres

import (
	"database/sql"
	"time"
)

type rosterEntryTableModel struct {
	ID                   int64         `db:"id"`
	SeasonID             int64         `db:"season_id"`
	TeamID               int64         `db:"team_id"`
	PeriodNumber         string        `db:"period_number"`
	PlayerID             sql.NullInt64 `db:"player_id"`
	PositionCode         string        `db:"position_code"`
	RosterSlot           int           `db:"roster_slot"`
	IsActive             bool          `db:"is_active"`
	PlayerNameRaw        string        `db:"player_name_raw"`
	PlayerNameNormalized string        `db:"player_name_normalized"`
	MLBTeamAbbrev        string        `db:"mlb_team_abbrev"`
	BatSide              string        `db:"bat_side"`
	ExternalPlayerID     string        `db:"external_player_id"`
	PitchingStaffID      sql.NullInt64 `db:"pitching_staff_id"`
	CreatedAt            time.Time     `db:"created_at"`
	UpdatedAt            time.Time     `db:"updated_at"`
}

type rosterEntryInsertModel struct {
	SeasonID             int64  `db:"season_id"`
	TeamID               int64  `db:"team_id"`
	PeriodNumber         string `db:"period_number"`
	PlayerID             *int64 `db:"player_id"`
	PositionCode         string `db:"position_code"`
	RosterSlot           int    `db:"roster_slot"`
	IsActive             bool   `db:"is_active"`
	PlayerNameRaw        string `db:"player_name_raw"`
	PlayerNameNormalized string `db:"player_name_normalized"`
	MLBTeamAbbrev        string `db:"mlb_team_abbrev"`
	BatSide              string `db:"bat_side"`
	ExternalPlayerID     string `db:"external_player_id"`
	PitchingStaffID      *int64 `db:"pitching_staff_id"`
}
