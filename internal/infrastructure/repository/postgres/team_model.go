package postgres

import (
	"database/sql"
	"time"
)

type teamTableModel struct {
	ID             int64         `db:"id"`
	SeasonID       int64         `db:"season_id"`
	ExternalTeamID string        `db:"external_team_id"`
	Name           string        `db:"name"`
	IconURL        string        `db:"icon_url"`
	ManagerID      sql.NullInt64 `db:"manager_id"`
	CreatedAt      time.Time     `db:"created_at"`
	UpdatedAt      time.Time     `db:"updated_at"`
}

type teamInsertModel struct {
	SeasonID       int64  `db:"season_id"`
	ExternalTeamID string `db:"external_team_id"`
	Name           string `db:"name"`
	IconURL        string `db:"icon_url"`
}
