package postgres

import (
	"database/sql"
	"time"
)

type managerTableModel struct {
	ID              int64         `db:"id"`
	Name            string        `db:"name"`
	ActiveFromYear  int           `db:"active_from_year"`
	ActiveUntilYear sql.NullInt64 `db:"active_until_year"`
	CreatedAt       time.Time     `db:"created_at"`
	UpdatedAt       time.Time     `db:"updated_at"`
}

type managerInsertModel struct {
	Name            string `db:"name"`
	ActiveFromYear  int    `db:"active_from_year"`
	ActiveUntilYear *int64 `db:"active_until_year"`
}
