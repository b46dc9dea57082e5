package postgres

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx/reflectx"
)

// The repositories read several tables with SELECT *, and sqlx rejects
// any result column without a destination field. Walk the migration DDL
// and check each of those table models against its full column set.
func TestTableModelsMapAllMigrationColumns(t *testing.T) {
	t.Parallel()

	columns := migrationColumns(t)
	models := map[string]any{
		"seasons":               seasonTableModel{},
		"matchups":              matchupTableModel{},
		"players":               playerTableModel{},
		"roster_entries":        rosterEntryTableModel{},
		"player_daily_stats":    playerDayTableModel{},
		"team_daily_stats":      teamDayTableModel{},
		"matchup_daily_results": matchupDayTableModel{},
		"mlb_games":             mlbGameTableModel{},
	}

	mapper := reflectx.NewMapperFunc("db", strings.ToLower)
	for table, model := range models {
		cols := columns[table]
		if len(cols) == 0 {
			t.Fatalf("no columns parsed for table %s", table)
		}

		typeMap := mapper.TypeMap(reflect.TypeOf(model))
		for _, col := range cols {
			if _, ok := typeMap.Names[col]; !ok {
				t.Errorf("%s: column %q has no destination field on %T", table, col, model)
			}
		}
	}
}

// migrationColumns parses CREATE TABLE blocks from the init migration.
// Column lines start with a lowercase identifier; constraint lines
// (UNIQUE, PRIMARY, ...) are uppercase and skipped.
func migrationColumns(t *testing.T) map[string][]string {
	t.Helper()

	raw, err := os.ReadFile(filepath.Join("..", "..", "..", "..", "db", "migrations", "000001_init.up.sql"))
	if err != nil {
		t.Fatalf("read init migration: %v", err)
	}

	columns := make(map[string][]string)
	var table string
	for _, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "CREATE TABLE "):
			table = strings.TrimSuffix(strings.TrimPrefix(line, "CREATE TABLE "), " (")
		case table == "" || strings.HasPrefix(line, ")"):
			table = ""
		default:
			name, _, _ := strings.Cut(line, " ")
			if name == "" || name != strings.ToLower(name) {
				continue
			}
			columns[table] = append(columns[table], name)
		}
	}

	return columns
}
