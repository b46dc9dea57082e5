package querybuilder

import "testing"

func TestSelectToSQL(t *testing.T) {
	query, args, err := Select("id", "external_team_id", "name").
		From("teams").
		Where(Eq("season_id", int64(3)), IsNull("deleted_at")).
		OrderBy("name").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select: %v", err)
	}

	want := "SELECT id, external_team_id, name FROM teams WHERE season_id = $1 AND deleted_at IS NULL ORDER BY name LIMIT 10"
	if query != want {
		t.Fatalf("unexpected sql:\n got=%s\nwant=%s", query, want)
	}
	if len(args) != 1 || args[0] != int64(3) {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestSelectGroupByWithExpr(t *testing.T) {
	query, args, err := Select("fantasy_team_id", "COALESCE(SUM(fantasy_points), 0) AS total_points").
		From("player_daily_stats").
		Where(Eq("stat_date", "2023-05-10"), Expr("active = ?", true)).
		GroupBy("fantasy_team_id").
		ToSQL()
	if err != nil {
		t.Fatalf("build select: %v", err)
	}

	want := "SELECT fantasy_team_id, COALESCE(SUM(fantasy_points), 0) AS total_points FROM player_daily_stats WHERE stat_date = $1 AND active = $2 GROUP BY fantasy_team_id"
	if query != want {
		t.Fatalf("unexpected sql:\n got=%s\nwant=%s", query, want)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestInsertModelWithConflictSuffix(t *testing.T) {
	model := struct {
		SeasonID int64  `db:"season_id"`
		TeamID   int64  `db:"team_id"`
		Rank     int    `db:"rank"`
		Streak   string `db:"streak"`
		ignored  string
	}{SeasonID: 1, TeamID: 2, Rank: 3, Streak: "W2"}

	query, args, err := InsertModel("standings", model, `ON CONFLICT (season_id, team_id)
DO UPDATE SET rank = EXCLUDED.rank, streak = EXCLUDED.streak`)
	if err != nil {
		t.Fatalf("build insert: %v", err)
	}

	want := "INSERT INTO standings (season_id, team_id, rank, streak) VALUES ($1, $2, $3, $4) ON CONFLICT (season_id, team_id)\nDO UPDATE SET rank = EXCLUDED.rank, streak = EXCLUDED.streak"
	if query != want {
		t.Fatalf("unexpected sql:\n got=%s\nwant=%s", query, want)
	}
	if len(args) != 4 {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestInsertColumnCountMismatch(t *testing.T) {
	_, _, err := InsertInto("seasons").
		Columns("year", "external_league_id").
		Values("2023").
		ToSQL()
	if err == nil {
		t.Fatal("expected error for mismatched values")
	}
}

func TestUpdateWithExprAndWhere(t *testing.T) {
	query, args, err := Update("roster_entries").
		Set("player_id", int64(42)).
		SetExpr("updated_at", "NOW()").
		Where(Eq("id", int64(7)), IsNull("player_id")).
		ToSQL()
	if err != nil {
		t.Fatalf("build update: %v", err)
	}

	want := "UPDATE roster_entries SET player_id = $1, updated_at = NOW() WHERE id = $2 AND player_id IS NULL"
	if query != want {
		t.Fatalf("unexpected sql:\n got=%s\nwant=%s", query, want)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestDeleteFromToSQL(t *testing.T) {
	query, args, err := DeleteFrom("player_daily_stats").
		Where(Eq("stat_date", "2023-05-10"), Eq("season_id", int64(4))).
		ToSQL()
	if err != nil {
		t.Fatalf("build delete: %v", err)
	}

	want := "DELETE FROM player_daily_stats WHERE stat_date = $1 AND season_id = $2"
	if query != want {
		t.Fatalf("unexpected sql:\n got=%s\nwant=%s", query, want)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestDeleteRequiresConditions(t *testing.T) {
	if _, _, err := DeleteFrom("seasons").ToSQL(); err == nil {
		t.Fatal("expected error for unconditional delete")
	}
}

func TestInEmptyValuesNeverMatch(t *testing.T) {
	query, args, err := Select("id").
		From("teams").
		Where(In("id", nil)).
		ToSQL()
	if err != nil {
		t.Fatalf("build select: %v", err)
	}
	if query != "SELECT id FROM teams WHERE 1=0" {
		t.Fatalf("unexpected sql: %s", query)
	}
	if len(args) != 0 {
		t.Fatalf("unexpected args: %v", args)
	}
}
