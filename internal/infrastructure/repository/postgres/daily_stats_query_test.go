package postgres

import "testing"

func TestPeriodForDayQueryOrdersByID(t *testing.T) {
	t.Parallel()

	query, args, err := periodForDayQuery("2023-05-10", 4)
	if err != nil {
		t.Fatalf("build query: %v", err)
	}

	want := "SELECT period_number FROM player_daily_stats WHERE stat_date = $1 AND season_id = $2 ORDER BY id LIMIT 1"
	if query != want {
		t.Fatalf("unexpected sql:\n got=%s\nwant=%s", query, want)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args: %v", args)
	}
}
