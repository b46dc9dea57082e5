package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/bytedance/sonic"

	"github.com/mlasky/diamondsync/internal/domain/dailystat"
	"github.com/mlasky/diamondsync/internal/domain/standing"
)

func TestBuildSeasonReportTalliesHeadToHead(t *testing.T) {
	t.Parallel()

	env := newServiceEnv()
	seasonRow := env.mustSeason(t, "2023")
	env.mustTeams(t, seasonRow.ID,
		RawTeamRow{ExternalTeamID: "t1", Name: "Dingers"},
		RawTeamRow{ExternalTeamID: "t2", Name: "Moonshots"},
	)
	ctx := context.Background()

	teamA, _, err := env.teams.GetByExternalID(ctx, seasonRow.ID, "t1")
	if err != nil {
		t.Fatalf("get team a: %v", err)
	}
	teamB, _, err := env.teams.GetByExternalID(ctx, seasonRow.ID, "t2")
	if err != nil {
		t.Fatalf("get team b: %v", err)
	}

	if _, err := env.standings.Upsert(ctx, standing.Standing{
		SeasonID: seasonRow.ID, TeamID: teamA.ID, Rank: 1,
		Wins: 20, Losses: 8, Ties: 2, WinPercentage: 0.700, PointsFor: 1500.5,
	}); err != nil {
		t.Fatalf("seed standing a: %v", err)
	}
	if _, err := env.standings.Upsert(ctx, standing.Standing{
		SeasonID: seasonRow.ID, TeamID: teamB.ID, Rank: 2,
		Wins: 15, Losses: 13, Ties: 2, WinPercentage: 0.533, PointsFor: 1399,
	}); err != nil {
		t.Fatalf("seed standing b: %v", err)
	}

	// A beats B twice, loses once, one tied day.
	scores := []struct {
		date       string
		away, home float64
	}{
		{"2023-05-08", 60, 50},
		{"2023-05-09", 45, 44},
		{"2023-05-10", 30, 41},
		{"2023-05-11", 33, 33},
	}
	for _, s := range scores {
		if _, err := env.daily.UpsertMatchupDay(ctx, dailystat.MatchupDay{
			StatDate:     s.date,
			SeasonID:     seasonRow.ID,
			PeriodNumber: "5",
			AwayTeamID:   teamA.ID,
			HomeTeamID:   teamB.ID,
			AwayPoints:   s.away,
			HomePoints:   s.home,
		}); err != nil {
			t.Fatalf("seed matchup day %s: %v", s.date, err)
		}
	}

	report, err := env.report.BuildSeasonReport(ctx, seasonRow.ID)
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if report.Year != "2023" {
		t.Fatalf("year = %q", report.Year)
	}
	if len(report.Standings) != 2 {
		t.Fatalf("standings lines = %d, want 2", len(report.Standings))
	}
	if report.Standings[0].TeamName != "Dingers" || report.Standings[0].Rank != 1 {
		t.Fatalf("first standing line = %+v", report.Standings[0])
	}

	if len(report.HeadToHead) != 2 {
		t.Fatalf("head-to-head lines = %d, want 2 (both directions)", len(report.HeadToHead))
	}
	// Sorted by team name: Dingers first.
	aVsB := report.HeadToHead[0]
	if aVsB.TeamName != "Dingers" || aVsB.OpponentName != "Moonshots" {
		t.Fatalf("unexpected pair order: %+v", aVsB)
	}
	if aVsB.DaysWon != 2 || aVsB.DaysLost != 1 || aVsB.DaysTied != 1 {
		t.Fatalf("Dingers record = %d-%d-%d, want 2-1-1", aVsB.DaysWon, aVsB.DaysLost, aVsB.DaysTied)
	}
	bVsA := report.HeadToHead[1]
	if bVsA.DaysWon != 1 || bVsA.DaysLost != 2 || bVsA.DaysTied != 1 {
		t.Fatalf("Moonshots record = %d-%d-%d, want 1-2-1", bVsA.DaysWon, bVsA.DaysLost, bVsA.DaysTied)
	}
}

func TestBuildSeasonReportUnknownSeason(t *testing.T) {
	t.Parallel()

	env := newServiceEnv()

	if _, err := env.report.BuildSeasonReport(context.Background(), 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestRenderSeasonReportProducesValidJSON(t *testing.T) {
	t.Parallel()

	env := newServiceEnv()
	seasonRow := env.mustSeason(t, "2023")
	env.mustTeams(t, seasonRow.ID, RawTeamRow{ExternalTeamID: "t1", Name: "Dingers"})

	out, err := env.report.RenderSeasonReport(context.Background(), seasonRow.ID)
	if err != nil {
		t.Fatalf("render report: %v", err)
	}
	if len(out) == 0 || out[len(out)-1] != '\n' {
		t.Fatal("rendered report should end with a newline")
	}

	var decoded SeasonReport
	if err := sonic.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("rendered report is not valid JSON: %v", err)
	}
	if decoded.Year != "2023" {
		t.Fatalf("round-tripped year = %q", decoded.Year)
	}
}
