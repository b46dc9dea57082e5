package usecase

import (
	"context"
	"testing"

	"github.com/mlasky/diamondsync/internal/domain/dailystat"
	"github.com/mlasky/diamondsync/internal/domain/matchup"
	"github.com/mlasky/diamondsync/internal/domain/roster"
)

func seedPlayerDay(t *testing.T, env *serviceEnv, item dailystat.PlayerDay) {
	t.Helper()

	if _, err := env.daily.UpsertPlayerDay(context.Background(), item); err != nil {
		t.Fatalf("seed player day: %v", err)
	}
}

func TestRecomputeTeamDailySplitsHittingAndPitching(t *testing.T) {
	t.Parallel()

	env := newServiceEnv()
	ctx := context.Background()
	const (
		statDate = "2023-05-10"
		seasonID = int64(1)
		teamA    = int64(10)
	)

	seedPlayerDay(t, env, dailystat.PlayerDay{
		StatDate:         statDate,
		ExternalPlayerID: "p1",
		FantasyTeamID:    teamA,
		SeasonID:         seasonID,
		PeriodNumber:     "5",
		PositionPlayed:   "OF",
		Active:           true,
		Hitting:          dailystat.HittingLine{AtBats: 4, Hits: 2, HomeRuns: 1, RBI: 3},
		FantasyPoints:    30,
	})
	seedPlayerDay(t, env, dailystat.PlayerDay{
		StatDate:         statDate,
		ExternalPlayerID: "p2",
		FantasyTeamID:    teamA,
		SeasonID:         seasonID,
		PeriodNumber:     "5",
		PositionPlayed:   "1B",
		Active:           true,
		Hitting:          dailystat.HittingLine{AtBats: 3, Hits: 1, Singles: 1},
		FantasyPoints:    12,
	})
	seedPlayerDay(t, env, dailystat.PlayerDay{
		StatDate:         statDate,
		ExternalPlayerID: dailystat.TeamPitchingExternalID(teamA),
		FantasyTeamID:    teamA,
		SeasonID:         seasonID,
		PeriodNumber:     "5",
		PositionPlayed:   roster.PositionTeamPitching,
		Active:           true,
		Pitching:         dailystat.PitchingLine{Wins: 1, InningsPitchedOuts: 27, Strikeouts: 9},
		FantasyPoints:    18,
	})
	// Benched players never count.
	seedPlayerDay(t, env, dailystat.PlayerDay{
		StatDate:         statDate,
		ExternalPlayerID: "p3",
		FantasyTeamID:    teamA,
		SeasonID:         seasonID,
		PeriodNumber:     "5",
		PositionPlayed:   "OF",
		Active:           false,
		FantasyPoints:    99,
	})

	day, err := env.aggregation.RecomputeTeamDaily(ctx, statDate, teamA, seasonID)
	if err != nil {
		t.Fatalf("recompute team daily: %v", err)
	}
	if day.HittingPoints != 42 {
		t.Fatalf("hitting points = %v, want 42", day.HittingPoints)
	}
	if day.PitchingPoints != 18 {
		t.Fatalf("pitching points = %v, want 18", day.PitchingPoints)
	}
	if day.TotalPoints != 60 {
		t.Fatalf("total points = %v, want 60", day.TotalPoints)
	}
	if day.Hitting.AtBats != 7 || day.Hitting.Hits != 3 || day.Hitting.HomeRuns != 1 {
		t.Fatalf("hitting line not summed: %+v", day.Hitting)
	}
	if day.Pitching.Strikeouts != 9 || day.Pitching.Wins != 1 {
		t.Fatalf("pitching line not summed: %+v", day.Pitching)
	}
	if day.PeriodNumber != "5" || day.SeasonID != seasonID {
		t.Fatalf("period/season not carried: %+v", day)
	}

	stored, found, err := env.daily.GetTeamDay(ctx, statDate, teamA)
	if err != nil || !found {
		t.Fatalf("team day not persisted: found=%v err=%v", found, err)
	}
	if stored.TotalPoints != 60 {
		t.Fatalf("persisted total = %v, want 60", stored.TotalPoints)
	}
}

func TestRecomputeTeamDailyWritesZeroRowWhenNoLines(t *testing.T) {
	t.Parallel()

	env := newServiceEnv()
	ctx := context.Background()

	day, err := env.aggregation.RecomputeTeamDaily(ctx, "2023-05-10", 10, 1)
	if err != nil {
		t.Fatalf("recompute team daily: %v", err)
	}
	if day.TotalPoints != 0 || day.HittingPoints != 0 || day.PitchingPoints != 0 {
		t.Fatalf("expected zero aggregate, got %+v", day)
	}

	stored, found, err := env.daily.GetTeamDay(ctx, "2023-05-10", 10)
	if err != nil {
		t.Fatalf("get team day: %v", err)
	}
	if !found {
		t.Fatal("zero aggregate was not persisted")
	}
	if stored.SeasonID != 1 {
		t.Fatalf("season id = %d, want 1", stored.SeasonID)
	}
}

func TestRecomputeMatchupResultsScoresScheduledPairs(t *testing.T) {
	t.Parallel()

	env := newServiceEnv()
	ctx := context.Background()
	const (
		statDate = "2023-05-10"
		seasonID = int64(1)
		teamA    = int64(10)
		teamB    = int64(11)
	)

	if _, err := env.matchups.Upsert(ctx, matchup.Matchup{
		SeasonID:     seasonID,
		PeriodNumber: "5",
		AwayTeamID:   teamA,
		HomeTeamID:   teamB,
	}); err != nil {
		t.Fatalf("seed matchup: %v", err)
	}

	seedPlayerDay(t, env, dailystat.PlayerDay{
		StatDate: statDate, ExternalPlayerID: "a1", FantasyTeamID: teamA,
		SeasonID: seasonID, PeriodNumber: "5", PositionPlayed: "OF", Active: true, FantasyPoints: 60,
	})
	seedPlayerDay(t, env, dailystat.PlayerDay{
		StatDate: statDate, ExternalPlayerID: "b1", FantasyTeamID: teamB,
		SeasonID: seasonID, PeriodNumber: "5", PositionPlayed: "OF", Active: true, FantasyPoints: 50,
	})
	for _, teamID := range []int64{teamA, teamB} {
		if _, err := env.aggregation.RecomputeTeamDaily(ctx, statDate, teamID, seasonID); err != nil {
			t.Fatalf("recompute team %d: %v", teamID, err)
		}
	}

	updated, err := env.aggregation.RecomputeMatchupResults(ctx, statDate, seasonID)
	if err != nil {
		t.Fatalf("recompute matchup results: %v", err)
	}
	if updated != 1 {
		t.Fatalf("updated = %d, want 1", updated)
	}

	days, err := env.daily.ListMatchupDaysBySeason(ctx, seasonID)
	if err != nil {
		t.Fatalf("list matchup days: %v", err)
	}
	if len(days) != 1 {
		t.Fatalf("expected 1 matchup day, got %d", len(days))
	}
	if days[0].AwayPoints != 60 || days[0].HomePoints != 50 {
		t.Fatalf("score = %v/%v, want 60/50", days[0].AwayPoints, days[0].HomePoints)
	}
}

func TestRecomputeMatchupResultsDefaultsAbsentTeamToZero(t *testing.T) {
	t.Parallel()

	env := newServiceEnv()
	ctx := context.Background()
	const (
		statDate = "2023-05-10"
		seasonID = int64(1)
		teamA    = int64(10)
		teamB    = int64(11)
	)

	if _, err := env.matchups.Upsert(ctx, matchup.Matchup{
		SeasonID:     seasonID,
		PeriodNumber: "5",
		AwayTeamID:   teamA,
		HomeTeamID:   teamB,
	}); err != nil {
		t.Fatalf("seed matchup: %v", err)
	}

	// Only the away team has stat lines that day.
	seedPlayerDay(t, env, dailystat.PlayerDay{
		StatDate: statDate, ExternalPlayerID: "a1", FantasyTeamID: teamA,
		SeasonID: seasonID, PeriodNumber: "5", PositionPlayed: "OF", Active: true, FantasyPoints: 33,
	})
	if _, err := env.aggregation.RecomputeTeamDaily(ctx, statDate, teamA, seasonID); err != nil {
		t.Fatalf("recompute team daily: %v", err)
	}

	if _, err := env.aggregation.RecomputeMatchupResults(ctx, statDate, seasonID); err != nil {
		t.Fatalf("recompute matchup results: %v", err)
	}

	days, err := env.daily.ListMatchupDaysBySeason(ctx, seasonID)
	if err != nil {
		t.Fatalf("list matchup days: %v", err)
	}
	if len(days) != 1 {
		t.Fatalf("expected 1 matchup day, got %d", len(days))
	}
	if days[0].AwayPoints != 33 || days[0].HomePoints != 0 {
		t.Fatalf("score = %v/%v, want 33/0", days[0].AwayPoints, days[0].HomePoints)
	}
}

func TestRecomputeMatchupResultsNoDataIsANoop(t *testing.T) {
	t.Parallel()

	env := newServiceEnv()

	updated, err := env.aggregation.RecomputeMatchupResults(context.Background(), "2023-05-10", 1)
	if err != nil {
		t.Fatalf("recompute matchup results: %v", err)
	}
	if updated != 0 {
		t.Fatalf("updated = %d, want 0", updated)
	}
}

func TestReplaceDayDataCountsDeletedRows(t *testing.T) {
	t.Parallel()

	env := newServiceEnv()
	ctx := context.Background()
	const (
		statDate = "2023-05-10"
		seasonID = int64(1)
		teamA    = int64(10)
	)

	seedPlayerDay(t, env, dailystat.PlayerDay{
		StatDate: statDate, ExternalPlayerID: "p1", FantasyTeamID: teamA,
		SeasonID: seasonID, PeriodNumber: "5", PositionPlayed: "OF", Active: true, FantasyPoints: 10,
	})
	if _, err := env.aggregation.RecomputeTeamDaily(ctx, statDate, teamA, seasonID); err != nil {
		t.Fatalf("recompute team daily: %v", err)
	}
	// A different date must survive the replacement.
	seedPlayerDay(t, env, dailystat.PlayerDay{
		StatDate: "2023-05-11", ExternalPlayerID: "p1", FantasyTeamID: teamA,
		SeasonID: seasonID, PeriodNumber: "5", PositionPlayed: "OF", Active: true, FantasyPoints: 5,
	})

	deleted, err := env.aggregation.ReplaceDayData(ctx, statDate, seasonID)
	if err != nil {
		t.Fatalf("replace day data: %v", err)
	}
	if deleted != 2 {
		t.Fatalf("deleted = %d, want 2 (player line and team aggregate)", deleted)
	}

	if _, found, _ := env.daily.GetTeamDay(ctx, statDate, teamA); found {
		t.Fatal("team aggregate survived replacement")
	}
	survivors, err := env.daily.ListPlayerDays(ctx, "2023-05-11", teamA)
	if err != nil {
		t.Fatalf("list surviving rows: %v", err)
	}
	if len(survivors) != 1 {
		t.Fatalf("other dates touched by replacement: %d rows left", len(survivors))
	}
}
