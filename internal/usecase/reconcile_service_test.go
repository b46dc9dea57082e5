package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/mlasky/diamondsync/internal/domain/dailystat"
	"github.com/mlasky/diamondsync/internal/domain/player"
	"github.com/mlasky/diamondsync/internal/domain/roster"
)

func TestIngestTeamsReplayIsIdempotent(t *testing.T) {
	t.Parallel()

	env := newServiceEnv()
	seasonRow := env.mustSeason(t, "2023")
	ctx := context.Background()

	rows := []RawTeamRow{
		{ExternalTeamID: "t1", Name: "Dingers", IconURL: "http://img/1.png"},
		{ExternalTeamID: "t2", Name: "Moonshots"},
	}

	first, err := env.reconcile.IngestTeams(ctx, seasonRow.ID, rows)
	if err != nil {
		t.Fatalf("first ingest: %v", err)
	}
	if first.Processed != 2 || len(first.Errors) != 0 {
		t.Fatalf("first ingest: processed=%d errors=%d", first.Processed, len(first.Errors))
	}

	before, found, err := env.teams.GetByExternalID(ctx, seasonRow.ID, "t1")
	if err != nil || !found {
		t.Fatalf("team t1 after first ingest: found=%v err=%v", found, err)
	}

	second, err := env.reconcile.IngestTeams(ctx, seasonRow.ID, rows)
	if err != nil {
		t.Fatalf("second ingest: %v", err)
	}
	if second.Processed != 2 || len(second.Errors) != 0 {
		t.Fatalf("second ingest: processed=%d errors=%d", second.Processed, len(second.Errors))
	}

	after, _, err := env.teams.GetByExternalID(ctx, seasonRow.ID, "t1")
	if err != nil {
		t.Fatalf("team t1 after second ingest: %v", err)
	}
	if after.ID != before.ID {
		t.Fatalf("replay allocated a new team row: id %d != %d", after.ID, before.ID)
	}

	all, err := env.teams.ListBySeason(ctx, seasonRow.ID)
	if err != nil {
		t.Fatalf("list teams: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 teams after replay, got %d", len(all))
	}
}

func TestIngestTeamsKeepsIconWhenRescrapeOmitsIt(t *testing.T) {
	t.Parallel()

	env := newServiceEnv()
	seasonRow := env.mustSeason(t, "2023")
	ctx := context.Background()

	env.mustTeams(t, seasonRow.ID, RawTeamRow{ExternalTeamID: "t1", Name: "Dingers", IconURL: "http://img/1.png"})
	env.mustTeams(t, seasonRow.ID, RawTeamRow{ExternalTeamID: "t1", Name: "Dingers Renamed"})

	stored, found, err := env.teams.GetByExternalID(ctx, seasonRow.ID, "t1")
	if err != nil || !found {
		t.Fatalf("get team: found=%v err=%v", found, err)
	}
	if stored.Name != "Dingers Renamed" {
		t.Fatalf("name not updated: %q", stored.Name)
	}
	if stored.IconURL != "http://img/1.png" {
		t.Fatalf("icon url lost on rescrape without icon: %q", stored.IconURL)
	}
}

func TestIngestTeamsBadRowDoesNotAbortBatch(t *testing.T) {
	t.Parallel()

	env := newServiceEnv()
	seasonRow := env.mustSeason(t, "2023")
	ctx := context.Background()

	result, err := env.reconcile.IngestTeams(ctx, seasonRow.ID, []RawTeamRow{
		{ExternalTeamID: "t1", Name: "Dingers"},
		{ExternalTeamID: "t2"}, // no name
		{ExternalTeamID: "t3", Name: "Bombers"},
	})
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if result.Processed != 2 {
		t.Fatalf("processed = %d, want 2", result.Processed)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("errors = %d, want 1", len(result.Errors))
	}
	rowErr := result.Errors[0]
	if rowErr.Index != 1 {
		t.Fatalf("failed row index = %d, want 1", rowErr.Index)
	}
	if !errors.Is(rowErr.Err, ErrInvalidInput) {
		t.Fatalf("row error = %v, want ErrInvalidInput", rowErr.Err)
	}

	all, err := env.teams.ListBySeason(ctx, seasonRow.ID)
	if err != nil {
		t.Fatalf("list teams: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected the 2 valid teams stored, got %d", len(all))
	}
}

func TestIngestScheduleSkipsUnknownTeams(t *testing.T) {
	t.Parallel()

	env := newServiceEnv()
	seasonRow := env.mustSeason(t, "2023")
	env.mustTeams(t, seasonRow.ID,
		RawTeamRow{ExternalTeamID: "t1", Name: "Dingers"},
		RawTeamRow{ExternalTeamID: "t2", Name: "Moonshots"},
	)

	result, err := env.reconcile.IngestSchedule(context.Background(), seasonRow.ID, []RawMatchupRow{
		{PeriodNumber: "5", AwayExternalTeamID: "t1", HomeExternalTeamID: "t2", DateRange: "May 8 - May 14"},
		{PeriodNumber: "5", AwayExternalTeamID: "t1", HomeExternalTeamID: "ghost"},
	})
	if err != nil {
		t.Fatalf("ingest schedule: %v", err)
	}
	if result.Processed != 1 || len(result.Errors) != 1 {
		t.Fatalf("processed=%d errors=%d, want 1 and 1", result.Processed, len(result.Errors))
	}
	if !errors.Is(result.Errors[0].Err, ErrUnresolvedReference) {
		t.Fatalf("row error = %v, want ErrUnresolvedReference", result.Errors[0].Err)
	}
}

func TestIngestScheduleKeepsDateRangeOnReplay(t *testing.T) {
	t.Parallel()

	env := newServiceEnv()
	seasonRow := env.mustSeason(t, "2023")
	env.mustTeams(t, seasonRow.ID,
		RawTeamRow{ExternalTeamID: "t1", Name: "Dingers"},
		RawTeamRow{ExternalTeamID: "t2", Name: "Moonshots"},
	)
	ctx := context.Background()

	if _, err := env.reconcile.IngestSchedule(ctx, seasonRow.ID, []RawMatchupRow{
		{PeriodNumber: "5", AwayExternalTeamID: "t1", HomeExternalTeamID: "t2", DateRange: "May 8 - May 14", ExternalMatchupID: "m-5"},
	}); err != nil {
		t.Fatalf("first ingest: %v", err)
	}
	if _, err := env.reconcile.IngestSchedule(ctx, seasonRow.ID, []RawMatchupRow{
		{PeriodNumber: "5", AwayExternalTeamID: "t1", HomeExternalTeamID: "t2"},
	}); err != nil {
		t.Fatalf("second ingest: %v", err)
	}

	matchups, err := env.matchups.ListBySeasonPeriod(ctx, seasonRow.ID, "5")
	if err != nil {
		t.Fatalf("list matchups: %v", err)
	}
	if len(matchups) != 1 {
		t.Fatalf("expected 1 matchup, got %d", len(matchups))
	}
	if matchups[0].DateRange != "May 8 - May 14" {
		t.Fatalf("date range lost: %q", matchups[0].DateRange)
	}
	if matchups[0].ExternalMatchupID != "m-5" {
		t.Fatalf("external matchup id lost: %q", matchups[0].ExternalMatchupID)
	}
}

func TestIngestRosterUpdatesSlotInPlace(t *testing.T) {
	t.Parallel()

	env := newServiceEnv()
	seasonRow := env.mustSeason(t, "2023")
	env.mustTeams(t, seasonRow.ID, RawTeamRow{ExternalTeamID: "t1", Name: "Dingers"})
	ctx := context.Background()

	if _, err := env.players.Upsert(ctx, player.Player{
		ExternalPlayerID: "p100",
		FullName:         "Mike Trout",
		NormalizedName:   NormalizeName("Mike Trout"),
	}); err != nil {
		t.Fatalf("seed player: %v", err)
	}

	row := RawRosterRow{
		ExternalTeamID:   "t1",
		PeriodNumber:     "5",
		PositionCode:     "OF",
		RosterSlot:       0,
		IsActive:         true,
		PlayerName:       "Mike Trout",
		ExternalPlayerID: "p100",
		BatSide:          "R",
	}
	if _, err := env.reconcile.IngestRoster(ctx, seasonRow.ID, []RawRosterRow{row}); err != nil {
		t.Fatalf("first ingest: %v", err)
	}

	teamID, err := env.identity.ResolveTeam(ctx, seasonRow.ID, "t1")
	if err != nil {
		t.Fatalf("resolve team: %v", err)
	}
	entries, err := env.rosters.ListByTeamPeriod(ctx, teamID, "5")
	if err != nil {
		t.Fatalf("list roster: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	before := entries[0]
	if before.PlayerID == nil {
		t.Fatal("player id not resolved from platform id")
	}
	if !before.IsActive {
		t.Fatal("entry should be active after first ingest")
	}

	// Benching the player reuses the slot row instead of creating one.
	row.IsActive = false
	row.BatSide = ""
	if _, err := env.reconcile.IngestRoster(ctx, seasonRow.ID, []RawRosterRow{row}); err != nil {
		t.Fatalf("second ingest: %v", err)
	}

	entries, err = env.rosters.ListByTeamPeriod(ctx, teamID, "5")
	if err != nil {
		t.Fatalf("list roster: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry after replay, got %d", len(entries))
	}
	after := entries[0]
	if after.ID != before.ID {
		t.Fatalf("replay allocated a new roster row: id %d != %d", after.ID, before.ID)
	}
	if after.IsActive {
		t.Fatal("active flag not updated")
	}
	if after.BatSide != "R" {
		t.Fatalf("bat side lost on rescrape without it: %q", after.BatSide)
	}
	if after.PlayerID == nil || *after.PlayerID != *before.PlayerID {
		t.Fatalf("player link lost on replay: %v", after.PlayerID)
	}
}

func TestIngestDayReplacesPreviousRows(t *testing.T) {
	t.Parallel()

	env := newServiceEnv()
	seasonRow := env.mustSeason(t, "2023")
	env.mustTeams(t, seasonRow.ID, RawTeamRow{ExternalTeamID: "t1", Name: "Dingers"})
	ctx := context.Background()
	const statDate = "2023-05-10"

	first := []RawPlayerDayRow{
		{ExternalPlayerID: "p1", ExternalTeamID: "t1", PeriodNumber: "5", PositionPlayed: "OF", Active: true, FantasyPoints: 12},
		{ExternalPlayerID: "p2", ExternalTeamID: "t1", PeriodNumber: "5", PositionPlayed: "1B", Active: true, FantasyPoints: 8},
	}
	if _, err := env.reconcile.IngestDay(ctx, seasonRow.ID, statDate, first); err != nil {
		t.Fatalf("first ingest: %v", err)
	}

	teamID, err := env.identity.ResolveTeam(ctx, seasonRow.ID, "t1")
	if err != nil {
		t.Fatalf("resolve team: %v", err)
	}

	day, found, err := env.daily.GetTeamDay(ctx, statDate, teamID)
	if err != nil || !found {
		t.Fatalf("team day after first ingest: found=%v err=%v", found, err)
	}
	if day.TotalPoints != 20 {
		t.Fatalf("total after first ingest = %v, want 20", day.TotalPoints)
	}

	// The rescrape dropped p2. Its old row must not linger.
	second := []RawPlayerDayRow{
		{ExternalPlayerID: "p1", ExternalTeamID: "t1", PeriodNumber: "5", PositionPlayed: "OF", Active: true, FantasyPoints: 15},
	}
	if _, err := env.reconcile.IngestDay(ctx, seasonRow.ID, statDate, second); err != nil {
		t.Fatalf("second ingest: %v", err)
	}

	playerDays, err := env.daily.ListPlayerDays(ctx, statDate, teamID)
	if err != nil {
		t.Fatalf("list player days: %v", err)
	}
	if len(playerDays) != 1 {
		t.Fatalf("stale player rows survived replacement: got %d rows", len(playerDays))
	}
	if playerDays[0].ExternalPlayerID != "p1" {
		t.Fatalf("unexpected surviving row: %q", playerDays[0].ExternalPlayerID)
	}

	day, found, err = env.daily.GetTeamDay(ctx, statDate, teamID)
	if err != nil || !found {
		t.Fatalf("team day after second ingest: found=%v err=%v", found, err)
	}
	if day.TotalPoints != 15 {
		t.Fatalf("total after replacement = %v, want 15", day.TotalPoints)
	}
}

func TestIngestDaySynthesizesTeamPitchingID(t *testing.T) {
	t.Parallel()

	env := newServiceEnv()
	seasonRow := env.mustSeason(t, "2023")
	env.mustTeams(t, seasonRow.ID, RawTeamRow{ExternalTeamID: "t1", Name: "Dingers"})
	ctx := context.Background()
	const statDate = "2023-05-10"

	result, err := env.reconcile.IngestDay(ctx, seasonRow.ID, statDate, []RawPlayerDayRow{
		{ExternalTeamID: "t1", PeriodNumber: "5", PositionPlayed: roster.PositionTeamPitching, Active: true, FantasyPoints: 18},
		{ExternalTeamID: "t1", PeriodNumber: "5", PositionPlayed: "OF", Active: true, FantasyPoints: 7}, // missing player id
	})
	if err != nil {
		t.Fatalf("ingest day: %v", err)
	}
	if result.Processed != 1 || len(result.Errors) != 1 {
		t.Fatalf("processed=%d errors=%d, want 1 and 1", result.Processed, len(result.Errors))
	}
	if !errors.Is(result.Errors[0].Err, ErrInvalidInput) {
		t.Fatalf("row error = %v, want ErrInvalidInput", result.Errors[0].Err)
	}

	teamID, err := env.identity.ResolveTeam(ctx, seasonRow.ID, "t1")
	if err != nil {
		t.Fatalf("resolve team: %v", err)
	}
	rows, err := env.daily.ListPlayerDays(ctx, statDate, teamID)
	if err != nil {
		t.Fatalf("list player days: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 stored row, got %d", len(rows))
	}
	if want := dailystat.TeamPitchingExternalID(teamID); rows[0].ExternalPlayerID != want {
		t.Fatalf("team pitching external id = %q, want %q", rows[0].ExternalPlayerID, want)
	}
}

func TestIngestTeamsArchivesRawPayloads(t *testing.T) {
	t.Parallel()

	env := newServiceEnv()
	seasonRow := env.mustSeason(t, "2023")

	env.mustTeams(t, seasonRow.ID,
		RawTeamRow{ExternalTeamID: "t1", Name: "Dingers"},
		RawTeamRow{ExternalTeamID: "t2", Name: "Moonshots"},
	)

	payloads := env.rawData.All()
	if len(payloads) != 2 {
		t.Fatalf("archived payloads = %d, want 2", len(payloads))
	}
	for _, p := range payloads {
		if p.Source != ScrapeSource || p.EntityType != "team" {
			t.Fatalf("payload tagged %s/%s", p.Source, p.EntityType)
		}
		if p.PayloadJSON == "" || p.PayloadHash == "" {
			t.Fatal("payload body or hash missing")
		}
		if p.SeasonID == nil || *p.SeasonID != seasonRow.ID {
			t.Fatalf("payload season = %v", p.SeasonID)
		}
	}

	// Replaying the batch rewrites the same keys instead of growing the archive.
	env.mustTeams(t, seasonRow.ID, RawTeamRow{ExternalTeamID: "t1", Name: "Dingers"})
	if got := len(env.rawData.All()); got != 2 {
		t.Fatalf("archive grew on replay: %d payloads", got)
	}
}

func TestIngestSeasonStatsFansOutBlocks(t *testing.T) {
	t.Parallel()

	env := newServiceEnv()
	seasonRow := env.mustSeason(t, "2023")
	env.mustTeams(t, seasonRow.ID, RawTeamRow{ExternalTeamID: "t1", Name: "Dingers"})
	ctx := context.Background()

	result, err := env.reconcile.IngestSeasonStats(ctx, seasonRow.ID, []RawSeasonStatRow{
		{
			ExternalTeamID: "t1",
			GamesPlayed:    40,
			FantasyPoints:  1234.5,
			HittingPoints:  800,
			PitchingPoints: 434.5,
			Hitting:        &RawHittingBlock{AtBats: 1200, Hits: 330, HomeRuns: 45, BattingAverage: 0.275},
			Pitching:       &RawPitchingBlock{Wins: 22, Strikeouts: 310, ERA: 3.61},
		},
	})
	if err != nil {
		t.Fatalf("ingest season stats: %v", err)
	}
	if result.Processed != 1 || len(result.Errors) != 0 {
		t.Fatalf("processed=%d errors=%d", result.Processed, len(result.Errors))
	}

	stats, err := env.teamStats.ListSeasonStats(ctx, seasonRow.ID)
	if err != nil {
		t.Fatalf("list season stats: %v", err)
	}
	if len(stats) != 1 {
		t.Fatalf("expected 1 season stat row, got %d", len(stats))
	}
	if stats[0].FantasyPoints != 1234.5 {
		t.Fatalf("fantasy points = %v", stats[0].FantasyPoints)
	}
}

func TestIngestStandingsRejectsImpossiblePercentage(t *testing.T) {
	t.Parallel()

	env := newServiceEnv()
	seasonRow := env.mustSeason(t, "2023")
	env.mustTeams(t, seasonRow.ID, RawTeamRow{ExternalTeamID: "t1", Name: "Dingers"})

	result, err := env.reconcile.IngestStandings(context.Background(), seasonRow.ID, []RawStandingRow{
		{ExternalTeamID: "t1", Rank: 1, Wins: 10, Losses: 2, WinPercentage: 1.8},
	})
	if err != nil {
		t.Fatalf("ingest standings: %v", err)
	}
	if result.Processed != 0 || len(result.Errors) != 1 {
		t.Fatalf("processed=%d errors=%d, want 0 and 1", result.Processed, len(result.Errors))
	}
	if !errors.Is(result.Errors[0].Err, ErrInvalidInput) {
		t.Fatalf("row error = %v, want ErrInvalidInput", result.Errors[0].Err)
	}
}
