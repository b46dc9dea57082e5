package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/mlasky/diamondsync/internal/domain/player"
)

func TestEnsureSeasonReplayKeepsID(t *testing.T) {
	t.Parallel()

	env := newServiceEnv()
	ctx := context.Background()

	first, err := env.identity.EnsureSeason(ctx, "2023", "league-2023", "Hot Stove League")
	if err != nil {
		t.Fatalf("first ensure: %v", err)
	}
	second, err := env.identity.EnsureSeason(ctx, "2023", "league-2023", "Hot Stove League 2023")
	if err != nil {
		t.Fatalf("second ensure: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("replay allocated a new season: id %d != %d", second.ID, first.ID)
	}
	if second.DisplayName != "Hot Stove League 2023" {
		t.Fatalf("display name not refreshed: %q", second.DisplayName)
	}
}

func TestEnsureSeasonKeyedOnExternalLeagueID(t *testing.T) {
	t.Parallel()

	env := newServiceEnv()
	ctx := context.Background()

	first, err := env.identity.EnsureSeason(ctx, "2023", "league-77", "")
	if err != nil {
		t.Fatalf("first ensure: %v", err)
	}

	// Same league id with a corrected year resolves to the same season.
	relabeled, err := env.identity.EnsureSeason(ctx, "2024", "league-77", "")
	if err != nil {
		t.Fatalf("relabel ensure: %v", err)
	}
	if relabeled.ID != first.ID {
		t.Fatalf("league id did not key the season: id %d != %d", relabeled.ID, first.ID)
	}
	if relabeled.Year != "2024" {
		t.Fatalf("year not refreshed: %q", relabeled.Year)
	}
	if relabeled.ExternalLeagueID != "league-77" {
		t.Fatalf("external league id changed: %q", relabeled.ExternalLeagueID)
	}

	// A different league id is a different season even for the same year.
	other, err := env.identity.EnsureSeason(ctx, "2023", "league-88", "")
	if err != nil {
		t.Fatalf("other ensure: %v", err)
	}
	if other.ID == first.ID {
		t.Fatal("distinct league ids collapsed into one season")
	}
}

func TestEnsureSeasonRequiresYearAndLeague(t *testing.T) {
	t.Parallel()

	env := newServiceEnv()

	if _, err := env.identity.EnsureSeason(context.Background(), "", "league", ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("missing year: err = %v, want ErrInvalidInput", err)
	}
	if _, err := env.identity.EnsureSeason(context.Background(), "2023", "  ", ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("missing league id: err = %v, want ErrInvalidInput", err)
	}
}

func TestResolveTeamUnknownIsUnresolvedReference(t *testing.T) {
	t.Parallel()

	env := newServiceEnv()
	seasonRow := env.mustSeason(t, "2023")

	_, err := env.identity.ResolveTeam(context.Background(), seasonRow.ID, "ghost")
	if !errors.Is(err, ErrUnresolvedReference) {
		t.Fatalf("err = %v, want ErrUnresolvedReference", err)
	}
}

func TestResolveTeamSeesTeamsCreatedAfterAMiss(t *testing.T) {
	t.Parallel()

	env := newServiceEnv()
	seasonRow := env.mustSeason(t, "2023")
	ctx := context.Background()

	// Miss first, then ingest the team. The miss must not stick.
	if _, err := env.identity.ResolveTeam(ctx, seasonRow.ID, "t1"); !errors.Is(err, ErrUnresolvedReference) {
		t.Fatalf("pre-ingest resolve: err = %v, want ErrUnresolvedReference", err)
	}

	env.mustTeams(t, seasonRow.ID, RawTeamRow{ExternalTeamID: "t1", Name: "Dingers"})

	id, err := env.identity.ResolveTeam(ctx, seasonRow.ID, "t1")
	if err != nil {
		t.Fatalf("post-ingest resolve: %v", err)
	}
	stored, found, err := env.teams.GetByExternalID(ctx, seasonRow.ID, "t1")
	if err != nil || !found {
		t.Fatalf("get team: found=%v err=%v", found, err)
	}
	if id != stored.ID {
		t.Fatalf("resolved id %d != stored id %d", id, stored.ID)
	}
}

func TestResolvePlayerAbsenceIsNotAnError(t *testing.T) {
	t.Parallel()

	env := newServiceEnv()
	ctx := context.Background()

	_, found, err := env.identity.ResolvePlayer(ctx, "p404")
	if err != nil {
		t.Fatalf("resolve missing player: %v", err)
	}
	if found {
		t.Fatal("missing player reported as found")
	}

	seeded, err := env.players.Upsert(ctx, player.Player{ExternalPlayerID: "p100", FullName: "Mike Trout"})
	if err != nil {
		t.Fatalf("seed player: %v", err)
	}
	id, found, err := env.identity.ResolvePlayer(ctx, "p100")
	if err != nil || !found {
		t.Fatalf("resolve seeded player: found=%v err=%v", found, err)
	}
	if id != seeded.ID {
		t.Fatalf("resolved id %d != seeded id %d", id, seeded.ID)
	}
}
