package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/mlasky/diamondsync/internal/domain/season"
	"github.com/mlasky/diamondsync/internal/infrastructure/repository/memory"
	"github.com/mlasky/diamondsync/internal/platform/cache"
	"github.com/mlasky/diamondsync/internal/platform/logging"
)

// serviceEnv wires every service against in-memory repositories, the
// same shape the process wires against postgres.
type serviceEnv struct {
	seasons     *memory.SeasonRepository
	managers    *memory.ManagerRepository
	teams       *memory.TeamRepository
	matchups    *memory.MatchupRepository
	standings   *memory.StandingRepository
	teamStats   *memory.TeamStatsRepository
	rosters     *memory.RosterRepository
	players     *memory.PlayerRepository
	daily       *memory.DailyStatsRepository
	mlbData     *memory.MLBRepository
	rawData     *memory.RawDataRepository
	identity    *IdentityService
	aggregation *AggregationService
	reconcile   *ReconcileService
	nameMatch   *NameMatchService
	managerSvc  *ManagerService
	report      *ReportService
}

func newServiceEnv() *serviceEnv {
	env := &serviceEnv{
		seasons:   memory.NewSeasonRepository(),
		managers:  memory.NewManagerRepository(),
		teams:     memory.NewTeamRepository(),
		matchups:  memory.NewMatchupRepository(),
		standings: memory.NewStandingRepository(),
		teamStats: memory.NewTeamStatsRepository(),
		rosters:   memory.NewRosterRepository(),
		players:   memory.NewPlayerRepository(),
		daily:     memory.NewDailyStatsRepository(),
		mlbData:   memory.NewMLBRepository(),
		rawData:   memory.NewRawDataRepository(),
	}

	tx := memory.NewTxRunner()
	env.identity = NewIdentityService(env.seasons, env.teams, env.players, cache.NewStore(time.Minute))
	env.aggregation = NewAggregationService(tx, env.daily, env.matchups)
	env.reconcile = NewReconcileService(
		tx,
		env.identity,
		env.teams,
		env.matchups,
		env.standings,
		env.teamStats,
		env.rosters,
		env.daily,
		env.mlbData,
		env.rawData,
		env.aggregation,
		logging.NewNop(),
	)
	env.nameMatch = NewNameMatchService(tx, env.rosters, env.players, logging.NewNop())
	env.managerSvc = NewManagerService(env.managers, env.teams)
	env.report = NewReportService(env.seasons, env.teams, env.standings, env.daily)
	return env
}

func (env *serviceEnv) mustSeason(t *testing.T, year string) season.Season {
	t.Helper()

	item, err := env.identity.EnsureSeason(context.Background(), year, "league-"+year, "Test League "+year)
	if err != nil {
		t.Fatalf("ensure season: %v", err)
	}
	return item
}

func (env *serviceEnv) mustTeams(t *testing.T, seasonID int64, rows ...RawTeamRow) {
	t.Helper()

	result, err := env.reconcile.IngestTeams(context.Background(), seasonID, rows)
	if err != nil {
		t.Fatalf("ingest teams: %v", err)
	}
	if len(result.Errors) != 0 {
		t.Fatalf("ingest teams row errors: %v", result.Errors)
	}
}
