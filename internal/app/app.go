// Package app wires configuration, the database and the services into
// one runnable pipeline application.
package app

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/mlasky/diamondsync/external/fantasyhtml"
	"github.com/mlasky/diamondsync/external/mlbstats"
	"github.com/mlasky/diamondsync/internal/config"
	"github.com/mlasky/diamondsync/internal/infrastructure/repository/postgres"
	"github.com/mlasky/diamondsync/internal/platform/cache"
	"github.com/mlasky/diamondsync/internal/platform/logging"
	"github.com/mlasky/diamondsync/internal/platform/resilience"
	"github.com/mlasky/diamondsync/internal/usecase"
)

// Application holds the wired services of the sync pipeline. Commands
// pick the service they need; everything shares one database handle.
type Application struct {
	Config config.Config
	Logger *logging.Logger

	Identity    *usecase.IdentityService
	Aggregation *usecase.AggregationService
	Reconcile   *usecase.ReconcileService
	NameMatch   *usecase.NameMatchService
	Managers    *usecase.ManagerService
	Reports     *usecase.ReportService
	Backfill    *usecase.BackfillService

	// MLBStats is nil when MLB_STATS_ENABLED is false.
	MLBStats *mlbstats.Client

	db *sqlx.DB
}

func New(cfg config.Config, logger *logging.Logger) (*Application, error) {
	if logger == nil {
		logger = logging.Default()
	}

	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(dsn)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	store := postgres.NewStore(db)
	seasonRepo := postgres.NewSeasonRepository(store)
	managerRepo := postgres.NewManagerRepository(store)
	teamRepo := postgres.NewTeamRepository(store)
	matchupRepo := postgres.NewMatchupRepository(store)
	standingRepo := postgres.NewStandingRepository(store)
	teamStatsRepo := postgres.NewTeamStatsRepository(store)
	rosterRepo := postgres.NewRosterRepository(store)
	playerRepo := postgres.NewPlayerRepository(store)
	dailyRepo := postgres.NewDailyStatsRepository(store)
	mlbRepo := postgres.NewMLBRepository(store)
	rawRepo := postgres.NewRawDataRepository(store)

	ttl := cfg.CacheTTL
	if !cfg.CacheEnabled {
		// Instantly-expiring entries make every lookup hit the database.
		ttl = time.Nanosecond
	}
	identity := usecase.NewIdentityService(seasonRepo, teamRepo, playerRepo, cache.NewStore(ttl))

	aggregation := usecase.NewAggregationService(store, dailyRepo, matchupRepo)
	reconcile := usecase.NewReconcileService(
		store,
		identity,
		teamRepo,
		matchupRepo,
		standingRepo,
		teamStatsRepo,
		rosterRepo,
		dailyRepo,
		mlbRepo,
		rawRepo,
		aggregation,
		logger,
	)
	nameMatch := usecase.NewNameMatchService(store, rosterRepo, playerRepo, logger)
	managers := usecase.NewManagerService(managerRepo, teamRepo)
	reports := usecase.NewReportService(seasonRepo, teamRepo, standingRepo, dailyRepo)

	parser := fantasyhtml.NewArchiveParser(cfg.ScrapeArchiveDir)
	backfill := usecase.NewBackfillService(parser, reconcile, cfg.BackfillWorkers, logger)

	var statsClient *mlbstats.Client
	if cfg.MLBStatsEnabled {
		statsClient = mlbstats.NewClient(mlbstats.ClientConfig{
			BaseURL:         cfg.MLBStatsBaseURL,
			Timeout:         cfg.MLBStatsTimeout,
			MaxRetries:      cfg.MLBStatsMaxRetries,
			BoxscoreWorkers: cfg.MLBStatsBoxscoreWorkers,
			Logger:          logger,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.MLBStatsCircuitEnabled,
				FailureThreshold: cfg.MLBStatsCircuitFailureCount,
				OpenTimeout:      cfg.MLBStatsCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.MLBStatsCircuitHalfOpenMaxReq,
			},
		})
	}

	return &Application{
		Config:      cfg,
		Logger:      logger,
		Identity:    identity,
		Aggregation: aggregation,
		Reconcile:   reconcile,
		NameMatch:   nameMatch,
		Managers:    managers,
		Reports:     reports,
		Backfill:    backfill,
		MLBStats:    statsClient,
		db:          db,
	}, nil
}

func (a *Application) DB() *sqlx.DB {
	return a.db
}

func (a *Application) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}
