package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/mlasky/diamondsync/external/fantasyhtml"
	"github.com/mlasky/diamondsync/internal/app"
	"github.com/mlasky/diamondsync/internal/config"
	"github.com/mlasky/diamondsync/internal/domain/manager"
	"github.com/mlasky/diamondsync/internal/observability"
	idgen "github.com/mlasky/diamondsync/internal/platform/id"
	"github.com/mlasky/diamondsync/internal/platform/logging"
	"github.com/mlasky/diamondsync/internal/usecase"
)

const dateLayout = "2006-01-02"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)

	if err := run(cfg, logger, os.Args[1], os.Args[2:]); err != nil {
		logger.Error("command failed", "command", os.Args[1], "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *logging.Logger, command string, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		return fmt.Errorf("init uptrace: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Warn("uptrace shutdown failed", "error", err)
		}
	}()

	stopProfiler, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		return fmt.Errorf("init pyroscope: %w", err)
	}
	defer func() {
		if err := stopProfiler(); err != nil {
			logger.Warn("pyroscope shutdown failed", "error", err)
		}
	}()

	pprofSrv, err := observability.StartPprofServer(cfg, logger)
	if err != nil {
		return fmt.Errorf("start pprof: %w", err)
	}
	defer func() {
		if err := observability.StopPprofServer(pprofSrv, logger, 5*time.Second); err != nil {
			logger.Warn("pprof shutdown failed", "error", err)
		}
	}()

	application, err := app.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("build application: %w", err)
	}
	defer func() {
		if err := application.Close(); err != nil {
			logger.Warn("close application", "error", err)
		}
	}()

	switch command {
	case "ingest-teams":
		return runIngestTeams(ctx, application, args)
	case "ingest-schedule":
		return runIngestSchedule(ctx, application, args)
	case "ingest-standings":
		return runIngestStandings(ctx, application, args)
	case "ingest-stats":
		return runIngestSeasonStats(ctx, application, args)
	case "ingest-roster":
		return runIngestRoster(ctx, application, args)
	case "ingest-day":
		return runIngestDay(ctx, application, args)
	case "ingest-mlb":
		return runIngestMLB(ctx, application, args)
	case "backfill":
		return runBackfill(ctx, application, args)
	case "aggregate":
		return runAggregate(ctx, application, args)
	case "match-names":
		return runMatchNames(ctx, application, args)
	case "assign-manager":
		return runAssignManager(ctx, application, args)
	case "report":
		return runReport(ctx, application, args)
	default:
		printUsage()
		return fmt.Errorf("unknown command %q", command)
	}
}

// ensureSeason resolves the season row for a league year, creating it
// on first use. The league identity comes from LEAGUE_EXTERNAL_ID.
func ensureSeason(ctx context.Context, application *app.Application, year string) (int64, error) {
	leagueID := application.Config.LeagueExternalID
	if leagueID == "" {
		return 0, fmt.Errorf("LEAGUE_EXTERNAL_ID is required")
	}
	item, err := application.Identity.EnsureSeason(ctx, year, leagueID, "")
	if err != nil {
		return 0, err
	}
	return item.ID, nil
}

func logBatch(application *app.Application, what string, result usecase.BatchResult) {
	application.Logger.Info(what,
		"processed", result.Processed,
		"row_errors", len(result.Errors),
	)
}

func runIngestTeams(ctx context.Context, application *app.Application, args []string) error {
	fs := flag.NewFlagSet("ingest-teams", flag.ExitOnError)
	year := fs.String("year", "", "league year (YYYY)")
	file := fs.String("file", "", "saved league teams page")
	if err := fs.Parse(args); err != nil {
		return err
	}

	rows, err := parseFile(*file, fantasyhtml.ParseTeams)
	if err != nil {
		return err
	}
	seasonID, err := ensureSeason(ctx, application, *year)
	if err != nil {
		return err
	}
	result, err := application.Reconcile.IngestTeams(ctx, seasonID, rows)
	if err != nil {
		return err
	}
	logBatch(application, "teams ingested", result)
	return nil
}

func runIngestSchedule(ctx context.Context, application *app.Application, args []string) error {
	fs := flag.NewFlagSet("ingest-schedule", flag.ExitOnError)
	year := fs.String("year", "", "league year (YYYY)")
	file := fs.String("file", "", "saved schedule page")
	if err := fs.Parse(args); err != nil {
		return err
	}

	rows, err := parseFile(*file, fantasyhtml.ParseSchedule)
	if err != nil {
		return err
	}
	seasonID, err := ensureSeason(ctx, application, *year)
	if err != nil {
		return err
	}
	result, err := application.Reconcile.IngestSchedule(ctx, seasonID, rows)
	if err != nil {
		return err
	}
	logBatch(application, "schedule ingested", result)
	return nil
}

func runIngestStandings(ctx context.Context, application *app.Application, args []string) error {
	fs := flag.NewFlagSet("ingest-standings", flag.ExitOnError)
	year := fs.String("year", "", "league year (YYYY)")
	file := fs.String("file", "", "saved standings page")
	if err := fs.Parse(args); err != nil {
		return err
	}

	rows, err := parseFile(*file, fantasyhtml.ParseStandings)
	if err != nil {
		return err
	}
	seasonID, err := ensureSeason(ctx, application, *year)
	if err != nil {
		return err
	}
	result, err := application.Reconcile.IngestStandings(ctx, seasonID, rows)
	if err != nil {
		return err
	}
	logBatch(application, "standings ingested", result)
	return nil
}

func runIngestSeasonStats(ctx context.Context, application *app.Application, args []string) error {
	fs := flag.NewFlagSet("ingest-stats", flag.ExitOnError)
	year := fs.String("year", "", "league year (YYYY)")
	file := fs.String("file", "", "saved season stats page")
	if err := fs.Parse(args); err != nil {
		return err
	}

	rows, err := parseFile(*file, fantasyhtml.ParseSeasonStats)
	if err != nil {
		return err
	}
	seasonID, err := ensureSeason(ctx, application, *year)
	if err != nil {
		return err
	}
	result, err := application.Reconcile.IngestSeasonStats(ctx, seasonID, rows)
	if err != nil {
		return err
	}
	logBatch(application, "season stats ingested", result)
	return nil
}

func runIngestRoster(ctx context.Context, application *app.Application, args []string) error {
	fs := flag.NewFlagSet("ingest-roster", flag.ExitOnError)
	year := fs.String("year", "", "league year (YYYY)")
	file := fs.String("file", "", "saved roster page (one team, one period)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	rows, err := parseFile(*file, fantasyhtml.ParseRoster)
	if err != nil {
		return err
	}
	seasonID, err := ensureSeason(ctx, application, *year)
	if err != nil {
		return err
	}
	result, err := application.Reconcile.IngestRoster(ctx, seasonID, rows)
	if err != nil {
		return err
	}
	logBatch(application, "roster ingested", result)
	return nil
}

func runIngestDay(ctx context.Context, application *app.Application, args []string) error {
	fs := flag.NewFlagSet("ingest-day", flag.ExitOnError)
	year := fs.String("year", "", "league year (YYYY)")
	date := fs.String("date", "", "stat date (YYYY-MM-DD), read from the scrape archive")
	if err := fs.Parse(args); err != nil {
		return err
	}

	parser := fantasyhtml.NewArchiveParser(application.Config.ScrapeArchiveDir)
	rows, err := parser.ParseDay(ctx, *date)
	if err != nil {
		return err
	}
	seasonID, err := ensureSeason(ctx, application, *year)
	if err != nil {
		return err
	}
	result, err := application.Reconcile.IngestDay(ctx, seasonID, *date, rows)
	if err != nil {
		return err
	}
	logBatch(application, "day ingested", result)
	return nil
}

func runIngestMLB(ctx context.Context, application *app.Application, args []string) error {
	fs := flag.NewFlagSet("ingest-mlb", flag.ExitOnError)
	date := fs.String("date", "", "game date (YYYY-MM-DD)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if application.MLBStats == nil {
		return fmt.Errorf("mlb stats client is disabled (MLB_STATS_ENABLED=false)")
	}
	games, stats, err := application.MLBStats.FetchDay(ctx, *date)
	if err != nil {
		return err
	}
	result, err := application.Reconcile.IngestMLBData(ctx, games, stats)
	if err != nil {
		return err
	}
	logBatch(application, "mlb data ingested", result)
	return nil
}

func runBackfill(ctx context.Context, application *app.Application, args []string) error {
	fs := flag.NewFlagSet("backfill", flag.ExitOnError)
	year := fs.String("year", "", "league year (YYYY)")
	from := fs.String("from", "", "first date (YYYY-MM-DD)")
	to := fs.String("to", "", "last date inclusive (YYYY-MM-DD)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	dates, err := dateRange(*from, *to)
	if err != nil {
		return err
	}
	seasonID, err := ensureSeason(ctx, application, *year)
	if err != nil {
		return err
	}
	result, err := application.Backfill.Backfill(ctx, seasonID, dates)
	if err != nil {
		return err
	}
	application.Logger.Info("backfill finished",
		"days_ingested", result.DaysIngested,
		"row_errors", result.RowErrors,
		"failed_dates", result.FailedDates,
	)
	return nil
}

func runAggregate(ctx context.Context, application *app.Application, args []string) error {
	fs := flag.NewFlagSet("aggregate", flag.ExitOnError)
	year := fs.String("year", "", "league year (YYYY)")
	date := fs.String("date", "", "stat date (YYYY-MM-DD)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	seasonID, err := ensureSeason(ctx, application, *year)
	if err != nil {
		return err
	}
	if err := application.Aggregation.RecomputeDay(ctx, *date, seasonID); err != nil {
		return err
	}
	application.Logger.Info("day aggregates recomputed", "date", *date)
	return nil
}

func runMatchNames(ctx context.Context, application *app.Application, args []string) error {
	fs := flag.NewFlagSet("match-names", flag.ExitOnError)
	year := fs.String("year", "", "league year (YYYY)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	seasonID, err := ensureSeason(ctx, application, *year)
	if err != nil {
		return err
	}
	result, err := application.NameMatch.MatchUnresolvedPlayers(ctx, seasonID)
	if err != nil {
		return err
	}
	application.Logger.Info("name matching finished",
		"processed", result.Processed,
		"matched", result.Matched,
		"still_unmatched", result.StillUnmatched,
	)
	return nil
}

func runAssignManager(ctx context.Context, application *app.Application, args []string) error {
	fs := flag.NewFlagSet("assign-manager", flag.ExitOnError)
	year := fs.String("year", "", "league year (YYYY)")
	team := fs.String("team", "", "external team id")
	name := fs.String("manager", "", "manager name")
	fromYear := fs.Int("from-year", 0, "first year the manager was active (defaults to -year)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	seasonID, err := ensureSeason(ctx, application, *year)
	if err != nil {
		return err
	}
	teamID, err := application.Identity.ResolveTeam(ctx, seasonID, *team)
	if err != nil {
		return err
	}

	activeFrom := *fromYear
	if activeFrom == 0 {
		activeFrom, _ = strconv.Atoi(*year)
	}
	if _, err := application.Managers.UpsertManager(ctx, manager.Manager{
		Name:           *name,
		ActiveFromYear: activeFrom,
	}); err != nil {
		return err
	}
	if err := application.Managers.AssignTeam(ctx, teamID, *name); err != nil {
		return err
	}
	application.Logger.Info("manager assigned", "team", *team, "manager", *name)
	return nil
}

func runReport(ctx context.Context, application *app.Application, args []string) error {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	year := fs.String("year", "", "league year (YYYY)")
	out := fs.String("out", "", "output path (defaults to season-report-<year>-<id>.json)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	seasonID, err := ensureSeason(ctx, application, *year)
	if err != nil {
		return err
	}
	rendered, err := application.Reports.RenderSeasonReport(ctx, seasonID)
	if err != nil {
		return err
	}

	path := *out
	if path == "" {
		id, err := idgen.NewRandomGenerator().NewID()
		if err != nil {
			return fmt.Errorf("generate report id: %w", err)
		}
		path = fmt.Sprintf("season-report-%s-%s.json", *year, id[:8])
	}
	if err := os.WriteFile(path, rendered, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	application.Logger.Info("season report written", "path", path, "bytes", len(rendered))
	return nil
}

func parseFile[T any](path string, parse func(r io.Reader) ([]T, error)) ([]T, error) {
	if path == "" {
		return nil, fmt.Errorf("-file is required")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	rows, err := parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return rows, nil
}

func dateRange(from, to string) ([]string, error) {
	start, err := time.Parse(dateLayout, from)
	if err != nil {
		return nil, fmt.Errorf("invalid -from date %q: %w", from, err)
	}
	end, err := time.Parse(dateLayout, to)
	if err != nil {
		return nil, fmt.Errorf("invalid -to date %q: %w", to, err)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("-to is before -from")
	}

	var dates []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(dateLayout))
	}
	return dates, nil
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `usage: pipeline <command> [flags]

commands:
  ingest-teams      -year YYYY -file teams.html
  ingest-schedule   -year YYYY -file schedule.html
  ingest-standings  -year YYYY -file standings.html
  ingest-stats      -year YYYY -file stats.html
  ingest-roster     -year YYYY -file roster.html
  ingest-day        -year YYYY -date YYYY-MM-DD
  ingest-mlb        -date YYYY-MM-DD
  backfill          -year YYYY -from YYYY-MM-DD -to YYYY-MM-DD
  aggregate         -year YYYY -date YYYY-MM-DD
  match-names       -year YYYY
  assign-manager    -year YYYY -team ID -manager NAME [-from-year YYYY]
  report            -year YYYY [-out report.json]`)
}
