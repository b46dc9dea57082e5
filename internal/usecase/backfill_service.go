package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/mlasky/diamondsync/internal/platform/logging"
)

// DayParser turns an archived scrape of one date into raw player rows.
// Parsing is CPU-bound and safe to run concurrently; ingestion is not.
type DayParser interface {
	ParseDay(ctx context.Context, statDate string) ([]RawPlayerDayRow, error)
}

// BackfillService replays a range of historical dates: parse every
// date's archive concurrently, then ingest date by date so the store
// keeps its single-writer discipline.
type BackfillService struct {
	parser    DayParser
	reconcile *ReconcileService
	workers   int
	logger    *logging.Logger
}

func NewBackfillService(parser DayParser, reconcile *ReconcileService, workers int, logger *logging.Logger) *BackfillService {
	if workers <= 0 {
		workers = 4
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &BackfillService{
		parser:    parser,
		reconcile: reconcile,
		workers:   workers,
		logger:    logger,
	}
}

// BackfillResult summarizes one replay run. FailedDates lists dates
// whose parse or ingest failed outright; row-level skips inside an
// otherwise-committed date count into RowErrors.
type BackfillResult struct {
	DaysIngested int
	RowErrors    int
	FailedDates  []string
}

func (s *BackfillService) Backfill(ctx context.Context, seasonID int64, dates []string) (BackfillResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BackfillService.Backfill")
	defer span.End()

	var result BackfillResult
	if seasonID <= 0 {
		return result, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}

	cleaned := make([]string, 0, len(dates))
	for _, date := range dates {
		if date = strings.TrimSpace(date); date != "" {
			cleaned = append(cleaned, date)
		}
	}
	if len(cleaned) == 0 {
		return result, nil
	}
	sort.Strings(cleaned)

	pool, err := ants.NewPool(s.workers)
	if err != nil {
		return result, fmt.Errorf("create parse pool: %w", err)
	}
	defer pool.Release()

	var (
		mu        sync.Mutex
		wg        sync.WaitGroup
		parsed    = make(map[string][]RawPlayerDayRow, len(cleaned))
		parseErrs = make(map[string]error)
	)
	for _, date := range cleaned {
		date := date
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			rows, err := s.parser.ParseDay(ctx, date)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				parseErrs[date] = err
				return
			}
			parsed[date] = rows
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			parseErrs[date] = fmt.Errorf("submit parse job: %w", submitErr)
			mu.Unlock()
		}
	}
	wg.Wait()

	for _, date := range cleaned {
		if err := parseErrs[date]; err != nil {
			result.FailedDates = append(result.FailedDates, date)
			s.logger.WarnContext(ctx, "backfill parse failed", "date", date, "error", err.Error())
			continue
		}

		batch, err := s.reconcile.IngestDay(ctx, seasonID, date, parsed[date])
		if err != nil {
			result.FailedDates = append(result.FailedDates, date)
			s.logger.ErrorContext(ctx, "backfill ingest failed", "date", date, "error", err.Error())
			continue
		}
		result.DaysIngested++
		result.RowErrors += len(batch.Errors)
	}

	s.logger.InfoContext(ctx, "backfill finished",
		"season_id", seasonID,
		"days_ingested", result.DaysIngested,
		"row_errors", result.RowErrors,
		"failed_dates", len(result.FailedDates),
	)
	return result, nil
}
