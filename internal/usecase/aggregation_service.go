package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/mlasky/diamondsync/internal/domain/dailystat"
	"github.com/mlasky/diamondsync/internal/domain/matchup"
	"github.com/mlasky/diamondsync/internal/platform/resilience"
)

// AggregationService recomputes the derived daily tables from raw
// player lines. Derived rows are never edited directly: every change to
// a day's player stats flows through a recompute.
type AggregationService struct {
	tx          TxRunner
	dailyRepo   dailystat.Repository
	matchupRepo matchup.Repository
	recomputes  resilience.SingleFlight
}

func NewAggregationService(tx TxRunner, dailyRepo dailystat.Repository, matchupRepo matchup.Repository) *AggregationService {
	return &AggregationService{
		tx:          tx,
		dailyRepo:   dailyRepo,
		matchupRepo: matchupRepo,
	}
}

// RecomputeTeamDaily folds the active player lines for one (date, team)
// into the team's daily aggregate and upserts it. A team with no active
// rows still gets a zero row, so downstream matchup scoring sees an
// explicit 0 rather than a missing aggregate.
func (s *AggregationService) RecomputeTeamDaily(ctx context.Context, statDate string, fantasyTeamID, seasonID int64) (dailystat.TeamDay, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AggregationService.RecomputeTeamDaily")
	defer span.End()

	statDate = strings.TrimSpace(statDate)
	if statDate == "" || fantasyTeamID <= 0 {
		return dailystat.TeamDay{}, fmt.Errorf("%w: stat date and fantasy team id are required", ErrInvalidInput)
	}

	summed, found, err := s.dailyRepo.SumTeamDay(ctx, statDate, fantasyTeamID)
	if err != nil {
		return dailystat.TeamDay{}, fmt.Errorf("sum team day: %w", err)
	}
	if !found {
		summed = dailystat.TeamDay{
			StatDate:      statDate,
			FantasyTeamID: fantasyTeamID,
			SeasonID:      seasonID,
		}
	}

	stored, err := s.dailyRepo.UpsertTeamDay(ctx, summed)
	if err != nil {
		return dailystat.TeamDay{}, fmt.Errorf("upsert team day: %w", err)
	}
	return stored, nil
}

// RecomputeMatchupResults scores every matchup scheduled for the day's
// period from the persisted team aggregates. A scheduled team with no
// aggregate that day scores 0. Returns the number of matchups written;
// 0 with no error when the day has no player rows at all.
func (s *AggregationService) RecomputeMatchupResults(ctx context.Context, statDate string, seasonID int64) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AggregationService.RecomputeMatchupResults")
	defer span.End()

	statDate = strings.TrimSpace(statDate)
	if statDate == "" || seasonID <= 0 {
		return 0, fmt.Errorf("%w: stat date and season id are required", ErrInvalidInput)
	}

	periodNumber, found, err := s.dailyRepo.PeriodForDay(ctx, statDate, seasonID)
	if err != nil {
		return 0, fmt.Errorf("resolve period for day: %w", err)
	}
	if !found {
		return 0, nil
	}

	matchups, err := s.matchupRepo.ListBySeasonPeriod(ctx, seasonID, periodNumber)
	if err != nil {
		return 0, fmt.Errorf("list matchups for period: %w", err)
	}

	teamDays, err := s.dailyRepo.ListTeamDays(ctx, statDate, seasonID)
	if err != nil {
		return 0, fmt.Errorf("list team days: %w", err)
	}
	pointsByTeam := make(map[int64]float64, len(teamDays))
	for _, item := range teamDays {
		pointsByTeam[item.FantasyTeamID] = item.TotalPoints
	}

	updated := 0
	for _, m := range matchups {
		_, err := s.dailyRepo.UpsertMatchupDay(ctx, dailystat.MatchupDay{
			StatDate:          statDate,
			SeasonID:          seasonID,
			PeriodNumber:      periodNumber,
			ExternalMatchupID: m.ExternalMatchupID,
			AwayTeamID:        m.AwayTeamID,
			HomeTeamID:        m.HomeTeamID,
			AwayPoints:        pointsByTeam[m.AwayTeamID],
			HomePoints:        pointsByTeam[m.HomeTeamID],
		})
		if err != nil {
			return updated, fmt.Errorf("upsert matchup day away=%d home=%d: %w", m.AwayTeamID, m.HomeTeamID, err)
		}
		updated++
	}
	return updated, nil
}

// RecomputeDay re-derives every team aggregate and matchup score for a
// date. Concurrent requests for the same (date, season) collapse into
// one recompute via singleflight.
func (s *AggregationService) RecomputeDay(ctx context.Context, statDate string, seasonID int64) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.AggregationService.RecomputeDay")
	defer span.End()

	key := fmt.Sprintf("recompute-day:%d:%s", seasonID, statDate)
	_, err, _ := s.recomputes.Do(key, func() (any, error) {
		return nil, s.tx.WithTx(ctx, func(ctx context.Context) error {
			teamIDs, err := s.dailyRepo.ListTeamIDsForDay(ctx, statDate, seasonID)
			if err != nil {
				return fmt.Errorf("list team ids for day: %w", err)
			}
			for _, teamID := range teamIDs {
				if _, err := s.RecomputeTeamDaily(ctx, statDate, teamID, seasonID); err != nil {
					return err
				}
			}
			if _, err := s.RecomputeMatchupResults(ctx, statDate, seasonID); err != nil {
				return err
			}
			return nil
		})
	})
	return err
}

// ReplaceDayData hard-deletes the raw and derived rows of one date so a
// re-ingest starts clean. Joins the caller's transaction: a failure
// mid-delete rolls back the whole unit, never leaving a half-cleared day.
func (s *AggregationService) ReplaceDayData(ctx context.Context, statDate string, seasonID int64) (int64, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AggregationService.ReplaceDayData")
	defer span.End()

	statDate = strings.TrimSpace(statDate)
	if statDate == "" || seasonID <= 0 {
		return 0, fmt.Errorf("%w: stat date and season id are required", ErrInvalidInput)
	}

	var deleted int64
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		n, err := s.dailyRepo.DeleteDay(ctx, statDate, seasonID)
		if err != nil {
			return fmt.Errorf("delete day data: %w", err)
		}
		deleted = n
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}
