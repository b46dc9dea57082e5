package postgres

import (
	"context"
	"fmt"

	"github.com/mlasky/diamondsync/internal/domain/matchup"
	qb "github.com/mlasky/diamondsync/internal/platform/querybuilder"
)

type MatchupRepository struct {
	store *Store
}

func NewMatchupRepository(store *Store) *MatchupRepository {
	return &MatchupRepository{store: store}
}

// Upsert merges by the directed pairing key. Empty date_range or
// external_matchup_id keeps the stored value, so a sparse historical
// scrape cannot blank out fields a richer scrape filled earlier.
func (r *MatchupRepository) Upsert(ctx context.Context, item matchup.Matchup) (matchup.Matchup, error) {
	insertModel := matchupInsertModel{
		SeasonID:          item.SeasonID,
		PeriodNumber:      item.PeriodNumber,
		PeriodType:        matchup.NormalizePeriodType(item.PeriodType),
		DateRange:         item.DateRange,
		AwayTeamID:        item.AwayTeamID,
		HomeTeamID:        item.HomeTeamID,
		ExternalMatchupID: item.ExternalMatchupID,
	}
	query, args, err := qb.InsertModel("matchups", insertModel, `ON CONFLICT (season_id, period_number, away_team_id, home_team_id)
DO UPDATE SET
    period_type = EXCLUDED.period_type,
    date_range = CASE WHEN EXCLUDED.date_range = '' THEN matchups.date_range ELSE EXCLUDED.date_range END,
    external_matchup_id = CASE WHEN EXCLUDED.external_matchup_id = '' THEN matchups.external_matchup_id ELSE EXCLUDED.external_matchup_id END,
    updated_at = NOW()
RETURNING id, date_range, external_matchup_id`)
	if err != nil {
		return matchup.Matchup{}, fmt.Errorf("build upsert matchup query: %w", err)
	}

	var returned struct {
		ID                int64  `db:"id"`
		DateRange         string `db:"date_range"`
		ExternalMatchupID string `db:"external_matchup_id"`
	}
	if err := r.store.session(ctx).GetContext(ctx, &returned, query, args...); err != nil {
		return matchup.Matchup{}, fmt.Errorf("upsert matchup season=%d period=%s away=%d home=%d: %w",
			item.SeasonID, item.PeriodNumber, item.AwayTeamID, item.HomeTeamID, err)
	}

	item.ID = returned.ID
	item.PeriodType = insertModel.PeriodType
	item.DateRange = returned.DateRange
	item.ExternalMatchupID = returned.ExternalMatchupID
	return item, nil
}

func (r *MatchupRepository) ListBySeasonPeriod(ctx context.Context, seasonID int64, periodNumber string) ([]matchup.Matchup, error) {
	return r.list(ctx, qb.Eq("season_id", seasonID), qb.Eq("period_number", periodNumber))
}

func (r *MatchupRepository) ListBySeason(ctx context.Context, seasonID int64) ([]matchup.Matchup, error) {
	return r.list(ctx, qb.Eq("season_id", seasonID))
}

func (r *MatchupRepository) list(ctx context.Context, conds ...qb.Condition) ([]matchup.Matchup, error) {
	query, args, err := qb.Select("*").From("matchups").
		Where(conds...).
		OrderBy("period_number", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list matchups query: %w", err)
	}

	var rows []matchupTableModel
	if err := r.store.session(ctx).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list matchups: %w", err)
	}

	out := make([]matchup.Matchup, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchup.Matchup{
			ID:                row.ID,
			SeasonID:          row.SeasonID,
			PeriodNumber:      row.PeriodNumber,
			PeriodType:        row.PeriodType,
			DateRange:         row.DateRange,
			AwayTeamID:        row.AwayTeamID,
			HomeTeamID:        row.HomeTeamID,
			ExternalMatchupID: row.ExternalMatchupID,
		})
	}
	return out, nil
}
