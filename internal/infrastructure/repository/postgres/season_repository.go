package postgres

import (
	"context"
	"fmt"

	"github.com/mlasky/diamondsync/internal/domain/season"
	qb "github.com/mlasky/diamondsync/internal/platform/querybuilder"
)

type SeasonRepository struct {
	store *Store
}

func NewSeasonRepository(store *Store) *SeasonRepository {
	return &SeasonRepository{store: store}
}

func (r *SeasonRepository) Upsert(ctx context.Context, item season.Season) (season.Season, error) {
	insertModel := seasonInsertModel{
		Year:             item.Year,
		ExternalLeagueID: item.ExternalLeagueID,
		DisplayName:      item.DisplayName,
	}
	// The external league id is the season's identity and never changes
	// once discovered; year and display name may be refreshed.
	query, args, err := qb.InsertModel("seasons", insertModel, `ON CONFLICT (external_league_id)
DO UPDATE SET
    year = EXCLUDED.year,
    display_name = EXCLUDED.display_name,
    updated_at = NOW()
RETURNING id`)
	if err != nil {
		return season.Season{}, fmt.Errorf("build upsert season query: %w", err)
	}

	if err := r.store.session(ctx).GetContext(ctx, &item.ID, query, args...); err != nil {
		return season.Season{}, fmt.Errorf("upsert season league=%s: %w", item.ExternalLeagueID, err)
	}
	return item, nil
}

func (r *SeasonRepository) GetByExternalLeagueID(ctx context.Context, externalLeagueID string) (season.Season, bool, error) {
	return r.getOne(ctx, qb.Eq("external_league_id", externalLeagueID))
}

func (r *SeasonRepository) GetByID(ctx context.Context, id int64) (season.Season, bool, error) {
	return r.getOne(ctx, qb.Eq("id", id))
}

func (r *SeasonRepository) getOne(ctx context.Context, cond qb.Condition) (season.Season, bool, error) {
	query, args, err := qb.Select("*").From("seasons").Where(cond).Limit(1).ToSQL()
	if err != nil {
		return season.Season{}, false, fmt.Errorf("build select season query: %w", err)
	}

	var row seasonTableModel
	if err := r.store.session(ctx).GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return season.Season{}, false, nil
		}
		return season.Season{}, false, fmt.Errorf("select season: %w", err)
	}
	return seasonFromRow(row), true, nil
}

func (r *SeasonRepository) List(ctx context.Context) ([]season.Season, error) {
	query, args, err := qb.Select("*").From("seasons").OrderBy("year").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list seasons query: %w", err)
	}

	var rows []seasonTableModel
	if err := r.store.session(ctx).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list seasons: %w", err)
	}

	out := make([]season.Season, 0, len(rows))
	for _, row := range rows {
		out = append(out, seasonFromRow(row))
	}
	return out, nil
}

func seasonFromRow(row seasonTableModel) season.Season {
	return season.Season{
		ID:               row.ID,
		Year:             row.Year,
		ExternalLeagueID: row.ExternalLeagueID,
		DisplayName:      row.DisplayName,
	}
}
