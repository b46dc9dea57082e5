package postgres

import (
	"context"
	"fmt"

	"github.com/mlasky/diamondsync/internal/domain/standing"
	qb "github.com/mlasky/diamondsync/internal/platform/querybuilder"
)

type StandingRepository struct {
	store *Store
}

func NewStandingRepository(store *Store) *StandingRepository {
	return &StandingRepository{store: store}
}

// Upsert replaces the row wholesale by (season_id, team_id). Standings
// are a point-in-time table snapshot with no partially-known fields.
func (r *StandingRepository) Upsert(ctx context.Context, item standing.Standing) (standing.Standing, error) {
	insertModel := standingInsertModel{
		SeasonID:       item.SeasonID,
		TeamID:         item.TeamID,
		Rank:           item.Rank,
		Wins:           item.Wins,
		Losses:         item.Losses,
		Ties:           item.Ties,
		WinPercentage:  item.WinPercentage,
		DivisionRecord: item.DivisionRecord,
		GamesBack:      item.GamesBack,
		WaiverPosition: item.WaiverPosition,
		PointsFor:      item.PointsFor,
		PointsAgainst:  item.PointsAgainst,
		Streak:         item.Streak,
	}
	query, args, err := qb.InsertModel("standings", insertModel, `ON CONFLICT (season_id, team_id)
DO UPDATE SET
    rank = EXCLUDED.rank,
    wins = EXCLUDED.wins,
    losses = EXCLUDED.losses,
    ties = EXCLUDED.ties,
    win_percentage = EXCLUDED.win_percentage,
    division_record = EXCLUDED.division_record,
    games_back = EXCLUDED.games_back,
    waiver_position = EXCLUDED.waiver_position,
    points_for = EXCLUDED.points_for,
    points_against = EXCLUDED.points_against,
    streak = EXCLUDED.streak,
    updated_at = NOW()
RETURNING id`)
	if err != nil {
		return standing.Standing{}, fmt.Errorf("build upsert standing query: %w", err)
	}

	if err := r.store.session(ctx).GetContext(ctx, &item.ID, query, args...); err != nil {
		return standing.Standing{}, fmt.Errorf("upsert standing season=%d team=%d: %w", item.SeasonID, item.TeamID, err)
	}
	return item, nil
}

func (r *StandingRepository) ListBySeason(ctx context.Context, seasonID int64) ([]standing.Standing, error) {
	query, args, err := qb.Select("*").From("standings").
		Where(qb.Eq("season_id", seasonID)).
		OrderBy("rank", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list standings query: %w", err)
	}

	var rows []standingTableModel
	if err := r.store.session(ctx).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list standings: %w", err)
	}

	out := make([]standing.Standing, 0, len(rows))
	for _, row := range rows {
		out = append(out, standing.Standing{
			ID:             row.ID,
			SeasonID:       row.SeasonID,
			TeamID:         row.TeamID,
			Rank:           row.Rank,
			Wins:           row.Wins,
			Losses:         row.Losses,
			Ties:           row.Ties,
			WinPercentage:  row.WinPercentage,
			DivisionRecord: row.DivisionRecord,
			GamesBack:      row.GamesBack,
			WaiverPosition: row.WaiverPosition,
			PointsFor:      row.PointsFor,
			PointsAgainst:  row.PointsAgainst,
			Streak:         row.Streak,
		})
	}
	return out, nil
}
