package postgres

import (
	"context"
	"fmt"

	"github.com/mlasky/diamondsync/internal/domain/roster"
	qb "github.com/mlasky/diamondsync/internal/platform/querybuilder"
)

type RosterRepository struct {
	store *Store
}

func NewRosterRepository(store *Store) *RosterRepository {
	return &RosterRepository{store: store}
}

// Upsert merges by the slot key. COALESCE on player_id keeps a resolved
// identity when the incoming entry carries none, so a re-scrape of an
// old season cannot undo name-matching work.
func (r *RosterRepository) Upsert(ctx context.Context, item roster.Entry) (roster.Entry, error) {
	insertModel := rosterEntryInsertModel{
		SeasonID:             item.SeasonID,
		TeamID:               item.TeamID,
		PeriodNumber:         item.PeriodNumber,
		PlayerID:             item.PlayerID,
		PositionCode:         item.PositionCode,
		RosterSlot:           item.RosterSlot,
		IsActive:             item.IsActive,
		PlayerNameRaw:        item.PlayerNameRaw,
		PlayerNameNormalized: item.PlayerNameNormalized,
		MLBTeamAbbrev:        item.MLBTeamAbbrev,
		BatSide:              item.BatSide,
		ExternalPlayerID:     item.ExternalPlayerID,
		PitchingStaffID:      item.PitchingStaffID,
	}
	query, args, err := qb.InsertModel("roster_entries", insertModel, `ON CONFLICT (season_id, team_id, period_number, position_code, roster_slot)
DO UPDATE SET
    player_id = COALESCE(EXCLUDED.player_id, roster_entries.player_id),
    is_active = EXCLUDED.is_active,
    player_name_raw = EXCLUDED.player_name_raw,
    player_name_normalized = EXCLUDED.player_name_normalized,
    mlb_team_abbrev = EXCLUDED.mlb_team_abbrev,
    bat_side = CASE WHEN EXCLUDED.bat_side = '' THEN roster_entries.bat_side ELSE EXCLUDED.bat_side END,
    external_player_id = CASE WHEN EXCLUDED.external_player_id = '' THEN roster_entries.external_player_id ELSE EXCLUDED.external_player_id END,
    pitching_staff_id = COALESCE(EXCLUDED.pitching_staff_id, roster_entries.pitching_staff_id),
    updated_at = NOW()
RETURNING id, player_id, bat_side, external_player_id, pitching_staff_id`)
	if err != nil {
		return roster.Entry{}, fmt.Errorf("build upsert roster entry query: %w", err)
	}

	var returned rosterEntryTableModel
	if err := r.store.session(ctx).GetContext(ctx, &returned, query, args...); err != nil {
		return roster.Entry{}, fmt.Errorf("upsert roster entry team=%d period=%s slot=%s/%d: %w",
			item.TeamID, item.PeriodNumber, item.PositionCode, item.RosterSlot, err)
	}

	item.ID = returned.ID
	item.PlayerID = nullInt64ToPtr(returned.PlayerID)
	item.BatSide = returned.BatSide
	item.ExternalPlayerID = returned.ExternalPlayerID
	item.PitchingStaffID = nullInt64ToPtr(returned.PitchingStaffID)
	return item, nil
}

func (r *RosterRepository) ListByTeamPeriod(ctx context.Context, teamID int64, periodNumber string) ([]roster.Entry, error) {
	return r.list(ctx, qb.Eq("team_id", teamID), qb.Eq("period_number", periodNumber))
}

func (r *RosterRepository) ListUnresolvedBySeason(ctx context.Context, seasonID int64) ([]roster.Entry, error) {
	return r.list(ctx,
		qb.Eq("season_id", seasonID),
		qb.IsNull("player_id"),
		qb.Expr("position_code <> ?", roster.PositionTeamPitching),
	)
}

func (r *RosterRepository) SetPlayerID(ctx context.Context, entryID, playerID int64) error {
	query, args, err := qb.Update("roster_entries").
		Set("player_id", playerID).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", entryID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build set roster player query: %w", err)
	}

	res, err := r.store.session(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("set roster player entry=%d: %w", entryID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set roster player rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("set roster player: entry %d not found", entryID)
	}
	return nil
}

func (r *RosterRepository) list(ctx context.Context, conds ...qb.Condition) ([]roster.Entry, error) {
	query, args, err := qb.Select("*").From("roster_entries").
		Where(conds...).
		OrderBy("team_id", "period_number", "position_code", "roster_slot").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list roster entries query: %w", err)
	}

	var rows []rosterEntryTableModel
	if err := r.store.session(ctx).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list roster entries: %w", err)
	}

	out := make([]roster.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, roster.Entry{
			ID:                   row.ID,
			SeasonID:             row.SeasonID,
			TeamID:               row.TeamID,
			PeriodNumber:         row.PeriodNumber,
			PlayerID:             nullInt64ToPtr(row.PlayerID),
			PositionCode:         row.PositionCode,
			RosterSlot:           row.RosterSlot,
			IsActive:             row.IsActive,
			PlayerNameRaw:        row.PlayerNameRaw,
			PlayerNameNormalized: row.PlayerNameNormalized,
			MLBTeamAbbrev:        row.MLBTeamAbbrev,
			BatSide:              row.BatSide,
			ExternalPlayerID:     row.ExternalPlayerID,
			PitchingStaffID:      nullInt64ToPtr(row.PitchingStaffID),
		})
	}
	return out, nil
}
