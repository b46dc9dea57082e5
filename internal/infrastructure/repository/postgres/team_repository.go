package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mlasky/diamondsync/internal/domain/team"
	qb "github.com/mlasky/diamondsync/internal/platform/querybuilder"
)

type TeamRepository struct {
	store *Store
}

func NewTeamRepository(store *Store) *TeamRepository {
	return &TeamRepository{store: store}
}

// Upsert merges by (season_id, external_team_id). An empty incoming
// icon_url keeps the stored one; manager_id is out of scope for scrape
// upserts and never appears in the statement.
func (r *TeamRepository) Upsert(ctx context.Context, item team.Team) (team.Team, error) {
	insertModel := teamInsertModel{
		SeasonID:       item.SeasonID,
		ExternalTeamID: item.ExternalTeamID,
		Name:           item.Name,
		IconURL:        item.IconURL,
	}
	query, args, err := qb.InsertModel("teams", insertModel, `ON CONFLICT (season_id, external_team_id)
DO UPDATE SET
    name = EXCLUDED.name,
    icon_url = CASE WHEN EXCLUDED.icon_url = '' THEN teams.icon_url ELSE EXCLUDED.icon_url END,
    updated_at = NOW()
RETURNING id, icon_url, manager_id`)
	if err != nil {
		return team.Team{}, fmt.Errorf("build upsert team query: %w", err)
	}

	var returned struct {
		ID        int64         `db:"id"`
		IconURL   string        `db:"icon_url"`
		ManagerID sql.NullInt64 `db:"manager_id"`
	}
	if err := r.store.session(ctx).GetContext(ctx, &returned, query, args...); err != nil {
		return team.Team{}, fmt.Errorf("upsert team external_id=%s season=%d: %w", item.ExternalTeamID, item.SeasonID, err)
	}

	item.ID = returned.ID
	item.IconURL = returned.IconURL
	item.ManagerID = nullInt64ToPtr(returned.ManagerID)
	return item, nil
}

func (r *TeamRepository) GetByExternalID(ctx context.Context, seasonID int64, externalTeamID string) (team.Team, bool, error) {
	return r.getOne(ctx, qb.Eq("season_id", seasonID), qb.Eq("external_team_id", externalTeamID))
}

func (r *TeamRepository) GetByID(ctx context.Context, id int64) (team.Team, bool, error) {
	return r.getOne(ctx, qb.Eq("id", id))
}

func (r *TeamRepository) getOne(ctx context.Context, conds ...qb.Condition) (team.Team, bool, error) {
	query, args, err := qb.Select("*").From("teams").Where(conds...).Limit(1).ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build select team query: %w", err)
	}

	var row teamTableModel
	if err := r.store.session(ctx).GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("select team: %w", err)
	}
	return teamFromRow(row), true, nil
}

func (r *TeamRepository) ListBySeason(ctx context.Context, seasonID int64) ([]team.Team, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(qb.Eq("season_id", seasonID)).
		OrderBy("name", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.store.session(ctx).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list teams by season: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamFromRow(row))
	}
	return out, nil
}

func (r *TeamRepository) AssignManager(ctx context.Context, teamID, managerID int64) error {
	query, args, err := qb.Update("teams").
		Set("manager_id", managerID).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", teamID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build assign manager query: %w", err)
	}

	res, err := r.store.session(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("assign manager team=%d: %w", teamID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("assign manager rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("assign manager: team %d not found", teamID)
	}
	return nil
}

func teamFromRow(row teamTableModel) team.Team {
	return team.Team{
		ID:             row.ID,
		SeasonID:       row.SeasonID,
		ExternalTeamID: row.ExternalTeamID,
		Name:           row.Name,
		IconURL:        row.IconURL,
		ManagerID:      nullInt64ToPtr(row.ManagerID),
	}
}
