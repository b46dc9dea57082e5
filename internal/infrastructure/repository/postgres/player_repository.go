package postgres

import (
	"context"
	"fmt"

	"github.com/mlasky/diamondsync/internal/domain/player"
	qb "github.com/mlasky/diamondsync/internal/platform/querybuilder"
)

type PlayerRepository struct {
	store *Store
}

func NewPlayerRepository(store *Store) *PlayerRepository {
	return &PlayerRepository{store: store}
}

// Upsert merges by external_player_id. Callers only upsert players whose
// platform id is known; identities for id-less historical rosters are
// resolved against existing rows by normalized name instead.
func (r *PlayerRepository) Upsert(ctx context.Context, item player.Player) (player.Player, error) {
	insertModel := playerInsertModel{
		ExternalPlayerID: item.ExternalPlayerID,
		FullName:         item.FullName,
		NormalizedName:   item.NormalizedName,
		MLBTeamAbbrev:    item.MLBTeamAbbrev,
		BatSide:          item.BatSide,
	}
	query, args, err := qb.InsertModel("players", insertModel, `ON CONFLICT (external_player_id)
DO UPDATE SET
    full_name = EXCLUDED.full_name,
    normalized_name = EXCLUDED.normalized_name,
    mlb_team_abbrev = CASE WHEN EXCLUDED.mlb_team_abbrev = '' THEN players.mlb_team_abbrev ELSE EXCLUDED.mlb_team_abbrev END,
    bat_side = CASE WHEN EXCLUDED.bat_side = '' THEN players.bat_side ELSE EXCLUDED.bat_side END,
    updated_at = NOW()
RETURNING id, mlb_team_abbrev, bat_side`)
	if err != nil {
		return player.Player{}, fmt.Errorf("build upsert player query: %w", err)
	}

	var returned struct {
		ID            int64  `db:"id"`
		MLBTeamAbbrev string `db:"mlb_team_abbrev"`
		BatSide       string `db:"bat_side"`
	}
	if err := r.store.session(ctx).GetContext(ctx, &returned, query, args...); err != nil {
		return player.Player{}, fmt.Errorf("upsert player external_id=%s: %w", item.ExternalPlayerID, err)
	}

	item.ID = returned.ID
	item.MLBTeamAbbrev = returned.MLBTeamAbbrev
	item.BatSide = returned.BatSide
	return item, nil
}

func (r *PlayerRepository) GetByExternalID(ctx context.Context, externalPlayerID string) (player.Player, bool, error) {
	return r.getOne(ctx, qb.Eq("external_player_id", externalPlayerID))
}

func (r *PlayerRepository) GetByNormalizedName(ctx context.Context, normalizedName string) (player.Player, bool, error) {
	return r.getOne(ctx, qb.Eq("normalized_name", normalizedName))
}

func (r *PlayerRepository) FindByNormalizedPrefix(ctx context.Context, prefix string) (player.Player, bool, error) {
	return r.getOne(ctx, qb.Expr("normalized_name LIKE ?", prefix+"%"))
}

func (r *PlayerRepository) getOne(ctx context.Context, cond qb.Condition) (player.Player, bool, error) {
	query, args, err := qb.Select("*").From("players").
		Where(cond).
		OrderBy("id").
		Limit(1).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build select player query: %w", err)
	}

	var row playerTableModel
	if err := r.store.session(ctx).GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("select player: %w", err)
	}

	return player.Player{
		ID:               row.ID,
		ExternalPlayerID: row.ExternalPlayerID,
		FullName:         row.FullName,
		NormalizedName:   row.NormalizedName,
		MLBTeamAbbrev:    row.MLBTeamAbbrev,
		BatSide:          row.BatSide,
	}, true, nil
}
