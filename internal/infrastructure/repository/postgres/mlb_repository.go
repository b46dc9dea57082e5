package postgres

import (
	"context"
	"fmt"

	"github.com/mlasky/diamondsync/internal/domain/mlb"
	qb "github.com/mlasky/diamondsync/internal/platform/querybuilder"
)

type MLBRepository struct {
	store *Store
}

func NewMLBRepository(store *Store) *MLBRepository {
	return &MLBRepository{store: store}
}

func (r *MLBRepository) UpsertGame(ctx context.Context, item mlb.Game) (mlb.Game, error) {
	insertModel := mlbGameInsertModel{
		GamePk:    item.GamePk,
		GameDate:  item.GameDate,
		HomeTeam:  item.HomeTeam,
		AwayTeam:  item.AwayTeam,
		HomeScore: item.HomeScore,
		AwayScore: item.AwayScore,
		Status:    item.Status,
	}
	query, args, err := qb.InsertModel("mlb_games", insertModel, `ON CONFLICT (game_pk)
DO UPDATE SET
    game_date = EXCLUDED.game_date,
    home_team = EXCLUDED.home_team,
    away_team = EXCLUDED.away_team,
    home_score = EXCLUDED.home_score,
    away_score = EXCLUDED.away_score,
    status = EXCLUDED.status,
    updated_at = NOW()
RETURNING id`)
	if err != nil {
		return mlb.Game{}, fmt.Errorf("build upsert mlb game query: %w", err)
	}

	if err := r.store.session(ctx).GetContext(ctx, &item.ID, query, args...); err != nil {
		return mlb.Game{}, fmt.Errorf("upsert mlb game pk=%d: %w", item.GamePk, err)
	}
	return item, nil
}

func (r *MLBRepository) UpsertBatterStat(ctx context.Context, item mlb.BatterGameStat) (mlb.BatterGameStat, error) {
	insertModel := batterGameStatInsertModel{
		GamePk:         item.GamePk,
		PlayerID:       item.PlayerID,
		TeamID:         item.TeamID,
		PlayerName:     item.PlayerName,
		AtBats:         item.AtBats,
		Hits:           item.Hits,
		Runs:           item.Runs,
		Doubles:        item.Doubles,
		Triples:        item.Triples,
		HomeRuns:       item.HomeRuns,
		RBI:            item.RBI,
		Walks:          item.Walks,
		StolenBases:    item.StolenBases,
		CaughtStealing: item.CaughtStealing,
	}
	query, args, err := qb.InsertModel("batter_game_stats", insertModel, `ON CONFLICT (game_pk, player_id, team_id)
DO UPDATE SET
    player_name = EXCLUDED.player_name,
    at_bats = EXCLUDED.at_bats,
    hits = EXCLUDED.hits,
    runs = EXCLUDED.runs,
    doubles = EXCLUDED.doubles,
    triples = EXCLUDED.triples,
    home_runs = EXCLUDED.home_runs,
    rbi = EXCLUDED.rbi,
    walks = EXCLUDED.walks,
    stolen_bases = EXCLUDED.stolen_bases,
    caught_stealing = EXCLUDED.caught_stealing,
    updated_at = NOW()
RETURNING id`)
	if err != nil {
		return mlb.BatterGameStat{}, fmt.Errorf("build upsert batter stat query: %w", err)
	}

	if err := r.store.session(ctx).GetContext(ctx, &item.ID, query, args...); err != nil {
		return mlb.BatterGameStat{}, fmt.Errorf("upsert batter stat game=%d player=%d: %w", item.GamePk, item.PlayerID, err)
	}
	return item, nil
}

func (r *MLBRepository) ListGamesByDate(ctx context.Context, gameDate string) ([]mlb.Game, error) {
	query, args, err := qb.Select("*").From("mlb_games").
		Where(qb.Eq("game_date", gameDate)).
		OrderBy("game_pk").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list mlb games query: %w", err)
	}

	var rows []mlbGameTableModel
	if err := r.store.session(ctx).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list mlb games: %w", err)
	}

	out := make([]mlb.Game, 0, len(rows))
	for _, row := range rows {
		out = append(out, mlb.Game{
			ID:        row.ID,
			GamePk:    row.GamePk,
			GameDate:  row.GameDate,
			HomeTeam:  row.HomeTeam,
			AwayTeam:  row.AwayTeam,
			HomeScore: row.HomeScore,
			AwayScore: row.AwayScore,
			Status:    row.Status,
		})
	}
	return out, nil
}
