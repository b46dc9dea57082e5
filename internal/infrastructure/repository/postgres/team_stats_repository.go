package postgres

import (
	"context"
	"fmt"

	"github.com/mlasky/diamondsync/internal/domain/teamseason"
	qb "github.com/mlasky/diamondsync/internal/platform/querybuilder"
)

// TeamStatsRepository persists the three season-long stat tables. All
// three share the (season_id, team_id) key and replace-wholesale merge.
type TeamStatsRepository struct {
	store *Store
}

func NewTeamStatsRepository(store *Store) *TeamStatsRepository {
	return &TeamStatsRepository{store: store}
}

func (r *TeamStatsRepository) UpsertSeasonStat(ctx context.Context, item teamseason.SeasonStat) (teamseason.SeasonStat, error) {
	insertModel := teamSeasonStatInsertModel{
		SeasonID:       item.SeasonID,
		TeamID:         item.TeamID,
		GamesPlayed:    item.GamesPlayed,
		FantasyPoints:  item.FantasyPoints,
		HittingPoints:  item.HittingPoints,
		PitchingPoints: item.PitchingPoints,
	}
	query, args, err := qb.InsertModel("team_season_stats", insertModel, `ON CONFLICT (season_id, team_id)
DO UPDATE SET
    games_played = EXCLUDED.games_played,
    fantasy_points = EXCLUDED.fantasy_points,
    hitting_points = EXCLUDED.hitting_points,
    pitching_points = EXCLUDED.pitching_points,
    updated_at = NOW()
RETURNING id`)
	if err != nil {
		return teamseason.SeasonStat{}, fmt.Errorf("build upsert team season stat query: %w", err)
	}

	if err := r.store.session(ctx).GetContext(ctx, &item.ID, query, args...); err != nil {
		return teamseason.SeasonStat{}, fmt.Errorf("upsert team season stat season=%d team=%d: %w", item.SeasonID, item.TeamID, err)
	}
	return item, nil
}

func (r *TeamStatsRepository) UpsertHittingStat(ctx context.Context, item teamseason.HittingStat) (teamseason.HittingStat, error) {
	insertModel := teamHittingStatInsertModel{
		SeasonID:       item.SeasonID,
		TeamID:         item.TeamID,
		AtBats:         item.AtBats,
		Hits:           item.Hits,
		Runs:           item.Runs,
		Singles:        item.Singles,
		Doubles:        item.Doubles,
		Triples:        item.Triples,
		HomeRuns:       item.HomeRuns,
		RBI:            item.RBI,
		Walks:          item.Walks,
		StolenBases:    item.StolenBases,
		CaughtStealing: item.CaughtStealing,
		BattingAverage: item.BattingAverage,
	}
	query, args, err := qb.InsertModel("team_hitting_stats", insertModel, `ON CONFLICT (season_id, team_id)
DO UPDATE SET
    at_bats = EXCLUDED.at_bats,
    hits = EXCLUDED.hits,
    runs = EXCLUDED.runs,
    singles = EXCLUDED.singles,
    doubles = EXCLUDED.doubles,
    triples = EXCLUDED.triples,
    home_runs = EXCLUDED.home_runs,
    rbi = EXCLUDED.rbi,
    walks = EXCLUDED.walks,
    stolen_bases = EXCLUDED.stolen_bases,
    caught_stealing = EXCLUDED.caught_stealing,
    batting_average = EXCLUDED.batting_average,
    updated_at = NOW()
RETURNING id`)
	if err != nil {
		return teamseason.HittingStat{}, fmt.Errorf("build upsert team hitting stat query: %w", err)
	}

	if err := r.store.session(ctx).GetContext(ctx, &item.ID, query, args...); err != nil {
		return teamseason.HittingStat{}, fmt.Errorf("upsert team hitting stat season=%d team=%d: %w", item.SeasonID, item.TeamID, err)
	}
	return item, nil
}

func (r *TeamStatsRepository) UpsertPitchingStat(ctx context.Context, item teamseason.PitchingStat) (teamseason.PitchingStat, error) {
	insertModel := teamPitchingStatInsertModel{
		SeasonID:           item.SeasonID,
		TeamID:             item.TeamID,
		Wins:               item.Wins,
		InningsPitchedOuts: item.InningsPitchedOuts,
		EarnedRuns:         item.EarnedRuns,
		HitsAllowed:        item.HitsAllowed,
		WalksAllowed:       item.WalksAllowed,
		Strikeouts:         item.Strikeouts,
		ERA:                item.ERA,
	}
	query, args, err := qb.InsertModel("team_pitching_stats", insertModel, `ON CONFLICT (season_id, team_id)
DO UPDATE SET
    wins = EXCLUDED.wins,
    innings_pitched_outs = EXCLUDED.innings_pitched_outs,
    earned_runs = EXCLUDED.earned_runs,
    hits_allowed = EXCLUDED.hits_allowed,
    walks_allowed = EXCLUDED.walks_allowed,
    strikeouts = EXCLUDED.strikeouts,
    era = EXCLUDED.era,
    updated_at = NOW()
RETURNING id`)
	if err != nil {
		return teamseason.PitchingStat{}, fmt.Errorf("build upsert team pitching stat query: %w", err)
	}

	if err := r.store.session(ctx).GetContext(ctx, &item.ID, query, args...); err != nil {
		return teamseason.PitchingStat{}, fmt.Errorf("upsert team pitching stat season=%d team=%d: %w", item.SeasonID, item.TeamID, err)
	}
	return item, nil
}

func (r *TeamStatsRepository) ListSeasonStats(ctx context.Context, seasonID int64) ([]teamseason.SeasonStat, error) {
	query, args, err := qb.Select("id", "season_id", "team_id", "games_played", "fantasy_points", "hitting_points", "pitching_points").
		From("team_season_stats").
		Where(qb.Eq("season_id", seasonID)).
		OrderBy("fantasy_points DESC", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list team season stats query: %w", err)
	}

	var rows []teamSeasonStatTableModel
	if err := r.store.session(ctx).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list team season stats: %w", err)
	}

	out := make([]teamseason.SeasonStat, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamseason.SeasonStat{
			ID:             row.ID,
			SeasonID:       row.SeasonID,
			TeamID:         row.TeamID,
			GamesPlayed:    row.GamesPlayed,
			FantasyPoints:  row.FantasyPoints,
			HittingPoints:  row.HittingPoints,
			PitchingPoints: row.PitchingPoints,
		})
	}
	return out, nil
}
