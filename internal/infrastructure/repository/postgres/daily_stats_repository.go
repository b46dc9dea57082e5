package postgres

import (
	"context"
	"fmt"

	"github.com/mlasky/diamondsync/internal/domain/dailystat"
	"github.com/mlasky/diamondsync/internal/domain/roster"
	qb "github.com/mlasky/diamondsync/internal/platform/querybuilder"
)

// DailyStatsRepository persists the per-date stat tables: raw player
// lines plus the derived team and matchup aggregates.
type DailyStatsRepository struct {
	store *Store
}

func NewDailyStatsRepository(store *Store) *DailyStatsRepository {
	return &DailyStatsRepository{store: store}
}

func (r *DailyStatsRepository) UpsertPlayerDay(ctx context.Context, item dailystat.PlayerDay) (dailystat.PlayerDay, error) {
	insertModel := playerDayInsertModelFrom(item)
	query, args, err := qb.InsertModel("player_daily_stats", insertModel, `ON CONFLICT (stat_date, external_player_id, fantasy_team_id)
DO UPDATE SET
    mlb_team_abbrev = EXCLUDED.mlb_team_abbrev,
    season_id = EXCLUDED.season_id,
    period_number = EXCLUDED.period_number,
    position_played = EXCLUDED.position_played,
    is_active = EXCLUDED.is_active,
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
    wins = EXCLUDED.wins,
    innings_pitched_outs = EXCLUDED.innings_pitched_outs,
    earned_runs = EXCLUDED.earned_runs,
    hits_allowed = EXCLUDED.hits_allowed,
    walks_allowed = EXCLUDED.walks_allowed,
    hits_plus_walks = EXCLUDED.hits_plus_walks,
    strikeouts = EXCLUDED.strikeouts,
    fantasy_points = EXCLUDED.fantasy_points,
    updated_at = NOW()
RETURNING id`)
	if err != nil {
		return dailystat.PlayerDay{}, fmt.Errorf("build upsert player day query: %w", err)
	}

	if err := r.store.session(ctx).GetContext(ctx, &item.ID, query, args...); err != nil {
		return dailystat.PlayerDay{}, fmt.Errorf("upsert player day date=%s player=%s team=%d: %w",
			item.StatDate, item.ExternalPlayerID, item.FantasyTeamID, err)
	}
	return item, nil
}

func (r *DailyStatsRepository) ListPlayerDays(ctx context.Context, statDate string, fantasyTeamID int64) ([]dailystat.PlayerDay, error) {
	query, args, err := qb.Select("*").From("player_daily_stats").
		Where(qb.Eq("stat_date", statDate), qb.Eq("fantasy_team_id", fantasyTeamID)).
		OrderBy("position_played", "external_player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list player days query: %w", err)
	}

	var rows []playerDayTableModel
	if err := r.store.session(ctx).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list player days: %w", err)
	}

	out := make([]dailystat.PlayerDay, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerDayFromRow(row))
	}
	return out, nil
}

// SumTeamDay folds the active player lines of one team-date into a
// TeamDay. Team-pitching rows feed the pitching bucket, everything else
// the hitting bucket, matching how the league splits fantasy points.
func (r *DailyStatsRepository) SumTeamDay(ctx context.Context, statDate string, fantasyTeamID int64) (dailystat.TeamDay, bool, error) {
	hitting := fmt.Sprintf("CASE WHEN position_played <> '%s' THEN %%s ELSE 0 END", roster.PositionTeamPitching)
	pitching := fmt.Sprintf("CASE WHEN position_played = '%s' THEN %%s ELSE 0 END", roster.PositionTeamPitching)

	columns := []string{"COUNT(*) AS row_count"}
	for _, col := range []string{"at_bats", "hits", "runs", "singles", "doubles", "triples", "home_runs", "rbi", "walks", "stolen_bases", "caught_stealing"} {
		columns = append(columns, fmt.Sprintf("COALESCE(SUM("+hitting+"), 0) AS %s", col, col))
	}
	for _, col := range []string{"wins", "innings_pitched_outs", "earned_runs", "hits_allowed", "walks_allowed", "hits_plus_walks", "strikeouts"} {
		columns = append(columns, fmt.Sprintf("COALESCE(SUM("+pitching+"), 0) AS %s", col, col))
	}
	columns = append(columns,
		fmt.Sprintf("COALESCE(SUM("+hitting+"), 0) AS hitting_points", "fantasy_points"),
		fmt.Sprintf("COALESCE(SUM("+pitching+"), 0) AS pitching_points", "fantasy_points"),
		"COALESCE(MAX(season_id), 0) AS season_id",
		"COALESCE(MAX(period_number), '') AS period_number",
	)

	query, args, err := qb.Select(columns...).From("player_daily_stats").
		Where(
			qb.Eq("stat_date", statDate),
			qb.Eq("fantasy_team_id", fantasyTeamID),
			qb.Eq("is_active", true),
		).
		ToSQL()
	if err != nil {
		return dailystat.TeamDay{}, false, fmt.Errorf("build sum team day query: %w", err)
	}

	var row struct {
		RowCount int64 `db:"row_count"`
		teamDayInsertModel
	}
	if err := r.store.session(ctx).GetContext(ctx, &row, query, args...); err != nil {
		return dailystat.TeamDay{}, false, fmt.Errorf("sum team day date=%s team=%d: %w", statDate, fantasyTeamID, err)
	}
	if row.RowCount == 0 {
		return dailystat.TeamDay{}, false, nil
	}

	out := teamDayFromInsertModel(row.teamDayInsertModel)
	out.StatDate = statDate
	out.FantasyTeamID = fantasyTeamID
	out.TotalPoints = out.HittingPoints + out.PitchingPoints
	return out, true, nil
}

func (r *DailyStatsRepository) ListTeamIDsForDay(ctx context.Context, statDate string, seasonID int64) ([]int64, error) {
	query, args, err := qb.Select("DISTINCT fantasy_team_id").From("player_daily_stats").
		Where(qb.Eq("stat_date", statDate), qb.Eq("season_id", seasonID)).
		OrderBy("fantasy_team_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list team ids for day query: %w", err)
	}

	var ids []int64
	if err := r.store.session(ctx).SelectContext(ctx, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("list team ids for day: %w", err)
	}
	return ids, nil
}

func (r *DailyStatsRepository) PeriodForDay(ctx context.Context, statDate string, seasonID int64) (string, bool, error) {
	query, args, err := periodForDayQuery(statDate, seasonID)
	if err != nil {
		return "", false, fmt.Errorf("build period for day query: %w", err)
	}

	var period string
	if err := r.store.session(ctx).GetContext(ctx, &period, query, args...); err != nil {
		if isNotFound(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("select period for day: %w", err)
	}
	return period, true, nil
}

// All rows for one date carry the same period, but the pick should not
// depend on scan order.
func periodForDayQuery(statDate string, seasonID int64) (string, []any, error) {
	return qb.Select("period_number").From("player_daily_stats").
		Where(qb.Eq("stat_date", statDate), qb.Eq("season_id", seasonID)).
		OrderBy("id").
		Limit(1).
		ToSQL()
}

func (r *DailyStatsRepository) UpsertTeamDay(ctx context.Context, item dailystat.TeamDay) (dailystat.TeamDay, error) {
	insertModel := teamDayInsertModelFrom(item)
	query, args, err := qb.InsertModel("team_daily_stats", insertModel, `ON CONFLICT (stat_date, fantasy_team_id)
DO UPDATE SET
    season_id = EXCLUDED.season_id,
    period_number = EXCLUDED.period_number,
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
    wins = EXCLUDED.wins,
    innings_pitched_outs = EXCLUDED.innings_pitched_outs,
    earned_runs = EXCLUDED.earned_runs,
    hits_allowed = EXCLUDED.hits_allowed,
    walks_allowed = EXCLUDED.walks_allowed,
    hits_plus_walks = EXCLUDED.hits_plus_walks,
    strikeouts = EXCLUDED.strikeouts,
    hitting_points = EXCLUDED.hitting_points,
    pitching_points = EXCLUDED.pitching_points,
    total_points = EXCLUDED.total_points,
    updated_at = NOW()
RETURNING id`)
	if err != nil {
		return dailystat.TeamDay{}, fmt.Errorf("build upsert team day query: %w", err)
	}

	if err := r.store.session(ctx).GetContext(ctx, &item.ID, query, args...); err != nil {
		return dailystat.TeamDay{}, fmt.Errorf("upsert team day date=%s team=%d: %w", item.StatDate, item.FantasyTeamID, err)
	}
	return item, nil
}

func (r *DailyStatsRepository) GetTeamDay(ctx context.Context, statDate string, fantasyTeamID int64) (dailystat.TeamDay, bool, error) {
	query, args, err := qb.Select("*").From("team_daily_stats").
		Where(qb.Eq("stat_date", statDate), qb.Eq("fantasy_team_id", fantasyTeamID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return dailystat.TeamDay{}, false, fmt.Errorf("build get team day query: %w", err)
	}

	var row teamDayTableModel
	if err := r.store.session(ctx).GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return dailystat.TeamDay{}, false, nil
		}
		return dailystat.TeamDay{}, false, fmt.Errorf("get team day: %w", err)
	}
	out := teamDayFromInsertModel(row.teamDayInsertModel)
	out.ID = row.ID
	return out, true, nil
}

func (r *DailyStatsRepository) ListTeamDays(ctx context.Context, statDate string, seasonID int64) ([]dailystat.TeamDay, error) {
	query, args, err := qb.Select("*").From("team_daily_stats").
		Where(qb.Eq("stat_date", statDate), qb.Eq("season_id", seasonID)).
		OrderBy("total_points DESC", "fantasy_team_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list team days query: %w", err)
	}

	var rows []teamDayTableModel
	if err := r.store.session(ctx).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list team days: %w", err)
	}

	out := make([]dailystat.TeamDay, 0, len(rows))
	for _, row := range rows {
		item := teamDayFromInsertModel(row.teamDayInsertModel)
		item.ID = row.ID
		out = append(out, item)
	}
	return out, nil
}

func (r *DailyStatsRepository) UpsertMatchupDay(ctx context.Context, item dailystat.MatchupDay) (dailystat.MatchupDay, error) {
	insertModel := matchupDayInsertModel{
		StatDate:          item.StatDate,
		SeasonID:          item.SeasonID,
		PeriodNumber:      item.PeriodNumber,
		ExternalMatchupID: item.ExternalMatchupID,
		AwayTeamID:        item.AwayTeamID,
		HomeTeamID:        item.HomeTeamID,
		AwayPoints:        item.AwayPoints,
		HomePoints:        item.HomePoints,
	}
	query, args, err := qb.InsertModel("matchup_daily_results", insertModel, `ON CONFLICT (stat_date, away_team_id, home_team_id)
DO UPDATE SET
    season_id = EXCLUDED.season_id,
    period_number = EXCLUDED.period_number,
    external_matchup_id = CASE WHEN EXCLUDED.external_matchup_id = '' THEN matchup_daily_results.external_matchup_id ELSE EXCLUDED.external_matchup_id END,
    away_points = EXCLUDED.away_points,
    home_points = EXCLUDED.home_points,
    updated_at = NOW()
RETURNING id`)
	if err != nil {
		return dailystat.MatchupDay{}, fmt.Errorf("build upsert matchup day query: %w", err)
	}

	if err := r.store.session(ctx).GetContext(ctx, &item.ID, query, args...); err != nil {
		return dailystat.MatchupDay{}, fmt.Errorf("upsert matchup day date=%s away=%d home=%d: %w",
			item.StatDate, item.AwayTeamID, item.HomeTeamID, err)
	}
	return item, nil
}

func (r *DailyStatsRepository) ListMatchupDaysBySeason(ctx context.Context, seasonID int64) ([]dailystat.MatchupDay, error) {
	query, args, err := qb.Select("*").From("matchup_daily_results").
		Where(qb.Eq("season_id", seasonID)).
		OrderBy("stat_date", "away_team_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list matchup days query: %w", err)
	}

	var rows []matchupDayTableModel
	if err := r.store.session(ctx).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list matchup days: %w", err)
	}

	out := make([]dailystat.MatchupDay, 0, len(rows))
	for _, row := range rows {
		out = append(out, dailystat.MatchupDay{
			ID:                row.ID,
			StatDate:          row.StatDate,
			SeasonID:          row.SeasonID,
			PeriodNumber:      row.PeriodNumber,
			ExternalMatchupID: row.ExternalMatchupID,
			AwayTeamID:        row.AwayTeamID,
			HomeTeamID:        row.HomeTeamID,
			AwayPoints:        row.AwayPoints,
			HomePoints:        row.HomePoints,
		})
	}
	return out, nil
}

// DeleteDay clears all three tables for one date and season. Runs as
// hard deletes so a full-day re-ingest starts from a clean slate.
func (r *DailyStatsRepository) DeleteDay(ctx context.Context, statDate string, seasonID int64) (int64, error) {
	var total int64
	for _, table := range []string{"player_daily_stats", "team_daily_stats", "matchup_daily_results"} {
		query, args, err := qb.DeleteFrom(table).
			Where(qb.Eq("stat_date", statDate), qb.Eq("season_id", seasonID)).
			ToSQL()
		if err != nil {
			return total, fmt.Errorf("build delete day query table=%s: %w", table, err)
		}

		res, err := r.store.session(ctx).ExecContext(ctx, query, args...)
		if err != nil {
			return total, fmt.Errorf("delete day table=%s date=%s: %w", table, statDate, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return total, fmt.Errorf("delete day rows affected table=%s: %w", table, err)
		}
		total += affected
	}
	return total, nil
}

func playerDayInsertModelFrom(item dailystat.PlayerDay) playerDayInsertModel {
	return playerDayInsertModel{
		StatDate:           item.StatDate,
		ExternalPlayerID:   item.ExternalPlayerID,
		MLBTeamAbbrev:      item.MLBTeamAbbrev,
		FantasyTeamID:      item.FantasyTeamID,
		SeasonID:           item.SeasonID,
		PeriodNumber:       item.PeriodNumber,
		PositionPlayed:     item.PositionPlayed,
		IsActive:           item.Active,
		AtBats:             item.Hitting.AtBats,
		Hits:               item.Hitting.Hits,
		Runs:               item.Hitting.Runs,
		Singles:            item.Hitting.Singles,
		Doubles:            item.Hitting.Doubles,
		Triples:            item.Hitting.Triples,
		HomeRuns:           item.Hitting.HomeRuns,
		RBI:                item.Hitting.RBI,
		Walks:              item.Hitting.Walks,
		StolenBases:        item.Hitting.StolenBases,
		CaughtStealing:     item.Hitting.CaughtStealing,
		Wins:               item.Pitching.Wins,
		InningsPitchedOuts: item.Pitching.InningsPitchedOuts,
		EarnedRuns:         item.Pitching.EarnedRuns,
		HitsAllowed:        item.Pitching.HitsAllowed,
		WalksAllowed:       item.Pitching.WalksAllowed,
		HitsPlusWalks:      item.Pitching.HitsPlusWalks,
		Strikeouts:         item.Pitching.Strikeouts,
		FantasyPoints:      item.FantasyPoints,
	}
}

func playerDayFromRow(row playerDayTableModel) dailystat.PlayerDay {
	return dailystat.PlayerDay{
		ID:               row.ID,
		StatDate:         row.StatDate,
		ExternalPlayerID: row.ExternalPlayerID,
		MLBTeamAbbrev:    row.MLBTeamAbbrev,
		FantasyTeamID:    row.FantasyTeamID,
		SeasonID:         row.SeasonID,
		PeriodNumber:     row.PeriodNumber,
		PositionPlayed:   row.PositionPlayed,
		Active:           row.IsActive,
		Hitting: dailystat.HittingLine{
			AtBats:         row.AtBats,
			Hits:           row.Hits,
			Runs:           row.Runs,
			Singles:        row.Singles,
			Doubles:        row.Doubles,
			Triples:        row.Triples,
			HomeRuns:       row.HomeRuns,
			RBI:            row.RBI,
			Walks:          row.Walks,
			StolenBases:    row.StolenBases,
			CaughtStealing: row.CaughtStealing,
		},
		Pitching: dailystat.PitchingLine{
			Wins:               row.Wins,
			InningsPitchedOuts: row.InningsPitchedOuts,
			EarnedRuns:         row.EarnedRuns,
			HitsAllowed:        row.HitsAllowed,
			WalksAllowed:       row.WalksAllowed,
			HitsPlusWalks:      row.HitsPlusWalks,
			Strikeouts:         row.Strikeouts,
		},
		FantasyPoints: row.FantasyPoints,
	}
}

func teamDayInsertModelFrom(item dailystat.TeamDay) teamDayInsertModel {
	return teamDayInsertModel{
		StatDate:           item.StatDate,
		FantasyTeamID:      item.FantasyTeamID,
		SeasonID:           item.SeasonID,
		PeriodNumber:       item.PeriodNumber,
		AtBats:             item.Hitting.AtBats,
		Hits:               item.Hitting.Hits,
		Runs:               item.Hitting.Runs,
		Singles:            item.Hitting.Singles,
		Doubles:            item.Hitting.Doubles,
		Triples:            item.Hitting.Triples,
		HomeRuns:           item.Hitting.HomeRuns,
		RBI:                item.Hitting.RBI,
		Walks:              item.Hitting.Walks,
		StolenBases:        item.Hitting.StolenBases,
		CaughtStealing:     item.Hitting.CaughtStealing,
		Wins:               item.Pitching.Wins,
		InningsPitchedOuts: item.Pitching.InningsPitchedOuts,
		EarnedRuns:         item.Pitching.EarnedRuns,
		HitsAllowed:        item.Pitching.HitsAllowed,
		WalksAllowed:       item.Pitching.WalksAllowed,
		HitsPlusWalks:      item.Pitching.HitsPlusWalks,
		Strikeouts:         item.Pitching.Strikeouts,
		HittingPoints:      item.HittingPoints,
		PitchingPoints:     item.PitchingPoints,
		TotalPoints:        item.TotalPoints,
	}
}

func teamDayFromInsertModel(row teamDayInsertModel) dailystat.TeamDay {
	return dailystat.TeamDay{
		StatDate:      row.StatDate,
		FantasyTeamID: row.FantasyTeamID,
		SeasonID:      row.SeasonID,
		PeriodNumber:  row.PeriodNumber,
		Hitting: dailystat.HittingLine{
			AtBats:         row.AtBats,
			Hits:           row.Hits,
			Runs:           row.Runs,
			Singles:        row.Singles,
			Doubles:        row.Doubles,
			Triples:        row.Triples,
			HomeRuns:       row.HomeRuns,
			RBI:            row.RBI,
			Walks:          row.Walks,
			StolenBases:    row.StolenBases,
			CaughtStealing: row.CaughtStealing,
		},
		Pitching: dailystat.PitchingLine{
			Wins:               row.Wins,
			InningsPitchedOuts: row.InningsPitchedOuts,
			EarnedRuns:         row.EarnedRuns,
			HitsAllowed:        row.HitsAllowed,
			WalksAllowed:       row.WalksAllowed,
			HitsPlusWalks:      row.HitsPlusWalks,
			Strikeouts:         row.Strikeouts,
		},
		HittingPoints:  row.HittingPoints,
		PitchingPoints: row.PitchingPoints,
		TotalPoints:    row.TotalPoints,
	}
}
