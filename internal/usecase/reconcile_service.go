package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/mlasky/diamondsync/internal/domain/dailystat"
	"github.com/mlasky/diamondsync/internal/domain/matchup"
	"github.com/mlasky/diamondsync/internal/domain/mlb"
	"github.com/mlasky/diamondsync/internal/domain/rawdata"
	"github.com/mlasky/diamondsync/internal/domain/roster"
	"github.com/mlasky/diamondsync/internal/domain/standing"
	"github.com/mlasky/diamondsync/internal/domain/team"
	"github.com/mlasky/diamondsync/internal/domain/teamseason"
	"github.com/mlasky/diamondsync/internal/platform/logging"
)

// ScrapeSource tags archived payloads that came from the fantasy
// platform scraper, as opposed to the MLB stats API.
const ScrapeSource = "fantasy"

// ReconcileService turns batches of scraped records into normalized
// rows. Each ingest runs as one transaction; individual bad rows are
// collected as RowErrors without aborting the batch, because scrapes of
// older seasons routinely produce a few malformed records.
type ReconcileService struct {
	tx            TxRunner
	identity      *IdentityService
	teamRepo      team.Repository
	matchupRepo   matchup.Repository
	standingRepo  standing.Repository
	teamStatsRepo teamseason.Repository
	rosterRepo    roster.Repository
	dailyRepo     dailystat.Repository
	mlbRepo       mlb.Repository
	rawRepo       rawdata.Repository
	aggregation   *AggregationService
	logger        *logging.Logger
	validate      *validator.Validate
}

func NewReconcileService(
	tx TxRunner,
	identity *IdentityService,
	teamRepo team.Repository,
	matchupRepo matchup.Repository,
	standingRepo standing.Repository,
	teamStatsRepo teamseason.Repository,
	rosterRepo roster.Repository,
	dailyRepo dailystat.Repository,
	mlbRepo mlb.Repository,
	rawRepo rawdata.Repository,
	aggregation *AggregationService,
	logger *logging.Logger,
) *ReconcileService {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &ReconcileService{
		tx:            tx,
		identity:      identity,
		teamRepo:      teamRepo,
		matchupRepo:   matchupRepo,
		standingRepo:  standingRepo,
		teamStatsRepo: teamStatsRepo,
		rosterRepo:    rosterRepo,
		dailyRepo:     dailyRepo,
		mlbRepo:       mlbRepo,
		rawRepo:       rawRepo,
		aggregation:   aggregation,
		logger:        logger,
		validate:      validator.New(validator.WithRequiredStructEnabled()),
	}
}

// RawTeamRow is one team as scraped from a league page.
type RawTeamRow struct {
	ExternalTeamID string `validate:"required"`
	Name           string `validate:"required"`
	IconURL        string
}

// RawMatchupRow is one schedule entry. Away/home order is part of the
// identity and preserved as scraped.
type RawMatchupRow struct {
	PeriodNumber       string `validate:"required"`
	PeriodType         string
	DateRange          string
	AwayExternalTeamID string `validate:"required"`
	HomeExternalTeamID string `validate:"required"`
	ExternalMatchupID  string
}

// RawStandingRow is one league-table line.
type RawStandingRow struct {
	ExternalTeamID string  `validate:"required"`
	Rank           int     `validate:"gt=0"`
	Wins           int     `validate:"gte=0"`
	Losses         int     `validate:"gte=0"`
	Ties           int     `validate:"gte=0"`
	WinPercentage  float64 `validate:"gte=0,lte=1"`
	DivisionRecord string
	GamesBack      string
	WaiverPosition int
	PointsFor      float64
	PointsAgainst  float64
	Streak         string
}

// RawSeasonStatRow carries a team's season-long totals from the stats
// pages. The hitting and pitching blocks are optional because older
// seasons expose only the points summary.
type RawSeasonStatRow struct {
	ExternalTeamID string `validate:"required"`
	GamesPlayed    int    `validate:"gte=0"`
	FantasyPoints  float64
	HittingPoints  float64
	PitchingPoints float64
	Hitting        *RawHittingBlock
	Pitching       *RawPitchingBlock
}

type RawHittingBlock struct {
	AtBats         int
	Hits           int
	Runs           int
	Singles        int
	Doubles        int
	Triples        int
	HomeRuns       int
	RBI            int
	Walks          int
	StolenBases    int
	CaughtStealing int
	BattingAverage float64
}

type RawPitchingBlock struct {
	Wins               int
	InningsPitchedOuts int
	EarnedRuns         int
	HitsAllowed        int
	WalksAllowed       int
	Strikeouts         int
	ERA                float64
}

// RawRosterRow is one roster slot for a team and period. RosterSlot is
// the caller-supplied stable disambiguator for repeated positions.
type RawRosterRow struct {
	ExternalTeamID   string `validate:"required"`
	PeriodNumber     string `validate:"required"`
	PositionCode     string `validate:"required"`
	RosterSlot       int    `validate:"gte=0"`
	IsActive         bool
	PlayerName       string
	MLBTeamAbbrev    string
	BatSide          string
	ExternalPlayerID string
	PitchingStaffID  *int64
}

// RawPlayerDayRow is one player-date stat line. Team-pitching rows may
// omit ExternalPlayerID; it is synthesized from the fantasy team.
type RawPlayerDayRow struct {
	ExternalPlayerID string
	ExternalTeamID   string `validate:"required"`
	PeriodNumber     string `validate:"required"`
	PositionPlayed   string `validate:"required"`
	MLBTeamAbbrev    string
	Active           bool
	Hitting          dailystat.HittingLine
	Pitching         dailystat.PitchingLine
	FantasyPoints    float64
}

// IngestTeams upserts a season's teams and invalidates the identity
// cache so schedule/roster batches resolve the new rows.
func (s *ReconcileService) IngestTeams(ctx context.Context, seasonID int64, rows []RawTeamRow) (BatchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReconcileService.IngestTeams")
	defer span.End()

	var result BatchResult
	if seasonID <= 0 {
		return result, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}

	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		archive := newPayloadBatch(ScrapeSource, "team", seasonID)
		for idx, row := range rows {
			row.ExternalTeamID = strings.TrimSpace(row.ExternalTeamID)
			row.Name = strings.TrimSpace(row.Name)
			key := "team=" + row.ExternalTeamID
			if err := s.validateRow(row); err != nil {
				result.fail(idx, key, err)
				continue
			}

			if err := s.rowScope(ctx, func(ctx context.Context) error {
				_, err := s.teamRepo.Upsert(ctx, team.Team{
					SeasonID:       seasonID,
					ExternalTeamID: row.ExternalTeamID,
					Name:           row.Name,
					IconURL:        strings.TrimSpace(row.IconURL),
				})
				return err
			}); err != nil {
				result.fail(idx, key, err)
				continue
			}
			archive.add(row.ExternalTeamID, row)
			result.Processed++
		}
		s.archivePayloads(ctx, archive)
		return nil
	})
	if err != nil {
		return BatchResult{}, fmt.Errorf("ingest teams: %w", err)
	}

	s.identity.ForgetSeasonTeams(ctx, seasonID)
	s.logBatch(ctx, "teams ingested", seasonID, result)
	return result, nil
}

// IngestSchedule upserts a season's matchups. Rows referencing unknown
// teams are skipped as unresolved references.
func (s *ReconcileService) IngestSchedule(ctx context.Context, seasonID int64, rows []RawMatchupRow) (BatchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReconcileService.IngestSchedule")
	defer span.End()

	var result BatchResult
	if seasonID <= 0 {
		return result, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}

	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		archive := newPayloadBatch(ScrapeSource, "matchup", seasonID)
		for idx, row := range rows {
			row.PeriodNumber = strings.TrimSpace(row.PeriodNumber)
			row.AwayExternalTeamID = strings.TrimSpace(row.AwayExternalTeamID)
			row.HomeExternalTeamID = strings.TrimSpace(row.HomeExternalTeamID)
			key := fmt.Sprintf("period=%s away=%s home=%s", row.PeriodNumber, row.AwayExternalTeamID, row.HomeExternalTeamID)
			if err := s.validateRow(row); err != nil {
				result.fail(idx, key, err)
				continue
			}

			awayID, err := s.identity.ResolveTeam(ctx, seasonID, row.AwayExternalTeamID)
			if err != nil {
				result.fail(idx, key, err)
				continue
			}
			homeID, err := s.identity.ResolveTeam(ctx, seasonID, row.HomeExternalTeamID)
			if err != nil {
				result.fail(idx, key, err)
				continue
			}

			if err := s.rowScope(ctx, func(ctx context.Context) error {
				_, err := s.matchupRepo.Upsert(ctx, matchup.Matchup{
					SeasonID:          seasonID,
					PeriodNumber:      row.PeriodNumber,
					PeriodType:        row.PeriodType,
					DateRange:         strings.TrimSpace(row.DateRange),
					AwayTeamID:        awayID,
					HomeTeamID:        homeID,
					ExternalMatchupID: strings.TrimSpace(row.ExternalMatchupID),
				})
				return err
			}); err != nil {
				result.fail(idx, key, err)
				continue
			}
			archive.add(key, row)
			result.Processed++
		}
		s.archivePayloads(ctx, archive)
		return nil
	})
	if err != nil {
		return BatchResult{}, fmt.Errorf("ingest schedule: %w", err)
	}

	s.logBatch(ctx, "schedule ingested", seasonID, result)
	return result, nil
}

// IngestStandings replaces each team's league-table row wholesale.
func (s *ReconcileService) IngestStandings(ctx context.Context, seasonID int64, rows []RawStandingRow) (BatchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReconcileService.IngestStandings")
	defer span.End()

	var result BatchResult
	if seasonID <= 0 {
		return result, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}

	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		archive := newPayloadBatch(ScrapeSource, "standing", seasonID)
		for idx, row := range rows {
			row.ExternalTeamID = strings.TrimSpace(row.ExternalTeamID)
			key := "team=" + row.ExternalTeamID
			if err := s.validateRow(row); err != nil {
				result.fail(idx, key, err)
				continue
			}

			teamID, err := s.identity.ResolveTeam(ctx, seasonID, row.ExternalTeamID)
			if err != nil {
				result.fail(idx, key, err)
				continue
			}

			if err := s.rowScope(ctx, func(ctx context.Context) error {
				_, err := s.standingRepo.Upsert(ctx, standing.Standing{
					SeasonID:       seasonID,
					TeamID:         teamID,
					Rank:           row.Rank,
					Wins:           row.Wins,
					Losses:         row.Losses,
					Ties:           row.Ties,
					WinPercentage:  row.WinPercentage,
					DivisionRecord: strings.TrimSpace(row.DivisionRecord),
					GamesBack:      strings.TrimSpace(row.GamesBack),
					WaiverPosition: row.WaiverPosition,
					PointsFor:      row.PointsFor,
					PointsAgainst:  row.PointsAgainst,
					Streak:         strings.TrimSpace(row.Streak),
				})
				return err
			}); err != nil {
				result.fail(idx, key, err)
				continue
			}
			archive.add(row.ExternalTeamID, row)
			result.Processed++
		}
		s.archivePayloads(ctx, archive)
		return nil
	})
	if err != nil {
		return BatchResult{}, fmt.Errorf("ingest standings: %w", err)
	}

	s.logBatch(ctx, "standings ingested", seasonID, result)
	return result, nil
}

// IngestSeasonStats replaces a season's per-team stat totals, fanning
// one scraped row out to the points, hitting and pitching tables.
func (s *ReconcileService) IngestSeasonStats(ctx context.Context, seasonID int64, rows []RawSeasonStatRow) (BatchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReconcileService.IngestSeasonStats")
	defer span.End()

	var result BatchResult
	if seasonID <= 0 {
		return result, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}

	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		archive := newPayloadBatch(ScrapeSource, "season-stat", seasonID)
		for idx, row := range rows {
			row.ExternalTeamID = strings.TrimSpace(row.ExternalTeamID)
			key := "team=" + row.ExternalTeamID
			if err := s.validateRow(row); err != nil {
				result.fail(idx, key, err)
				continue
			}

			teamID, err := s.identity.ResolveTeam(ctx, seasonID, row.ExternalTeamID)
			if err != nil {
				result.fail(idx, key, err)
				continue
			}

			if err := s.rowScope(ctx, func(ctx context.Context) error {
				return s.upsertSeasonStatRow(ctx, seasonID, teamID, row)
			}); err != nil {
				result.fail(idx, key, err)
				continue
			}
			archive.add(row.ExternalTeamID, row)
			result.Processed++
		}
		s.archivePayloads(ctx, archive)
		return nil
	})
	if err != nil {
		return BatchResult{}, fmt.Errorf("ingest season stats: %w", err)
	}

	s.logBatch(ctx, "season stats ingested", seasonID, result)
	return result, nil
}

func (s *ReconcileService) upsertSeasonStatRow(ctx context.Context, seasonID, teamID int64, row RawSeasonStatRow) error {
	if _, err := s.teamStatsRepo.UpsertSeasonStat(ctx, teamseason.SeasonStat{
		SeasonID:       seasonID,
		TeamID:         teamID,
		GamesPlayed:    row.GamesPlayed,
		FantasyPoints:  row.FantasyPoints,
		HittingPoints:  row.HittingPoints,
		PitchingPoints: row.PitchingPoints,
	}); err != nil {
		return err
	}

	if row.Hitting != nil {
		h := row.Hitting
		if _, err := s.teamStatsRepo.UpsertHittingStat(ctx, teamseason.HittingStat{
			SeasonID:       seasonID,
			TeamID:         teamID,
			AtBats:         h.AtBats,
			Hits:           h.Hits,
			Runs:           h.Runs,
			Singles:        h.Singles,
			Doubles:        h.Doubles,
			Triples:        h.Triples,
			HomeRuns:       h.HomeRuns,
			RBI:            h.RBI,
			Walks:          h.Walks,
			StolenBases:    h.StolenBases,
			CaughtStealing: h.CaughtStealing,
			BattingAverage: h.BattingAverage,
		}); err != nil {
			return err
		}
	}

	if row.Pitching != nil {
		p := row.Pitching
		if _, err := s.teamStatsRepo.UpsertPitchingStat(ctx, teamseason.PitchingStat{
			SeasonID:           seasonID,
			TeamID:             teamID,
			Wins:               p.Wins,
			InningsPitchedOuts: p.InningsPitchedOuts,
			EarnedRuns:         p.EarnedRuns,
			HitsAllowed:        p.HitsAllowed,
			WalksAllowed:       p.WalksAllowed,
			Strikeouts:         p.Strikeouts,
			ERA:                p.ERA,
		}); err != nil {
			return err
		}
	}

	return nil
}

// IngestRoster upserts one team-period's roster slots. Player identity
// is resolved by platform id when present; rows without one stay
// unresolved for the name-matching pass.
func (s *ReconcileService) IngestRoster(ctx context.Context, seasonID int64, rows []RawRosterRow) (BatchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReconcileService.IngestRoster")
	defer span.End()

	var result BatchResult
	if seasonID <= 0 {
		return result, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}

	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		archive := newPayloadBatch(ScrapeSource, "roster", seasonID)
		for idx, row := range rows {
			row.ExternalTeamID = strings.TrimSpace(row.ExternalTeamID)
			row.PeriodNumber = strings.TrimSpace(row.PeriodNumber)
			row.PositionCode = strings.TrimSpace(row.PositionCode)
			key := fmt.Sprintf("team=%s period=%s slot=%s/%d", row.ExternalTeamID, row.PeriodNumber, row.PositionCode, row.RosterSlot)
			if err := s.validateRow(row); err != nil {
				result.fail(idx, key, err)
				continue
			}

			teamID, err := s.identity.ResolveTeam(ctx, seasonID, row.ExternalTeamID)
			if err != nil {
				result.fail(idx, key, err)
				continue
			}

			entry := roster.Entry{
				SeasonID:             seasonID,
				TeamID:               teamID,
				PeriodNumber:         row.PeriodNumber,
				PositionCode:         row.PositionCode,
				RosterSlot:           row.RosterSlot,
				IsActive:             row.IsActive,
				PlayerNameRaw:        strings.TrimSpace(row.PlayerName),
				PlayerNameNormalized: NormalizeName(row.PlayerName),
				MLBTeamAbbrev:        strings.TrimSpace(row.MLBTeamAbbrev),
				BatSide:              strings.TrimSpace(row.BatSide),
				ExternalPlayerID:     strings.TrimSpace(row.ExternalPlayerID),
				PitchingStaffID:      row.PitchingStaffID,
			}
			if entry.ExternalPlayerID != "" && !entry.IsTeamPitching() {
				playerID, found, err := s.identity.ResolvePlayer(ctx, entry.ExternalPlayerID)
				if err != nil {
					result.fail(idx, key, err)
					continue
				}
				if found {
					entry.PlayerID = &playerID
				}
			}

			if err := s.rowScope(ctx, func(ctx context.Context) error {
				_, err := s.rosterRepo.Upsert(ctx, entry)
				return err
			}); err != nil {
				result.fail(idx, key, err)
				continue
			}
			archive.add(key, row)
			result.Processed++
		}
		s.archivePayloads(ctx, archive)
		return nil
	})
	if err != nil {
		return BatchResult{}, fmt.Errorf("ingest roster: %w", err)
	}

	s.logBatch(ctx, "roster ingested", seasonID, result)
	return result, nil
}

// IngestDay replaces one date's stats wholesale: clear the date, upsert
// the new player lines, then re-derive team aggregates and matchup
// scores. The delete and the recomputes are fatal to the unit of work;
// individual bad player rows are not.
func (s *ReconcileService) IngestDay(ctx context.Context, seasonID int64, statDate string, rows []RawPlayerDayRow) (BatchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReconcileService.IngestDay")
	defer span.End()

	var result BatchResult
	statDate = strings.TrimSpace(statDate)
	if seasonID <= 0 || statDate == "" {
		return result, fmt.Errorf("%w: season id and stat date are required", ErrInvalidInput)
	}

	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		if _, err := s.aggregation.ReplaceDayData(ctx, statDate, seasonID); err != nil {
			return err
		}

		archive := newPayloadBatch(ScrapeSource, "player-day", seasonID)
		teamIDs := make(map[int64]bool)
		for idx, row := range rows {
			row.ExternalTeamID = strings.TrimSpace(row.ExternalTeamID)
			row.ExternalPlayerID = strings.TrimSpace(row.ExternalPlayerID)
			row.PositionPlayed = strings.TrimSpace(row.PositionPlayed)
			key := fmt.Sprintf("player=%s team=%s", row.ExternalPlayerID, row.ExternalTeamID)
			if err := s.validateRow(row); err != nil {
				result.fail(idx, key, err)
				continue
			}

			teamID, err := s.identity.ResolveTeam(ctx, seasonID, row.ExternalTeamID)
			if err != nil {
				result.fail(idx, key, err)
				continue
			}

			externalPlayerID := row.ExternalPlayerID
			if externalPlayerID == "" {
				if row.PositionPlayed != roster.PositionTeamPitching {
					result.fail(idx, key, fmt.Errorf("%w: external player id is required", ErrInvalidInput))
					continue
				}
				externalPlayerID = dailystat.TeamPitchingExternalID(teamID)
			}

			if err := s.rowScope(ctx, func(ctx context.Context) error {
				_, err := s.dailyRepo.UpsertPlayerDay(ctx, dailystat.PlayerDay{
					StatDate:         statDate,
					ExternalPlayerID: externalPlayerID,
					MLBTeamAbbrev:    strings.TrimSpace(row.MLBTeamAbbrev),
					FantasyTeamID:    teamID,
					SeasonID:         seasonID,
					PeriodNumber:     strings.TrimSpace(row.PeriodNumber),
					PositionPlayed:   row.PositionPlayed,
					Active:           row.Active,
					Hitting:          row.Hitting,
					Pitching:         row.Pitching,
					FantasyPoints:    row.FantasyPoints,
				})
				return err
			}); err != nil {
				result.fail(idx, key, err)
				continue
			}
			teamIDs[teamID] = true
			archive.add(key+" date="+statDate, row)
			result.Processed++
		}

		for teamID := range teamIDs {
			if _, err := s.aggregation.RecomputeTeamDaily(ctx, statDate, teamID, seasonID); err != nil {
				return err
			}
		}
		if _, err := s.aggregation.RecomputeMatchupResults(ctx, statDate, seasonID); err != nil {
			return err
		}

		s.archivePayloads(ctx, archive)
		return nil
	})
	if err != nil {
		return BatchResult{}, fmt.Errorf("ingest day %s: %w", statDate, err)
	}

	s.logBatch(ctx, "day ingested", seasonID, result)
	return result, nil
}

// IngestMLBData upserts official games and batter lines. Independent of
// fantasy entities; no identity resolution involved.
func (s *ReconcileService) IngestMLBData(ctx context.Context, games []mlb.Game, stats []mlb.BatterGameStat) (BatchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReconcileService.IngestMLBData")
	defer span.End()

	var result BatchResult
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		for idx, game := range games {
			key := fmt.Sprintf("game_pk=%d", game.GamePk)
			if game.GamePk <= 0 || strings.TrimSpace(game.GameDate) == "" {
				result.fail(idx, key, fmt.Errorf("%w: game_pk and game_date are required", ErrInvalidInput))
				continue
			}
			if err := s.rowScope(ctx, func(ctx context.Context) error {
				_, err := s.mlbRepo.UpsertGame(ctx, game)
				return err
			}); err != nil {
				result.fail(idx, key, err)
				continue
			}
			result.Processed++
		}

		for idx, stat := range stats {
			key := fmt.Sprintf("game_pk=%d player=%d", stat.GamePk, stat.PlayerID)
			if stat.GamePk <= 0 || stat.PlayerID <= 0 || stat.TeamID <= 0 {
				result.fail(len(games)+idx, key, fmt.Errorf("%w: game_pk, player_id and team_id are required", ErrInvalidInput))
				continue
			}
			if err := s.rowScope(ctx, func(ctx context.Context) error {
				_, err := s.mlbRepo.UpsertBatterStat(ctx, stat)
				return err
			}); err != nil {
				result.fail(len(games)+idx, key, err)
				continue
			}
			result.Processed++
		}
		return nil
	})
	if err != nil {
		return BatchResult{}, fmt.Errorf("ingest mlb data: %w", err)
	}
	return result, nil
}

// rowScope isolates one row's writes. With the postgres store this is
// a savepoint; the in-memory store needs no isolation.
func (s *ReconcileService) rowScope(ctx context.Context, fn func(ctx context.Context) error) error {
	if sp, ok := s.tx.(savepointRunner); ok {
		return sp.WithSavepoint(ctx, fn)
	}
	return fn(ctx)
}

func (s *ReconcileService) validateRow(row any) error {
	if err := s.validate.Struct(row); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}

func (s *ReconcileService) logBatch(ctx context.Context, msg string, seasonID int64, result BatchResult) {
	s.logger.InfoContext(ctx, msg,
		"season_id", seasonID,
		"processed", result.Processed,
		"row_errors", len(result.Errors),
	)
	for _, rowErr := range result.Errors {
		s.logger.WarnContext(ctx, "row skipped", "season_id", seasonID, "row", rowErr.Index, "key", rowErr.Key, "error", rowErr.Err.Error())
	}
}

// payloadBatch accumulates the raw records of one ingest so the whole
// batch lands in the archive with a single write.
type payloadBatch struct {
	source     string
	entityType string
	seasonID   int64
	items      []rawdata.Payload
}

func newPayloadBatch(source, entityType string, seasonID int64) *payloadBatch {
	return &payloadBatch{source: source, entityType: entityType, seasonID: seasonID}
}

func (b *payloadBatch) add(entityKey string, record any) {
	encoded, err := sonic.Marshal(record)
	if err != nil {
		return
	}
	hash := sha256.Sum256(encoded)
	seasonID := b.seasonID
	b.items = append(b.items, rawdata.Payload{
		Source:      b.source,
		EntityType:  b.entityType,
		EntityKey:   entityKey,
		SeasonID:    &seasonID,
		PayloadJSON: string(encoded),
		PayloadHash: hex.EncodeToString(hash[:]),
	})
}

// archivePayloads is best-effort: the archive exists for replay and
// debugging, so a failed write logs a warning instead of failing the
// ingest that produced real rows.
func (s *ReconcileService) archivePayloads(ctx context.Context, batch *payloadBatch) {
	if s.rawRepo == nil || len(batch.items) == 0 {
		return
	}
	if err := s.rawRepo.UpsertMany(ctx, batch.items); err != nil {
		s.logger.WarnContext(ctx, "archive payloads failed", "entity_type", batch.entityType, "error", err.Error())
	}
}
