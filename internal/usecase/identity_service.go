package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/mlasky/diamondsync/internal/domain/player"
	"github.com/mlasky/diamondsync/internal/domain/season"
	"github.com/mlasky/diamondsync/internal/domain/team"
	"github.com/mlasky/diamondsync/internal/platform/cache"
)

// IdentityService maps external natural keys onto internal surrogate
// ids. Lookups are memoized through the TTL cache because one scrape
// batch resolves the same handful of teams hundreds of times.
type IdentityService struct {
	seasonRepo season.Repository
	teamRepo   team.Repository
	playerRepo player.Repository
	lookups    *cache.Store
}

func NewIdentityService(
	seasonRepo season.Repository,
	teamRepo team.Repository,
	playerRepo player.Repository,
	lookups *cache.Store,
) *IdentityService {
	return &IdentityService{
		seasonRepo: seasonRepo,
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		lookups:    lookups,
	}
}

// EnsureSeason creates or refreshes the season row for a league year.
func (s *IdentityService) EnsureSeason(ctx context.Context, year, externalLeagueID, displayName string) (season.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IdentityService.EnsureSeason")
	defer span.End()

	year = strings.TrimSpace(year)
	externalLeagueID = strings.TrimSpace(externalLeagueID)
	if year == "" || externalLeagueID == "" {
		return season.Season{}, fmt.Errorf("%w: season year and external league id are required", ErrInvalidInput)
	}

	item, err := s.seasonRepo.Upsert(ctx, season.Season{
		Year:             year,
		ExternalLeagueID: externalLeagueID,
		DisplayName:      strings.TrimSpace(displayName),
	})
	if err != nil {
		return season.Season{}, fmt.Errorf("upsert season: %w", err)
	}

	s.lookups.Set(ctx, seasonCacheKey(year), item.ID)
	return item, nil
}

// ResolveTeam returns the surrogate id for an external team id within a
// season. Missing teams surface as ErrUnresolvedReference so batch
// callers can skip the row instead of aborting.
func (s *IdentityService) ResolveTeam(ctx context.Context, seasonID int64, externalTeamID string) (int64, error) {
	externalTeamID = strings.TrimSpace(externalTeamID)
	if seasonID <= 0 || externalTeamID == "" {
		return 0, fmt.Errorf("%w: season id and external team id are required", ErrInvalidInput)
	}

	value, err := s.lookups.GetOrLoad(ctx, teamCacheKey(seasonID, externalTeamID), func(ctx context.Context) (any, error) {
		item, found, err := s.teamRepo.GetByExternalID(ctx, seasonID, externalTeamID)
		if err != nil {
			return nil, fmt.Errorf("get team by external id: %w", err)
		}
		if !found {
			return nil, fmt.Errorf("%w: team external_id=%s season=%d", ErrUnresolvedReference, externalTeamID, seasonID)
		}
		return item.ID, nil
	})
	if err != nil {
		return 0, err
	}

	id, ok := value.(int64)
	if !ok {
		return 0, fmt.Errorf("unexpected cached team id type %T", value)
	}
	return id, nil
}

// ResolvePlayer returns the canonical player id for a platform player
// id, when one exists. Absence is not an error: historical rosters
// predate stable ids and go through the name-matching pass instead.
func (s *IdentityService) ResolvePlayer(ctx context.Context, externalPlayerID string) (int64, bool, error) {
	externalPlayerID = strings.TrimSpace(externalPlayerID)
	if externalPlayerID == "" {
		return 0, false, nil
	}

	if value, ok := s.lookups.Get(ctx, playerCacheKey(externalPlayerID)); ok {
		if id, isID := value.(int64); isID {
			return id, true, nil
		}
	}

	item, found, err := s.playerRepo.GetByExternalID(ctx, externalPlayerID)
	if err != nil {
		return 0, false, fmt.Errorf("get player by external id: %w", err)
	}
	if !found {
		return 0, false, nil
	}

	s.lookups.Set(ctx, playerCacheKey(externalPlayerID), item.ID)
	return item.ID, true, nil
}

// ForgetSeasonTeams drops cached team lookups after a team ingest, so
// newly-created teams resolve on the next pass.
func (s *IdentityService) ForgetSeasonTeams(ctx context.Context, seasonID int64) {
	s.lookups.DeletePrefix(ctx, fmt.Sprintf("team:%d:", seasonID))
}

func seasonCacheKey(year string) string {
	return "season:" + year
}

func teamCacheKey(seasonID int64, externalTeamID string) string {
	return fmt.Sprintf("team:%d:%s", seasonID, externalTeamID)
}

func playerCacheKey(externalPlayerID string) string {
	return "player:" + externalPlayerID
}
