package usecase

import (
	"context"
	"fmt"

	"github.com/mlasky/diamondsync/internal/domain/player"
	"github.com/mlasky/diamondsync/internal/domain/roster"
	"github.com/mlasky/diamondsync/internal/platform/logging"
)

// NameMatchService is the repair pass that links roster entries from
// id-less historical seasons to canonical player rows by normalized
// name. Heuristic: the prefix fallback can mis-match on common
// surnames, so matches are logged for manual review.
type NameMatchService struct {
	tx         TxRunner
	rosterRepo roster.Repository
	playerRepo player.Repository
	logger     *logging.Logger
}

func NewNameMatchService(tx TxRunner, rosterRepo roster.Repository, playerRepo player.Repository, logger *logging.Logger) *NameMatchService {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &NameMatchService{
		tx:         tx,
		rosterRepo: rosterRepo,
		playerRepo: playerRepo,
		logger:     logger,
	}
}

// MatchResult reports one repair pass over a season.
type MatchResult struct {
	Processed      int
	Matched        int
	StillUnmatched int
}

// MatchUnresolvedPlayers tries exact normalized-name equality first,
// then a prefix match, for every unresolved non-team-pitching entry of
// the season.
func (s *NameMatchService) MatchUnresolvedPlayers(ctx context.Context, seasonID int64) (MatchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.NameMatchService.MatchUnresolvedPlayers")
	defer span.End()

	var result MatchResult
	if seasonID <= 0 {
		return result, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}

	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		entries, err := s.rosterRepo.ListUnresolvedBySeason(ctx, seasonID)
		if err != nil {
			return fmt.Errorf("list unresolved roster entries: %w", err)
		}

		for _, entry := range entries {
			result.Processed++

			candidate := entry.PlayerNameNormalized
			if candidate == "" {
				candidate = NormalizeName(entry.PlayerNameRaw)
			}
			if candidate == "" {
				result.StillUnmatched++
				continue
			}

			matched, found, err := s.playerRepo.GetByNormalizedName(ctx, candidate)
			if err != nil {
				return fmt.Errorf("exact name lookup %q: %w", candidate, err)
			}
			if !found {
				matched, found, err = s.playerRepo.FindByNormalizedPrefix(ctx, candidate)
				if err != nil {
					return fmt.Errorf("prefix name lookup %q: %w", candidate, err)
				}
			}
			if !found {
				result.StillUnmatched++
				continue
			}

			if err := s.rosterRepo.SetPlayerID(ctx, entry.ID, matched.ID); err != nil {
				return fmt.Errorf("set roster player entry=%d: %w", entry.ID, err)
			}
			result.Matched++
			s.logger.DebugContext(ctx, "roster entry matched",
				"entry_id", entry.ID,
				"candidate", candidate,
				"player_id", matched.ID,
				"player_name", matched.FullName,
			)
		}
		return nil
	})
	if err != nil {
		return MatchResult{}, fmt.Errorf("match unresolved players: %w", err)
	}

	s.logger.InfoContext(ctx, "name match pass finished",
		"season_id", seasonID,
		"processed", result.Processed,
		"matched", result.Matched,
		"still_unmatched", result.StillUnmatched,
	)
	return result, nil
}
