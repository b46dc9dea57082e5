package player

import "context"

type Repository interface {
	Upsert(ctx context.Context, item Player) (Player, error)
	GetByExternalID(ctx context.Context, externalPlayerID string) (Player, bool, error)
	GetByNormalizedName(ctx context.Context, normalizedName string) (Player, bool, error)
	// FindByNormalizedPrefix returns the first player whose normalized
	// name starts with the given prefix. Heuristic; may mis-match on
	// common surnames.
	FindByNormalizedPrefix(ctx context.Context, prefix string) (Player, bool, error)
}
