package roster

import "context"

type Repository interface {
	// Upsert merges by the slot natural key. A stored non-null PlayerID
	// is kept when the incoming entry carries none; it is never reset
	// to null in place.
	Upsert(ctx context.Context, item Entry) (Entry, error)
	ListByTeamPeriod(ctx context.Context, teamID int64, periodNumber string) ([]Entry, error)
	// ListUnresolvedBySeason returns entries without a resolved player,
	// excluding team-pitching slots.
	ListUnresolvedBySeason(ctx context.Context, seasonID int64) ([]Entry, error)
	SetPlayerID(ctx context.Context, entryID, playerID int64) error
}
