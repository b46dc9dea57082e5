package team

import "context"

type Repository interface {
	// Upsert merges by (ExternalTeamID, SeasonID). Name is always taken
	// from the incoming record; IconURL keeps the stored value when the
	// incoming one is empty; ManagerID is never written.
	Upsert(ctx context.Context, item Team) (Team, error)
	GetByExternalID(ctx context.Context, seasonID int64, externalTeamID string) (Team, bool, error)
	GetByID(ctx context.Context, id int64) (Team, bool, error)
	ListBySeason(ctx context.Context, seasonID int64) ([]Team, error)
	AssignManager(ctx context.Context, teamID, managerID int64) error
}
