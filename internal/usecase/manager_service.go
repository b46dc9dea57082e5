package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/mlasky/diamondsync/internal/domain/manager"
	"github.com/mlasky/diamondsync/internal/domain/team"
)

// ManagerService handles the out-of-band manager reference data.
// Scrape ingests never touch manager assignments; this is the only
// write path for them.
type ManagerService struct {
	managerRepo manager.Repository
	teamRepo    team.Repository
}

func NewManagerService(managerRepo manager.Repository, teamRepo team.Repository) *ManagerService {
	return &ManagerService{
		managerRepo: managerRepo,
		teamRepo:    teamRepo,
	}
}

func (s *ManagerService) UpsertManager(ctx context.Context, item manager.Manager) (manager.Manager, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ManagerService.UpsertManager")
	defer span.End()

	item.Name = strings.TrimSpace(item.Name)
	if item.Name == "" {
		return manager.Manager{}, fmt.Errorf("%w: manager name is required", ErrInvalidInput)
	}
	if item.ActiveFromYear <= 0 {
		return manager.Manager{}, fmt.Errorf("%w: active_from_year is required", ErrInvalidInput)
	}

	stored, err := s.managerRepo.Upsert(ctx, item)
	if err != nil {
		return manager.Manager{}, fmt.Errorf("upsert manager: %w", err)
	}
	return stored, nil
}

// AssignTeam links a team to a manager by name.
func (s *ManagerService) AssignTeam(ctx context.Context, teamID int64, managerName string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ManagerService.AssignTeam")
	defer span.End()

	managerName = strings.TrimSpace(managerName)
	if teamID <= 0 || managerName == "" {
		return fmt.Errorf("%w: team id and manager name are required", ErrInvalidInput)
	}

	m, found, err := s.managerRepo.GetByName(ctx, managerName)
	if err != nil {
		return fmt.Errorf("get manager: %w", err)
	}
	if !found {
		return fmt.Errorf("%w: manager=%s", ErrNotFound, managerName)
	}

	if err := s.teamRepo.AssignManager(ctx, teamID, m.ID); err != nil {
		return fmt.Errorf("assign manager: %w", err)
	}
	return nil
}

func (s *ManagerService) List(ctx context.Context) ([]manager.Manager, error) {
	items, err := s.managerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list managers: %w", err)
	}
	return items, nil
}
