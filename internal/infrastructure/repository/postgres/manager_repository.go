package postgres

import (
	"context"
	"fmt"

	"github.com/mlasky/diamondsync/internal/domain/manager"
	qb "github.com/mlasky/diamondsync/internal/platform/querybuilder"
)

type ManagerRepository struct {
	store *Store
}

func NewManagerRepository(store *Store) *ManagerRepository {
	return &ManagerRepository{store: store}
}

func (r *ManagerRepository) Upsert(ctx context.Context, item manager.Manager) (manager.Manager, error) {
	insertModel := managerInsertModel{
		Name:            item.Name,
		ActiveFromYear:  item.ActiveFromYear,
		ActiveUntilYear: intPtrToNullable(item.ActiveUntilYear),
	}
	query, args, err := qb.InsertModel("managers", insertModel, `ON CONFLICT (name)
DO UPDATE SET
    active_from_year = EXCLUDED.active_from_year,
    active_until_year = EXCLUDED.active_until_year,
    updated_at = NOW()
RETURNING id`)
	if err != nil {
		return manager.Manager{}, fmt.Errorf("build upsert manager query: %w", err)
	}

	if err := r.store.session(ctx).GetContext(ctx, &item.ID, query, args...); err != nil {
		return manager.Manager{}, fmt.Errorf("upsert manager name=%s: %w", item.Name, err)
	}
	return item, nil
}

func (r *ManagerRepository) GetByName(ctx context.Context, name string) (manager.Manager, bool, error) {
	query, args, err := qb.Select("*").From("managers").
		Where(qb.Eq("name", name)).
		Limit(1).
		ToSQL()
	if err != nil {
		return manager.Manager{}, false, fmt.Errorf("build select manager query: %w", err)
	}

	var row managerTableModel
	if err := r.store.session(ctx).GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return manager.Manager{}, false, nil
		}
		return manager.Manager{}, false, fmt.Errorf("select manager: %w", err)
	}
	return managerFromRow(row), true, nil
}

func (r *ManagerRepository) List(ctx context.Context) ([]manager.Manager, error) {
	query, args, err := qb.Select("*").From("managers").OrderBy("name").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list managers query: %w", err)
	}

	var rows []managerTableModel
	if err := r.store.session(ctx).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list managers: %w", err)
	}

	out := make([]manager.Manager, 0, len(rows))
	for _, row := range rows {
		out = append(out, managerFromRow(row))
	}
	return out, nil
}

func managerFromRow(row managerTableModel) manager.Manager {
	return manager.Manager{
		ID:              row.ID,
		Name:            row.Name,
		ActiveFromYear:  row.ActiveFromYear,
		ActiveUntilYear: nullIntToIntPtr(row.ActiveUntilYear),
	}
}
