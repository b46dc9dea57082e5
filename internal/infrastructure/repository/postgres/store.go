package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Store owns the database handle and the transaction lifecycle. A
// transaction opened by WithTx travels in the context, so repositories
// join it transparently through session and callers never pick between
// tx and non-tx method variants.
type Store struct {
	db *sqlx.DB
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

func (s *Store) DB() *sqlx.DB {
	return s.db
}

type txContextKey struct{}

// WithTx runs fn inside a transaction. When the context already carries
// an open transaction, fn joins it and the outermost caller commits.
func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if txFromContext(ctx) != nil {
		return fn(ctx)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(context.WithValue(ctx, txContextKey{}, tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// WithSavepoint scopes fn to a savepoint when a transaction is open,
// so a failed statement inside fn does not poison the rest of the
// batch. Outside a transaction each statement auto-commits and fn runs
// as-is.
func (s *Store) WithSavepoint(ctx context.Context, fn func(ctx context.Context) error) error {
	tx := txFromContext(ctx)
	if tx == nil {
		return fn(ctx)
	}

	if _, err := tx.ExecContext(ctx, "SAVEPOINT row_scope"); err != nil {
		return fmt.Errorf("savepoint: %w", err)
	}
	if err := fn(ctx); err != nil {
		if _, rbErr := tx.ExecContext(ctx, "ROLLBACK TO SAVEPOINT row_scope"); rbErr != nil {
			return fmt.Errorf("rollback to savepoint after %v: %w", err, rbErr)
		}
		return err
	}
	if _, err := tx.ExecContext(ctx, "RELEASE SAVEPOINT row_scope"); err != nil {
		return fmt.Errorf("release savepoint: %w", err)
	}
	return nil
}

func txFromContext(ctx context.Context) *sqlx.Tx {
	tx, _ := ctx.Value(txContextKey{}).(*sqlx.Tx)
	return tx
}

// session is the read/write surface shared by *sqlx.DB and *sqlx.Tx.
type session interface {
	GetContext(ctx context.Context, dest any, query string, args ...any) error
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *Store) session(ctx context.Context) session {
	if tx := txFromContext(ctx); tx != nil {
		return tx
	}
	return s.db
}
