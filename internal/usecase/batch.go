package usecase

import (
	"context"
	"fmt"
)

// TxRunner is the transactional boundary around a batch. The postgres
// store carries the open transaction in the context, so a nested WithTx
// joins it instead of opening a second one.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// savepointRunner is implemented by stores that can scope one row's
// writes to a savepoint, so a constraint violation rolls back that row
// alone instead of poisoning the batch transaction.
type savepointRunner interface {
	WithSavepoint(ctx context.Context, fn func(ctx context.Context) error) error
}

// RowError records one failed record inside an otherwise-committed
// batch. Index is the record's position in the input slice; Key is the
// record's natural key rendered for logs.
type RowError struct {
	Index int
	Key   string
	Err   error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d (%s): %v", e.Index, e.Key, e.Err)
}

func (e RowError) Unwrap() error {
	return e.Err
}

// BatchResult is what a reconciliation pass reports: how many rows were
// written and which ones were skipped. Skipped rows never abort the
// batch; the caller decides whether partial success is acceptable.
type BatchResult struct {
	Processed int
	Errors    []RowError
}

func (r *BatchResult) fail(index int, key string, err error) {
	r.Errors = append(r.Errors, RowError{Index: index, Key: key, Err: err})
}
