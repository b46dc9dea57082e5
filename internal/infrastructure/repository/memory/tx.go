package memory

import "context"

// TxRunner satisfies the transactional boundary without a database.
// The in-memory repositories mutate state directly, so fn just runs.
type TxRunner struct{}

func NewTxRunner() *TxRunner {
	return &TxRunner{}
}

func (r *TxRunner) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
