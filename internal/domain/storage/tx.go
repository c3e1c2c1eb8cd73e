package storage

import "context"

// TxRunner executes fn inside one storage transaction. Repositories resolve
// the active transaction from the context, so a service can compose several
// repository calls into a single atomic unit without knowing the backend.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// NopTxRunner runs fn directly. Used with the in-memory repositories, whose
// operations are individually atomic.
type NopTxRunner struct{}

func (NopTxRunner) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
