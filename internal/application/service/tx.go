package service

import "context"

// TxManager scopes repository calls made with the derived context to one transaction.
type TxManager interface {
	// WithinTx runs fn in a read-write transaction. Write transactions are serialised,
	// so a count followed by an insert inside fn is race free. Nested calls join the
	// outer transaction.
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
	// WithinReadTx runs fn against one consistent snapshot.
	WithinReadTx(ctx context.Context, fn func(ctx context.Context) error) error
}
