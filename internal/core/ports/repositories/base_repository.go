package repositories

import (
	"context"
)

// TransactionManager runs a unit of work inside one database transaction.
type TransactionManager interface {
	// RunInTx calls fn with a context carrying the transaction. Repositories
	// reached with that context join it. fn returning an error rolls back.
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
