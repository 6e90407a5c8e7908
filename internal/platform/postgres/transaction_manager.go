package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TransactionManager begins database transactions. Every publish/update in
// the revision service runs inside exactly one of these.
type TransactionManager interface {
	BeginTx(ctx context.Context) (Transaction, error)
}

// Transaction represents an open database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
	Tx() pgx.Tx // The underlying pgx.Tx for use with repository WithTx
}

// PoolTransactionManager implements TransactionManager using a pgxpool.Pool.
type PoolTransactionManager struct {
	pool *pgxpool.Pool
}

// NewTransactionManager creates a new transaction manager.
func NewTransactionManager(pool *pgxpool.Pool) TransactionManager {
	return &PoolTransactionManager{pool: pool}
}

// BeginTx starts a new database transaction.
func (m *PoolTransactionManager) BeginTx(ctx context.Context) (Transaction, error) {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &PgxTransaction{tx: tx}, nil
}

// PgxTransaction wraps a pgx.Tx to implement the Transaction interface.
type PgxTransaction struct {
	tx pgx.Tx
}

func (t *PgxTransaction) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

// Rollback aborts the transaction. Calling it after a successful commit is
// a no-op from the caller's perspective (pgx returns ErrTxClosed).
func (t *PgxTransaction) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

func (t *PgxTransaction) Tx() pgx.Tx {
	return t.tx
}
