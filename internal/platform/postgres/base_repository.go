package postgres

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is the common interface over pgxpool.Pool and pgx.Tx, so that a
// repository can run against the pool or inside a transaction unchanged.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, arguments ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, arguments ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// BaseRepository holds the database handle and statement builder shared by
// all repositories.
type BaseRepository struct {
	DB Querier
	SB sq.StatementBuilderType
}

// NewBaseRepository creates a base repository bound to the connection pool.
func NewBaseRepository(db *pgxpool.Pool) BaseRepository {
	return BaseRepository{
		DB: db,
		SB: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// WithTx returns a copy of the base repository bound to the transaction.
func (b BaseRepository) WithTx(tx pgx.Tx) BaseRepository {
	return BaseRepository{
		DB: tx,
		SB: b.SB,
	}
}
