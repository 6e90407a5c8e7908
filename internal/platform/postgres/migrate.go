package postgres

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkpress/inkpress/internal/platform/logger"
)

//go:embed schema.sql
var schemaSQL string

// Migrator applies the embedded schema at startup. The schema uses
// CREATE ... IF NOT EXISTS throughout, so running it repeatedly is safe.
type Migrator struct {
	pool   *pgxpool.Pool
	logger logger.Logger
}

// NewMigrator creates a schema migrator.
func NewMigrator(pool *pgxpool.Pool, log logger.Logger) *Migrator {
	return &Migrator{pool: pool, logger: log}
}

// Run applies the schema.
func (m *Migrator) Run(ctx context.Context) error {
	m.logger.Info(ctx, "applying database schema")

	if _, err := m.pool.Exec(ctx, schemaSQL); err != nil {
		m.logger.Error(ctx, "schema migration failed", "error", err)
		return fmt.Errorf("apply schema: %w", err)
	}

	m.logger.Info(ctx, "database schema up to date")
	return nil
}
