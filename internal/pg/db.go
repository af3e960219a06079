// Package pg implements the corpus query engine primitives over Postgres:
// auto-numbered placeholder binding, shared ranking clauses, rollup
// subqueries, and pagination. Repositories compose these into the
// entity-specific query shapes.
package pg

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is the narrow query surface repositories consume. *DB implements
// it; tests substitute fakes.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Compile-time check: DB implements Querier.
var _ Querier = (*DB)(nil)

// Config holds connection parameters for the corpus database.
type Config struct {
	URL      string
	MaxConns int32
}

// DB wraps a pgx connection pool. The engine only ever reads: no method
// here issues writes against the corpus.
type DB struct {
	pool *pgxpool.Pool
}

// Connect creates a connection pool for the corpus database.
func Connect(ctx context.Context, cfg Config) (*DB, error) {
	pc, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	if cfg.MaxConns > 0 {
		pc.MaxConns = cfg.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	return &DB{pool: pool}, nil
}

// Query runs a query returning rows.
func (d *DB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return d.pool.Query(ctx, sql, args...) //nolint:wrapcheck // repositories wrap with query context
}

// QueryRow runs a query returning at most one row.
func (d *DB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return d.pool.QueryRow(ctx, sql, args...)
}

// Ping checks connectivity.
func (d *DB) Ping(ctx context.Context) error {
	if err := d.pool.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Close shuts down the pool.
func (d *DB) Close() {
	d.pool.Close()
}

// WaitForReady polls Ping until the database responds or timeout expires.
func (d *DB) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for database: %w", ctx.Err())
		case <-ticker.C:
			if err := d.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}
