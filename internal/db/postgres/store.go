// Package postgres implements db.Store on PostgreSQL through pgx.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kailas-cloud/parksite/internal/db"
	"github.com/kailas-cloud/parksite/internal/db/sqlq"
)

var (
	_ db.Store    = (*Store)(nil)
	_ db.Migrator = (*Store)(nil)
)

// pool is the subset of *pgxpool.Pool the store needs.
type pool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// Config holds pool parameters.
type Config struct {
	DSN      string
	MaxConns int
	MinConns int
}

// Store implements db.Store over a pgx pool.
type Store struct {
	pool    pool
	dialect sqlq.Dialect
}

// NewStore connects a pool and pings it.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("dsn is required")
	}
	pc, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	pc.MaxConns = 10
	if cfg.MaxConns > 0 {
		pc.MaxConns = int32(cfg.MaxConns)
	}
	pc.MinConns = 2
	if cfg.MinConns > 0 {
		pc.MinConns = int32(cfg.MinConns)
	}
	pc.MaxConnLifetime = 1 * time.Hour
	pc.MaxConnIdleTime = 30 * time.Minute

	p, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}
	return newStore(p), nil
}

func newStore(p pool) *Store {
	return &Store{pool: p, dialect: sqlq.Postgres}
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return &db.Error{Op: db.OpPing, Err: err}
	}
	return nil
}

// Close closes the pool.
func (s *Store) Close() {
	s.pool.Close()
}

// WaitForReady polls Ping until the database responds or timeout expires.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for database: %w", ctx.Err())
		case <-ticker.C:
			if err := s.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}

// Migrate creates every collection table that does not exist yet.
func (s *Store) Migrate(ctx context.Context) error {
	for _, name := range db.Collections() {
		schema, _ := db.SchemaFor(name)
		if _, err := s.pool.Exec(ctx, s.dialect.CreateTable(schema)); err != nil {
			return &db.Error{Op: db.OpMigrate, Err: fmt.Errorf("%s: %w", name, err)}
		}
	}
	return nil
}

// SearchContains runs an ILIKE query over the match columns.
func (s *Store) SearchContains(ctx context.Context, q *db.ContainsQuery) ([]db.Row, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	rq := s.dialect.Contains(q)
	rows, err := s.query(ctx, rq)
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: err}
	}
	return rows, nil
}

// List returns one ordered page of a collection plus its total.
func (s *Store) List(ctx context.Context, q *db.ListQuery) (*db.ListResult, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	var total int64
	if err := s.pool.QueryRow(ctx, s.dialect.Count(q.Collection).SQL).Scan(&total); err != nil {
		return nil, &db.Error{Op: db.OpCount, Err: err}
	}

	rows, err := s.query(ctx, s.dialect.List(q))
	if err != nil {
		return nil, &db.Error{Op: db.OpList, Err: err}
	}
	return &db.ListResult{Total: int(total), Rows: rows}, nil
}

// Get reads one row by key.
func (s *Store) Get(ctx context.Context, q *db.GetQuery) (db.Row, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	rq := s.dialect.Get(q)
	vals := make([]*string, len(rq.Columns))
	if err := s.pool.QueryRow(ctx, rq.SQL, rq.Args...).Scan(sqlq.ScanDest(vals)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, db.ErrKeyNotFound
		}
		return nil, &db.Error{Op: db.OpGet, Err: err}
	}
	return sqlq.RowFromValues(rq.Columns, vals), nil
}

// Upsert writes all rows in one transaction.
func (s *Store) Upsert(ctx context.Context, collection string, rows []db.Row) error {
	schema, ok := db.SchemaFor(collection)
	if !ok {
		return fmt.Errorf("%w: %q", db.ErrUnknownCollection, collection)
	}
	for _, r := range rows {
		if err := schema.CheckRow(r); err != nil {
			return err
		}
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return &db.Error{Op: db.OpUpsert, Err: err}
	}
	for _, r := range rows {
		rq := s.dialect.Upsert(schema, r)
		if _, err := tx.Exec(ctx, rq.SQL, rq.Args...); err != nil {
			_ = tx.Rollback(ctx)
			return &db.Error{Op: db.OpUpsert, Err: err}
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return &db.Error{Op: db.OpUpsert, Err: err}
	}
	return nil
}

func (s *Store) query(ctx context.Context, rq sqlq.Query) ([]db.Row, error) {
	rows, err := s.pool.Query(ctx, rq.SQL, rq.Args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []db.Row
	for rows.Next() {
		vals := make([]*string, len(rq.Columns))
		if err := rows.Scan(sqlq.ScanDest(vals)...); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		out = append(out, sqlq.RowFromValues(rq.Columns, vals))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
