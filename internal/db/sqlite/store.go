// Package sqlite implements db.Store on an embedded SQLite file.
//
// Matching uses lower() with LIKE, which folds ASCII letters only:
// "CUMPLEAÑOS" stored does not match "cumpleaños" searched. Use the
// postgres driver when content carries upper-case accented text.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/kailas-cloud/parksite/internal/db"
	"github.com/kailas-cloud/parksite/internal/db/sqlq"
)

var (
	_ db.Store    = (*Store)(nil)
	_ db.Migrator = (*Store)(nil)
)

// Store implements db.Store via database/sql and modernc.org/sqlite.
type Store struct {
	db      *sql.DB
	dialect sqlq.Dialect
}

// NewStore opens the database at path, creating its directory if needed.
// The database is opened in WAL mode with a single connection.
func NewStore(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("path is required")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return &Store{db: sqlDB, dialect: sqlq.SQLite}, nil
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return &db.Error{Op: db.OpPing, Err: err}
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() {
	_ = s.db.Close()
}

// WaitForReady pings once; an embedded database is ready when opened.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return s.Ping(ctx)
}

// Migrate creates every collection table that does not exist yet.
func (s *Store) Migrate(ctx context.Context) error {
	for _, name := range db.Collections() {
		schema, _ := db.SchemaFor(name)
		if _, err := s.db.ExecContext(ctx, s.dialect.CreateTable(schema)); err != nil {
			return &db.Error{Op: db.OpMigrate, Err: fmt.Errorf("%s: %w", name, err)}
		}
	}
	return nil
}

// SearchContains runs a LIKE query over the lower-cased match columns.
// Case folding covers ASCII only.
func (s *Store) SearchContains(ctx context.Context, q *db.ContainsQuery) ([]db.Row, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	rows, err := s.query(ctx, s.dialect.Contains(q))
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
	if err := s.db.QueryRowContext(ctx, s.dialect.Count(q.Collection).SQL).Scan(&total); err != nil {
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
	if err := s.db.QueryRowContext(ctx, rq.SQL, rq.Args...).Scan(sqlq.ScanDest(vals)...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
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

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &db.Error{Op: db.OpUpsert, Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	for _, r := range rows {
		rq := s.dialect.Upsert(schema, r)
		if _, err := tx.ExecContext(ctx, rq.SQL, rq.Args...); err != nil {
			return &db.Error{Op: db.OpUpsert, Err: err}
		}
	}
	if err := tx.Commit(); err != nil {
		return &db.Error{Op: db.OpUpsert, Err: err}
	}
	return nil
}

func (s *Store) query(ctx context.Context, rq sqlq.Query) ([]db.Row, error) {
	rows, err := s.db.QueryContext(ctx, rq.SQL, rq.Args...)
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
	return out, rows.Err()
}
