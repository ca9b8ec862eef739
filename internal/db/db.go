package db

import (
	"context"
	"time"
)

// Store is the main database facade combining all sub-interfaces.
type Store interface {
	Pinger
	Searcher
	Lister
	Writer
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Row is a single record keyed by column name. An absent column is NULL.
type Row map[string]string

// Value returns the column value and whether it was non-NULL.
func (r Row) Value(column string) (string, bool) {
	v, ok := r[column]
	return v, ok
}

// String returns the column value, "" when NULL.
func (r Row) String(column string) string {
	return r[column]
}

// Searcher runs case-insensitive substring queries over a collection.
type Searcher interface {
	SearchContains(ctx context.Context, q *ContainsQuery) ([]Row, error)
}

// Lister reads rows by key or in pages.
type Lister interface {
	List(ctx context.Context, q *ListQuery) (*ListResult, error)
	Get(ctx context.Context, q *GetQuery) (Row, error)
}

// Writer stores rows. Existing rows with the same key are replaced.
type Writer interface {
	Upsert(ctx context.Context, collection string, rows []Row) error
}

// Migrator creates the collection tables when missing. Implemented by SQL stores.
type Migrator interface {
	Migrate(ctx context.Context) error
}
