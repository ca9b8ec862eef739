// Package memory is an in-process db.Store for local development and tests.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/kailas-cloud/parksite/internal/db"
)

var _ db.Store = (*Store)(nil)

// Store keeps rows per collection, keyed by the schema key column.
type Store struct {
	mu   sync.RWMutex
	data map[string]map[string]db.Row

	// FailOn makes every operation on the named collection fail. Test hook.
	FailOn map[string]error
}

// New creates an empty store.
func New() *Store {
	return &Store{data: make(map[string]map[string]db.Row)}
}

// Ping always succeeds.
func (s *Store) Ping(context.Context) error { return nil }

// Close is a no-op.
func (s *Store) Close() {}

// WaitForReady returns immediately.
func (s *Store) WaitForReady(context.Context, time.Duration) error { return nil }

// SearchContains filters the collection in process.
func (s *Store) SearchContains(ctx context.Context, q *db.ContainsQuery) ([]db.Row, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	if err := s.fail(ctx, q.Collection); err != nil {
		return nil, err
	}
	schema, _ := db.SchemaFor(q.Collection)

	var matched []db.Row
	for _, r := range s.snapshot(q.Collection) {
		if db.MatchesAny(r, q.MatchColumns, q.Term) {
			matched = append(matched, r)
		}
	}
	db.SortRows(matched, schema, schema.SearchOrder())
	if len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}
	for i, r := range matched {
		matched[i] = db.Project(r, q.Columns)
	}
	return matched, nil
}

// List returns a page of the collection.
func (s *Store) List(ctx context.Context, q *db.ListQuery) (*db.ListResult, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	if err := s.fail(ctx, q.Collection); err != nil {
		return nil, err
	}
	schema, _ := db.SchemaFor(q.Collection)

	all := s.snapshot(q.Collection)
	db.SortRows(all, schema, q.OrderBy)
	page := db.Page(all, q.Offset, q.Limit)
	rows := make([]db.Row, len(page))
	for i, r := range page {
		rows[i] = db.Project(r, q.Columns)
	}
	return &db.ListResult{Total: len(all), Rows: rows}, nil
}

// Get returns a row by key.
func (s *Store) Get(ctx context.Context, q *db.GetQuery) (db.Row, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	if err := s.fail(ctx, q.Collection); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.data[q.Collection][q.Key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return db.Project(r, q.Columns), nil
}

// Upsert replaces rows by key.
func (s *Store) Upsert(ctx context.Context, collection string, rows []db.Row) error {
	schema, ok := db.SchemaFor(collection)
	if !ok {
		return fmt.Errorf("%w: %q", db.ErrUnknownCollection, collection)
	}
	if err := s.fail(ctx, collection); err != nil {
		return err
	}
	for _, r := range rows {
		if err := schema.CheckRow(r); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.data[collection]
	if !ok {
		m = make(map[string]db.Row)
		s.data[collection] = m
	}
	for _, r := range rows {
		m[r[schema.Key]] = db.Project(r, nil)
	}
	return nil
}

func (s *Store) fail(ctx context.Context, collection string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err, ok := s.FailOn[collection]; ok {
		return &db.Error{Op: db.OpSearch, Err: err}
	}
	return nil
}

// snapshot copies the collection rows, sorted by key for stable iteration.
func (s *Store) snapshot(collection string) []db.Row {
	s.mu.RLock()
	defer s.mu.RUnlock()
	schema, _ := db.SchemaFor(collection)
	m := s.data[collection]
	out := make([]db.Row, 0, len(m))
	for _, r := range m {
		out = append(out, r)
	}
	db.SortRows(out, schema, []db.Order{{Column: schema.Key}})
	return out
}
