package valkey

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/parksite/internal/db"
)

// SearchContains scans the collection and filters rows in process.
// valkey-search has no substring matching over TEXT, so a SCAN is the
// only portable option; collections here hold tens of rows.
func (s *Store) SearchContains(ctx context.Context, q *db.ContainsQuery) ([]db.Row, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	schema, _ := db.SchemaFor(q.Collection)

	all, err := s.loadCollection(ctx, q.Collection)
	if err != nil {
		return nil, err
	}

	matched := all[:0]
	for _, r := range all {
		if db.MatchesAny(r, q.MatchColumns, q.Term) {
			matched = append(matched, r)
		}
	}
	db.SortRows(matched, schema, schema.SearchOrder())

	if len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}
	out := make([]db.Row, len(matched))
	for i, r := range matched {
		out[i] = db.Project(r, q.Columns)
	}
	return out, nil
}

// List returns a page of the collection in the requested order.
func (s *Store) List(ctx context.Context, q *db.ListQuery) (*db.ListResult, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	schema, _ := db.SchemaFor(q.Collection)

	all, err := s.loadCollection(ctx, q.Collection)
	if err != nil {
		return nil, err
	}
	db.SortRows(all, schema, q.OrderBy)

	page := db.Page(all, q.Offset, q.Limit)
	rows := make([]db.Row, len(page))
	for i, r := range page {
		rows[i] = db.Project(r, q.Columns)
	}
	return &db.ListResult{Total: len(all), Rows: rows}, nil
}

// Get returns a single row by key.
func (s *Store) Get(ctx context.Context, q *db.GetQuery) (db.Row, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	m, err := s.hGetAll(ctx, s.rowKey(q.Collection, q.Key))
	if err != nil {
		return nil, err
	}
	if len(m) == 0 {
		return nil, db.ErrKeyNotFound
	}
	return db.Project(db.Row(m), q.Columns), nil
}

// Upsert replaces rows by key.
func (s *Store) Upsert(ctx context.Context, collection string, rows []db.Row) error {
	schema, ok := db.SchemaFor(collection)
	if !ok {
		return fmt.Errorf("%w: %q", db.ErrUnknownCollection, collection)
	}
	keys := make([]string, len(rows))
	for i, r := range rows {
		if err := schema.CheckRow(r); err != nil {
			return err
		}
		keys[i] = s.rowKey(collection, r[schema.Key])
	}
	return s.replaceMulti(ctx, keys, rows)
}

func (s *Store) loadCollection(ctx context.Context, collection string) ([]db.Row, error) {
	keys, err := s.scan(ctx, s.collectionPattern(collection))
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", collection, err)
	}
	maps, err := s.hGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", collection, err)
	}
	rows := make([]db.Row, 0, len(maps))
	for _, m := range maps {
		if len(m) == 0 {
			continue // key may have been deleted between SCAN and HGETALL
		}
		rows = append(rows, db.Row(m))
	}
	return rows, nil
}
