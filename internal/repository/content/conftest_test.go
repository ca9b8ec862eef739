package content

import (
	"context"
	"testing"

	"github.com/kailas-cloud/parksite/internal/db"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	searchContainsFn func(ctx context.Context, q *db.ContainsQuery) ([]db.Row, error)
	listFn           func(ctx context.Context, q *db.ListQuery) (*db.ListResult, error)
	getFn            func(ctx context.Context, q *db.GetQuery) (db.Row, error)
	upsertFn         func(ctx context.Context, collection string, rows []db.Row) error
}

func (m *mockStore) SearchContains(ctx context.Context, q *db.ContainsQuery) ([]db.Row, error) {
	if m.searchContainsFn != nil {
		return m.searchContainsFn(ctx, q)
	}
	return nil, nil
}

func (m *mockStore) List(ctx context.Context, q *db.ListQuery) (*db.ListResult, error) {
	if m.listFn != nil {
		return m.listFn(ctx, q)
	}
	return &db.ListResult{}, nil
}

func (m *mockStore) Get(ctx context.Context, q *db.GetQuery) (db.Row, error) {
	if m.getFn != nil {
		return m.getFn(ctx, q)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockStore) Upsert(ctx context.Context, collection string, rows []db.Row) error {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, collection, rows)
	}
	return nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms), ms
}
