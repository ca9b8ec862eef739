package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/parksite/internal/db"
)

func seeded(t *testing.T) *Store {
	t.Helper()
	s := New()
	err := s.Upsert(context.Background(), "menu_items", []db.Row{
		{"id": "m2", "title": "Agua Mineral", "category": "Bebidas", "position": "2"},
		{"id": "m1", "title": "Refresco", "description": "Sabor naranja o agua de jamaica", "category": "Bebidas", "position": "1"},
		{"id": "m3", "title": "Nachos", "category": "Snacks", "position": "3"},
	})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	return s
}

func TestSearchContains(t *testing.T) {
	s := seeded(t)
	rows, err := s.SearchContains(context.Background(), &db.ContainsQuery{
		Collection:   "menu_items",
		Columns:      []string{"title", "description", "category"},
		MatchColumns: []string{"title", "description"},
		Term:         "agua",
		Limit:        5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0]["title"] != "Refresco" || rows[1]["title"] != "Agua Mineral" {
		t.Errorf("expected position order, got %v", rows)
	}
	if _, ok := rows[1]["description"]; ok {
		t.Error("NULL description should be absent")
	}
}

func TestSearchContains_FailOn(t *testing.T) {
	s := seeded(t)
	s.FailOn = map[string]error{"menu_items": errors.New("boom")}

	_, err := s.SearchContains(context.Background(), &db.ContainsQuery{
		Collection: "menu_items", MatchColumns: []string{"title"}, Term: "agua", Limit: 5,
	})
	if err == nil {
		t.Fatal("expected injected error")
	}
}

func TestSearchContains_CanceledContext(t *testing.T) {
	s := seeded(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.SearchContains(ctx, &db.ContainsQuery{
		Collection: "menu_items", MatchColumns: []string{"title"}, Term: "agua", Limit: 5,
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestGetAndUpsertReplace(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	if err := s.Upsert(ctx, "menu_items", []db.Row{{"id": "m1", "title": "Refresco grande"}}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	row, err := s.Get(ctx, &db.GetQuery{Collection: "menu_items", Key: "m1"})
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if row["title"] != "Refresco grande" {
		t.Errorf("unexpected title %q", row["title"])
	}
	if _, ok := row["description"]; ok {
		t.Error("replaced row must not keep old columns")
	}

	if _, err := s.Get(ctx, &db.GetQuery{Collection: "menu_items", Key: "zz"}); !errors.Is(err, db.ErrKeyNotFound) {
		t.Errorf("expected ErrKeyNotFound, got %v", err)
	}
}

func TestList(t *testing.T) {
	s := seeded(t)
	res, err := s.List(context.Background(), &db.ListQuery{
		Collection: "menu_items",
		OrderBy:    []db.Order{{Column: "position", Desc: true}},
		Limit:      2,
	})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if res.Total != 3 || len(res.Rows) != 2 {
		t.Fatalf("unexpected result: total=%d rows=%d", res.Total, len(res.Rows))
	}
	if res.Rows[0]["id"] != "m3" {
		t.Errorf("expected m3 first, got %s", res.Rows[0]["id"])
	}
}

func TestUpsert_UnknownCollection(t *testing.T) {
	err := New().Upsert(context.Background(), "users", []db.Row{{"id": "1"}})
	if !errors.Is(err, db.ErrUnknownCollection) {
		t.Fatalf("expected ErrUnknownCollection, got %v", err)
	}
}
