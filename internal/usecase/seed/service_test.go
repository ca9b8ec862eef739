package seed

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/kailas-cloud/parksite/internal/domain"
	"github.com/kailas-cloud/parksite/internal/domain/content"
)

type mockWriter struct {
	faqs  []content.Faq
	posts []content.Post
	items []content.MenuItem
	err   error
}

func (m *mockWriter) SaveFaqs(_ context.Context, faqs []content.Faq) error {
	m.faqs = faqs
	return m.err
}

func (m *mockWriter) SavePosts(_ context.Context, posts []content.Post) error {
	m.posts = posts
	return m.err
}

func (m *mockWriter) SaveMenuItems(_ context.Context, items []content.MenuItem) error {
	m.items = items
	return m.err
}

const fixtureYAML = `
faqs:
  - question: "¿Necesito calcetines especiales?"
    answer: "Sí, calcetines antiderrapantes."
  - id: faq-parking
    question: "¿Hay estacionamiento?"
posts:
  - slug: consejos-seguridad
    title: "Consejos de seguridad"
    description: "Salta sin riesgos"
    published_at: 2024-06-01
menu_items:
  - title: "Agua"
    category: "Bebidas"
`

func TestParseAndApply(t *testing.T) {
	f, err := Parse([]byte(fixtureYAML))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	w := &mockWriter{}
	svc := New(w)

	sum, err := svc.Apply(context.Background(), f)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if sum != (Summary{Faqs: 2, Posts: 1, MenuItems: 1}) {
		t.Errorf("unexpected summary %+v", sum)
	}
	if w.faqs[0].ID == "" || w.faqs[1].ID != "faq-parking" {
		t.Errorf("unexpected faq ids %q %q", w.faqs[0].ID, w.faqs[1].ID)
	}
	if w.posts[0].PublishedAt.Year() != 2024 {
		t.Errorf("expected published_at to parse, got %v", w.posts[0].PublishedAt)
	}
	if w.items[0].Description != "" {
		t.Errorf("expected empty description, got %q", w.items[0].Description)
	}
}

func TestApply_StableIDs(t *testing.T) {
	f, err := Parse([]byte(fixtureYAML))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	w1, w2 := &mockWriter{}, &mockWriter{}
	if _, err := New(w1).Apply(context.Background(), f); err != nil {
		t.Fatal(err)
	}
	if _, err := New(w2).Apply(context.Background(), f); err != nil {
		t.Fatal(err)
	}
	if w1.faqs[0].ID != w2.faqs[0].ID || w1.items[0].ID != w2.items[0].ID {
		t.Error("expected derived ids to be stable across runs")
	}
}

func TestApply_Invalid(t *testing.T) {
	w := &mockWriter{}
	_, err := New(w).Apply(context.Background(), &Fixture{
		Faqs:  []FaqFixture{{Question: "ok"}},
		Posts: []PostFixture{{Title: "sin slug"}},
	})
	if !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
	if w.faqs != nil {
		t.Error("nothing must be written when validation fails")
	}
}

func TestApply_WriterError(t *testing.T) {
	boom := errors.New("boom")
	_, err := New(&mockWriter{err: boom}).Apply(context.Background(), &Fixture{Faqs: []FaqFixture{{Question: "¿Qué?"}}})
	if !errors.Is(err, boom) {
		t.Fatalf("expected writer error, got %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	if err := os.WriteFile(path, []byte(fixtureYAML), 0o600); err != nil {
		t.Fatal(err)
	}
	f, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(f.Faqs) != 2 || len(f.Posts) != 1 || len(f.MenuItems) != 1 {
		t.Errorf("unexpected fixture %+v", f)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
