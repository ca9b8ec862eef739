package result

import (
	"testing"

	"github.com/kailas-cloud/parksite/internal/domain/search/kind"
)

func TestNew_Valid(t *testing.T) {
	r, err := New(kind.Faq, "¿Necesito calcetines?", "Sí, antideslizantes", "/#faq", "faq")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Kind() != kind.Faq {
		t.Errorf("expected kind faq, got %s", r.Kind())
	}
	if r.Title() != "¿Necesito calcetines?" {
		t.Errorf("unexpected title %q", r.Title())
	}
	if r.Description() != "Sí, antideslizantes" {
		t.Errorf("unexpected description %q", r.Description())
	}
	if r.Href() != "/#faq" {
		t.Errorf("unexpected href %q", r.Href())
	}
	if r.SectionID() != "faq" {
		t.Errorf("unexpected section id %q", r.SectionID())
	}
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		k     kind.Kind
		title string
		href  string
	}{
		{"empty title", kind.Page, "", "/"},
		{"blank title", kind.Page, "   ", "/"},
		{"empty href", kind.Blog, "Post", ""},
		{"bad kind", kind.Kind("video"), "Title", "/"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.k, tc.title, "", tc.href, ""); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestTitleContains(t *testing.T) {
	r, err := New(kind.Page, "Fiestas de Cumpleaños", "", "/fiestas-y-eventos/fiestas-cumpleanos", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.TitleContains("cumpleaños") {
		t.Error("expected title to contain 'cumpleaños'")
	}
	if r.TitleContains("menu") {
		t.Error("did not expect title to contain 'menu'")
	}
}
