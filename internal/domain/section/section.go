package section

import (
	"fmt"

	"github.com/kailas-cloud/parksite/internal/domain/search/kind"
	"github.com/kailas-cloud/parksite/internal/domain/search/query"
	"github.com/kailas-cloud/parksite/internal/domain/search/result"
)

// Entry is a hand-authored page or in-page anchor that is searchable
// alongside dynamic content.
type Entry struct {
	Kind        kind.Kind `yaml:"kind"`
	Title       string    `yaml:"title"`
	Description string    `yaml:"description"`
	Href        string    `yaml:"href"`
	SectionID   string    `yaml:"section_id"`
}

// Table is an immutable list of section entries. Safe for concurrent use.
type Table struct {
	entries []result.Result
}

// NewTable validates entries and builds a table. Order is preserved.
func NewTable(entries []Entry) (*Table, error) {
	rs := make([]result.Result, 0, len(entries))
	for i, e := range entries {
		if !e.Kind.IsStatic() {
			return nil, fmt.Errorf("section %d (%q): kind must be page or section, got %q", i, e.Title, e.Kind)
		}
		r, err := result.New(e.Kind, e.Title, e.Description, e.Href, e.SectionID)
		if err != nil {
			return nil, fmt.Errorf("section %d: %w", i, err)
		}
		rs = append(rs, r)
	}
	return &Table{entries: rs}, nil
}

// Len returns the number of entries.
func (t *Table) Len() int { return len(t.entries) }

// Match returns entries whose title or description contains the query,
// in table order.
func (t *Table) Match(q query.Query) []result.Result {
	var out []result.Result
	for i := range t.entries {
		e := &t.entries[i]
		if q.Matches(e.Title(), e.Description()) {
			out = append(out, *e)
		}
	}
	return out
}

// PageHrefs returns the hrefs of page entries that point at a path
// (no fragment-only targets), in table order without duplicates.
func (t *Table) PageHrefs() []string {
	seen := make(map[string]struct{})
	var out []string
	for i := range t.entries {
		e := &t.entries[i]
		if e.Kind() != kind.Page {
			continue
		}
		href := stripFragment(e.Href())
		if href == "" {
			continue
		}
		if _, ok := seen[href]; ok {
			continue
		}
		seen[href] = struct{}{}
		out = append(out, href)
	}
	return out
}

func stripFragment(href string) string {
	for i := 0; i < len(href); i++ {
		if href[i] == '#' {
			return href[:i]
		}
	}
	return href
}
