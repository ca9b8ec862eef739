package db

import (
	"fmt"
	"sort"
)

// Schema describes a content collection: its key column and columns.
// Columns are text unless listed in Integers.
type Schema struct {
	Name     string
	Key      string
	Columns  []string
	Integers []string
}

// IsInteger reports whether the column holds an integer.
func (s Schema) IsInteger(name string) bool {
	for _, c := range s.Integers {
		if c == name {
			return true
		}
	}
	return false
}

// HasColumn reports whether the column belongs to the collection.
func (s Schema) HasColumn(name string) bool {
	for _, c := range s.Columns {
		if c == name {
			return true
		}
	}
	return false
}

func (s Schema) checkColumns(cols []string) error {
	for _, c := range cols {
		if !s.HasColumn(c) {
			return fmt.Errorf("%w: unknown column %q in %s", ErrInvalidQuery, c, s.Name)
		}
	}
	return nil
}

// Collection schemas. Column order is the storage order.
var schemas = map[string]Schema{
	"faqs": {
		Name: "faqs", Key: "id",
		Columns:  []string{"id", "question", "answer", "position"},
		Integers: []string{"position"},
	},
	"posts": {
		Name: "posts", Key: "slug",
		Columns: []string{"slug", "title", "description", "published_at"},
	},
	"menu_items": {
		Name: "menu_items", Key: "id",
		Columns:  []string{"id", "title", "description", "category", "position"},
		Integers: []string{"position"},
	},
}

// SchemaFor returns the schema of a known collection.
func SchemaFor(collection string) (Schema, bool) {
	s, ok := schemas[collection]
	return s, ok
}

// Collections returns the known collection names in sorted order.
func Collections() []string {
	names := make([]string, 0, len(schemas))
	for n := range schemas {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// SearchOrder is the deterministic order of substring search hits:
// authored position when the collection has one, then key.
func (s Schema) SearchOrder() []Order {
	if s.HasColumn("position") {
		return []Order{{Column: "position"}, {Column: s.Key}}
	}
	if s.HasColumn("published_at") {
		return []Order{{Column: "published_at", Desc: true}, {Column: s.Key}}
	}
	return []Order{{Column: s.Key}}
}
