package db

import (
	"fmt"
	"strings"
)

// ContainsQuery selects Columns from Collection where any of MatchColumns
// contains Term (case-insensitive), returning at most Limit rows.
type ContainsQuery struct {
	Collection   string
	Columns      []string
	MatchColumns []string
	Term         string
	Limit        int
}

// Validate checks the query against the collection schema.
func (q *ContainsQuery) Validate() error {
	s, ok := SchemaFor(q.Collection)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCollection, q.Collection)
	}
	if q.Term == "" {
		return fmt.Errorf("%w: empty term", ErrInvalidQuery)
	}
	if len(q.MatchColumns) == 0 {
		return fmt.Errorf("%w: no match columns", ErrInvalidQuery)
	}
	if q.Limit <= 0 {
		return fmt.Errorf("%w: limit must be positive", ErrInvalidQuery)
	}
	if err := s.checkColumns(q.Columns); err != nil {
		return err
	}
	return s.checkColumns(q.MatchColumns)
}

// ListQuery pages through a collection ordered by OrderBy.
type ListQuery struct {
	Collection string
	Columns    []string
	OrderBy    []Order
	Offset     int
	Limit      int
}

// Order is a single ORDER BY term.
type Order struct {
	Column string
	Desc   bool
}

// Validate checks the query against the collection schema.
func (q *ListQuery) Validate() error {
	s, ok := SchemaFor(q.Collection)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCollection, q.Collection)
	}
	if q.Offset < 0 || q.Limit <= 0 {
		return fmt.Errorf("%w: offset=%d limit=%d", ErrInvalidQuery, q.Offset, q.Limit)
	}
	if err := s.checkColumns(q.Columns); err != nil {
		return err
	}
	for _, o := range q.OrderBy {
		if !s.HasColumn(o.Column) {
			return fmt.Errorf("%w: unknown order column %q", ErrInvalidQuery, o.Column)
		}
	}
	return nil
}

// ListResult is a page of rows plus the collection size.
type ListResult struct {
	Total int
	Rows  []Row
}

// GetQuery fetches a single row by its key column.
type GetQuery struct {
	Collection string
	Columns    []string
	Key        string
}

// Validate checks the query against the collection schema.
func (q *GetQuery) Validate() error {
	s, ok := SchemaFor(q.Collection)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCollection, q.Collection)
	}
	if q.Key == "" {
		return fmt.Errorf("%w: empty key", ErrInvalidQuery)
	}
	return s.checkColumns(q.Columns)
}

// LikePattern wraps term as a %term% pattern, escaping LIKE wildcards with
// backslash so the term is matched literally.
func LikePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(term) + "%"
}
