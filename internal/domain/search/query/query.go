package query

import (
	"strings"
	"unicode/utf8"
)

// DefaultMinLength is the shortest normalized query that reaches the sources.
const DefaultMinLength = 2

// Query is a normalized free-text search term.
type Query struct {
	raw  string
	term string
}

// Parse trims and lower-cases raw once. The boolean is false when the
// normalized term is shorter than minLength runes.
func Parse(raw string, minLength int) (Query, bool) {
	term := strings.ToLower(strings.TrimSpace(raw))
	q := Query{raw: raw, term: term}
	if utf8.RuneCountInString(term) < minLength {
		return q, false
	}
	return q, true
}

// Raw returns the input as received.
func (q Query) Raw() string { return q.raw }

// Term returns the normalized term.
func (q Query) Term() string { return q.term }

// Matches reports whether the normalized term occurs in any of the fields,
// compared case-insensitively.
func (q Query) Matches(fields ...string) bool {
	for _, f := range fields {
		if f != "" && strings.Contains(strings.ToLower(f), q.term) {
			return true
		}
	}
	return false
}
