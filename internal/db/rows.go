package db

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// CheckRow validates a row for writing into the collection.
func (s Schema) CheckRow(r Row) error {
	if r[s.Key] == "" {
		return fmt.Errorf("%w: %s row without %s", ErrInvalidQuery, s.Name, s.Key)
	}
	for col, v := range r {
		if !s.HasColumn(col) {
			return fmt.Errorf("%w: unknown column %q in %s", ErrInvalidQuery, col, s.Name)
		}
		if s.IsInteger(col) {
			if _, err := strconv.ParseInt(v, 10, 64); err != nil {
				return fmt.Errorf("%w: column %s.%s is not an integer: %q", ErrInvalidQuery, s.Name, col, v)
			}
		}
	}
	return nil
}

// Project keeps only the requested columns. Empty columns keeps all.
func Project(r Row, columns []string) Row {
	if len(columns) == 0 {
		out := make(Row, len(r))
		for k, v := range r {
			out[k] = v
		}
		return out
	}
	out := make(Row, len(columns))
	for _, c := range columns {
		if v, ok := r[c]; ok {
			out[c] = v
		}
	}
	return out
}

// MatchesAny reports whether term (already lower-cased) occurs in any of
// the columns, compared case-insensitively. NULL columns never match.
func MatchesAny(r Row, columns []string, term string) bool {
	for _, c := range columns {
		v, ok := r[c]
		if ok && strings.Contains(strings.ToLower(v), term) {
			return true
		}
	}
	return false
}

// SortRows orders rows in place the way the SQL drivers do: integer
// columns numerically, text columns bytewise, NULLs last in either direction.
func SortRows(rows []Row, s Schema, order []Order) {
	sort.SliceStable(rows, func(i, j int) bool {
		for _, o := range order {
			av, aok := rows[i][o.Column]
			bv, bok := rows[j][o.Column]
			if aok != bok {
				return aok
			}
			if !aok {
				continue
			}
			c := compareValues(av, bv, s.IsInteger(o.Column))
			if c == 0 {
				continue
			}
			if o.Desc {
				return c > 0
			}
			return c < 0
		}
		return false
	})
}

func compareValues(a, b string, integer bool) int {
	if integer {
		ai, _ := strconv.ParseInt(a, 10, 64)
		bi, _ := strconv.ParseInt(b, 10, 64)
		switch {
		case ai < bi:
			return -1
		case ai > bi:
			return 1
		}
		return 0
	}
	return strings.Compare(a, b)
}

// Page slices rows by offset and limit.
func Page(rows []Row, offset, limit int) []Row {
	if offset >= len(rows) {
		return nil
	}
	end := offset + limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[offset:end]
}
