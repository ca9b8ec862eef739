// Package sqlq renders content-store queries for SQL dialects.
package sqlq

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kailas-cloud/parksite/internal/db"
)

// Dialect captures the syntax differences between SQL backends.
type Dialect struct {
	// Placeholder renders the n-th (1-based) bind parameter.
	Placeholder func(n int) string
	// Quote quotes an identifier.
	Quote func(name string) string
	// Like renders a case-insensitive LIKE of column against a bind
	// parameter holding an escaped %term% pattern.
	Like func(column, param string) string
	// AsText renders column cast to text, aliased to its own name.
	AsText func(column string) string
	// Positional is set when placeholders cannot be referenced twice.
	Positional bool
}

// Postgres uses $n placeholders and ILIKE.
var Postgres = Dialect{
	Placeholder: func(n int) string { return "$" + strconv.Itoa(n) },
	Quote:       doubleQuote,
	Like: func(column, param string) string {
		return doubleQuote(column) + ` ILIKE ` + param + ` ESCAPE '\'`
	},
	AsText: func(column string) string {
		return doubleQuote(column) + "::text AS " + doubleQuote(column)
	},
}

// SQLite uses ? placeholders; LIKE is case-insensitive for ASCII only.
var SQLite = Dialect{
	Placeholder: func(int) string { return "?" },
	Quote:       doubleQuote,
	Like: func(column, param string) string {
		return "lower(" + doubleQuote(column) + `) LIKE ` + param + ` ESCAPE '\'`
	},
	AsText: func(column string) string {
		return "CAST(" + doubleQuote(column) + " AS TEXT) AS " + doubleQuote(column)
	},
	Positional: true,
}

func doubleQuote(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// Query is rendered SQL plus its bind arguments.
type Query struct {
	SQL     string
	Args    []any
	Columns []string
}

func columnsOrAll(s db.Schema, cols []string) []string {
	if len(cols) == 0 {
		return s.Columns
	}
	return cols
}

func (d Dialect) selectList(cols []string) string {
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = d.AsText(c)
	}
	return strings.Join(parts, ", ")
}

func (d Dialect) orderBy(order []db.Order) string {
	if len(order) == 0 {
		return ""
	}
	parts := make([]string, len(order))
	for i, o := range order {
		// NULLs sort last in both directions, matching db.SortRows.
		p := "(" + d.Quote(o.Column) + " IS NULL), " + d.Quote(o.Column)
		if o.Desc {
			p += " DESC"
		}
		parts[i] = p
	}
	return " ORDER BY " + strings.Join(parts, ", ")
}

// Contains renders a ContainsQuery. The query must be validated.
func (d Dialect) Contains(q *db.ContainsQuery) Query {
	s, _ := db.SchemaFor(q.Collection)
	cols := columnsOrAll(s, q.Columns)

	pattern := db.LikePattern(q.Term)
	args := []any{pattern}
	preds := make([]string, len(q.MatchColumns))
	for i, c := range q.MatchColumns {
		if d.Positional && i > 0 {
			args = append(args, pattern)
		}
		preds[i] = d.Like(c, d.Placeholder(1))
	}
	args = append(args, q.Limit)

	sql := fmt.Sprintf("SELECT %s FROM %s WHERE %s%s LIMIT %s",
		d.selectList(cols), d.Quote(q.Collection), strings.Join(preds, " OR "),
		d.orderBy(s.SearchOrder()), d.Placeholder(len(args)))
	return Query{SQL: sql, Args: args, Columns: cols}
}

// List renders a page query. The query must be validated.
func (d Dialect) List(q *db.ListQuery) Query {
	s, _ := db.SchemaFor(q.Collection)
	cols := columnsOrAll(s, q.Columns)
	sql := fmt.Sprintf("SELECT %s FROM %s%s LIMIT %s OFFSET %s",
		d.selectList(cols), d.Quote(q.Collection), d.orderBy(q.OrderBy),
		d.Placeholder(1), d.Placeholder(2))
	return Query{SQL: sql, Args: []any{q.Limit, q.Offset}, Columns: cols}
}

// Count renders a row count of a collection.
func (d Dialect) Count(collection string) Query {
	return Query{SQL: "SELECT count(*) FROM " + d.Quote(collection)}
}

// Get renders a single-row lookup by key. The query must be validated.
func (d Dialect) Get(q *db.GetQuery) Query {
	s, _ := db.SchemaFor(q.Collection)
	cols := columnsOrAll(s, q.Columns)
	sql := fmt.Sprintf("SELECT %s FROM %s WHERE %s = %s",
		d.selectList(cols), d.Quote(q.Collection), d.Quote(s.Key), d.Placeholder(1))
	return Query{SQL: sql, Args: []any{q.Key}, Columns: cols}
}

// Upsert renders an insert-or-replace of one row. Every schema column is
// written; absent columns become NULL. The row must pass Schema.CheckRow.
func (d Dialect) Upsert(s db.Schema, r db.Row) Query {
	cols := make([]string, len(s.Columns))
	params := make([]string, len(s.Columns))
	args := make([]any, len(s.Columns))
	var sets []string
	for i, c := range s.Columns {
		cols[i] = d.Quote(c)
		params[i] = d.Placeholder(i + 1)
		args[i] = columnArg(s, c, r)
		if c != s.Key {
			sets = append(sets, d.Quote(c)+" = excluded."+d.Quote(c))
		}
	}
	sql := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (%s) DO UPDATE SET %s",
		d.Quote(s.Name), strings.Join(cols, ", "), strings.Join(params, ", "),
		d.Quote(s.Key), strings.Join(sets, ", "))
	return Query{SQL: sql, Args: args, Columns: s.Columns}
}

func columnArg(s db.Schema, col string, r db.Row) any {
	v, ok := r[col]
	if !ok {
		return nil
	}
	if s.IsInteger(col) {
		n, _ := strconv.ParseInt(v, 10, 64)
		return n
	}
	return v
}

// CreateTable renders the DDL of a collection.
func (d Dialect) CreateTable(s db.Schema) string {
	defs := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		typ := "TEXT"
		if s.IsInteger(c) {
			typ = "INTEGER"
		}
		def := d.Quote(c) + " " + typ
		if c == s.Key {
			def += " PRIMARY KEY"
		}
		defs[i] = def
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", d.Quote(s.Name), strings.Join(defs, ", "))
}

// RowFromValues builds a Row from nullable scanned values.
func RowFromValues(cols []string, vals []*string) db.Row {
	r := make(db.Row, len(cols))
	for i, c := range cols {
		if vals[i] != nil {
			r[c] = *vals[i]
		}
	}
	return r
}

// ScanDest returns scan destinations that fill vals, leaving nil for NULL.
func ScanDest(vals []*string) []any {
	dest := make([]any, len(vals))
	for i := range vals {
		dest[i] = &vals[i]
	}
	return dest
}
