// Package querybuilder is a minimal $n-placeholder SQL builder. The
// repositories compose their statements from these helpers instead of
// concatenating strings by hand; anything the builder cannot express
// goes through Expr or a raw Suffix.
package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

// stmt accumulates SQL text and its bind arguments. Placeholders are
// numbered from the current argument count, so fragments compose in
// any order.
type stmt struct {
	sql  strings.Builder
	args []any
}

func (s *stmt) raw(text string) {
	s.sql.WriteString(text)
}

func (s *stmt) arg(value any) {
	s.args = append(s.args, value)
	s.sql.WriteString("$")
	s.sql.WriteString(strconv.Itoa(len(s.args)))
}

// bind copies a raw fragment, replacing ?-style placeholders with
// numbered ones. A fragment with no values passes through untouched.
func (s *stmt) bind(fragment string, values []any) {
	if len(values) == 0 {
		s.raw(fragment)
		return
	}

	next := 0
	for i := 0; i < len(fragment); i++ {
		if fragment[i] == '?' && next < len(values) {
			s.arg(values[next])
			next++
			continue
		}
		s.sql.WriteByte(fragment[i])
	}
}

func (s *stmt) where(conditions []Condition) {
	for i, c := range conditions {
		if i == 0 {
			s.raw(" WHERE ")
		} else {
			s.raw(" AND ")
		}
		c(s)
	}
}

// Condition writes one WHERE predicate. Conditions are always joined
// with AND.
type Condition func(*stmt)

func Eq(column string, value any) Condition {
	return func(s *stmt) {
		s.raw(column + " = ")
		s.arg(value)
	}
}

func In(column string, values []any) Condition {
	return func(s *stmt) {
		if len(values) == 0 {
			s.raw("1=0")
			return
		}
		s.raw(column + " IN (")
		for i, v := range values {
			if i > 0 {
				s.raw(", ")
			}
			s.arg(v)
		}
		s.raw(")")
	}
}

func IsNull(column string) Condition {
	return func(s *stmt) {
		s.raw(column + " IS NULL")
	}
}

// Expr injects a raw predicate with ?-style placeholders.
func Expr(fragment string, args ...any) Condition {
	return func(s *stmt) {
		s.bind(fragment, args)
	}
}

type SelectBuilder struct {
	columns []string
	table   string
	wheres  []Condition
	groupBy []string
	orderBy []string
	limit   int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.wheres = append(b.wheres, conditions...)
	return b
}

func (b *SelectBuilder) GroupBy(parts ...string) *SelectBuilder {
	b.groupBy = append(b.groupBy, parts...)
	return b
}

func (b *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, parts...)
	return b
}

func (b *SelectBuilder) Limit(limit int) *SelectBuilder {
	b.limit = limit
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("select columns are required")
	}
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("select table is required")
	}

	var s stmt
	s.raw("SELECT " + strings.Join(b.columns, ", ") + " FROM " + b.table)
	s.where(b.wheres)
	if len(b.groupBy) > 0 {
		s.raw(" GROUP BY " + strings.Join(b.groupBy, ", "))
	}
	if len(b.orderBy) > 0 {
		s.raw(" ORDER BY " + strings.Join(b.orderBy, ", "))
	}
	if b.limit > 0 {
		s.raw(" LIMIT " + strconv.Itoa(b.limit))
	}

	return s.sql.String(), s.args, nil
}

type InsertBuilder struct {
	table   string
	columns []string
	rows    [][]any
	suffix  string
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = append([]string(nil), columns...)
	return b
}

func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.rows = append(b.rows, append([]any(nil), values...))
	return b
}

// Suffix appends raw SQL after the VALUES list, typically an
// ON CONFLICT ... DO UPDATE clause or RETURNING list.
func (b *InsertBuilder) Suffix(sql string) *InsertBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("insert table is required")
	}
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("insert columns are required")
	}
	if len(b.rows) == 0 {
		return "", nil, fmt.Errorf("insert values are required")
	}

	var s stmt
	s.raw("INSERT INTO " + b.table + " (" + strings.Join(b.columns, ", ") + ") VALUES ")
	for rowIdx, row := range b.rows {
		if len(row) != len(b.columns) {
			return "", nil, fmt.Errorf("insert row %d has %d values, expected %d", rowIdx, len(row), len(b.columns))
		}
		if rowIdx > 0 {
			s.raw(", ")
		}
		s.raw("(")
		for colIdx, value := range row {
			if colIdx > 0 {
				s.raw(", ")
			}
			s.arg(value)
		}
		s.raw(")")
	}

	if b.suffix != "" {
		s.raw(" ")
		s.bind(b.suffix, nil)
	}

	return s.sql.String(), s.args, nil
}

type assignment struct {
	column string
	write  func(*stmt)
}

type UpdateBuilder struct {
	table  string
	sets   []assignment
	wheres []Condition
	suffix string
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, write: func(s *stmt) {
		s.arg(value)
	}})
	return b
}

// SetExpr assigns a raw SQL expression with ?-style placeholders.
func (b *UpdateBuilder) SetExpr(column, fragment string, args ...any) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, write: func(s *stmt) {
		s.bind(fragment, args)
	}})
	return b
}

func (b *UpdateBuilder) Where(conditions ...Condition) *UpdateBuilder {
	b.wheres = append(b.wheres, conditions...)
	return b
}

func (b *UpdateBuilder) Suffix(sql string) *UpdateBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *UpdateBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("update table is required")
	}
	if len(b.sets) == 0 {
		return "", nil, fmt.Errorf("update sets are required")
	}

	var s stmt
	s.raw("UPDATE " + b.table + " SET ")
	for i, set := range b.sets {
		if i > 0 {
			s.raw(", ")
		}
		s.raw(set.column + " = ")
		set.write(&s)
	}

	s.where(b.wheres)
	if b.suffix != "" {
		s.raw(" ")
		s.bind(b.suffix, nil)
	}

	return s.sql.String(), s.args, nil
}

type DeleteBuilder struct {
	table  string
	wheres []Condition
}

func DeleteFrom(table string) *DeleteBuilder {
	return &DeleteBuilder{table: table}
}

func (b *DeleteBuilder) Where(conditions ...Condition) *DeleteBuilder {
	b.wheres = append(b.wheres, conditions...)
	return b
}

func (b *DeleteBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("delete table is required")
	}
	if len(b.wheres) == 0 {
		return "", nil, fmt.Errorf("delete conditions are required")
	}

	var s stmt
	s.raw("DELETE FROM " + b.table)
	s.where(b.wheres)

	return s.sql.String(), s.args, nil
}
