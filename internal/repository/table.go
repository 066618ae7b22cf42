package repository

import (
	"fmt"
	"strings"
)

// Scanner is satisfied by *sql.Row and *sql.Rows.
type Scanner interface {
	Scan(dest ...any) error
}

// Table describes how one entity maps onto its SQL table. Columns excludes
// the id column and fixes the order used by Values and Scan.
type Table[T any] struct {
	Entity    string
	Name      string
	IDColumn  string
	Columns   []string
	UniqueKey []string
	// Values returns the column values of rec in Columns order.
	Values func(rec *T) []any
	// Scan reads the id column followed by Columns.
	Scan func(row Scanner) (T, error)
}

func (t Table[T]) selectList() string {
	return t.IDColumn + ", " + strings.Join(t.Columns, ", ")
}

func (t Table[T]) insertSQL() string {
	return fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		t.Name, strings.Join(t.Columns, ", "), placeholders(1, len(t.Columns)), t.selectList(),
	)
}

func (t Table[T]) selectByIDSQL() string {
	return fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1", t.selectList(), t.Name, t.IDColumn)
}

func (t Table[T]) selectAllSQL() string {
	return fmt.Sprintf("SELECT %s FROM %s", t.selectList(), t.Name)
}

func (t Table[T]) updateSQL() string {
	sets := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		sets[i] = fmt.Sprintf("%s = $%d", col, i+1)
	}
	return fmt.Sprintf(
		"UPDATE %s SET %s WHERE %s = $%d RETURNING %s",
		t.Name, strings.Join(sets, ", "), t.IDColumn, len(t.Columns)+1, t.selectList(),
	)
}

func (t Table[T]) deleteSQL() string {
	return fmt.Sprintf("DELETE FROM %s WHERE %s = $1", t.Name, t.IDColumn)
}

func (t Table[T]) existsByIDSQL() string {
	return fmt.Sprintf("SELECT 1 FROM %s WHERE %s = $1 LIMIT 1", t.Name, t.IDColumn)
}

func (t Table[T]) existsByKeySQL() string {
	conds := make([]string, len(t.UniqueKey))
	for i, col := range t.UniqueKey {
		conds[i] = fmt.Sprintf("%s = $%d", col, i+1)
	}
	return fmt.Sprintf("SELECT 1 FROM %s WHERE %s LIMIT 1", t.Name, strings.Join(conds, " AND "))
}

// keyArgs picks the UniqueKey values out of a full Values slice.
func (t Table[T]) keyArgs(values []any) []any {
	args := make([]any, 0, len(t.UniqueKey))
	for _, key := range t.UniqueKey {
		for i, col := range t.Columns {
			if col == key {
				args = append(args, values[i])
				break
			}
		}
	}
	return args
}

func placeholders(from, n int) string {
	ph := make([]string, n)
	for i := range ph {
		ph[i] = fmt.Sprintf("$%d", from+i)
	}
	return strings.Join(ph, ", ")
}
