// table/table.go

// Package table provides an ordered, column-named in-memory result set used
// as the uniform return shape for query results.
package table

import (
	"fmt"
)

// Table is an ordered sequence of rows with named columns. The zero value is
// an empty table with no columns and no rows.
type Table struct {
	cols   []string
	colIdx map[string]int
	rows   [][]any
}

// New creates a Table from an ordered column list and row data. Every row
// must have exactly one value per column.
func New(cols []string, rows [][]any) (*Table, error) {
	t := &Table{
		cols:   cols,
		colIdx: make(map[string]int, len(cols)),
		rows:   rows,
	}
	for i, c := range cols {
		t.colIdx[c] = i
	}
	for i, row := range rows {
		if len(row) != len(cols) {
			return nil, fmt.Errorf("row %d has %d values, expected %d", i, len(row), len(cols))
		}
	}
	return t, nil
}

// Empty returns a table with no columns and no rows.
func Empty() *Table {
	return &Table{colIdx: map[string]int{}}
}

// Columns returns the column names in declared order. The returned slice
// must not be modified.
func (t *Table) Columns() []string {
	return t.cols
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int {
	return len(t.rows)
}

// NumCols returns the number of columns.
func (t *Table) NumCols() int {
	return len(t.cols)
}

// IsEmpty reports whether the table has no rows.
func (t *Table) IsEmpty() bool {
	return len(t.rows) == 0
}

// Row returns the i-th row in fetch order. It panics if i is out of range,
// mirroring slice indexing.
func (t *Table) Row(i int) []any {
	return t.rows[i]
}

// Value returns the value at the given row for the named column. The second
// return is false when the column does not exist or the row is out of range.
func (t *Table) Value(row int, col string) (any, bool) {
	if row < 0 || row >= len(t.rows) {
		return nil, false
	}
	idx, ok := t.colIdx[col]
	if !ok {
		return nil, false
	}
	return t.rows[row][idx], true
}

// Records returns the rows as maps keyed by column name, in fetch order.
func (t *Table) Records() []map[string]any {
	records := make([]map[string]any, 0, len(t.rows))
	for _, row := range t.rows {
		rec := make(map[string]any, len(t.cols))
		for i, c := range t.cols {
			rec[c] = row[i]
		}
		records = append(records, rec)
	}
	return records
}

// Column returns all values of the named column in row order. The second
// return is false when the column does not exist.
func (t *Table) Column(col string) ([]any, bool) {
	idx, ok := t.colIdx[col]
	if !ok {
		return nil, false
	}
	vals := make([]any, len(t.rows))
	for i, row := range t.rows {
		vals[i] = row[idx]
	}
	return vals, true
}
