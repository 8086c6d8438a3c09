// table/sqlrows.go
package table

import (
	"database/sql"
	"fmt"
)

// FromSQLRows drains a database/sql result set into a Table. Columns come
// from the result set metadata. A result with zero rows produces an empty
// table with no columns.
func FromSQLRows(rows *sql.Rows) (*Table, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	var data [][]any
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		data = append(data, values)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	if len(data) == 0 {
		return Empty(), nil
	}

	return New(cols, data)
}
