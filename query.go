// query.go
package pgtable

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/quantpool/pgtable/table"
)

// Querier is the minimal query surface shared by *pgxpool.Pool,
// *pgxpool.Conn and pgx.Tx.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// FetchAsTable executes a parameterized query and returns all matching rows
// as a table whose columns are the prepared statement's declared output
// attributes, in declared order. A query matching zero rows returns an
// empty table with no columns; the declared names are discarded, so callers
// must not rely on schema being present on an empty result.
//
// The connection is acquired from the pool for the duration of the call and
// released on every exit path. Query errors propagate to the caller as-is.
func (db *DB) FetchAsTable(ctx context.Context, query string, args ...any) (*table.Table, error) {
	conn, err := db.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer conn.Release()

	// Keyed by query text so repeated calls reuse the server-side statement.
	stmt, err := conn.Conn().Prepare(ctx, query, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare statement: %w", err)
	}

	columns := make([]string, len(stmt.Fields))
	for i, field := range stmt.Fields {
		columns[i] = field.Name
	}

	rows, err := conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}

	data, err := collectRows(rows)
	if err != nil {
		return nil, err
	}

	if len(data) == 0 {
		return table.Empty(), nil
	}

	return table.New(columns, data)
}

// FetchRow executes a query expected to match at most one row and returns
// it keyed by column name. It returns nil when no row matches.
func (db *DB) FetchRow(ctx context.Context, query string, args ...any) (map[string]any, error) {
	t, err := db.FetchAsTable(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if t.IsEmpty() {
		return nil, nil
	}
	return t.Records()[0], nil
}

// FetchBuilder renders a caller-built squirrel query and executes it via
// FetchAsTable.
func (db *DB) FetchBuilder(ctx context.Context, builder squirrel.Sqlizer) (*table.Table, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	return db.FetchAsTable(ctx, query, args...)
}

// QueryTable runs a query against any Querier (pool, acquired connection or
// transaction) and drains the result into a table. Columns come from the
// result set's row description rather than a separately prepared statement,
// with the same empty-result semantics as FetchAsTable.
func QueryTable(ctx context.Context, q Querier, query string, args ...any) (*table.Table, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}

	columns := make([]string, 0, len(rows.FieldDescriptions()))
	for _, field := range rows.FieldDescriptions() {
		columns = append(columns, field.Name)
	}

	data, err := collectRows(rows)
	if err != nil {
		return nil, err
	}

	if len(data) == 0 {
		return table.Empty(), nil
	}

	return table.New(columns, data)
}

// collectRows drains rows in fetch order, normalizing driver values on the
// way. Always closes the result set.
func collectRows(rows pgx.Rows) ([][]any, error) {
	defer rows.Close()

	var data [][]any
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("failed to read row values: %w", err)
		}
		for i, v := range values {
			values[i] = normalizeValue(v)
		}
		data = append(data, values)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return data, nil
}
