// table/table_test.go
package table_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantpool/pgtable/table"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		cols      []string
		rows      [][]any
		wantError bool
	}{
		{
			name: "builds_table_from_columns_and_rows",
			cols: []string{"symbol", "close"},
			rows: [][]any{{"AAPL", 187.44}, {"MSFT", 412.10}},
		},
		{
			name: "accepts_columns_with_no_rows",
			cols: []string{"symbol", "close"},
		},
		{
			name:      "rejects_ragged_rows",
			cols:      []string{"symbol", "close"},
			rows:      [][]any{{"AAPL", 187.44}, {"MSFT"}},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, err := table.New(tt.cols, tt.rows)

			if tt.wantError {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.cols, tbl.Columns())
			assert.Equal(t, len(tt.rows), tbl.NumRows())
			assert.Equal(t, len(tt.cols), tbl.NumCols())
		})
	}
}

func TestEmpty(t *testing.T) {
	tbl := table.Empty()

	assert.True(t, tbl.IsEmpty())
	assert.Zero(t, tbl.NumRows())
	assert.Zero(t, tbl.NumCols())
	assert.Empty(t, tbl.Columns())
	assert.Empty(t, tbl.Records())
}

func TestTable_Value(t *testing.T) {
	tbl, err := table.New(
		[]string{"symbol", "close"},
		[][]any{{"AAPL", 187.44}, {"MSFT", 412.10}},
	)
	require.NoError(t, err)

	v, ok := tbl.Value(1, "symbol")
	require.True(t, ok)
	assert.Equal(t, "MSFT", v)

	_, ok = tbl.Value(1, "open")
	assert.False(t, ok, "unknown column")

	_, ok = tbl.Value(2, "symbol")
	assert.False(t, ok, "row out of range")
}

func TestTable_Records(t *testing.T) {
	tbl, err := table.New(
		[]string{"symbol", "volume"},
		[][]any{{"AAPL", int64(1200)}, {"MSFT", int64(3100)}},
	)
	require.NoError(t, err)

	records := tbl.Records()
	require.Len(t, records, 2)
	assert.Equal(t, map[string]any{"symbol": "AAPL", "volume": int64(1200)}, records[0])
	assert.Equal(t, map[string]any{"symbol": "MSFT", "volume": int64(3100)}, records[1])
}

func TestTable_Column(t *testing.T) {
	tbl, err := table.New(
		[]string{"symbol", "volume"},
		[][]any{{"AAPL", int64(1200)}, {"MSFT", int64(3100)}},
	)
	require.NoError(t, err)

	symbols, ok := tbl.Column("symbol")
	require.True(t, ok)
	assert.Equal(t, []any{"AAPL", "MSFT"}, symbols)

	_, ok = tbl.Column("missing")
	assert.False(t, ok)
}

func BenchmarkRecords(b *testing.B) {
	rows := make([][]any, 1000)
	for i := range rows {
		rows[i] = []any{"AAPL", 187.44, int64(i)}
	}
	tbl, err := table.New([]string{"symbol", "close", "volume"}, rows)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = tbl.Records()
	}
}
