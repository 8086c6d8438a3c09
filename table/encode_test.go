// table/encode_test.go
package table_test

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v3"

	"github.com/quantpool/pgtable/table"
)

func TestTable_MarshalJSON(t *testing.T) {
	tbl, err := table.New(
		[]string{"symbol", "close"},
		[][]any{{"AAPL", 187.44}},
	)
	require.NoError(t, err)

	data, err := json.Marshal(tbl)
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "AAPL", decoded[0]["symbol"])
	assert.InDelta(t, 187.44, decoded[0]["close"], 0.0001)
}

func TestTable_MarshalJSON_Empty(t *testing.T) {
	data, err := json.Marshal(table.Empty())
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))
}

func TestTable_WriteCSV(t *testing.T) {
	traded := time.Date(2026, 8, 14, 15, 30, 0, 0, time.UTC)
	tbl, err := table.New(
		[]string{"symbol", "close", "traded_at"},
		[][]any{
			{"AAPL", decimal.RequireFromString("187.44"), traded},
			{"MSFT", decimal.RequireFromString("412.10"), traded},
		},
	)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tbl.WriteCSV(&buf))

	want := "symbol,close,traded_at\n" +
		"AAPL,187.44,2026-08-14T15:30:00Z\n" +
		"MSFT,412.10,2026-08-14T15:30:00Z\n"
	assert.Equal(t, want, buf.String())
}

func TestTable_WriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, table.Empty().WriteCSV(&buf))
	assert.Zero(t, buf.Len())
}

func TestTable_WriteXLSX(t *testing.T) {
	tbl, err := table.New(
		[]string{"symbol", "volume"},
		[][]any{{"AAPL", int64(1200)}},
	)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tbl.WriteXLSX(&buf, "Results"))

	file, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, file.Sheets, 1)

	sheet := file.Sheets[0]
	assert.Equal(t, "Results", sheet.Name)

	header, err := sheet.Cell(0, 0)
	require.NoError(t, err)
	assert.Equal(t, "symbol", header.Value)

	cell, err := sheet.Cell(1, 1)
	require.NoError(t, err)
	assert.Equal(t, "1200", cell.Value)
}
