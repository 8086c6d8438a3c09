// table/encode.go
package table

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx/v3"
)

// MarshalJSON encodes the table in records orientation: an array of objects
// keyed by column name. An empty table encodes as [].
func (t *Table) MarshalJSON() ([]byte, error) {
	records := t.Records()
	if records == nil {
		records = []map[string]any{}
	}
	return json.Marshal(records)
}

// WriteCSV writes the table as CSV with a header row. An empty table
// produces no output.
func (t *Table) WriteCSV(w io.Writer) error {
	if t.IsEmpty() {
		return nil
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(t.cols); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	record := make([]string, len(t.cols))
	for _, row := range t.rows {
		for i, v := range row {
			record[i] = formatValue(v)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes the table as a single-sheet Excel workbook with a header
// row.
func (t *Table) WriteXLSX(w io.Writer, sheetName string) error {
	file := xlsx.NewFile()

	sheet, err := file.AddSheet(sheetName)
	if err != nil {
		return fmt.Errorf("failed to add worksheet: %w", err)
	}

	headerRow := sheet.AddRow()
	for _, col := range t.cols {
		cell := headerRow.AddCell()
		cell.Value = col
		cell.GetStyle().Font.Bold = true
	}

	for _, row := range t.rows {
		dataRow := sheet.AddRow()
		for _, v := range row {
			cell := dataRow.AddCell()
			cell.Value = formatValue(v)
		}
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	return nil
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []byte:
		return string(val)
	case time.Time:
		return val.Format(time.RFC3339)
	case decimal.Decimal:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
