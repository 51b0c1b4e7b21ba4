package output

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/snowline/snowline/pkg/table"
)

// CSVWriter writes a table as CSV: one header row, then one line per data
// row. Missing cells serialize as empty fields. Only *table.Table values are
// accepted; other shapes have no tabular layout to write.
type CSVWriter struct {
	w           *csv.Writer
	wroteHeader bool
	columns     int
}

// NewCSVWriter creates a CSV writer.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{w: csv.NewWriter(w)}
}

// Write outputs one table. Subsequent tables must share the first table's
// column count; their rows are appended without repeating the header.
func (w *CSVWriter) Write(data any) error {
	t, ok := data.(*table.Table)
	if !ok {
		return fmt.Errorf("csv output requires *table.Table, got %T", data)
	}

	if !w.wroteHeader {
		if err := w.w.Write(t.Columns); err != nil {
			return err
		}
		w.wroteHeader = true
		w.columns = t.NumColumns()
	} else if t.NumColumns() != w.columns {
		return fmt.Errorf("csv output: table has %d columns, expected %d", t.NumColumns(), w.columns)
	}

	record := make([]string, t.NumColumns())
	for _, row := range t.Rows {
		for i, cell := range row {
			record[i] = cell.Text()
		}
		if err := w.w.Write(record); err != nil {
			return err
		}
	}
	return nil
}

// WriteAll outputs multiple tables.
func (w *CSVWriter) WriteAll(data []any) error {
	for _, item := range data {
		if err := w.Write(item); err != nil {
			return err
		}
	}
	return nil
}

// Flush writes any buffered output.
func (w *CSVWriter) Flush() error {
	w.w.Flush()
	return w.w.Error()
}

// Close flushes the writer.
func (w *CSVWriter) Close() error {
	return w.Flush()
}
