package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// ReadCSV reads a CSV stream into a Table. The first record supplies the
// column names; there is no schema contract beyond "parseable as a table",
// so ragged records are padded or truncated to the header width. Blank
// fields become missing values.
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty CSV input")
	}
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = strings.TrimSpace(h)
	}

	t := New(columns...)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV record: %w", err)
		}
		cells := make([]Value, len(record))
		for i, field := range record {
			field = strings.TrimSpace(field)
			if field == "" {
				cells[i] = Missing()
			} else {
				cells[i] = Text(field)
			}
		}
		t.AppendRow(cells...)
	}
	return t, nil
}
