// Package table provides the tabular data model shared by the scraping and
// cleaning stages. A Table is an ordered list of named columns plus rows of
// Values; a Value is either text, a number, or an explicit missing marker.
package table

import (
	"fmt"
	"strconv"
)

// Kind identifies what a Value holds.
type Kind int

const (
	KindMissing Kind = iota
	KindText
	KindNumber
)

// Value is a single cell. The zero Value is missing.
type Value struct {
	kind Kind
	text string
	num  float64
}

// Missing returns the explicit missing-value marker.
func Missing() Value {
	return Value{}
}

// Text returns a text Value.
func Text(s string) Value {
	return Value{kind: KindText, text: s}
}

// Number returns a numeric Value.
func Number(f float64) Value {
	return Value{kind: KindNumber, num: f}
}

// Kind returns what the value holds.
func (v Value) Kind() Kind {
	return v.kind
}

// IsMissing reports whether the value is the missing marker.
func (v Value) IsMissing() bool {
	return v.kind == KindMissing
}

// Text returns the text content. Numbers are formatted with the shortest
// representation that round-trips; missing values return "".
func (v Value) Text() string {
	switch v.kind {
	case KindText:
		return v.text
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	default:
		return ""
	}
}

// Number returns the numeric content and whether the value holds a number.
func (v Value) Number() (float64, bool) {
	return v.num, v.kind == KindNumber
}

// String implements fmt.Stringer for debugging output.
func (v Value) String() string {
	if v.kind == KindMissing {
		return "<missing>"
	}
	return v.Text()
}

// Table is an ordered set of named columns with rows of cells. Rows always
// have exactly len(Columns) cells; use AppendRow to keep that invariant.
type Table struct {
	Columns []string
	Rows    [][]Value
}

// New creates an empty table with the given column names.
func New(columns ...string) *Table {
	return &Table{Columns: append([]string(nil), columns...)}
}

// NumRows returns the number of data rows.
func (t *Table) NumRows() int {
	return len(t.Rows)
}

// NumColumns returns the number of columns.
func (t *Table) NumColumns() int {
	return len(t.Columns)
}

// AppendRow adds a row, padding short rows with missing values and
// truncating long ones so the row matches the column count.
func (t *Table) AppendRow(cells ...Value) {
	row := make([]Value, len(t.Columns))
	for i := range row {
		if i < len(cells) {
			row[i] = cells[i]
		} else {
			row[i] = Missing()
		}
	}
	t.Rows = append(t.Rows, row)
}

// ColumnIndex returns the position of the named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Column returns all values of the named column in row order.
func (t *Table) Column(name string) ([]Value, error) {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return nil, fmt.Errorf("no such column: %q", name)
	}
	out := make([]Value, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row[idx]
	}
	return out, nil
}

// Clone returns a deep copy. Transform stages operate on copies so the
// caller's table is never mutated.
func (t *Table) Clone() *Table {
	out := New(t.Columns...)
	out.Rows = make([][]Value, len(t.Rows))
	for i, row := range t.Rows {
		out.Rows[i] = append([]Value(nil), row...)
	}
	return out
}
