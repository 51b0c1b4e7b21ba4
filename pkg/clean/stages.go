package clean

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/snowline/snowline/pkg/table"
)

// DropLastColumn removes the final column. The reference table keeps
// citation footnotes there, not data.
type DropLastColumn struct{}

func (DropLastColumn) Name() string { return "drop_last_column" }

func (DropLastColumn) Apply(t *table.Table) (*table.Table, error) {
	if t.NumColumns() == 0 {
		return nil, fmt.Errorf("cannot drop a column from an empty table")
	}
	out := table.New(t.Columns[:t.NumColumns()-1]...)
	for _, row := range t.Rows {
		out.AppendRow(row[:len(row)-1]...)
	}
	return out, nil
}

// RenameColumns reassigns the column-name list positionally. The column
// count must match exactly; anything else means the upstream table shape
// changed and positional renaming would mislabel data.
type RenameColumns struct {
	Names []string
}

func (s RenameColumns) Name() string { return "rename_columns" }

func (s RenameColumns) Apply(t *table.Table) (*table.Table, error) {
	if t.NumColumns() != len(s.Names) {
		return nil, &SchemaMismatchError{Want: len(s.Names), Got: t.NumColumns()}
	}
	out := t.Clone()
	out.Columns = append([]string(nil), s.Names...)
	return out, nil
}

// DropMissing removes every row whose named column holds the missing marker.
type DropMissing struct {
	Column string
}

func (s DropMissing) Name() string { return "drop_missing(" + s.Column + ")" }

func (s DropMissing) Apply(t *table.Table) (*table.Table, error) {
	idx := t.ColumnIndex(s.Column)
	if idx < 0 {
		return nil, fmt.Errorf("no such column: %q", s.Column)
	}
	out := table.New(t.Columns...)
	for _, row := range t.Rows {
		if row[idx].IsMissing() {
			continue
		}
		out.AppendRow(row...)
	}
	return out, nil
}

// bracketRe matches a bracketed run such as a citation marker "[3]".
// Every match is removed, wherever it appears in the string.
var bracketRe = regexp.MustCompile(`\[[^\]]*\]`)

// StripBrackets removes bracketed citation markers from every text cell and
// trims surrounding whitespace. Missing and numeric values pass through
// unchanged.
type StripBrackets struct{}

func (StripBrackets) Name() string { return "strip_brackets" }

func (StripBrackets) Apply(t *table.Table) (*table.Table, error) {
	out := t.Clone()
	for _, row := range out.Rows {
		for i, cell := range row {
			if cell.Kind() != table.KindText {
				continue
			}
			cleaned := strings.TrimSpace(bracketRe.ReplaceAllString(cell.Text(), ""))
			if cleaned == "" {
				row[i] = table.Missing()
			} else {
				row[i] = table.Text(cleaned)
			}
		}
	}
	return out, nil
}

// nonNumericRe matches every character that is not a digit or decimal point.
var nonNumericRe = regexp.MustCompile(`[^\d.]`)

// CoerceNumeric converts the named columns to numbers. Formatting noise
// (thousands separators, unit suffixes, footnote remnants) is stripped
// before parsing; a cell with nothing parseable left degrades to the
// missing marker. This stage never returns a row-level error.
type CoerceNumeric struct {
	Columns []string
}

func (s CoerceNumeric) Name() string { return "coerce_numeric" }

func (s CoerceNumeric) Apply(t *table.Table) (*table.Table, error) {
	indices := make([]int, 0, len(s.Columns))
	for _, col := range s.Columns {
		idx := t.ColumnIndex(col)
		if idx < 0 {
			return nil, fmt.Errorf("no such column: %q", col)
		}
		indices = append(indices, idx)
	}

	out := t.Clone()
	for _, row := range out.Rows {
		for _, idx := range indices {
			row[idx] = coerce(row[idx])
		}
	}
	return out, nil
}

func coerce(v table.Value) table.Value {
	if v.IsMissing() {
		return v
	}
	if _, ok := v.Number(); ok {
		return v
	}
	stripped := nonNumericRe.ReplaceAllString(v.Text(), "")
	if stripped == "" {
		return table.Missing()
	}
	f, err := strconv.ParseFloat(stripped, 64)
	if err != nil {
		return table.Missing()
	}
	return table.Number(f)
}
