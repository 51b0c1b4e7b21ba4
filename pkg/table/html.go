package table

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ParseHTML extracts every <table> element from an HTML document, in
// document order. The first row of each table (th or td cells) becomes the
// column names; remaining rows become data rows. Cells that are empty after
// trimming are recorded as missing, so presence checks on the raw table see
// blank cells the same way as absent ones.
//
// Rows belonging to tables nested inside another table are attributed to the
// inner table only.
func ParseHTML(r io.Reader) ([]*Table, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	var tables []*Table
	doc.Find("table").Each(func(_ int, tbl *goquery.Selection) {
		t := parseTable(tbl)
		if t != nil {
			tables = append(tables, t)
		}
	})
	return tables, nil
}

// parseTable converts one table element. Returns nil for tables without any
// recognizable rows (layout tables, empty stubs).
func parseTable(tbl *goquery.Selection) *Table {
	rows := ownRows(tbl)
	if len(rows) == 0 {
		return nil
	}

	header := rows[0]
	var columns []string
	header.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
		columns = append(columns, cellText(cell))
	})
	if len(columns) == 0 {
		return nil
	}

	t := New(columns...)
	for _, row := range rows[1:] {
		var cells []Value
		row.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, cellValue(cell))
		})
		if len(cells) == 0 {
			continue
		}
		t.AppendRow(cells...)
	}
	return t
}

// ownRows returns the tr elements that belong to this table, excluding rows
// of any nested tables.
func ownRows(tbl *goquery.Selection) []*goquery.Selection {
	var rows []*goquery.Selection
	tbl.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		if tr.Closest("table").Length() > 0 && tr.Closest("table").Get(0) == tbl.Get(0) {
			rows = append(rows, tr)
		}
	})
	return rows
}

func cellText(cell *goquery.Selection) string {
	return strings.Join(strings.Fields(cell.Text()), " ")
}

func cellValue(cell *goquery.Selection) Value {
	text := cellText(cell)
	if text == "" {
		return Missing()
	}
	return Text(text)
}
