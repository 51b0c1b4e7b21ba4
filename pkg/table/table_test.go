package table

import (
	"testing"
)

func TestValueKinds(t *testing.T) {
	tests := []struct {
		name        string
		value       Value
		wantKind    Kind
		wantMissing bool
		wantText    string
	}{
		{name: "zero value is missing", value: Value{}, wantKind: KindMissing, wantMissing: true, wantText: ""},
		{name: "explicit missing", value: Missing(), wantKind: KindMissing, wantMissing: true, wantText: ""},
		{name: "text", value: Text("Park City"), wantKind: KindText, wantText: "Park City"},
		{name: "number", value: Number(12000), wantKind: KindNumber, wantText: "12000"},
		{name: "fractional number", value: Number(0.5), wantKind: KindNumber, wantText: "0.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value.Kind() != tt.wantKind {
				t.Errorf("Kind() = %v, want %v", tt.value.Kind(), tt.wantKind)
			}
			if tt.value.IsMissing() != tt.wantMissing {
				t.Errorf("IsMissing() = %v, want %v", tt.value.IsMissing(), tt.wantMissing)
			}
			if tt.value.Text() != tt.wantText {
				t.Errorf("Text() = %q, want %q", tt.value.Text(), tt.wantText)
			}
		})
	}
}

func TestValueNumber(t *testing.T) {
	if n, ok := Number(450).Number(); !ok || n != 450 {
		t.Errorf("Number(450).Number() = %v, %v", n, ok)
	}
	if _, ok := Text("450").Number(); ok {
		t.Error("Text value should not report a number")
	}
	if _, ok := Missing().Number(); ok {
		t.Error("missing value should not report a number")
	}
}

func TestAppendRow_PadsAndTruncates(t *testing.T) {
	tbl := New("a", "b", "c")

	tbl.AppendRow(Text("1"))
	tbl.AppendRow(Text("1"), Text("2"), Text("3"), Text("4"))

	if tbl.NumRows() != 2 {
		t.Fatalf("NumRows() = %d, want 2", tbl.NumRows())
	}
	if !tbl.Rows[0][1].IsMissing() || !tbl.Rows[0][2].IsMissing() {
		t.Error("short row should be padded with missing values")
	}
	if len(tbl.Rows[1]) != 3 {
		t.Errorf("long row should be truncated to 3 cells, got %d", len(tbl.Rows[1]))
	}
}

func TestColumn(t *testing.T) {
	tbl := New("name", "snowfall")
	tbl.AppendRow(Text("Alta"), Text("545"))
	tbl.AppendRow(Text("Brighton"), Missing())

	col, err := tbl.Column("snowfall")
	if err != nil {
		t.Fatalf("Column() error = %v", err)
	}
	if len(col) != 2 {
		t.Fatalf("len(col) = %d, want 2", len(col))
	}
	if col[0].Text() != "545" {
		t.Errorf("col[0] = %q, want 545", col[0].Text())
	}
	if !col[1].IsMissing() {
		t.Error("col[1] should be missing")
	}

	if _, err := tbl.Column("nope"); err == nil {
		t.Error("expected error for unknown column")
	}
}

func TestClone_IsDeep(t *testing.T) {
	tbl := New("a")
	tbl.AppendRow(Text("x"))

	clone := tbl.Clone()
	clone.Columns[0] = "b"
	clone.Rows[0][0] = Text("y")

	if tbl.Columns[0] != "a" {
		t.Error("clone mutation leaked into original columns")
	}
	if tbl.Rows[0][0].Text() != "x" {
		t.Error("clone mutation leaked into original rows")
	}
}
