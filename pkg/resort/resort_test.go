package resort

import (
	"strings"
	"testing"

	"github.com/snowline/snowline/pkg/table"
)

// rawResortTable builds a raw table with the shape the reference page
// produces: ten data columns plus a trailing citation column.
func rawResortTable() *table.Table {
	t := table.New(
		"Resort name", "Nearest city", "State/Province",
		"Peak elevation (ft)", "Base elevation (ft)", "Vertical drop (ft)",
		"Skiable acreage", "Total trails", "Total lifts",
		"Average annual snowfall (in)", "Refs",
	)
	t.AppendRow(
		table.Text("Alta [1]"), table.Text("Sandy"), table.Text("Utah"),
		table.Text("11,068"), table.Text("8,530"), table.Text("2,538"),
		table.Text("2,614"), table.Text("119"), table.Text("7"),
		table.Text("545"), table.Text("[1]"),
	)
	t.AppendRow(
		table.Text("No Snow Park"), table.Text("Somewhere"), table.Text("Ohio"),
		table.Text("1,000"), table.Text("800"), table.Text("200"),
		table.Text("50"), table.Text("10"), table.Text("2"),
		table.Missing(), table.Text("[2]"),
	)
	t.AppendRow(
		table.Text("Whistler Blackcomb"), table.Text("Whistler"), table.Text("British Columbia"),
		table.Text("7,494 ft"), table.Text("2,214"), table.Text("5,280"),
		table.Text("8,171"), table.Text("200+"), table.Text("37"),
		table.Text("448 [3]"), table.Text("[3]"),
	)
	t.AppendRow(
		table.Text("Mystery Hill"), table.Text("Unknown"), table.Text("Vermont"),
		table.Text("N/A"), table.Text("N/A"), table.Text("N/A"),
		table.Text("N/A"), table.Text("N/A"), table.Text("N/A"),
		table.Text("N/A"), table.Text("[4]"),
	)
	return t
}

func TestClean_SchemaAndInvariants(t *testing.T) {
	cleaned, err := Clean(rawResortTable())
	if err != nil {
		t.Fatalf("Clean() error = %v", err)
	}

	if cleaned.NumColumns() != len(Columns) {
		t.Fatalf("NumColumns() = %d, want %d", cleaned.NumColumns(), len(Columns))
	}
	for i, want := range Columns {
		if cleaned.Columns[i] != want {
			t.Errorf("Columns[%d] = %q, want %q", i, cleaned.Columns[i], want)
		}
	}

	// Rows without snowfall are gone: the missing one and the "N/A" one.
	if cleaned.NumRows() != 2 {
		t.Fatalf("NumRows() = %d, want 2", cleaned.NumRows())
	}

	snowIdx := cleaned.ColumnIndex(ColSnowfall)
	for i, row := range cleaned.Rows {
		if row[snowIdx].IsMissing() {
			t.Errorf("row %d: snowfall missing after cleaning", i)
		}
		for j, cell := range row {
			if cell.Kind() == table.KindText && strings.ContainsAny(cell.Text(), "[]") {
				t.Errorf("row %d col %d: bracket survived cleaning: %q", i, j, cell.Text())
			}
		}
	}

	for _, col := range NumericColumns {
		vals, err := cleaned.Column(col)
		if err != nil {
			t.Fatalf("Column(%q) error = %v", col, err)
		}
		for i, v := range vals {
			if v.IsMissing() {
				continue
			}
			if _, ok := v.Number(); !ok {
				t.Errorf("%s row %d: non-numeric value %v survived coercion", col, i, v)
			}
		}
	}
}

func TestClean_CoercesFormattedNumbers(t *testing.T) {
	cleaned, err := Clean(rawResortTable())
	if err != nil {
		t.Fatalf("Clean() error = %v", err)
	}

	peak, err := cleaned.Column(ColPeakElevation)
	if err != nil {
		t.Fatalf("Column() error = %v", err)
	}
	if n, ok := peak[0].Number(); !ok || n != 11068 {
		t.Errorf("Alta peak = %v, want 11068", peak[0])
	}
	// "7,494 ft" keeps only digits and the decimal point.
	if n, ok := peak[1].Number(); !ok || n != 7494 {
		t.Errorf("Whistler peak = %v, want 7494", peak[1])
	}

	snow, _ := cleaned.Column(ColSnowfall)
	if n, ok := snow[1].Number(); !ok || n != 448 {
		t.Errorf("Whistler snowfall = %v, want 448 (citation stripped before coercion)", snow[1])
	}
}

func TestClean_ShortTableFailsLoudly(t *testing.T) {
	raw := table.New("a", "b", "c")
	raw.AppendRow(table.Text("1"), table.Text("2"), table.Text("3"))

	if _, err := Clean(raw); err == nil {
		t.Fatal("expected schema mismatch for a 3-column raw table")
	}
}

func TestFromTable(t *testing.T) {
	cleaned, err := Clean(rawResortTable())
	if err != nil {
		t.Fatalf("Clean() error = %v", err)
	}

	records, err := FromTable(cleaned)
	if err != nil {
		t.Fatalf("FromTable() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}

	alta := records[0]
	if alta.Name != "Alta" {
		t.Errorf("Name = %q, want Alta (citation stripped)", alta.Name)
	}
	if alta.StateProvince != "Utah" {
		t.Errorf("StateProvince = %q", alta.StateProvince)
	}
	if alta.SnowfallInches != 545 {
		t.Errorf("SnowfallInches = %v, want 545", alta.SnowfallInches)
	}
	if alta.PeakElevation == nil || *alta.PeakElevation != 11068 {
		t.Errorf("PeakElevation = %v, want 11068", alta.PeakElevation)
	}

	whistler := records[1]
	if whistler.TotalTrails == nil || *whistler.TotalTrails != 200 {
		t.Errorf("TotalTrails = %v, want 200 ('200+' loses the suffix)", whistler.TotalTrails)
	}
}

func TestFromTable_RejectsWrongSchema(t *testing.T) {
	tbl := table.New("Resort Name", "Nearest City")
	if _, err := FromTable(tbl); err == nil {
		t.Fatal("expected error for wrong column set")
	}
}

func TestFromTable_RejectsUnknownState(t *testing.T) {
	cleaned, err := Clean(rawResortTable())
	if err != nil {
		t.Fatalf("Clean() error = %v", err)
	}
	idx := cleaned.ColumnIndex(ColStateProvince)
	cleaned.Rows[0][idx] = table.Text("Atlantis")

	if _, err := FromTable(cleaned); err == nil {
		t.Fatal("expected validation error for unknown state/province")
	}
}

func TestRecordValidate(t *testing.T) {
	rec := Record{Name: "Alta", StateProvince: "Utah", SnowfallInches: 545}
	if err := rec.Validate(); err != nil {
		t.Errorf("valid record rejected: %v", err)
	}

	rec.Name = ""
	if err := rec.Validate(); err == nil {
		t.Error("record without a name should fail validation")
	}

	rec = Record{Name: "X", StateProvince: "Utah", SnowfallInches: -1}
	if err := rec.Validate(); err == nil {
		t.Error("negative snowfall should fail validation")
	}
}

func TestRegion(t *testing.T) {
	tests := []struct {
		state string
		want  string
	}{
		{"Utah", "Western US"},
		{"British Columbia", "Western Canada"},
		{"Quebec", "Eastern Canada"},
		{"Vermont", "Northeast US"},
		{"Michigan", "Midwest US"},
		{"North Carolina", "Southeast US"},
		{"Atlantis", ""},
	}
	for _, tt := range tests {
		if got := Region(tt.state); got != tt.want {
			t.Errorf("Region(%q) = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestStatesProvinces(t *testing.T) {
	all := StatesProvinces()
	if len(all) != 43 {
		t.Errorf("len(StatesProvinces()) = %d, want 43", len(all))
	}
	for _, s := range all {
		if Region(s) == "" {
			t.Errorf("state %q has no region", s)
		}
	}
}
