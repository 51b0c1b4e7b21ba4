// Package resort defines the cleaned ski resort dataset: the fixed
// ten-column schema, the cleaning chain that produces it, and typed records
// with validation.
package resort

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/snowline/snowline/pkg/clean"
	"github.com/snowline/snowline/pkg/table"
)

// SourceURL is the reference page holding the comparison table.
const SourceURL = "https://en.wikipedia.org/wiki/Comparison_of_North_American_ski_resorts"

// Cleaned column names, in their fixed order.
const (
	ColName          = "Resort Name"
	ColNearestCity   = "Nearest City"
	ColStateProvince = "State/Province"
	ColPeakElevation = "Peak Elevation (ft)"
	ColBaseElevation = "Base Elevation (ft)"
	ColVerticalDrop  = "Vertical Drop (ft)"
	ColSkiableArea   = "Skiable Area (acres)"
	ColTotalTrails   = "Total Trails"
	ColTotalLifts    = "Total Lifts"
	ColSnowfall      = "Average Annual Snowfall (inches)"
)

// Columns is the full cleaned schema, identical across runs.
var Columns = []string{
	ColName, ColNearestCity, ColStateProvince,
	ColPeakElevation, ColBaseElevation, ColVerticalDrop,
	ColSkiableArea, ColTotalTrails, ColTotalLifts,
	ColSnowfall,
}

// NumericColumns lists the columns coerced to numbers during cleaning.
var NumericColumns = []string{
	ColPeakElevation, ColBaseElevation, ColVerticalDrop,
	ColSkiableArea, ColTotalTrails, ColTotalLifts,
	ColSnowfall,
}

// HeaderSignature identifies the resort table by its raw header names, for
// callers that prefer header matching over positional table selection.
var HeaderSignature = []string{"resort", "elevation", "snowfall"}

// NewCleaner builds the cleaning chain for the raw comparison table:
//
//  1. drop the trailing citation column
//  2. rename the remaining columns positionally (strict count check)
//  3. drop rows with snowfall missing on the raw value
//  4. strip bracketed citations and trim every text cell
//  5. coerce the numeric columns, degrading unparseable cells to missing
//  6. drop rows whose snowfall coerced to missing (e.g. a raw "N/A")
//
// Stage order is load-bearing: the presence check in step 3 runs on raw
// values, matching the documented filter semantics, and step 6 restores the
// snowfall-completeness invariant after coercion.
func NewCleaner() *clean.Chain {
	return clean.NewChain(
		clean.DropLastColumn{},
		clean.RenameColumns{Names: Columns},
		clean.DropMissing{Column: ColSnowfall},
		clean.StripBrackets{},
		clean.CoerceNumeric{Columns: NumericColumns},
		clean.DropMissing{Column: ColSnowfall},
	)
}

// Clean transforms a raw extracted table into the cleaned, schema-conformant
// table.
func Clean(raw *table.Table) (*table.Table, error) {
	return NewCleaner().Apply(raw)
}

// Record is one cleaned resort row. Numeric pointers are nil when the source
// listed no usable value; snowfall is always present because rows without it
// are dropped during cleaning.
type Record struct {
	Name           string   `json:"resort_name" validate:"required"`
	NearestCity    string   `json:"nearest_city"`
	StateProvince  string   `json:"state_province" validate:"required,state_province"`
	PeakElevation  *float64 `json:"peak_elevation_ft"`
	BaseElevation  *float64 `json:"base_elevation_ft"`
	VerticalDrop   *float64 `json:"vertical_drop_ft"`
	SkiableAcres   *float64 `json:"skiable_area_acres"`
	TotalTrails    *float64 `json:"total_trails"`
	TotalLifts     *float64 `json:"total_lifts"`
	SnowfallInches float64  `json:"average_annual_snowfall_in" validate:"gte=0"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Registration only fails for an empty tag name.
	_ = v.RegisterValidation("state_province", func(fl validator.FieldLevel) bool {
		_, ok := regionByState[fl.Field().String()]
		return ok
	})
	return v
}

// Validate checks a record against the schema rules, including the fixed
// state/province enumeration.
func (r Record) Validate() error {
	return validate.Struct(r)
}

// FromTable converts a cleaned table into typed records. The table must
// carry exactly the fixed column set, in order; records failing validation
// (unknown state/province, absent name) are reported, not silently dropped.
func FromTable(t *table.Table) ([]Record, error) {
	if err := checkSchema(t); err != nil {
		return nil, err
	}

	records := make([]Record, 0, t.NumRows())
	for i, row := range t.Rows {
		rec := Record{
			Name:          row[0].Text(),
			NearestCity:   row[1].Text(),
			StateProvince: row[2].Text(),
			PeakElevation: optional(row[3]),
			BaseElevation: optional(row[4]),
			VerticalDrop:  optional(row[5]),
			SkiableAcres:  optional(row[6]),
			TotalTrails:   optional(row[7]),
			TotalLifts:    optional(row[8]),
		}
		snow, ok := row[9].Number()
		if !ok {
			return nil, fmt.Errorf("row %d: snowfall is not numeric: %v", i, row[9])
		}
		rec.SnowfallInches = snow

		if err := rec.Validate(); err != nil {
			return nil, fmt.Errorf("row %d (%s): %w", i, rec.Name, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func checkSchema(t *table.Table) error {
	if t.NumColumns() != len(Columns) {
		return fmt.Errorf("expected %d columns, got %d", len(Columns), t.NumColumns())
	}
	for i, want := range Columns {
		if t.Columns[i] != want {
			return fmt.Errorf("column %d is %q, want %q", i, t.Columns[i], want)
		}
	}
	return nil
}

func optional(v table.Value) *float64 {
	if n, ok := v.Number(); ok {
		return &n
	}
	return nil
}
