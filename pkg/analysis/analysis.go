// Package analysis computes exploratory summaries over the cleaned resort
// dataset: per-column statistics, grouped snowfall means, top-N rankings,
// and pairwise correlation. Results are plain values for the caller to
// render; no charting happens here.
package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/snowline/snowline/pkg/resort"
	"github.com/snowline/snowline/pkg/table"
)

// ColumnSummary describes one numeric column.
type ColumnSummary struct {
	Column  string  `json:"column"`
	Count   int     `json:"count"`
	Missing int     `json:"missing"`
	Mean    float64 `json:"mean"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
}

// Summarize computes summary statistics for the named numeric columns.
// Missing values are counted but excluded from the statistics.
func Summarize(t *table.Table, columns ...string) ([]ColumnSummary, error) {
	out := make([]ColumnSummary, 0, len(columns))
	for _, col := range columns {
		vals, err := t.Column(col)
		if err != nil {
			return nil, err
		}

		s := ColumnSummary{Column: col, Min: math.Inf(1), Max: math.Inf(-1)}
		var sum float64
		for _, v := range vals {
			n, ok := v.Number()
			if !ok {
				s.Missing++
				continue
			}
			s.Count++
			sum += n
			s.Min = math.Min(s.Min, n)
			s.Max = math.Max(s.Max, n)
		}
		if s.Count > 0 {
			s.Mean = sum / float64(s.Count)
		} else {
			s.Min, s.Max = 0, 0
		}
		out = append(out, s)
	}
	return out, nil
}

// GroupMean is the mean of a value column within one group.
type GroupMean struct {
	Group string  `json:"group"`
	Count int     `json:"count"`
	Mean  float64 `json:"mean"`
}

// MeanByGroup averages valueColumn per distinct value of groupColumn,
// sorted by descending mean. Rows where either cell is missing are skipped.
func MeanByGroup(t *table.Table, groupColumn, valueColumn string) ([]GroupMean, error) {
	groupIdx := t.ColumnIndex(groupColumn)
	if groupIdx < 0 {
		return nil, fmt.Errorf("no such column: %q", groupColumn)
	}
	valueIdx := t.ColumnIndex(valueColumn)
	if valueIdx < 0 {
		return nil, fmt.Errorf("no such column: %q", valueColumn)
	}

	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, row := range t.Rows {
		group := row[groupIdx].Text()
		if group == "" {
			continue
		}
		n, ok := row[valueIdx].Number()
		if !ok {
			continue
		}
		sums[group] += n
		counts[group]++
	}

	out := make([]GroupMean, 0, len(sums))
	for group, sum := range sums {
		out = append(out, GroupMean{Group: group, Count: counts[group], Mean: sum / float64(counts[group])})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Mean != out[j].Mean {
			return out[i].Mean > out[j].Mean
		}
		return out[i].Group < out[j].Group
	})
	return out, nil
}

// MeanSnowfallByState ranks states/provinces by mean snowfall.
func MeanSnowfallByState(t *table.Table) ([]GroupMean, error) {
	return MeanByGroup(t, resort.ColStateProvince, resort.ColSnowfall)
}

// MeanSnowfallByRegion ranks geographic regions by mean snowfall across
// typed records.
func MeanSnowfallByRegion(records []resort.Record) []GroupMean {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, rec := range records {
		region := resort.Region(rec.StateProvince)
		if region == "" {
			continue
		}
		sums[region] += rec.SnowfallInches
		counts[region]++
	}

	out := make([]GroupMean, 0, len(sums))
	for region, sum := range sums {
		out = append(out, GroupMean{Group: region, Count: counts[region], Mean: sum / float64(counts[region])})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Mean != out[j].Mean {
			return out[i].Mean > out[j].Mean
		}
		return out[i].Group < out[j].Group
	})
	return out
}

// TopBySnowfall returns the n snowiest resorts, most snow first.
func TopBySnowfall(records []resort.Record, n int) []resort.Record {
	sorted := append([]resort.Record(nil), records...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].SnowfallInches != sorted[j].SnowfallInches {
			return sorted[i].SnowfallInches > sorted[j].SnowfallInches
		}
		return sorted[i].Name < sorted[j].Name
	})
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

// Correlation computes the Pearson correlation between two numeric columns,
// using only rows where both values are present. It returns an error when
// fewer than two complete pairs exist or either column has zero variance.
func Correlation(t *table.Table, colA, colB string) (float64, error) {
	aVals, err := t.Column(colA)
	if err != nil {
		return 0, err
	}
	bVals, err := t.Column(colB)
	if err != nil {
		return 0, err
	}

	var xs, ys []float64
	for i := range aVals {
		a, okA := aVals[i].Number()
		b, okB := bVals[i].Number()
		if okA && okB {
			xs = append(xs, a)
			ys = append(ys, b)
		}
	}
	if len(xs) < 2 {
		return 0, fmt.Errorf("correlation needs at least 2 complete pairs, have %d", len(xs))
	}

	n := float64(len(xs))
	var meanX, meanY float64
	for i := range xs {
		meanX += xs[i]
		meanY += ys[i]
	}
	meanX /= n
	meanY /= n

	var cov, varX, varY float64
	for i := range xs {
		dx := xs[i] - meanX
		dy := ys[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return 0, fmt.Errorf("correlation undefined: column has zero variance")
	}
	return cov / math.Sqrt(varX*varY), nil
}
