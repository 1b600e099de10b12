package chart

import (
	"fmt"

	"github.com/colsift/colsift/table"
)

// DefaultBins is the number of equal-width histogram bins.
const DefaultBins = 30

// histogram bins the raw values of a Numeric column into DefaultBins
// equal-width bins over [min, max]. Each point carries the left bin edge
// as X and the bin's row count as Y. A column whose values are all
// identical produces a single bin holding every row. Missing values are
// not binned.
func histogram(t *table.Table, spec Spec) (*Series, error) {
	kind, _ := t.Kind(spec.GroupBy)
	if kind != table.Numeric {
		return nil, fmt.Errorf("%w: histogram requires a numeric column", ErrInsufficientFields)
	}

	series := &Series{
		Title:  fmt.Sprintf("histogram of %s", spec.GroupBy),
		XLabel: spec.GroupBy,
		YLabel: "count",
	}

	var values []float64
	for i := 0; i < t.Len(); i++ {
		if v, ok := table.AsNumber(t.Row(i)[spec.GroupBy]); ok {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return series, nil
	}

	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	if min == max {
		// Degenerate range: one bin with everything in it.
		series.Points = []Point{{X: min, Y: float64(len(values))}}
		return series, nil
	}

	width := (max - min) / float64(DefaultBins)
	counts := make([]int, DefaultBins)
	for _, v := range values {
		bin := int((v - min) / width)
		if bin >= DefaultBins {
			// max lands in the last bin.
			bin = DefaultBins - 1
		}
		counts[bin]++
	}

	for i, c := range counts {
		series.Points = append(series.Points, Point{X: min + float64(i)*width, Y: float64(c)})
	}
	return series, nil
}
