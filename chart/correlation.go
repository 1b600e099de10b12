package chart

import (
	"math"

	"github.com/colsift/colsift/table"
)

// Matrix is a symmetric matrix of pairwise Pearson correlation
// coefficients over the numeric columns of a table. Coeffs[i][j] is the
// correlation between Columns[i] and Columns[j].
type Matrix struct {
	Columns []string
	Coeffs  [][]float64
}

// Correlate computes the correlation matrix over the numeric subset of the
// table. It returns nil when the table has fewer than two numeric columns.
// A coefficient is NaN when either column has zero variance or the pair has
// fewer than two complete observations.
func Correlate(t *table.Table) *Matrix {
	cols := t.NumericColumns()
	if len(cols) < 2 {
		return nil
	}

	// Materialize each column once; nil marks a missing or unparseable cell.
	values := make([][]*float64, len(cols))
	for i, col := range cols {
		vals := make([]*float64, t.Len())
		for r := 0; r < t.Len(); r++ {
			if v, ok := table.AsNumber(t.Row(r)[col]); ok {
				f := v
				vals[r] = &f
			}
		}
		values[i] = vals
	}

	m := &Matrix{Columns: cols, Coeffs: make([][]float64, len(cols))}
	for i := range cols {
		m.Coeffs[i] = make([]float64, len(cols))
	}
	for i := range cols {
		m.Coeffs[i][i] = pearson(values[i], values[i])
		for j := i + 1; j < len(cols); j++ {
			r := pearson(values[i], values[j])
			m.Coeffs[i][j] = r
			m.Coeffs[j][i] = r
		}
	}
	return m
}

// pearson computes the Pearson coefficient over the rows where both
// columns have a value. NaN when fewer than two complete pairs remain or
// either side has zero variance.
func pearson(xs, ys []*float64) float64 {
	var n int
	var sumX, sumY float64
	for i := range xs {
		if xs[i] == nil || ys[i] == nil {
			continue
		}
		n++
		sumX += *xs[i]
		sumY += *ys[i]
	}
	if n < 2 {
		return math.NaN()
	}
	meanX := sumX / float64(n)
	meanY := sumY / float64(n)

	var cov, varX, varY float64
	for i := range xs {
		if xs[i] == nil || ys[i] == nil {
			continue
		}
		dx := *xs[i] - meanX
		dy := *ys[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return math.NaN()
	}
	return cov / math.Sqrt(varX*varY)
}
