package output

import (
	"fmt"
	"io"
	"math"

	"github.com/colsift/colsift/chart"
	"github.com/colsift/colsift/table"
)

// Formatter defines the interface for output formatters.
//
// Implementers must provide Format to write an ordered set of columns and
// rows in the target format, and SetOutput to change the destination.
type Formatter interface {
	// Format writes rows in the formatter's specific format, with columns
	// giving the output order
	Format(columns []string, rows []map[string]interface{}) error

	// SetOutput changes the output writer
	SetOutput(w io.Writer)
}

// TableData flattens a table into the column/row shape formatters take.
func TableData(t *table.Table) ([]string, []map[string]interface{}) {
	rows := make([]map[string]interface{}, t.Len())
	for i := 0; i < t.Len(); i++ {
		rows[i] = t.Row(i)
	}
	return t.Columns(), rows
}

// SeriesData flattens a chart series. Labeled series become
// {label, value} rows; numeric-x series become {x, y} rows. The shape
// comes from the series flag, not from the label text, so an
// empty-string group key still renders as its label.
func SeriesData(s *chart.Series) ([]string, []map[string]interface{}) {
	columns := []string{s.XLabel, s.YLabel}
	rows := make([]map[string]interface{}, 0, len(s.Points))
	for _, p := range s.Points {
		var x interface{}
		if s.Labeled {
			x = p.Label
		} else {
			x = p.X
		}
		rows = append(rows, map[string]interface{}{s.XLabel: x, s.YLabel: p.Y})
	}
	return columns, rows
}

// SummaryData flattens column summaries.
func SummaryData(summaries []table.ColumnSummary) ([]string, []map[string]interface{}) {
	columns := []string{"column", "kind", "missing", "missing_pct", "distinct"}
	rows := make([]map[string]interface{}, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, map[string]interface{}{
			"column":      s.Name,
			"kind":        s.Kind,
			"missing":     s.Missing,
			"missing_pct": fmt.Sprintf("%.2f", s.MissingPct),
			"distinct":    s.Distinct,
		})
	}
	return columns, rows
}

// MatrixData flattens a correlation matrix, one row per column with the
// column name in the leading cell. NaN coefficients render as missing.
func MatrixData(m *chart.Matrix) ([]string, []map[string]interface{}) {
	columns := append([]string{"column"}, m.Columns...)
	rows := make([]map[string]interface{}, 0, len(m.Columns))
	for i, name := range m.Columns {
		row := map[string]interface{}{"column": name}
		for j, other := range m.Columns {
			if math.IsNaN(m.Coeffs[i][j]) {
				row[other] = nil
			} else {
				row[other] = fmt.Sprintf("%.2f", m.Coeffs[i][j])
			}
		}
		rows = append(rows, row)
	}
	return columns, rows
}
