package table

import "fmt"

// ColumnSummary describes one column of a loaded table: its inferred kind,
// how many cells are missing, and how many distinct values it holds.
type ColumnSummary struct {
	Name       string  `json:"name"`
	Kind       string  `json:"kind"`
	Missing    int     `json:"missing"`
	MissingPct float64 `json:"missing_pct"`
	Distinct   int     `json:"distinct"`
}

// Summarize returns one ColumnSummary per column, in load order. Distinct
// counts include the missing marker as its own value when present.
func (t *Table) Summarize() []ColumnSummary {
	summaries := make([]ColumnSummary, 0, len(t.columns))
	for _, col := range t.columns {
		missing := 0
		distinct := make(map[string]bool)
		for _, row := range t.rows {
			v := row[col]
			if v == nil {
				missing++
				distinct["\x00missing"] = true
				continue
			}
			distinct[fmt.Sprintf("%#v", v)] = true
		}

		pct := 0.0
		if len(t.rows) > 0 {
			pct = float64(missing) / float64(len(t.rows)) * 100
		}

		summaries = append(summaries, ColumnSummary{
			Name:       col,
			Kind:       t.kinds[col].String(),
			Missing:    missing,
			MissingPct: pct,
			Distinct:   len(distinct),
		})
	}
	return summaries
}
