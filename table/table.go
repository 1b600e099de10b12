// Package table provides the in-memory model for a loaded dataset:
// named columns with inferred kinds and row-oriented cell storage.
//
// A Table is built once per loaded file. Column kinds are inferred at
// construction time and never change for the lifetime of the table.
package table

import "fmt"

// Table is a loaded dataset: an ordered list of columns, one inferred
// Kind per column, and rows stored as maps from column name to cell value.
// Missing cells are nil.
type Table struct {
	columns []string
	kinds   map[string]Kind
	rows    []map[string]interface{}
}

// New builds a Table from the ingestion mapping: an ordered list of column
// names and, for each, the ordered sequence of raw cell values. Every column
// is classified here; classification is never carried over from a previously
// loaded table. Returns an error if the columns have differing lengths or if
// a column name is duplicated.
func New(columns []string, cells map[string][]interface{}) (*Table, error) {
	if len(columns) == 0 {
		return &Table{kinds: map[string]Kind{}}, nil
	}

	seen := make(map[string]bool, len(columns))
	rowCount := -1
	for _, col := range columns {
		if seen[col] {
			return nil, fmt.Errorf("duplicate column %q", col)
		}
		seen[col] = true

		values, ok := cells[col]
		if !ok {
			return nil, fmt.Errorf("column %q has no values", col)
		}
		if rowCount == -1 {
			rowCount = len(values)
		} else if len(values) != rowCount {
			return nil, fmt.Errorf("column %q has %d values, expected %d", col, len(values), rowCount)
		}
	}

	kinds := make(map[string]Kind, len(columns))
	for _, col := range columns {
		kinds[col] = Classify(cells[col])
	}

	rows := make([]map[string]interface{}, rowCount)
	for i := range rows {
		row := make(map[string]interface{}, len(columns))
		for _, col := range columns {
			row[col] = cells[col][i]
		}
		rows[i] = row
	}

	return &Table{columns: append([]string(nil), columns...), kinds: kinds, rows: rows}, nil
}

// FromRows builds a Table directly from row maps, preserving the given
// column order. Cells absent from a row are treated as missing.
func FromRows(columns []string, rows []map[string]interface{}) (*Table, error) {
	cells := make(map[string][]interface{}, len(columns))
	for _, col := range columns {
		values := make([]interface{}, len(rows))
		for i, row := range rows {
			values[i] = row[col] // nil when absent
		}
		cells[col] = values
	}
	return New(columns, cells)
}

// Columns returns the column names in load order.
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

// Kind returns the inferred kind for the named column. The second return
// value is false if the column does not exist.
func (t *Table) Kind(name string) (Kind, bool) {
	k, ok := t.kinds[name]
	return k, ok
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Row returns the i-th row. The returned map is shared with the table and
// must not be modified.
func (t *Table) Row(i int) map[string]interface{} {
	return t.rows[i]
}

// Values returns the ordered cell values of the named column, or nil if the
// column does not exist.
func (t *Table) Values(name string) []interface{} {
	if _, ok := t.kinds[name]; !ok {
		return nil
	}
	values := make([]interface{}, len(t.rows))
	for i, row := range t.rows {
		values[i] = row[name]
	}
	return values
}

// Export returns the table as a mapping from column name to ordered value
// sequence, suitable for serialization by an export layer.
func (t *Table) Export() map[string][]interface{} {
	out := make(map[string][]interface{}, len(t.columns))
	for _, col := range t.columns {
		out[col] = t.Values(col)
	}
	return out
}

// NumericColumns returns the names of all Numeric columns in load order.
func (t *Table) NumericColumns() []string {
	var cols []string
	for _, col := range t.columns {
		if t.kinds[col] == Numeric {
			cols = append(cols, col)
		}
	}
	return cols
}

// Retain returns a new table containing the rows at the given indices, in
// order, with the same columns and kinds. The receiver is not modified.
// Kinds are carried over rather than re-inferred: a filtered subset is still
// the same loaded table.
func (t *Table) Retain(indices []int) *Table {
	rows := make([]map[string]interface{}, len(indices))
	for i, idx := range indices {
		rows[i] = t.rows[idx]
	}
	kinds := make(map[string]Kind, len(t.kinds))
	for col, k := range t.kinds {
		kinds[col] = k
	}
	return &Table{columns: append([]string(nil), t.columns...), kinds: kinds, rows: rows}
}
