package output

import (
	"io"

	"github.com/olekukonko/tablewriter"
)

// TableFormatter renders rows as an ASCII table for terminal display.
type TableFormatter struct {
	writer io.Writer
}

// NewTableFormatter creates a new text-table formatter
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{writer: w}
}

// SetOutput sets the output writer
func (t *TableFormatter) SetOutput(w io.Writer) {
	t.writer = w
}

// Format renders rows as a bordered text table with a header row.
func (t *TableFormatter) Format(columns []string, rows []map[string]interface{}) error {
	tw := tablewriter.NewWriter(t.writer)
	tw.SetHeader(columns)
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)

	for _, row := range rows {
		record := make([]string, len(columns))
		for i, col := range columns {
			record[i] = formatValue(row[col])
		}
		tw.Append(record)
	}

	tw.Render()
	return nil
}
